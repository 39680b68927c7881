package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/worldforge/internal/services/mcp/domain"
	worldapp "github.com/louisbranch/worldforge/internal/services/world/app"
	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type memoryStore struct{}

func (memoryStore) Load(context.Context) (*world.State, error) { return &world.State{}, nil }
func (memoryStore) Save(context.Context, *world.State) error   { return nil }
func (memoryStore) Close() error                               { return nil }

var longDescription = strings.Repeat("Mist rolls over the salt marsh at dawn. ", 4)

func newWorldService(t *testing.T) domain.WorldService {
	t.Helper()
	svc, err := worldapp.New(context.Background(), memoryStore{})
	if err != nil {
		t.Fatalf("new world service: %v", err)
	}
	return svc
}

// connectInMemory serves a fresh MCP server over in-memory transports and
// returns a connected client session.
func connectInMemory(t *testing.T, svc domain.WorldService, opts *mcp.ClientOptions) *mcp.ClientSession {
	t.Helper()

	server, err := New(svc, Config{Locale: "en-US"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, opts)
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer connectCancel()
	session, err := client.Connect(connectCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return session
}

// callTool invokes a tool and decodes its structured output into out.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any, out any) *mcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("call %s returned tool error: %s", name, toolText(result))
	}
	if out != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshal %s output: %v", name, err)
		}
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode %s output: %v", name, err)
		}
	}
	return result
}

// callToolError invokes a tool that is expected to fail and returns the
// failure text.
func callToolError(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return err.Error()
	}
	if !result.IsError {
		t.Fatalf("call %s succeeded, want error", name)
	}
	return toolText(result)
}

func toolText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}
