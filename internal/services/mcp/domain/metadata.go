package domain

import (
	"context"
	"strings"
	"time"

	"github.com/louisbranch/worldforge/internal/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// InvocationIDKey is the result _meta key carrying the call's invocation id.
	InvocationIDKey = "invocation_id"

	toolCallTimeout = 10 * time.Second
)

// ResourceUpdateNotifier notifies MCP clients about resource updates.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NotifyResourceUpdates sends resource update notifications for each URI provided.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, uri := range uris {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		notify(ctx, uri)
	}
}

type toolInvocationContext struct {
	RunCtx       context.Context
	Cancel       context.CancelFunc
	InvocationID string
}

// newToolInvocationContext bounds a tool call and tags it with an invocation id.
func newToolInvocationContext(ctx context.Context) (toolInvocationContext, error) {
	invocationID, err := id.NewID()
	if err != nil {
		return toolInvocationContext{}, err
	}
	runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	return toolInvocationContext{
		RunCtx:       runCtx,
		Cancel:       cancel,
		InvocationID: invocationID,
	}, nil
}

// callToolResult builds a tool result carrying the invocation id.
func (c toolInvocationContext) callToolResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{
			InvocationIDKey: c.InvocationID,
		},
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
