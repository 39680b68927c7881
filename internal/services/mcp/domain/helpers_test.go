package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
	worldapp "github.com/louisbranch/worldforge/internal/services/world/app"
	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
)

type memoryStore struct {
	state *world.State
}

func (m *memoryStore) Load(context.Context) (*world.State, error) {
	return &world.State{}, nil
}

func (m *memoryStore) Save(_ context.Context, state *world.State) error {
	m.state = state.Clone()
	return nil
}

func (m *memoryStore) Close() error { return nil }

type notifications struct {
	uris []string
}

func (n *notifications) notify(_ context.Context, uri string) {
	n.uris = append(n.uris, uri)
}

func newTestService(t *testing.T) WorldService {
	t.Helper()
	svc, err := worldapp.New(context.Background(), &memoryStore{})
	if err != nil {
		t.Fatalf("new world service: %v", err)
	}
	return svc
}

var longDescription = strings.Repeat("Rivers wind between old stone towers. ", 4)

// seedWorld builds Aldoria(0) > Capital(1) > Slums(2).
func seedWorld(t *testing.T, svc WorldService) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.CreateWorld(ctx, "Aldoria", longDescription); err != nil {
		t.Fatalf("create world: %v", err)
	}
	if _, err := svc.CreateLocation(ctx, world.RootID, "Capital", longDescription); err != nil {
		t.Fatalf("create capital: %v", err)
	}
	if _, err := svc.CreateLocation(ctx, 1, "Slums", longDescription); err != nil {
		t.Fatalf("create slums: %v", err)
	}
}

func requireToolError(t *testing.T, err error, code apperrors.Code) *ToolError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error", code)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T: %v", err, err)
	}
	if toolErr.Code != code {
		t.Fatalf("code = %q, want %q (%v)", toolErr.Code, code, err)
	}
	if !strings.HasSuffix(err.Error(), "("+string(code)+")") {
		t.Fatalf("message %q does not end with the code", err.Error())
	}
	return toolErr
}
