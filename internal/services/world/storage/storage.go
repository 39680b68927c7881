// Package storage defines persistence contracts for world state.
//
// A store only moves whole documents: the world service owns the in-memory
// state and hands a snapshot to Save after every successful mutation.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
)

// ErrNotConfigured indicates a nil or closed store.
var ErrNotConfigured = errors.New("storage is not configured")

// WorldStore loads and saves the complete world document.
type WorldStore interface {
	// Load returns the last saved state. A store that has never been written
	// returns an empty state, not an error.
	Load(ctx context.Context) (*world.State, error)
	// Save durably replaces the stored state.
	Save(ctx context.Context, state *world.State) error
	Close() error
}
