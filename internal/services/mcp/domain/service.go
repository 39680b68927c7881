package domain

import (
	"context"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
)

// WorldService is the world surface the MCP handlers call.
type WorldService interface {
	CreateWorld(ctx context.Context, name, description string) (world.Location, error)
	World(ctx context.Context) (*world.Location, error)

	CreateLocation(ctx context.Context, parentID int, name, description string) (world.Location, error)
	UpdateLocation(ctx context.Context, id int, patch world.LocationPatch) (world.Location, error)
	DeleteLocation(ctx context.Context, id int, force bool) (world.Location, error)
	Location(ctx context.Context, id int) (world.LocationDetail, error)
	Locations(ctx context.Context) ([]world.FlatLocation, error)

	CreateCharacter(ctx context.Context, name, personality, description string, locationID int) (world.Character, error)
	UpdateCharacter(ctx context.Context, id int, patch world.CharacterPatch) (world.Character, error)
	DeleteCharacter(ctx context.Context, id int) (world.Character, error)
	Character(ctx context.Context, id int) (world.Character, error)
	Characters(ctx context.Context) ([]world.Character, error)

	CreatePlot(ctx context.Context, plot world.Plot) (world.Plot, error)
	UpdatePlot(ctx context.Context, id int, patch world.PlotPatch) (world.Plot, error)
	DeletePlot(ctx context.Context, id int) (world.Plot, error)
	Plots(ctx context.Context, ids []int) ([]world.Plot, error)

	Snapshot(ctx context.Context) (*world.State, error)
}

// Env carries per-server settings shared by every handler.
type Env struct {
	// Locale selects the error message catalog.
	Locale string
	Notify ResourceUpdateNotifier
}
