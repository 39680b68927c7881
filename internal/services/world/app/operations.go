package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
)

// CreateWorld creates the root location.
func (s *Service) CreateWorld(ctx context.Context, name, description string) (world.Location, error) {
	var out world.Location
	err := s.mutate(ctx, "CreateWorld", nil, func(state *world.State) error {
		root, err := state.CreateWorld(name, description, s.now())
		if err != nil {
			return err
		}
		out = *root.Clone()
		return nil
	})
	return out, err
}

// World returns the full location tree.
func (s *Service) World(ctx context.Context) (*world.Location, error) {
	var out *world.Location
	err := s.read(ctx, "World", nil, func(state *world.State) error {
		root, err := state.Root()
		if err != nil {
			return err
		}
		out = root.Clone()
		return nil
	})
	return out, err
}

// CreateLocation adds a location under parentID.
func (s *Service) CreateLocation(ctx context.Context, parentID int, name, description string) (world.Location, error) {
	var out world.Location
	attrs := []attribute.KeyValue{attribute.Int("world.location.parent_id", parentID)}
	err := s.mutate(ctx, "CreateLocation", attrs, func(state *world.State) error {
		location, err := state.CreateLocation(parentID, name, description, s.now())
		if err != nil {
			return err
		}
		out = *location.Clone()
		return nil
	})
	return out, err
}

// UpdateLocation applies a partial location update.
func (s *Service) UpdateLocation(ctx context.Context, id int, patch world.LocationPatch) (world.Location, error) {
	var out world.Location
	attrs := []attribute.KeyValue{attribute.Int("world.location.id", id)}
	err := s.mutate(ctx, "UpdateLocation", attrs, func(state *world.State) error {
		location, err := state.UpdateLocation(id, patch, s.now())
		if err != nil {
			return err
		}
		out = *location.Clone()
		return nil
	})
	return out, err
}

// DeleteLocation removes a location and, when forced, its subtree.
func (s *Service) DeleteLocation(ctx context.Context, id int, force bool) (world.Location, error) {
	var out world.Location
	attrs := []attribute.KeyValue{
		attribute.Int("world.location.id", id),
		attribute.Bool("world.location.force", force),
	}
	err := s.mutate(ctx, "DeleteLocation", attrs, func(state *world.State) error {
		removed, err := state.DeleteLocation(id, force)
		if err != nil {
			return err
		}
		out = *removed
		return nil
	})
	return out, err
}

// Location resolves one location with its parent and path.
func (s *Service) Location(ctx context.Context, id int) (world.LocationDetail, error) {
	var out world.LocationDetail
	attrs := []attribute.KeyValue{attribute.Int("world.location.id", id)}
	err := s.read(ctx, "Location", attrs, func(state *world.State) error {
		detail, err := state.LocationDetail(id)
		if err != nil {
			return err
		}
		detail.Location = detail.Location.Clone()
		detail.Parent = detail.Parent.Clone()
		out = detail
		return nil
	})
	return out, err
}

// Locations flattens the tree in pre-order.
func (s *Service) Locations(ctx context.Context) ([]world.FlatLocation, error) {
	var out []world.FlatLocation
	err := s.read(ctx, "Locations", nil, func(state *world.State) error {
		flat, err := state.Locations()
		if err != nil {
			return err
		}
		for i := range flat {
			flat[i].Location = flat[i].Location.Clone()
		}
		out = flat
		return nil
	})
	return out, err
}

// CreateCharacter registers a character at locationID.
func (s *Service) CreateCharacter(ctx context.Context, name, personality, description string, locationID int) (world.Character, error) {
	var out world.Character
	attrs := []attribute.KeyValue{attribute.Int("world.character.location_id", locationID)}
	err := s.mutate(ctx, "CreateCharacter", attrs, func(state *world.State) error {
		character, err := state.CreateCharacter(name, personality, description, locationID)
		out = character
		return err
	})
	return out, err
}

// UpdateCharacter applies a partial character update.
func (s *Service) UpdateCharacter(ctx context.Context, id int, patch world.CharacterPatch) (world.Character, error) {
	var out world.Character
	attrs := []attribute.KeyValue{attribute.Int("world.character.id", id)}
	err := s.mutate(ctx, "UpdateCharacter", attrs, func(state *world.State) error {
		character, err := state.UpdateCharacter(id, patch)
		out = character
		return err
	})
	return out, err
}

// DeleteCharacter removes a character.
func (s *Service) DeleteCharacter(ctx context.Context, id int) (world.Character, error) {
	var out world.Character
	attrs := []attribute.KeyValue{attribute.Int("world.character.id", id)}
	err := s.mutate(ctx, "DeleteCharacter", attrs, func(state *world.State) error {
		character, err := state.DeleteCharacter(id)
		out = character
		return err
	})
	return out, err
}

// Character returns one character.
func (s *Service) Character(ctx context.Context, id int) (world.Character, error) {
	var out world.Character
	attrs := []attribute.KeyValue{attribute.Int("world.character.id", id)}
	err := s.read(ctx, "Character", attrs, func(state *world.State) error {
		character, err := state.Character(id)
		out = character
		return err
	})
	return out, err
}

// Characters lists every character in insertion order.
func (s *Service) Characters(ctx context.Context) ([]world.Character, error) {
	var out []world.Character
	err := s.read(ctx, "Characters", nil, func(state *world.State) error {
		out = state.ListCharacters()
		return nil
	})
	return out, err
}

// CreatePlot registers a plot under its own id.
func (s *Service) CreatePlot(ctx context.Context, plot world.Plot) (world.Plot, error) {
	var out world.Plot
	attrs := []attribute.KeyValue{
		attribute.Int("world.plot.id", plot.ID),
		attribute.Int("world.plot.location_id", plot.LocationID),
	}
	err := s.mutate(ctx, "CreatePlot", attrs, func(state *world.State) error {
		created, err := state.CreatePlot(plot)
		out = created
		return err
	})
	return out, err
}

// UpdatePlot applies a partial plot update.
func (s *Service) UpdatePlot(ctx context.Context, id int, patch world.PlotPatch) (world.Plot, error) {
	var out world.Plot
	attrs := []attribute.KeyValue{attribute.Int("world.plot.id", id)}
	err := s.mutate(ctx, "UpdatePlot", attrs, func(state *world.State) error {
		updated, err := state.UpdatePlot(id, patch)
		out = updated
		return err
	})
	return out, err
}

// DeletePlot removes a plot.
func (s *Service) DeletePlot(ctx context.Context, id int) (world.Plot, error) {
	var out world.Plot
	attrs := []attribute.KeyValue{attribute.Int("world.plot.id", id)}
	err := s.mutate(ctx, "DeletePlot", attrs, func(state *world.State) error {
		removed, err := state.DeletePlot(id)
		out = removed
		return err
	})
	return out, err
}

// Plots returns the requested plots ordered by id.
func (s *Service) Plots(ctx context.Context, ids []int) ([]world.Plot, error) {
	var out []world.Plot
	attrs := []attribute.KeyValue{attribute.IntSlice("world.plot.ids", ids)}
	err := s.read(ctx, "Plots", attrs, func(state *world.State) error {
		out = state.ListPlots(ids)
		return nil
	})
	return out, err
}
