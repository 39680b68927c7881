package world

import (
	"strconv"
	"time"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
)

// RootID is the identifier of the world root location.
const RootID = 0

// Location is a node in the world tree. The root location is the world.
type Location struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Children    []*Location `json:"children,omitempty"`
	CreatedAt   time.Time   `json:"createdAt,omitzero"`
	UpdatedAt   time.Time   `json:"updatedAt,omitzero"`
}

// Character is an actor anchored to a location.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Personality string `json:"personality"`
	LocationID  int    `json:"locationId"`
}

// Plot is a narrative event at a location involving zero or more characters.
type Plot struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Time         string `json:"time"`
	LocationID   int    `json:"locationId"`
	CharacterIDs []int  `json:"characterIds"`
}

// State is the persisted unit: the world tree and both registries.
type State struct {
	World      *Location   `json:"world,omitempty"`
	Characters []Character `json:"characters,omitempty"`
	Plots      []Plot      `json:"plots,omitempty"`
}

var (
	// ErrWorldAlreadyExists indicates CreateWorld was called twice.
	ErrWorldAlreadyExists = apperrors.New(apperrors.CodeWorldAlreadyExists, "world already exists")
	// ErrWorldMissing indicates an operation needs a world that was never created.
	ErrWorldMissing = apperrors.New(apperrors.CodeWorldMissing, "world does not exist")
	// ErrRootDeletionForbidden indicates an attempt to delete the root location.
	ErrRootDeletionForbidden = apperrors.New(apperrors.CodeLocationRootDeletionForbidden, "root location cannot be deleted")
)

// CreateWorld installs the root location. It fails when a world exists.
func (s *State) CreateWorld(name, description string, now time.Time) (*Location, error) {
	if s.World != nil {
		return nil, ErrWorldAlreadyExists
	}
	s.World = &Location{
		ID:          RootID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	return s.World, nil
}

// Root returns the world root or ErrWorldMissing.
func (s *State) Root() (*Location, error) {
	if s == nil || s.World == nil {
		return nil, ErrWorldMissing
	}
	return s.World, nil
}

// Clone returns a deep copy that shares no memory with s.
func (s *State) Clone() *State {
	if s == nil {
		return &State{}
	}
	out := &State{World: s.World.Clone()}
	if s.Characters != nil {
		out.Characters = append([]Character(nil), s.Characters...)
	}
	if s.Plots != nil {
		out.Plots = make([]Plot, len(s.Plots))
		for i, plot := range s.Plots {
			out.Plots[i] = plot.clone()
		}
	}
	return out
}

// Clone returns a deep copy of the subtree rooted at l.
func (l *Location) Clone() *Location {
	if l == nil {
		return nil
	}
	out := *l
	if l.Children != nil {
		out.Children = make([]*Location, len(l.Children))
		for i, child := range l.Children {
			out.Children[i] = child.Clone()
		}
	}
	return &out
}

func (p Plot) clone() Plot {
	if p.CharacterIDs != nil {
		p.CharacterIDs = append(make([]int, 0, len(p.CharacterIDs)), p.CharacterIDs...)
	}
	return p
}

func notFound(entity string, id int) error {
	return apperrors.WithMetadata(
		apperrors.CodeNotFound,
		entity+" not found",
		map[string]string{"Entity": entity, "ID": strconv.Itoa(id)},
	)
}

func locationNotFound(id int) error {
	return apperrors.WithMetadata(
		apperrors.CodeLocationNotFound,
		"location not found",
		map[string]string{"LocationID": strconv.Itoa(id)},
	)
}
