package world

import (
	"strconv"
	"time"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
)

// LocationPatch carries the optional fields of a location update.
type LocationPatch struct {
	Name        *string
	Description *string
}

// LocationDetail is a location with its resolved neighbourhood.
type LocationDetail struct {
	Location      *Location
	Parent        *Location
	ChildrenCount int
	Path          []PathSegment
}

// CreateLocation appends a new node under parentID with a tree-wide unique id.
func (s *State) CreateLocation(parentID int, name, description string, now time.Time) (*Location, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	parent := FindByID(root, parentID)
	if parent == nil {
		return nil, notFound("location", parentID)
	}
	location := &Location{
		ID:          NextLocationID(root),
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	parent.Children = append(parent.Children, location)
	return location, nil
}

// UpdateLocation applies the supplied fields and stamps the update time.
func (s *State) UpdateLocation(id int, patch LocationPatch, now time.Time) (*Location, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	location := FindByID(root, id)
	if location == nil {
		return nil, notFound("location", id)
	}
	if patch.Name != nil {
		location.Name = *patch.Name
	}
	if patch.Description != nil {
		location.Description = *patch.Description
	}
	location.UpdatedAt = now
	return location, nil
}

// DeleteLocation detaches id from its parent and returns the removed subtree.
// A node with children is only removed when force is set, and then the whole
// subtree goes with it.
func (s *State) DeleteLocation(id int, force bool) (*Location, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	if id == root.ID {
		return nil, ErrRootDeletionForbidden
	}
	parent := FindParent(root, id)
	if parent == nil {
		return nil, notFound("location", id)
	}
	index := -1
	for i, child := range parent.Children {
		if child.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, notFound("location", id)
	}
	location := parent.Children[index]
	if len(location.Children) > 0 && !force {
		return nil, apperrors.WithMetadata(
			apperrors.CodeLocationHasChildren,
			"location has children",
			map[string]string{"ID": strconv.Itoa(id), "Name": location.Name},
		)
	}
	parent.Children = append(parent.Children[:index:index], parent.Children[index+1:]...)
	if len(parent.Children) == 0 {
		parent.Children = nil
	}
	return location, nil
}

// LocationDetail resolves a location with its parent, child count and path.
func (s *State) LocationDetail(id int) (LocationDetail, error) {
	root, err := s.Root()
	if err != nil {
		return LocationDetail{}, err
	}
	location := FindByID(root, id)
	if location == nil {
		return LocationDetail{}, notFound("location", id)
	}
	return LocationDetail{
		Location:      location,
		Parent:        FindParent(root, id),
		ChildrenCount: len(location.Children),
		Path:          Segments(PathTo(root, id)),
	}, nil
}

// Locations flattens the tree; it fails only when no world exists.
func (s *State) Locations() ([]FlatLocation, error) {
	root, err := s.Root()
	if err != nil {
		return nil, err
	}
	return Flatten(root), nil
}

// HasLocation reports whether id resolves in the tree.
func (s *State) HasLocation(id int) bool {
	return s != nil && FindByID(s.World, id) != nil
}

func (s *State) requireLocation(id int) error {
	if !s.HasLocation(id) {
		return locationNotFound(id)
	}
	return nil
}
