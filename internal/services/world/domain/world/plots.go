package world

import (
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
)

// PlotPatch carries the optional fields of a plot update.
type PlotPatch struct {
	Name         *string
	Description  *string
	Time         *string
	LocationID   *int
	CharacterIDs *[]int
}

// CreatePlot registers a plot under its caller-supplied id.
func (s *State) CreatePlot(plot Plot) (Plot, error) {
	if s.plotIndex(plot.ID) != -1 {
		return Plot{}, apperrors.WithMetadata(
			apperrors.CodePlotDuplicateID,
			"plot id already exists",
			map[string]string{"ID": strconv.Itoa(plot.ID)},
		)
	}
	if err := s.requireLocation(plot.LocationID); err != nil {
		return Plot{}, err
	}
	if err := s.requireCharacters(plot.CharacterIDs); err != nil {
		return Plot{}, err
	}
	plot = plot.clone()
	if plot.CharacterIDs == nil {
		plot.CharacterIDs = []int{}
	}
	s.Plots = append(s.Plots, plot)
	return plot.clone(), nil
}

// UpdatePlot applies the supplied fields after validating any new references.
func (s *State) UpdatePlot(id int, patch PlotPatch) (Plot, error) {
	index := s.plotIndex(id)
	if index == -1 {
		return Plot{}, notFound("plot", id)
	}
	if patch.LocationID != nil {
		if err := s.requireLocation(*patch.LocationID); err != nil {
			return Plot{}, err
		}
	}
	if patch.CharacterIDs != nil {
		if err := s.requireCharacters(*patch.CharacterIDs); err != nil {
			return Plot{}, err
		}
	}
	plot := &s.Plots[index]
	if patch.Name != nil {
		plot.Name = *patch.Name
	}
	if patch.Description != nil {
		plot.Description = *patch.Description
	}
	if patch.Time != nil {
		plot.Time = *patch.Time
	}
	if patch.LocationID != nil {
		plot.LocationID = *patch.LocationID
	}
	if patch.CharacterIDs != nil {
		plot.CharacterIDs = append([]int{}, *patch.CharacterIDs...)
	}
	return plot.clone(), nil
}

// DeletePlot removes a plot by id.
func (s *State) DeletePlot(id int) (Plot, error) {
	index := s.plotIndex(id)
	if index == -1 {
		return Plot{}, notFound("plot", id)
	}
	removed := s.Plots[index]
	s.Plots = append(s.Plots[:index:index], s.Plots[index+1:]...)
	return removed, nil
}

// ListPlots returns the plots whose id is in ids, ascending by id. Unknown
// ids are skipped.
func (s *State) ListPlots(ids []int) []Plot {
	if s == nil {
		return []Plot{}
	}
	out := []Plot{}
	for _, plot := range s.Plots {
		if slices.Contains(ids, plot.ID) {
			out = append(out, plot.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Plot) int { return a.ID - b.ID })
	return out
}

// requireCharacters reports every unknown id at once, in request order.
func (s *State) requireCharacters(ids []int) error {
	var missing []string
	for _, id := range ids {
		if s.characterIndex(id) == -1 {
			missing = append(missing, strconv.Itoa(id))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return apperrors.WithMetadata(
		apperrors.CodePlotInvalidCharacterReferences,
		"unknown character ids: "+strings.Join(missing, ", "),
		map[string]string{"CharacterIDs": strings.Join(missing, ", ")},
	)
}

func (s *State) plotIndex(id int) int {
	if s == nil {
		return -1
	}
	for i, plot := range s.Plots {
		if plot.ID == id {
			return i
		}
	}
	return -1
}
