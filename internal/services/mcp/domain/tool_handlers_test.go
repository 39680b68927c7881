package domain

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/worldforge/internal/platform/errors"
	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
)

func TestWorldCreateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := newTestService(t)
		var n notifications
		handler := WorldCreateHandler(svc, Env{Notify: n.notify})

		toolResult, result, err := handler(context.Background(), nil, WorldCreateInput{Name: "Aldoria", Description: longDescription})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil || toolResult.Meta[InvocationIDKey] == "" {
			t.Fatalf("expected invocation id in result meta, got %+v", toolResult)
		}
		if result.ID != world.RootID {
			t.Errorf("expected id %d, got %d", world.RootID, result.ID)
		}
		if result.Message != `world "Aldoria" created` {
			t.Errorf("unexpected message %q", result.Message)
		}
		want := []string{WorldResourceURI, LocationsResourceURI}
		if !slices.Equal(n.uris, want) {
			t.Errorf("notified %v, want %v", n.uris, want)
		}
	})

	t.Run("already exists", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		handler := WorldCreateHandler(svc, Env{})
		_, _, err := handler(context.Background(), nil, WorldCreateInput{Name: "Again", Description: longDescription})
		toolErr := requireToolError(t, err, apperrors.CodeWorldAlreadyExists)
		if toolErr.Kind != "AlreadyExists" {
			t.Errorf("kind = %q, want AlreadyExists", toolErr.Kind)
		}
	})

	t.Run("localized", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		_, _, enErr := WorldCreateHandler(svc, Env{Locale: "en-US"})(context.Background(), nil, WorldCreateInput{Name: "X"})
		_, _, zhErr := WorldCreateHandler(svc, Env{Locale: "zh-CN"})(context.Background(), nil, WorldCreateInput{Name: "X"})
		requireToolError(t, enErr, apperrors.CodeWorldAlreadyExists)
		requireToolError(t, zhErr, apperrors.CodeWorldAlreadyExists)
		if enErr.Error() == zhErr.Error() {
			t.Errorf("expected different messages per locale, got %q", enErr.Error())
		}
	})
}

func TestWorldGetHandler(t *testing.T) {
	t.Run("missing world", func(t *testing.T) {
		handler := WorldGetHandler(newTestService(t), Env{})
		_, _, err := handler(context.Background(), nil, struct{}{})
		requireToolError(t, err, apperrors.CodeWorldMissing)
	})

	t.Run("summary", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		if _, err := svc.CreateCharacter(context.Background(), "Mira", "sly", "thief", 2); err != nil {
			t.Fatalf("create character: %v", err)
		}
		_, result, err := WorldGetHandler(svc, Env{})(context.Background(), nil, struct{}{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Name != "Aldoria" || result.LocationCount != 3 || result.CharacterCount != 1 || result.PlotCount != 0 {
			t.Errorf("unexpected summary %+v", result)
		}
		if len(result.Regions) != 1 || result.Regions[0] != (LocationRef{ID: 1, Name: "Capital"}) {
			t.Errorf("regions = %+v", result.Regions)
		}
		if result.CreatedAt == "" {
			t.Error("expected createdAt")
		}
	})
}

func TestLocationHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns tree-wide ids", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		var n notifications
		_, result, err := LocationCreateHandler(svc, Env{Notify: n.notify})(ctx, nil, LocationCreateInput{
			ParentID: world.RootID, Name: "Harbor", Description: longDescription,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ID != 3 {
			t.Errorf("expected id 3, got %d", result.ID)
		}
		if result.Message != `location "Harbor" created with ID 3` {
			t.Errorf("unexpected message %q", result.Message)
		}
		if len(n.uris) != 2 {
			t.Errorf("expected 2 notifications, got %d", len(n.uris))
		}
	})

	t.Run("create under unknown parent", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		_, _, err := LocationCreateHandler(svc, Env{})(ctx, nil, LocationCreateInput{ParentID: 42, Name: "X"})
		requireToolError(t, err, apperrors.CodeNotFound)
	})

	t.Run("create without world", func(t *testing.T) {
		_, _, err := LocationCreateHandler(newTestService(t), Env{})(ctx, nil, LocationCreateInput{Name: "X"})
		requireToolError(t, err, apperrors.CodeWorldMissing)
	})

	t.Run("update applies supplied fields", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		name := "Old Capital"
		_, result, err := LocationUpdateHandler(svc, Env{})(ctx, nil, LocationUpdateInput{ID: 1, Name: &name})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Location.Name != name || result.Location.Description != longDescription {
			t.Errorf("unexpected location %+v", result.Location)
		}
		if result.Location.UpdatedAt == "" {
			t.Error("expected updatedAt to be stamped")
		}
	})

	t.Run("get resolves parent and path", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		_, result, err := LocationGetHandler(svc, Env{})(ctx, nil, LocationGetInput{ID: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Parent == nil || result.Parent.ID != 1 {
			t.Errorf("parent = %+v, want Capital", result.Parent)
		}
		wantPath := []LocationRef{{ID: 0, Name: "Aldoria"}, {ID: 1, Name: "Capital"}, {ID: 2, Name: "Slums"}}
		if !slices.Equal(result.Path, wantPath) {
			t.Errorf("path = %+v, want %+v", result.Path, wantPath)
		}
		if result.ChildrenCount != 0 {
			t.Errorf("childrenCount = %d, want 0", result.ChildrenCount)
		}

		_, root, err := LocationGetHandler(svc, Env{})(ctx, nil, LocationGetInput{ID: 0})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if root.Parent != nil || root.ChildrenCount != 1 {
			t.Errorf("root = %+v", root)
		}
	})

	t.Run("list summary", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		_, result, err := LocationListHandler(svc, Env{})(ctx, nil, LocationListInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Details != nil {
			t.Error("expected no details")
		}
		want := []LocationSummary{
			{ID: 0, Name: "Aldoria", Depth: 0, Path: "Aldoria"},
			{ID: 1, Name: "Capital", Depth: 1, Path: "Aldoria > Capital"},
			{ID: 2, Name: "Slums", Depth: 2, Path: "Aldoria > Capital > Slums"},
		}
		if !slices.Equal(result.Locations, want) {
			t.Errorf("locations = %+v, want %+v", result.Locations, want)
		}
	})

	t.Run("list details", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		_, result, err := LocationListHandler(svc, Env{})(ctx, nil, LocationListInput{IncludeDetails: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Details) != 3 || result.Locations != nil {
			t.Fatalf("unexpected result %+v", result)
		}
		if result.Details[0].ParentID != nil {
			t.Error("expected root without parent id")
		}
		if result.Details[2].ParentID == nil || *result.Details[2].ParentID != 1 {
			t.Errorf("slums parent = %v, want 1", result.Details[2].ParentID)
		}
		if len(result.Details[2].Path) != 3 {
			t.Errorf("slums path = %+v", result.Details[2].Path)
		}
	})

	t.Run("delete guards", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		handler := LocationDeleteHandler(svc, Env{})

		_, _, err := handler(ctx, nil, LocationDeleteInput{ID: 0})
		requireToolError(t, err, apperrors.CodeLocationRootDeletionForbidden)

		_, _, err = handler(ctx, nil, LocationDeleteInput{ID: 42})
		requireToolError(t, err, apperrors.CodeNotFound)

		_, _, err = handler(ctx, nil, LocationDeleteInput{ID: 1})
		toolErr := requireToolError(t, err, apperrors.CodeLocationHasChildren)
		if !strings.Contains(toolErr.Message, "force=true") {
			t.Errorf("expected force hint in %q", toolErr.Message)
		}

		_, result, err := handler(ctx, nil, LocationDeleteInput{ID: 1, Force: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.RemovedCount != 2 || result.Message != `location "Capital" deleted` {
			t.Errorf("unexpected result %+v", result)
		}
	})
}

func TestCharacterHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("list empty", func(t *testing.T) {
		_, result, err := CharacterListHandler(newTestService(t), Env{})(ctx, nil, struct{}{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Empty || result.Message != "no characters" || result.Characters == nil {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("lifecycle", func(t *testing.T) {
		svc := newTestService(t)
		seedWorld(t, svc)
		var n notifications
		env := Env{Notify: n.notify}

		_, created, err := CharacterCreateHandler(svc, env)(ctx, nil, CharacterCreateInput{
			Name: "Mira", Personality: "sly", Description: "thief", LocationID: 2,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID != 1 {
			t.Errorf("expected id 1, got %d", created.ID)
		}

		_, _, err = CharacterCreateHandler(svc, env)(ctx, nil, CharacterCreateInput{Name: "Ghost", LocationID: 77})
		requireToolError(t, err, apperrors.CodeLocationNotFound)

		missing := 77
		_, _, err = CharacterUpdateHandler(svc, env)(ctx, nil, CharacterUpdateInput{ID: 1, LocationID: &missing})
		requireToolError(t, err, apperrors.CodeLocationNotFound)

		personality := "bold"
		_, updated, err := CharacterUpdateHandler(svc, env)(ctx, nil, CharacterUpdateInput{ID: 1, Personality: &personality})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Character.Personality != "bold" || updated.Character.LocationID != 2 {
			t.Errorf("unexpected character %+v", updated.Character)
		}

		_, got, err := CharacterGetHandler(svc, env)(ctx, nil, CharacterIDInput{ID: 1})
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "Mira" {
			t.Errorf("name = %q, want Mira", got.Name)
		}

		_, listed, err := CharacterListHandler(svc, env)(ctx, nil, struct{}{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if listed.Empty || len(listed.Characters) != 1 {
			t.Errorf("unexpected list %+v", listed)
		}

		_, deleted, err := CharacterDeleteHandler(svc, env)(ctx, nil, CharacterIDInput{ID: 1})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if deleted.Message != "character 1 deleted" {
			t.Errorf("unexpected message %q", deleted.Message)
		}

		_, _, err = CharacterGetHandler(svc, env)(ctx, nil, CharacterIDInput{ID: 1})
		requireToolError(t, err, apperrors.CodeNotFound)

		for _, uri := range n.uris {
			if uri != CharactersResourceURI {
				t.Errorf("unexpected notification %q", uri)
			}
		}
		if len(n.uris) != 3 {
			t.Errorf("expected 3 notifications, got %d", len(n.uris))
		}
	})
}

func TestPlotHandlers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seedWorld(t, svc)
	if _, err := svc.CreateCharacter(ctx, "Mira", "sly", "thief", 2); err != nil {
		t.Fatalf("create character: %v", err)
	}
	env := Env{}

	t.Run("reports every unknown character", func(t *testing.T) {
		_, _, err := PlotCreateHandler(svc, env)(ctx, nil, PlotCreateInput{ID: 5, LocationID: 2, CharacterIDs: []int{1, 99, 98}})
		toolErr := requireToolError(t, err, apperrors.CodePlotInvalidCharacterReferences)
		if !strings.Contains(toolErr.Message, "99, 98") {
			t.Errorf("expected all missing ids in %q", toolErr.Message)
		}
		_, listed, err := PlotListHandler(svc, env)(ctx, nil, PlotListInput{IDs: []int{5}})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed.Plots) != 0 {
			t.Errorf("expected no plot, got %+v", listed.Plots)
		}
	})

	t.Run("unknown location", func(t *testing.T) {
		_, _, err := PlotCreateHandler(svc, env)(ctx, nil, PlotCreateInput{ID: 5, LocationID: 42})
		requireToolError(t, err, apperrors.CodeLocationNotFound)
	})

	t.Run("create, duplicate, list", func(t *testing.T) {
		for _, id := range []int{7, 5} {
			_, created, err := PlotCreateHandler(svc, env)(ctx, nil, PlotCreateInput{
				ID: id, Name: "Heist", Time: "dusk", LocationID: 2, CharacterIDs: []int{1},
			})
			if err != nil {
				t.Fatalf("create %d: %v", id, err)
			}
			if created.ID != id {
				t.Errorf("id = %d, want %d", created.ID, id)
			}
		}
		_, _, err := PlotCreateHandler(svc, env)(ctx, nil, PlotCreateInput{ID: 5, LocationID: 2})
		requireToolError(t, err, apperrors.CodePlotDuplicateID)

		_, listed, err := PlotListHandler(svc, env)(ctx, nil, PlotListInput{IDs: []int{7, 5, 1000}})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(listed.Plots) != 2 || listed.Plots[0].ID != 5 || listed.Plots[1].ID != 7 {
			t.Errorf("unexpected plots %+v", listed.Plots)
		}
	})

	t.Run("update clears characters", func(t *testing.T) {
		_, updated, err := PlotUpdateHandler(svc, env)(ctx, nil, PlotUpdateInput{ID: 5, CharacterIDs: []int{}})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Plot.CharacterIDs == nil || len(updated.Plot.CharacterIDs) != 0 {
			t.Errorf("characterIds = %v, want empty", updated.Plot.CharacterIDs)
		}
		if updated.Plot.Name != "Heist" {
			t.Errorf("name = %q, want untouched", updated.Plot.Name)
		}

		_, _, err = PlotUpdateHandler(svc, env)(ctx, nil, PlotUpdateInput{ID: 5, CharacterIDs: []int{99}})
		requireToolError(t, err, apperrors.CodePlotInvalidCharacterReferences)
	})

	t.Run("delete", func(t *testing.T) {
		_, deleted, err := PlotDeleteHandler(svc, env)(ctx, nil, PlotDeleteInput{ID: 7})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
		if deleted.Message != "plot 7 deleted" {
			t.Errorf("unexpected message %q", deleted.Message)
		}
		_, _, err = PlotDeleteHandler(svc, env)(ctx, nil, PlotDeleteInput{ID: 7})
		requireToolError(t, err, apperrors.CodeNotFound)
	})
}

func TestRenderError(t *testing.T) {
	if renderError("en-US", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	plain := errors.New("boom")
	if got := renderError("en-US", plain); got != plain {
		t.Fatalf("expected passthrough, got %v", got)
	}
	wrapped := renderError("en-US", world.ErrWorldMissing)
	if !errors.Is(wrapped, world.ErrWorldMissing) {
		t.Fatalf("expected rendered error to unwrap to the domain error")
	}
}
