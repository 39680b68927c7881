package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LocationRef names a location without its contents.
type LocationRef struct {
	ID   int    `json:"id" jsonschema:"location id"`
	Name string `json:"name" jsonschema:"location name"`
}

// LocationCreateInput represents the MCP tool input for location creation.
type LocationCreateInput struct {
	ParentID    int    `json:"parentId" jsonschema:"id of the parent location; 0 is the world root"`
	Name        string `json:"name" jsonschema:"location name"`
	Description string `json:"description" jsonschema:"location description, at least 100 characters"`
}

// LocationCreateResult represents the MCP tool output for location creation.
type LocationCreateResult struct {
	ID       int    `json:"id" jsonschema:"new location id"`
	ParentID int    `json:"parentId" jsonschema:"parent location id"`
	Name     string `json:"name" jsonschema:"location name"`
	Message  string `json:"message" jsonschema:"confirmation"`
}

// LocationUpdateInput represents the MCP tool input for location updates.
type LocationUpdateInput struct {
	ID          int     `json:"id" jsonschema:"location id to update"`
	Name        *string `json:"name,omitempty" jsonschema:"new location name"`
	Description *string `json:"description,omitempty" jsonschema:"new description, at least 100 characters"`
}

// LocationEntry is a location without its children.
type LocationEntry struct {
	ID          int    `json:"id" jsonschema:"location id"`
	Name        string `json:"name" jsonschema:"location name"`
	Description string `json:"description" jsonschema:"location description"`
	CreatedAt   string `json:"createdAt,omitempty" jsonschema:"RFC3339 creation time"`
	UpdatedAt   string `json:"updatedAt,omitempty" jsonschema:"RFC3339 last update time"`
}

// LocationUpdateResult represents the MCP tool output for location updates.
type LocationUpdateResult struct {
	Location LocationEntry `json:"location" jsonschema:"updated location"`
	Message  string        `json:"message" jsonschema:"confirmation"`
}

// LocationDeleteInput represents the MCP tool input for location deletion.
type LocationDeleteInput struct {
	ID    int  `json:"id" jsonschema:"location id to delete"`
	Force bool `json:"force,omitempty" jsonschema:"also delete every child location"`
}

// LocationDeleteResult represents the MCP tool output for location deletion.
type LocationDeleteResult struct {
	ID           int    `json:"id" jsonschema:"deleted location id"`
	Name         string `json:"name" jsonschema:"deleted location name"`
	RemovedCount int    `json:"removedCount" jsonschema:"locations removed including descendants"`
	Message      string `json:"message" jsonschema:"confirmation"`
}

// LocationGetInput represents the MCP tool input for reading a location.
type LocationGetInput struct {
	ID int `json:"id" jsonschema:"location id"`
}

// LocationGetResult is a location with its parent, child count and path.
type LocationGetResult struct {
	ID            int           `json:"id" jsonschema:"location id"`
	Name          string        `json:"name" jsonschema:"location name"`
	Description   string        `json:"description" jsonschema:"location description"`
	CreatedAt     string        `json:"createdAt,omitempty" jsonschema:"RFC3339 creation time"`
	UpdatedAt     string        `json:"updatedAt,omitempty" jsonschema:"RFC3339 last update time"`
	Parent        *LocationRef  `json:"parent,omitempty" jsonschema:"parent location, absent for the root"`
	ChildrenCount int           `json:"childrenCount" jsonschema:"number of direct children"`
	Path          []LocationRef `json:"path" jsonschema:"locations from the root to this one"`
}

// LocationListInput represents the MCP tool input for listing locations.
type LocationListInput struct {
	IncludeDetails bool `json:"includeDetails,omitempty" jsonschema:"return full entries instead of summaries"`
}

// LocationSummary is one row of the compact location listing.
type LocationSummary struct {
	ID    int    `json:"id" jsonschema:"location id"`
	Name  string `json:"name" jsonschema:"location name"`
	Depth int    `json:"depth" jsonschema:"distance from the root"`
	Path  string `json:"path" jsonschema:"names from the root joined by ' > '"`
}

// LocationDetailEntry is one row of the detailed location listing.
type LocationDetailEntry struct {
	ID          int           `json:"id" jsonschema:"location id"`
	Name        string        `json:"name" jsonschema:"location name"`
	Description string        `json:"description" jsonschema:"location description"`
	CreatedAt   string        `json:"createdAt,omitempty" jsonschema:"RFC3339 creation time"`
	UpdatedAt   string        `json:"updatedAt,omitempty" jsonschema:"RFC3339 last update time"`
	Depth       int           `json:"depth" jsonschema:"distance from the root"`
	ParentID    *int          `json:"parentId,omitempty" jsonschema:"parent location id, absent for the root"`
	Path        []LocationRef `json:"path" jsonschema:"locations from the root to this one"`
}

// LocationListResult represents the MCP tool output for listing locations.
// Exactly one of the two lists is populated.
type LocationListResult struct {
	Locations []LocationSummary     `json:"locations,omitempty" jsonschema:"compact listing"`
	Details   []LocationDetailEntry `json:"details,omitempty" jsonschema:"detailed listing"`
}

// LocationCreateTool defines the MCP tool schema for creating a location.
func LocationCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_location",
		Description: "Creates a location under an existing parent location",
		InputSchema: mustInputSchema[LocationCreateInput](minLength("description", minDescriptionLength)),
	}
}

// LocationUpdateTool defines the MCP tool schema for updating a location.
func LocationUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_location",
		Description: "Updates the name and/or description of a location",
		InputSchema: mustInputSchema[LocationUpdateInput](minLength("description", minDescriptionLength)),
	}
}

// LocationDeleteTool defines the MCP tool schema for deleting a location.
func LocationDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_location",
		Description: "Deletes a location. Locations with children require force=true, which deletes the whole subtree",
	}
}

// LocationGetTool defines the MCP tool schema for reading a location.
func LocationGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_location",
		Description: "Returns a location with its parent, child count and path from the world root",
	}
}

// LocationListTool defines the MCP tool schema for listing locations.
func LocationListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_locations",
		Description: "Lists every location in tree order with its depth and path",
	}
}

// LocationCreateHandler executes a location creation request.
func LocationCreateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[LocationCreateInput, LocationCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationCreateInput) (*mcp.CallToolResult, LocationCreateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, LocationCreateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		location, err := svc.CreateLocation(call.RunCtx, input.ParentID, input.Name, input.Description)
		if err != nil {
			return nil, LocationCreateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, WorldResourceURI, LocationsResourceURI)
		return call.callToolResult(), LocationCreateResult{
			ID:       location.ID,
			ParentID: input.ParentID,
			Name:     location.Name,
			Message:  fmt.Sprintf("location %q created with ID %d", location.Name, location.ID),
		}, nil
	}
}

// LocationUpdateHandler executes a location update request.
func LocationUpdateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[LocationUpdateInput, LocationUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationUpdateInput) (*mcp.CallToolResult, LocationUpdateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, LocationUpdateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		location, err := svc.UpdateLocation(call.RunCtx, input.ID, world.LocationPatch{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return nil, LocationUpdateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, WorldResourceURI, LocationsResourceURI)
		return call.callToolResult(), LocationUpdateResult{
			Location: locationEntry(&location),
			Message:  fmt.Sprintf("location %d updated", location.ID),
		}, nil
	}
}

// LocationDeleteHandler executes a location deletion request.
func LocationDeleteHandler(svc WorldService, env Env) mcp.ToolHandlerFor[LocationDeleteInput, LocationDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationDeleteInput) (*mcp.CallToolResult, LocationDeleteResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, LocationDeleteResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		removed, err := svc.DeleteLocation(call.RunCtx, input.ID, input.Force)
		if err != nil {
			return nil, LocationDeleteResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, WorldResourceURI, LocationsResourceURI)
		return call.callToolResult(), LocationDeleteResult{
			ID:           removed.ID,
			Name:         removed.Name,
			RemovedCount: len(world.Flatten(&removed)),
			Message:      fmt.Sprintf("location %q deleted", removed.Name),
		}, nil
	}
}

// LocationGetHandler executes a location read request.
func LocationGetHandler(svc WorldService, env Env) mcp.ToolHandlerFor[LocationGetInput, LocationGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationGetInput) (*mcp.CallToolResult, LocationGetResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, LocationGetResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		detail, err := svc.Location(call.RunCtx, input.ID)
		if err != nil {
			return nil, LocationGetResult{}, renderError(env.Locale, err)
		}

		location := detail.Location
		result := LocationGetResult{
			ID:            location.ID,
			Name:          location.Name,
			Description:   location.Description,
			CreatedAt:     formatTimestamp(location.CreatedAt),
			UpdatedAt:     formatTimestamp(location.UpdatedAt),
			ChildrenCount: detail.ChildrenCount,
			Path:          locationRefs(detail.Path),
		}
		if detail.Parent != nil {
			result.Parent = &LocationRef{ID: detail.Parent.ID, Name: detail.Parent.Name}
		}
		return call.callToolResult(), result, nil
	}
}

// LocationListHandler executes a location listing request.
func LocationListHandler(svc WorldService, env Env) mcp.ToolHandlerFor[LocationListInput, LocationListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LocationListInput) (*mcp.CallToolResult, LocationListResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, LocationListResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		flat, err := svc.Locations(call.RunCtx)
		if err != nil {
			return nil, LocationListResult{}, renderError(env.Locale, err)
		}

		var result LocationListResult
		if input.IncludeDetails {
			result.Details = locationDetails(flat)
		} else {
			result.Locations = locationSummaries(flat)
		}
		return call.callToolResult(), result, nil
	}
}

func locationEntry(location *world.Location) LocationEntry {
	if location == nil {
		return LocationEntry{}
	}
	return LocationEntry{
		ID:          location.ID,
		Name:        location.Name,
		Description: location.Description,
		CreatedAt:   formatTimestamp(location.CreatedAt),
		UpdatedAt:   formatTimestamp(location.UpdatedAt),
	}
}

func locationRefs(path []world.PathSegment) []LocationRef {
	refs := make([]LocationRef, 0, len(path))
	for _, segment := range path {
		refs = append(refs, LocationRef{ID: segment.ID, Name: segment.Name})
	}
	return refs
}

func locationSummaries(flat []world.FlatLocation) []LocationSummary {
	out := make([]LocationSummary, 0, len(flat))
	for _, entry := range flat {
		names := make([]string, 0, len(entry.Path))
		for _, segment := range entry.Path {
			names = append(names, segment.Name)
		}
		out = append(out, LocationSummary{
			ID:    entry.Location.ID,
			Name:  entry.Location.Name,
			Depth: entry.Depth,
			Path:  strings.Join(names, " > "),
		})
	}
	return out
}

func locationDetails(flat []world.FlatLocation) []LocationDetailEntry {
	out := make([]LocationDetailEntry, 0, len(flat))
	for _, entry := range flat {
		location := entry.Location
		out = append(out, LocationDetailEntry{
			ID:          location.ID,
			Name:        location.Name,
			Description: location.Description,
			CreatedAt:   formatTimestamp(location.CreatedAt),
			UpdatedAt:   formatTimestamp(location.UpdatedAt),
			Depth:       entry.Depth,
			ParentID:    entry.ParentID,
			Path:        locationRefs(entry.Path),
		})
	}
	return out
}
