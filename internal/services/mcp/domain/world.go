package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WorldCreateInput represents the MCP tool input for world creation.
type WorldCreateInput struct {
	Name        string `json:"name" jsonschema:"name of the RPG world"`
	Description string `json:"description" jsonschema:"description of the world, at least 100 characters"`
}

// WorldCreateResult represents the MCP tool output for world creation.
type WorldCreateResult struct {
	ID      int    `json:"id" jsonschema:"world root location id, always 0"`
	Name    string `json:"name" jsonschema:"world name"`
	Message string `json:"message" jsonschema:"confirmation"`
}

// WorldGetResult summarizes the world. The nested tree is served by the
// world://current resource.
type WorldGetResult struct {
	ID             int           `json:"id" jsonschema:"world root location id"`
	Name           string        `json:"name" jsonschema:"world name"`
	Description    string        `json:"description" jsonschema:"world description"`
	CreatedAt      string        `json:"createdAt,omitempty" jsonschema:"RFC3339 creation time"`
	UpdatedAt      string        `json:"updatedAt,omitempty" jsonschema:"RFC3339 last update time"`
	Regions        []LocationRef `json:"regions" jsonschema:"direct children of the world root"`
	LocationCount  int           `json:"locationCount" jsonschema:"number of locations including the root"`
	CharacterCount int           `json:"characterCount" jsonschema:"number of characters"`
	PlotCount      int           `json:"plotCount" jsonschema:"number of plots"`
}

// WorldCreateTool defines the MCP tool schema for creating the world.
func WorldCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_world",
		Description: "Creates the RPG world. Only one world can exist at a time",
		InputSchema: mustInputSchema[WorldCreateInput](minLength("description", minDescriptionLength)),
	}
}

// WorldGetTool defines the MCP tool schema for reading the world.
func WorldGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_world",
		Description: "Returns the world summary. Read world://current for the full location tree",
	}
}

// WorldCreateHandler executes a world creation request.
func WorldCreateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[WorldCreateInput, WorldCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input WorldCreateInput) (*mcp.CallToolResult, WorldCreateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, WorldCreateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		root, err := svc.CreateWorld(call.RunCtx, input.Name, input.Description)
		if err != nil {
			return nil, WorldCreateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, WorldResourceURI, LocationsResourceURI)
		return call.callToolResult(), WorldCreateResult{
			ID:      root.ID,
			Name:    root.Name,
			Message: fmt.Sprintf("world %q created", root.Name),
		}, nil
	}
}

// WorldGetHandler executes a world read request.
func WorldGetHandler(svc WorldService, env Env) mcp.ToolHandlerFor[struct{}, WorldGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, WorldGetResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, WorldGetResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		state, err := svc.Snapshot(call.RunCtx)
		if err != nil {
			return nil, WorldGetResult{}, renderError(env.Locale, err)
		}
		root, err := state.Root()
		if err != nil {
			return nil, WorldGetResult{}, renderError(env.Locale, err)
		}

		regions := make([]LocationRef, 0, len(root.Children))
		for _, child := range root.Children {
			regions = append(regions, LocationRef{ID: child.ID, Name: child.Name})
		}
		return call.callToolResult(), WorldGetResult{
			ID:             root.ID,
			Name:           root.Name,
			Description:    root.Description,
			CreatedAt:      formatTimestamp(root.CreatedAt),
			UpdatedAt:      formatTimestamp(root.UpdatedAt),
			Regions:        regions,
			LocationCount:  len(world.Flatten(root)),
			CharacterCount: len(state.Characters),
			PlotCount:      len(state.Plots),
		}, nil
	}
}
