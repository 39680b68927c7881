package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PlotEntry is a plot as returned to MCP clients.
type PlotEntry struct {
	ID           int    `json:"id" jsonschema:"plot id"`
	Name         string `json:"name" jsonschema:"plot name"`
	Description  string `json:"description" jsonschema:"what happens"`
	Time         string `json:"time" jsonschema:"when it happens, free form"`
	LocationID   int    `json:"locationId" jsonschema:"where it happens"`
	CharacterIDs []int  `json:"characterIds" jsonschema:"characters involved"`
}

// PlotCreateInput represents the MCP tool input for plot creation.
type PlotCreateInput struct {
	ID           int    `json:"id" jsonschema:"caller-chosen plot id, unique and at least 1"`
	Name         string `json:"name" jsonschema:"plot name"`
	Description  string `json:"description" jsonschema:"what happens"`
	Time         string `json:"time" jsonschema:"when it happens, free form"`
	LocationID   int    `json:"locationId" jsonschema:"existing location id"`
	CharacterIDs []int  `json:"characterIds" jsonschema:"existing character ids"`
}

// PlotCreateResult represents the MCP tool output for plot creation.
type PlotCreateResult struct {
	ID      int    `json:"id" jsonschema:"plot id"`
	Name    string `json:"name" jsonschema:"plot name"`
	Message string `json:"message" jsonschema:"confirmation"`
}

// PlotUpdateInput represents the MCP tool input for plot updates.
type PlotUpdateInput struct {
	ID           int     `json:"id" jsonschema:"plot id to update"`
	Name         *string `json:"name,omitempty" jsonschema:"new name"`
	Description  *string `json:"description,omitempty" jsonschema:"new description"`
	Time         *string `json:"time,omitempty" jsonschema:"new time label"`
	LocationID   *int    `json:"locationId,omitempty" jsonschema:"new location id"`
	CharacterIDs []int   `json:"characterIds,omitempty" jsonschema:"replacement character ids"`
}

// PlotUpdateResult represents the MCP tool output for plot updates.
type PlotUpdateResult struct {
	Plot    PlotEntry `json:"plot" jsonschema:"updated plot"`
	Message string    `json:"message" jsonschema:"confirmation"`
}

// PlotDeleteInput represents the MCP tool input for plot deletion.
type PlotDeleteInput struct {
	ID int `json:"id" jsonschema:"plot id to delete"`
}

// PlotDeleteResult represents the MCP tool output for plot deletion.
type PlotDeleteResult struct {
	ID      int    `json:"id" jsonschema:"deleted plot id"`
	Name    string `json:"name" jsonschema:"deleted plot name"`
	Message string `json:"message" jsonschema:"confirmation"`
}

// PlotListInput represents the MCP tool input for listing plots.
type PlotListInput struct {
	IDs []int `json:"ids" jsonschema:"plot ids to return; unknown ids are skipped"`
}

// PlotListResult represents the MCP tool output for listing plots.
type PlotListResult struct {
	Plots []PlotEntry `json:"plots" jsonschema:"matching plots ordered by id"`
}

// PlotCreateTool defines the MCP tool schema for creating a plot.
func PlotCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_plot",
		Description: "Creates a plot event at a location involving existing characters",
		InputSchema: mustInputSchema[PlotCreateInput](minimum("id", 1)),
	}
}

// PlotUpdateTool defines the MCP tool schema for updating a plot.
func PlotUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_plot",
		Description: "Updates the supplied fields of a plot",
	}
}

// PlotDeleteTool defines the MCP tool schema for deleting a plot.
func PlotDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_plot",
		Description: "Deletes a plot",
	}
}

// PlotListTool defines the MCP tool schema for listing plots.
func PlotListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_plots",
		Description: "Returns the requested plots ordered by id",
	}
}

// PlotCreateHandler executes a plot creation request.
func PlotCreateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[PlotCreateInput, PlotCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlotCreateInput) (*mcp.CallToolResult, PlotCreateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, PlotCreateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		plot, err := svc.CreatePlot(call.RunCtx, world.Plot{
			ID:           input.ID,
			Name:         input.Name,
			Description:  input.Description,
			Time:         input.Time,
			LocationID:   input.LocationID,
			CharacterIDs: input.CharacterIDs,
		})
		if err != nil {
			return nil, PlotCreateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, PlotsResourceURI)
		return call.callToolResult(), PlotCreateResult{
			ID:      plot.ID,
			Name:    plot.Name,
			Message: fmt.Sprintf("plot %q created with ID %d", plot.Name, plot.ID),
		}, nil
	}
}

// PlotUpdateHandler executes a plot update request.
func PlotUpdateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[PlotUpdateInput, PlotUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlotUpdateInput) (*mcp.CallToolResult, PlotUpdateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, PlotUpdateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		patch := world.PlotPatch{
			Name:        input.Name,
			Description: input.Description,
			Time:        input.Time,
			LocationID:  input.LocationID,
		}
		if input.CharacterIDs != nil {
			patch.CharacterIDs = &input.CharacterIDs
		}
		plot, err := svc.UpdatePlot(call.RunCtx, input.ID, patch)
		if err != nil {
			return nil, PlotUpdateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, PlotsResourceURI)
		return call.callToolResult(), PlotUpdateResult{
			Plot:    plotEntry(plot),
			Message: fmt.Sprintf("plot %d updated", plot.ID),
		}, nil
	}
}

// PlotDeleteHandler executes a plot deletion request.
func PlotDeleteHandler(svc WorldService, env Env) mcp.ToolHandlerFor[PlotDeleteInput, PlotDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlotDeleteInput) (*mcp.CallToolResult, PlotDeleteResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, PlotDeleteResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		removed, err := svc.DeletePlot(call.RunCtx, input.ID)
		if err != nil {
			return nil, PlotDeleteResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, PlotsResourceURI)
		return call.callToolResult(), PlotDeleteResult{
			ID:      removed.ID,
			Name:    removed.Name,
			Message: fmt.Sprintf("plot %d deleted", removed.ID),
		}, nil
	}
}

// PlotListHandler executes a plot listing request.
func PlotListHandler(svc WorldService, env Env) mcp.ToolHandlerFor[PlotListInput, PlotListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PlotListInput) (*mcp.CallToolResult, PlotListResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, PlotListResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		plots, err := svc.Plots(call.RunCtx, input.IDs)
		if err != nil {
			return nil, PlotListResult{}, renderError(env.Locale, err)
		}

		result := PlotListResult{Plots: make([]PlotEntry, 0, len(plots))}
		for _, plot := range plots {
			result.Plots = append(result.Plots, plotEntry(plot))
		}
		return call.callToolResult(), result, nil
	}
}

func plotEntry(plot world.Plot) PlotEntry {
	characterIDs := plot.CharacterIDs
	if characterIDs == nil {
		characterIDs = []int{}
	}
	return PlotEntry{
		ID:           plot.ID,
		Name:         plot.Name,
		Description:  plot.Description,
		Time:         plot.Time,
		LocationID:   plot.LocationID,
		CharacterIDs: characterIDs,
	}
}
