package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CharacterEntry is a character as returned to MCP clients.
type CharacterEntry struct {
	ID          int    `json:"id" jsonschema:"character id"`
	Name        string `json:"name" jsonschema:"character name"`
	Personality string `json:"personality" jsonschema:"personality traits"`
	Description string `json:"description" jsonschema:"character description"`
	LocationID  int    `json:"locationId" jsonschema:"location the character is at"`
}

// CharacterCreateInput represents the MCP tool input for character creation.
type CharacterCreateInput struct {
	Name        string `json:"name" jsonschema:"character name"`
	Personality string `json:"personality" jsonschema:"personality traits"`
	Description string `json:"description" jsonschema:"character description"`
	LocationID  int    `json:"locationId" jsonschema:"existing location id; 0 is the world root"`
}

// CharacterCreateResult represents the MCP tool output for character creation.
type CharacterCreateResult struct {
	ID      int    `json:"id" jsonschema:"new character id"`
	Name    string `json:"name" jsonschema:"character name"`
	Message string `json:"message" jsonschema:"confirmation"`
}

// CharacterUpdateInput represents the MCP tool input for character updates.
type CharacterUpdateInput struct {
	ID          int     `json:"id" jsonschema:"character id to update"`
	Name        *string `json:"name,omitempty" jsonschema:"new name"`
	Personality *string `json:"personality,omitempty" jsonschema:"new personality"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	LocationID  *int    `json:"locationId,omitempty" jsonschema:"new location id"`
}

// CharacterUpdateResult represents the MCP tool output for character updates.
type CharacterUpdateResult struct {
	Character CharacterEntry `json:"character" jsonschema:"updated character"`
	Message   string         `json:"message" jsonschema:"confirmation"`
}

// CharacterIDInput addresses one character.
type CharacterIDInput struct {
	ID int `json:"id" jsonschema:"character id"`
}

// CharacterDeleteResult represents the MCP tool output for character deletion.
type CharacterDeleteResult struct {
	ID      int    `json:"id" jsonschema:"deleted character id"`
	Name    string `json:"name" jsonschema:"deleted character name"`
	Message string `json:"message" jsonschema:"confirmation"`
}

// CharacterListResult represents the MCP tool output for listing characters.
type CharacterListResult struct {
	Characters []CharacterEntry `json:"characters" jsonschema:"characters in creation order"`
	Empty      bool             `json:"empty,omitempty" jsonschema:"true when no characters exist"`
	Message    string           `json:"message,omitempty" jsonschema:"set when the list is empty"`
}

// CharacterCreateTool defines the MCP tool schema for creating a character.
func CharacterCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_character",
		Description: "Creates a character at an existing location",
	}
}

// CharacterUpdateTool defines the MCP tool schema for updating a character.
func CharacterUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_character",
		Description: "Updates the supplied fields of a character",
	}
}

// CharacterDeleteTool defines the MCP tool schema for deleting a character.
func CharacterDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "delete_character",
		Description: "Deletes a character. Plots keep referencing its id",
	}
}

// CharacterGetTool defines the MCP tool schema for reading a character.
func CharacterGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_character",
		Description: "Returns one character",
	}
}

// CharacterListTool defines the MCP tool schema for listing characters.
func CharacterListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_characters",
		Description: "Lists every character",
	}
}

// CharacterCreateHandler executes a character creation request.
func CharacterCreateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[CharacterCreateInput, CharacterCreateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterCreateInput) (*mcp.CallToolResult, CharacterCreateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, CharacterCreateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		character, err := svc.CreateCharacter(call.RunCtx, input.Name, input.Personality, input.Description, input.LocationID)
		if err != nil {
			return nil, CharacterCreateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, CharactersResourceURI)
		return call.callToolResult(), CharacterCreateResult{
			ID:      character.ID,
			Name:    character.Name,
			Message: fmt.Sprintf("character %q created with ID %d", character.Name, character.ID),
		}, nil
	}
}

// CharacterUpdateHandler executes a character update request.
func CharacterUpdateHandler(svc WorldService, env Env) mcp.ToolHandlerFor[CharacterUpdateInput, CharacterUpdateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterUpdateInput) (*mcp.CallToolResult, CharacterUpdateResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, CharacterUpdateResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		character, err := svc.UpdateCharacter(call.RunCtx, input.ID, world.CharacterPatch{
			Name:        input.Name,
			Personality: input.Personality,
			Description: input.Description,
			LocationID:  input.LocationID,
		})
		if err != nil {
			return nil, CharacterUpdateResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, CharactersResourceURI)
		return call.callToolResult(), CharacterUpdateResult{
			Character: characterEntry(character),
			Message:   fmt.Sprintf("character %q updated", character.Name),
		}, nil
	}
}

// CharacterDeleteHandler executes a character deletion request.
func CharacterDeleteHandler(svc WorldService, env Env) mcp.ToolHandlerFor[CharacterIDInput, CharacterDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterIDInput) (*mcp.CallToolResult, CharacterDeleteResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, CharacterDeleteResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		removed, err := svc.DeleteCharacter(call.RunCtx, input.ID)
		if err != nil {
			return nil, CharacterDeleteResult{}, renderError(env.Locale, err)
		}

		NotifyResourceUpdates(ctx, env.Notify, CharactersResourceURI)
		return call.callToolResult(), CharacterDeleteResult{
			ID:      removed.ID,
			Name:    removed.Name,
			Message: fmt.Sprintf("character %d deleted", removed.ID),
		}, nil
	}
}

// CharacterGetHandler executes a character read request.
func CharacterGetHandler(svc WorldService, env Env) mcp.ToolHandlerFor[CharacterIDInput, CharacterEntry] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CharacterIDInput) (*mcp.CallToolResult, CharacterEntry, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, CharacterEntry{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		character, err := svc.Character(call.RunCtx, input.ID)
		if err != nil {
			return nil, CharacterEntry{}, renderError(env.Locale, err)
		}
		return call.callToolResult(), characterEntry(character), nil
	}
}

// CharacterListHandler executes a character listing request.
func CharacterListHandler(svc WorldService, env Env) mcp.ToolHandlerFor[struct{}, CharacterListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, CharacterListResult, error) {
		call, err := newToolInvocationContext(ctx)
		if err != nil {
			return nil, CharacterListResult{}, fmt.Errorf("generate invocation id: %w", err)
		}
		defer call.Cancel()

		characters, err := svc.Characters(call.RunCtx)
		if err != nil {
			return nil, CharacterListResult{}, renderError(env.Locale, err)
		}

		result := CharacterListResult{Characters: make([]CharacterEntry, 0, len(characters))}
		for _, character := range characters {
			result.Characters = append(result.Characters, characterEntry(character))
		}
		if len(result.Characters) == 0 {
			result.Empty = true
			result.Message = "no characters"
		}
		return call.callToolResult(), result, nil
	}
}

func characterEntry(character world.Character) CharacterEntry {
	return CharacterEntry{
		ID:          character.ID,
		Name:        character.Name,
		Personality: character.Personality,
		Description: character.Description,
		LocationID:  character.LocationID,
	}
}
