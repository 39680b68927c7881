package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/louisbranch/worldforge/internal/services/world/domain/world"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// WorldResourceURI serves the full world document with its nested tree.
	WorldResourceURI = "world://current"
	// LocationsResourceURI serves the detailed flat location listing.
	LocationsResourceURI = "world://locations"
	// CharactersResourceURI serves every character.
	CharactersResourceURI = "world://characters"
	// PlotsResourceURI serves every plot ordered by id.
	PlotsResourceURI = "world://plots"

	jsonMIMEType = "application/json"
)

// WorldResource defines the readable world document.
func WorldResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "world",
		Description: "The world root with every nested location",
		MIMEType:    jsonMIMEType,
		URI:         WorldResourceURI,
	}
}

// LocationsResource defines the readable location listing.
func LocationsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "locations",
		Description: "Every location in tree order with depth, parent and path",
		MIMEType:    jsonMIMEType,
		URI:         LocationsResourceURI,
	}
}

// CharactersResource defines the readable character roster.
func CharactersResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "characters",
		Description: "Every character in creation order",
		MIMEType:    jsonMIMEType,
		URI:         CharactersResourceURI,
	}
}

// PlotsResource defines the readable plot roster.
func PlotsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "plots",
		Description: "Every plot ordered by id",
		MIMEType:    jsonMIMEType,
		URI:         PlotsResourceURI,
	}
}

// WorldResourceHandler returns the world tree.
func WorldResourceHandler(svc WorldService, env Env) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		root, err := svc.World(ctx)
		if err != nil {
			return nil, renderError(env.Locale, err)
		}
		return jsonResource(resourceURI(req, WorldResourceURI), root)
	}
}

// LocationsResourceHandler returns the detailed location listing.
func LocationsResourceHandler(svc WorldService, env Env) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		flat, err := svc.Locations(ctx)
		if err != nil {
			return nil, renderError(env.Locale, err)
		}
		return jsonResource(resourceURI(req, LocationsResourceURI), LocationListResult{Details: locationDetails(flat)})
	}
}

// CharactersResourceHandler returns the character roster.
func CharactersResourceHandler(svc WorldService, env Env) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		characters, err := svc.Characters(ctx)
		if err != nil {
			return nil, renderError(env.Locale, err)
		}
		payload := CharacterListResult{Characters: make([]CharacterEntry, 0, len(characters))}
		for _, character := range characters {
			payload.Characters = append(payload.Characters, characterEntry(character))
		}
		return jsonResource(resourceURI(req, CharactersResourceURI), payload)
	}
}

// PlotsResourceHandler returns every plot ordered by id.
func PlotsResourceHandler(svc WorldService, env Env) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		state, err := svc.Snapshot(ctx)
		if err != nil {
			return nil, renderError(env.Locale, err)
		}
		plots := slices.Clone(state.Plots)
		slices.SortStableFunc(plots, func(a, b world.Plot) int { return a.ID - b.ID })

		payload := PlotListResult{Plots: make([]PlotEntry, 0, len(plots))}
		for _, plot := range plots {
			payload.Plots = append(payload.Plots, plotEntry(plot))
		}
		return jsonResource(resourceURI(req, PlotsResourceURI), payload)
	}
}

func resourceURI(req *mcp.ReadResourceRequest, fallback string) string {
	if req == nil || req.Params == nil || req.Params.URI == "" {
		return fallback
	}
	return req.Params.URI
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: jsonMIMEType,
				Text:     string(data),
			},
		},
	}, nil
}
