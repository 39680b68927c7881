package service

import (
	"github.com/louisbranch/worldforge/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerWorldTools(registrar mcpRegistrationTarget, svc domain.WorldService, env domain.Env) error {
	if err := registerTool(registrar, domain.WorldCreateTool(), domain.WorldCreateHandler(svc, env)); err != nil {
		return err
	}
	return registerTool(registrar, domain.WorldGetTool(), domain.WorldGetHandler(svc, env))
}

func registerLocationTools(registrar mcpRegistrationTarget, svc domain.WorldService, env domain.Env) error {
	if err := registerTool(registrar, domain.LocationCreateTool(), domain.LocationCreateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.LocationUpdateTool(), domain.LocationUpdateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.LocationDeleteTool(), domain.LocationDeleteHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.LocationGetTool(), domain.LocationGetHandler(svc, env)); err != nil {
		return err
	}
	return registerTool(registrar, domain.LocationListTool(), domain.LocationListHandler(svc, env))
}

func registerCharacterTools(registrar mcpRegistrationTarget, svc domain.WorldService, env domain.Env) error {
	if err := registerTool(registrar, domain.CharacterCreateTool(), domain.CharacterCreateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.CharacterUpdateTool(), domain.CharacterUpdateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.CharacterDeleteTool(), domain.CharacterDeleteHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.CharacterGetTool(), domain.CharacterGetHandler(svc, env)); err != nil {
		return err
	}
	return registerTool(registrar, domain.CharacterListTool(), domain.CharacterListHandler(svc, env))
}

func registerPlotTools(registrar mcpRegistrationTarget, svc domain.WorldService, env domain.Env) error {
	if err := registerTool(registrar, domain.PlotCreateTool(), domain.PlotCreateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.PlotUpdateTool(), domain.PlotUpdateHandler(svc, env)); err != nil {
		return err
	}
	if err := registerTool(registrar, domain.PlotDeleteTool(), domain.PlotDeleteHandler(svc, env)); err != nil {
		return err
	}
	return registerTool(registrar, domain.PlotListTool(), domain.PlotListHandler(svc, env))
}

// registerWorldResources registers the readable world documents.
func registerWorldResources(registrar mcpRegistrationTarget, svc domain.WorldService, env domain.Env) {
	registrar.AddResource(domain.WorldResource(), domain.WorldResourceHandler(svc, env))
	registrar.AddResource(domain.LocationsResource(), domain.LocationsResourceHandler(svc, env))
	registrar.AddResource(domain.CharactersResource(), domain.CharactersResourceHandler(svc, env))
	registrar.AddResource(domain.PlotsResource(), domain.PlotsResourceHandler(svc, env))
}

func registerTool[I any, O any](registrar mcpRegistrationTarget, tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) error {
	return registrar.AddTool(tool, handler)
}
