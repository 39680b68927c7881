package service

import (
	"fmt"

	"github.com/louisbranch/worldforge/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationKind int

const (
	mcpRegistrationKindTools mcpRegistrationKind = iota
	mcpRegistrationKindResources
)

type mcpRegistrationModule struct {
	name     string
	kind     mcpRegistrationKind
	register func(mcpRegistrationTarget) error
}

const (
	mcpWorldToolsModuleName     = "world-tools"
	mcpLocationToolsModuleName  = "location-tools"
	mcpCharacterToolsModuleName = "character-tools"
	mcpPlotToolsModuleName      = "plot-tools"
	mcpWorldResourceModuleName  = "world-resources"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

func (r mcpServerRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.WorldCreateInput, domain.WorldCreateResult](),
	newMCPToolRegistrar[struct{}, domain.WorldGetResult](),
	newMCPToolRegistrar[domain.LocationCreateInput, domain.LocationCreateResult](),
	newMCPToolRegistrar[domain.LocationUpdateInput, domain.LocationUpdateResult](),
	newMCPToolRegistrar[domain.LocationDeleteInput, domain.LocationDeleteResult](),
	newMCPToolRegistrar[domain.LocationGetInput, domain.LocationGetResult](),
	newMCPToolRegistrar[domain.LocationListInput, domain.LocationListResult](),
	newMCPToolRegistrar[domain.CharacterCreateInput, domain.CharacterCreateResult](),
	newMCPToolRegistrar[domain.CharacterUpdateInput, domain.CharacterUpdateResult](),
	newMCPToolRegistrar[domain.CharacterIDInput, domain.CharacterDeleteResult](),
	newMCPToolRegistrar[domain.CharacterIDInput, domain.CharacterEntry](),
	newMCPToolRegistrar[struct{}, domain.CharacterListResult](),
	newMCPToolRegistrar[domain.PlotCreateInput, domain.PlotCreateResult](),
	newMCPToolRegistrar[domain.PlotUpdateInput, domain.PlotUpdateResult](),
	newMCPToolRegistrar[domain.PlotDeleteInput, domain.PlotDeleteResult](),
	newMCPToolRegistrar[domain.PlotListInput, domain.PlotListResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newMCPRegistrationModules(svc domain.WorldService, env domain.Env) []mcpRegistrationModule {
	return []mcpRegistrationModule{
		{
			name: mcpWorldToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerWorldTools(registrar, svc, env)
			},
		},
		{
			name: mcpLocationToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerLocationTools(registrar, svc, env)
			},
		},
		{
			name: mcpCharacterToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerCharacterTools(registrar, svc, env)
			},
		},
		{
			name: mcpPlotToolsModuleName,
			kind: mcpRegistrationKindTools,
			register: func(registrar mcpRegistrationTarget) error {
				return registerPlotTools(registrar, svc, env)
			},
		},
		{
			name: mcpWorldResourceModuleName,
			kind: mcpRegistrationKindResources,
			register: func(registrar mcpRegistrationTarget) error {
				registerWorldResources(registrar, svc, env)
				return nil
			},
		},
	}
}
