package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/worldforge/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
// Startup picks stdio for local tools and HTTP for remote integrations.
func Run(ctx context.Context, svc domain.WorldService, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		return runWithTransport(ctx, svc, cfg, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, svc, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runWithHTTPTransport creates a server and serves it over streamable HTTP.
func runWithHTTPTransport(ctx context.Context, svc domain.WorldService, cfg Config) error {
	mcpServer, err := New(svc, cfg)
	if err != nil {
		return err
	}
	httpTransport := NewHTTPTransport(cfg.HTTPAddr, mcpServer.mcpServer, cfg)
	return httpTransport.Start(ctx)
}

// runWithTransport creates a server and serves it over the provided transport.
func runWithTransport(ctx context.Context, svc domain.WorldService, cfg Config, transport mcp.Transport) error {
	mcpServer, err := New(svc, cfg)
	if err != nil {
		return err
	}
	return mcpServer.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
