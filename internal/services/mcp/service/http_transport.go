package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/net/netutil"
)

var listenTCP = net.Listen

const (
	// defaultHTTPAddr keeps the default footprint on loopback.
	defaultHTTPAddr = "localhost:8081"

	// defaultReadHeaderTimeout bounds how long a client may take to send headers.
	defaultReadHeaderTimeout = 10 * time.Second

	// defaultShutdownTimeout is the maximum time to wait for graceful HTTP server shutdown.
	defaultShutdownTimeout = 35 * time.Second
)

// HTTPTransport serves MCP over streamable HTTP on /mcp with a health probe on
// /mcp/health. Every request passes host validation, and bearer auth when a
// secret is configured, before it reaches the MCP handler.
type HTTPTransport struct {
	addr         string
	allowedHosts map[string]struct{}
	authSecret   []byte
	maxConns     int
	server       *mcp.Server
	httpServer   *http.Server
}

// NewHTTPTransport creates an HTTP transport for server. It defaults to
// localhost-only binding unless addr broadens access.
func NewHTTPTransport(addr string, server *mcp.Server, cfg Config) *HTTPTransport {
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	transport := &HTTPTransport{
		addr:         addr,
		allowedHosts: parseAllowedHosts(cfg.AllowedHosts),
		maxConns:     cfg.MaxConns,
		server:       server,
	}
	if secret := strings.TrimSpace(cfg.AuthSecret); secret != "" {
		transport.authSecret = []byte(secret)
	}
	return transport
}

// Handler returns the HTTP routes served by the transport.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if err := t.validateLocalRequest(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if !t.authorizeRequest(w, r) {
			return
		}
		streamable.ServeHTTP(w, r)
	})
	mux.HandleFunc("/mcp/health", t.handleHealth)
	return mux
}

// Start listens on the configured address and serves until ctx ends.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t == nil || t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	return t.serve(ctx, listener)
}

func (t *HTTPTransport) serve(ctx context.Context, listener net.Listener) error {
	if t.maxConns > 0 {
		listener = netutil.LimitListener(listener, t.maxConns)
	}
	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	log.Printf("Starting MCP HTTP server on %s", listener.Addr())

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("Shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}
