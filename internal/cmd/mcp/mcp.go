// Package mcp parses MCP command configuration and runs the world MCP server.
package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	platformcmd "github.com/louisbranch/worldforge/internal/platform/cmd"
	"github.com/louisbranch/worldforge/internal/platform/otel"
	"github.com/louisbranch/worldforge/internal/services/mcp/service"
	worldapp "github.com/louisbranch/worldforge/internal/services/world/app"
	"github.com/louisbranch/worldforge/internal/services/world/storage"
	"github.com/louisbranch/worldforge/internal/services/world/storage/jsonfile"
	"github.com/louisbranch/worldforge/internal/services/world/storage/sqlite"
)

const (
	// BackendJSON stores the world as one JSON document.
	BackendJSON = "json"
	// BackendSQLite stores world revisions in a SQLite database.
	BackendSQLite = "sqlite"
)

// ErrStorePathRequired reports a missing store path at startup.
var ErrStorePathRequired = errors.New("store path is required (set WORLDFORGE_STORE_PATH or -store)")

// Config holds MCP command configuration.
type Config struct {
	StorePath      string   `env:"STORE_PATH"`
	StoreBackend   string   `env:"STORE_BACKEND"     envDefault:"json"`
	StoreRetention int      `env:"STORE_RETENTION"   envDefault:"100"`
	Transport      string   `env:"MCP_TRANSPORT"     envDefault:"stdio"`
	HTTPAddr       string   `env:"MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	MaxConns       int      `env:"MCP_MAX_CONNS"     envDefault:"64"`
	AuthSecret     string   `env:"MCP_AUTH_SECRET"`
	AllowedHosts   []string `env:"MCP_ALLOWED_HOSTS" envSeparator:","`
	Locale         string   `env:"LOCALE"            envDefault:"en-US"`
	OTelEndpoint   string   `env:"OTEL_ENDPOINT"`
	OTelEnabled    string   `env:"OTEL_ENABLED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "world store path")
	fs.StringVar(&cfg.StoreBackend, "backend", cfg.StoreBackend, "Store backend: json or sqlite")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "maximum concurrent HTTP connections (0 = unlimited)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.StorePath) == "" {
		return Config{}, ErrStorePathRequired
	}
	return cfg, nil
}

// Run opens the world store and serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	telemetry := otel.Config{
		ServiceName: platformcmd.ServiceMCP,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.OTelEnabled,
	}
	return platformcmd.RunWithTelemetry(ctx, telemetry, func(ctx context.Context) error {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close world store: %v", err)
			}
		}()

		worldService, err := worldapp.New(ctx, store)
		if err != nil {
			return err
		}
		log.Printf("world store %s ready at %s", cfg.StoreBackend, cfg.StorePath)

		return service.Run(ctx, worldService, service.Config{
			Transport:    service.TransportKind(cfg.Transport),
			HTTPAddr:     cfg.HTTPAddr,
			MaxConns:     cfg.MaxConns,
			AuthSecret:   cfg.AuthSecret,
			AllowedHosts: cfg.AllowedHosts,
			Locale:       cfg.Locale,
		})
	})
}

func openStore(cfg Config) (storage.WorldStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case "", BackendJSON:
		store, err := jsonfile.Open(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return store, nil
	case BackendSQLite:
		store, err := sqlite.Open(cfg.StorePath, sqlite.WithRetention(cfg.StoreRetention))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("store backend %q is not supported", cfg.StoreBackend)
	}
}
