package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable the binaries read.
const EnvPrefix = "WORLDFORGE_"

// ParseEnv loads configuration from environment variables whose names are
// given in env tags relative to EnvPrefix.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
