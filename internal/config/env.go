package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv overrides cfg fields that carry an env tag with the values of the
// corresponding environment variables. Unset variables leave fields alone.
func ParseEnv(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config target is required")
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
