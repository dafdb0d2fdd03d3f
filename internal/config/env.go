package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Databases names the stores the CLIs read and write. Flags override them.
type Databases struct {
	ProfilePath string `env:"MOVECHECK_PROFILE_DB"`
	CheckLog    string `env:"MOVECHECK_CHECK_LOG"`
	DatabaseURL string `env:"DATABASE_URL"`
}

// LoadDatabases reads Databases from the environment.
func LoadDatabases() (Databases, error) {
	var d Databases
	if err := ParseEnv(&d); err != nil {
		return Databases{}, err
	}
	return d, nil
}
