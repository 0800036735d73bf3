package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv applies environment overrides to target. Unset variables keep
// the value target already holds.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
