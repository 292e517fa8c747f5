package config

import (
	"fmt"

	"github.com/loomworks/loom/internal/backend"
)

// Validate checks that the configuration is usable. It uses the backend
// registry as the single source of truth for database types.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target is required")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out directory is required")
	}

	if c.Database.Type != "" {
		known := false
		for _, name := range backend.List() {
			if name == c.Database.Type {
				known = true
				break
			}
		}
		if !known {
			return &backend.UnknownBackendError{
				Type:      c.Database.Type,
				Available: backend.List(),
			}
		}
	}

	if c.AI.MaxRepairAttempts < 0 {
		return fmt.Errorf("ai.max_repair_attempts must not be negative")
	}
	return nil
}
