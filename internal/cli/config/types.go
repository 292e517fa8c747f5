// Package config provides configuration management for the Loom CLI.
//
// Configuration is layered with koanf. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
package config

import "time"

// DatabaseConfig selects the backend that validates generated schemas.
type DatabaseConfig struct {
	Type string `koanf:"type"` // sqlite
	Path string `koanf:"path"` // file path or :memory:
}

// AIConfig holds the completion endpoint and self-healing knobs.
type AIConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	MaxTokens         int           `koanf:"max_tokens"`
	MaxRepairAttempts int           `koanf:"max_repair_attempts"`
	AttemptTimeout    time.Duration `koanf:"attempt_timeout"`
}

// Config holds all CLI configuration options.
type Config struct {
	ProjectName string         `koanf:"project_name"`
	Target      string         `koanf:"target"`
	OutDir      string         `koanf:"out"`
	PluginsDir  string         `koanf:"plugins_dir"`
	Database    DatabaseConfig `koanf:"database"`
	AI          AIConfig       `koanf:"ai"`
	Verbose     bool           `koanf:"verbose"`
}
