package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/loomworks/loom/pkg/selfheal"
)

// Default configuration values.
const (
	DefaultTarget     = "web"
	DefaultOutDir     = "generated"
	DefaultPluginsDir = "plugins"
	DefaultDatabase   = "sqlite"
	DefaultDBPath     = ":memory:"
	DefaultModel      = "gpt-4o-mini"
	DefaultMaxTokens  = 4096
)

// envPrefix namespaces Loom environment variables, e.g. LOOM_TARGET or
// LOOM_AI__API_KEY (double underscore separates nested keys).
const envPrefix = "LOOM_"

// findConfigFile finds the config file to use.
// Priority: explicit path > loom.yaml > loom.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"loom.yaml", "loom.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target":                 DefaultTarget,
		"out":                    DefaultOutDir,
		"plugins_dir":            DefaultPluginsDir,
		"database.type":          DefaultDatabase,
		"database.path":          DefaultDBPath,
		"ai.model":               DefaultModel,
		"ai.max_tokens":          DefaultMaxTokens,
		"ai.max_repair_attempts": selfheal.DefaultMaxRepairAttempts,
		"verbose":                false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file not found: %s", cfgFile)
		}
	}
	if configFile := findConfigFile(cfgFile); configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables.
	// Transform: LOOM_TARGET -> target, LOOM_AI__API_KEY -> ai.api_key
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}
