package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "loom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Target)
	assert.Equal(t, "generated", cfg.OutDir)
	assert.Equal(t, "plugins", cfg.PluginsDir)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 4096, cfg.AI.MaxTokens)
	assert.Equal(t, 2, cfg.AI.MaxRepairAttempts)
	assert.False(t, cfg.Verbose)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
project_name: inventory
target: api
out: build
database:
  type: sqlite
  path: inventory.db
ai:
  base_url: http://localhost:11434/v1
  model: llama3
  max_repair_attempts: 5
  attempt_timeout: 30s
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "inventory", cfg.ProjectName)
	assert.Equal(t, "api", cfg.Target)
	assert.Equal(t, "build", cfg.OutDir)
	assert.Equal(t, "inventory.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.BaseURL)
	assert.Equal(t, "llama3", cfg.AI.Model)
	assert.Equal(t, 5, cfg.AI.MaxRepairAttempts)
	assert.Equal(t, 30*time.Second, cfg.AI.AttemptTimeout)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "target: api\n")

	t.Setenv("LOOM_TARGET", "web")
	t.Setenv("LOOM_AI__API_KEY", "sk-env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.Target)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "target: api\nout: build\n")
	t.Setenv("LOOM_TARGET", "web")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "", "")
	flags.String("out", "", "")
	require.NoError(t, flags.Parse([]string{"--target", "mobile"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "mobile", cfg.Target, "changed flag wins")
	assert.Equal(t, "build", cfg.OutDir, "unchanged flag leaves file value intact")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "defaults are valid"},
		{
			name:      "missing target",
			mutate:    func(c *Config) { c.Target = "" },
			errSubstr: "target is required",
		},
		{
			name:      "missing out dir",
			mutate:    func(c *Config) { c.OutDir = "" },
			errSubstr: "out directory is required",
		},
		{
			name:      "unknown database type",
			mutate:    func(c *Config) { c.Database.Type = "oracle" },
			errSubstr: "unknown database type",
		},
		{
			name:      "negative repair budget",
			mutate:    func(c *Config) { c.AI.MaxRepairAttempts = -1 },
			errSubstr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", nil)
			require.NoError(t, err)
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err = cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}
