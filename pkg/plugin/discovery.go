package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/loomworks/loom/pkg/generator"
)

// pluginPrefix is the directory naming convention for external plugins.
// A directory named loom-plugin-<anything> under the plugins dir is a
// candidate; its plugin.yaml manifest supplies the target it serves.
const pluginPrefix = "loom-plugin-"

// manifestFile is the per-plugin metadata file.
const manifestFile = "plugin.yaml"

// pluginManifest is the parsed plugin.yaml.
type pluginManifest struct {
	Name    string `yaml:"name"`
	Target  string `yaml:"target"`
	Entry   string `yaml:"entry"`
	Version string `yaml:"version"`
}

// Runner executes an external plugin entrypoint with a JSON request on
// stdin and returns its stdout. It exists so discovery can be tested
// without spawning processes.
type Runner interface {
	Run(ctx context.Context, entrypoint string, request []byte) ([]byte, error)
}

// Discover scans dir for external plugin candidates and registers each
// valid one. Malformed candidates are logged and skipped; discovery never
// fails the overall run. A missing dir is not an error.
func (r *Registry) Discover(dir string, runner Runner) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading plugins dir %s: %w", dir, err)
	}

	for _, de := range entries {
		if !de.IsDir() || !strings.HasPrefix(de.Name(), pluginPrefix) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		m, err := readManifest(path)
		if err != nil {
			r.logger.Warn("skipping plugin candidate",
				"path", path, "error", err)
			continue
		}
		entry := Entry{
			Target:      m.Target,
			Description: fmt.Sprintf("%s %s (external)", m.Name, m.Version),
			New: func() (GeneratorPlugin, error) {
				if runner == nil {
					return nil, fmt.Errorf("no runner configured for external plugins")
				}
				return &execPlugin{
					entrypoint: filepath.Join(path, m.Entry),
					runner:     runner,
				}, nil
			},
		}
		if err := r.Register(entry); err != nil {
			r.logger.Warn("skipping plugin candidate",
				"path", path, "target", m.Target, "error", err)
			continue
		}
		r.logger.Debug("registered external plugin",
			"target", m.Target, "name", m.Name, "version", m.Version)
	}
	return nil
}

func readManifest(dir string) (*pluginManifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestFile, err)
	}
	var m pluginManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestFile, err)
	}
	if m.Target == "" {
		return nil, fmt.Errorf("%s missing required field: target", manifestFile)
	}
	if m.Entry == "" {
		return nil, fmt.Errorf("%s missing required field: entry", manifestFile)
	}
	return &m, nil
}

// execPlugin bridges an external process into the GeneratorPlugin
// interface. The request carries the raw blueprint source and options as
// JSON; the process replies with a manifest on stdout.
type execPlugin struct {
	entrypoint string
	runner     Runner
}

// execRequest is the wire shape sent to external plugins.
type execRequest struct {
	Source  string  `json:"source"`
	Options Options `json:"options"`
}

func (p *execPlugin) Generate(ctx context.Context, in Input) (*generator.Manifest, error) {
	req, err := json.Marshal(execRequest{Source: in.Source, Options: in.Options})
	if err != nil {
		return nil, fmt.Errorf("encoding plugin request: %w", err)
	}
	out, err := p.runner.Run(ctx, p.entrypoint, req)
	if err != nil {
		return nil, fmt.Errorf("running plugin %s: %w", p.entrypoint, err)
	}
	var m generator.Manifest
	if err := json.Unmarshal(out, &m); err != nil {
		return nil, fmt.Errorf("decoding plugin output: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("plugin %s produced invalid manifest: %w", p.entrypoint, err)
	}
	return &m, nil
}
