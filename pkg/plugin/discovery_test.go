package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/loom/pkg/generator"
)

type recordingRunner struct {
	entrypoints []string
	requests    [][]byte
	output      []byte
	err         error
}

func (r *recordingRunner) Run(_ context.Context, entrypoint string, request []byte) ([]byte, error) {
	r.entrypoints = append(r.entrypoints, entrypoint)
	r.requests = append(r.requests, request)
	return r.output, r.err
}

func writePlugin(t *testing.T, dir, name, manifest string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, manifestFile), []byte(manifest), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	t.Run("missing dir is not an error", func(t *testing.T) {
		r := NewRegistry(nil, Builtins()...)
		require.NoError(t, r.Discover(filepath.Join(t.TempDir(), "absent"), nil))
		assert.Equal(t, []string{"api", "web"}, r.Targets())
	})

	t.Run("registers valid candidates", func(t *testing.T) {
		dir := t.TempDir()
		writePlugin(t, dir, "loom-plugin-mobile", `
name: mobile-kit
target: mobile
entry: run.sh
version: 1.2.0
`)

		r := NewRegistry(nil, Builtins()...)
		require.NoError(t, r.Discover(dir, &recordingRunner{}))
		assert.Equal(t, []string{"api", "mobile", "web"}, r.Targets())

		e, ok := r.Get("mobile")
		require.True(t, ok)
		assert.Contains(t, e.Description, "mobile-kit")
		assert.Contains(t, e.Description, "1.2.0")
	})

	t.Run("skips entries without the naming prefix", func(t *testing.T) {
		dir := t.TempDir()
		writePlugin(t, dir, "some-other-tool", `
name: nope
target: nope
entry: run.sh
`)

		r := NewRegistry(nil, Builtins()...)
		require.NoError(t, r.Discover(dir, nil))
		assert.Equal(t, []string{"api", "web"}, r.Targets())
	})

	t.Run("skips malformed manifests without failing", func(t *testing.T) {
		dir := t.TempDir()
		writePlugin(t, dir, "loom-plugin-broken", "target: [unclosed")
		writePlugin(t, dir, "loom-plugin-incomplete", "name: no-target\nentry: run.sh\n")
		writePlugin(t, dir, "loom-plugin-ok", "name: ok\ntarget: desktop\nentry: main\n")

		// A candidate dir with no manifest at all.
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "loom-plugin-empty"), 0o755))

		r := NewRegistry(nil, Builtins()...)
		require.NoError(t, r.Discover(dir, nil))
		assert.Equal(t, []string{"api", "desktop", "web"}, r.Targets())
	})

	t.Run("cannot shadow a built-in target", func(t *testing.T) {
		dir := t.TempDir()
		writePlugin(t, dir, "loom-plugin-fakeweb", "name: fake\ntarget: web\nentry: run.sh\n")

		r := NewRegistry(nil, Builtins()...)
		require.NoError(t, r.Discover(dir, nil))

		p, err := r.Load(context.Background(), "web")
		require.NoError(t, err)
		_, isBuiltin := p.(*webPlugin)
		assert.True(t, isBuiltin, "built-in stays in place")
	})
}

func TestExecPlugin_Generate(t *testing.T) {
	manifest := &generator.Manifest{
		Files: []generator.Artifact{
			{Path: "migrations/001_create_tasks.sql", Content: "CREATE TABLE tasks (id TEXT PRIMARY KEY);"},
		},
	}
	out, err := json.Marshal(manifest)
	require.NoError(t, err)

	dir := t.TempDir()
	path := writePlugin(t, dir, "loom-plugin-mobile", "name: mobile-kit\ntarget: mobile\nentry: run.sh\n")

	runner := &recordingRunner{output: out}
	r := NewRegistry(nil, Builtins()...)
	require.NoError(t, r.Discover(dir, runner))

	p, err := r.Load(context.Background(), "mobile")
	require.NoError(t, err)
	require.NotNil(t, p)

	got, err := p.Generate(context.Background(), Input{
		Source:  "strand Task { field title: Text }",
		Options: Options{ProjectName: "demo", Database: "sqlite"},
	})
	require.NoError(t, err)
	assert.Equal(t, manifest.Files, got.Files)

	require.Len(t, runner.entrypoints, 1)
	assert.Equal(t, filepath.Join(path, "run.sh"), runner.entrypoints[0])

	var req execRequest
	require.NoError(t, json.Unmarshal(runner.requests[0], &req))
	assert.Equal(t, "strand Task { field title: Text }", req.Source)
	assert.Equal(t, "demo", req.Options.ProjectName)
}

func TestExecPlugin_RejectsInvalidManifest(t *testing.T) {
	dup := &generator.Manifest{
		Files: []generator.Artifact{
			{Path: "a.txt", Content: "x"},
			{Path: "a.txt", Content: "y"},
		},
	}
	out, err := json.Marshal(dup)
	require.NoError(t, err)

	p := &execPlugin{entrypoint: "run.sh", runner: &recordingRunner{output: out}}
	_, err = p.Generate(context.Background(), Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid manifest")
}
