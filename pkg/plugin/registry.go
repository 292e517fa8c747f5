package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Registry maps target identifiers to generator plugins. It is an explicit
// instance constructed once at process start and passed by reference; there
// is no package-level singleton, so tests can build isolated registries.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	loaded  map[string]GeneratorPlugin
	logger  *slog.Logger
}

// NewRegistry creates a registry with the given built-in entries. Built-ins
// are available immediately, before any discovery scan runs.
func NewRegistry(logger *slog.Logger, builtins ...Entry) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{
		entries: make(map[string]Entry, len(builtins)),
		loaded:  make(map[string]GeneratorPlugin),
		logger:  logger,
	}
	for _, e := range builtins {
		e.builtin = true
		r.entries[e.Target] = e
	}
	return r
}

// Register adds an externally discovered entry. A built-in target can never
// be replaced.
func (r *Registry) Register(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[e.Target]; ok && existing.builtin {
		return fmt.Errorf("target %q is built in and cannot be replaced", e.Target)
	}
	e.builtin = false
	r.entries[e.Target] = e
	return nil
}

// Get returns the entry for a target, if registered.
func (r *Registry) Get(target string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[target]
	return e, ok
}

// Targets returns all registered target identifiers (sorted).
func (r *Registry) Targets() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	targets := make([]string, 0, len(r.entries))
	for t := range r.entries {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Load resolves the plugin instance for a target, constructing it at most
// once and caching the result. An unknown target yields (nil, nil) rather
// than an error; a factory failure yields a *LoadError.
func (r *Registry) Load(_ context.Context, target string) (GeneratorPlugin, error) {
	r.mu.RLock()
	if p, ok := r.loaded[target]; ok {
		r.mu.RUnlock()
		return p, nil
	}
	entry, known := r.entries[target]
	r.mu.RUnlock()

	if !known {
		return nil, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if p, ok := r.loaded[target]; ok {
		return p, nil
	}

	p, err := entry.New()
	if err != nil {
		return nil, &LoadError{Target: target, Err: err}
	}
	r.loaded[target] = p
	return p, nil
}
