package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/francis-ohara/model-garden-agent/pkg/logger"
)

// Registry holds the tools exposed to the model, keyed by canonical name.
// Lookups are case-insensitive.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	closed bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a name twice is rejected so two tools
// can never shadow each other silently.
func (r *Registry) Register(ctx context.Context, t Tool) error {
	if t == nil {
		return errors.New("cannot register a nil tool")
	}
	name := canonicalizeName(t.Name())
	if name == "" {
		return errors.New("cannot register a tool with an empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.New("registry is closed")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	r.tools[name] = t
	logger.FromContext(ctx).Debug("registered tool", "name", name)
	return nil
}

// Find returns the tool registered under name.
func (r *Registry) Find(_ context.Context, name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[canonicalizeName(name)]
	return t, ok
}

// ListAll returns every registered tool sorted by name, so tool definitions
// reach the model in a stable order.
func (r *Registry) ListAll(_ context.Context) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })
	return all
}

// Close empties the registry and rejects further registrations.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]Tool)
	r.closed = true
	return nil
}
