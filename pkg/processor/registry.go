package processor

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps processor names to their implementations. Registration
// happens at wiring time; lookups happen on every job execution.
type Registry struct {
	mu         sync.RWMutex
	processors map[string]Processor
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]Processor),
	}
}

// Register adds a processor under the given name.
func (r *Registry) Register(name string, p Processor) error {
	if name == "" {
		return fmt.Errorf("processor name cannot be empty")
	}
	if p == nil {
		return fmt.Errorf("processor %s cannot be nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.processors[name]; exists {
		return fmt.Errorf("processor %s already registered", name)
	}
	r.processors[name] = p
	return nil
}

// Get returns the processor registered under name, if any.
func (r *Registry) Get(name string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.processors[name]
	return p, ok
}

// Names returns the registered processor names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.processors))
	for name := range r.processors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
