package dialog

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// StepFunc is one waterfall step. It receives the frame's local state and the
// prior step's result, and must return a StepOutcome. A returned error is
// caught at the runner boundary and converted to a failed dialog end, so
// collaborator failures never become stack-level faults.
type StepFunc func(ctx context.Context, tc *TurnContext, state map[string]any, result any) (StepOutcome, error)

// Definition is a named, immutable dialog template. Uses declares the child
// dialogs its steps may begin; the registry validates those references at
// startup so a dangling name fails fast instead of at first use.
type Definition struct {
	Name  string
	Uses  []string
	Steps []StepFunc
}

// Registry maps dialog names to definitions. Populated once at process start;
// never mutated afterwards.
type Registry struct {
	mu      sync.RWMutex
	dialogs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialogs: make(map[string]*Definition)}
}

// Register adds a definition. Names must be unique and definitions non-empty.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("dialog definition requires a name")
	}
	if len(def.Steps) == 0 {
		return fmt.Errorf("dialog %q has no steps", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dialogs[def.Name]; exists {
		return fmt.Errorf("dialog %q already registered", def.Name)
	}
	r.dialogs[def.Name] = def
	return nil
}

// Lookup returns the definition for a name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.dialogs[name]
	return def, ok
}

// CheckReferences verifies that every declared child dialog resolves to a
// registered definition.
func (r *Registry) CheckReferences() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, def := range r.dialogs {
		for _, child := range def.Uses {
			if _, ok := r.dialogs[child]; !ok {
				return fmt.Errorf("dialog %q uses %q: %w", name, child, ErrUnknownDialog)
			}
		}
	}
	return nil
}

// Names returns the registered dialog names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialogs))
	for name := range r.dialogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
