package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keystroke/internal/input/keystroke"
)

// Registry holds registered keymaps and answers match queries.
// It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*ParsedKeymap

	// order is the registration order of keymap names.
	order []string

	// index maps context -> keystroke -> binding. Later registrations
	// replace earlier ones for the same chord and context.
	index map[string]map[keystroke.Keystroke]ParsedBinding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*ParsedKeymap),
		index:   make(map[string]map[keystroke.Keystroke]ParsedBinding),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced in place.
// An invalid keymap leaves the registry unchanged.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("registering keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.keymaps[km.Name]; !exists {
		r.order = append(r.order, km.Name)
	}
	r.keymaps[km.Name] = parsed
	r.rebuildLocked()
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keymaps[name]; !ok {
		return
	}
	delete(r.keymaps, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.rebuildLocked()
}

// Get returns a keymap by name, or nil.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Names returns the registered keymap names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// rebuildLocked recomputes the lookup index. Caller must hold the write lock.
func (r *Registry) rebuildLocked() {
	r.index = make(map[string]map[keystroke.Keystroke]ParsedBinding)
	for _, name := range r.order {
		for _, pb := range r.keymaps[name].ParsedBindings {
			byKey, ok := r.index[pb.Context]
			if !ok {
				byKey = make(map[keystroke.Keystroke]ParsedBinding)
				r.index[pb.Context] = byKey
			}
			byKey[pb.Keystroke] = pb
		}
	}
}

// Match finds the binding for a key press in the given context.
//
// The press's match candidates are tried in order. For each candidate a
// binding in context is preferred over a global one; the first candidate
// with any binding wins.
func (r *Registry) Match(press keystroke.Keystroke, context string) (ParsedBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, candidate := range press.MatchCandidates() {
		if pb, ok := r.lookupLocked(candidate, context); ok {
			return pb, true
		}
	}
	return ParsedBinding{}, false
}

func (r *Registry) lookupLocked(ks keystroke.Keystroke, context string) (ParsedBinding, bool) {
	if context != "" {
		if pb, ok := r.index[context][ks]; ok {
			return pb, true
		}
	}
	pb, ok := r.index[""][ks]
	return pb, ok
}

// Bindings returns the bindings in effect for a context: the context's own
// bindings plus global bindings it does not shadow, sorted by action.
func (r *Registry) Bindings(context string) []ParsedBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ParsedBinding, 0)
	if context != "" {
		for _, pb := range r.index[context] {
			result = append(result, pb)
		}
	}
	for ks, pb := range r.index[""] {
		if context != "" {
			if _, shadowed := r.index[context][ks]; shadowed {
				continue
			}
		}
		result = append(result, pb)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Action != result[j].Action {
			return result[i].Action < result[j].Action
		}
		return result[i].Keys < result[j].Keys
	})
	return result
}
