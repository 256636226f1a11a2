// Package registry provides a name-keyed registry with restorable defaults.
// Strategies, schema constructors and mappers each keep their own instance.
package registry

import (
	"sort"
	"sync"
)

// Registry holds named items and remembers how to rebuild its default content.
type Registry[T any] struct {
	mu       sync.RWMutex
	items    map[string]T
	defaults func() map[string]T
}

// New creates a registry seeded from defaults. defaults may be nil.
func New[T any](defaults func() map[string]T) *Registry[T] {
	r := &Registry[T]{defaults: defaults}
	r.ResetToDefaults()
	return r
}

// Register adds or replaces an item by name.
func (r *Registry[T]) Register(name string, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = map[string]T{}
	}
	r.items[name] = item
}

// Unregister removes an item and reports whether it was present.
func (r *Registry[T]) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		return false
	}
	delete(r.items, name)
	return true
}

func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	return item, ok
}

func (r *Registry[T]) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// GetAll returns a copy of the registered items.
func (r *Registry[T]) GetAll() map[string]T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]T, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	return out
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for k := range r.items {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ResetToDefaults drops every registration and reinstalls the defaults.
func (r *Registry[T]) ResetToDefaults() {
	items := map[string]T{}
	if r.defaults != nil {
		for k, v := range r.defaults() {
			items[k] = v
		}
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
