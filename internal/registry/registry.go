// Package registry provides a generic name-to-factory catalog used for
// benchmarks, gatesets and devices.
package registry

import (
	"fmt"
	"strings"
	"sync"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

// Factory builds a fresh product on every call.
type Factory[T any] func() T

// Registry is a name-keyed factory catalog. Names are unique and
// registration order is preserved. Entries are never removed.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
	order     []string
}

// New creates an empty registry. kind names the product in error
// messages, for example "gateset" or "device".
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{
		kind:      kind,
		factories: make(map[string]Factory[T]),
	}
}

// Kind returns the product kind this registry holds.
func (r *Registry[T]) Kind() string {
	return r.kind
}

// Register stores factory under name and returns it unchanged.
// Registering an existing name fails and keeps the first registration.
func (r *Registry[T]) Register(name string, factory Factory[T]) (Factory[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return nil, &DuplicateNameError{Kind: r.kind, Name: name}
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return factory, nil
}

// MustRegister is Register for package-level registration; it panics on
// duplicates, which are programming errors.
func (r *Registry[T]) MustRegister(name string, factory Factory[T]) Factory[T] {
	f, err := r.Register(name, factory)
	if err != nil {
		panic(err)
	}
	return f
}

// Get invokes the factory registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, &UnknownNameError{Kind: r.kind, Name: name, Available: r.Names()}
	}
	return factory(), nil
}

// Has reports whether name is registered.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns all registered names in registration order.
// The slice is a copy.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// All materializes every factory. It is meant for introspection only.
func (r *Registry[T]) All() map[string]T {
	r.mu.RLock()
	factories := make(map[string]Factory[T], len(r.factories))
	for name, f := range r.factories {
		factories[name] = f
	}
	r.mu.RUnlock()

	all := make(map[string]T, len(factories))
	for name, f := range factories {
		all[name] = f()
	}
	return all
}

// Len returns the number of registered names.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// DuplicateNameError is returned when a name is registered twice.
type DuplicateNameError struct {
	Kind string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name '%s' already registered", capitalize(e.Kind), e.Name)
}

// Unwrap maps the error to the validation sentinel.
func (e *DuplicateNameError) Unwrap() error {
	return oerrors.ErrValidation
}

// UnknownNameError is returned when a name has no registration.
type UnknownNameError struct {
	Kind      string
	Name      string
	Available []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("Unknown %s '%s'. Available %ss: %s", e.Kind, e.Name, e.Kind, QuoteList(e.Available))
}

// Unwrap maps the error to the not-found sentinel.
func (e *UnknownNameError) Unwrap() error {
	return oerrors.ErrNotFound
}

// QuoteList renders names as ['a', 'b'].
func QuoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
