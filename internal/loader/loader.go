// Package loader resolves product names to source units and imports each
// unit at most once, on first use.
package loader

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/registry"
)

// ExcludePrefix marks private units that discovery skips.
const ExcludePrefix = "_"

// Source enumerates loadable units and imports them.
// Importing a unit registers its products as a side effect.
type Source interface {
	Units() ([]string, error)
	Import(unit string) error
}

// Resolver maps a product name to the unit that registers it.
type Resolver func(name string) string

// moduleExceptions overrides the first-underscore rule for composite names.
var moduleExceptions = map[string]string{
	"clifford+t":           "clifford_t",
	"clifford+t+rotations": "clifford_t",
}

// ModuleFor returns the unit owning a gateset or device name: the prefix
// before the first underscore, except for a few composite names.
func ModuleFor(name string) string {
	if module, ok := moduleExceptions[name]; ok {
		return module
	}
	prefix, _, _ := strings.Cut(name, "_")
	return prefix
}

// Identity resolves every name to a unit of the same name.
func Identity(name string) string {
	return name
}

// Loader lazily fills a registry from a Source.
type Loader[T any] struct {
	registry *registry.Registry[T]
	source   Source
	resolve  Resolver

	discoverOnce sync.Once
	discovered   []string
	discoverErr  error

	mu       sync.Mutex
	imported map[string]bool
}

// New creates a loader that fills reg from src using resolve.
func New[T any](reg *registry.Registry[T], src Source, resolve Resolver) *Loader[T] {
	return &Loader[T]{
		registry: reg,
		source:   src,
		resolve:  resolve,
		imported: make(map[string]bool),
	}
}

// Registry returns the registry this loader fills.
func (l *Loader[T]) Registry() *registry.Registry[T] {
	return l.registry
}

// Discover scans the source once and returns the sorted unit identifiers.
// Units starting with ExcludePrefix are skipped. The result is cached.
func (l *Loader[T]) Discover() ([]string, error) {
	l.discoverOnce.Do(func() {
		units, err := l.source.Units()
		if err != nil {
			l.discoverErr = fmt.Errorf("discovering %s modules: %w", l.registry.Kind(), err)
			return
		}
		for _, u := range units {
			if strings.HasPrefix(u, ExcludePrefix) {
				continue
			}
			l.discovered = append(l.discovered, u)
		}
		slices.Sort(l.discovered)
		l.discovered = slices.Compact(l.discovered)
	})
	return append([]string(nil), l.discovered...), l.discoverErr
}

// EnsureLoaded imports the unit owning name unless name is already
// registered. Unknown units fail with UnsupportedNameError.
func (l *Loader[T]) EnsureLoaded(name string) error {
	if l.registry.Has(name) {
		return nil
	}

	known, err := l.Discover()
	if err != nil {
		return err
	}

	unit := l.resolve(name)
	if !slices.Contains(known, unit) {
		return &UnsupportedNameError{Kind: l.registry.Kind(), Name: name, Known: known}
	}
	return l.importUnit(unit)
}

// Get loads name on demand and returns a fresh product.
func (l *Loader[T]) Get(name string) (T, error) {
	if err := l.EnsureLoaded(name); err != nil {
		var zero T
		return zero, err
	}
	return l.registry.Get(name)
}

// ListAvailable imports every discovered unit and returns all registered
// names, sorted. Repeated calls import nothing new.
func (l *Loader[T]) ListAvailable() ([]string, error) {
	known, err := l.Discover()
	if err != nil {
		return nil, err
	}
	for _, unit := range known {
		if err := l.importUnit(unit); err != nil {
			return nil, err
		}
	}
	names := l.registry.Names()
	slices.Sort(names)
	return names, nil
}

// Imported returns the units imported so far, sorted.
func (l *Loader[T]) Imported() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	units := make([]string, 0, len(l.imported))
	for u := range l.imported {
		units = append(units, u)
	}
	slices.Sort(units)
	return units
}

func (l *Loader[T]) importUnit(unit string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.imported[unit] {
		return nil
	}
	if err := l.source.Import(unit); err != nil {
		return fmt.Errorf("importing %s module '%s': %w", l.registry.Kind(), unit, err)
	}
	l.imported[unit] = true
	return nil
}

// UnsupportedNameError is returned when no discovered unit owns a name.
type UnsupportedNameError struct {
	Kind  string
	Name  string
	Known []string
}

func (e *UnsupportedNameError) Error() string {
	return fmt.Sprintf("'%s' is not a supported %s. Known modules: %s", e.Name, e.Kind, registry.QuoteList(e.Known))
}

// Unwrap maps the error to the not-found sentinel.
func (e *UnsupportedNameError) Unwrap() error {
	return oerrors.ErrNotFound
}
