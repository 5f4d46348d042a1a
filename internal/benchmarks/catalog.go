// Package benchmarks holds the benchmark circuit factories. Each factory is
// declared by a package init and registered into a catalog the first time
// its name is requested.
package benchmarks

import (
	"fmt"
	"sync"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/loader"
	"github.com/mqtbench/cli/internal/registry"
)

// Func builds a benchmark circuit on numQubits qubits.
type Func func(numQubits int) (*circuit.Circuit, error)

// Benchmark is one catalog entry.
type Benchmark struct {
	Name        string
	Description string
	Create      Func
}

var (
	declMu       sync.Mutex
	declarations = map[string]Benchmark{}
)

// declare records a factory for later registration. Declaring a name twice
// panics.
func declare(name, description string, create Func) {
	declMu.Lock()
	defer declMu.Unlock()
	if _, dup := declarations[name]; dup {
		panic(fmt.Sprintf("benchmark '%s' declared twice", name))
	}
	declarations[name] = Benchmark{Name: name, Description: description, Create: create}
}

// Catalog resolves benchmark names to factories. Every benchmark is its own
// unit, loaded on first use.
type Catalog struct {
	loader *loader.Loader[Benchmark]
}

// New creates a catalog over every declared benchmark with an empty
// registry.
func New() *Catalog {
	reg := registry.New[Benchmark]("benchmark")
	src := loader.NewUnitSource()

	declMu.Lock()
	for name, b := range declarations {
		src.Add(name, func() error {
			_, err := reg.Register(name, func() Benchmark { return b })
			return err
		})
	}
	declMu.Unlock()

	return &Catalog{loader: loader.New(reg, src, loader.Identity)}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog.
func Default() *Catalog {
	defaultOnce.Do(func() { defaultCatalog = New() })
	return defaultCatalog
}

// Get returns the benchmark registered under name.
func (c *Catalog) Get(name string) (Benchmark, error) {
	return c.loader.Get(name)
}

// Create builds benchmark name on numQubits qubits.
func (c *Catalog) Create(name string, numQubits int) (*circuit.Circuit, error) {
	b, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return b.Create(numQubits)
}

// Names loads every benchmark and returns the names, sorted.
func (c *Catalog) Names() ([]string, error) {
	return c.loader.ListAvailable()
}

// Descriptions maps every benchmark name to its one-line description.
func (c *Catalog) Descriptions() (map[string]string, error) {
	names, err := c.Names()
	if err != nil {
		return nil, err
	}
	all := c.loader.Registry().All()
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = all[name].Description
	}
	return out, nil
}

// Imported returns the benchmarks loaded so far.
func (c *Catalog) Imported() []string {
	return c.loader.Imported()
}
