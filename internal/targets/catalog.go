// Package targets builds gateset and device targets from the embedded CUE
// catalog. Catalog units are loaded lazily, one vendor file at a time, and
// every target handed out is a deep copy of a memoised canonical instance.
package targets

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/loader"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/registry"
	"github.com/mqtbench/cli/internal/target"
)

//go:embed all:catalog
var catalogFS embed.FS

const (
	gatesetDir = "gatesets"
	deviceDir  = "devices"
	unitExt    = ".cue"
)

// Gatesets the level pipeline refers to by name.
const (
	// CliffordT is the discrete gateset that needs rotation synthesis.
	CliffordT = "clifford+t"
	// CliffordTRotations adds continuous rotations to CliffordT.
	CliffordTRotations = "clifford+t+rotations"
)

// Catalog resolves gateset and device names to targets.
type Catalog struct {
	gatesets *loader.Loader[[]string]
	devices  *loader.Loader[*target.Target]
	memo     *gocache.Cache
}

// Option configures a Catalog.
type Option func(*catalogOptions)

type catalogOptions struct {
	fsys fs.FS
}

// WithFS replaces the embedded catalog. fsys must hold gatesets/ and
// devices/ directories, each with a _schema.cue.
func WithFS(fsys fs.FS) Option {
	return func(o *catalogOptions) { o.fsys = fsys }
}

// New creates a catalog with empty registries.
func New(opts ...Option) *Catalog {
	o := catalogOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fsys == nil {
		sub, err := fs.Sub(catalogFS, "catalog")
		if err != nil {
			panic(err)
		}
		o.fsys = sub
	}

	c := &Catalog{memo: gocache.New(gocache.NoExpiration, 0)}
	gatesets := registry.New[[]string]("gateset")
	devices := registry.New[*target.Target]("device")
	c.gatesets = loader.New(gatesets,
		loader.NewFSSource(o.fsys, gatesetDir, unitExt, gatesetDecoder(o.fsys, gatesets)),
		loader.ModuleFor)
	c.devices = loader.New(devices,
		loader.NewFSSource(o.fsys, deviceDir, unitExt, deviceDecoder(o.fsys, devices)),
		loader.ModuleFor)
	return c
}

var defaultCatalog = New()

// Default returns the process-wide catalog.
func Default() *Catalog {
	return defaultCatalog
}

// RegisterGateset adds a gateset outside the embedded catalog.
func (c *Catalog) RegisterGateset(name string, gates []string) error {
	_, err := c.gatesets.Registry().Register(name, gatesetFactory(gates))
	return err
}

// Gateset returns a copy of the gate list registered under name.
func (c *Catalog) Gateset(name string) ([]string, error) {
	return c.gatesets.Get(name)
}

// GatesetNames imports every gateset unit and returns all names, sorted.
func (c *Catalog) GatesetNames() ([]string, error) {
	return c.gatesets.ListAvailable()
}

// DeviceNames imports every device unit and returns all names, sorted.
func (c *Catalog) DeviceNames() ([]string, error) {
	return c.devices.ListAvailable()
}

// TargetForGateset builds an all-to-all target of numQubits qubits for a
// gateset. Standard gates carry generated calibration; custom gates are
// added without properties on every qubit combination.
func (c *Catalog) TargetForGateset(name string, numQubits int) (*target.Target, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("gateset target needs a positive qubit count, got %d", numQubits)
	}
	key := fmt.Sprintf("gateset/%s/%d", name, numQubits)
	if cached, ok := c.memo.Get(key); ok {
		return cached.(*target.Target).Clone(), nil
	}

	gates, err := c.Gateset(name)
	if err != nil {
		return nil, err
	}

	var standard, custom []string
	for _, g := range gates {
		if def, ok := circuit.Lookup(g); ok && def.Standard {
			standard = append(standard, g)
			continue
		}
		custom = append(custom, g)
	}
	if !slices.Contains(standard, "measure") {
		standard = append(standard, "measure")
	}

	tgt := target.New(numQubits, name)
	cal := newCalibrator(name, genericCalibration, nil)
	if err := addInstructions(tgt, standard, allToAll(numQubits), cal); err != nil {
		return nil, err
	}
	for _, g := range custom {
		add, ok := customGates[g]
		if !ok {
			return nil, &UnknownGateError{Gate: g}
		}
		add(tgt)
	}

	output.Debug("built gateset target", "gateset", name, "qubits", numQubits, "custom", len(custom))
	c.memo.Set(key, tgt, gocache.NoExpiration)
	return tgt.Clone(), nil
}

// Device returns a copy of the calibrated target registered under name.
func (c *Catalog) Device(name string) (*target.Target, error) {
	key := "device/" + name
	if cached, ok := c.memo.Get(key); ok {
		return cached.(*target.Target).Clone(), nil
	}
	tgt, err := c.devices.Get(name)
	if err != nil {
		return nil, err
	}
	c.memo.Set(key, tgt, gocache.NoExpiration)
	return tgt.Clone(), nil
}

// ImportedUnits returns the gateset and device units loaded so far.
func (c *Catalog) ImportedUnits() (gatesets, devices []string) {
	return c.gatesets.Imported(), c.devices.Imported()
}

func gatesetFactory(gates []string) registry.Factory[[]string] {
	gates = slices.Clone(gates)
	return func() []string { return slices.Clone(gates) }
}

// addInstructions adds each gate on every qubit (single-qubit gates and
// measure) or on every edge (two-qubit gates). Directives apply globally.
func addInstructions(tgt *target.Target, gates []string, edges [][2]int, cal *calibrator) error {
	for _, g := range gates {
		def, ok := circuit.Lookup(g)
		if !ok {
			return &UnknownGateError{Gate: g}
		}
		switch {
		case def.NumQubits == 1:
			for q := 0; q < tgt.NumQubits; q++ {
				qargs := target.Qargs{q}
				if err := tgt.Add(g, qargs, cal.properties(g, qargs)); err != nil {
					return err
				}
			}
		case def.NumQubits == 2:
			for _, e := range edges {
				qargs := target.Qargs{e[0], e[1]}
				if err := tgt.Add(g, qargs, cal.properties(g, qargs)); err != nil {
					return err
				}
			}
		default:
			tgt.AddGlobal(g)
		}
	}
	return nil
}
