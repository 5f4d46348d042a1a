package targets

import (
	"fmt"
	"io/fs"
	"path"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/mqtbench/cli/internal/loader"
	"github.com/mqtbench/cli/internal/output"
	"github.com/mqtbench/cli/internal/registry"
	"github.com/mqtbench/cli/internal/target"
)

const schemaFile = "_schema.cue"

type figuresSpec struct {
	Duration float64 `json:"duration"`
	Error    float64 `json:"error"`
}

type calibrationSpec struct {
	OneQubit figuresSpec `json:"oneQubit"`
	TwoQubit figuresSpec `json:"twoQubit"`
	Readout  figuresSpec `json:"readout"`
	Spread   float64     `json:"spread"`
}

type topologySpec struct {
	Kind     string  `json:"kind"`
	Edges    [][]int `json:"edges,omitempty"`
	Directed bool    `json:"directed"`
	Rows     int     `json:"rows,omitempty"`
	Cols     int     `json:"cols,omitempty"`
	TrimEnds bool    `json:"trimEnds"`
	Tail     bool    `json:"tail"`
}

type deviceSpec struct {
	NumQubits   int             `json:"numQubits"`
	Gates       []string        `json:"gates"`
	Virtual     []string        `json:"virtual"`
	Topology    topologySpec    `json:"topology"`
	Calibration calibrationSpec `json:"calibration"`
}

// compileUnit evaluates one unit file against the #Unit definition of the
// schema in the same directory and returns the field named by section.
func compileUnit(fsys fs.FS, dir, unit string, data []byte, section string) (cue.Value, error) {
	schemaSrc, err := fs.ReadFile(fsys, path.Join(dir, schemaFile))
	if err != nil {
		return cue.Value{}, fmt.Errorf("reading %s schema: %w", dir, err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSrc, cue.Filename(path.Join(dir, schemaFile)))
	if schema.Err() != nil {
		return cue.Value{}, fmt.Errorf("compiling %s schema: %w", dir, schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Unit"))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("looking up #Unit: %w", def.Err())
	}

	val := ctx.CompileBytes(data, cue.Filename(path.Join(dir, unit+unitExt)))
	if val.Err() != nil {
		return cue.Value{}, fmt.Errorf("compiling unit '%s': %w", unit, val.Err())
	}
	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("validating unit '%s': %w", unit, err)
	}
	return unified.LookupPath(cue.ParsePath(section)), nil
}

// eachField calls fn for the fields of v in source order.
func eachField(v cue.Value, fn func(name string, v cue.Value) error) error {
	iter, err := v.Fields()
	if err != nil {
		return err
	}
	for iter.Next() {
		if err := fn(iter.Selector().Unquoted(), iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func gatesetDecoder(fsys fs.FS, reg *registry.Registry[[]string]) loader.DecodeFunc {
	return func(unit string, data []byte) error {
		section, err := compileUnit(fsys, gatesetDir, unit, data, "gatesets")
		if err != nil {
			return err
		}
		return eachField(section, func(name string, v cue.Value) error {
			var gates []string
			if err := v.Decode(&gates); err != nil {
				return fmt.Errorf("decoding gateset '%s': %w", name, err)
			}
			if _, err := reg.Register(name, gatesetFactory(gates)); err != nil {
				return err
			}
			output.Debug("registered gateset", "unit", unit, "gateset", name, "gates", len(gates))
			return nil
		})
	}
}

func deviceDecoder(fsys fs.FS, reg *registry.Registry[*target.Target]) loader.DecodeFunc {
	return func(unit string, data []byte) error {
		section, err := compileUnit(fsys, deviceDir, unit, data, "devices")
		if err != nil {
			return err
		}
		return eachField(section, func(name string, v cue.Value) error {
			var spec deviceSpec
			if err := v.Decode(&spec); err != nil {
				return fmt.Errorf("decoding device '%s': %w", name, err)
			}
			// Build once so a broken entry fails at load time.
			canonical, err := buildDevice(name, spec)
			if err != nil {
				return err
			}
			factory := func() *target.Target {
				return canonical.Clone()
			}
			if _, err := reg.Register(name, factory); err != nil {
				return err
			}
			output.Debug("registered device", "unit", unit, "device", name, "qubits", spec.NumQubits)
			return nil
		})
	}
}

// buildDevice constructs the calibrated target described by spec.
func buildDevice(name string, spec deviceSpec) (*target.Target, error) {
	edges, err := spec.Topology.directedEdges(spec.NumQubits)
	if err != nil {
		return nil, fmt.Errorf("device '%s': %w", name, err)
	}
	tgt := target.New(spec.NumQubits, name)
	cal := newCalibrator(name, spec.Calibration, spec.Virtual)
	if err := addInstructions(tgt, spec.Gates, edges, cal); err != nil {
		return nil, fmt.Errorf("device '%s': %w", name, err)
	}
	return tgt, nil
}
