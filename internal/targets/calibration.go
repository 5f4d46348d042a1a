package targets

import (
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/mqtbench/cli/internal/target"
)

// genericCalibration backs the standard gates of gateset targets.
var genericCalibration = calibrationSpec{
	OneQubit: figuresSpec{Duration: 50e-9, Error: 1e-3},
	TwoQubit: figuresSpec{Duration: 500e-9, Error: 1e-2},
	Readout:  figuresSpec{Duration: 1e-6, Error: 2e-2},
	Spread:   0.2,
}

// calibrator derives per-instruction figures from nominal values. Each
// figure is jittered by a generator seeded from the owner, the gate and the
// unordered qubit tuple, so both directions of a pair agree and figures are
// stable across runs.
type calibrator struct {
	owner   string
	spec    calibrationSpec
	virtual map[string]bool
}

func newCalibrator(owner string, spec calibrationSpec, virtual []string) *calibrator {
	c := &calibrator{owner: owner, spec: spec, virtual: make(map[string]bool, len(virtual))}
	for _, g := range virtual {
		c.virtual[g] = true
	}
	return c
}

func (c *calibrator) properties(gate string, qargs target.Qargs) *target.InstructionProperties {
	if c.virtual[gate] {
		return &target.InstructionProperties{}
	}
	nominal := c.spec.OneQubit
	switch {
	case gate == "measure":
		nominal = c.spec.Readout
	case len(qargs) == 2:
		nominal = c.spec.TwoQubit
	}

	sorted := slices.Clone(qargs)
	slices.Sort(sorted)
	h := fnv.New64a()
	h.Write([]byte(c.owner + "/" + gate))
	for _, q := range sorted {
		h.Write([]byte("/" + strconv.Itoa(q)))
	}
	rng := rand.New(rand.NewPCG(h.Sum64(), 0))
	jitter := func() float64 { return 1 + c.spec.Spread*(2*rng.Float64()-1) }

	return &target.InstructionProperties{
		Duration: nominal.Duration * jitter(),
		Error:    min(nominal.Error*jitter(), 0.999),
	}
}
