package compiler

import (
	"fmt"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/target"
)

// fixDirection flips two-qubit gates that the target only offers in the
// opposite direction.
func fixDirection(c *circuit.Circuit, tgt *target.Target) error {
	for i, in := range c.Instructions {
		if len(in.Qubits) != 2 || in.IsDirective() || tgt.Supports(in.Name, in.Qubits) {
			continue
		}
		flipped, ok := circuit.Flip(in)
		if !ok || !tgt.Supports(flipped.Name, flipped.Qubits) {
			return oerrors.Wrap(oerrors.ErrCompilation, fmt.Sprintf(
				"'%s' on qubits %v is not available on target '%s'", in.Name, in.Qubits, tgt.Description))
		}
		c.Instructions[i] = flipped
	}
	return nil
}

// checkBasis verifies every instruction is in the basis.
func checkBasis(c *circuit.Circuit, basis []string) error {
	allowed := make(map[string]bool, len(basis))
	for _, b := range basis {
		allowed[b] = true
	}
	for _, in := range c.Instructions {
		if in.Name == "barrier" || allowed[in.Name] {
			continue
		}
		return oerrors.Wrap(oerrors.ErrCompilation,
			fmt.Sprintf("instruction '%s' is outside basis %s", in.Name, basisString(allowed)))
	}
	return nil
}

// schedule computes the ASAP makespan from the target's durations.
func schedule(c *circuit.Circuit, tgt *target.Target) float64 {
	avail := make([]float64, c.NumQubits)
	makespan := 0.0
	for _, in := range c.Instructions {
		start := 0.0
		for _, q := range in.Qubits {
			start = max(start, avail[q])
		}
		d := 0.0
		if in.Name != "barrier" {
			if props, ok := tgt.Properties(in.Name, in.Qubits); ok {
				d = props.Duration
			}
		}
		for _, q := range in.Qubits {
			avail[q] = start + d
		}
		makespan = max(makespan, start+d)
	}
	return makespan
}
