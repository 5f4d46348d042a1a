package compiler

import (
	"math"

	"github.com/mqtbench/cli/internal/circuit"
)

const angleTolerance = 1e-9

// mergeable gates compose additively in their first parameter, with the
// period after which they act as the identity up to phase.
var mergeable = map[string]float64{
	"rx":  2 * math.Pi,
	"ry":  2 * math.Pi,
	"rz":  2 * math.Pi,
	"p":   2 * math.Pi,
	"cp":  2 * math.Pi,
	"rzz": 2 * math.Pi,
	"rxx": 2 * math.Pi,
	"zz":  1,
	"cry": 4 * math.Pi,
}

func isTrivial(in circuit.Instruction) bool {
	if in.Name == "id" {
		return true
	}
	period, ok := mergeable[in.Name]
	if !ok {
		return false
	}
	v, bound := in.Params[0].Value()
	if !bound {
		return false
	}
	r := math.Mod(math.Abs(v), period)
	return r < angleTolerance || period-r < angleTolerance
}

func sameQubits(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInstruction(a, b circuit.Instruction) bool {
	if a.Name != b.Name || !sameQubits(a.Qubits, b.Qubits) || len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Equal(b.Params[i], angleTolerance) {
			return false
		}
	}
	return true
}

// cancels reports whether b undoes a.
func cancels(a, b circuit.Instruction) bool {
	inv, ok := circuit.InverseOf(a)
	if !ok {
		return false
	}
	if sameInstruction(inv, b) {
		return true
	}
	if flipped, ok := circuit.Flip(inv); ok {
		return sameInstruction(flipped, b)
	}
	return false
}

// merges returns a followed by b as one rotation.
func merges(a, b circuit.Instruction) (circuit.Instruction, bool) {
	if _, ok := mergeable[a.Name]; !ok || a.Name != b.Name {
		return circuit.Instruction{}, false
	}
	if !sameQubits(a.Qubits, b.Qubits) {
		def, _ := circuit.Lookup(a.Name)
		if !def.Symmetric || len(a.Qubits) != 2 || a.Qubits[0] != b.Qubits[1] || a.Qubits[1] != b.Qubits[0] {
			return circuit.Instruction{}, false
		}
	}
	out := a.Copy()
	out.Params[0] = a.Params[0].Add(b.Params[0])
	return out, true
}

// cancelAndMerge removes adjacent inverse pairs and merges adjacent
// rotations about the same axis. Each qubit keeps a stack of the live
// instructions touching it, so cancellations cascade: a sequence followed
// by its exact inverse vanishes completely. Directives block on their qubits.
func cancelAndMerge(c *circuit.Circuit) int {
	out := make([]circuit.Instruction, 0, len(c.Instructions))
	live := make([]bool, 0, len(c.Instructions))
	stacks := make([][]int, c.NumQubits)
	removed := 0

	pop := func(j int) {
		for _, q := range out[j].Qubits {
			stacks[q] = stacks[q][:len(stacks[q])-1]
		}
		live[j] = false
	}

	for _, in := range c.Instructions {
		if !in.IsDirective() {
			if isTrivial(in) {
				removed++
				continue
			}
			if j, ok := commonTop(stacks, in.Qubits); ok && !out[j].IsDirective() {
				prev := out[j]
				if cancels(prev, in) {
					pop(j)
					removed += 2
					continue
				}
				if m, ok := merges(prev, in); ok {
					removed++
					if isTrivial(m) {
						pop(j)
						removed++
					} else {
						out[j] = m
					}
					continue
				}
			}
		}
		idx := len(out)
		out = append(out, in)
		live = append(live, true)
		for _, q := range in.Qubits {
			stacks[q] = append(stacks[q], idx)
		}
	}

	kept := make([]circuit.Instruction, 0, len(out))
	for i, in := range out {
		if live[i] {
			kept = append(kept, in)
		}
	}
	c.Instructions = kept
	return removed
}

// commonTop returns the instruction on top of every qubit's stack if it is
// the same one and acts on exactly these qubits.
func commonTop(stacks [][]int, qubits []int) (int, bool) {
	j := -1
	for _, q := range qubits {
		s := stacks[q]
		if len(s) == 0 {
			return 0, false
		}
		top := s[len(s)-1]
		if j >= 0 && top != j {
			return 0, false
		}
		j = top
	}
	return j, j >= 0
}

// fuseSingleQubitRuns replaces each run of bound single-qubit gates on one
// qubit by its shortest basis synthesis. Identity runs are dropped.
func (t *Transpiler) fuseSingleQubitRuns(c *circuit.Circuit, basis []string) int {
	runs := make([][]int, c.NumQubits)
	replace := make(map[int][]circuit.Instruction)
	drop := make(map[int]bool)
	saved := 0

	flush := func(q int) {
		run := runs[q]
		runs[q] = nil
		if len(run) < 2 {
			return
		}
		m := circuit.Identity
		for _, idx := range run {
			g, _ := circuit.GateMatrix(c.Instructions[idx])
			m = g.Mul(m)
		}
		var synth []circuit.Instruction
		if !m.IsIdentity(1e-7) {
			theta, phi, lambda := m.ZYZ()
			var ok bool
			synth, ok = t.synthesizeU(basis, q, theta, phi, lambda)
			if !ok || len(synth) >= len(run) {
				return
			}
		}
		for _, idx := range run {
			drop[idx] = true
		}
		replace[run[len(run)-1]] = synth
		saved += len(run) - len(synth)
	}

	for i, in := range c.Instructions {
		if len(in.Qubits) == 1 && !in.IsDirective() {
			if _, ok := circuit.GateMatrix(in); ok {
				q := in.Qubits[0]
				runs[q] = append(runs[q], i)
				continue
			}
		}
		for _, q := range in.Qubits {
			flush(q)
		}
	}
	for q := range runs {
		flush(q)
	}

	if saved == 0 {
		return 0
	}
	out := make([]circuit.Instruction, 0, len(c.Instructions)-saved)
	for i, in := range c.Instructions {
		if !drop[i] {
			out = append(out, in)
			continue
		}
		out = append(out, replace[i]...)
	}
	c.Instructions = out
	return saved
}
