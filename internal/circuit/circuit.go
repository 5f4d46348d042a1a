// Package circuit defines the quantum circuit value passed between benchmark
// factories, the compiler service and the exporters.
package circuit

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	oerrors "github.com/mqtbench/cli/internal/errors"
)

// Register is a named classical register.
type Register struct {
	Name string `json:"name" yaml:"name"`
	Size int    `json:"size" yaml:"size"`
}

// Instruction applies a gate or directive to qubits and classical bits.
type Instruction struct {
	Name   string `json:"name" yaml:"name"`
	Qubits []int  `json:"qubits" yaml:"qubits,flow"`
	Clbits []int  `json:"clbits,omitempty" yaml:"clbits,omitempty,flow"`
	Params []Expr `json:"params,omitempty" yaml:"params,omitempty"`
}

// Copy returns a deep copy of in.
func (in Instruction) Copy() Instruction {
	out := Instruction{Name: in.Name}
	out.Qubits = slices.Clone(in.Qubits)
	out.Clbits = slices.Clone(in.Clbits)
	if in.Params != nil {
		out.Params = make([]Expr, len(in.Params))
		for i, p := range in.Params {
			out.Params[i] = p.AddConst(0)
		}
	}
	return out
}

// IsDirective reports whether in is a barrier or measurement.
func (in Instruction) IsDirective() bool {
	d, ok := library[in.Name]
	return ok && d.Directive
}

// Layout records where virtual qubits were placed on a device.
type Layout struct {
	// Initial[v] is the physical qubit holding virtual qubit v at the start.
	Initial []int `json:"initial" yaml:"initial,flow"`
	// Final[p] is the physical qubit holding, at the end, the state that
	// started on physical qubit p.
	Final []int `json:"final,omitempty" yaml:"final,omitempty,flow"`
	// InputQubits is the qubit count of the circuit before mapping.
	InputQubits int `json:"inputQubits" yaml:"inputQubits"`
}

// Copy returns a deep copy of l.
func (l *Layout) Copy() *Layout {
	if l == nil {
		return nil
	}
	return &Layout{
		Initial:     slices.Clone(l.Initial),
		Final:       slices.Clone(l.Final),
		InputQubits: l.InputQubits,
	}
}

// TrivialPermutation returns [0, 1, ..., n-1].
func TrivialPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Circuit is a named sequence of instructions on NumQubits qubits.
type Circuit struct {
	Name         string        `json:"name" yaml:"name"`
	NumQubits    int           `json:"numQubits" yaml:"numQubits"`
	Cregs        []Register    `json:"cregs,omitempty" yaml:"cregs,omitempty"`
	Instructions []Instruction `json:"instructions" yaml:"instructions"`
	Layout       *Layout       `json:"layout,omitempty" yaml:"layout,omitempty"`
	// Duration is the scheduled length in seconds, zero when unscheduled.
	Duration float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// New returns an empty circuit.
func New(name string, numQubits int) *Circuit {
	return &Circuit{Name: name, NumQubits: numQubits}
}

// NumClbits returns the total size of all classical registers.
func (c *Circuit) NumClbits() int {
	n := 0
	for _, r := range c.Cregs {
		n += r.Size
	}
	return n
}

// AddRegister appends a classical register and returns its first bit index.
func (c *Circuit) AddRegister(name string, size int) int {
	offset := c.NumClbits()
	c.Cregs = append(c.Cregs, Register{Name: name, Size: size})
	return offset
}

// Append adds a gate on the given qubits.
func (c *Circuit) Append(name string, qubits []int, params ...Expr) {
	c.Instructions = append(c.Instructions, Instruction{Name: name, Qubits: qubits, Params: params})
}

func (c *Circuit) H(q int) { c.Append("h", []int{q}) }
func (c *Circuit) X(q int) { c.Append("x", []int{q}) }
func (c *Circuit) S(q int) { c.Append("s", []int{q}) }
func (c *Circuit) Sdg(q int) { c.Append("sdg", []int{q}) }
func (c *Circuit) SX(q int) { c.Append("sx", []int{q}) }

func (c *Circuit) RX(theta Expr, q int) { c.Append("rx", []int{q}, theta) }
func (c *Circuit) RY(theta Expr, q int) { c.Append("ry", []int{q}, theta) }
func (c *Circuit) RZ(phi Expr, q int) { c.Append("rz", []int{q}, phi) }
func (c *Circuit) P(lambda Expr, q int) { c.Append("p", []int{q}, lambda) }

func (c *Circuit) U(theta, phi, lambda Expr, q int) {
	c.Append("u", []int{q}, theta, phi, lambda)
}

func (c *Circuit) CX(ctrl, tgt int) { c.Append("cx", []int{ctrl, tgt}) }
func (c *Circuit) CZ(a, b int) { c.Append("cz", []int{a, b}) }
func (c *Circuit) Swap(a, b int) { c.Append("swap", []int{a, b}) }
func (c *Circuit) ECR(a, b int) { c.Append("ecr", []int{a, b}) }
func (c *Circuit) RZZ(t Expr, a, b int) { c.Append("rzz", []int{a, b}, t) }

func (c *Circuit) CP(lambda Expr, ctrl, tgt int) { c.Append("cp", []int{ctrl, tgt}, lambda) }
func (c *Circuit) CRY(theta Expr, ctrl, tgt int) { c.Append("cry", []int{ctrl, tgt}, theta) }

// Barrier spans the given qubits, or all qubits when none are given.
func (c *Circuit) Barrier(qubits ...int) {
	if len(qubits) == 0 {
		qubits = TrivialPermutation(c.NumQubits)
	}
	c.Append("barrier", slices.Clone(qubits))
}

// Measure measures qubit q into classical bit clbit.
func (c *Circuit) Measure(q, clbit int) {
	c.Instructions = append(c.Instructions, Instruction{Name: "measure", Qubits: []int{q}, Clbits: []int{clbit}})
}

// MeasureAll adds a barrier and measures every qubit into a new register "meas".
func (c *Circuit) MeasureAll() {
	c.measure("meas", TrivialPermutation(c.NumQubits))
}

// MeasureActive adds a barrier and measures the active qubits into a new
// register "measure".
func (c *Circuit) MeasureActive() {
	c.measure("measure", c.ActiveQubits())
}

func (c *Circuit) measure(reg string, qubits []int) {
	if len(qubits) == 0 {
		return
	}
	offset := c.AddRegister(reg, len(qubits))
	c.Barrier(qubits...)
	for i, q := range qubits {
		c.Measure(q, offset+i)
	}
}

// Copy returns a deep copy of c.
func (c *Circuit) Copy() *Circuit {
	out := &Circuit{
		Name:      c.Name,
		NumQubits: c.NumQubits,
		Cregs:     slices.Clone(c.Cregs),
		Layout:    c.Layout.Copy(),
		Duration:  c.Duration,
	}
	out.Instructions = make([]Instruction, len(c.Instructions))
	for i, in := range c.Instructions {
		out.Instructions[i] = in.Copy()
	}
	return out
}

// Inverse returns the adjoint of c. Circuits holding measurements cannot be
// inverted.
func (c *Circuit) Inverse() (*Circuit, error) {
	out := &Circuit{
		Name:      c.Name + "_dg",
		NumQubits: c.NumQubits,
		Layout:    c.Layout.Copy(),
	}
	out.Instructions = make([]Instruction, 0, len(c.Instructions))
	for i := len(c.Instructions) - 1; i >= 0; i-- {
		in := c.Instructions[i]
		if in.Name == "barrier" {
			out.Instructions = append(out.Instructions, in.Copy())
			continue
		}
		inv, ok := InverseOf(in)
		if !ok {
			return nil, oerrors.Wrap(oerrors.ErrCompilation,
				fmt.Sprintf("cannot invert instruction '%s' in circuit '%s'", in.Name, c.Name))
		}
		out.Instructions = append(out.Instructions, inv)
	}
	return out, nil
}

// Compose appends the instructions of o, which must act on the same qubits.
func (c *Circuit) Compose(o *Circuit) error {
	if o.NumQubits != c.NumQubits {
		return fmt.Errorf("cannot compose %d-qubit circuit onto %d-qubit circuit", o.NumQubits, c.NumQubits)
	}
	if o.NumClbits() > c.NumClbits() {
		return fmt.Errorf("cannot compose circuit with %d clbits onto %d clbits", o.NumClbits(), c.NumClbits())
	}
	for _, in := range o.Instructions {
		c.Instructions = append(c.Instructions, in.Copy())
	}
	return nil
}

// RemoveFinalMeasurements drops measurements and barriers that are not
// followed by any other operation, then drops registers left unused.
func (c *Circuit) RemoveFinalMeasurements() {
	busy := make([]bool, c.NumQubits)
	keep := make([]bool, len(c.Instructions))
	for i := len(c.Instructions) - 1; i >= 0; i-- {
		in := c.Instructions[i]
		if in.Name == "measure" || in.Name == "barrier" {
			final := true
			for _, q := range in.Qubits {
				if busy[q] {
					final = false
					break
				}
			}
			if final {
				continue
			}
		}
		keep[i] = true
		for _, q := range in.Qubits {
			busy[q] = true
		}
	}

	kept := c.Instructions[:0]
	for i, in := range c.Instructions {
		if keep[i] {
			kept = append(kept, in)
		}
	}
	c.Instructions = kept
	c.dropUnusedRegisters()
}

func (c *Circuit) dropUnusedRegisters() {
	used := make(map[int]bool)
	for _, in := range c.Instructions {
		for _, b := range in.Clbits {
			used[b] = true
		}
	}

	remap := make(map[int]int)
	var regs []Register
	oldOffset, newOffset := 0, 0
	for _, r := range c.Cregs {
		inUse := false
		for b := oldOffset; b < oldOffset+r.Size; b++ {
			if used[b] {
				inUse = true
				break
			}
		}
		if inUse {
			for b := 0; b < r.Size; b++ {
				remap[oldOffset+b] = newOffset + b
			}
			regs = append(regs, r)
			newOffset += r.Size
		}
		oldOffset += r.Size
	}

	for i := range c.Instructions {
		for j, b := range c.Instructions[i].Clbits {
			c.Instructions[i].Clbits[j] = remap[b]
		}
	}
	c.Cregs = regs
}

// RemoveBarriers drops every barrier.
func (c *Circuit) RemoveBarriers() {
	c.Instructions = slices.DeleteFunc(c.Instructions, func(in Instruction) bool {
		return in.Name == "barrier"
	})
}

// ActiveQubits returns the sorted qubits touched by a non-barrier instruction.
func (c *Circuit) ActiveQubits() []int {
	seen := make(map[int]bool)
	for _, in := range c.Instructions {
		if in.Name == "barrier" {
			continue
		}
		for _, q := range in.Qubits {
			seen[q] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Parameters returns the free parameter names in natural order.
func (c *Circuit) Parameters() []string {
	seen := make(map[string]bool)
	for _, in := range c.Instructions {
		for _, p := range in.Params {
			for _, name := range p.Params() {
				seen[name] = true
			}
		}
	}
	names := slices.Collect(maps.Keys(seen))
	slices.SortFunc(names, naturalCompare)
	return names
}

// AssignParameters binds parameters in place.
func (c *Circuit) AssignParameters(values map[string]float64) {
	for i := range c.Instructions {
		for j, p := range c.Instructions[i].Params {
			c.Instructions[i].Params[j] = p.Bind(values)
		}
	}
}

// CountOps returns the number of instructions per name.
func (c *Circuit) CountOps() map[string]int {
	counts := make(map[string]int)
	for _, in := range c.Instructions {
		counts[in.Name]++
	}
	return counts
}

// Size is the number of non-barrier instructions.
func (c *Circuit) Size() int {
	n := 0
	for _, in := range c.Instructions {
		if in.Name != "barrier" {
			n++
		}
	}
	return n
}

// Depth is the length of the critical path, ignoring barriers.
func (c *Circuit) Depth() int {
	level := make([]int, c.NumQubits)
	clevel := make([]int, c.NumClbits())
	depth := 0
	for _, in := range c.Instructions {
		if in.Name == "barrier" {
			continue
		}
		d := 0
		for _, q := range in.Qubits {
			d = max(d, level[q])
		}
		for _, b := range in.Clbits {
			d = max(d, clevel[b])
		}
		d++
		for _, q := range in.Qubits {
			level[q] = d
		}
		for _, b := range in.Clbits {
			clevel[b] = d
		}
		depth = max(depth, d)
	}
	return depth
}

// Validate checks gate names, arities and qubit ranges.
func (c *Circuit) Validate() error {
	nclbits := c.NumClbits()
	for i, in := range c.Instructions {
		d, ok := library[in.Name]
		if !ok {
			return fmt.Errorf("instruction %d: unknown gate '%s'", i, in.Name)
		}
		if d.NumQubits > 0 && len(in.Qubits) != d.NumQubits {
			return fmt.Errorf("instruction %d: '%s' takes %d qubits, got %d", i, in.Name, d.NumQubits, len(in.Qubits))
		}
		if len(in.Params) != d.NumParams {
			return fmt.Errorf("instruction %d: '%s' takes %d parameters, got %d", i, in.Name, d.NumParams, len(in.Params))
		}
		seen := make(map[int]bool, len(in.Qubits))
		for _, q := range in.Qubits {
			if q < 0 || q >= c.NumQubits {
				return fmt.Errorf("instruction %d: qubit %d out of range [0, %d)", i, q, c.NumQubits)
			}
			if seen[q] {
				return fmt.Errorf("instruction %d: duplicate qubit %d", i, q)
			}
			seen[q] = true
		}
		for _, b := range in.Clbits {
			if b < 0 || b >= nclbits {
				return fmt.Errorf("instruction %d: clbit %d out of range [0, %d)", i, b, nclbits)
			}
		}
	}
	return nil
}

// naturalCompare orders strings with embedded numbers numerically, so that
// "theta_2" sorts before "theta_10".
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		da, db := isDigit(a[0]), isDigit(b[0])
		switch {
		case da && db:
			na, ra := leadingNumber(a)
			nb, rb := leadingNumber(b)
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			a, b = ra, rb
		case a[0] != b[0]:
			if a[0] < b[0] {
				return -1
			}
			return 1
		default:
			a, b = a[1:], b[1:]
		}
	}
	return len(a) - len(b)
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func leadingNumber(s string) (uint64, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	n, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		n = ^uint64(0)
	}
	return n, s[i:]
}
