// Package target describes a compilation backend: its instruction
// vocabulary, per-qubit calibration and connectivity.
package target

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Qargs is the qubit tuple an instruction applies to.
type Qargs []int

func (q Qargs) key() string {
	parts := make([]string, len(q))
	for i, v := range q {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// InstructionProperties holds calibration figures for one instruction on
// one qubit tuple. Error is an infidelity in [0, 1).
type InstructionProperties struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Error    float64 `json:"error" yaml:"error"`
}

type entry struct {
	qargs []Qargs
	props map[string]*InstructionProperties
}

// Target is a capability descriptor. An instruction added without qubit
// tuples applies to every qubit combination.
type Target struct {
	NumQubits   int
	Description string

	order        []string
	instructions map[string]*entry
}

// New returns an empty target.
func New(numQubits int, description string) *Target {
	return &Target{
		NumQubits:    numQubits,
		Description:  description,
		instructions: make(map[string]*entry),
	}
}

// Add registers an instruction on a qubit tuple. props may be nil.
func (t *Target) Add(name string, qargs Qargs, props *InstructionProperties) error {
	for _, q := range qargs {
		if q < 0 || q >= t.NumQubits {
			return fmt.Errorf("qubit %d of '%s' out of range for %d-qubit target", q, name, t.NumQubits)
		}
	}
	e, ok := t.instructions[name]
	if !ok {
		e = &entry{props: make(map[string]*InstructionProperties)}
		t.instructions[name] = e
		t.order = append(t.order, name)
	}
	k := qargs.key()
	if _, dup := e.props[k]; !dup {
		e.qargs = append(e.qargs, slices.Clone(qargs))
	}
	e.props[k] = props
	return nil
}

// AddGlobal registers an instruction that applies to any qubits.
func (t *Target) AddGlobal(name string) {
	if _, ok := t.instructions[name]; ok {
		return
	}
	t.instructions[name] = &entry{}
	t.order = append(t.order, name)
}

// Operations returns instruction names in insertion order.
func (t *Target) Operations() []string {
	return slices.Clone(t.order)
}

// HasOperation reports whether name is in the vocabulary.
func (t *Target) HasOperation(name string) bool {
	_, ok := t.instructions[name]
	return ok
}

// Supports reports whether name may be applied to qubits.
func (t *Target) Supports(name string, qubits []int) bool {
	e, ok := t.instructions[name]
	if !ok {
		return false
	}
	if e.qargs == nil {
		return true
	}
	_, ok = e.props[Qargs(qubits).key()]
	return ok
}

// Properties returns the calibration of name on qubits, if any.
func (t *Target) Properties(name string, qubits []int) (*InstructionProperties, bool) {
	e, ok := t.instructions[name]
	if !ok || e.qargs == nil {
		return nil, false
	}
	p, ok := e.props[Qargs(qubits).key()]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// QargsFor returns the qubit tuples of name, or nil for a global instruction.
func (t *Target) QargsFor(name string) []Qargs {
	e, ok := t.instructions[name]
	if !ok || e.qargs == nil {
		return nil
	}
	out := make([]Qargs, len(e.qargs))
	for i, q := range e.qargs {
		out[i] = slices.Clone(q)
	}
	return out
}

// CouplingMap returns the sorted directed edges of all qubit-specific
// two-qubit instructions. It is nil when connectivity is unconstrained.
func (t *Target) CouplingMap() [][2]int {
	seen := make(map[[2]int]bool)
	for _, e := range t.instructions {
		for _, q := range e.qargs {
			if len(q) == 2 {
				seen[[2]int{q[0], q[1]}] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})
	return edges
}

// Adjacency returns the undirected neighbour lists of the coupling map,
// sorted. It is nil when connectivity is unconstrained.
func (t *Target) Adjacency() [][]int {
	edges := t.CouplingMap()
	if edges == nil {
		return nil
	}
	adj := make([][]int, t.NumQubits)
	for _, e := range edges {
		if !slices.Contains(adj[e[0]], e[1]) {
			adj[e[0]] = append(adj[e[0]], e[1])
		}
		if !slices.Contains(adj[e[1]], e[0]) {
			adj[e[1]] = append(adj[e[1]], e[0])
		}
	}
	for _, n := range adj {
		slices.Sort(n)
	}
	return adj
}

// Clone returns a deep copy of t.
func (t *Target) Clone() *Target {
	out := New(t.NumQubits, t.Description)
	out.order = slices.Clone(t.order)
	for name, e := range t.instructions {
		ce := &entry{}
		if e.qargs != nil {
			ce.qargs = make([]Qargs, len(e.qargs))
			for i, q := range e.qargs {
				ce.qargs[i] = slices.Clone(q)
			}
		}
		if e.props != nil {
			ce.props = make(map[string]*InstructionProperties, len(e.props))
			for k, p := range e.props {
				if p != nil {
					cp := *p
					p = &cp
				}
				ce.props[k] = p
			}
		}
		out.instructions[name] = ce
	}
	return out
}
