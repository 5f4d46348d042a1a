package compiler

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/mqtbench/cli/internal/circuit"
)

// ExpandFunc rewrites one gate, given its qubits and parameters, into an
// equivalent instruction sequence.
type ExpandFunc func(q []int, p []circuit.Expr) []circuit.Instruction

// Rule is a named equivalence for one gate.
type Rule struct {
	Key    string
	Gate   string
	Expand ExpandFunc

	uses []string
}

// Uses returns the distinct gate names the rule expands into.
func (r Rule) Uses() []string {
	return slices.Clone(r.uses)
}

// EquivalenceLibrary holds rewrite rules keyed by a stable name. Adding a
// key twice is a no-op, so rule sets can be injected repeatedly.
type EquivalenceLibrary struct {
	mu      sync.RWMutex
	byGate  map[string][]Rule
	keys    map[string]bool
	version uint64
}

// NewEquivalenceLibrary returns an empty library.
func NewEquivalenceLibrary() *EquivalenceLibrary {
	return &EquivalenceLibrary{
		byGate: make(map[string][]Rule),
		keys:   make(map[string]bool),
	}
}

// Add registers a rule under key. It reports whether the rule was new.
func (l *EquivalenceLibrary) Add(key, gate string, expand ExpandFunc) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.keys[key] {
		return false
	}
	def, ok := circuit.Lookup(gate)
	if !ok {
		panic(fmt.Sprintf("compiler: equivalence %q for unknown gate %q", key, gate))
	}

	// Expand once on formal arguments to learn which gates the rule uses.
	formalQ := circuit.TrivialPermutation(def.NumQubits)
	formalP := make([]circuit.Expr, def.NumParams)
	for i := range formalP {
		formalP[i] = circuit.Param(fmt.Sprintf("p%d", i))
	}
	var uses []string
	for _, in := range expand(formalQ, formalP) {
		if !slices.Contains(uses, in.Name) {
			uses = append(uses, in.Name)
		}
	}

	l.byGate[gate] = append(l.byGate[gate], Rule{Key: key, Gate: gate, Expand: expand, uses: uses})
	l.keys[key] = true
	l.version++
	return true
}

// Has reports whether key is registered.
func (l *EquivalenceLibrary) Has(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.keys[key]
}

// Rules returns the rules for gate in registration order.
func (l *EquivalenceLibrary) Rules(gate string) []Rule {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.byGate[gate])
}

// Len returns the number of registered rules.
func (l *EquivalenceLibrary) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.keys)
}

// Version changes whenever a rule is added.
func (l *EquivalenceLibrary) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Definition expands gate on formal parameters p0, p1, ... using its first
// rule. It is used to emit gate definitions.
func (l *EquivalenceLibrary) Definition(gate string) ([]circuit.Instruction, []string, bool) {
	rules := l.Rules(gate)
	def, ok := circuit.Lookup(gate)
	if len(rules) == 0 || !ok {
		return nil, nil, false
	}
	names := make([]string, def.NumParams)
	params := make([]circuit.Expr, def.NumParams)
	for i := range params {
		names[i] = fmt.Sprintf("p%d", i)
		params[i] = circuit.Param(names[i])
	}
	return rules[0].Expand(circuit.TrivialPermutation(def.NumQubits), params), names, true
}

var (
	session     *EquivalenceLibrary
	sessionOnce sync.Once
)

// Session returns the process-wide library, seeded with the standard rules.
func Session() *EquivalenceLibrary {
	sessionOnce.Do(func() {
		session = StandardEquivalences()
	})
	return session
}

// Seq collects instructions for an ExpandFunc.
type Seq []circuit.Instruction

// Gate appends a gate.
func (s *Seq) Gate(name string, qubits []int, params ...circuit.Expr) *Seq {
	*s = append(*s, circuit.Instruction{Name: name, Qubits: qubits, Params: params})
	return s
}

// On1 appends a single-qubit gate on q.
func (s *Seq) On1(name string, q int, params ...circuit.Expr) *Seq {
	return s.Gate(name, []int{q}, params...)
}

// On2 appends a two-qubit gate on (a, b).
func (s *Seq) On2(name string, a, b int, params ...circuit.Expr) *Seq {
	return s.Gate(name, []int{a, b}, params...)
}

var num = circuit.Num

func single(name string, params ...circuit.Expr) ExpandFunc {
	return func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1(name, q[0], params...)
		return s
	}
}

// StandardEquivalences returns a library with the generic rules for every
// standard gate and the definitions of the vendor gates.
func StandardEquivalences() *EquivalenceLibrary {
	pi := math.Pi
	l := NewEquivalenceLibrary()

	// Single-qubit gates to u and p.
	l.Add("std/id", "id", func([]int, []circuit.Expr) []circuit.Instruction { return nil })
	l.Add("std/h-u", "h", single("u", num(pi/2), num(0), num(pi)))
	l.Add("std/h-rz-sx", "h", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], num(pi/2)).On1("sx", q[0]).On1("rz", q[0], num(pi/2))
		return s
	})
	l.Add("std/x-u", "x", single("u", num(pi), num(0), num(pi)))
	l.Add("std/y-u", "y", single("u", num(pi), num(pi/2), num(pi/2)))
	l.Add("std/z-p", "z", single("p", num(pi)))
	l.Add("std/s-p", "s", single("p", num(pi/2)))
	l.Add("std/sdg-p", "sdg", single("p", num(-pi/2)))
	l.Add("std/t-p", "t", single("p", num(pi/4)))
	l.Add("std/tdg-p", "tdg", single("p", num(-pi/4)))
	l.Add("std/sx-u", "sx", single("u", num(pi/2), num(-pi/2), num(pi/2)))
	l.Add("std/sxdg-u", "sxdg", single("u", num(-pi/2), num(-pi/2), num(pi/2)))
	l.Add("std/p-u", "p", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("u", q[0], num(0), num(0), p[0])
		return s
	})
	l.Add("std/p-rz", "p", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], p[0])
		return s
	})
	l.Add("std/rz-p", "rz", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("p", q[0], p[0])
		return s
	})
	l.Add("std/rz-r", "rz", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("r", q[0], num(pi), num(0)).On1("r", q[0], num(pi), p[0].Scale(0.5))
		return s
	})
	l.Add("std/rx-u", "rx", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("u", q[0], p[0], num(-pi/2), num(pi/2))
		return s
	})
	l.Add("std/rx-sx", "rx", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], num(pi/2)).On1("sx", q[0]).On1("rz", q[0], p[0]).
			On1("sxdg", q[0]).On1("rz", q[0], num(-pi/2))
		return s
	})
	l.Add("std/rx-r", "rx", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("r", q[0], p[0], num(0))
		return s
	})
	l.Add("std/ry-u", "ry", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("u", q[0], p[0], num(0), num(0))
		return s
	})
	l.Add("std/ry-sx", "ry", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("sx", q[0]).On1("rz", q[0], p[0]).On1("sxdg", q[0])
		return s
	})
	l.Add("std/ry-r", "ry", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("r", q[0], p[0], num(pi/2))
		return s
	})
	l.Add("std/r-u", "r", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("u", q[0], p[0], p[1].AddConst(-pi/2), p[1].Neg().AddConst(pi/2))
		return s
	})
	l.Add("std/u-rz-sx", "u", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], p[2]).On1("sx", q[0]).On1("rz", q[0], p[0].AddConst(pi)).
			On1("sx", q[0]).On1("rz", q[0], p[1].AddConst(pi))
		return s
	})
	l.Add("std/u-zyz", "u", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], p[2]).On1("ry", q[0], p[0]).On1("rz", q[0], p[1])
		return s
	})
	l.Add("std/u-r", "u", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("r", q[0], p[0], p[2].Neg().AddConst(pi/2)).On1("rz", q[0], p[1].Add(p[2]))
		return s
	})

	// Two-qubit gates.
	l.Add("std/cz-cx", "cz", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("h", q[1]).On2("cx", q[0], q[1]).On1("h", q[1])
		return s
	})
	l.Add("std/cz-rzz", "cz", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("rzz", q[0], q[1], num(-pi/2)).On1("rz", q[0], num(pi/2)).On1("rz", q[1], num(pi/2))
		return s
	})
	l.Add("std/cx-cz", "cx", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("h", q[1]).On2("cz", q[0], q[1]).On1("h", q[1])
		return s
	})
	l.Add("std/cx-ecr", "cx", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("rz", q[0], num(-pi/2)).On1("ry", q[0], num(pi)).On1("rx", q[1], num(pi/2)).
			On2("ecr", q[0], q[1])
		return s
	})
	l.Add("std/cx-iswap", "cx", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("s", q[1]).On1("h", q[1]).On1("sdg", q[0]).On1("sdg", q[1]).
			On2("iswap", q[0], q[1]).
			On1("h", q[0]).On1("sdg", q[0]).On1("sdg", q[1]).
			On2("iswap", q[0], q[1]).
			On1("sdg", q[0]).On1("sdg", q[1])
		return s
	})
	l.Add("std/cy-cx", "cy", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("sdg", q[1]).On2("cx", q[0], q[1]).On1("s", q[1])
		return s
	})
	l.Add("std/swap-cx", "swap", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("cx", q[0], q[1]).On2("cx", q[1], q[0]).On2("cx", q[0], q[1])
		return s
	})
	l.Add("std/dcx-cx", "dcx", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("cx", q[0], q[1]).On2("cx", q[1], q[0])
		return s
	})
	l.Add("std/iswap-cx", "iswap", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("s", q[0]).On1("s", q[1]).On1("h", q[0]).
			On2("cx", q[0], q[1]).On2("cx", q[1], q[0]).On1("h", q[1])
		return s
	})
	l.Add("std/iswapdg-swap", "iswapdg", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("swap", q[0], q[1]).On2("cz", q[0], q[1]).On1("sdg", q[0]).On1("sdg", q[1])
		return s
	})
	l.Add("std/ecr-cx", "ecr", func(q []int, _ []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("s", q[0]).On1("sx", q[1]).On2("cx", q[0], q[1]).On1("x", q[0])
		return s
	})
	l.Add("std/cp-cx", "cp", func(q []int, p []circuit.Expr) []circuit.Instruction {
		half := p[0].Scale(0.5)
		var s Seq
		s.On1("p", q[0], half).On2("cx", q[0], q[1]).On1("p", q[1], half.Neg()).
			On2("cx", q[0], q[1]).On1("p", q[1], half)
		return s
	})
	l.Add("std/cry-cx", "cry", func(q []int, p []circuit.Expr) []circuit.Instruction {
		half := p[0].Scale(0.5)
		var s Seq
		s.On1("ry", q[1], half).On2("cx", q[0], q[1]).On1("ry", q[1], half.Neg()).On2("cx", q[0], q[1])
		return s
	})
	l.Add("std/rzz-cx", "rzz", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("cx", q[0], q[1]).On1("rz", q[1], p[0]).On2("cx", q[0], q[1])
		return s
	})
	l.Add("std/rzz-rxx", "rzz", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("h", q[0]).On1("h", q[1]).On2("rxx", q[0], q[1], p[0]).On1("h", q[0]).On1("h", q[1])
		return s
	})
	l.Add("std/rxx-rzz", "rxx", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On1("h", q[0]).On1("h", q[1]).On2("rzz", q[0], q[1], p[0]).On1("h", q[0]).On1("h", q[1])
		return s
	})

	// Vendor gate definitions.
	l.Add("def/gpi", "gpi", func(q []int, p []circuit.Expr) []circuit.Instruction {
		a := p[0].Scale(2 * pi)
		var s Seq
		s.On1("u", q[0], num(pi), a, a.Neg().AddConst(pi))
		return s
	})
	l.Add("def/gpi2", "gpi2", func(q []int, p []circuit.Expr) []circuit.Instruction {
		a := p[0].Scale(2 * pi)
		var s Seq
		s.On1("u", q[0], num(pi/2), a.AddConst(-pi/2), a.Neg().AddConst(pi/2))
		return s
	})
	l.Add("def/ms", "ms", func(q []int, p []circuit.Expr) []circuit.Instruction {
		a0, a1 := p[0].Scale(2*pi), p[1].Scale(2*pi)
		var s Seq
		s.On1("rz", q[0], a0.Neg()).On1("rz", q[1], a1.Neg()).
			On2("rxx", q[0], q[1], p[2].Scale(2*pi)).
			On1("rz", q[0], a0).On1("rz", q[1], a1)
		return s
	})
	l.Add("def/zz", "zz", func(q []int, p []circuit.Expr) []circuit.Instruction {
		var s Seq
		s.On2("rzz", q[0], q[1], p[0].Scale(2*pi))
		return s
	})
	l.Add("def/rxpi", "rxpi", single("rx", num(pi)))
	l.Add("def/rxpi2", "rxpi2", single("rx", num(pi/2)))
	l.Add("def/rxpi2dg", "rxpi2dg", single("rx", num(-pi/2)))

	return l
}
