package compiler

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// maxExpansionDepth bounds recursive rule application.
const maxExpansionDepth = 32

// plan is the cheapest rule choice per gate for one basis.
type plan struct {
	basis map[string]bool
	cost  map[string]int
	best  map[string]Rule
}

type planCache struct {
	mu    sync.Mutex
	plans map[string]*plan
}

func (c *planCache) get(lib *EquivalenceLibrary, basis []string) *plan {
	key := fmt.Sprintf("%d|%s", lib.Version(), strings.Join(basis, ","))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plans == nil {
		c.plans = make(map[string]*plan)
	}
	if p, ok := c.plans[key]; ok {
		return p
	}
	p := buildPlan(lib, basis)
	c.plans[key] = p
	return p
}

// buildPlan relaxes rule costs until no gate gets cheaper. The cost of a
// gate is the number of basis instructions it expands to.
func buildPlan(lib *EquivalenceLibrary, basis []string) *plan {
	p := &plan{
		basis: make(map[string]bool, len(basis)),
		cost:  make(map[string]int),
		best:  make(map[string]Rule),
	}
	for _, b := range basis {
		p.basis[b] = true
		p.cost[b] = 1
	}

	lib.mu.RLock()
	var gates []string
	for g := range lib.byGate {
		gates = append(gates, g)
	}
	slices.Sort(gates)
	rules := make(map[string][]Rule, len(gates))
	for _, g := range gates {
		rules[g] = slices.Clone(lib.byGate[g])
	}
	lib.mu.RUnlock()

	for changed := true; changed; {
		changed = false
		for _, g := range gates {
			if p.basis[g] {
				continue
			}
			for _, r := range rules[g] {
				c, ok := p.ruleCost(r)
				if !ok {
					continue
				}
				if old, seen := p.cost[g]; !seen || c < old {
					p.cost[g] = c
					p.best[g] = r
					changed = true
				}
			}
		}
	}
	return p
}

func (p *plan) ruleCost(r Rule) (int, bool) {
	def, _ := circuit.Lookup(r.Gate)
	formalQ := circuit.TrivialPermutation(def.NumQubits)
	formalP := make([]circuit.Expr, def.NumParams)
	for i := range formalP {
		formalP[i] = circuit.Param(fmt.Sprintf("p%d", i))
	}
	total := 0
	for _, in := range r.Expand(formalQ, formalP) {
		c, ok := p.cost[in.Name]
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

func (p *plan) reachable(gate string) bool {
	_, ok := p.cost[gate]
	return ok
}

// expand rewrites in into basis instructions.
func (p *plan) expand(in circuit.Instruction, depth int) ([]circuit.Instruction, error) {
	if in.IsDirective() || p.basis[in.Name] {
		return []circuit.Instruction{in}, nil
	}
	r, ok := p.best[in.Name]
	if !ok {
		return nil, fmt.Errorf("gate '%s' cannot be translated to basis %s", in.Name, basisString(p.basis))
	}
	if depth > maxExpansionDepth {
		return nil, fmt.Errorf("expansion of '%s' exceeds depth %d", in.Name, maxExpansionDepth)
	}

	var out []circuit.Instruction
	for _, sub := range r.Expand(in.Qubits, in.Params) {
		sub.Qubits = slices.Clone(sub.Qubits)
		rec, err := p.expand(sub, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)
	}
	return out, nil
}

func basisString(basis map[string]bool) string {
	names := make([]string, 0, len(basis))
	for n := range basis {
		names = append(names, n)
	}
	slices.Sort(names)
	return "['" + strings.Join(names, "', '") + "']"
}

// translate rewrites every instruction of c into the basis.
func (t *Transpiler) translate(c *circuit.Circuit, basis []string) error {
	p := t.plans.get(t.lib, basis)
	out := make([]circuit.Instruction, 0, len(c.Instructions))
	for _, in := range c.Instructions {
		exp, err := p.expand(in, 0)
		if err != nil {
			return oerrors.Wrap(oerrors.ErrCompilation, err.Error())
		}
		out = append(out, exp...)
	}
	c.Instructions = out
	return nil
}

// synthesizeU returns the basis instructions for u(theta, phi, lambda) on q,
// or false when u cannot reach the basis.
func (t *Transpiler) synthesizeU(basis []string, q int, theta, phi, lambda float64) ([]circuit.Instruction, bool) {
	p := t.plans.get(t.lib, basis)
	var in circuit.Instruction
	if math.Abs(circuit.NormalizeAngle(theta)) < angleTolerance && p.reachable("p") {
		in = circuit.Instruction{Name: "p", Qubits: []int{q}, Params: []circuit.Expr{circuit.Num(circuit.NormalizeAngle(phi + lambda))}}
	} else {
		if !p.reachable("u") {
			return nil, false
		}
		in = circuit.Instruction{Name: "u", Qubits: []int{q}, Params: circuit.Nums(theta, phi, lambda)}
	}
	out, err := p.expand(in, 0)
	if err != nil {
		return nil, false
	}
	return out, true
}
