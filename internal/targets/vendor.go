package targets

import (
	"math"
	"strings"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
	"github.com/mqtbench/cli/internal/output"
)

type vendorRule struct {
	key    string
	gate   string
	expand compiler.ExpandFunc
}

// vendorRules maps a marker in the target description to the equivalences
// that target family needs for basis translation.
var vendorRules = map[string][]vendorRule{
	"ionq":    ionqRules(),
	"rigetti": rigettiRules(),
}

var num = circuit.Num

// Vendor gate parameters are in turns: gpi(f) rotates about the axis at
// angle 2*pi*f.
func ionqRules() []vendorRule {
	turn := 1 / (2 * math.Pi)
	return []vendorRule{
		{key: "ionq/x-gpi", gate: "x", expand: func(q []int, _ []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1("gpi", q[0], num(0))
			return s
		}},
		{key: "ionq/sx-gpi2", gate: "sx", expand: func(q []int, _ []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1("gpi2", q[0], num(0))
			return s
		}},
		{key: "ionq/u-gpi", gate: "u", expand: func(q []int, p []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1("gpi2", q[0], p[2].Scale(-turn).AddConst(0.5)).
				On1("gpi", q[0], p[0].Add(p[1]).Sub(p[2]).Scale(turn/2)).
				On1("gpi2", q[0], p[1].Scale(turn).AddConst(0.5))
			return s
		}},
		{key: "ionq/rxx-ms", gate: "rxx", expand: func(q []int, p []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On2("ms", q[0], q[1], num(0), num(0), p[0].Scale(turn))
			return s
		}},
		{key: "ionq/rzz-zz", gate: "rzz", expand: func(q []int, p []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On2("zz", q[0], q[1], p[0].Scale(turn))
			return s
		}},
		{key: "ionq/cx-ms", gate: "cx", expand: func(q []int, _ []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1("gpi2", q[0], num(0.25)).
				On2("ms", q[0], q[1], num(0), num(0), num(0.25)).
				On1("gpi2", q[0], num(0.5)).
				On1("gpi2", q[1], num(0.5)).
				On1("gpi2", q[0], num(-0.25))
			return s
		}},
	}
}

func rigettiRules() []vendorRule {
	fixed := func(name string) compiler.ExpandFunc {
		return func(q []int, _ []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1(name, q[0])
			return s
		}
	}
	return []vendorRule{
		{key: "rigetti/x-rxpi", gate: "x", expand: fixed("rxpi")},
		{key: "rigetti/sx-rxpi2", gate: "sx", expand: fixed("rxpi2")},
		{key: "rigetti/sxdg-rxpi2dg", gate: "sxdg", expand: fixed("rxpi2dg")},
		{key: "rigetti/rx-rxpi2", gate: "rx", expand: func(q []int, p []circuit.Expr) []circuit.Instruction {
			var s compiler.Seq
			s.On1("rz", q[0], num(math.Pi/2)).
				On1("rxpi2", q[0]).
				On1("rz", q[0], p[0]).
				On1("rxpi2dg", q[0]).
				On1("rz", q[0], num(-math.Pi/2))
			return s
		}},
	}
}

// InjectVendorEquivalences adds the equivalences needed by the vendor whose
// marker appears in description. Rules live under fixed keys, so repeated
// injection adds nothing. It returns the number of new rules.
func InjectVendorEquivalences(lib *compiler.EquivalenceLibrary, description string) int {
	added := 0
	for marker, rules := range vendorRules {
		if !strings.Contains(description, marker) {
			continue
		}
		for _, r := range rules {
			if lib.Add(r.key, r.gate, r.expand) {
				added++
			}
		}
	}
	if added > 0 {
		output.Debug("injected vendor equivalences", "target", description, "rules", added)
	}
	return added
}
