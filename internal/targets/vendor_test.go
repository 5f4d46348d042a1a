package targets

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
	"github.com/mqtbench/cli/internal/testutil"
)

func TestVendorRulesPreserveUnitary(t *testing.T) {
	for marker, rules := range vendorRules {
		for _, r := range rules {
			t.Run(marker+"/"+r.key, func(t *testing.T) {
				def, ok := circuit.Lookup(r.gate)
				require.True(t, ok)
				rapid.Check(t, func(rt *rapid.T) {
					params := make([]circuit.Expr, def.NumParams)
					for i := range params {
						params[i] = circuit.Num(rapid.Float64Range(-2*math.Pi, 2*math.Pi).Draw(rt, fmt.Sprintf("p%d", i)))
					}
					qubits := []int{0}
					if def.NumQubits == 2 {
						qubits = []int{0, 1}
						if rapid.Bool().Draw(rt, "reversed") {
							qubits = []int{1, 0}
						}
					}

					want := circuit.New(r.gate, 2)
					want.Append(r.gate, qubits, params...)
					got := circuit.New(r.key, 2)
					got.Instructions = append(got.Instructions, r.expand(qubits, params)...)
					testutil.AssertEquivalent(rt, got, want)
				})
			})
		}
	}
}

func TestInjectVendorEquivalencesIsIdempotent(t *testing.T) {
	lib := compiler.StandardEquivalences()
	before := lib.Len()

	assert.Equal(t, len(ionqRules()), InjectVendorEquivalences(lib, "ionq_aria_25"))
	assert.Equal(t, 0, InjectVendorEquivalences(lib, "ionq_forte"))
	assert.Equal(t, len(rigettiRules()), InjectVendorEquivalences(lib, "rigetti_ankaa_84"))
	assert.Equal(t, 0, InjectVendorEquivalences(lib, "ibm_falcon_27"))

	assert.Equal(t, before+len(ionqRules())+len(rigettiRules()), lib.Len())
	assert.True(t, lib.Has("ionq/cx-ms"))
}

func sampleCircuit() *circuit.Circuit {
	c := circuit.New("sample", 3)
	c.H(0)
	c.CX(0, 1)
	c.RZ(circuit.Num(0.4), 1)
	c.CRY(circuit.Num(0.3), 1, 2)
	c.Swap(0, 2)
	c.SX(2)
	c.RX(circuit.Num(-0.9), 0)
	return c
}

func TestEveryGatesetTranslates(t *testing.T) {
	c := New()
	names, err := c.GatesetNames()
	require.NoError(t, err)

	for _, name := range names {
		if name == CliffordT {
			continue
		}
		t.Run(name, func(t *testing.T) {
			tgt, err := c.TargetForGateset(name, 3)
			require.NoError(t, err)

			lib := compiler.StandardEquivalences()
			InjectVendorEquivalences(lib, tgt.Description)
			svc := compiler.New(compiler.WithEquivalences(lib))

			for level := 0; level <= 2; level++ {
				out, err := svc.Transpile(context.Background(), sampleCircuit(), compiler.Options{
					OptimizationLevel: level,
					Target:            tgt,
					DisableLayout:     true,
					DisableRouting:    true,
					DisableScheduling: true,
				})
				require.NoError(t, err, "level %d", level)
				for _, in := range out.Instructions {
					assert.True(t, tgt.HasOperation(in.Name), "level %d: %s", level, in.Name)
				}
				assert.Nil(t, out.Layout)
				testutil.AssertEquivalent(t, sampleCircuit(), out)
			}
		})
	}
}

func TestIonQNeedsInjection(t *testing.T) {
	tgt, err := New().TargetForGateset("ionq_aria", 2)
	require.NoError(t, err)

	c := circuit.New("cx", 2)
	c.CX(0, 1)
	svc := compiler.New(compiler.WithEquivalences(compiler.StandardEquivalences()))
	_, err = svc.Transpile(context.Background(), c, compiler.Options{Target: tgt, DisableLayout: true})
	assert.Error(t, err)
}
