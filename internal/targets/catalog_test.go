package targets

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/loader"
	"github.com/mqtbench/cli/internal/registry"
	"github.com/mqtbench/cli/internal/target"
)

var wantGatesets = []string{
	"clifford+t", "clifford+t+rotations",
	"ibm_eagle", "ibm_falcon", "ibm_heron",
	"ionq_aria", "ionq_forte",
	"iqm", "quantinuum", "rigetti",
}

var wantDevices = []string{
	"ibm_eagle_127", "ibm_falcon_127", "ibm_falcon_27", "ibm_heron_133", "ibm_heron_156",
	"ionq_aria_25", "ionq_forte_36",
	"iqm_crystal_20", "iqm_crystal_5", "iqm_crystal_54",
	"quantinuum_h2_56", "rigetti_ankaa_84",
}

func TestGatesetNames(t *testing.T) {
	c := New()

	names, err := c.GatesetNames()
	require.NoError(t, err)
	assert.Equal(t, wantGatesets, names)

	gatesetUnits, deviceUnits := c.ImportedUnits()
	assert.Equal(t, []string{"clifford_t", "ibm", "ionq", "iqm", "quantinuum", "rigetti"}, gatesetUnits)
	assert.Empty(t, deviceUnits)

	again, err := c.GatesetNames()
	require.NoError(t, err)
	assert.Equal(t, names, again)
}

func TestDeviceNames(t *testing.T) {
	c := New()
	names, err := c.DeviceNames()
	require.NoError(t, err)
	assert.Equal(t, wantDevices, names)

	_, deviceUnits := c.ImportedUnits()
	assert.Equal(t, []string{"ibm", "ionq", "iqm", "quantinuum", "rigetti"}, deviceUnits)
}

func TestGatesetLoadsOnlyItsUnit(t *testing.T) {
	c := New()
	gates, err := c.Gateset("ibm_falcon")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "x", "sx", "rz", "cx", "measure"}, gates)

	gatesetUnits, _ := c.ImportedUnits()
	assert.Equal(t, []string{"ibm"}, gatesetUnits)
}

func TestGatesetReturnsCopy(t *testing.T) {
	c := New()
	gates, err := c.Gateset("iqm")
	require.NoError(t, err)
	gates[0] = "mutated"

	again, err := c.Gateset("iqm")
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "cz", "measure"}, again)
}

func TestCliffordTGatesets(t *testing.T) {
	c := New()
	discrete, err := c.Gateset(CliffordT)
	require.NoError(t, err)
	assert.NotContains(t, discrete, "rz")
	assert.Contains(t, discrete, "t")

	rotations, err := c.Gateset("clifford+t+rotations")
	require.NoError(t, err)
	assert.Subset(t, rotations, discrete)
	assert.Contains(t, rotations, "rz")
}

func TestUnknownNames(t *testing.T) {
	c := New()

	_, err := c.Gateset("acme_fast")
	require.Error(t, err)
	var unsupported *loader.UnsupportedNameError
	require.True(t, errors.As(err, &unsupported))
	assert.Contains(t, err.Error(), "'acme_fast' is not a supported gateset. Known modules: ['clifford_t', 'ibm'")

	_, err = c.Device("ibm_condor_1121")
	var unknown *registry.UnknownNameError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, unknown.Available, "ibm_falcon_27")
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestTargetForGateset(t *testing.T) {
	c := New()
	tgt, err := c.TargetForGateset("ibm_falcon", 5)
	require.NoError(t, err)

	assert.Equal(t, "ibm_falcon", tgt.Description)
	assert.Equal(t, 5, tgt.NumQubits)
	assert.ElementsMatch(t, []string{"id", "x", "sx", "rz", "cx", "measure"}, tgt.Operations())
	assert.Len(t, tgt.CouplingMap(), 20)

	fwd, ok := tgt.Properties("cx", []int{1, 3})
	require.True(t, ok)
	rev, ok := tgt.Properties("cx", []int{3, 1})
	require.True(t, ok)
	assert.Equal(t, fwd, rev)
	assert.Greater(t, fwd.Duration, 0.0)
}

func TestTargetForGatesetCustomGates(t *testing.T) {
	c := New()
	tgt, err := c.TargetForGateset("ionq_aria", 4)
	require.NoError(t, err)

	assert.True(t, tgt.Supports("ms", []int{3, 0}))
	assert.True(t, tgt.Supports("gpi2", []int{2}))
	_, ok := tgt.Properties("ms", []int{3, 0})
	assert.False(t, ok)
	assert.Nil(t, tgt.QargsFor("gpi"))
	assert.Nil(t, tgt.CouplingMap())

	props, ok := tgt.Properties("measure", []int{1})
	require.True(t, ok)
	assert.Greater(t, props.Error, 0.0)
}

func TestTargetForGatesetUnknownCustomGate(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterGateset("dummy", []string{"dummy_gate"}))

	_, err := c.TargetForGateset("dummy", 3)
	require.Error(t, err)
	var unknown *UnknownGateError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Gate 'dummy_gate' not found in available custom gates.", err.Error())
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestRegisterGatesetRejectsDuplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterGateset("dummy", []string{"x"}))
	err := c.RegisterGateset("dummy", []string{"y"})

	var dup *registry.DuplicateNameError
	require.True(t, errors.As(err, &dup))
	gates, err := c.Gateset("dummy")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, gates)
}

func TestTargetForGatesetRejectsEmptyTarget(t *testing.T) {
	_, err := New().TargetForGateset("ibm_falcon", 0)
	assert.Error(t, err)
}

func TestTargetsAreIndependentCopies(t *testing.T) {
	c := New()
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(wantGatesets).Draw(rt, "gateset")
		n := rapid.IntRange(1, 6).Draw(rt, "qubits")

		a, err := c.TargetForGateset(name, n)
		require.NoError(rt, err)
		b, err := c.TargetForGateset(name, n)
		require.NoError(rt, err)
		assert.Equal(rt, a, b)
		assert.NotSame(rt, a, b)

		require.NoError(rt, a.Add("barrier", nil, nil))
		a.Description = "mutated"
		next, err := c.TargetForGateset(name, n)
		require.NoError(rt, err)
		assert.Equal(rt, b, next)
	})
}

func TestDevices(t *testing.T) {
	tests := []struct {
		name    string
		qubits  int
		twoQ    string
		edges   int
		virtual string
	}{
		{name: "ibm_falcon_27", qubits: 27, twoQ: "cx", edges: 56, virtual: "rz"},
		{name: "ibm_falcon_127", qubits: 127, twoQ: "cx", edges: 288, virtual: "rz"},
		{name: "ibm_eagle_127", qubits: 127, twoQ: "ecr", edges: 288, virtual: "rz"},
		{name: "ibm_heron_133", qubits: 133, twoQ: "cz", edges: 300, virtual: "rz"},
		{name: "ibm_heron_156", qubits: 156, twoQ: "cz", edges: 352, virtual: "rz"},
		{name: "ionq_aria_25", qubits: 25, twoQ: "ms", edges: 600, virtual: "rz"},
		{name: "ionq_forte_36", qubits: 36, twoQ: "zz", edges: 1260, virtual: "rz"},
		{name: "iqm_crystal_5", qubits: 5, twoQ: "cz", edges: 4},
		{name: "iqm_crystal_20", qubits: 20, twoQ: "cz", edges: 30},
		{name: "iqm_crystal_54", qubits: 54, twoQ: "cz", edges: 186},
		{name: "quantinuum_h2_56", qubits: 56, twoQ: "rzz", edges: 3080, virtual: "rz"},
		{name: "rigetti_ankaa_84", qubits: 84, twoQ: "iswap", edges: 298, virtual: "rz"},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt, err := c.Device(tt.name)
			require.NoError(t, err)

			assert.Equal(t, tt.name, tgt.Description)
			assert.Equal(t, tt.qubits, tgt.NumQubits)
			assert.True(t, tgt.HasOperation("measure"))
			assert.Len(t, tgt.QargsFor(tt.twoQ), tt.edges)
			assert.Len(t, tgt.CouplingMap(), tt.edges)
			assertConnected(t, tgt)

			if tt.virtual != "" {
				props, ok := tgt.Properties(tt.virtual, []int{0})
				require.True(t, ok)
				assert.Zero(t, props.Duration)
				assert.Zero(t, props.Error)
			}
			edge := tgt.QargsFor(tt.twoQ)[0]
			props, ok := tgt.Properties(tt.twoQ, edge)
			require.True(t, ok)
			assert.Greater(t, props.Duration, 0.0)
			assert.Less(t, props.Error, 1.0)
		})
	}
}

func assertConnected(t *testing.T, tgt *target.Target) {
	t.Helper()
	adj := tgt.Adjacency()
	seen := map[int]bool{0: true}
	queue := []int{0}
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		for _, nb := range adj[q] {
			if !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	assert.Len(t, seen, tgt.NumQubits, "device is not connected")
}

func TestDeviceCalibrationIsSymmetricAndStable(t *testing.T) {
	a, err := New().Device("ibm_falcon_27")
	require.NoError(t, err)
	b, err := New().Device("ibm_falcon_27")
	require.NoError(t, err)

	fwd, _ := a.Properties("cx", []int{12, 15})
	rev, _ := a.Properties("cx", []int{15, 12})
	assert.Equal(t, fwd, rev)

	other, _ := b.Properties("cx", []int{12, 15})
	assert.Equal(t, fwd, other)

	q0, _ := a.Properties("sx", []int{0})
	q1, _ := a.Properties("sx", []int{1})
	assert.NotEqual(t, q0.Duration, q1.Duration)
}

func TestIQMEdgesAreDirected(t *testing.T) {
	tgt, err := New().Device("iqm_crystal_5")
	require.NoError(t, err)
	assert.True(t, tgt.Supports("cz", []int{0, 2}))
	assert.False(t, tgt.Supports("cz", []int{2, 0}))
}

func TestDeviceReturnsCopy(t *testing.T) {
	c := New()
	a, err := c.Device("iqm_crystal_5")
	require.NoError(t, err)
	require.NoError(t, a.Add("cz", target.Qargs{2, 0}, nil))

	b, err := c.Device("iqm_crystal_5")
	require.NoError(t, err)
	assert.False(t, b.Supports("cz", []int{2, 0}))
}

const testGatesetSchema = `package gatesets
#Unit: gatesets: [string]: [string, ...string]
`

func TestCatalogFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"gatesets/_schema.cue": {Data: []byte(testGatesetSchema)},
		"gatesets/acme.cue":    {Data: []byte(`gatesets: acme_one: ["x", "cz"]` + "\n")},
		"gatesets/bad.cue":     {Data: []byte(`gatesets: bad_empty: []` + "\n")},
		"devices/_schema.cue":  {Data: []byte("package devices\n#Unit: devices: {}\n")},
	}
	c := New(WithFS(fsys))

	gates, err := c.Gateset("acme_one")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "cz"}, gates)

	_, err = c.Gateset("bad_empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating unit 'bad'")

	_, err = c.Gateset("_schema")
	assert.Error(t, err)

	names, err := c.DeviceNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDeviceFactoryClonesCanonical(t *testing.T) {
	c := New()
	a, err := c.devices.Get("iqm_crystal_5")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NoError(t, a.Add("cz", target.Qargs{2, 0}, nil))

	b, err := c.devices.Get("iqm_crystal_5")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotSame(t, a, b)
	assert.False(t, b.Supports("cz", []int{2, 0}))
}
