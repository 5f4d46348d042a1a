package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func genExpr(t *rapid.T, label string) Expr {
	e := Num(rapid.Float64Range(-10, 10).Draw(t, label+"_const"))
	names := []string{"alpha", "beta", "theta_0", "theta_1"}
	n := rapid.IntRange(0, 3).Draw(t, label+"_terms")
	for i := 0; i < n; i++ {
		name := rapid.SampledFrom(names).Draw(t, label+"_name")
		coeff := rapid.Float64Range(-4, 4).Draw(t, label+"_coeff")
		e = e.Add(Param(name).Scale(coeff))
	}
	return e
}

func TestExprAlgebraProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genExpr(t, "a")
		b := genExpr(t, "b")

		assert.True(t, a.Add(b).Equal(b.Add(a), 1e-9), "addition commutes")
		assert.True(t, a.Sub(a).Equal(Num(0), 1e-9), "a - a is zero")
		assert.True(t, a.Neg().Neg().Equal(a, 1e-9), "double negation")

		values := map[string]float64{"alpha": 0.3, "beta": -1.2, "theta_0": 2.5, "theta_1": 0.1}
		sum := a.Add(b).Bind(values)
		assert.True(t, sum.IsBound())
		assert.InDelta(t, a.Bind(values).MustValue()+b.Bind(values).MustValue(), sum.MustValue(), 1e-9)
	})
}

func TestExprTermsStaySorted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := genExpr(t, "e")
		params := e.Params()
		for i := 1; i < len(params); i++ {
			assert.Less(t, params[i-1], params[i])
		}
	})
}

func TestExprBindPartial(t *testing.T) {
	e := Param("a").Add(Param("b").Scale(2)).AddConst(1)
	bound := e.Bind(map[string]float64{"a": 3})

	assert.False(t, bound.IsBound())
	assert.Equal(t, []string{"b"}, bound.Params())
	assert.InDelta(t, 4.0, bound.Const, 1e-12)

	_, ok := bound.Value()
	assert.False(t, ok)
	assert.True(t, math.IsNaN(bound.MustValue()))
}

func TestExprString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"zero", Num(0), "0"},
		{"pi", Num(math.Pi), "pi"},
		{"minus half pi", Num(-math.Pi / 2), "-pi/2"},
		{"three quarter pi", Num(3 * math.Pi / 4), "3*pi/4"},
		{"two pi", Num(2 * math.Pi), "2*pi"},
		{"plain", Num(0.5), "0.5"},
		{"param", Param("theta"), "theta"},
		{"scaled param", Param("theta").Scale(-0.5), "-0.5*theta"},
		{"param plus const", Param("x").AddConst(math.Pi), "x + pi"},
		{"two params", Param("a").Sub(Param("b")).AddConst(-1), "a - b - 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.String())
		})
	}
}

func TestFormatAngleExponent(t *testing.T) {
	assert.Equal(t, "1.0e-20", FormatAngle(1e-20))
	assert.Equal(t, "1.5e-20", FormatAngle(1.5e-20))
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-12)
	assert.InDelta(t, 0.0, NormalizeAngle(4*math.Pi), 1e-12)
	assert.InDelta(t, -math.Pi/2, NormalizeAngle(3*math.Pi/2), 1e-12)
}
