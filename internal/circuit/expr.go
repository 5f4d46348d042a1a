package circuit

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Term is a named parameter with a coefficient.
type Term struct {
	Name  string  `json:"name" yaml:"name"`
	Coeff float64 `json:"coeff" yaml:"coeff"`
}

// Expr is an affine parameter expression: Const + sum(Coeff*Name).
// Terms are kept sorted by name with non-zero coefficients.
type Expr struct {
	Const float64 `json:"const" yaml:"const"`
	Terms []Term  `json:"terms,omitempty" yaml:"terms,omitempty"`
}

// Num returns a bound constant.
func Num(v float64) Expr {
	return Expr{Const: v}
}

// Param returns the free parameter name.
func Param(name string) Expr {
	return Expr{Terms: []Term{{Name: name, Coeff: 1}}}
}

// Nums converts constants to expressions.
func Nums(vs ...float64) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = Num(v)
	}
	return out
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	out := Expr{Const: e.Const + o.Const}
	i, j := 0, 0
	for i < len(e.Terms) || j < len(o.Terms) {
		switch {
		case j == len(o.Terms) || (i < len(e.Terms) && e.Terms[i].Name < o.Terms[j].Name):
			out.Terms = append(out.Terms, e.Terms[i])
			i++
		case i == len(e.Terms) || o.Terms[j].Name < e.Terms[i].Name:
			out.Terms = append(out.Terms, o.Terms[j])
			j++
		default:
			if c := e.Terms[i].Coeff + o.Terms[j].Coeff; c != 0 {
				out.Terms = append(out.Terms, Term{Name: e.Terms[i].Name, Coeff: c})
			}
			i++
			j++
		}
	}
	return out
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Scale(-1))
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return e.Scale(-1)
}

// AddConst returns e + c.
func (e Expr) AddConst(c float64) Expr {
	return Expr{Const: e.Const + c, Terms: slices.Clone(e.Terms)}
}

// Scale returns k*e.
func (e Expr) Scale(k float64) Expr {
	if k == 0 {
		return Expr{}
	}
	out := Expr{Const: e.Const * k}
	if len(e.Terms) > 0 {
		out.Terms = make([]Term, len(e.Terms))
		for i, t := range e.Terms {
			out.Terms[i] = Term{Name: t.Name, Coeff: t.Coeff * k}
		}
	}
	return out
}

// IsBound reports whether e has no free parameters.
func (e Expr) IsBound() bool {
	return len(e.Terms) == 0
}

// Value returns the numeric value of a bound expression.
func (e Expr) Value() (float64, bool) {
	if !e.IsBound() {
		return 0, false
	}
	return e.Const, true
}

// MustValue returns the value of e, or NaN when e is unbound.
func (e Expr) MustValue() float64 {
	if !e.IsBound() {
		return math.NaN()
	}
	return e.Const
}

// Bind substitutes the given parameter values.
func (e Expr) Bind(values map[string]float64) Expr {
	out := Expr{Const: e.Const}
	for _, t := range e.Terms {
		if v, ok := values[t.Name]; ok {
			out.Const += t.Coeff * v
			continue
		}
		out.Terms = append(out.Terms, t)
	}
	return out
}

// Params returns the free parameter names, sorted.
func (e Expr) Params() []string {
	names := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		names[i] = t.Name
	}
	return names
}

// Equal compares two expressions within tol.
func (e Expr) Equal(o Expr, tol float64) bool {
	d := e.Sub(o)
	if math.Abs(d.Const) > tol {
		return false
	}
	for _, t := range d.Terms {
		if math.Abs(t.Coeff) > tol {
			return false
		}
	}
	return true
}

// String renders e in OpenQASM syntax, writing multiples of pi symbolically.
func (e Expr) String() string {
	var b strings.Builder
	for i, t := range e.Terms {
		coeff := t.Coeff
		if i > 0 {
			if coeff < 0 {
				b.WriteString(" - ")
				coeff = -coeff
			} else {
				b.WriteString(" + ")
			}
		} else if coeff < 0 {
			b.WriteString("-")
			coeff = -coeff
		}
		if coeff != 1 {
			b.WriteString(FormatAngle(coeff))
			b.WriteString("*")
		}
		b.WriteString(t.Name)
	}

	if len(e.Terms) == 0 {
		return FormatAngle(e.Const)
	}
	if e.Const != 0 {
		if e.Const < 0 {
			b.WriteString(" - ")
			b.WriteString(FormatAngle(-e.Const))
		} else {
			b.WriteString(" + ")
			b.WriteString(FormatAngle(e.Const))
		}
	}
	return b.String()
}

var piDenominators = []int{1, 2, 3, 4, 6, 8, 16}

// FormatAngle renders v, using pi fractions when v is a small rational
// multiple of pi.
func FormatAngle(v float64) string {
	if v == 0 {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	ratio := v / math.Pi
	for _, d := range piDenominators {
		n := ratio * float64(d)
		rn := math.Round(n)
		if rn < 1 || rn > 64 || math.Abs(n-rn) > 1e-12*float64(d) {
			continue
		}
		num := int(rn)
		switch {
		case num == 1 && d == 1:
			return sign + "pi"
		case d == 1:
			return sign + strconv.Itoa(num) + "*pi"
		case num == 1:
			return sign + "pi/" + strconv.Itoa(d)
		default:
			return sign + strconv.Itoa(num) + "*pi/" + strconv.Itoa(d)
		}
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// OpenQASM 2 reals need a decimal point before an exponent.
	if i := strings.IndexByte(s, 'e'); i >= 0 && !strings.Contains(s[:i], ".") {
		s = s[:i] + ".0" + s[i:]
	}
	return sign + s
}

// NormalizeAngle maps v into (-pi, pi].
func NormalizeAngle(v float64) float64 {
	v = math.Mod(v, 2*math.Pi)
	if v <= -math.Pi {
		v += 2 * math.Pi
	} else if v > math.Pi {
		v -= 2 * math.Pi
	}
	return v
}
