// Package testutil provides test helpers shared across packages: file
// fixtures and a small unitary simulator for checking circuit equivalence.
package testutil

import (
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"testing"

	"github.com/mqtbench/cli/internal/circuit"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// T is the subset of testing.T the simulator needs. rapid.T satisfies it.
type T interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// MaxSimulatedQubits bounds Unitary.
const MaxSimulatedQubits = 8

type dense [][]complex128

func identity(dim int) dense {
	m := make(dense, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
		m[i][i] = 1
	}
	return m
}

func (a dense) mul(b dense) dense {
	n := len(a)
	out := make(dense, n)
	for i := range out {
		out[i] = make([]complex128, n)
		for k := 0; k < n; k++ {
			if a[i][k] == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func kron(a, b dense) dense {
	n, m := len(a), len(b)
	out := make(dense, n*m)
	for i := range out {
		out[i] = make([]complex128, n*m)
		for j := range out[i] {
			out[i][j] = a[i/m][j/m] * b[i%m][j%m]
		}
	}
	return out
}

func fromMatrix(m circuit.Matrix) dense {
	return dense{{m[0][0], m[0][1]}, {m[1][0], m[1][1]}}
}

func pauliX() dense { return dense{{0, 1}, {1, 0}} }
func pauliY() dense { return dense{{0, -1i}, {1i, 0}} }
func pauliZ() dense { return dense{{1, 0}, {0, -1}} }

// rotation returns cos(a) I - i sin(a) P for an involutory P.
func rotation(p dense, a float64) dense {
	out := identity(len(p))
	for i := range out {
		for j := range out[i] {
			out[i][j] = out[i][j]*complex(math.Cos(a), 0) - 1i*complex(math.Sin(a), 0)*p[i][j]
		}
	}
	return out
}

func twoQubit(t T, in circuit.Instruction, p []float64) dense {
	t.Helper()
	s := complex(1/math.Sqrt2, 0)
	switch in.Name {
	case "cx":
		return dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0}}
	case "cy":
		return dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, -1i}, {0, 0, 1i, 0}}
	case "cz":
		return dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, -1}}
	case "swap":
		return dense{{1, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}}
	case "iswap":
		return dense{{1, 0, 0, 0}, {0, 0, 1i, 0}, {0, 1i, 0, 0}, {0, 0, 0, 1}}
	case "iswapdg":
		return dense{{1, 0, 0, 0}, {0, 0, -1i, 0}, {0, -1i, 0, 0}, {0, 0, 0, 1}}
	case "dcx":
		cx01 := dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0}}
		cx10 := dense{{1, 0, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0}, {0, 1, 0, 0}}
		return cx10.mul(cx01)
	case "ecr":
		a, b := kron(pauliX(), identity(2)), kron(pauliY(), pauliX())
		out := identity(4)
		for i := range out {
			for j := range out[i] {
				out[i][j] = s * (a[i][j] - b[i][j])
			}
		}
		return out
	case "cp":
		return dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, cmplx.Exp(complex(0, p[0]))}}
	case "cry":
		c, sn := complex(math.Cos(p[0]/2), 0), complex(math.Sin(p[0]/2), 0)
		return dense{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, c, -sn}, {0, 0, sn, c}}
	case "rzz":
		return rotation(kron(pauliZ(), pauliZ()), p[0]/2)
	case "rxx":
		return rotation(kron(pauliX(), pauliX()), p[0]/2)
	case "zz":
		return rotation(kron(pauliZ(), pauliZ()), math.Pi*p[0])
	case "ms":
		sigma := func(f float64) dense {
			return dense{{0, cmplx.Exp(complex(0, -2*math.Pi*f))}, {cmplx.Exp(complex(0, 2*math.Pi*f)), 0}}
		}
		return rotation(kron(sigma(p[0]), sigma(p[1])), math.Pi*p[2])
	}
	t.Fatalf("no matrix for two-qubit gate '%s'", in.Name)
	return nil
}

// embed lifts a gate on qubits into the full space. Qubit 0 is the most
// significant bit of a basis index.
func embed(g dense, qubits []int, n int) dense {
	dim := 1 << n
	bit := func(idx, q int) int { return (idx >> (n - 1 - q)) & 1 }
	sub := func(idx int) int {
		s := 0
		for _, q := range qubits {
			s = s<<1 | bit(idx, q)
		}
		return s
	}
	rest := func(idx int) int {
		for _, q := range qubits {
			idx &^= 1 << (n - 1 - q)
		}
		return idx
	}
	out := make(dense, dim)
	for r := range out {
		out[r] = make([]complex128, dim)
		for c := 0; c < dim; c++ {
			if rest(r) == rest(c) {
				out[r][c] = g[sub(r)][sub(c)]
			}
		}
	}
	return out
}

// Unitary returns the matrix of a bound, measurement-free circuit.
func Unitary(t T, c *circuit.Circuit) [][]complex128 {
	t.Helper()
	if c.NumQubits > MaxSimulatedQubits {
		t.Fatalf("cannot simulate %d qubits", c.NumQubits)
	}
	u := identity(1 << c.NumQubits)
	for _, in := range c.Instructions {
		if in.Name == "barrier" {
			continue
		}
		if in.Name == "measure" {
			t.Fatalf("cannot simulate measurement")
		}
		var g dense
		if m, ok := circuit.GateMatrix(in); ok {
			g = fromMatrix(m)
		} else {
			vals := make([]float64, len(in.Params))
			for i, p := range in.Params {
				v, ok := p.Value()
				if !ok {
					t.Fatalf("unbound parameter in '%s'", in.Name)
				}
				vals[i] = v
			}
			g = twoQubit(t, in, vals)
		}
		u = embed(g, in.Qubits, c.NumQubits).mul(u)
	}
	return u
}

// Equivalent reports whether a and b are equal up to global phase.
func Equivalent(a, b [][]complex128, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	var phase complex128
	for i := range a {
		for j := range a[i] {
			if cmplx.Abs(b[i][j]) > 1e-6 {
				phase = a[i][j] / b[i][j]
				break
			}
		}
		if phase != 0 {
			break
		}
	}
	if phase == 0 || math.Abs(cmplx.Abs(phase)-1) > tol {
		return false
	}
	for i := range a {
		for j := range a[i] {
			if cmplx.Abs(a[i][j]-phase*b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// AssertEquivalent fails unless a and b implement the same unitary up to
// global phase.
func AssertEquivalent(t T, a, b *circuit.Circuit) {
	t.Helper()
	if !Equivalent(Unitary(t, a), Unitary(t, b), 1e-6) {
		t.Errorf("circuits %q and %q are not equivalent", a.Name, b.Name)
	}
}

// AssertIdentity fails unless c implements the identity up to global phase.
func AssertIdentity(t T, c *circuit.Circuit) {
	t.Helper()
	if !Equivalent(Unitary(t, c), identity(1<<c.NumQubits), 1e-6) {
		t.Errorf("circuit %q is not the identity", c.Name)
	}
}
