package circuit

import (
	"math"
	"math/cmplx"
)

// Matrix is a single-qubit unitary.
type Matrix [2][2]complex128

// Identity is the single-qubit identity.
var Identity = Matrix{{1, 0}, {0, 1}}

// Mul returns m*o.
func (m Matrix) Mul(o Matrix) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Distance is the phase-insensitive operator distance sqrt(1 - |tr(m†o)|/2).
func (m Matrix) Distance(o Matrix) float64 {
	p := m.Dagger().Mul(o)
	overlap := cmplx.Abs(p[0][0]+p[1][1]) / 2
	if overlap >= 1 {
		return 0
	}
	return math.Sqrt(1 - overlap)
}

// EqualUpToPhase reports whether m and o differ only by a global phase.
func (m Matrix) EqualUpToPhase(o Matrix, tol float64) bool {
	return m.Distance(o) < tol
}

// IsIdentity reports whether m is the identity up to global phase.
func (m Matrix) IsIdentity(tol float64) bool {
	return m.EqualUpToPhase(Identity, tol)
}

// U returns the matrix of u(theta, phi, lambda).
func U(theta, phi, lambda float64) Matrix {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return Matrix{
		{complex(c, 0), -cmplx.Exp(complex(0, lambda)) * complex(s, 0)},
		{cmplx.Exp(complex(0, phi)) * complex(s, 0), cmplx.Exp(complex(0, phi+lambda)) * complex(c, 0)},
	}
}

// ZYZ returns angles with m = e^{i alpha} u(theta, phi, lambda).
func (m Matrix) ZYZ() (theta, phi, lambda float64) {
	const eps = 1e-12

	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	ph := cmplx.Sqrt(det)
	var v Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v[i][j] = m[i][j] / ph
		}
	}

	theta = 2 * math.Atan2(cmplx.Abs(v[1][0]), cmplx.Abs(v[0][0]))
	switch {
	case cmplx.Abs(v[1][1]) < eps:
		phi = 2 * cmplx.Phase(v[1][0])
	case cmplx.Abs(v[1][0]) < eps:
		phi = 2 * cmplx.Phase(v[1][1])
	default:
		a11, a10 := cmplx.Phase(v[1][1]), cmplx.Phase(v[1][0])
		phi, lambda = a11+a10, a11-a10
	}
	return NormalizeAngle(theta), NormalizeAngle(phi), NormalizeAngle(lambda)
}

func rz(t float64) Matrix {
	return Matrix{{cmplx.Exp(complex(0, -t/2)), 0}, {0, cmplx.Exp(complex(0, t/2))}}
}

func rx(t float64) Matrix {
	c, s := math.Cos(t/2), math.Sin(t/2)
	return Matrix{{complex(c, 0), complex(0, -s)}, {complex(0, -s), complex(c, 0)}}
}

func ry(t float64) Matrix {
	c, s := math.Cos(t/2), math.Sin(t/2)
	return Matrix{{complex(c, 0), complex(-s, 0)}, {complex(s, 0), complex(c, 0)}}
}

func phase(l float64) Matrix {
	return Matrix{{1, 0}, {0, cmplx.Exp(complex(0, l))}}
}

func rphi(t, p float64) Matrix {
	c, s := math.Cos(t/2), math.Sin(t/2)
	return Matrix{
		{complex(c, 0), complex(0, -1) * cmplx.Exp(complex(0, -p)) * complex(s, 0)},
		{complex(0, -1) * cmplx.Exp(complex(0, p)) * complex(s, 0), complex(c, 0)},
	}
}

func gpi(f float64) Matrix {
	a := 2 * math.Pi * f
	return Matrix{{0, cmplx.Exp(complex(0, -a))}, {cmplx.Exp(complex(0, a)), 0}}
}

func gpi2(f float64) Matrix {
	a := 2 * math.Pi * f
	s := complex(1/math.Sqrt2, 0)
	return Matrix{
		{s, complex(0, -1) * cmplx.Exp(complex(0, -a)) * s},
		{complex(0, -1) * cmplx.Exp(complex(0, a)) * s, s},
	}
}
