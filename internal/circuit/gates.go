package circuit

import (
	"math"
	"slices"
)

// Def describes one gate of the library.
type Def struct {
	Name      string
	NumQubits int
	NumParams int

	// Standard gates are known to the generic capability generator.
	Standard bool
	// Vendor gates need an explicit instruction injection.
	Vendor bool
	// Symmetric gates act identically with their qubits swapped.
	Symmetric bool
	// Directive instructions are structural and carry no unitary.
	Directive bool

	inverse func(Instruction) Instruction
	matrix  func(p []float64) Matrix
	flip    func(Instruction) Instruction
}

// HasMatrix reports whether d is a single-qubit gate with a known matrix.
func (d Def) HasMatrix() bool {
	return d.matrix != nil
}

var library = map[string]Def{}

func define(d Def) {
	if _, dup := library[d.Name]; dup {
		panic("circuit: duplicate gate " + d.Name)
	}
	library[d.Name] = d
}

// Lookup returns the definition of a gate.
func Lookup(name string) (Def, bool) {
	d, ok := library[name]
	return d, ok
}

// StandardGates returns the names of all standard unitary gates, sorted.
func StandardGates() []string {
	var names []string
	for n, d := range library {
		if d.Standard && !d.Directive {
			names = append(names, n)
		}
	}
	slices.Sort(names)
	return names
}

// GateMatrix returns the unitary of a bound single-qubit instruction.
func GateMatrix(in Instruction) (Matrix, bool) {
	d, ok := library[in.Name]
	if !ok || d.matrix == nil {
		return Matrix{}, false
	}
	vals := make([]float64, len(in.Params))
	for i, p := range in.Params {
		v, bound := p.Value()
		if !bound {
			return Matrix{}, false
		}
		vals[i] = v
	}
	return d.matrix(vals), true
}

// InverseOf returns the inverse of a unitary instruction.
func InverseOf(in Instruction) (Instruction, bool) {
	d, ok := library[in.Name]
	if !ok || d.inverse == nil {
		return Instruction{}, false
	}
	return d.inverse(in), true
}

// Flip returns an equivalent instruction with the two qubits exchanged.
func Flip(in Instruction) (Instruction, bool) {
	d, ok := library[in.Name]
	if !ok || d.NumQubits != 2 {
		return Instruction{}, false
	}
	if d.flip != nil {
		return d.flip(in), true
	}
	if !d.Symmetric {
		return Instruction{}, false
	}
	out := in.Copy()
	out.Qubits[0], out.Qubits[1] = in.Qubits[1], in.Qubits[0]
	return out, true
}

func self(in Instruction) Instruction { return in.Copy() }

func renamed(name string) func(Instruction) Instruction {
	return func(in Instruction) Instruction {
		out := in.Copy()
		out.Name = name
		return out
	}
}

func negated(in Instruction) Instruction {
	out := in.Copy()
	for i, p := range out.Params {
		out.Params[i] = p.Neg()
	}
	return out
}

func fixed(m Matrix) func([]float64) Matrix {
	return func([]float64) Matrix { return m }
}

func init() {
	pi := math.Pi

	define(Def{Name: "measure", NumQubits: 1, Standard: true, Directive: true})
	define(Def{Name: "barrier", Standard: true, Directive: true})

	define(Def{Name: "id", NumQubits: 1, Standard: true, inverse: self, matrix: fixed(Identity)})
	define(Def{Name: "x", NumQubits: 1, Standard: true, inverse: self, matrix: fixed(U(pi, 0, pi))})
	define(Def{Name: "y", NumQubits: 1, Standard: true, inverse: self, matrix: fixed(U(pi, pi/2, pi/2))})
	define(Def{Name: "z", NumQubits: 1, Standard: true, inverse: self, matrix: fixed(phase(pi))})
	define(Def{Name: "h", NumQubits: 1, Standard: true, inverse: self, matrix: fixed(U(pi/2, 0, pi))})
	define(Def{Name: "s", NumQubits: 1, Standard: true, inverse: renamed("sdg"), matrix: fixed(phase(pi / 2))})
	define(Def{Name: "sdg", NumQubits: 1, Standard: true, inverse: renamed("s"), matrix: fixed(phase(-pi / 2))})
	define(Def{Name: "t", NumQubits: 1, Standard: true, inverse: renamed("tdg"), matrix: fixed(phase(pi / 4))})
	define(Def{Name: "tdg", NumQubits: 1, Standard: true, inverse: renamed("t"), matrix: fixed(phase(-pi / 4))})
	define(Def{Name: "sx", NumQubits: 1, Standard: true, inverse: renamed("sxdg"), matrix: fixed(rx(pi / 2))})
	define(Def{Name: "sxdg", NumQubits: 1, Standard: true, inverse: renamed("sx"), matrix: fixed(rx(-pi / 2))})

	define(Def{Name: "rx", NumQubits: 1, NumParams: 1, Standard: true, inverse: negated,
		matrix: func(p []float64) Matrix { return rx(p[0]) }})
	define(Def{Name: "ry", NumQubits: 1, NumParams: 1, Standard: true, inverse: negated,
		matrix: func(p []float64) Matrix { return ry(p[0]) }})
	define(Def{Name: "rz", NumQubits: 1, NumParams: 1, Standard: true, inverse: negated,
		matrix: func(p []float64) Matrix { return rz(p[0]) }})
	define(Def{Name: "p", NumQubits: 1, NumParams: 1, Standard: true, inverse: negated,
		matrix: func(p []float64) Matrix { return phase(p[0]) }})
	define(Def{Name: "r", NumQubits: 1, NumParams: 2, Standard: true,
		inverse: func(in Instruction) Instruction {
			out := in.Copy()
			out.Params[0] = in.Params[0].Neg()
			return out
		},
		matrix: func(p []float64) Matrix { return rphi(p[0], p[1]) }})
	define(Def{Name: "u", NumQubits: 1, NumParams: 3, Standard: true,
		inverse: func(in Instruction) Instruction {
			out := in.Copy()
			out.Params = []Expr{in.Params[0].Neg(), in.Params[2].Neg(), in.Params[1].Neg()}
			return out
		},
		matrix: func(p []float64) Matrix { return U(p[0], p[1], p[2]) }})

	define(Def{Name: "cx", NumQubits: 2, Standard: true, inverse: self})
	define(Def{Name: "cy", NumQubits: 2, Standard: true, inverse: self})
	define(Def{Name: "cz", NumQubits: 2, Standard: true, Symmetric: true, inverse: self})
	define(Def{Name: "swap", NumQubits: 2, Standard: true, Symmetric: true, inverse: self})
	define(Def{Name: "ecr", NumQubits: 2, Standard: true, inverse: self})
	define(Def{Name: "iswap", NumQubits: 2, Standard: true, Symmetric: true, inverse: renamed("iswapdg")})
	define(Def{Name: "dcx", NumQubits: 2, Standard: true,
		inverse: func(in Instruction) Instruction {
			out := in.Copy()
			out.Qubits[0], out.Qubits[1] = in.Qubits[1], in.Qubits[0]
			return out
		}})
	define(Def{Name: "cp", NumQubits: 2, NumParams: 1, Standard: true, Symmetric: true, inverse: negated})
	define(Def{Name: "cry", NumQubits: 2, NumParams: 1, Standard: true, inverse: negated})
	define(Def{Name: "rzz", NumQubits: 2, NumParams: 1, Standard: true, Symmetric: true, inverse: negated})
	define(Def{Name: "rxx", NumQubits: 2, NumParams: 1, Standard: true, Symmetric: true, inverse: negated})

	// Inverse of iswap; only produced by inversion.
	define(Def{Name: "iswapdg", NumQubits: 2, Symmetric: true, inverse: renamed("iswap")})

	define(Def{Name: "gpi", NumQubits: 1, NumParams: 1, Vendor: true, inverse: self,
		matrix: func(p []float64) Matrix { return gpi(p[0]) }})
	define(Def{Name: "gpi2", NumQubits: 1, NumParams: 1, Vendor: true,
		inverse: func(in Instruction) Instruction {
			out := in.Copy()
			out.Params[0] = in.Params[0].AddConst(0.5)
			return out
		},
		matrix: func(p []float64) Matrix { return gpi2(p[0]) }})
	define(Def{Name: "ms", NumQubits: 2, NumParams: 3, Vendor: true,
		inverse: func(in Instruction) Instruction {
			out := in.Copy()
			out.Params[2] = in.Params[2].Neg()
			return out
		},
		flip: func(in Instruction) Instruction {
			out := in.Copy()
			out.Qubits[0], out.Qubits[1] = in.Qubits[1], in.Qubits[0]
			out.Params[0], out.Params[1] = in.Params[1], in.Params[0]
			return out
		}})
	define(Def{Name: "zz", NumQubits: 2, NumParams: 1, Vendor: true, Symmetric: true, inverse: negated})
	define(Def{Name: "rxpi", NumQubits: 1, Vendor: true, inverse: self, matrix: fixed(rx(pi))})
	define(Def{Name: "rxpi2", NumQubits: 1, Vendor: true, inverse: renamed("rxpi2dg"), matrix: fixed(rx(pi / 2))})
	define(Def{Name: "rxpi2dg", NumQubits: 1, Vendor: true, inverse: renamed("rxpi2"), matrix: fixed(rx(-pi / 2))})
}
