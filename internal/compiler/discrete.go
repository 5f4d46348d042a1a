package compiler

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// CliffordT is the discrete gate vocabulary.
var CliffordT = []string{
	"id", "x", "y", "z", "h", "s", "sdg", "t", "tdg", "sx", "sxdg",
	"cx", "cy", "cz", "swap", "iswap", "dcx", "ecr",
}

// netDepth is the longest H/T word in the approximation table.
const netDepth = 20

type netEntry struct {
	m    circuit.Matrix
	word []string
}

var (
	net     []netEntry
	netOnce sync.Once
)

var netGenerators = []struct {
	name string
	m    circuit.Matrix
}{
	{"h", circuit.U(math.Pi/2, 0, math.Pi)},
	{"t", circuit.U(0, 0, math.Pi/4)},
	{"tdg", circuit.U(0, 0, -math.Pi/4)},
}

func phaseKey(m circuit.Matrix) string {
	ref := m[0][0]
	if real(ref)*real(ref)+imag(ref)*imag(ref) < 1e-12 {
		ref = m[0][1]
	}
	abs := math.Hypot(real(ref), imag(ref))
	rot := complex(real(ref)/abs, -imag(ref)/abs)
	var b strings.Builder
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := m[i][j] * rot
			fmt.Fprintf(&b, "%.6f,%.6f;", real(v)+0, imag(v)+0)
		}
	}
	return b.String()
}

func cancelsLast(word []string, g string) bool {
	if len(word) == 0 {
		return false
	}
	last := word[len(word)-1]
	return (last == "h" && g == "h") || (last == "t" && g == "tdg") || (last == "tdg" && g == "t")
}

// buildNet enumerates distinct unitaries reachable by short H/T words.
func buildNet() {
	seen := map[string]bool{phaseKey(circuit.Identity): true}
	net = []netEntry{{m: circuit.Identity}}
	frontier := []netEntry{{m: circuit.Identity}}
	for depth := 0; depth < netDepth; depth++ {
		var next []netEntry
		for _, e := range frontier {
			for _, g := range netGenerators {
				if cancelsLast(e.word, g.name) {
					continue
				}
				m := g.m.Mul(e.m)
				k := phaseKey(m)
				if seen[k] {
					continue
				}
				seen[k] = true
				word := make([]string, len(e.word)+1)
				copy(word, e.word)
				word[len(e.word)] = g.name
				entry := netEntry{m: m, word: word}
				net = append(net, entry)
				next = append(next, entry)
			}
		}
		frontier = next
	}
}

// approximate returns the closest H/T word to m.
func approximate(m circuit.Matrix) []string {
	netOnce.Do(buildNet)
	best, bestDist := 0, math.Inf(1)
	for i, e := range net {
		if d := e.m.Distance(m); d < bestDist {
			best, bestDist = i, d
		}
	}
	return net[best].word
}

var eighthTurns = [8][]string{
	nil,
	{"t"},
	{"s"},
	{"s", "t"},
	{"z"},
	{"z", "t"},
	{"sdg"},
	{"tdg"},
}

// rzWord returns a Clifford+T sequence for rz(theta) up to global phase.
// Multiples of pi/4 are exact.
func rzWord(theta float64) []string {
	k := theta / (math.Pi / 4)
	if rk := math.Round(k); math.Abs(k-rk) < angleTolerance {
		idx := int(math.Mod(rk, 8))
		if idx < 0 {
			idx += 8
		}
		return eighthTurns[idx]
	}
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return approximate(circuit.Matrix{
		{complex(c, -s), 0},
		{0, complex(c, s)},
	})
}

// SynthesizeDiscrete rewrites rotations into Clifford+T. The circuit must
// be measurement free and fully bound.
func (t *Transpiler) SynthesizeDiscrete(ctx context.Context, c *circuit.Circuit) (*circuit.Circuit, error) {
	out := c.Copy()
	out.Instructions = out.Instructions[:0]
	discrete := make(map[string]bool, len(CliffordT))
	for _, g := range CliffordT {
		discrete[g] = true
	}

	for i, in := range c.Instructions {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if in.Name == "measure" {
			return nil, oerrors.Wrap(oerrors.ErrCompilation,
				"discrete synthesis requires a measurement-free circuit")
		}
		if in.Name == "barrier" || discrete[in.Name] {
			out.Instructions = append(out.Instructions, in.Copy())
			continue
		}
		for _, p := range in.Params {
			if !p.IsBound() {
				return nil, oerrors.Wrap(oerrors.ErrCompilation,
					fmt.Sprintf("discrete synthesis requires bound parameters, '%s' has %s", in.Name, p))
			}
		}

		q := in.Qubits[0]
		emit := func(names ...string) {
			for _, n := range names {
				out.Instructions = append(out.Instructions, circuit.Instruction{Name: n, Qubits: []int{q}})
			}
		}
		switch in.Name {
		case "rz", "p":
			emit(rzWord(in.Params[0].MustValue())...)
		case "rx":
			emit("h")
			emit(rzWord(in.Params[0].MustValue())...)
			emit("h")
		case "ry":
			emit("sdg", "h")
			emit(rzWord(in.Params[0].MustValue())...)
			emit("h", "s")
		default:
			m, ok := circuit.GateMatrix(in)
			if !ok {
				return nil, oerrors.Wrap(oerrors.ErrCompilation,
					fmt.Sprintf("gate '%s' cannot be synthesized into Clifford+T", in.Name))
			}
			theta, phi, lambda := m.ZYZ()
			emit(rzWord(lambda)...)
			emit("sdg", "h")
			emit(rzWord(theta)...)
			emit("h", "s")
			emit(rzWord(phi)...)
		}
	}

	cancelAndMerge(out)
	return out, nil
}
