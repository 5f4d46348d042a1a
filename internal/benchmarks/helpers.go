package benchmarks

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// seed fixes every random choice a factory makes.
const seed = 10

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func atLeast(name string, numQubits, minimum int) error {
	if numQubits >= minimum {
		return nil
	}
	return oerrors.NewValidationError(
		fmt.Sprintf("%s needs at least %d qubits, got %d", name, minimum, numQubits),
		"num_qubits", "")
}

// measureInto measures qubits into a new register after a barrier.
func measureInto(c *circuit.Circuit, reg string, qubits []int) {
	offset := c.AddRegister(reg, len(qubits))
	c.Barrier(qubits...)
	for i, q := range qubits {
		c.Measure(q, offset+i)
	}
}

func span(from, to int) []int {
	out := make([]int, 0, to-from)
	for q := from; q < to; q++ {
		out = append(out, q)
	}
	return out
}

// qft builds the Fourier transform on n qubits, with qubit 0 least
// significant. Without swaps the output is bit-reversed.
func qft(n int, swaps bool) *circuit.Circuit {
	c := circuit.New("qft", n)
	for j := n - 1; j >= 0; j-- {
		c.H(j)
		for k := j - 1; k >= 0; k-- {
			c.CP(circuit.Num(math.Pi*math.Pow(2, float64(k-j))), j, k)
		}
	}
	if swaps {
		for i := 0; i < n/2; i++ {
			c.Swap(i, n-i-1)
		}
	}
	return c
}

// appendOn copies sub into c with sub's qubit i placed on qubits[i].
func appendOn(c, sub *circuit.Circuit, qubits []int) {
	for _, in := range sub.Instructions {
		in = in.Copy()
		for i, q := range in.Qubits {
			in.Qubits[i] = qubits[q]
		}
		c.Instructions = append(c.Instructions, in)
	}
}

func appendQFT(c *circuit.Circuit, qubits []int, swaps, inverse bool) {
	sub := qft(len(qubits), swaps)
	if inverse {
		inv, err := sub.Inverse()
		if err != nil {
			panic(err)
		}
		sub = inv
	}
	appendOn(c, sub, qubits)
}

type entanglement func(n int) [][2]int

func reverseLinear(n int) [][2]int {
	var pairs [][2]int
	for i := n - 2; i >= 0; i-- {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return pairs
}

func full(n int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// nLocal appends reps layers of parametrised rotations followed by cx
// entanglement, then a final rotation layer. Parameters are named
// prefix_0, prefix_1, ... in application order.
func nLocal(c *circuit.Circuit, rotations []string, pairs entanglement, reps int, prefix string) {
	next := 0
	rotate := func() {
		for _, gate := range rotations {
			for q := 0; q < c.NumQubits; q++ {
				c.Append(gate, []int{q}, circuit.Param(fmt.Sprintf("%s_%d", prefix, next)))
				next++
			}
		}
	}
	for r := 0; r < reps; r++ {
		rotate()
		for _, p := range pairs(c.NumQubits) {
			c.CX(p[0], p[1])
		}
	}
	rotate()
}

// randomBits returns n pseudo-random bits, at least one of them set.
func randomBits(rng *rand.Rand, n int) []bool {
	bits := make([]bool, n)
	set := false
	for i := range bits {
		bits[i] = rng.IntN(2) == 1
		set = set || bits[i]
	}
	if !set && n > 0 {
		bits[rng.IntN(n)] = true
	}
	return bits
}
