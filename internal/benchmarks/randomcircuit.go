package benchmarks

import (
	"math"

	"github.com/mqtbench/cli/internal/circuit"
)

func init() {
	declare("randomcircuit", "Random quantum circuit", randomCircuit)
}

var (
	randomOneQubit = []string{"h", "x", "y", "z", "s", "sdg", "t", "tdg", "sx", "sxdg", "rx", "ry", "rz", "p", "u"}
	randomTwoQubit = []string{"cx", "cy", "cz", "swap", "iswap", "dcx", "ecr", "cp", "cry", "rzz", "rxx"}
)

// randomCircuit draws 2n layers of seeded random gates. Each layer
// partitions the qubits into groups of one or two.
func randomCircuit(n int) (*circuit.Circuit, error) {
	if err := atLeast("randomcircuit", n, 1); err != nil {
		return nil, err
	}
	rng := newRand()
	c := circuit.New("randomcircuit", n)
	for layer := 0; layer < 2*n; layer++ {
		qubits := rng.Perm(n)
		for len(qubits) > 0 {
			width := 1
			if len(qubits) >= 2 && rng.IntN(2) == 1 {
				width = 2
			}
			pool := randomOneQubit
			if width == 2 {
				pool = randomTwoQubit
			}
			name := pool[rng.IntN(len(pool))]
			def, _ := circuit.Lookup(name)
			params := make([]circuit.Expr, def.NumParams)
			for i := range params {
				params[i] = circuit.Num(rng.Float64() * 2 * math.Pi)
			}
			c.Append(name, append([]int(nil), qubits[:width]...), params...)
			qubits = qubits[width:]
		}
	}
	c.MeasureAll()
	return c, nil
}
