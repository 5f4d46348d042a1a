package benchmarks

import (
	"math"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
)

// draperAdder adds register a (qubits [0, n/2)) into register b (the rest)
// modulo 2^(n/2), in Fourier space.
func draperAdder(n int) (*circuit.Circuit, error) {
	if n < 2 || n%2 != 0 {
		return nil, oerrors.NewValidationError("num_qubits must be an even integer ≥ 2.", "num_qubits", "")
	}
	m := n / 2
	a, b := span(0, m), span(m, n)

	c := circuit.New("draper_qft_adder", n)
	appendQFT(c, b, false, false)
	for j := 0; j < m; j++ {
		for k := 0; k < m-j; k++ {
			c.CP(circuit.Num(math.Pi/math.Pow(2, float64(k))), a[j], b[j+k])
		}
	}
	appendQFT(c, b, false, true)
	c.MeasureAll()
	return c, nil
}
