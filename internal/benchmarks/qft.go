package benchmarks

import "github.com/mqtbench/cli/internal/circuit"

func init() {
	declare("qft", "Quantum Fourier transform", qftBenchmark)
	declare("qftentangled", "Quantum Fourier transform on a GHZ state", qftEntangled)
	declare("draper_qft_adder", "Draper QFT adder", draperAdder)
}

func qftBenchmark(n int) (*circuit.Circuit, error) {
	if err := atLeast("qft", n, 1); err != nil {
		return nil, err
	}
	c := qft(n, true)
	c.Name = "qft"
	c.MeasureAll()
	return c, nil
}

func qftEntangled(n int) (*circuit.Circuit, error) {
	if err := atLeast("qftentangled", n, 2); err != nil {
		return nil, err
	}
	c := circuit.New("qftentangled", n)
	c.H(n - 1)
	for i := 1; i < n; i++ {
		c.CX(n-i, n-i-1)
	}
	appendQFT(c, span(0, n), true, false)
	c.MeasureAll()
	return c, nil
}
