package benchmarks

import "github.com/mqtbench/cli/internal/circuit"

func init() {
	declare("ghz", "GHZ state", ghz)
}

func ghz(n int) (*circuit.Circuit, error) {
	if err := atLeast("ghz", n, 1); err != nil {
		return nil, err
	}
	c := circuit.New("ghz", n)
	c.H(n - 1)
	for i := 1; i < n; i++ {
		c.CX(n-i, n-i-1)
	}
	c.MeasureAll()
	return c, nil
}
