package benchmarks

import (
	"math"

	"github.com/mqtbench/cli/internal/circuit"
)

func init() {
	declare("wstate", "W state", wstate)
}

func wstate(n int) (*circuit.Circuit, error) {
	if err := atLeast("wstate", n, 2); err != nil {
		return nil, err
	}
	c := circuit.New("wstate", n)
	c.X(n - 1)
	for l := 1; l < n; l++ {
		i, j := n-l, n-l-1
		theta := math.Acos(math.Sqrt(1 / float64(n-l+1)))
		c.RY(circuit.Num(-theta), j)
		c.CZ(i, j)
		c.RY(circuit.Num(theta), j)
	}
	for k := n - 1; k >= 1; k-- {
		c.CX(k-1, k)
	}
	c.MeasureAll()
	return c, nil
}
