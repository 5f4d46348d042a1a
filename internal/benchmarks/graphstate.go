package benchmarks

import "github.com/mqtbench/cli/internal/circuit"

func init() {
	declare("graphstate", "Graph state", graphstate)
}

// graphstate prepares the graph state of a random 2-regular graph: a single
// cycle through all qubits in a seeded order.
func graphstate(n int) (*circuit.Circuit, error) {
	if err := atLeast("graphstate", n, 3); err != nil {
		return nil, err
	}
	order := newRand().Perm(n)

	c := circuit.New("graphstate", n)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for i := range order {
		c.CZ(order[i], order[(i+1)%n])
	}
	c.MeasureAll()
	return c, nil
}
