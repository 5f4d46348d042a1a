package benchmarks

import "github.com/mqtbench/cli/internal/circuit"

func init() {
	declare("bv", "Bernstein-Vazirani", bernsteinVazirani)
	declare("dj", "Deutsch-Jozsa", deutschJozsa)
}

// bvSecret is the hidden string of a Bernstein-Vazirani circuit on n qubits.
func bvSecret(n int) []bool {
	return randomBits(newRand(), n-1)
}

// bernsteinVazirani recovers a seeded hidden string on qubits [0, n-1) using
// qubit n-1 as the oracle ancilla.
func bernsteinVazirani(n int) (*circuit.Circuit, error) {
	if err := atLeast("bv", n, 2); err != nil {
		return nil, err
	}
	anc := n - 1
	data := span(0, anc)

	c := circuit.New("bv", n)
	c.X(anc)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	c.Barrier()
	for i, set := range bvSecret(n) {
		if set {
			c.CX(i, anc)
		}
	}
	c.Barrier()
	for _, q := range data {
		c.H(q)
	}
	measureInto(c, "c", data)
	return c, nil
}

// deutschJozsa queries a seeded balanced oracle.
func deutschJozsa(n int) (*circuit.Circuit, error) {
	if err := atLeast("dj", n, 2); err != nil {
		return nil, err
	}
	anc := n - 1
	data := span(0, anc)
	flips := randomBits(newRand(), anc)

	c := circuit.New("dj", n)
	c.X(anc)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for i, f := range flips {
		if f {
			c.X(i)
		}
	}
	for _, q := range data {
		c.CX(q, anc)
	}
	for i, f := range flips {
		if f {
			c.X(i)
		}
	}
	for _, q := range data {
		c.H(q)
	}
	measureInto(c, "c", data)
	return c, nil
}
