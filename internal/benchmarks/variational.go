package benchmarks

import (
	"fmt"

	"github.com/mqtbench/cli/internal/circuit"
)

func init() {
	declare("qaoa", "QAOA for MaxCut", qaoa)
	declare("qnn", "Quantum neural network", qnn)
	declare("vqe_real_amp", "Real amplitudes ansatz", ansatz("vqe_real_amp", []string{"ry"}, reverseLinear))
	declare("vqe_su2", "Efficient SU2 ansatz", ansatz("vqe_su2", []string{"ry", "rz"}, reverseLinear))
	declare("vqe_two_local", "Two-local ansatz", ansatz("vqe_two_local", []string{"ry"}, full))
}

const (
	ansatzReps = 3
	qaoaReps   = 2
)

func ansatz(name string, rotations []string, pairs entanglement) Func {
	return func(n int) (*circuit.Circuit, error) {
		if err := atLeast(name, n, 2); err != nil {
			return nil, err
		}
		c := circuit.New(name, n)
		nLocal(c, rotations, pairs, ansatzReps, "theta")
		c.MeasureAll()
		return c, nil
	}
}

// qaoa is a MaxCut ansatz on a seeded ring through all qubits, with free
// gamma_i and beta_i per layer.
func qaoa(n int) (*circuit.Circuit, error) {
	if err := atLeast("qaoa", n, 3); err != nil {
		return nil, err
	}
	order := newRand().Perm(n)

	c := circuit.New("qaoa", n)
	for q := 0; q < n; q++ {
		c.H(q)
	}
	for r := 0; r < qaoaReps; r++ {
		gamma := circuit.Param(fmt.Sprintf("gamma_%d", r)).Scale(2)
		beta := circuit.Param(fmt.Sprintf("beta_%d", r)).Scale(2)
		for i := range order {
			c.RZZ(gamma, order[i], order[(i+1)%n])
		}
		for q := 0; q < n; q++ {
			c.RX(beta, q)
		}
	}
	c.MeasureAll()
	return c, nil
}

// qnn is a Z feature map with two repetitions followed by a single-layer
// real amplitudes ansatz.
func qnn(n int) (*circuit.Circuit, error) {
	if err := atLeast("qnn", n, 2); err != nil {
		return nil, err
	}
	c := circuit.New("qnn", n)
	for r := 0; r < 2; r++ {
		for q := 0; q < n; q++ {
			c.H(q)
			c.P(circuit.Param(fmt.Sprintf("x_%d", q)).Scale(2), q)
		}
	}
	nLocal(c, []string{"ry"}, reverseLinear, 1, "theta")
	c.MeasureAll()
	return c, nil
}
