package benchmarks

import (
	"math"

	"github.com/mqtbench/cli/internal/circuit"
)

func init() {
	declare("ae", "Amplitude estimation", amplitudeEstimation)
	declare("qpeexact", "Quantum phase estimation, exactly representable phase", qpeExact)
	declare("qpeinexact", "Quantum phase estimation, non-representable phase", qpeInexact)
}

// aeProbability is the success probability the estimation targets.
const aeProbability = 0.2

// amplitudeEstimation estimates the amplitude of a Bernoulli state
// preparation with n-1 evaluation qubits.
func amplitudeEstimation(n int) (*circuit.Circuit, error) {
	if err := atLeast("ae", n, 2); err != nil {
		return nil, err
	}
	m := n - 1
	thetaP := 2 * math.Asin(math.Sqrt(aeProbability))

	c := circuit.New("ae", n)
	c.RY(circuit.Num(thetaP), m)
	for q := 0; q < m; q++ {
		c.H(q)
	}
	for q := 0; q < m; q++ {
		c.CRY(circuit.Num(math.Pow(2, float64(q+1))*thetaP), q, m)
	}
	appendQFT(c, span(0, m), true, true)
	measureInto(c, "c", span(0, m))
	return c, nil
}

// qpeNumerator returns the seeded odd numerator of the phase k/2^bits.
func qpeNumerator(bits int) int {
	return newRand().IntN(1<<(bits-1))*2 + 1
}

func qpeExact(n int) (*circuit.Circuit, error) {
	if err := atLeast("qpeexact", n, 2); err != nil {
		return nil, err
	}
	bits := n - 1
	return qpe("qpeexact", n, float64(qpeNumerator(bits))/math.Pow(2, float64(bits))), nil
}

func qpeInexact(n int) (*circuit.Circuit, error) {
	if err := atLeast("qpeinexact", n, 2); err != nil {
		return nil, err
	}
	bits := n
	return qpe("qpeinexact", n, float64(qpeNumerator(bits))/math.Pow(2, float64(bits))), nil
}

// qpe estimates the eigenphase theta of a phase gate on qubit n-1 with
// counting qubits [0, n-1), qubit 0 least significant.
func qpe(name string, n int, theta float64) *circuit.Circuit {
	m := n - 1
	c := circuit.New(name, n)
	c.X(m)
	for q := 0; q < m; q++ {
		c.H(q)
	}
	for q := 0; q < m; q++ {
		c.CP(circuit.Num(2*math.Pi*theta*math.Pow(2, float64(q))), q, m)
	}
	appendQFT(c, span(0, m), true, true)
	measureInto(c, "c", span(0, m))
	return c
}
