package compiler

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/mqtbench/cli/internal/circuit"
	oerrors "github.com/mqtbench/cli/internal/errors"
	"github.com/mqtbench/cli/internal/target"
)

// denseLayout places the n virtual qubits on a connected region grown
// breadth-first from the best connected physical qubit. Ties between equally
// connected start qubits are broken by the seed. Ancilla virtual qubits take
// the remaining physical qubits in ascending order.
func denseLayout(n int, tgt *target.Target, seed uint64) []int {
	adj := tgt.Adjacency()
	if adj == nil {
		return circuit.TrivialPermutation(tgt.NumQubits)
	}

	maxDeg := 0
	var starts []int
	for p, nb := range adj {
		switch {
		case len(nb) > maxDeg:
			maxDeg = len(nb)
			starts = []int{p}
		case len(nb) == maxDeg:
			starts = append(starts, p)
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	start := starts[rng.IntN(len(starts))]

	visited := make([]bool, tgt.NumQubits)
	order := make([]int, 0, tgt.NumQubits)
	bfs := func(from int) {
		queue := []int{from}
		visited[from] = true
		for len(queue) > 0 && len(order) < n {
			p := queue[0]
			queue = queue[1:]
			order = append(order, p)
			for _, nb := range adj[p] {
				if !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	bfs(start)
	for p := 0; len(order) < n && p < tgt.NumQubits; p++ {
		if !visited[p] {
			bfs(p)
		}
	}

	used := make([]bool, tgt.NumQubits)
	for _, p := range order[:min(n, len(order))] {
		used[p] = true
	}
	layout := slices.Clone(order[:min(n, len(order))])
	for p := 0; p < tgt.NumQubits; p++ {
		if !used[p] {
			layout = append(layout, p)
		}
	}
	return layout
}

// shortestPath returns a BFS path from a to b over adj, inclusive.
func shortestPath(adj [][]int, a, b int) []int {
	prev := make([]int, len(adj))
	for i := range prev {
		prev[i] = -1
	}
	prev[a] = a
	queue := []int{a}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == b {
			break
		}
		for _, nb := range adj[p] {
			if prev[nb] < 0 {
				prev[nb] = p
				queue = append(queue, nb)
			}
		}
	}
	if prev[b] < 0 {
		return nil
	}
	var path []int
	for p := b; p != a; p = prev[p] {
		path = append(path, p)
	}
	path = append(path, a)
	slices.Reverse(path)
	return path
}

// layoutAndRoute maps c onto tgt. The result acts on all physical qubits
// and records the initial and final layout.
func layoutAndRoute(c *circuit.Circuit, tgt *target.Target, seed uint64, route bool) (*circuit.Circuit, error) {
	if c.NumQubits > tgt.NumQubits {
		return nil, oerrors.Wrap(oerrors.ErrCompilation, fmt.Sprintf(
			"circuit '%s' needs %d qubits but target '%s' has %d", c.Name, c.NumQubits, tgt.Description, tgt.NumQubits))
	}

	initial := denseLayout(c.NumQubits, tgt, seed)
	adj := tgt.Adjacency()

	// pos[v] is the physical qubit holding virtual v; origin[p] is the
	// physical qubit whose initial state now sits on p.
	pos := slices.Clone(initial)
	virt := make([]int, tgt.NumQubits)
	for v, p := range initial {
		virt[p] = v
	}
	origin := circuit.TrivialPermutation(tgt.NumQubits)

	out := &circuit.Circuit{
		Name:      c.Name,
		NumQubits: tgt.NumQubits,
		Cregs:     slices.Clone(c.Cregs),
	}
	swap := func(a, b int) {
		out.Instructions = append(out.Instructions, circuit.Instruction{Name: "swap", Qubits: []int{a, b}})
		va, vb := virt[a], virt[b]
		virt[a], virt[b] = vb, va
		pos[va], pos[vb] = b, a
		origin[a], origin[b] = origin[b], origin[a]
	}

	for _, in := range c.Instructions {
		if !in.IsDirective() && len(in.Qubits) > 2 {
			return nil, oerrors.Wrap(oerrors.ErrCompilation,
				fmt.Sprintf("cannot route %d-qubit instruction '%s'", len(in.Qubits), in.Name))
		}
		if route && adj != nil && len(in.Qubits) == 2 && !in.IsDirective() {
			pa, pb := pos[in.Qubits[0]], pos[in.Qubits[1]]
			if !slices.Contains(adj[pa], pb) {
				path := shortestPath(adj, pa, pb)
				if path == nil {
					return nil, oerrors.Wrap(oerrors.ErrCompilation,
						fmt.Sprintf("physical qubits %d and %d of '%s' are not connected", pa, pb, tgt.Description))
				}
				for i := 0; i+2 < len(path); i++ {
					swap(path[i], path[i+1])
				}
			}
		}
		mapped := in.Copy()
		for i, v := range in.Qubits {
			mapped.Qubits[i] = pos[v]
		}
		out.Instructions = append(out.Instructions, mapped)
	}

	final := make([]int, tgt.NumQubits)
	for p, o := range origin {
		final[o] = p
	}
	out.Layout = &circuit.Layout{Initial: initial, Final: final, InputQubits: c.NumQubits}
	return out, nil
}
