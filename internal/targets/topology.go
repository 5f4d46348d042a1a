package targets

import (
	"fmt"
)

// directedEdges expands the topology into the directed qubit pairs that
// two-qubit gates are offered on.
func (t topologySpec) directedEdges(numQubits int) ([][2]int, error) {
	var undirected [][2]int
	count := numQubits

	switch t.Kind {
	case "allToAll":
		return allToAll(numQubits), nil
	case "edges":
		for _, e := range t.Edges {
			if len(e) != 2 || e[0] == e[1] {
				return nil, fmt.Errorf("invalid edge %v", e)
			}
			for _, q := range e {
				if q < 0 || q >= numQubits {
					return nil, fmt.Errorf("edge %v out of range for %d qubits", e, numQubits)
				}
			}
			undirected = append(undirected, [2]int{e[0], e[1]})
		}
		if t.Directed {
			return undirected, nil
		}
	case "grid":
		undirected = grid(t.Rows, t.Cols)
		count = t.Rows * t.Cols
	case "heavyHex":
		undirected, count = heavyHex(t.Rows, t.Cols, t.TrimEnds, t.Tail)
	default:
		return nil, fmt.Errorf("unknown topology kind '%s'", t.Kind)
	}

	if count != numQubits {
		return nil, fmt.Errorf("%s topology has %d qubits, expected %d", t.Kind, count, numQubits)
	}
	return bothWays(undirected), nil
}

func allToAll(n int) [][2]int {
	edges := make([][2]int, 0, n*(n-1))
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}

func bothWays(edges [][2]int) [][2]int {
	out := make([][2]int, 0, 2*len(edges))
	for _, e := range edges {
		out = append(out, e, [2]int{e[1], e[0]})
	}
	return out
}

// grid numbers qubits row-major and links horizontal and vertical
// neighbours.
func grid(rows, cols int) [][2]int {
	var edges [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			q := r*cols + c
			if c+1 < cols {
				edges = append(edges, [2]int{q, q + 1})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{q, q + cols})
			}
		}
	}
	return edges
}

// heavyHex builds a heavy-hex lattice of rows of cols qubits. Consecutive
// rows are joined by bridge qubits in every fourth column, starting at
// column 0 for even layers and column 2 for odd ones. Qubits are numbered
// row by row, each bridge layer right after the row above it.
func heavyHex(rows, cols int, trimEnds, tail bool) ([][2]int, int) {
	var edges [][2]int
	next := 0
	link := func(a, b int) { edges = append(edges, [2]int{a, b}) }

	type bridge struct{ id, col int }
	var pending []bridge

	layers := rows - 1
	if tail {
		layers = rows
	}

	for r := 0; r < rows; r++ {
		ids := make([]int, cols)
		for c := range ids {
			ids[c] = -1
			if trimEnds && ((r == 0 && c == cols-1) || (r == rows-1 && c == 0)) {
				continue
			}
			ids[c] = next
			next++
		}
		for c := 0; c+1 < cols; c++ {
			if ids[c] >= 0 && ids[c+1] >= 0 {
				link(ids[c], ids[c+1])
			}
		}
		for _, b := range pending {
			if ids[b.col] >= 0 {
				link(b.id, ids[b.col])
			}
		}
		pending = pending[:0]

		if r >= layers {
			continue
		}
		start := 0
		if r%2 == 1 {
			start = 2
		}
		for c := start; c < cols; c += 4 {
			if ids[c] < 0 {
				continue
			}
			link(ids[c], next)
			pending = append(pending, bridge{id: next, col: c})
			next++
		}
	}
	return edges, next
}
