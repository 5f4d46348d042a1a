package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mqtbench/cli/internal/circuit"
	"github.com/mqtbench/cli/internal/compiler"
)

// dialect describes one OpenQASM version.
type dialect struct {
	header  string
	builtin map[string]bool
	// prelude holds fixed definitions for gates the include file lacks.
	prelude map[string]string
	sep     string
}

func gateSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var qasm2 = dialect{
	header: "OPENQASM 2.0;\ninclude \"qelib1.inc\";\n",
	builtin: gateSet("id", "x", "y", "z", "h", "s", "sdg", "t", "tdg", "sx", "sxdg",
		"rx", "ry", "rz", "p", "u", "cx", "cy", "cz", "swap", "cp", "cry", "rzz", "rxx"),
	sep: ",",
}

var qasm3 = dialect{
	header: "OPENQASM 3.0;\ninclude \"stdgates.inc\";\n",
	builtin: gateSet("id", "x", "y", "z", "h", "s", "sdg", "t", "tdg", "sx",
		"rx", "ry", "rz", "p", "cx", "cy", "cz", "swap", "cp", "cry"),
	prelude: map[string]string{
		"u": "gate u(p0, p1, p2) q0 { U(p0, p1, p2) q0; }",
	},
	sep: ", ",
}

// qasmWriter renders one circuit.
type qasmWriter struct {
	d   dialect
	lib *compiler.EquivalenceLibrary
	c   *circuit.Circuit

	b       strings.Builder
	defined map[string]bool
	pending map[string]bool
	clbits  []string
}

func writeQASM(w io.Writer, c *circuit.Circuit, format Format, lib *compiler.EquivalenceLibrary) error {
	qw := &qasmWriter{
		lib:     lib,
		c:       c,
		defined: make(map[string]bool),
		pending: make(map[string]bool),
	}
	if format == FormatQASM2 {
		qw.d = qasm2
	} else {
		qw.d = qasm3
	}
	if err := qw.render(format); err != nil {
		return err
	}
	_, err := io.WriteString(w, qw.b.String())
	return err
}

func (w *qasmWriter) render(format Format) error {
	if err := w.c.Validate(); err != nil {
		return err
	}
	params := w.c.Parameters()
	if format == FormatQASM2 && len(params) > 0 {
		return fmt.Errorf("OpenQASM 2 cannot express free parameters: %s", strings.Join(params, ", "))
	}

	w.b.WriteString(w.d.header)
	for _, p := range params {
		fmt.Fprintf(&w.b, "input float[64] %s;\n", p)
	}
	for _, in := range w.c.Instructions {
		if err := w.define(in.Name); err != nil {
			return err
		}
	}
	w.declareRegisters(format)
	for i, in := range w.c.Instructions {
		if in.Name == "measure" && len(in.Clbits) != 1 {
			return fmt.Errorf("instruction %d: measure needs exactly one classical bit", i)
		}
		w.instruction(in, format)
	}
	return nil
}

// define emits the definition of gate and, first, of every gate it uses.
func (w *qasmWriter) define(gate string) error {
	if w.d.builtin[gate] || w.defined[gate] {
		return nil
	}
	if def, ok := circuit.Lookup(gate); ok && def.Directive {
		return nil
	}
	if text, ok := w.d.prelude[gate]; ok {
		w.b.WriteString(text + "\n")
		w.defined[gate] = true
		return nil
	}
	if w.pending[gate] {
		return fmt.Errorf("gate %q has a recursive definition", gate)
	}

	body, params, ok := w.lib.Definition(gate)
	if !ok {
		return fmt.Errorf("gate %q has no definition", gate)
	}
	w.pending[gate] = true
	for _, in := range body {
		if err := w.define(in.Name); err != nil {
			return err
		}
	}
	delete(w.pending, gate)

	def, _ := circuit.Lookup(gate)
	formals := make([]string, def.NumQubits)
	for i := range formals {
		formals[i] = fmt.Sprintf("q%d", i)
	}
	w.b.WriteString("gate " + gate)
	if len(params) > 0 {
		w.b.WriteString("(" + strings.Join(params, ", ") + ")")
	}
	w.b.WriteString(" " + strings.Join(formals, ", ") + " {")
	for _, in := range body {
		w.b.WriteString(" " + w.call(in, func(q int) string { return formals[q] }) + ";")
	}
	w.b.WriteString(" }\n")
	w.defined[gate] = true
	return nil
}

// physical reports whether qubits are written as hardware qubits.
func (w *qasmWriter) physical(format Format) bool {
	return format == FormatQASM3 && w.c.Layout != nil
}

func (w *qasmWriter) declareRegisters(format Format) {
	for _, r := range w.c.Cregs {
		for i := 0; i < r.Size; i++ {
			w.clbits = append(w.clbits, fmt.Sprintf("%s[%d]", r.Name, i))
		}
	}
	if format == FormatQASM2 {
		fmt.Fprintf(&w.b, "qreg q[%d];\n", w.c.NumQubits)
		for _, r := range w.c.Cregs {
			fmt.Fprintf(&w.b, "creg %s[%d];\n", r.Name, r.Size)
		}
		return
	}
	for _, r := range w.c.Cregs {
		fmt.Fprintf(&w.b, "bit[%d] %s;\n", r.Size, r.Name)
	}
	if !w.physical(format) {
		fmt.Fprintf(&w.b, "qubit[%d] q;\n", w.c.NumQubits)
	}
}

func (w *qasmWriter) qubit(format Format) func(int) string {
	if w.physical(format) {
		return func(q int) string { return fmt.Sprintf("$%d", q) }
	}
	return func(q int) string { return fmt.Sprintf("q[%d]", q) }
}

func (w *qasmWriter) instruction(in circuit.Instruction, format Format) {
	name := w.qubit(format)
	switch in.Name {
	case "measure":
		if format == FormatQASM2 {
			fmt.Fprintf(&w.b, "measure %s -> %s;\n", name(in.Qubits[0]), w.clbits[in.Clbits[0]])
		} else {
			fmt.Fprintf(&w.b, "%s = measure %s;\n", w.clbits[in.Clbits[0]], name(in.Qubits[0]))
		}
	default:
		w.b.WriteString(w.call(in, name) + ";\n")
	}
}

func (w *qasmWriter) call(in circuit.Instruction, name func(int) string) string {
	var b strings.Builder
	b.WriteString(in.Name)
	if len(in.Params) > 0 {
		args := make([]string, len(in.Params))
		for i, p := range in.Params {
			args[i] = p.String()
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	qubits := make([]string, len(in.Qubits))
	for i, q := range in.Qubits {
		qubits[i] = name(q)
	}
	b.WriteString(" " + strings.Join(qubits, w.d.sep))
	return b.String()
}
