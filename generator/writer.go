package generator

import (
	"fmt"
	"strings"
)

const (
	pragmaLine   = "pragma circom 2.0.0;"
	templateName = "Challenge"

	// estBytesPerStep sizes the output buffer up front. Power-map steps
	// emit six lines, plain ones two; this overshoots slightly.
	estBytesPerStep = 96
)

// circomWriter assembles the circuit source. The layout is a hard
// contract: for a fixed (seed, config) the emitted bytes must be identical
// across runs, processes and machines, because verifiers regenerate the
// circuit and compare digests.
type circomWriter struct {
	b strings.Builder
}

func newCircomWriter(steps int) *circomWriter {
	w := &circomWriter{}
	w.b.Grow(128 + steps*estBytesPerStep)
	return w
}

func (w *circomWriter) header(inputs int) {
	fmt.Fprintf(&w.b, "%s\n\n", pragmaLine)
	fmt.Fprintf(&w.b, "template %s() {\n", templateName)
	fmt.Fprintf(&w.b, "    signal input in[%d];\n", inputs)
	w.b.WriteString("    signal output out;\n")
}

func (w *circomWriter) declare(name string) {
	fmt.Fprintf(&w.b, "    signal %s;\n", name)
}

func (w *circomWriter) assign(name, lhs, op, rhs string) {
	fmt.Fprintf(&w.b, "    %s <== %s %s %s;\n", name, lhs, op, rhs)
}

// powerChain emits base^5 into result as three quadratic constraints,
// squaring twice and multiplying by base once.
func (w *circomWriter) powerChain(result, base string) {
	sq := result + "_sq"
	quad := result + "_quad"
	w.declare(sq)
	w.assign(sq, base, opMul, base)
	w.declare(quad)
	w.assign(quad, sq, opMul, sq)
	w.assign(result, quad, opMul, base)
}

func (w *circomWriter) footer(last string) {
	fmt.Fprintf(&w.b, "    out <== %s;\n", last)
	w.b.WriteString("}\n")
	fmt.Fprintf(&w.b, "component main = %s();\n", templateName)
}

func (w *circomWriter) String() string {
	return w.b.String()
}
