package generator

import "strings"

const (
	opMul = "*"
	opAdd = "+"

	// powerTag marks fifth-power chains in cache signatures.
	powerTag = "POW5"
)

// binarySig canonically encodes a binary constraint, e.g. "*|s_3|in[1]".
// Operand order is preserved: "a*b" and "b*a" are distinct entries, so
// commutative duplicates are left for the optimizer to discover.
func binarySig(op, lhs, rhs string) string {
	return op + "|" + lhs + "|" + rhs
}

// powerSig canonically encodes a fifth-power chain, e.g. "POW5|s_7".
func powerSig(base string) string {
	return powerTag + "|" + base
}

// splitSig decomposes a signature back into its parts. For power
// signatures base is returned in lhs and power is true.
func splitSig(sig string) (op, lhs, rhs string, power bool) {
	parts := strings.SplitN(sig, "|", 3)
	if parts[0] == powerTag {
		return "", parts[1], "", true
	}
	return parts[0], parts[1], parts[2], false
}

// exprCache remembers every distinct computation emitted so far, so the
// redundancy branch can re-emit one verbatim. Entries are enumerated
// through an insertion-ordered slice: iterating the map directly would
// make selection depend on Go's randomized map order and break
// reproducibility.
type exprCache struct {
	order []string
	names map[string]string
}

func newExprCache() *exprCache {
	return &exprCache{names: make(map[string]string)}
}

// put records that name carries the value of sig. Re-inserting an existing
// signature keeps its original position and rebinds it to the newest name.
func (c *exprCache) put(sig, name string) {
	if _, ok := c.names[sig]; !ok {
		c.order = append(c.order, sig)
	}
	c.names[sig] = name
}

func (c *exprCache) size() int {
	return len(c.order)
}

// pick returns a uniformly chosen cached signature.
func (c *exprCache) pick(r *prng) string {
	return c.order[r.intn(len(c.order))]
}
