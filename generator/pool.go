package generator

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// signal is one pool entry: a circom signal name and the length of the
// multiplication chain it sits on. Primary inputs are at depth 0.
type signal struct {
	name  string
	depth int
}

// pool is the ordered, append-only set of signals available as operands
// for later steps. Selection is uniform over everything appended so far,
// so early signals are naturally reused more often.
type pool struct {
	signals []signal
	picked  *bitset.BitSet
}

func newPool(capacity int) *pool {
	p := &pool{
		signals: make([]signal, 0, capacity),
		picked:  bitset.New(uint(capacity)),
	}
	for i := 0; i < numInputs; i++ {
		p.add(fmt.Sprintf("in[%d]", i), 0)
	}
	return p
}

func (p *pool) add(name string, depth int) {
	p.signals = append(p.signals, signal{name: name, depth: depth})
}

func (p *pool) size() int {
	return len(p.signals)
}

func (p *pool) at(i int) signal {
	return p.signals[i]
}

func (p *pool) last() signal {
	return p.signals[len(p.signals)-1]
}

// pick returns a uniformly chosen signal and marks its slot as consumed.
func (p *pool) pick(r *prng) signal {
	i := r.intn(len(p.signals))
	p.picked.Set(uint(i))
	return p.signals[i]
}

// referenced reports how many distinct signals were picked as operands at
// least once during the run.
func (p *pool) referenced() int {
	return int(p.picked.Count())
}
