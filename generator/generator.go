// Package generator synthesizes circom circuit source from a seed string
// and a difficulty configuration.
//
// A generated circuit is a flat chain of rank-1 constraints over five
// primary inputs. Each step draws from a seeded ChaCha20 stream and emits
// either a verbatim copy of an earlier computation, an unrolled fifth
// power, or a fresh binary constraint, in proportions set by the
// configuration. The mix controls how much of the circuit an optimizing
// compiler can collapse, which is what difficulty calibration measures.
package generator

import (
	"fmt"

	"github.com/luca-nik/tig-circuit-gen"
	"github.com/luca-nik/tig-circuit-gen/logger"
)

// numInputs is the number of primary input signals every circuit declares.
const numInputs = 5

// runStats summarizes one generation run for logging.
type runStats struct {
	redundant   int // steps that re-emitted a cached computation
	powerMaps   int // steps that emitted a fresh fifth-power chain
	arithmetic  int // steps that emitted a fresh binary constraint
	depthResets int // arithmetic steps rewired to primary inputs
	maxDepth    int // deepest chain recorded in the pool
}

// run holds the working state of one generation pass.
type run struct {
	cfg   circuitgen.Config
	rng   *prng
	w     *circomWriter
	pool  *pool
	cache *exprCache
	stats runStats
	last  string
}

func newRun(seed string, cfg circuitgen.Config) *run {
	s := &run{
		cfg:   cfg,
		rng:   newPRNG(seed),
		w:     newCircomWriter(cfg.TargetConstraints),
		pool:  newPool(numInputs + cfg.TargetConstraints),
		cache: newExprCache(),
	}
	s.w.header(numInputs)
	return s
}

// step emits constraint-producing step i. Exactly one branch is taken per
// step; the branch draw always happens first, so a given keystream prefix
// pins the whole emission sequence.
func (s *run) step(i int) {
	name := fmt.Sprintf("s_%d", i)
	s.w.declare(name)

	branch := s.rng.float64()
	switch {
	case branch < s.cfg.RedundancyRatio && s.cache.size() > 0:
		s.redundant(name)
	case branch < s.cfg.RedundancyRatio+s.cfg.PowerMapRatio:
		s.powerMap(name)
	default:
		s.fresh(name)
	}

	if d := s.pool.last().depth; d > s.stats.maxDepth {
		s.stats.maxDepth = d
	}
	s.last = name
}

// redundant re-emits a cached computation under a new name. The new signal
// enters the pool at depth 0: it recomputes existing logic, so it extends
// no chain, but an optimizer must prove that to remove it.
func (s *run) redundant(name string) {
	op, lhs, rhs, power := splitSig(s.cache.pick(s.rng))
	if power {
		s.w.powerChain(name, lhs)
	} else {
		s.w.assign(name, lhs, op, rhs)
	}
	s.pool.add(name, 0)
	s.stats.redundant++
}

// powerMap raises a pooled signal to the fifth power. The chain costs
// three constraints, so the result sits three levels deeper than its base.
func (s *run) powerMap(name string) {
	base := s.pool.pick(s.rng)
	s.w.powerChain(name, base.name)
	s.cache.put(powerSig(base.name), name)
	s.pool.add(name, base.depth+3)
	s.stats.powerMaps++
}

// fresh combines two pooled signals with * or +. A result that would
// exceed the depth bound is rewired to the first two primary inputs,
// restarting its chain.
func (s *run) fresh(name string) {
	op := opAdd
	if s.rng.coin() {
		op = opMul
	}
	a := s.pool.pick(s.rng)
	b := s.pool.pick(s.rng)

	lhs, rhs := a.name, b.name
	depth := max(a.depth, b.depth) + 1
	if depth > s.cfg.MaxDepth {
		lhs, rhs = s.pool.at(0).name, s.pool.at(1).name
		depth = 1
		s.stats.depthResets++
	}

	s.w.assign(name, lhs, op, rhs)
	s.cache.put(binarySig(op, lhs, rhs), name)
	s.pool.add(name, depth)
	s.stats.arithmetic++
}

// finish closes the template, wiring the output to the last signal.
func (s *run) finish() string {
	s.w.footer(s.last)
	return s.w.String()
}

// Generate synthesizes the circom source for one challenge instance.
// Output is byte-identical for a fixed (seed, cfg) and diverges for
// distinct seeds. The configuration is validated before any emission.
func Generate(seed string, cfg circuitgen.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	s := newRun(seed, cfg)
	for i := 0; i < cfg.TargetConstraints; i++ {
		s.step(i)
	}
	src := s.finish()

	logger.Logger().Debug().
		Int("constraints", cfg.TargetConstraints).
		Int("redundant", s.stats.redundant).
		Int("powerMaps", s.stats.powerMaps).
		Int("arithmetic", s.stats.arithmetic).
		Int("depthResets", s.stats.depthResets).
		Int("maxDepth", s.stats.maxDepth).
		Int("signals", s.pool.size()).
		Int("referenced", s.pool.referenced()).
		Msg("generated circuit")

	return src, nil
}
