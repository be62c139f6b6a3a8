package circuitgen

import (
	"errors"
	"fmt"
)

// Scaling constants; Scale is a pure function of the difficulty tier built
// from these. They are exported so that calibration reports can echo the
// policy they were measured under.
const (
	// ConstraintsPerTier is the number of constraint-producing steps added
	// per difficulty tier.
	ConstraintsPerTier = 1000

	// RedundancyBase and RedundancyStep drive the probability of reusing a
	// cached expression. Redundant logic is what an optimizing compiler can
	// eliminate, so the ratio decreases with difficulty, floored at
	// RedundancyFloor.
	RedundancyBase  = 0.5
	RedundancyStep  = 0.05
	RedundancyFloor = 0.05

	// PowerMapBase and PowerMapStep drive the probability of emitting a
	// degree-5 S-box instead of plain arithmetic. Non-linear gates are what
	// the optimizer cannot fold away, so the ratio increases with
	// difficulty, capped at PowerMapCap.
	PowerMapBase = 0.05
	PowerMapStep = 0.05
	PowerMapCap  = 0.30

	// DepthBase and DepthPerTier bound the dependency-chain depth before an
	// operand pair is reset to primary inputs.
	DepthBase    = 10
	DepthPerTier = 10
)

// Config is the generation configuration vector. It is immutable once
// derived; all generator behavior is a deterministic function of
// (seed, Config).
type Config struct {
	// TargetConstraints is the number of constraint-producing steps to run.
	TargetConstraints int

	// RedundancyRatio is the probability, per step, of re-emitting a
	// previously cached expression instead of synthesizing new logic.
	RedundancyRatio float64

	// PowerMapRatio is the probability, per step and evaluated after the
	// redundancy check, of synthesizing a degree-5 power map instead of a
	// single arithmetic constraint.
	PowerMapRatio float64

	// MaxDepth is the ceiling on dependency-chain depth; a step that would
	// exceed it has its operands reset to primary inputs.
	MaxDepth int
}

// Scale maps a difficulty tier to its generation configuration. It is
// total and deterministic: no randomness, no I/O, no error conditions.
// delta = 0 yields a degenerate configuration with zero constraints, which
// the generator rejects.
func Scale(delta uint32) Config {
	d := float64(delta)

	redundancy := RedundancyBase - d*RedundancyStep
	if redundancy < RedundancyFloor {
		redundancy = RedundancyFloor
	}

	powerMap := PowerMapBase + d*PowerMapStep
	if powerMap > PowerMapCap {
		powerMap = PowerMapCap
	}

	return Config{
		TargetConstraints: int(delta) * ConstraintsPerTier,
		RedundancyRatio:   redundancy,
		PowerMapRatio:     powerMap,
		MaxDepth:          DepthBase + int(delta)*DepthPerTier,
	}
}

// ErrNoConstraints is returned when a configuration asks for zero
// constraint-producing steps; the emitted footer references the last
// generated signal, so at least one step is required.
var ErrNoConstraints = errors.New("configuration: target constraint count must be at least 1")

// Validate rejects malformed configurations before any generation begins.
// Every Config produced by Scale with delta ≥ 1 passes.
func (cfg Config) Validate() error {
	if cfg.TargetConstraints < 1 {
		return ErrNoConstraints
	}
	if cfg.RedundancyRatio < 0 || cfg.RedundancyRatio > 1 {
		return fmt.Errorf("configuration: redundancy ratio %v outside [0,1]", cfg.RedundancyRatio)
	}
	if cfg.PowerMapRatio < 0 || cfg.PowerMapRatio > 1 {
		return fmt.Errorf("configuration: power map ratio %v outside [0,1]", cfg.PowerMapRatio)
	}
	if cfg.RedundancyRatio+cfg.PowerMapRatio > 1 {
		return fmt.Errorf("configuration: branch probabilities sum to %v > 1", cfg.RedundancyRatio+cfg.PowerMapRatio)
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("configuration: max depth %d must be at least 1", cfg.MaxDepth)
	}
	return nil
}

// String implements fmt.Stringer; calibration logs echo configurations in
// this form.
func (cfg Config) String() string {
	return fmt.Sprintf("constraints: %d, redundancy: %.2f, powerMap: %.2f, maxDepth: %d",
		cfg.TargetConstraints, cfg.RedundancyRatio, cfg.PowerMapRatio, cfg.MaxDepth)
}
