// Package calibration measures whether a difficulty tier yields
// consistently reducible circuits.
//
// For a tier, the protocol generates a batch of seeded instances, compiles
// each with the external circom optimizer, and compares the optimized
// non-linear constraint count against the generation target. The relative
// shrinkage is the instance's reducibility; the tier passes when the
// population standard deviation of reducibility across the batch stays
// below ConsistencyThreshold.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/luca-nik/tig-circuit-gen"
	"github.com/luca-nik/tig-circuit-gen/generator"
	"github.com/luca-nik/tig-circuit-gen/internal/stats"
	"github.com/luca-nik/tig-circuit-gen/logger"
)

// ConsistencyThreshold bounds the reducibility spread of a passing tier.
const ConsistencyThreshold = 0.05

// Sample is the outcome of one generate-compile-measure round.
type Sample struct {
	Seed         string
	Optimized    int
	Reducibility float64
	Err          error
}

// Report is the outcome of one calibration run.
type Report struct {
	Difficulty uint32
	Config     circuitgen.Config
	Samples    []Sample
	Failed     int
	Summary    stats.Summary
}

// Consistent reports whether the tier's reducibility spread is within the
// acceptance threshold.
func (r Report) Consistent() bool {
	return r.Summary.Std < ConsistencyThreshold
}

// Run executes the calibration protocol for one difficulty tier.
//
// Sample failures are isolated: an instance that fails to generate,
// compile or parse is recorded on its Sample and excluded from the
// statistics. Run itself fails only when no verdict is possible, on
// invalid options or tier, an unusable compiler, or a batch with zero
// surviving samples.
func Run(ctx context.Context, delta uint32, opts ...Option) (Report, error) {
	rc := defaultRunConfig()
	for _, opt := range opts {
		if err := opt(&rc); err != nil {
			return Report{}, err
		}
	}

	cfg := circuitgen.Scale(delta)
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if err := rc.compiler.Probe(); err != nil {
		return Report{}, err
	}

	log := logger.Logger()

	dir := rc.workDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "circuitgen-calib-")
		if err != nil {
			return Report{}, fmt.Errorf("calibration: %w", err)
		}
		if rc.keep {
			log.Info().Str("dir", dir).Msg("keeping calibration artifacts")
		} else {
			defer os.RemoveAll(dir)
		}
	}

	log.Info().
		Uint32("difficulty", delta).
		Int("samples", rc.samples).
		Int("jobs", rc.jobs).
		Stringer("config", cfg).
		Msg("calibrating difficulty tier")

	samples := make([]Sample, rc.samples)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rc.jobs)
	for i := 0; i < rc.samples; i++ {
		g.Go(func() error {
			samples[i] = rc.measure(gctx, cfg, delta, i, dir)
			return nil
		})
	}
	// measure never returns an error through the group; the batch always
	// runs to completion and failures are read off the samples
	_ = g.Wait()

	report := Report{Difficulty: delta, Config: cfg, Samples: samples}
	etas := make([]float64, 0, rc.samples)
	var firstErr error
	for _, s := range samples {
		if s.Err != nil {
			report.Failed++
			if firstErr == nil {
				firstErr = s.Err
			}
			continue
		}
		etas = append(etas, s.Reducibility)
	}
	if len(etas) == 0 {
		return Report{}, fmt.Errorf("calibration: all %d samples failed: %w", rc.samples, firstErr)
	}
	report.Summary = stats.Summarize(etas)

	log.Info().
		Int("measured", report.Summary.N).
		Int("failed", report.Failed).
		Float64("mean", report.Summary.Mean).
		Float64("sigma", report.Summary.Std).
		Bool("consistent", report.Consistent()).
		Msg("calibration finished")

	return report, nil
}

// measure runs one sample end to end. Failures are recorded on the Sample,
// never returned, so one bad instance cannot cancel its siblings.
func (rc runConfig) measure(ctx context.Context, cfg circuitgen.Config, delta uint32, i int, dir string) Sample {
	seed := fmt.Sprintf("calib_%d_%d", delta, i)
	s := Sample{Seed: seed}

	fail := func(err error) Sample {
		s.Err = fmt.Errorf("sample %d (seed %s): %w", i, seed, err)
		return s
	}

	src, err := generator.Generate(seed, cfg)
	if err != nil {
		return fail(err)
	}

	path := filepath.Join(dir, fmt.Sprintf("calib_%d.circom", i))
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fail(err)
	}
	if !rc.keep {
		defer removeArtifacts(path)
	}

	optimized, err := rc.compiler.Optimize(ctx, path, dir)
	if err != nil {
		return fail(err)
	}

	s.Optimized = optimized
	s.Reducibility = circuitgen.Reducibility(float64(cfg.TargetConstraints), float64(optimized))
	return s
}

// removeArtifacts deletes a sample's circuit together with the compiler
// outputs derived from it.
func removeArtifacts(circuitPath string) {
	base := strings.TrimSuffix(circuitPath, ".circom")
	for _, p := range []string{circuitPath, base + ".r1cs", base + ".sym"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Logger().Warn().Str("path", p).Err(err).Msg("leaving calibration artifact behind")
		}
	}
}
