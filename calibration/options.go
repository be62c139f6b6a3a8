package calibration

import (
	"fmt"
	"runtime"
)

// DefaultSamples is the number of instances measured per tier when
// WithSamples is not given.
const DefaultSamples = 20

// Option configures a calibration run.
type Option func(*runConfig) error

type runConfig struct {
	samples  int
	jobs     int
	workDir  string
	keep     bool
	compiler Compiler
}

func defaultRunConfig() runConfig {
	return runConfig{
		samples:  DefaultSamples,
		jobs:     runtime.NumCPU(),
		compiler: Circom{},
	}
}

// WithSamples sets how many instances are generated and measured.
func WithSamples(n int) Option {
	return func(rc *runConfig) error {
		if n < 1 {
			return fmt.Errorf("calibration: sample count must be at least 1, got %d", n)
		}
		rc.samples = n
		return nil
	}
}

// WithJobs caps how many compiler invocations run concurrently. The
// default is one per CPU.
func WithJobs(n int) Option {
	return func(rc *runConfig) error {
		if n < 1 {
			return fmt.Errorf("calibration: job count must be at least 1, got %d", n)
		}
		rc.jobs = n
		return nil
	}
}

// WithWorkDir places per-sample artifacts in dir instead of a fresh
// temporary directory. The directory must already exist; it is not removed
// when the run finishes.
func WithWorkDir(dir string) Option {
	return func(rc *runConfig) error {
		if dir == "" {
			return fmt.Errorf("calibration: work directory must not be empty")
		}
		rc.workDir = dir
		return nil
	}
}

// WithKeepArtifacts leaves generated circuits and compiler outputs on disk
// for inspection.
func WithKeepArtifacts() Option {
	return func(rc *runConfig) error {
		rc.keep = true
		return nil
	}
}

// WithCompiler substitutes the compiler implementation.
func WithCompiler(c Compiler) Option {
	return func(rc *runConfig) error {
		if c == nil {
			return fmt.Errorf("calibration: compiler must not be nil")
		}
		rc.compiler = c
		return nil
	}
}
