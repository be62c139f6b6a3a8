package calibration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/luca-nik/tig-circuit-gen"
	"github.com/luca-nik/tig-circuit-gen/logger"
)

var (
	// ErrCompilerNotFound reports that the external compiler binary is not
	// installed or not on PATH.
	ErrCompilerNotFound = errors.New("calibration: circom compiler not found")

	// ErrUnparsableReport reports compiler output with no readable
	// non-linear constraint count. The sample fails; the count is never
	// estimated.
	ErrUnparsableReport = errors.New("calibration: compiler report carries no non-linear constraint count")
)

// Compiler abstracts the external optimizing compiler the protocol
// measures against.
type Compiler interface {
	// Probe reports whether the compiler is available and usable. It runs
	// once per calibration run, before any instance is generated.
	Probe() error

	// Optimize compiles the circuit at path with optimizations enabled,
	// placing artifacts in outDir, and returns the optimized non-linear
	// constraint count from the compiler's report.
	Optimize(ctx context.Context, path, outDir string) (int, error)
}

// Circom drives the circom binary.
type Circom struct {
	// Bin is the executable name or path. Empty means "circom".
	Bin string
	// OptLevel is the optimization flag to pass. Empty means "--O1", full
	// constraint simplification.
	OptLevel string
}

var constraintPattern = regexp.MustCompile(`non-linear constraints:\s*(\d+)`)

func (c Circom) bin() string {
	if c.Bin == "" {
		return "circom"
	}
	return c.Bin
}

func (c Circom) optLevel() string {
	if c.OptLevel == "" {
		return "--O1"
	}
	return c.OptLevel
}

// Probe checks that the binary resolves and, when its version can be read,
// that it is recent enough to accept the emitted pragma. Version probing
// is best effort; a mute or unreadable --version is left for compilation
// to judge.
func (c Circom) Probe() error {
	if _, err := exec.LookPath(c.bin()); err != nil {
		return fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}

	out, err := exec.Command(c.bin(), "--version").Output()
	if err != nil {
		logger.Logger().Debug().Err(err).Msg("circom version probe failed")
		return nil
	}
	v, err := parseCompilerVersion(string(out))
	if err != nil {
		logger.Logger().Debug().Err(err).Msg("unrecognized circom version output")
		return nil
	}
	if v.LT(circuitgen.MinCompilerVersion) {
		return fmt.Errorf("calibration: circom %s is older than the minimum supported %s", v, circuitgen.MinCompilerVersion)
	}
	return nil
}

// Optimize runs circom on one circuit and parses the constraint report
// from its standard output.
func (c Circom) Optimize(ctx context.Context, path, outDir string) (int, error) {
	cmd := exec.CommandContext(ctx, c.bin(), path, "--r1cs", c.optLevel(), "-o", outDir)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return 0, fmt.Errorf("calibration: compiling %s: %s", path, msg)
	}

	n, err := parseConstraintCount(stdout.String())
	if err != nil {
		return 0, fmt.Errorf("%w (circuit %s)", err, path)
	}
	return n, nil
}

func parseConstraintCount(report string) (int, error) {
	m := constraintPattern.FindStringSubmatch(report)
	if m == nil {
		return 0, ErrUnparsableReport
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnparsableReport, err)
	}
	return n, nil
}

// parseCompilerVersion extracts a semantic version from --version output
// such as "circom compiler 2.1.9".
func parseCompilerVersion(out string) (semver.Version, error) {
	fields := strings.Fields(out)
	for i := len(fields) - 1; i >= 0; i-- {
		if v, err := semver.ParseTolerant(fields[i]); err == nil {
			return v, nil
		}
	}
	return semver.Version{}, fmt.Errorf("no version in %q", strings.TrimSpace(out))
}
