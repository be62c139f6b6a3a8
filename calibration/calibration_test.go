package calibration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luca-nik/tig-circuit-gen"
)

// stubCompiler replaces circom in tests. Optimize honors context
// cancellation like the real binary would.
type stubCompiler struct {
	mu        sync.Mutex
	calls     int
	probeErr  error
	optimized func(path string) (int, error)
}

func (s *stubCompiler) Probe() error { return s.probeErr }

func (s *stubCompiler) Optimize(ctx context.Context, path, _ string) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.optimized == nil {
		return 550, nil
	}
	return s.optimized(path)
}

func (s *stubCompiler) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunComputesReducibilityStatistics(t *testing.T) {
	stub := &stubCompiler{}
	rep, err := Run(context.Background(), 1,
		WithSamples(4),
		WithJobs(2),
		WithCompiler(stub),
		WithWorkDir(t.TempDir()),
	)
	require.NoError(t, err)

	// every sample optimized 1000 -> 550
	require.Equal(t, uint32(1), rep.Difficulty)
	require.Equal(t, circuitgen.Scale(1), rep.Config)
	require.Zero(t, rep.Failed)
	require.Equal(t, 4, rep.Summary.N)
	require.InDelta(t, 0.45, rep.Summary.Mean, 1e-12)
	require.InDelta(t, 0.0, rep.Summary.Std, 1e-12)
	require.True(t, rep.Consistent())
	require.Equal(t, 4, stub.callCount())

	for i, s := range rep.Samples {
		require.NoError(t, s.Err)
		require.Equal(t, fmt.Sprintf("calib_1_%d", i), s.Seed)
		require.Equal(t, 550, s.Optimized)
		require.InDelta(t, 0.45, s.Reducibility, 1e-12)
	}
}

func TestRunIsolatesSampleFailures(t *testing.T) {
	stub := &stubCompiler{optimized: func(path string) (int, error) {
		if strings.HasSuffix(path, "calib_2.circom") {
			return 0, errors.New("killed by oom")
		}
		return 700, nil
	}}
	rep, err := Run(context.Background(), 1,
		WithSamples(5),
		WithCompiler(stub),
		WithWorkDir(t.TempDir()),
	)
	require.NoError(t, err)

	require.Equal(t, 1, rep.Failed)
	require.Equal(t, 4, rep.Summary.N)
	require.InDelta(t, 0.3, rep.Summary.Mean, 1e-12)
	require.True(t, rep.Consistent())

	require.Error(t, rep.Samples[2].Err)
	require.Contains(t, rep.Samples[2].Err.Error(), "calib_1_2")
	for _, i := range []int{0, 1, 3, 4} {
		require.NoError(t, rep.Samples[i].Err)
	}
}

func TestRunFlagsInconsistentTier(t *testing.T) {
	// one sample inflates (eta -0.2), one shrinks (eta 0.2): sigma 0.2
	stub := &stubCompiler{optimized: func(path string) (int, error) {
		if strings.HasSuffix(path, "calib_0.circom") {
			return 1200, nil
		}
		return 800, nil
	}}
	rep, err := Run(context.Background(), 1,
		WithSamples(2),
		WithCompiler(stub),
		WithWorkDir(t.TempDir()),
	)
	require.NoError(t, err)

	require.Zero(t, rep.Failed)
	require.Negative(t, rep.Samples[0].Reducibility)
	require.InDelta(t, 0.0, rep.Summary.Mean, 1e-12)
	require.InDelta(t, 0.2, rep.Summary.Std, 1e-12)
	require.False(t, rep.Consistent())
}

func TestRunFailsWithoutCompiler(t *testing.T) {
	stub := &stubCompiler{probeErr: ErrCompilerNotFound}
	_, err := Run(context.Background(), 1,
		WithSamples(2),
		WithCompiler(stub),
		WithWorkDir(t.TempDir()),
	)
	require.ErrorIs(t, err, ErrCompilerNotFound)
	require.Zero(t, stub.callCount(), "no instance may be generated without a compiler")
}

func TestRunFailsWhenEverySampleFails(t *testing.T) {
	stub := &stubCompiler{optimized: func(string) (int, error) {
		return 0, ErrUnparsableReport
	}}
	_, err := Run(context.Background(), 1,
		WithSamples(3),
		WithCompiler(stub),
		WithWorkDir(t.TempDir()),
	)
	require.ErrorIs(t, err, ErrUnparsableReport)
	require.Contains(t, err.Error(), "all 3 samples failed")
}

func TestRunRemovesArtifacts(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), 1,
		WithSamples(3),
		WithCompiler(&stubCompiler{}),
		WithWorkDir(dir),
	)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRunKeepsArtifactsWhenAsked(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(context.Background(), 2,
		WithSamples(2),
		WithCompiler(&stubCompiler{}),
		WithWorkDir(dir),
		WithKeepArtifacts(),
	)
	require.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(dir, "calib_0.circom"))
	require.NoError(t, err)
	require.Contains(t, string(src), "pragma circom 2.0.0;")
	require.Contains(t, string(src), "component main = Challenge();")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := Run(context.Background(), 1, WithSamples(0))
	require.Error(t, err)

	_, err = Run(context.Background(), 1, WithJobs(-1))
	require.Error(t, err)

	_, err = Run(context.Background(), 1, WithCompiler(nil))
	require.Error(t, err)

	_, err = Run(context.Background(), 0, WithCompiler(&stubCompiler{}))
	require.ErrorIs(t, err, circuitgen.ErrNoConstraints)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, 1,
		WithSamples(2),
		WithCompiler(&stubCompiler{}),
		WithWorkDir(t.TempDir()),
	)
	require.ErrorIs(t, err, context.Canceled)
}
