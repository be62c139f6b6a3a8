package circuitgen

// Reducibility is the fraction of a circuit's constraints an optimizing
// compiler managed to eliminate: 1 - optimized/baseline.
//
// The raw value is reported as-is, never clamped. A negative result means
// the optimizer inflated the constraint count, which real toolchains do on
// some inputs.
func Reducibility(baseline, optimized float64) float64 {
	return 1.0 - optimized/baseline
}
