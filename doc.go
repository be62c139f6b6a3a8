// Package circuitgen procedurally synthesizes circom circuits used as
// difficulty-tunable challenge instances for a zero-knowledge proving
// pipeline.
//
// The package exposes the two pure components of the tool:
//   - the difficulty scaler, mapping a tier to a generation configuration
//     (see [Scale] and [Config])
//   - the reducibility metric consumed by the calibration protocol
//     (see [Reducibility])
//
// The seeded construction algorithm lives in the generator subpackage;
// statistical calibration against an external optimizing compiler lives in
// the calibration subpackage.
package circuitgen

import (
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc"
)

// Version of the generator. Bump on any change that affects emitted bytes:
// challenge instances are only reproducible within a single version.
var Version = semver.MustParse("0.2.0")

// MinCompilerVersion is the oldest circom release able to compile the
// emitted circuits (the emitted pragma requires the 2.x language).
var MinCompilerVersion = semver.MustParse("2.0.0")

// Field returns the scalar field the emitted circuits are defined over.
// circom targets BN254 by default, and witness inputs are sampled from it.
func Field() ecc.ID {
	return ecc.BN254
}
