package generator

import (
	"encoding/json"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// witnessDomain prefixes the seed before hashing so the witness stream
// never overlaps the circuit construction stream for the same seed.
const witnessDomain = "witness/"

// WitnessInputs derives deterministic assignments for the circuit's
// primary inputs: field elements of the proving curve's scalar field,
// rendered in canonical decimal form.
func WitnessInputs(seed string) [numInputs]string {
	rng := newPRNG(witnessDomain + seed)
	var inputs [numInputs]string
	var buf [fr.Bytes]byte
	for i := range inputs {
		rng.fill(buf[:])
		var e fr.Element
		e.SetBytes(buf[:])
		inputs[i] = e.String()
	}
	return inputs
}

// WitnessJSON renders the derived inputs as a circom input file, ready for
// witness computation against the generated circuit.
func WitnessJSON(seed string) ([]byte, error) {
	inputs := WitnessInputs(seed)
	return json.MarshalIndent(struct {
		In []string `json:"in"`
	}{In: inputs[:]}, "", "  ")
}
