package generator

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestWitnessInputsAreDeterministic(t *testing.T) {
	require.Equal(t, WitnessInputs("block_7"), WitnessInputs("block_7"))
	require.NotEqual(t, WitnessInputs("block_7"), WitnessInputs("block_8"))
}

func TestWitnessInputsAreCanonicalFieldElements(t *testing.T) {
	modulus := fr.Modulus()
	for i, s := range WitnessInputs("canonical") {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok, "input %d is not decimal: %q", i, s)
		require.Negative(t, v.Cmp(modulus), "input %d not reduced: %q", i, s)
		require.GreaterOrEqual(t, v.Sign(), 0)
	}
}

func TestWitnessJSONShape(t *testing.T) {
	b, err := WitnessJSON("shape")
	require.NoError(t, err)

	var decoded struct {
		In []string `json:"in"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded.In, numInputs)
	require.Equal(t, WitnessInputs("shape")[:], decoded.In)
}
