package circuitgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReducibility(t *testing.T) {
	assert := require.New(t)

	// optimizer shrank the circuit by 20%
	assert.InDelta(0.2, Reducibility(100, 80), 1e-12)

	// optimizer added overhead; the raw negative value must come through
	assert.InDelta(-0.2, Reducibility(100, 120), 1e-12)

	// no change
	assert.Zero(Reducibility(100, 100))
}
