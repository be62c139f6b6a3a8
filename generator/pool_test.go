package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolStartsWithPrimaryInputs(t *testing.T) {
	p := newPool(16)
	require.Equal(t, numInputs, p.size())
	for i := 0; i < numInputs; i++ {
		require.Equal(t, signal{name: fmt.Sprintf("in[%d]", i), depth: 0}, p.at(i))
	}
	require.Zero(t, p.referenced())
}

func TestPoolTracksReferencedSignals(t *testing.T) {
	p := newPool(16)
	p.add("s_0", 1)
	require.Equal(t, signal{name: "s_0", depth: 1}, p.last())

	r := newPRNG("pool-refs")
	for i := 0; i < 200; i++ {
		p.pick(r)
	}
	require.Equal(t, p.size(), p.referenced())
}
