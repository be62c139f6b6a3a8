package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKeepsInsertionOrder(t *testing.T) {
	c := newExprCache()
	c.put(binarySig(opMul, "in[0]", "in[1]"), "s_0")
	c.put(powerSig("s_0"), "s_1")
	c.put(binarySig(opAdd, "s_0", "s_1"), "s_2")

	// rebinding an existing signature must not move it
	c.put(binarySig(opMul, "in[0]", "in[1]"), "s_3")

	require.Equal(t, []string{"*|in[0]|in[1]", "POW5|s_0", "+|s_0|s_1"}, c.order)
	require.Equal(t, "s_3", c.names["*|in[0]|in[1]"])
	require.Equal(t, 3, c.size())
}

func TestCachePickIsReproducible(t *testing.T) {
	build := func() *exprCache {
		c := newExprCache()
		for _, name := range []string{"s_0", "s_1", "s_2", "s_3", "s_4"} {
			c.put(powerSig(name), name)
		}
		return c
	}

	ra, rb := newPRNG("cache-pick"), newPRNG("cache-pick")
	ca, cb := build(), build()
	for i := 0; i < 50; i++ {
		require.Equal(t, ca.pick(ra), cb.pick(rb))
	}
}

func TestSplitSig(t *testing.T) {
	op, lhs, rhs, power := splitSig(binarySig(opAdd, "s_7", "in[2]"))
	require.False(t, power)
	require.Equal(t, "+", op)
	require.Equal(t, "s_7", lhs)
	require.Equal(t, "in[2]", rhs)

	_, base, _, power := splitSig(powerSig("s_12"))
	require.True(t, power)
	require.Equal(t, "s_12", base)
}
