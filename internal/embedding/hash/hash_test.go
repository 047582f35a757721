package hash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_FixedLength(t *testing.T) {
	e := NewEmbedder()
	for _, text := range []string{"", "x", "how do I run a docker container", string(make([]byte, 100000))} {
		vec, err := e.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Len(t, vec, Dimension)
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	e := NewEmbedder()
	a, err := e.Embed(context.Background(), "git rebase rewrites history")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "git rebase rewrites history")
	require.NoError(t, err)
	assert.Equal(t, a, b, "identical text must yield bit-identical vectors")
}

func TestEmbed_DistinctTextsDiffer(t *testing.T) {
	e := NewEmbedder()
	a, err := e.Embed(context.Background(), "docker")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "git")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEmbed_ValueRangeAndPadding(t *testing.T) {
	e := NewEmbedder()
	vec, err := e.Embed(context.Background(), "some text")
	require.NoError(t, err)

	for i, v := range vec {
		assert.GreaterOrEqual(t, v, 0.0, "component %d", i)
		assert.LessOrEqual(t, v, 1.0, "component %d", i)
	}
	// A SHA-256 digest provides 32 values; the rest is zero padding.
	for i := 32; i < Dimension; i++ {
		assert.Zero(t, vec[i], "component %d should be padding", i)
	}
}

func TestDimensionAccessor(t *testing.T) {
	e := NewEmbedder()
	assert.Equal(t, 384, e.Dimension())
	assert.Equal(t, "hash", e.Name())
}
