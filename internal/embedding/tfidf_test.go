package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/textproc"
)

func TestTFIDFEmbedder(t *testing.T) {
	e := NewTFIDFEmbedder(textproc.DefaultStopwords())
	_, err := e.Embed("anything")
	require.Error(t, err, "embedding before Prepare must fail")

	require.NoError(t, e.Prepare([]string{
		"Radiation affects immune cells.",
		"Gravity changes bone density.",
	}))
	assert.Equal(t, 8, e.Dimension())
	assert.Equal(t, "tfidf", e.Name())

	vec, err := e.Embed("immune cells and radiation")
	require.NoError(t, err)
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)

	zero, err := e.Embed("the of and")
	require.NoError(t, err)
	for _, v := range zero {
		assert.Zero(t, v)
	}
}

func TestTFIDFPrepareErrors(t *testing.T) {
	e := NewTFIDFEmbedder(textproc.DefaultStopwords())
	assert.Error(t, e.Prepare(nil))
	assert.Error(t, e.Prepare([]string{"the of and", "1 2 3"}))
}
