package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/domain"
)

func TestSentenceChunkerWindows(t *testing.T) {
	c := NewSentenceChunker(2, 1)
	doc := domain.Document{ID: "d1", Path: "/tmp/notes/bion.txt", Content: "One. Two. Three. Four."}

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "One. Two.", chunks[0].Text)
	assert.Equal(t, "Two. Three.", chunks[1].Text)
	assert.Equal(t, "Three. Four.", chunks[2].Text)
	assert.Equal(t, "d1:2", chunks[2].ChunkID)
	assert.Equal(t, "bion.txt", chunks[0].Source)
}

func TestSentenceChunkerEmpty(t *testing.T) {
	chunks, err := NewSentenceChunker(3, 0).Chunk(domain.Document{ID: "x", Content: "  \n "})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSentenceChunkerClampsOverlap(t *testing.T) {
	c := NewSentenceChunker(2, 5)
	chunks, err := c.Chunk(domain.Document{ID: "d", Content: "A one. B two. C three."})
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}
