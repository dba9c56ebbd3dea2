package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/domain"
)

func TestMemoryStoreSearch(t *testing.T) {
	s := NewMemoryStore()
	require.Error(t, s.Init(0))
	require.NoError(t, s.Init(2))

	chunks := []domain.Chunk{{ChunkID: "a"}, {ChunkID: "b"}, {ChunkID: "c"}}
	vectors := [][]float64{{1, 0}, {0, 1}, {0.6, 0.8}}
	require.NoError(t, s.Upsert(chunks, vectors))

	res, err := s.Search([]float64{0, 1}, 2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "b", res[0].Chunk.ChunkID)
	assert.Equal(t, "c", res[1].Chunk.ChunkID)

	all, err := s.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreUpsertValidation(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Init(2))
	assert.Error(t, s.Upsert([]domain.Chunk{{}}, nil))
	assert.Error(t, s.Upsert([]domain.Chunk{{}}, [][]float64{{1, 2, 3}}))

	require.NoError(t, s.Upsert([]domain.Chunk{{}}, [][]float64{{1, 0}}))
	require.NoError(t, s.Clear())
	res, err := s.Search([]float64{1, 0}, 1)
	require.NoError(t, err)
	assert.Empty(t, res)
}
