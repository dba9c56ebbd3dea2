package vectorstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/domain"
)

type fakeQdrant struct {
	mu       sync.Mutex
	requests []string
	points   []map[string]any
}

func (f *fakeQdrant) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	switch {
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPut && r.URL.Path == "/collections/test/points":
		var body struct {
			Points []map[string]any `json:"points"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.points = body.Points
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	case r.Method == http.MethodPost:
		_, _ = w.Write([]byte(`{"result":[{"score":0.9,"payload":{"document_id":"d","chunk_id":"d:0","source":"bone.txt","index":0,"text":"Bone loss."}}]}`))
	default:
		_, _ = w.Write([]byte(`{"result":true}`))
	}
}

func TestQdrantStore(t *testing.T) {
	fake := &fakeQdrant{}
	server := httptest.NewServer(fake)
	defer server.Close()

	s := NewQdrantStore(QdrantConfig{URL: server.URL + "/", Collection: "test"})
	require.NoError(t, s.Clear())
	require.NoError(t, s.Init(2))

	chunks := []domain.Chunk{{DocumentID: "d", ChunkID: "d:0", Source: "bone.txt", Text: "Bone loss."}}
	require.NoError(t, s.Upsert(chunks, [][]float64{{1, 0}}))
	require.Len(t, fake.points, 1)
	payload := fake.points[0]["payload"].(map[string]any)
	assert.Equal(t, "bone.txt", payload["source"])
	assert.IsType(t, float64(0), fake.points[0]["id"])

	res, err := s.Search([]float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Bone loss.", res[0].Chunk.Text)
	assert.Equal(t, "bone.txt", res[0].Chunk.Source)
	assert.InDelta(t, 0.9, res[0].Score, 1e-9)

	assert.Equal(t, []string{
		"DELETE /collections/test",
		"PUT /collections/test",
		"PUT /collections/test/points",
		"POST /collections/test/points/search",
	}, fake.requests)
}

func TestQdrantStoreErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := NewQdrantStore(QdrantConfig{URL: server.URL, Collection: "test"})
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(2))
	assert.Error(t, s.Clear())
	assert.Error(t, s.Upsert([]domain.Chunk{{}}, nil))
	_, err := s.Search([]float64{1}, 1)
	assert.Error(t, err)
}
