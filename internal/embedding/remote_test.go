package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(t *testing.T) {
	t.Helper()
	orig := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = orig })
}

func TestRemoteEmbedderOpenAIShape(t *testing.T) {
	t.Setenv("TEST_EMBED_KEY", "secret")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nomic", body["model"])
		assert.Equal(t, "bone loss", body["input"])
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	e, err := NewRemoteEmbedder(RemoteConfig{BaseURL: server.URL + "/v1/", APIKeyEnv: "TEST_EMBED_KEY", Model: "nomic"})
	require.NoError(t, err)
	assert.Equal(t, 0, e.Dimension())

	vec, err := e.Embed("bone loss")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 3, e.Dimension())
	assert.Equal(t, "remote:nomic", e.Name())
}

func TestRemoteEmbedderOllamaShapeWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"embedding":[1,0]}`))
	}))
	defer server.Close()

	e, err := NewRemoteEmbedder(RemoteConfig{BaseURL: server.URL})
	require.NoError(t, err)
	vec, err := e.Embed("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, vec)
}

func TestRemoteEmbedderMissingKey(t *testing.T) {
	_, err := NewRemoteEmbedder(RemoteConfig{APIKeyEnv: "ASTROINSIGHT_TEST_UNSET_KEY"})
	assert.Error(t, err)
}

func TestRemoteEmbedderRetries(t *testing.T) {
	noSleep(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"embedding":[0.5]}`))
	}))
	defer server.Close()

	e, err := NewRemoteEmbedder(RemoteConfig{BaseURL: server.URL, MaxRetries: 3})
	require.NoError(t, err)
	_, err = e.Embed("x")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRemoteEmbedderDoesNotRetryBadRequests(t *testing.T) {
	noSleep(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	e, err := NewRemoteEmbedder(RemoteConfig{BaseURL: server.URL, MaxRetries: 3})
	require.NoError(t, err)
	_, err = e.Embed("x")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRemoteEmbedderEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	e, err := NewRemoteEmbedder(RemoteConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = e.Embed("x")
	assert.ErrorIs(t, err, errNoEmbedding)
}

func TestRetryDelayCapped(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, retryDelay(0))
	assert.Equal(t, 800*time.Millisecond, retryDelay(2))
	assert.Equal(t, 5*time.Second, retryDelay(10))
	assert.Equal(t, 5*time.Second, retryDelay(100))
}
