package vectorstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"astroinsight/internal/domain"
)

// QdrantConfig configures a QdrantStore.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// QdrantStore keeps chunk vectors in a Qdrant collection using cosine
// distance. Init creates the collection when it is missing.
type QdrantStore struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type qdrantPayload struct {
	DocumentID string `json:"document_id"`
	ChunkID    string `json:"chunk_id"`
	Source     string `json:"source"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
}

// NewQdrantStore creates a store for cfg.Collection on the server at cfg.URL.
func NewQdrantStore(cfg QdrantConfig) *QdrantStore {
	if cfg.URL == "" {
		cfg.URL = "http://127.0.0.1:6333"
	}
	if cfg.Collection == "" {
		cfg.Collection = "astroinsight"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &QdrantStore{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *QdrantStore) collectionURL() string {
	return s.url + "/collections/" + s.collection
}

func (s *QdrantStore) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	body := map[string]any{
		"vectors": map[string]any{"size": dimension, "distance": "Cosine"},
	}
	// an existing collection with the same schema answers 200 as well
	return s.do(http.MethodPut, s.collectionURL(), body, nil)
}

func (s *QdrantStore) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	type point struct {
		ID      uint64        `json:"id"`
		Vector  []float64     `json:"vector"`
		Payload qdrantPayload `json:"payload"`
	}
	points := make([]point, len(chunks))
	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		points[i] = point{
			ID:     pointID(ch),
			Vector: vectors[i],
			Payload: qdrantPayload{
				DocumentID: ch.DocumentID,
				ChunkID:    ch.ChunkID,
				Source:     ch.Source,
				Index:      ch.Index,
				Text:       ch.Text,
			},
		}
	}
	return s.do(http.MethodPut, s.collectionURL()+"/points?wait=true", map[string]any{"points": points}, nil)
}

func (s *QdrantStore) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{"vector": vector, "limit": topK, "with_payload": true}
	var resp struct {
		Result []struct {
			Score   float64       `json:"score"`
			Payload qdrantPayload `json:"payload"`
		} `json:"result"`
	}
	if err := s.do(http.MethodPost, s.collectionURL()+"/points/search", req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		p := r.Payload
		results = append(results, domain.SearchResult{
			Chunk: domain.Chunk{DocumentID: p.DocumentID, ChunkID: p.ChunkID, Source: p.Source, Index: p.Index, Text: p.Text},
			Score: r.Score,
		})
	}
	return results, nil
}

// Clear drops the collection. A collection that does not exist is not an error.
func (s *QdrantStore) Clear() error {
	err := s.do(http.MethodDelete, s.collectionURL(), nil, nil)
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return nil
	}
	return err
}

type statusError struct {
	method, url string
	code        int
	status      string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant %s %s failed: %s", e.method, e.url, e.status)
}

func (s *QdrantStore) do(method, url string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{method: method, url: url, code: resp.StatusCode, status: resp.Status}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// pointID derives a stable numeric id; Qdrant accepts only integers and UUIDs.
func pointID(ch domain.Chunk) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(ch.ChunkID))
	return h.Sum64()
}
