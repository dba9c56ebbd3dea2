package answer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"astroinsight/internal/domain"
	"astroinsight/internal/textproc"
)

// LocalSource answers questions from a corpus of local .txt files by
// retrieving the chunks most similar to the question.
type LocalSource struct {
	chunker  domain.Chunker
	embedder domain.Embedder
	store    domain.VectorStore
	topK     int
	chunks   []domain.Chunk
	logger   *slog.Logger
}

// NewLocalSource wires a local source from its retrieval components.
func NewLocalSource(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, topK int) *LocalSource {
	if topK <= 0 {
		topK = 3
	}
	return &LocalSource{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		topK:     topK,
		logger:   slog.Default().With("component", "local-source"),
	}
}

// Name returns the identifier of this source.
func (s *LocalSource) Name() string { return "local" }

// Load reads every .txt file matched by paths (plain paths or globs), chunks
// and embeds them, and replaces the indexed corpus. It returns the number of
// documents loaded.
func (s *LocalSource) Load(paths []string) (int, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			if !strings.HasSuffix(strings.ToLower(m), ".txt") {
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return 0, fmt.Errorf("read %s: %w", m, err)
			}
			documents = append(documents, domain.Document{ID: hashString(m), Path: m, Content: string(data)})
		}
	}
	if len(documents) == 0 {
		return 0, errors.New("no .txt documents found")
	}
	var allChunks []domain.Chunk
	var allTexts []string
	for _, d := range documents {
		chunks, err := s.chunker.Chunk(d)
		if err != nil {
			return 0, fmt.Errorf("chunk %s: %w", d.Path, err)
		}
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			allTexts = append(allTexts, ch.Text)
		}
	}
	if len(allChunks) == 0 {
		return 0, errors.New("documents contain no sentences")
	}
	if err := s.embedder.Prepare(allTexts); err != nil {
		return 0, err
	}
	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		vec, err := s.embedder.Embed(allChunks[i].Text)
		if err != nil {
			return 0, fmt.Errorf("embed %s: %w", allChunks[i].ChunkID, err)
		}
		vectors[i] = vec
	}
	// remote embedders only learn their dimension from the first vector
	if err := s.store.Clear(); err != nil {
		return 0, err
	}
	if err := s.store.Init(len(vectors[0])); err != nil {
		return 0, err
	}
	if err := s.store.Upsert(allChunks, vectors); err != nil {
		return 0, err
	}
	// Keep chunks for fallback ranking
	s.chunks = allChunks
	s.logger.Info("local corpus loaded", "documents", len(documents), "chunks", len(allChunks))
	return len(documents), nil
}

// Ask joins the sentences of the best matching chunks into an answer and
// cites their source files.
func (s *LocalSource) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.chunks) == 0 {
		return nil, errors.New("local corpus is empty")
	}
	results, err := s.query(question)
	if err != nil {
		return nil, err
	}
	var sentences []string
	var citations []domain.Citation
	seen := make(map[string]struct{})
	for _, r := range results {
		if r.Score <= 1e-9 {
			continue
		}
		for _, sent := range textproc.SplitSentences(r.Chunk.Text) {
			if _, ok := seen[sent]; ok {
				continue
			}
			seen[sent] = struct{}{}
			sentences = append(sentences, sent)
		}
		citations = append(citations, domain.Citation{Title: r.Chunk.Source})
	}
	if len(sentences) == 0 {
		return nil, ErrNoAnswer
	}
	return &domain.Answer{
		Question:  question,
		Title:     "Local corpus",
		Text:      strings.Join(sentences, " "),
		Citations: dedupeCitations(citations),
		Source:    s.Name(),
	}, nil
}

func (s *LocalSource) query(question string) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(question)
	if err != nil {
		return nil, err
	}
	if isZero(vec) {
		return s.lexicalSearch(question), nil
	}
	res, err := s.store.Search(vec, s.topK)
	if err != nil {
		return nil, err
	}
	for _, r := range res {
		if r.Score > 1e-9 {
			return res, nil
		}
	}
	return s.lexicalSearch(question), nil
}

func (s *LocalSource) lexicalSearch(question string) []domain.SearchResult {
	qset := tokenSet(question)
	results := make([]domain.SearchResult, len(s.chunks))
	for i, ch := range s.chunks {
		results[i] = domain.SearchResult{Chunk: ch, Score: ochiai(qset, tokenSet(ch.Text))}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > s.topK {
		results = results[:s.topK]
	}
	return results
}

func tokenSet(text string) map[string]struct{} {
	m := make(map[string]struct{})
	for tok := range textproc.Tokens(text) {
		m[tok] = struct{}{}
	}
	return m
}

// ochiai computes |A∩B| / sqrt(|A||B|).
func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range b {
		if _, ok := a[t]; ok {
			inter++
		}
	}
	return float64(inter) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
