package domain

import "context"

// Citation points at a source backing an answer.
type Citation struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Year  int    `json:"year,omitempty" yaml:"year,omitempty"`
}

// Answer is the text returned for a question together with its sources.
type Answer struct {
	Question  string
	Title     string
	Text      string
	Citations []Citation
	Source    string
}

// Highlights are the top keywords of a text and the sentences that contain
// the most of them, best first.
type Highlights struct {
	Keywords  []string
	Sentences []string
}

// ConfidenceLevel is a coarse rating of how much of a text is prose.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "Low"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceHigh   ConfidenceLevel = "High"
)

// Confidence carries the letter ratio behind a ConfidenceLevel.
type Confidence struct {
	Level ConfidenceLevel
	Ratio float64
}

// Analysis bundles everything derived from one answer text.
type Analysis struct {
	Summary    string
	Highlights Highlights
	Confidence Confidence
}

// Document represents a single text file loaded into the local corpus.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a window of consecutive sentences from a document.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Source     string
	Text       string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Summarizer produces an extractive summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) string
}

// HighlightExtractor picks keywords and key sentences from text.
type HighlightExtractor interface {
	Extract(text string, numKeywords, numSentences int) Highlights
}

// AnswerSource answers a free-text question.
type AnswerSource interface {
	Name() string
	Ask(ctx context.Context, question string) (*Answer, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}
