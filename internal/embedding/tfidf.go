package embedding

import (
	"errors"
	"math"
	"sort"

	"astroinsight/internal/textproc"
)

// TFIDFEmbedder implements a simple TF-IDF vectorizer as an Embedder.
// It builds a vocabulary from the corpus and computes IDF values.
type TFIDFEmbedder struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
	stopwords  textproc.StopwordSet
}

// NewTFIDFEmbedder creates an unprepared embedder that ignores stop.
func NewTFIDFEmbedder(stop textproc.StopwordSet) *TFIDFEmbedder {
	return &TFIDFEmbedder{
		vocabulary: make(map[string]int),
		stopwords:  stop,
	}
}

func (e *TFIDFEmbedder) Name() string { return "tfidf" }

// Prepare builds the vocabulary and IDF values from the provided corpus.
func (e *TFIDFEmbedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	// document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		for _, tok := range textproc.BuildFrequency(textproc.Tokens(text), e.stopwords).Words() {
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("no tokens found in corpus")
	}
	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	N := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF
		e.idf[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

func (e *TFIDFEmbedder) Dimension() int { return e.dimension }

// Embed computes the L2-normalized TF-IDF vector for text. Text without any
// known term maps to the zero vector.
func (e *TFIDFEmbedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	freq := textproc.BuildFrequency(textproc.Tokens(text), e.stopwords)
	total := 0
	for _, tok := range freq.Words() {
		if _, ok := e.vocabulary[tok]; ok {
			total += freq.Count(tok)
		}
	}
	if total == 0 {
		return vec, nil
	}
	for _, tok := range freq.Words() {
		idx, ok := e.vocabulary[tok]
		if !ok {
			continue
		}
		vec[idx] = float64(freq.Count(tok)) / float64(total) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
