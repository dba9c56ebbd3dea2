package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/domain"
	"astroinsight/internal/textproc"
)

const spaceText = "Radiation affects immune cells. Gravity changes bone density. Space travel is risky. Immune cells recover slowly."

func TestExtractHighlights(t *testing.T) {
	h := ExtractHighlights(spaceText, 3, 2)

	require.Len(t, h.Keywords, 3)
	assert.Equal(t, []string{"immune", "cells"}, h.Keywords[:2])
	assert.Equal(t, "radiation", h.Keywords[2], "ties resolve by first occurrence")
	assert.Equal(t, []string{"Radiation affects immune cells.", "Immune cells recover slowly."}, h.Sentences)
}

func TestExtractHighlightsZeroLimits(t *testing.T) {
	for _, text := range []string{"", spaceText, "no punctuation at all"} {
		h := ExtractHighlights(text, 0, 0)
		assert.Empty(t, h.Keywords)
		assert.Empty(t, h.Sentences)
	}
	h := ExtractHighlights(spaceText, -2, -1)
	assert.Empty(t, h.Keywords)
	assert.Empty(t, h.Sentences)
}

func TestExtractHighlightsBounds(t *testing.T) {
	h := ExtractHighlights("Cells divide. Cells die.", 50, 50)
	assert.Equal(t, []string{"cells", "divide", "die"}, h.Keywords)
	assert.Len(t, h.Sentences, 2)
}

func TestExtractHighlightsSentencesBestFirst(t *testing.T) {
	text := "Nothing relevant here. Bone bone density. Bone loss."
	h := ExtractHighlights(text, 1, 3)
	assert.Equal(t, []string{"bone"}, h.Keywords)
	assert.Equal(t, []string{"Bone bone density.", "Bone loss.", "Nothing relevant here."}, h.Sentences)
}

func TestExtractHighlightsStopwordsNeverKeywords(t *testing.T) {
	h := ExtractHighlights("The the the the cells. It is what it is.", 5, 0)
	assert.Equal(t, []string{"cells", "what"}, h.Keywords)

	custom := NewExtractor(WithStopwords(textproc.NewStopwordSet("cells")))
	h = custom.Extract("cells cells immune", 1, 0)
	assert.Equal(t, []string{"immune"}, h.Keywords)
}

func TestExtractHighlightsDeterministic(t *testing.T) {
	first := ExtractHighlights(spaceText, 5, 4)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractHighlights(spaceText, 5, 4))
	}
}

func TestEmphasize(t *testing.T) {
	terms := []string{"immune cells", "radiation", "gravity"}
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{"case insensitive", "Immune cells and RADIATION", terms, "<mark>Immune cells</mark> and <mark>RADIATION</mark>"},
		{"every occurrence", "gravity, Gravity", terms, "<mark>gravity</mark>, <mark>Gravity</mark>"},
		{"regex characters are literal", "a.b axb", []string{"a.b"}, "<mark>a.b</mark> axb"},
		{"parentheses", "f(x) = y", []string{"(x)"}, "f<mark>(x)</mark> = y"},
		{"no terms", "untouched", nil, "untouched"},
		{"empty term ignored", "untouched", []string{""}, "untouched"},
		{"no match", "bone density", terms, "bone density"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emphasize(tt.text, tt.terms))
		})
	}
}

func TestEmphasizeDoesNotMutateTerms(t *testing.T) {
	terms := []string{"a+b", "C"}
	_ = Emphasize("a+b c", terms)
	assert.Equal(t, []string{"a+b", "C"}, terms)
}

func TestEmphasizeHTML(t *testing.T) {
	got := EmphasizeHTML("<b>gravity</b> & more", []string{"gravity"})
	assert.Equal(t, "&lt;b&gt;<mark>gravity</mark>&lt;/b&gt; &amp; more", got)
}

func TestEmphasizeFunc(t *testing.T) {
	got := EmphasizeFunc("Bone and bone", []string{"bone"}, strings.ToUpper)
	assert.Equal(t, "BONE and BONE", got)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		text string
		want domain.ConfidenceLevel
	}{
		{"", domain.ConfidenceLow},
		{"Hello world", domain.ConfidenceHigh},
		{"ab1", domain.ConfidenceMedium},
		{"a1 b2", domain.ConfidenceLow},
		{"12345", domain.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Confidence(tt.text).Level)
		})
	}
	assert.InDelta(t, 10.0/11.0, Confidence("Hello world").Ratio, 1e-9)
}
