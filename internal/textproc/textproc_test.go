package textproc

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"mixed case with hyphen", "The Immune-Cells respond.", []string{"the", "immune-cells", "respond"}},
		{"single letters dropped", "a b c ok", []string{"ok"}},
		{"apostrophe kept", "Don't panic", []string{"don't", "panic"}},
		{"leading apostrophe skipped", "'tis fine", []string{"tis", "fine"}},
		{"letter plus hyphen", "x- y", []string{"x-"}},
		{"digits split", "abc123def", []string{"abc", "def"}},
		{"non ascii breaks runs", "café noir", []string{"caf", "noir"}},
		{"empty", "", []string{}},
		{"no letters", "123 ... !!", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("Space travel is risky")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"space", "travel", "is", "risky"}, first)
}

func TestTokensEarlyStop(t *testing.T) {
	var got []string
	for tok := range Tokens("one two three four") {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"terminal marks", "A. B! C?", []string{"A.", "B!", "C?"}},
		{"no punctuation", "just one clause", []string{"just one clause"}},
		{"punctuation without space", "v1.2 is out.Next", []string{"v1.2 is out.Next"}},
		{"whitespace runs collapse", "First.  \n\tSecond.", []string{"First.", "Second."}},
		{"leading and trailing space", "  Hi there.  Bye.  ", []string{"Hi there.", "Bye."}},
		{"ellipsis", "Wait... what?", []string{"Wait...", "what?"}},
		{"empty", "", []string{}},
		{"only whitespace", " \n ", []string{}},
		{"non-breaking space counts", "One.\u00a0Two.", []string{"One.", "Two."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

func TestStopwordSet(t *testing.T) {
	s := NewStopwordSet(" The ", "", "AND")
	assert.True(t, s.Contains("the"))
	assert.True(t, s.Contains("and"))
	assert.False(t, s.Contains(""))
	assert.Equal(t, 2, s.Len())

	extended := s.With("Gravity")
	assert.True(t, extended.Contains("gravity"))
	assert.False(t, s.Contains("gravity"), "With must not modify the receiver")

	var empty StopwordSet
	assert.False(t, empty.Contains("the"))
}

func TestDefaultStopwordsIsCopy(t *testing.T) {
	a := DefaultStopwords()
	delete(a, "the")
	assert.True(t, DefaultStopwords().Contains("the"))
	assert.Len(t, DefaultStopwordList(), DefaultStopwords().Len())
}

func TestBuildFrequency(t *testing.T) {
	text := "Radiation affects immune cells. Immune cells recover slowly. It is risky."
	ft := BuildFrequency(Tokens(text), DefaultStopwords())

	assert.Equal(t, 2, ft.Count("immune"))
	assert.Equal(t, 2, ft.Count("cells"))
	assert.Equal(t, 1, ft.Count("radiation"))
	assert.Equal(t, 0, ft.Count("is"), "stopwords are not counted")
	assert.Equal(t, 0, ft.Count("missing"))
	assert.Equal(t, []string{"radiation", "affects", "immune", "cells", "recover", "slowly", "risky"}, ft.Words())
}

func TestFrequencyTop(t *testing.T) {
	ft := BuildFrequency(Tokens("beta alpha beta gamma alpha delta"), nil)

	assert.Equal(t, []string{"beta", "alpha"}, ft.Top(2))
	assert.Equal(t, []string{"beta", "alpha", "gamma", "delta"}, ft.Top(10))
	assert.Empty(t, ft.Top(0))
	assert.Empty(t, ft.Top(-3))

	var nilTable *FrequencyTable
	require.Equal(t, 0, nilTable.Len())
	assert.Empty(t, nilTable.Top(3))
}

func TestFrequencySum(t *testing.T) {
	ft := BuildFrequency(Tokens("immune immune cells"), nil)
	assert.Equal(t, 3, ft.Sum(Tokens("immune cells unknown")))
}
