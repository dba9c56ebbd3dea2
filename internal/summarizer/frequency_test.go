package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroinsight/internal/textproc"
)

const spaceText = "Radiation affects immune cells. Gravity changes bone density. Space travel is risky. Immune cells recover slowly."

func TestSummarizeSelectsDensestSentences(t *testing.T) {
	got := Summarize(spaceText, 2)
	assert.Equal(t, "Radiation affects immune cells. Immune cells recover slowly.", got)
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	inputs := []string{
		"",
		"No terminal punctuation here",
		"  One sentence.  ",
		"First one. Second one!",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, Summarize(in, 2))
		})
	}
	assert.Equal(t, spaceText, Summarize(spaceText, 4))
	assert.Equal(t, spaceText, Summarize(spaceText, 10))
}

func TestSummarizeNonPositiveLimit(t *testing.T) {
	assert.Equal(t, "", Summarize(spaceText, 0))
	assert.Equal(t, "", Summarize(spaceText, -1))
	assert.Equal(t, "", Summarize("", 0))
}

func TestSummarizeIsOrderedSubsequence(t *testing.T) {
	texts := []string{
		spaceText,
		"Bone loss is common. Muscles weaken in orbit! Astronauts exercise daily. Exercise slows bone loss? Recovery takes months on Earth.",
		"Alpha beta. Beta gamma. Gamma delta. Delta alpha. Alpha alpha alpha.",
	}
	for _, text := range texts {
		all := textproc.SplitSentences(text)
		for n := 1; n <= len(all); n++ {
			got := textproc.SplitSentences(Summarize(text, n))
			require.Len(t, got, n)
			assertSubsequence(t, all, got)
		}
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	s := NewFrequencySummarizer()
	first := s.Summarize(spaceText, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Summarize(spaceText, 2))
	}
}

func TestSummarizeTiesKeepEarlierSentence(t *testing.T) {
	// identical scores everywhere
	text := "Aa bb. Aa bb. Aa bb."
	assert.Equal(t, "Aa bb. Aa bb.", Summarize(text, 2))
}

func TestSummarizeCustomStopwords(t *testing.T) {
	text := "Gravity gravity gravity wins. Cells matter here. Cells cells everywhere."
	def := NewFrequencySummarizer()
	assert.Equal(t, "Gravity gravity gravity wins.", def.Summarize(text, 1))

	noGravity := NewFrequencySummarizer(WithStopwords(textproc.DefaultStopwords().With("gravity")))
	assert.Equal(t, "Cells cells everywhere.", noGravity.Summarize(text, 1))
}

func assertSubsequence(t *testing.T, all, sub []string) {
	t.Helper()
	j := 0
	for _, s := range all {
		if j < len(sub) && s == sub[j] {
			j++
		}
	}
	assert.Equal(t, len(sub), j, "summary %q is not an ordered subsequence of %q", sub, all)
}
