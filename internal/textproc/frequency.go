package textproc

import (
	"iter"
	"sort"
)

// FrequencyTable counts non-stopword tokens. It remembers the order in which
// words were first seen so that ranking ties resolve by first occurrence.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// BuildFrequency counts every token from tokens that is not in stop.
func BuildFrequency(tokens iter.Seq[string], stop StopwordSet) *FrequencyTable {
	ft := &FrequencyTable{counts: make(map[string]int)}
	for tok := range tokens {
		if stop.Contains(tok) {
			continue
		}
		if _, seen := ft.counts[tok]; !seen {
			ft.order = append(ft.order, tok)
		}
		ft.counts[tok]++
	}
	return ft
}

// Count returns the number of occurrences of word, zero when absent.
func (f *FrequencyTable) Count(word string) int {
	if f == nil {
		return 0
	}
	return f.counts[word]
}

// Len returns the number of distinct words.
func (f *FrequencyTable) Len() int {
	if f == nil {
		return 0
	}
	return len(f.order)
}

// Words returns the distinct words in first-occurrence order.
func (f *FrequencyTable) Words() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Top returns up to k words by descending count. Equal counts keep
// first-occurrence order. k <= 0 returns an empty slice.
func (f *FrequencyTable) Top(k int) []string {
	if k <= 0 || f.Len() == 0 {
		return []string{}
	}
	words := f.Words()
	sort.SliceStable(words, func(i, j int) bool { return f.counts[words[i]] > f.counts[words[j]] })
	if k > len(words) {
		k = len(words)
	}
	return words[:k]
}

// Sum adds up the counts of tokens. Unknown tokens contribute zero.
func (f *FrequencyTable) Sum(tokens iter.Seq[string]) int {
	total := 0
	for tok := range tokens {
		total += f.Count(tok)
	}
	return total
}
