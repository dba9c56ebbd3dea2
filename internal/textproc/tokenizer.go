package textproc

import (
	"iter"
	"strings"
)

// Tokens yields the lowercase word tokens of text from left to right.
//
// A token is a maximal run of ASCII letters, hyphens and apostrophes that
// starts with a letter and is at least two characters long. The sequence is
// restartable: ranging over it twice scans text twice.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lower := strings.ToLower(text)
		i := 0
		for i < len(lower) {
			if !isLetter(lower[i]) {
				i++
				continue
			}
			start := i
			i++
			for i < len(lower) && isWordByte(lower[i]) {
				i++
			}
			if i-start < 2 {
				continue
			}
			if !yield(lower[start:i]) {
				return
			}
		}
	}
}

// Tokenize collects Tokens(text) into a slice. Empty or non-alphabetic input
// yields an empty slice.
func Tokenize(text string) []string {
	out := []string{}
	for tok := range Tokens(text) {
		out = append(out, tok)
	}
	return out
}

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' }

func isWordByte(b byte) bool { return isLetter(b) || b == '-' || b == '\'' }
