package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text after every '.', '!' or '?' that is directly
// followed by whitespace. The punctuation stays with the preceding sentence,
// the whitespace run is dropped, and each piece is trimmed. Empty pieces are
// discarded. Text without any boundary comes back as a single sentence.
func SplitSentences(text string) []string {
	out := []string{}
	start := 0
	var prev rune
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && isTerminal(prev) {
			out = appendTrimmed(out, text[start:i])
			j := i + size
			for j < len(text) {
				r2, s2 := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(r2) {
					break
				}
				j += s2
			}
			start = j
			i = j
			prev = ' '
			continue
		}
		prev = r
		i += size
	}
	return appendTrimmed(out, text[start:])
}

func isTerminal(r rune) bool { return r == '.' || r == '!' || r == '?' }

func appendTrimmed(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	return append(out, s)
}
