package suggest

import "strings"

// MaxSuggestions caps how many phrases Suggest returns.
const MaxSuggestions = 8

// DefaultPhrases seed the suggestion list.
var DefaultPhrases = []string{
	"effects of space radiation on immune cells",
	"microgravity and bone density",
	"bion-m 1 mission mice",
	"muscle atrophy in spaceflight",
	"cardiovascular adaptation to microgravity",
	"plant growth on the iss",
	"sleep and circadian rhythm in orbit",
	"gene expression changes in astronauts",
	"twin study results",
	"artemis human research",
	"radiation shielding for mars missions",
	"post-flight recovery of gravity sensing",
}

// Suggester filters a phrase list against the text typed so far.
type Suggester struct {
	phrases []string
	recents *Recents
}

// New creates a Suggester over phrases. When recents is non-nil its entries
// are offered first.
func New(phrases []string, recents *Recents) *Suggester {
	return &Suggester{phrases: append([]string(nil), phrases...), recents: recents}
}

// Suggest returns up to MaxSuggestions phrases containing query,
// case-insensitively. A blank query yields nothing.
func (s *Suggester) Suggest(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var candidates []string
	if s.recents != nil {
		candidates = append(candidates, s.recents.List()...)
	}
	candidates = append(candidates, s.phrases...)

	var out []string
	seen := make(map[string]struct{})
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if _, dup := seen[lc]; dup || !strings.Contains(lc, q) {
			continue
		}
		seen[lc] = struct{}{}
		out = append(out, c)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

// MatchSpan returns the byte range of the first case-insensitive occurrence
// of term in text, or ok=false when there is none or term is empty.
func MatchSpan(text, term string) (start, end int, ok bool) {
	if term == "" {
		return 0, 0, false
	}
	// ASCII folding keeps byte offsets aligned with text
	idx := strings.Index(asciiLower(text), asciiLower(term))
	if idx < 0 {
		return 0, 0, false
	}
	return idx, idx + len(term), true
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
