package highlight

import (
	"html"
	"regexp"
	"strings"
)

// Emphasize wraps every case-insensitive occurrence of any term in
// <mark></mark>. text must already be HTML-escaped.
func Emphasize(text string, terms []string) string {
	return EmphasizeFunc(text, terms, func(m string) string { return "<mark>" + m + "</mark>" })
}

// EmphasizeHTML escapes raw and then emphasizes terms in it.
func EmphasizeHTML(raw string, terms []string) string {
	escaped := make([]string, len(terms))
	for i, t := range terms {
		escaped[i] = html.EscapeString(t)
	}
	return Emphasize(html.EscapeString(raw), escaped)
}

// EmphasizeFunc replaces every case-insensitive occurrence of any term with
// wrap(match). Terms are matched literally and tried in the given order at
// each position. Empty terms are ignored; with no usable terms text is
// returned as is.
func EmphasizeFunc(text string, terms []string, wrap func(string) string) string {
	re := termPattern(terms)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, wrap)
}

func termPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
