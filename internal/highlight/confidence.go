package highlight

import (
	"unicode/utf8"

	"astroinsight/internal/domain"
)

// Confidence rates text by its share of ASCII letters: above 0.7 is High,
// above 0.5 is Medium, anything else (including empty text) is Low.
func Confidence(text string) domain.Confidence {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return domain.Confidence{Level: domain.ConfidenceLow}
	}
	letters := 0
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	ratio := float64(letters) / float64(total)
	switch {
	case ratio > 0.7:
		return domain.Confidence{Level: domain.ConfidenceHigh, Ratio: ratio}
	case ratio > 0.5:
		return domain.Confidence{Level: domain.ConfidenceMedium, Ratio: ratio}
	default:
		return domain.Confidence{Level: domain.ConfidenceLow, Ratio: ratio}
	}
}
