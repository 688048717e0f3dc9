package audio

import (
	"regexp"
	"strings"
)

const (
	maxTextLength = 500
	minTextLength = 5
)

var (
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?¿¡áéíóúüñÁÉÍÓÚÜÑ]`)
	multiSpace      = regexp.MustCompile(`\s+`)
)

// PrepareText normalizes raw reply text for synthesis: strips characters the
// voice models mispronounce, collapses whitespace, and truncates to the
// per-request character budget. Truncation prefers the last sentence
// boundary when one falls in the final fifth of the budget.
func PrepareText(raw string) (string, error) {
	text := disallowedChars.ReplaceAllString(raw, "")
	text = multiSpace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", ErrEmptyText
	}

	runes := []rune(text)
	if len(runes) > maxTextLength {
		cut := runes[:maxTextLength]
		// Boundary positions are counted in runes, same unit as the budget.
		for i := len(cut) - 1; i > maxTextLength*8/10; i-- {
			if cut[i] == '.' {
				cut = cut[:i+1]
				break
			}
		}
		runes = cut
		text = string(runes)
	}

	if len(runes) < minTextLength {
		return "", ErrTextTooShort
	}
	return text, nil
}
