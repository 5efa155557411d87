package textproc

import (
	"strings"
	"unicode"
)

// Ellipsis marks a truncated bullet.
const Ellipsis = "…"

// minCut is the earliest position a boundary may be used as the cut point.
const minCut = 40

// Truncate returns text unchanged when it fits in max runes. Otherwise it cuts at
// max and backtracks to the last sentence, clause or word boundary found after
// position 40, trims trailing separators and appends an ellipsis.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	cut := runes[:max]
	end := len(cut)
	for i := len(cut) - 1; i > minCut; i-- {
		if isBoundary(cut[i]) {
			end = i
			break
		}
	}
	head := strings.TrimRightFunc(string(cut[:end]), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(".,;:-", r)
	})
	return head + Ellipsis
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(".!?;:,", r)
}
