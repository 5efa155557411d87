package textproc

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses every whitespace run to a single space and trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Canonical lowercases text and normalizes its whitespace; two texts with
// equal canonical forms are treated as echoes of each other.
func Canonical(text string) string {
	return strings.ToLower(NormalizeWhitespace(text))
}

// SplitSentences splits whitespace-normalized text after '.', '!', '?', ';' or ':'
// when the mark is followed by whitespace. Text without such a boundary comes
// back as a single sentence.
func SplitSentences(text string) []string {
	text = NormalizeWhitespace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if !isSentenceMark(runes[i]) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func isSentenceMark(r rune) bool {
	switch r {
	case '.', '!', '?', ';', ':':
		return true
	}
	return false
}
