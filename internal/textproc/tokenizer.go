// Package textproc holds the text primitives shared by the classifier and the
// summarizer: tokenization, sentence splitting, whitespace normalization and
// boundary-aware truncation.
package textproc

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token either tokenizer keeps.
const MinTokenLength = 3

// Tokenizer lowercases text, extracts maximal runs matched by its pattern and
// drops short tokens and stopwords.
type Tokenizer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewTokenizer creates a tokenizer over the given character-run pattern.
func NewTokenizer(pattern string, stopwords []string) *Tokenizer {
	m := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		m[w] = struct{}{}
	}
	return &Tokenizer{
		tokenPattern: regexp.MustCompile(pattern),
		stopwords:    m,
	}
}

// NewClassifierTokenizer matches ASCII letter runs and filters classifier stopwords.
func NewClassifierTokenizer() *Tokenizer {
	return NewTokenizer(`[a-z]+`, classifierStopwords)
}

// NewSummarizerTokenizer matches ASCII alphanumeric runs and filters summarizer stopwords.
func NewSummarizerTokenizer() *Tokenizer {
	return NewTokenizer(`[a-z0-9]+`, summarizerStopwords)
}

// Tokenize returns the filtered token sequence for text, in order of appearance.
func (t *Tokenizer) Tokenize(text string) []string {
	raw := t.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, tok := range raw {
		if len(tok) < MinTokenLength {
			continue
		}
		if t.IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Unique returns the distinct tokens of text in order of first appearance.
func (t *Tokenizer) Unique(text string) []string {
	tokens := t.Tokenize(text)
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// IsStopword reports whether tok is in the tokenizer's stopword set.
func (t *Tokenizer) IsStopword(tok string) bool {
	_, ok := t.stopwords[tok]
	return ok
}
