package summarizer

import (
	"context"
	"math"
	"sort"
	"strings"

	"biaslens/internal/textproc"
)

const (
	// Bullet prefixes every summary line.
	Bullet = "• "

	// DefaultMaxBullets is used when a non-positive bullet budget is requested.
	DefaultMaxBullets = 5

	shortInputChars   = 280
	sentenceBulletLen = 180
)

// FrequencySummarizer ranks sentences by the global frequency of their tokens
// and renders the best ones as bullets in document order. Short inputs get a
// fixed-shape structured summary instead.
type FrequencySummarizer struct {
	tokenizer  *textproc.Tokenizer
	maxBullets int
}

// NewFrequencySummarizer creates a frequency-based extractive summarizer.
func NewFrequencySummarizer(maxBullets int) *FrequencySummarizer {
	if maxBullets <= 0 {
		maxBullets = DefaultMaxBullets
	}
	return &FrequencySummarizer{
		tokenizer:  textproc.NewSummarizerTokenizer(),
		maxBullets: maxBullets,
	}
}

// Summarize implements domain.Summarizer with the configured bullet budget.
func (s *FrequencySummarizer) Summarize(_ context.Context, text string) (string, error) {
	return s.SummarizeBullets(text, s.maxBullets), nil
}

// SummarizeBullets returns a newline-joined bullet summary of text. The result
// is non-empty for non-empty input and never echoes the input verbatim.
func (s *FrequencySummarizer) SummarizeBullets(text string, maxBullets int) string {
	if maxBullets <= 0 {
		maxBullets = DefaultMaxBullets
	}
	normalized := textproc.NormalizeWhitespace(text)
	if normalized == "" {
		return ""
	}

	sentences := textproc.SplitSentences(normalized)
	var bullets []string
	if len([]rune(normalized)) < shortInputChars || len(sentences) <= 2 {
		bullets = s.shortSummary(normalized, sentences, maxBullets)
	} else {
		bullets = s.rankSentences(sentences, maxBullets)
	}

	summary := strings.Join(bullets, "\n")
	if summary == "" || textproc.Canonical(summary) == textproc.Canonical(normalized) {
		return forcedSummary(normalized)
	}
	return summary
}

// rankSentences scores each sentence as the sum of its tokens' global
// frequencies, keeps the top min(maxBullets, max(3, ceil(n/4))) and restores
// document order.
func (s *FrequencySummarizer) rankSentences(sentences []string, maxBullets int) []string {
	freq := map[string]int{}
	tokens := make([][]string, len(sentences))
	for i, sent := range sentences {
		tokens[i] = s.tokenizer.Tokenize(sent)
		for _, tok := range tokens[i] {
			freq[tok]++
		}
	}

	type pair struct {
		idx   int
		score int
	}
	scores := make([]pair, len(sentences))
	for i := range sentences {
		score := 0
		for _, tok := range tokens[i] {
			score += freq[tok]
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	keep := max(3, int(math.Ceil(float64(len(sentences))/4)))
	keep = min(keep, maxBullets, len(sentences))

	selected := make([]int, keep)
	for i := 0; i < keep; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, keep)
	for _, idx := range selected {
		out = append(out, Bullet+textproc.Truncate(sentences[idx], sentenceBulletLen))
	}
	return out
}

// forcedSummary is the anti-echo fallback: two lines that cannot equal the input.
func forcedSummary(normalized string) string {
	n := len([]rune(normalized))
	head := textproc.Truncate(normalized, max(1, min(160, n/2)))
	if !strings.HasSuffix(head, textproc.Ellipsis) {
		head += textproc.Ellipsis
	}
	return Bullet + "Key point: " + head + "\n" + Bullet + "Condensed from a longer passage; see the original for full details."
}
