// Package llm holds what the abstractive summary providers share: the
// instruction template and the input token budget.
package llm

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Instruction is the fixed system instruction sent to every provider.
const Instruction = "You summarize news articles. Write 3-5 bullet points, one per line, each starting with \"- \". " +
	"Be factual and neutral: do not add opinions or characterize the tone of the article. " +
	"Include key figures, dates and names where the article gives them."

const (
	// DefaultMaxInputTokens bounds the article text sent to a provider.
	DefaultMaxInputTokens = 3000
	// DefaultTemperature keeps provider output close to deterministic.
	DefaultTemperature = 0.2

	runesPerToken = 4
	encodingName  = "cl100k_base"
)

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

func encoding() *tiktoken.Tiktoken {
	encOnce.Do(func() {
		e, err := tiktoken.GetEncoding(encodingName)
		if err != nil {
			slog.Debug("tiktoken encoding unavailable; using rune budget", "encoding", encodingName, "error", err)
			return
		}
		enc = e
	})
	return enc
}

// UserPrompt wraps the article text for the user turn.
func UserPrompt(text string) string {
	return "Article:\n" + text
}

// FitTokens cuts text to at most maxTokens cl100k_base tokens. When the
// encoding cannot be loaded it falls back to maxTokens*4 runes.
func FitTokens(text string, maxTokens int) string {
	text = strings.TrimSpace(text)
	if maxTokens <= 0 {
		maxTokens = DefaultMaxInputTokens
	}
	e := encoding()
	if e == nil {
		return fitRunes(text, maxTokens*runesPerToken)
	}
	tokens := e.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return strings.TrimSpace(e.Decode(tokens[:maxTokens]))
}

func fitRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}
