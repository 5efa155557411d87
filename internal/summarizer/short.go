package summarizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"biaslens/internal/textproc"
)

const (
	topicLen       = 90
	shortBodyLen   = 160
	topicKeywords  = 6
	keyTermCount   = 5
	maxFacts       = 6
	minShortBullet = 3
)

const contextBullet = Bullet + "Context: brief input; the points above capture its main details."

// factPattern matches month names, comma-grouped or plain numbers with optional
// decimals and percent sign. Four-digit years are plain numbers.
var factPattern = regexp.MustCompile(
	`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\b` +
		`|\b\d{1,3}(?:,\d{3})+(?:\.\d+)?%?` +
		`|\b\d+(?:\.\d+)?%?`,
)

// shortSummary builds the fixed-shape summary used for brief inputs: a topic
// line, optional key terms and facts, and a truncated body, padded to
// min(3, maxBullets) bullets and capped at maxBullets.
func (s *FrequencySummarizer) shortSummary(normalized string, sentences []string, maxBullets int) []string {
	first := normalized
	if len(sentences) > 0 {
		first = sentences[0]
	}

	topic := strings.Join(s.keywords(first, topicKeywords), " ")
	if topic == "" {
		topic = first
	}
	bullets := []string{Bullet + "Topic: " + textproc.Truncate(capitalize(topic), topicLen)}

	if terms := s.keywords(normalized, keyTermCount); len(terms) > 0 {
		bullets = append(bullets, Bullet+"Key terms: "+strings.Join(terms, ", "))
	}
	if facts := extractFacts(normalized, maxFacts); len(facts) > 0 {
		bullets = append(bullets, Bullet+"Facts: "+strings.Join(facts, ", "))
	}
	bullets = append(bullets, Bullet+"Summary: "+textproc.Truncate(normalized, shortBodyLen))

	for len(bullets) < min(minShortBullet, maxBullets) {
		bullets = append(bullets, contextBullet)
	}
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	return bullets
}

// keywords returns up to n tokens of text ordered by descending frequency,
// ties broken by first appearance.
func (s *FrequencySummarizer) keywords(text string, n int) []string {
	tokens := s.tokenizer.Tokenize(text)
	freq := map[string]int{}
	var order []string
	for _, tok := range tokens {
		if freq[tok] == 0 {
			order = append(order, tok)
		}
		freq[tok]++
	}
	sort.SliceStable(order, func(i, j int) bool { return freq[order[i]] > freq[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// extractFacts returns up to n distinct numbers, percentages, month names and
// years in order of appearance.
func extractFacts(text string, n int) []string {
	seen := map[string]struct{}{}
	var facts []string
	for _, match := range factPattern.FindAllString(text, -1) {
		key := strings.ToLower(match)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		facts = append(facts, match)
		if len(facts) == n {
			break
		}
	}
	return facts
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
