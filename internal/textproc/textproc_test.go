package textproc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierTokenizer(t *testing.T) {
	tok := NewClassifierTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercases and drops stopwords", text: "The Senate PASSED the budget", want: []string{"senate", "passed", "budget"}},
		{name: "drops short tokens", text: "an ox is at the zoo", want: []string{"zoo"}},
		{name: "digits split letter runs", text: "covid19 vaccine2021", want: []string{"covid", "vaccine"}},
		{name: "empty", text: "", want: nil},
		{name: "only punctuation", text: "!!! ... ???", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestSummarizerTokenizerKeepsDigits(t *testing.T) {
	tok := NewSummarizerTokenizer()
	assert.Equal(t, []string{"inflation", "rose", "2024", "350"}, tok.Tokenize("Inflation rose in 2024 by 350 bp"))
}

func TestTokenizeNeverEmitsShortTokensOrStopwords(t *testing.T) {
	inputs := []string{
		"It is what it is, and so on.",
		"A B C dd eee ffff the and for",
		"Officials said the 12 new rules would take effect on Monday.",
	}
	for _, tok := range []*Tokenizer{NewClassifierTokenizer(), NewSummarizerTokenizer()} {
		for _, in := range inputs {
			for _, got := range tok.Tokenize(in) {
				assert.GreaterOrEqual(t, len(got), MinTokenLength, "token %q", got)
				assert.False(t, tok.IsStopword(got), "stopword %q", got)
			}
		}
	}
}

func TestUnique(t *testing.T) {
	tok := NewClassifierTokenizer()
	assert.Equal(t, []string{"radical", "agenda"}, tok.Unique("radical radical agenda RADICAL agenda"))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "terminal marks", text: "One. Two! Three? Four", want: []string{"One.", "Two!", "Three?", "Four"}},
		{name: "clause marks", text: "Note: rates rose; bonds fell.", want: []string{"Note:", "rates rose;", "bonds fell."}},
		{name: "mark without whitespace is not a boundary", text: "Rates hit 3.5 percent", want: []string{"Rates hit 3.5 percent"}},
		{name: "normalizes whitespace", text: "  First   line.\n\nSecond\tline.  ", want: []string{"First line.", "Second line."}},
		{name: "no boundary", text: "just a fragment", want: []string{"just a fragment"}},
		{name: "empty", text: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, Canonical("Hello   World\n"), Canonical("hello world"))
}

func TestTruncate(t *testing.T) {
	t.Run("within budget is unchanged", func(t *testing.T) {
		assert.Equal(t, "short text", Truncate("short text", 50))
	})

	t.Run("cuts on a word boundary after position 40", func(t *testing.T) {
		text := strings.Repeat("word ", 30)
		got := Truncate(text, 60)
		require.True(t, strings.HasSuffix(got, Ellipsis))
		body := strings.TrimSuffix(got, Ellipsis)
		assert.LessOrEqual(t, utf8.RuneCountInString(body), 60)
		assert.True(t, strings.HasSuffix(body, "word"), "got %q", got)
	})

	t.Run("cuts at the last boundary before the limit", func(t *testing.T) {
		text := "The committee approved the measure after a long debate, and then adjourned for the evening session"
		got := Truncate(text, 70)
		assert.Equal(t, "The committee approved the measure after a long debate, and then…", got)
	})

	t.Run("hard cut when no boundary after 40", func(t *testing.T) {
		text := strings.Repeat("x", 100)
		got := Truncate(text, 50)
		assert.Equal(t, strings.Repeat("x", 50)+Ellipsis, got)
	})
}
