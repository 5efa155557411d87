package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFitTokensKeepsShortText(t *testing.T) {
	in := "The council approved the budget on Tuesday."
	assert.Equal(t, in, FitTokens("  "+in+"\n", 100))
}

func TestFitTokensCutsLongText(t *testing.T) {
	in := strings.Repeat("Officials reported 1,200 new cases in March. ", 400)
	got := FitTokens(in, 50)

	assert.NotEmpty(t, got)
	assert.Less(t, len(got), len(in))
	assert.True(t, strings.HasPrefix(in, got))
	assert.Less(t, utf8.RuneCountInString(got), utf8.RuneCountInString(in)/10)
}

func TestFitRunes(t *testing.T) {
	assert.Equal(t, "héllo", fitRunes("héllo", 5))
	assert.Equal(t, "hé", fitRunes("hé wo", 3))
}

func TestUserPrompt(t *testing.T) {
	assert.Equal(t, "Article:\nbody", UserPrompt("body"))
	assert.Contains(t, Instruction, "3-5 bullet points")
}
