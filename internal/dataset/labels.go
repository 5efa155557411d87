package dataset

import (
	"strings"

	"biaslens/internal/domain"
)

// labelKeywords is checked in order; the first label with a matching fragment wins.
var labelKeywords = []struct {
	label    domain.Label
	keywords []string
}{
	{domain.Neutral, []string{"neutral"}},
	{domain.SlightlyBiased, []string{"slight"}},
	{domain.HighlyBiased, []string{"high", "extreme", "strong"}},
}

// NormalizeLabel maps a raw dataset label onto the closed label set by
// case-insensitive substring match. ok is false when no keyword matches.
func NormalizeLabel(raw string) (domain.Label, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", false
	}
	for _, entry := range labelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(value, kw) {
				return entry.label, true
			}
		}
	}
	return "", false
}
