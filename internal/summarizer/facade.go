// Package summarizer produces short bullet summaries of article text, either
// through an external abstractive provider or a local extractive fallback.
package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"biaslens/internal/domain"
)

// Facade prefers the abstractive provider when one is configured and contains
// its failures by falling back to the extractive summarizer.
type Facade struct {
	abstractive domain.Summarizer
	extractive  *FrequencySummarizer
	logger      *slog.Logger
}

// NewFacade creates a summarizer facade. abstractive may be nil.
func NewFacade(abstractive domain.Summarizer, extractive *FrequencySummarizer, logger *slog.Logger) *Facade {
	return &Facade{
		abstractive: abstractive,
		extractive:  extractive,
		logger:      logger.With("system", "summarizer"),
	}
}

// HasProvider reports whether an abstractive provider is configured.
func (f *Facade) HasProvider() bool { return f.abstractive != nil }

// Summarize returns a summary of text. Provider errors are logged and surfaced
// in the result alongside the extractive fallback rather than returned.
func (f *Facade) Summarize(ctx context.Context, text string) (domain.SummaryResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.SummaryResult{}, domain.ErrMissingText
	}

	if f.abstractive != nil {
		summary, err := f.abstractive.Summarize(ctx, text)
		if err == nil && strings.TrimSpace(summary) == "" {
			err = errors.New("provider returned an empty summary")
		}
		if err == nil {
			return domain.SummaryResult{Summary: strings.TrimSpace(summary)}, nil
		}
		f.logger.Warn("abstractive summary failed; using extractive fallback", "error", err)
		return domain.SummaryResult{
			Summary:       f.extractive.SummarizeBullets(text, f.extractive.maxBullets),
			UsedFallback:  true,
			ProviderError: err.Error(),
		}, nil
	}

	return domain.SummaryResult{
		Summary:      f.extractive.SummarizeBullets(text, f.extractive.maxBullets),
		UsedFallback: true,
	}, nil
}
