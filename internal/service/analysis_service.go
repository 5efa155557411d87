package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"biaslens/internal/domain"
	"biaslens/internal/metrics"
)

// BiasClassifier is the classification half of an analysis.
type BiasClassifier interface {
	domain.Classifier
	Builds() int64
}

// SummaryFacade is the summary half of an analysis.
type SummaryFacade interface {
	Summarize(ctx context.Context, text string) (domain.SummaryResult, error)
}

type AnalysisServiceImpl struct {
	classifier BiasClassifier
	summarizer SummaryFacade
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewAnalysisService(classifier BiasClassifier, summarizer SummaryFacade, m *metrics.Metrics, logger *slog.Logger) *AnalysisServiceImpl {
	if m == nil {
		m = metrics.New()
	}
	return &AnalysisServiceImpl{
		classifier: classifier,
		summarizer: summarizer,
		metrics:    m,
		logger:     logger.With("system", "analysis"),
	}
}

func (s *AnalysisServiceImpl) Metrics() *metrics.Metrics { return s.metrics }

func (s *AnalysisServiceImpl) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Classification{}, domain.ErrMissingText
	}
	start := time.Now()
	c, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.metrics.IncrementClassificationFailures()
		return domain.Classification{}, err
	}
	s.metrics.RecordClassification(time.Since(start))
	s.metrics.SetModel(s.classifier.Builds(), c.ModelInfo.Source, c.ModelInfo.TrainedOn)
	return c, nil
}

func (s *AnalysisServiceImpl) Summarize(ctx context.Context, text string) (domain.SummaryResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.SummaryResult{}, domain.ErrMissingText
	}
	start := time.Now()
	res, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return domain.SummaryResult{}, err
	}
	s.metrics.RecordSummary(time.Since(start), res.UsedFallback, res.ProviderError != "")
	return res, nil
}

// Analyze classifies and summarizes text concurrently. A classification
// failure is reported in the result; only a summary failure or blank text is
// returned as an error.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Analysis{}, domain.ErrMissingText
	}

	var (
		out        domain.Analysis
		summaryErr error
		g          errgroup.Group
	)
	g.Go(func() error {
		c, err := s.Classify(ctx, text)
		if err != nil {
			s.logger.Error("classification failed", "error", err)
			out.BiasError = err.Error()
			return nil
		}
		out.Bias = &c
		return nil
	})
	g.Go(func() error {
		out.SummaryResult, summaryErr = s.Summarize(ctx, text)
		return nil
	})
	_ = g.Wait()

	if summaryErr != nil {
		return domain.Analysis{}, summaryErr
	}
	return out, nil
}
