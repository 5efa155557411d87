// Package classifier ties the dataset loader, the Naive Bayes trainer and the
// process-wide model cache together behind domain.Classifier.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"biaslens/internal/bayes"
	"biaslens/internal/domain"
	"biaslens/internal/textproc"
)

// RowSource supplies training rows and names where they came from.
type RowSource interface {
	LoadOrSeed(ctx context.Context) ([]domain.DatasetRow, string)
}

// Service classifies text against a lazily trained, cached model.
type Service struct {
	cache  *Cache
	logger *slog.Logger
}

// New creates a classifier whose model is trained from rows on first use.
func New(rows RowSource, buildTimeout time.Duration, logger *slog.Logger) *Service {
	logger = logger.With("system", "classifier")
	build := func(ctx context.Context) (*Trained, error) {
		start := time.Now()
		logger.Info("model build started")
		data, source := rows.LoadOrSeed(ctx)
		model := bayes.Train(data, textproc.NewClassifierTokenizer())
		logger.Info(
			"model build finished",
			"rows", model.TrainedOn(),
			"vocabulary", model.VocabularySize(),
			"source", source,
			"duration", time.Since(start),
		)
		return &Trained{Model: model, Source: source}, nil
	}
	return &Service{
		cache:  NewCache(build, buildTimeout),
		logger: logger,
	}
}

// Classify predicts the bias label of text.
func (s *Service) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Classification{}, domain.ErrMissingText
	}

	trained, err := s.cache.Get(ctx)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("get model: %w", err)
	}

	return domain.Classification{
		Prediction: trained.Model.Predict(text),
		ModelInfo:  info(trained),
	}, nil
}

// ModelInfo describes the cached model, if one has been built.
func (s *Service) ModelInfo() (domain.ModelInfo, bool) {
	trained, ok := s.cache.Cached()
	if !ok {
		return domain.ModelInfo{}, false
	}
	return info(trained), true
}

// Builds reports how many training runs have been started.
func (s *Service) Builds() int64 { return s.cache.Builds() }

func info(t *Trained) domain.ModelInfo {
	return domain.ModelInfo{
		TrainedOn:  t.Model.TrainedOn(),
		Labels:     t.Model.Labels(),
		Vocabulary: t.Model.VocabularySize(),
		Source:     t.Source,
	}
}
