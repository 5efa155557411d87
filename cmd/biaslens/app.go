package main

import (
	"context"
	"fmt"
	"log/slog"

	"biaslens/internal/classifier"
	"biaslens/internal/config"
	"biaslens/internal/dataset"
	"biaslens/internal/domain"
	"biaslens/internal/llm/gemini"
	"biaslens/internal/llm/openai"
	"biaslens/internal/metrics"
	"biaslens/internal/service"
	"biaslens/internal/summarizer"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      *config.AppConfig
	logger   *slog.Logger
	analysis *service.AnalysisServiceImpl
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*app, error) {
	loader := dataset.NewLoader(dataset.Config{
		BaseURL:    cfg.Dataset.BaseURL,
		DatasetID:  cfg.Dataset.ID,
		Files:      cfg.Dataset.Files,
		Token:      cfg.Dataset.Token(),
		Limit:      cfg.Dataset.Limit,
		Timeout:    cfg.Dataset.Timeout(),
		MaxRetries: cfg.Dataset.MaxRetries,
	}, logger)
	clf := classifier.New(loader, cfg.Classifier.BuildTimeout(), logger)

	a := &app{cfg: cfg, logger: logger}
	provider, err := a.newProvider(ctx)
	if err != nil {
		return nil, err
	}
	facade := summarizer.NewFacade(provider, summarizer.NewFrequencySummarizer(cfg.Summarizer.MaxBullets), logger)
	a.analysis = service.NewAnalysisService(clf, facade, metrics.New(), logger)
	return a, nil
}

// newProvider returns the abstractive summarizer, or nil when summaries are
// extractive only or no credential is set.
func (a *app) newProvider(ctx context.Context) (domain.Summarizer, error) {
	if a.cfg.Summarizer.Type == "extractive" {
		return nil, nil
	}
	lc := a.cfg.LLM
	key := lc.APIKey()
	if key == "" {
		a.logger.Info("no LLM credential configured; using extractive summaries", "envs", lc.APIKeyEnvs)
		return nil, nil
	}

	switch lc.Provider {
	case "openai":
		c, err := openai.NewClient(openai.Config{
			BaseURL:        lc.BaseURL,
			APIKey:         key,
			Model:          lc.Model,
			Temperature:    lc.Temperature,
			MaxInputTokens: lc.MaxInputTokens,
			Timeout:        lc.Timeout(),
			MaxRetries:     lc.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		a.logger.Info("abstractive summaries enabled", "provider", c.Name(), "model", lc.Model)
		return c, nil
	case "gemini":
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         key,
			Model:          lc.Model,
			Temperature:    lc.Temperature,
			MaxInputTokens: lc.MaxInputTokens,
			Timeout:        lc.Timeout(),
			Endpoint:       lc.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		a.logger.Info("abstractive summaries enabled", "provider", c.Name(), "model", lc.Model)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", lc.Provider)
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}
