// Package dataset fetches the labeled training corpus for the bias classifier.
// Remote candidates are tried strictly in order; when none yields a usable row
// the caller falls back to the built-in seed corpus.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"biaslens/internal/domain"
)

// MaxDatasetBytes caps how much of a remote CSV is read.
const MaxDatasetBytes = 64 * 1024 * 1024

const (
	SourceRemote = "remote"
	SourceSeed   = "seed"
)

// Config configures the remote dataset loader.
type Config struct {
	BaseURL    string
	DatasetID  string
	Files      []string
	Token      string
	Limit      int
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// Loader fetches and parses the remote training CSV.
type Loader struct {
	candidates []string
	token      string
	limit      int
	maxRetries uint64
	retryBase  time.Duration
	client     *http.Client
	logger     *slog.Logger
}

// NewLoader builds a loader whose candidate URLs are BaseURL/DatasetID/resolve/main/<file>.
func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	retryBase := cfg.RetryBase
	if retryBase <= 0 {
		retryBase = 500 * time.Millisecond
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	candidates := make([]string, 0, len(cfg.Files))
	base := strings.TrimRight(cfg.BaseURL, "/")
	for _, f := range cfg.Files {
		candidates = append(candidates, fmt.Sprintf("%s/%s/resolve/main/%s", base, cfg.DatasetID, strings.TrimLeft(f, "/")))
	}

	return &Loader{
		candidates: candidates,
		token:      cfg.Token,
		limit:      cfg.Limit,
		maxRetries: uint64(maxRetries),
		retryBase:  retryBase,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: timeout / 4}).DialContext,
				TLSHandshakeTimeout:   timeout / 4,
				ResponseHeaderTimeout: timeout / 2,
			},
		},
		logger: logger.With("system", "dataset"),
	}
}

// Candidates returns the candidate URLs in priority order.
func (l *Loader) Candidates() []string {
	return append([]string(nil), l.candidates...)
}

// Load returns the rows of the first candidate that yields at least one accepted
// row. A non-success status or unusable CSV advances to the next candidate; a
// network failure stops the search. It returns ErrEmptyDataset when nothing was
// accepted.
func (l *Loader) Load(ctx context.Context) ([]domain.DatasetRow, error) {
	if l.token == "" {
		l.logger.Info("no dataset token configured; gated dataset will likely refuse access")
	}
	for _, url := range l.candidates {
		rows, err := l.loadCandidate(ctx, url)
		if err == nil {
			return rows, nil
		}

		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && upstream.Status == 0 {
			l.logger.Warn("dataset fetch failed", "url", url, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrEmptyDataset, err)
		}
		l.logger.Info("dataset candidate rejected", "url", url, "error", err)
	}
	return nil, domain.ErrEmptyDataset
}

// LoadOrSeed never fails: it returns the remote rows when available and the
// seed corpus otherwise, along with which source was used.
func (l *Loader) LoadOrSeed(ctx context.Context) ([]domain.DatasetRow, string) {
	rows, err := l.Load(ctx)
	if err != nil || len(rows) == 0 {
		l.logger.Info("using seed corpus", "reason", err)
		return SeedRows(), SourceSeed
	}
	return rows, SourceRemote
}

func (l *Loader) loadCandidate(ctx context.Context, url string) ([]domain.DatasetRow, error) {
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ParseError{Source: url, Reason: err.Error()}
	}

	rows, skipped, err := rowsFromRecords(url, records, l.limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &domain.ParseError{Source: url, Reason: "no accepted rows"}
	}

	l.logger.Info("dataset loaded", "url", url, "rows", len(rows), "skipped", skipped)
	return rows, nil
}

// fetch GETs url, retrying network errors, 429 and 5xx with Fibonacci backoff.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	b := retry.WithMaxRetries(l.maxRetries, retry.NewFibonacci(l.retryBase))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		body, status, err := l.get(ctx, url)
		switch {
		case err != nil:
			return retry.RetryableError(&domain.UpstreamError{Source: url, Err: err})
		case status == http.StatusTooManyRequests || status >= 500:
			return retry.RetryableError(&domain.UpstreamError{Source: url, Status: status})
		case status < 200 || status >= 300:
			return &domain.UpstreamError{Source: url, Status: status}
		}
		data = body
		return nil
	})
	if err != nil {
		var upstream *domain.UpstreamError
		if !errors.As(err, &upstream) {
			return nil, &domain.UpstreamError{Source: url, Err: err}
		}
		return nil, err
	}
	return data, nil
}

func (l *Loader) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "biaslens/0.1")
	req.Header.Set("Accept", "text/csv, text/plain, */*")
	if l.token != "" {
		req.Header.Set("Authorization", "Bearer "+l.token)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDatasetBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
