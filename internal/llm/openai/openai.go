package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"biaslens/internal/domain"
	"biaslens/internal/llm"
)

const maxRetryAfter = 10 * time.Second

// Client is an OpenAI-compatible chat completions client implementing domain.Summarizer.
type Client struct {
	baseURL        string
	apiKey         string
	model          string
	temperature    float64
	maxInputTokens int
	timeout        time.Duration
	client         *http.Client
	maxRetries     uint64
	retryBase      time.Duration
}

// Config configures the chat completions client.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	MaxInputTokens int
	Timeout        time.Duration
	MaxRetries     int
	RetryBase      time.Duration
}

// NewClient creates a new chat completions client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: missing API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 200 * time.Millisecond
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		model:          cfg.Model,
		temperature:    cfg.Temperature,
		maxInputTokens: cfg.MaxInputTokens,
		timeout:        t,
		client:         &http.Client{Timeout: t},
		maxRetries:     uint64(cfg.MaxRetries),
		retryBase:      cfg.RetryBase,
	}, nil
}

// Name returns the identifier of this provider.
func (c *Client) Name() string { return "openai" }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Summarize asks the model for a bullet summary of text. Network errors, 429
// and 5xx responses are retried, honouring Retry-After; other statuses fail
// immediately.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: llm.Instruction},
			{Role: "user", Content: llm.UserPrompt(llm.FitTokens(text, c.maxInputTokens))},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	var retryAfter time.Duration
	base := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		d, stop := base.Next()
		if stop {
			return 0, true
		}
		if retryAfter > 0 {
			d, retryAfter = retryAfter, 0
		}
		return d, false
	})

	var summary string
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, status, header, err := c.post(ctx, url, body)
		switch {
		case err != nil:
			return retry.RetryableError(&domain.UpstreamError{Source: "openai", Err: err})
		case status == http.StatusTooManyRequests || status >= 500:
			retryAfter = parseRetryAfter(header.Get("Retry-After"))
			return retry.RetryableError(&domain.UpstreamError{Source: "openai", Status: status, Err: apiError(out)})
		case status < 200 || status >= 300:
			return &domain.UpstreamError{Source: "openai", Status: status, Err: apiError(out)}
		}

		var resp chatResponse
		if err := json.Unmarshal(out, &resp); err != nil {
			return &domain.ParseError{Source: "openai", Reason: err.Error()}
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return &domain.ParseError{Source: "openai", Reason: "no completion returned"}
		}
		summary = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return summary, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, 0, nil, err
	}
	return payload, resp.StatusCode, resp.Header, nil
}

// apiError extracts the provider's error message from a failed response body.
func apiError(body []byte) error {
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &out); err == nil && out.Error.Message != "" {
		return errors.New(out.Error.Message)
	}
	return nil
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = time.Until(at)
	}
	if d < 0 {
		return 0
	}
	return min(d, maxRetryAfter)
}
