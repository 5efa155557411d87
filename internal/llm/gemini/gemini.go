package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"biaslens/internal/domain"
	"biaslens/internal/llm"
)

// Client summarizes articles with a Gemini model. It implements domain.Summarizer.
type Client struct {
	client         *genai.Client
	model          string
	temperature    float32
	maxInputTokens int
	timeout        time.Duration
}

// Config configures the Gemini client.
type Config struct {
	APIKey         string
	Model          string
	Temperature    float64
	MaxInputTokens int
	Timeout        time.Duration
	// Endpoint overrides the API endpoint; empty uses the default.
	Endpoint string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:         client,
		model:          cfg.Model,
		temperature:    float32(cfg.Temperature),
		maxInputTokens: cfg.MaxInputTokens,
		timeout:        cfg.Timeout,
	}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(llm.Instruction)}}

	prompt := llm.UserPrompt(llm.FitTokens(text, c.maxInputTokens))
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &domain.UpstreamError{Source: "gemini", Err: err}
	}

	out := responseText(resp)
	if out == "" {
		return "", &domain.ParseError{Source: "gemini", Reason: "no response from Gemini"}
	}
	return out, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}
