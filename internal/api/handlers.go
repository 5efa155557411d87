package api

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biaslens/internal/domain"
)

// Analyzer is what the HTTP surface needs from the analysis service.
type Analyzer interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
	Summarize(ctx context.Context, text string) (domain.SummaryResult, error)
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
}

// StatsSource reports process counters.
type StatsSource interface {
	GetStats() map[string]interface{}
}

type textRequest struct {
	Text *string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	svc    Analyzer
	stats  StatsSource
	logger *slog.Logger
}

func (h *handlers) bias(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	res, err := h.svc.Classify(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rounded(res))
}

func (h *handlers) summarize(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	res, err := h.svc.Summarize(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) analyze(c *gin.Context) {
	text, ok := bindText(c)
	if !ok {
		return
	}
	res, err := h.svc.Analyze(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Bias != nil {
		b := rounded(*res.Bias)
		res.Bias = &b
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.GetStats())
}

// bindText writes the 400 response itself when the body has no usable text.
func bindText(c *gin.Context) (string, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing text"})
		return "", false
	}
	return *req.Text, true
}

func (h *handlers) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrMissingText) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Missing text"})
		return
	}
	h.logger.Error("request failed", "path", c.Request.URL.Path, "request_id", c.GetString(requestIDKey), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Internal error"})
}

// rounded returns a copy of c with probabilities rounded to 4 decimals. The
// label is left as computed from the raw scores.
func rounded(c domain.Classification) domain.Classification {
	probs := make([]domain.LabelScore, len(c.Probabilities))
	for i, p := range c.Probabilities {
		probs[i] = domain.LabelScore{Label: p.Label, Score: math.Round(p.Score*1e4) / 1e4}
	}
	c.Probabilities = probs
	return c
}
