package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biaslens/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAnalyzer struct {
	classifyErr error
	lastText    string
}

var fakeClassification = domain.Classification{
	Prediction: domain.Prediction{
		Label: domain.HighlyBiased,
		Probabilities: []domain.LabelScore{
			{Label: domain.HighlyBiased, Score: 0.612345678},
			{Label: domain.SlightlyBiased, Score: 0.287654321},
			{Label: domain.Neutral, Score: 0.100000001},
		},
	},
	ModelInfo: domain.ModelInfo{TrainedOn: 60, Labels: domain.Labels(), Vocabulary: 120, Source: "seed"},
}

func (f *fakeAnalyzer) Classify(ctx context.Context, text string) (domain.Classification, error) {
	f.lastText = text
	if f.classifyErr != nil {
		return domain.Classification{}, f.classifyErr
	}
	return fakeClassification, nil
}

func (f *fakeAnalyzer) Summarize(ctx context.Context, text string) (domain.SummaryResult, error) {
	return domain.SummaryResult{Summary: "• point", UsedFallback: true, ProviderError: "quota exceeded"}, nil
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	out := domain.Analysis{SummaryResult: domain.SummaryResult{Summary: "• point", UsedFallback: true}}
	if f.classifyErr != nil {
		out.BiasError = f.classifyErr.Error()
		return out, nil
	}
	c := fakeClassification
	out.Bias = &c
	return out, nil
}

type fakeStats struct{}

func (fakeStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"classifications": 3}
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestBiasEndpoint(t *testing.T) {
	fa := &fakeAnalyzer{}
	router := NewRouter(fa, fakeStats{}, discardLogger())

	rec := do(t, router, http.MethodPost, "/bias", `{"text":"Some article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Some article", fa.lastText)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	body := decode(t, rec)
	assert.Equal(t, "highly-biased", body["label"])
	probs := body["probabilities"].([]any)
	require.Len(t, probs, 3)
	assert.Equal(t, map[string]any{"label": "highly-biased", "score": 0.6123}, probs[0])
	info := body["modelInfo"].(map[string]any)
	assert.Equal(t, float64(60), info["trainedOn"])
	assert.Equal(t, []any{"neutral", "slightly-biased", "highly-biased"}, info["labels"])
	assert.Equal(t, "seed", info["source"])
}

func TestMissingText(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger())
	bodies := []string{``, `{}`, `{"text":""}`, `{"text":"   "}`, `{"text":`, `{"text":42}`}
	for _, path := range []string{"/bias", "/summarize", "/analyze"} {
		for _, b := range bodies {
			rec := do(t, router, http.MethodPost, path, b)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %q", path, b)
			assert.JSONEq(t, `{"error":"Missing text"}`, rec.Body.String())
		}
	}
}

func TestInternalError(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{classifyErr: errors.New("disk on fire")}, fakeStats{}, discardLogger())
	rec := do(t, router, http.MethodPost, "/bias", `{"text":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal error"}`, rec.Body.String())
}

func TestServiceMissingTextMapsTo400(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{classifyErr: domain.ErrMissingText}, fakeStats{}, discardLogger())
	rec := do(t, router, http.MethodPost, "/bias", `{"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeEndpoint(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger())
	rec := do(t, router, http.MethodPost, "/summarize", `{"text":"Some article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"• point","usedFallback":true,"providerError":"quota exceeded"}`, rec.Body.String())
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger())
	rec := do(t, router, http.MethodPost, "/analyze", `{"text":"Some article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	bias := body["bias"].(map[string]any)
	assert.Equal(t, "highly-biased", bias["label"])
	assert.Equal(t, "• point", body["summary"])
	assert.NotContains(t, body, "biasError")

	router = NewRouter(&fakeAnalyzer{classifyErr: errors.New("no model")}, fakeStats{}, discardLogger())
	rec = do(t, router, http.MethodPost, "/analyze", `{"text":"Some article"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Nil(t, body["bias"])
	assert.Equal(t, "no model", body["biasError"])
}

func TestHealthAndMetrics(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger())

	rec := do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/metrics", "")
	assert.JSONEq(t, `{"classifications":3}`, rec.Body.String())
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestServerShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(ServerConfig{ShutdownTimeout: time.Second}, NewRouter(&fakeAnalyzer{}, fakeStats{}, discardLogger()), discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
