package metrics

import (
	"sync"
	"time"
)

// Metrics holds process counters reported on GET /metrics.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	Classifications        int64
	ClassificationFailures int64
	Summaries              int64
	LLMFailures            int64
	ExtractiveSummaries    int64

	// Model
	ModelBuilds int64
	ModelSource string
	TrainedOn   int

	// Timings
	LastClassifyTime   time.Duration
	TotalClassifyTime  time.Duration
	LastSummarizeTime  time.Duration
	TotalSummarizeTime time.Duration
	StartTime          time.Time
}

func New() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

func (m *Metrics) RecordClassification(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Classifications++
	m.LastClassifyTime = d
	m.TotalClassifyTime += d
}

func (m *Metrics) IncrementClassificationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassificationFailures++
}

// RecordSummary counts a summary and whether it came from the extractive
// path and whether the provider failed on the way.
func (m *Metrics) RecordSummary(d time.Duration, extractive, providerFailed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries++
	if extractive {
		m.ExtractiveSummaries++
	}
	if providerFailed {
		m.LLMFailures++
	}
	m.LastSummarizeTime = d
	m.TotalSummarizeTime += d
}

func (m *Metrics) SetModel(builds int64, source string, trainedOn int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ModelBuilds = builds
	m.ModelSource = source
	m.TrainedOn = trainedOn
}

func average(total time.Duration, n int64) int64 {
	if n == 0 {
		return 0
	}
	return (total / time.Duration(n)).Milliseconds()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"classifications":         m.Classifications,
		"classification_failures": m.ClassificationFailures,
		"summaries":               m.Summaries,
		"llm_failures":            m.LLMFailures,
		"extractive_summaries":    m.ExtractiveSummaries,
		"model_builds":            m.ModelBuilds,
		"model_source":            m.ModelSource,
		"trained_on":              m.TrainedOn,
		"last_classify_time_ms":   m.LastClassifyTime.Milliseconds(),
		"avg_classify_time_ms":    average(m.TotalClassifyTime, m.Classifications),
		"last_summarize_time_ms":  m.LastSummarizeTime.Milliseconds(),
		"avg_summarize_time_ms":   average(m.TotalSummarizeTime, m.Summaries),
		"uptime_seconds":          int64(time.Since(m.StartTime).Seconds()),
	}
}
