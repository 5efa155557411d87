package domain

import "context"

// Label is one of the three bias intensity classes.
type Label string

const (
	Neutral        Label = "neutral"
	SlightlyBiased Label = "slightly-biased"
	HighlyBiased   Label = "highly-biased"
)

// Labels returns the closed label set in its fixed iteration order.
func Labels() []Label {
	return []Label{Neutral, SlightlyBiased, HighlyBiased}
}

// DatasetRow is a single labeled training example.
type DatasetRow struct {
	Text  string
	Label Label
}

// LabelScore pairs a label with its normalized probability.
type LabelScore struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Prediction is the outcome of scoring a text against a trained model.
// Probabilities are sorted by descending score.
type Prediction struct {
	Label         Label        `json:"label"`
	Probabilities []LabelScore `json:"probabilities"`
}

// ModelInfo describes the model a prediction was made with.
type ModelInfo struct {
	TrainedOn  int     `json:"trainedOn"`
	Labels     []Label `json:"labels"`
	Vocabulary int     `json:"vocabulary"`
	Source     string  `json:"source"`
}

// Classification is a prediction plus the model it came from.
type Classification struct {
	Prediction
	ModelInfo ModelInfo `json:"modelInfo"`
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Classifier assigns a bias label to the provided text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// SummaryResult is the facade output: the summary text, whether the local
// extractive path produced it, and the provider error that forced the fallback.
type SummaryResult struct {
	Summary       string `json:"summary"`
	UsedFallback  bool   `json:"usedFallback"`
	ProviderError string `json:"providerError,omitempty"`
}

// Analysis combines a classification and a summary of the same text. Either
// half may fail without the other: Bias is nil and BiasError set when the
// classification failed.
type Analysis struct {
	Bias      *Classification `json:"bias"`
	BiasError string          `json:"biasError,omitempty"`
	SummaryResult
}
