package bayes

import (
	"math"
	"sort"

	"biaslens/internal/domain"
)

// LogScores returns the unnormalized log posterior of text for every label, in
// label order. Tokens absent from the vocabulary still contribute through the
// +1 smoothing term.
func (m *Model) LogScores(text string) []float64 {
	tokens := m.tokenizer.Unique(text)

	n := 0
	for _, label := range m.labels {
		n += m.documentCount[label]
	}
	v := max(1, len(m.vocabulary))
	numLabels := len(m.labels)

	scores := make([]float64, numLabels)
	for i, label := range m.labels {
		score := math.Log(float64(m.documentCount[label]+1) / float64(n+numLabels))
		denom := float64(m.totalTokenPresence[label] + v)
		counts := m.tokenPresenceCount[label]
		for _, tok := range tokens {
			score += math.Log(float64(counts[tok]+1) / denom)
		}
		scores[i] = score
	}
	return scores
}

// Predict scores text and returns the argmax label together with the softmax
// distribution. The label is decided on the raw log-scores, ties going to the
// earlier label; the distribution is sorted by descending score.
func (m *Model) Predict(text string) domain.Prediction {
	scores := m.LogScores(text)

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	probs := softmax(scores)
	out := make([]domain.LabelScore, len(m.labels))
	for i, label := range m.labels {
		out[i] = domain.LabelScore{Label: label, Score: probs[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return domain.Prediction{
		Label:         m.labels[best],
		Probabilities: out,
	}
}

// softmax normalizes log-scores after shifting by their maximum. A zero or
// non-finite sum falls back to the uniform distribution.
func softmax(logScores []float64) []float64 {
	out := make([]float64, len(logScores))
	if len(logScores) == 0 {
		return out
	}

	maxScore := logScores[0]
	for _, s := range logScores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	sum := 0.0
	for i, s := range logScores {
		out[i] = math.Exp(s - maxScore)
		sum += out[i]
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		uniform := 1 / float64(len(out))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
