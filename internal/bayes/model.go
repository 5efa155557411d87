// Package bayes implements a Bernoulli-style Naive Bayes bias model: each
// training document contributes at most one count per distinct token.
package bayes

import (
	"biaslens/internal/domain"
	"biaslens/internal/textproc"
)

// Model is an immutable trained bias model. It is built once by Train and never
// mutated afterwards, so it is safe for concurrent readers.
type Model struct {
	labels             []domain.Label
	vocabulary         map[string]struct{}
	documentCount      map[domain.Label]int
	tokenPresenceCount map[domain.Label]map[string]int
	totalTokenPresence map[domain.Label]int
	trainedOn          int
	tokenizer          *textproc.Tokenizer
}

// Train folds labeled rows into a new model. Tokens are deduplicated per
// document. Zero rows produce a model with zero counts everywhere.
func Train(rows []domain.DatasetRow, tokenizer *textproc.Tokenizer) *Model {
	labels := domain.Labels()
	m := &Model{
		labels:             labels,
		vocabulary:         make(map[string]struct{}),
		documentCount:      make(map[domain.Label]int, len(labels)),
		tokenPresenceCount: make(map[domain.Label]map[string]int, len(labels)),
		totalTokenPresence: make(map[domain.Label]int, len(labels)),
		tokenizer:          tokenizer,
	}
	for _, label := range labels {
		m.tokenPresenceCount[label] = make(map[string]int)
	}

	for _, row := range rows {
		counts, ok := m.tokenPresenceCount[row.Label]
		if !ok {
			continue
		}
		m.trainedOn++
		m.documentCount[row.Label]++
		for _, tok := range tokenizer.Unique(row.Text) {
			counts[tok]++
			m.totalTokenPresence[row.Label]++
			m.vocabulary[tok] = struct{}{}
		}
	}
	return m
}

// Labels returns the model's labels in their fixed order.
func (m *Model) Labels() []domain.Label {
	return append([]domain.Label(nil), m.labels...)
}

// TrainedOn returns the number of rows the model was built from.
func (m *Model) TrainedOn() int { return m.trainedOn }

// VocabularySize returns the number of distinct tokens seen during training.
func (m *Model) VocabularySize() int { return len(m.vocabulary) }

// InVocabulary reports whether tok was seen during training.
func (m *Model) InVocabulary(tok string) bool {
	_, ok := m.vocabulary[tok]
	return ok
}

// DocumentCount returns the number of training rows with the given label.
func (m *Model) DocumentCount(label domain.Label) int { return m.documentCount[label] }

// TokenPresence returns how many training documents of label contain tok.
func (m *Model) TokenPresence(label domain.Label, tok string) int {
	return m.tokenPresenceCount[label][tok]
}

// TotalTokenPresence returns the sum of all token presence counts for label.
func (m *Model) TotalTokenPresence(label domain.Label) int { return m.totalTokenPresence[label] }
