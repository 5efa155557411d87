package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingText is returned when the request text is absent or blank.
	ErrMissingText = errors.New("missing text")
	// ErrEmptyDataset is returned when no candidate yielded an accepted row.
	ErrEmptyDataset = errors.New("empty dataset")
)

// UpstreamError reports a remote dataset or LLM provider that was unreachable,
// unauthorized, or answered with a non-success status.
type UpstreamError struct {
	Source string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.Status != 0:
		return fmt.Sprintf("upstream %s: status %d: %v", e.Source, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("upstream %s: status %d", e.Source, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError reports malformed tabular data or missing expected columns.
type ParseError struct {
	Source string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
}
