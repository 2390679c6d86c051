// Package domain defines domain-level errors for the similarcompany feature.
package domain

import "errors"

var (
	// ErrInvalidInput indicates an empty or whitespace-only query.
	ErrInvalidInput = errors.New("query must not be empty")

	// ErrNoMatch indicates that no dictionary keyword or category was found in the query.
	// Callers surface it as a friendly empty result, not as a failure.
	ErrNoMatch = errors.New("no matching industry keyword")

	// ErrDataUnavailable indicates that the disclosure store could not be read. Not retried.
	ErrDataUnavailable = errors.New("disclosure store unavailable")

	// ErrElaborationUnavailable indicates that the LLM elaboration step was skipped or failed.
	// It never fails the match itself.
	ErrElaborationUnavailable = errors.New("elaboration unavailable")

	// ErrInvalidDictionary indicates that the keyword or similar-industry assets are inconsistent.
	ErrInvalidDictionary = errors.New("invalid keyword dictionary")
)
