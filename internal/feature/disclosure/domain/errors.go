// Package domain defines domain-level errors for the disclosure feature.
package domain

import "errors"

var (
	// ErrInvalidInput indicates an empty or malformed search term.
	ErrInvalidInput = errors.New("invalid search input")

	// ErrDataUnavailable indicates that the disclosure store could not be read.
	// It is surfaced to the caller as-is and never retried.
	ErrDataUnavailable = errors.New("disclosure store unavailable")
)
