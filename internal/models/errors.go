package models

import "errors"

// Sentinel errors for caller-contract violations.
var (
	// ErrPrecondition is returned when a decision function is called with
	// arguments outside its contract (no scores, out-of-range scores, unknown category).
	ErrPrecondition = errors.New("precondition violated")

	// ErrIncompleteInput is returned when a required answer is missing.
	ErrIncompleteInput = errors.New("incomplete input")
)
