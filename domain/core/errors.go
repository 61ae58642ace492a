package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Gathering errors
	ErrNoFilesFound    = errors.New("no files match the selection pattern")
	ErrIndexOutOfRange = errors.New("iteration index out of range")

	// Comparison errors
	ErrArgumentMismatch   = errors.New("argument count mismatch")
	ErrMisalignedDatasets = errors.New("misaligned datasets")

	// Data errors
	ErrEmptyTable    = errors.New("table has no rows")
	ErrRaggedTable   = errors.New("table rows have inconsistent column counts")
	ErrTooFewColumns = errors.New("table has fewer columns than requested outputs")
)

// Error constructors with context
func NewNoFilesError(pattern string) error {
	return fmt.Errorf("%w: %q", ErrNoFilesFound, pattern)
}

func NewIndexError(requested, available int) error {
	return fmt.Errorf("%w: iteration %d requested, %d available", ErrIndexOutOfRange, requested, available)
}

func NewMisalignedError(property string, values []int) error {
	return fmt.Errorf("%w: datasets disagree on %s %v", ErrMisalignedDatasets, property, values)
}

func NewArgumentMismatchError(what string, got, want int) error {
	return fmt.Errorf("%w: %s has length %d, expected %d", ErrArgumentMismatch, what, got, want)
}

// Error checking helpers
func IsNoFilesError(err error) bool {
	return errors.Is(err, ErrNoFilesFound)
}

func IsIndexError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

func IsMisalignedError(err error) bool {
	return errors.Is(err, ErrMisalignedDatasets)
}
