package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedFile marks files lacking the minimal structure of their format
	ErrMalformedFile = errors.New("malformed file")
	// ErrUnsupportedFormat marks files that are neither TMX nor XLIFF
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyInput is returned when both source and target text are empty
	ErrEmptyInput = errors.New("source and target text are both empty")
)

// MalformedFileError describes why a file could not be read as its format
type MalformedFileError struct {
	Format string
	Reason string
	Err    error // underlying decoder error, if any
}

func (e *MalformedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s file: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s file: %s", e.Format, e.Reason)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMalformedFile) match
func (e *MalformedFileError) Is(target error) bool { return target == ErrMalformedFile }

// UnsupportedFormatError names the rejected file
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q (expected .tmx or .xlf/.xliff)", e.Name)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// EvaluationError wraps an external evaluator failure for one segment.
// The collaborator's error is preserved as-is.
type EvaluationError struct {
	SegmentID int
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate segment %d: %v", e.SegmentID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }
