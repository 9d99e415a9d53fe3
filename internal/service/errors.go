package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a quiz or question that is absent, or a quiz that is not
// published when only published quizzes are visible.
var ErrNotFound = errors.New("not found")

// InvalidInputError reports an admin payload that violates a domain rule
// (bad question type, too few choices, malformed id, ...).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidSubmissionError reports an attempt submission whose shape does not
// match the quiz: wrong answer count, unknown question reference, malformed
// identifier.
type InvalidSubmissionError struct {
	Reason string
}

func (e *InvalidSubmissionError) Error() string { return e.Reason }

func invalidSubmission(format string, args ...interface{}) error {
	return &InvalidSubmissionError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a failure of the Mongo collaborators. It is
// server-side and not retried at this layer.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
