package mvi

import "errors"

// ErrTimeout is the cause of a SubmissionError when the submission
// exceeded the container's timeout.
var ErrTimeout = errors.New("submission timed out")

// ValidationError reports a required field left empty on Submit.
type ValidationError struct {
	Field Field
}

func (e *ValidationError) Error() string {
	return "please enter " + e.Field.label()
}

// SubmissionError carries the failure returned by the submit capability.
// Its message is the failure reason itself.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }
