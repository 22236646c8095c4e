package onboarding

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"employee-onboarding-backend/internal/domain"
)

var (
	ErrUnknownStep       = errors.New("unknown step")
	ErrAlreadyFirstStep  = errors.New("already on the first step")
	ErrNoNextStep        = errors.New("review is the last step; submit instead")
	ErrStepLocked        = errors.New("step cannot be reached before the previous step is completed")
	ErrNotOnReviewStep   = errors.New("submission is only possible from the review step")
	ErrSubmissionPending = errors.New("a submission is already in progress")
	ErrAlreadySubmitted  = errors.New("onboarding has already been submitted")
	ErrSessionNotFound   = errors.New("onboarding session not found")
)

// StepBlockedError carries every field error that kept a step from passing.
type StepBlockedError struct {
	Step        domain.StepID
	FieldErrors domain.FieldErrors
}

func (e *StepBlockedError) Error() string {
	return fmt.Sprintf("step %d is incomplete: %d invalid field(s)", e.Step, len(e.FieldErrors))
}

// RecordInvalidError is returned when the whole-record check at submission
// fails, even if every step was marked completed.
type RecordInvalidError struct {
	FieldErrors domain.FieldErrors
	Steps       []domain.StepID
}

func (e *RecordInvalidError) Error() string {
	return fmt.Sprintf("record is invalid in step(s) %v: %d invalid field(s)", e.Steps, len(e.FieldErrors))
}

// SubmissionFailureError wraps a failure of the submission collaborator. The
// record is left intact so the caller can retry.
type SubmissionFailureError struct {
	Reason string
	Err    error
}

func (e *SubmissionFailureError) Error() string {
	return "submission failed: " + e.Reason
}

func (e *SubmissionFailureError) Unwrap() error {
	return e.Err
}

func invalidSteps(byStep map[domain.StepID]domain.FieldErrors) []domain.StepID {
	var steps []domain.StepID
	for _, s := range slices.Sorted(maps.Keys(byStep)) {
		if len(byStep[s]) > 0 {
			steps = append(steps, s)
		}
	}
	return steps
}
