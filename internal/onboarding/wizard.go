package onboarding

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"employee-onboarding-backend/internal/domain"

	"github.com/google/uuid"
)

// Submitter hands a validated snapshot to the outside world.
type Submitter interface {
	Submit(ctx context.Context, record *domain.Record) (*domain.SubmissionReceipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, record *domain.Record) (*domain.SubmissionReceipt, error)

func (f SubmitterFunc) Submit(ctx context.Context, record *domain.Record) (*domain.SubmissionReceipt, error) {
	return f(ctx, record)
}

// Wizard owns one record and the navigation state around it. All methods are
// safe for concurrent use; mutations are serialised by mu.
type Wizard struct {
	mu sync.Mutex

	id     uuid.UUID
	owner  string
	engine *Engine
	now    func() time.Time

	record    *domain.Record
	current   domain.StepID
	completed map[domain.StepID]bool
	status    domain.SessionStatus
	receipt   *domain.SubmissionReceipt
	updatedAt time.Time
}

// NewWizard starts on step 1 with an empty record and no completed steps.
func NewWizard(id uuid.UUID, owner string, engine *Engine) *Wizard {
	w := &Wizard{
		id:     id,
		owner:  owner,
		engine: engine,
		now:    engine.clock.Now,
	}
	w.restart()
	return w
}

func (w *Wizard) ID() uuid.UUID { return w.id }

func (w *Wizard) Owner() string { return w.owner }

// LastActivity is the time of the last mutation or navigation.
func (w *Wizard) LastActivity() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updatedAt
}

func (w *Wizard) Status() domain.SessionStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Update applies fn to the live record. The record cannot change while a
// submission is in flight or after it succeeded.
func (w *Wizard) Update(fn func(r *domain.Record) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writable(); err != nil {
		return err
	}
	if err := fn(w.record); err != nil {
		return err
	}
	w.touch()
	return nil
}

// ValidateStep checks any step without moving.
func (w *Wizard) ValidateStep(step domain.StepID) (domain.StepValidation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.ValidateStep(step, w.record)
}

// Advance validates the current step and, if it passes, marks it completed
// and moves forward. On failure the wizard stays put.
func (w *Wizard) Advance() (domain.StepValidation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writable(); err != nil {
		return domain.StepValidation{}, err
	}
	if w.current == domain.LastStep {
		return domain.StepValidation{}, ErrNoNextStep
	}

	res, err := w.engine.ValidateStep(w.current, w.record)
	if err != nil {
		return res, err
	}
	if !res.OK {
		return res, &StepBlockedError{Step: w.current, FieldErrors: res.FieldErrors}
	}

	w.completed[w.current] = true
	w.current++
	w.touch()
	return res, nil
}

// Retreat moves back one step. Completion is kept.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writable(); err != nil {
		return err
	}
	if w.current == domain.FirstStep {
		return ErrAlreadyFirstStep
	}
	w.current--
	w.touch()
	return nil
}

// JumpTo moves to step k when k is not ahead of the current step or the step
// before k has been completed.
func (w *Wizard) JumpTo(k domain.StepID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writable(); err != nil {
		return err
	}
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStep, k)
	}
	if k > w.current && !w.completed[k-1] {
		return fmt.Errorf("%w: step %d", ErrStepLocked, k)
	}
	w.current = k
	w.touch()
	return nil
}

// Submit runs the review step, then the whole-record check, then hands a
// snapshot to s. Only one submission may be in flight; the lock is released
// while s runs so readers can observe the pending status.
func (w *Wizard) Submit(ctx context.Context, s Submitter) (*domain.SubmissionReceipt, error) {
	w.mu.Lock()
	if err := w.writable(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.current != domain.LastStep {
		w.mu.Unlock()
		return nil, ErrNotOnReviewStep
	}

	res, err := w.engine.ValidateStep(domain.StepReview, w.record)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if !res.OK {
		w.mu.Unlock()
		return nil, &StepBlockedError{Step: domain.StepReview, FieldErrors: res.FieldErrors}
	}

	composite := w.engine.ValidateRecord(w.record)
	if !composite.OK {
		w.mu.Unlock()
		return nil, &RecordInvalidError{FieldErrors: composite.FieldErrors, Steps: invalidSteps(composite.ByStep)}
	}

	snapshot := w.record.Clone()
	w.status = domain.SessionSubmitting
	w.touch()
	w.mu.Unlock()

	receipt, subErr := s.Submit(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	if subErr != nil {
		w.status = domain.SessionInProgress
		return nil, &SubmissionFailureError{Reason: subErr.Error(), Err: subErr}
	}

	w.completed[domain.StepReview] = true
	w.status = domain.SessionSubmitted
	w.receipt = receipt
	w.record = domain.NewRecord()
	return receipt, nil
}

// Reset discards everything and starts again from step 1.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == domain.SessionSubmitting {
		return ErrSubmissionPending
	}
	w.restart()
	return nil
}

// View returns a copy of the wizard state that is safe to hand out.
func (w *Wizard) View() *domain.SessionView {
	w.mu.Lock()
	defer w.mu.Unlock()

	completed := slices.Sorted(maps.Keys(w.completed))
	if completed == nil {
		completed = []domain.StepID{}
	}
	v := &domain.SessionView{
		ID:             w.id,
		Status:         w.status,
		CurrentStep:    w.current,
		CompletedSteps: completed,
		Record:         w.record.Clone(),
		UpdatedAt:      w.updatedAt,
	}
	if w.receipt != nil {
		id := w.receipt.SubmissionID
		v.SubmissionID = &id
	}
	return v
}

// Summary derives the review view from the live record.
func (w *Wizard) Summary() domain.ReviewSummary {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.engine.Summary(w.record)
	s.Record = w.record.Clone()
	return s
}

func (w *Wizard) writable() error {
	switch w.status {
	case domain.SessionSubmitting:
		return ErrSubmissionPending
	case domain.SessionSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

func (w *Wizard) restart() {
	w.record = domain.NewRecord()
	w.current = domain.FirstStep
	w.completed = map[domain.StepID]bool{}
	w.status = domain.SessionInProgress
	w.receipt = nil
	w.touch()
}

func (w *Wizard) touch() {
	w.updatedAt = w.now()
}
