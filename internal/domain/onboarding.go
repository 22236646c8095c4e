package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Lookup enums
// ============================================================================

// Department, JobType and Relationship are closed sets owned by the catalog.
type Department string

type JobType string

type Relationship string

// Values the validation rules branch on.
const (
	DepartmentHR      Department = "HR"
	DepartmentFinance Department = "Finance"

	JobTypeFullTime JobType = "Full-time"
	JobTypeContract JobType = "Contract"
)

// ============================================================================
// Wizard steps
// ============================================================================

type StepID int

const (
	StepPersonalInfo StepID = iota + 1
	StepJobDetails
	StepSkillsPreferences
	StepEmergencyContact
	StepReview
)

const (
	FirstStep = StepPersonalInfo
	LastStep  = StepReview
)

func (s StepID) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// StepInfo is what the progress indicator shows for one step
type StepInfo struct {
	ID          StepID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AllSteps returns the wizard steps in order
func AllSteps() []StepInfo {
	return []StepInfo{
		{ID: StepPersonalInfo, Title: "Personal", Description: "Basic info"},
		{ID: StepJobDetails, Title: "Job Details", Description: "Role & salary"},
		{ID: StepSkillsPreferences, Title: "Skills", Description: "Abilities"},
		{ID: StepEmergencyContact, Title: "Emergency", Description: "Contact info"},
		{ID: StepReview, Title: "Review", Description: "Confirm all"},
	}
}

// FieldErrors maps a field path (e.g. "startDate", "skillExperience.Go") to
// the first rule it violated.
type FieldErrors map[string]string

// Merge copies errors from other, keeping messages already present.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		if _, exists := fe[field]; !exists {
			fe[field] = msg
		}
	}
}

// ============================================================================
// Session views
// ============================================================================

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionSubmitting SessionStatus = "submitting"
	SessionSubmitted  SessionStatus = "submitted"
)

// SessionView is the read model of one wizard session
type SessionView struct {
	ID             uuid.UUID     `json:"id"`
	Status         SessionStatus `json:"status"`
	CurrentStep    StepID        `json:"current_step"`
	CompletedSteps []StepID      `json:"completed_steps"`
	Record         *Record       `json:"record"`
	SubmissionID   *uuid.UUID    `json:"submission_id,omitempty"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// StepValidation is the outcome of validateStep
type StepValidation struct {
	Step        StepID      `json:"step"`
	OK          bool        `json:"ok"`
	FieldErrors FieldErrors `json:"field_errors,omitempty"`
}

// ReviewSummary is the derived view shown on the review step
type ReviewSummary struct {
	Age              *int    `json:"age,omitempty"`
	ManagerName      string  `json:"manager_name,omitempty"`
	SalaryUnit       string  `json:"salary_unit,omitempty"` // "/hour" or "/year"
	GuardianRequired bool    `json:"guardian_required"`
	Record           *Record `json:"record"`
}

// ============================================================================
// Submission
// ============================================================================

// Submission is one validated record handed to the submission collaborator
type Submission struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	SubmittedBy string    `json:"submitted_by,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	Record      *Record   `json:"record"`
	Thumbnail   []byte    `json:"-"`
}

type SubmissionReceipt struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// ============================================================================
// Repository / Collaborator Interfaces
// ============================================================================

type SubmissionRepository interface {
	// Save the submission and its child rows atomically
	SaveSubmission(ctx context.Context, sub *Submission) error
}

type SubmissionPublisher interface {
	PublishSubmitted(ctx context.Context, sub *Submission) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type OnboardingUsecase interface {
	Steps() []StepInfo
	Catalog() *Catalog
	ManagersFor(department Department) ([]Manager, error)

	StartSession(ctx context.Context) (*SessionView, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)

	// Field writes; invariants are enforced by the record mutators
	UpdateRecord(ctx context.Context, sessionID uuid.UUID, patch *RecordPatch) (*SessionView, error)
	ToggleSkill(ctx context.Context, sessionID uuid.UUID, skill string, selected bool) (*SessionView, error)

	ValidateStep(ctx context.Context, sessionID uuid.UUID, step StepID) (*StepValidation, error)

	// Navigation
	Advance(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	Retreat(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
	JumpTo(ctx context.Context, sessionID uuid.UUID, step StepID) (*SessionView, error)

	Summary(ctx context.Context, sessionID uuid.UUID) (*ReviewSummary, error)

	// Composite validation followed by the submission collaborator
	Submit(ctx context.Context, sessionID uuid.UUID) (*SubmissionReceipt, error)
	Reset(ctx context.Context, sessionID uuid.UUID) (*SessionView, error)
}
