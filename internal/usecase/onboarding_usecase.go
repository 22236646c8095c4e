package usecase

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/onboarding"
	"employee-onboarding-backend/pkg/apperror"
	"employee-onboarding-backend/pkg/imaging"
	"employee-onboarding-backend/pkg/logger"
	"employee-onboarding-backend/pkg/metrics"
	"employee-onboarding-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultSubmissionTimeout = 15 * time.Second
	thumbnailMaxDimension    = 256
	thumbnailQuality         = 80
)

var errNoSubmissionSink = errors.New("no submission repository or publisher configured")

type OnboardingConfig struct {
	SubmissionTimeout time.Duration
}

type onboardingUsecase struct {
	engine    *onboarding.Engine
	store     onboarding.SessionStore
	repo      domain.SubmissionRepository
	publisher domain.SubmissionPublisher
	validate  *validator.Validate
	cfg       OnboardingConfig
}

// NewOnboardingUsecase wires the engine to its collaborators. repo and
// publisher are both optional, but a submission needs at least one of them.
func NewOnboardingUsecase(
	engine *onboarding.Engine,
	store onboarding.SessionStore,
	repo domain.SubmissionRepository,
	publisher domain.SubmissionPublisher,
	validate *validator.Validate,
	cfg OnboardingConfig,
) domain.OnboardingUsecase {
	if cfg.SubmissionTimeout <= 0 {
		cfg.SubmissionTimeout = defaultSubmissionTimeout
	}
	if repo == nil && publisher == nil {
		logger.Log.Warnw("no submission sink configured, every submit will fail",
			"hint", "set DATABASE_URL or KAFKA_BROKERS")
	}
	return &onboardingUsecase{
		engine:    engine,
		store:     store,
		repo:      repo,
		publisher: publisher,
		validate:  validate,
		cfg:       cfg,
	}
}

// ============================================================================
// Lookup data
// ============================================================================

func (u *onboardingUsecase) Steps() []domain.StepInfo {
	return domain.AllSteps()
}

func (u *onboardingUsecase) Catalog() *domain.Catalog {
	return u.engine.Catalog()
}

func (u *onboardingUsecase) ManagersFor(department domain.Department) ([]domain.Manager, error) {
	c := u.engine.Catalog()
	if !c.HasDepartment(department) {
		return nil, apperror.BadRequest("Unknown department")
	}
	managers := c.ManagersFor(department)
	if managers == nil {
		managers = []domain.Manager{}
	}
	return managers, nil
}

// ============================================================================
// Sessions
// ============================================================================

func (u *onboardingUsecase) StartSession(ctx context.Context) (*domain.SessionView, error) {
	owner, _ := ctx.Value(domain.KeyUserID).(string)

	w := onboarding.NewWizard(uuid.New(), owner, u.engine)
	if err := u.store.Save(w); err != nil {
		return nil, apperror.Internal(err)
	}
	metrics.ActiveSessions.Set(float64(u.store.Count()))

	logger.Log.Infow("onboarding session started", "session_id", w.ID(), "owner", owner)
	return w.View(), nil
}

func (u *onboardingUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return w.View(), nil
}

// ============================================================================
// Record writes
// ============================================================================

func (u *onboardingUsecase) UpdateRecord(ctx context.Context, sessionID uuid.UUID, patch *domain.RecordPatch) (*domain.SessionView, error) {
	if patch == nil {
		return nil, apperror.BadRequest("Request body is required")
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Invalid request body", err).
			WithDetails(map[string]interface{}{"errors": validation.FormatValidationErrors(err)})
	}

	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.Update(patch.Apply); err != nil {
		return nil, mapEngineError(err)
	}
	return w.View(), nil
}

func (u *onboardingUsecase) ToggleSkill(ctx context.Context, sessionID uuid.UUID, skill string, selected bool) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	err = w.Update(func(r *domain.Record) error {
		return r.ToggleSkill(skill, selected)
	})
	if err != nil {
		return nil, mapEngineError(err)
	}
	return w.View(), nil
}

// ============================================================================
// Validation & navigation
// ============================================================================

func (u *onboardingUsecase) ValidateStep(ctx context.Context, sessionID uuid.UUID, step domain.StepID) (*domain.StepValidation, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res, err := w.ValidateStep(step)
	if err != nil {
		return nil, mapEngineError(err)
	}
	recordValidation(res)
	return &res, nil
}

func (u *onboardingUsecase) Advance(ctx context.Context, sessionID uuid.UUID) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res, err := w.Advance()
	if res.Step != 0 {
		recordValidation(res)
	}
	if err != nil {
		return nil, mapEngineError(err)
	}

	view := w.View()
	logger.Log.Infow("onboarding step advanced", "session_id", sessionID, "step", view.CurrentStep)
	return view, nil
}

func (u *onboardingUsecase) Retreat(ctx context.Context, sessionID uuid.UUID) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.Retreat(); err != nil {
		return nil, mapEngineError(err)
	}
	return w.View(), nil
}

func (u *onboardingUsecase) JumpTo(ctx context.Context, sessionID uuid.UUID, step domain.StepID) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.JumpTo(step); err != nil {
		return nil, mapEngineError(err)
	}
	return w.View(), nil
}

func (u *onboardingUsecase) Summary(ctx context.Context, sessionID uuid.UUID) (*domain.ReviewSummary, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s := w.Summary()
	return &s, nil
}

// ============================================================================
// Submission
// ============================================================================

func (u *onboardingUsecase) Submit(ctx context.Context, sessionID uuid.UUID) (*domain.SubmissionReceipt, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithTimeout(ctx, u.cfg.SubmissionTimeout)
	defer cancel()

	start := time.Now()
	receipt, err := w.Submit(subCtx, onboarding.SubmitterFunc(func(ctx context.Context, rec *domain.Record) (*domain.SubmissionReceipt, error) {
		defer func() { metrics.SubmissionDuration.Observe(time.Since(start).Seconds()) }()
		return u.deliver(ctx, w, rec)
	}))
	if err != nil {
		metrics.Submissions.WithLabelValues(submissionOutcome(err)).Inc()
		logger.Log.Warnw("onboarding submission rejected", "session_id", sessionID, "error", err)
		return nil, mapEngineError(err)
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Log.Infow("onboarding submitted", "session_id", sessionID, "submission_id", receipt.SubmissionID)
	return receipt, nil
}

// deliver stores the snapshot and announces it. With a repository present
// the store is authoritative and a failed publish is only logged.
func (u *onboardingUsecase) deliver(ctx context.Context, w *onboarding.Wizard, rec *domain.Record) (*domain.SubmissionReceipt, error) {
	if u.repo == nil && u.publisher == nil {
		return nil, errNoSubmissionSink
	}

	sub := &domain.Submission{
		ID:          uuid.New(),
		SessionID:   w.ID(),
		SubmittedBy: w.Owner(),
		SubmittedAt: time.Now().UTC(),
		Record:      rec,
	}
	if pic := rec.ProfilePicture; pic != nil && len(pic.Content) > 0 {
		thumb, err := imaging.Thumbnail(pic.Content, thumbnailMaxDimension, thumbnailQuality)
		if err != nil {
			logger.Log.Warnw("profile thumbnail skipped", "session_id", w.ID(), "error", err)
		} else {
			sub.Thumbnail = thumb
		}
	}

	if u.repo != nil {
		if err := u.repo.SaveSubmission(ctx, sub); err != nil {
			return nil, err
		}
	}
	if u.publisher != nil {
		if err := u.publisher.PublishSubmitted(ctx, sub); err != nil {
			if u.repo == nil {
				return nil, err
			}
			logger.Log.Errorw("submission stored but event not published",
				"submission_id", sub.ID, "error", err)
		}
	}

	return &domain.SubmissionReceipt{SubmissionID: sub.ID, SubmittedAt: sub.SubmittedAt}, nil
}

func (u *onboardingUsecase) Reset(ctx context.Context, sessionID uuid.UUID) (*domain.SessionView, error) {
	w, err := u.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := w.Reset(); err != nil {
		return nil, mapEngineError(err)
	}
	return w.View(), nil
}

// ============================================================================
// Helpers
// ============================================================================

// session loads a wizard and enforces ownership. Sessions started without an
// authenticated subject are open to any caller.
func (u *onboardingUsecase) session(ctx context.Context, id uuid.UUID) (*onboarding.Wizard, error) {
	w, err := u.store.Get(id)
	if err != nil {
		return nil, mapEngineError(err)
	}

	if owner := w.Owner(); owner != "" {
		ctxUserID, _ := ctx.Value(domain.KeyUserID).(string)
		if ctxUserID == "" {
			return nil, apperror.Unauthorized("User not authenticated")
		}
		if ctxUserID != owner {
			return nil, apperror.Forbidden("You can only access your own onboarding session")
		}
	}
	return w, nil
}

func recordValidation(res domain.StepValidation) {
	outcome := metrics.OutcomePassed
	if !res.OK {
		outcome = metrics.OutcomeBlocked
	}
	metrics.StepValidations.WithLabelValues(strconv.Itoa(int(res.Step)), outcome).Inc()
}

func submissionOutcome(err error) string {
	var invalid *onboarding.RecordInvalidError
	var blocked *onboarding.StepBlockedError
	var failure *onboarding.SubmissionFailureError
	switch {
	case errors.As(err, &invalid), errors.As(err, &blocked):
		return metrics.OutcomeInvalid
	case errors.As(err, &failure):
		return metrics.OutcomeFailed
	}
	return metrics.OutcomeRejected
}

// mapEngineError translates wizard and record errors to HTTP-facing errors.
func mapEngineError(err error) error {
	var blocked *onboarding.StepBlockedError
	var invalid *onboarding.RecordInvalidError
	var failure *onboarding.SubmissionFailureError

	switch {
	case errors.As(err, &blocked):
		return apperror.UnprocessableEntity("Please fix the highlighted fields", map[string]interface{}{
			"step":         blocked.Step,
			"field_errors": blocked.FieldErrors,
		}, err)
	case errors.As(err, &invalid):
		return apperror.UnprocessableEntity("Onboarding record is invalid", map[string]interface{}{
			"steps":        invalid.Steps,
			"field_errors": invalid.FieldErrors,
		}, err)
	case errors.As(err, &failure):
		return apperror.BadGateway("Submission failed, please try again", err)
	case errors.Is(err, onboarding.ErrSessionNotFound):
		return apperror.NotFound("Onboarding session not found")
	case errors.Is(err, onboarding.ErrUnknownStep):
		return apperror.BadRequest("Unknown step")
	case errors.Is(err, domain.ErrSkillNotSelected), errors.Is(err, domain.ErrEmptySkill):
		return apperror.UnprocessableEntity(err.Error(), nil, err)
	case errors.Is(err, onboarding.ErrAlreadyFirstStep),
		errors.Is(err, onboarding.ErrNoNextStep),
		errors.Is(err, onboarding.ErrStepLocked),
		errors.Is(err, onboarding.ErrNotOnReviewStep),
		errors.Is(err, onboarding.ErrSubmissionPending),
		errors.Is(err, onboarding.ErrAlreadySubmitted):
		return apperror.Conflict(err.Error(), err)
	}
	return apperror.Internal(err)
}
