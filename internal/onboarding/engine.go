package onboarding

import (
	"fmt"
	"time"

	"employee-onboarding-backend/internal/domain"
)

// CompositeResult is the outcome of validating every step at once.
type CompositeResult struct {
	OK          bool
	FieldErrors domain.FieldErrors
	ByStep      map[domain.StepID]domain.FieldErrors
}

// Engine evaluates step schemas against a record. It holds no record state;
// every call is a pure function of the record and the current day.
type Engine struct {
	catalog  *domain.Catalog
	clock    Clock
	location *time.Location
}

func NewEngine(catalog *domain.Catalog, clock Clock, location *time.Location) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	if location == nil {
		location = time.UTC
	}
	return &Engine{catalog: catalog, clock: clock, location: location}
}

func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Today is the calendar day all date rules are evaluated against.
func (e *Engine) Today() domain.Date {
	return domain.DateOf(e.clock.Now().In(e.location))
}

// ValidateStep runs one step's schema, including the obligations the record
// currently triggers, and returns every field error in one pass.
func (e *Engine) ValidateStep(step domain.StepID, r *domain.Record) (domain.StepValidation, error) {
	if !step.Valid() {
		return domain.StepValidation{}, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	today := e.Today()
	schema := stepSchemas(e.catalog, today)[step]
	return result(step, schema.With(ResolveObligations(r, today)).Validate(r)), nil
}

// ValidateRecord runs all five steps against the record regardless of which
// steps a wizard believes are completed.
func (e *Engine) ValidateRecord(r *domain.Record) CompositeResult {
	today := e.Today()
	schemas := stepSchemas(e.catalog, today)
	obligations := ResolveObligations(r, today)

	out := CompositeResult{
		FieldErrors: domain.FieldErrors{},
		ByStep:      make(map[domain.StepID]domain.FieldErrors, len(schemas)),
	}
	for step := domain.FirstStep; step <= domain.LastStep; step++ {
		errs := schemas[step].With(obligations).Validate(r)
		if len(errs) > 0 {
			out.ByStep[step] = errs
			out.FieldErrors.Merge(errs)
		}
	}
	out.OK = len(out.FieldErrors) == 0
	return out
}

// Summary derives the values the review step displays.
func (e *Engine) Summary(r *domain.Record) domain.ReviewSummary {
	today := e.Today()
	s := domain.ReviewSummary{
		GuardianRequired: GuardianRequired(r, today),
		Record:           r,
	}
	if r.DateOfBirth != nil && !r.DateOfBirth.IsZero() {
		age := Age(*r.DateOfBirth, today)
		s.Age = &age
	}
	if m, ok := e.catalog.Manager(r.ManagerID); ok {
		s.ManagerName = m.Name
	}
	switch {
	case r.JobType == domain.JobTypeContract:
		s.SalaryUnit = "/hour"
	case r.JobType != "":
		s.SalaryUnit = "/year"
	}
	return s
}

func result(step domain.StepID, errs domain.FieldErrors) domain.StepValidation {
	if len(errs) == 0 {
		return domain.StepValidation{Step: step, OK: true}
	}
	return domain.StepValidation{Step: step, OK: false, FieldErrors: errs}
}
