package postgres

import (
	"context"
	"fmt"
	"time"

	"employee-onboarding-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

// txBeginner is satisfied by *pgxpool.Pool and by pgxmock pools.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type onboardingRepo struct {
	db txBeginner
}

func NewOnboardingRepository(db txBeginner) domain.SubmissionRepository {
	return &onboardingRepo{db: db}
}

// ============================================================================
// Save Submission (Atomic Transaction)
// ============================================================================

func (r *onboardingRepo) SaveSubmission(ctx context.Context, sub *domain.Submission) error {
	rec := sub.Record
	if rec == nil {
		return fmt.Errorf("submission %s has no record", sub.ID)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	// 1. Submission row
	var pictureName, pictureMIME *string
	if rec.ProfilePicture != nil {
		pictureName = &rec.ProfilePicture.FileName
		pictureMIME = &rec.ProfilePicture.MIMEType
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO onboarding_submissions (
			id, session_id, submitted_by, submitted_at,
			full_name, email, phone_number, date_of_birth,
			profile_picture_name, profile_picture_mime, profile_thumbnail,
			department, position_title, start_date, job_type, salary_expectation, manager_id,
			primary_skills, working_hours_start, working_hours_end,
			remote_work_preference, manager_approved, extra_notes,
			contact_name, relationship, contact_phone_number,
			guardian_name, guardian_phone_number
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, $13, $14, $15, $16, $17,
			$18, $19, $20,
			$21, $22, $23,
			$24, $25, $26,
			$27, $28
		)
	`,
		sub.ID, sub.SessionID, nullString(sub.SubmittedBy), sub.SubmittedAt,
		rec.FullName, rec.Email, rec.PhoneNumber, dateValue(rec.DateOfBirth),
		pictureName, pictureMIME, sub.Thumbnail,
		string(rec.Department), rec.PositionTitle, dateValue(rec.StartDate), string(rec.JobType), rec.SalaryExpectation, rec.ManagerID,
		rec.PrimarySkills, rec.PreferredWorkingHours.Start, rec.PreferredWorkingHours.End,
		rec.RemoteWorkPreference, rec.ManagerApproved, nullString(rec.ExtraNotes),
		rec.ContactName, string(rec.Relationship), rec.ContactPhoneNumber,
		nullString(rec.GuardianName), nullString(rec.GuardianPhoneNumber),
	)
	if err != nil {
		return fmt.Errorf("failed to insert onboarding submission: %w", err)
	}

	// 2. Skill experience rows, in selection order
	for _, skill := range rec.PrimarySkills {
		_, err = tx.Exec(ctx, `
			INSERT INTO onboarding_submission_skills (submission_id, skill, years_experience)
			VALUES ($1, $2, $3)
		`, sub.ID, skill, rec.SkillExperience[skill])
		if err != nil {
			return fmt.Errorf("failed to insert skill %s: %w", skill, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func dateValue(d *domain.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
