package onboarding_test

import (
	"testing"
	"time"

	"employee-onboarding-backend/internal/catalog"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/onboarding"

	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

// Monday 2025-06-02
var testToday = time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *onboarding.Engine {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return onboarding.NewEngine(c, stubClock{now: testToday}, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

func date(s string) *domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

// validRecord passes every step on testToday.
func validRecord() *domain.Record {
	r := domain.NewRecord()
	r.FullName = "Jane Doe"
	r.Email = "jane.doe@example.com"
	r.PhoneNumber = "+1 555 123 4567"
	r.DateOfBirth = date("1990-05-15")

	r.SetDepartment("Engineering")
	r.PositionTitle = "Backend Engineer"
	r.StartDate = date("2025-06-09")
	r.JobType = domain.JobTypeFullTime
	r.SalaryExpectation = ptr(90000.0)
	r.ManagerID = "mgr-eng-1"

	_ = r.ToggleSkill("Go", true)
	_ = r.ToggleSkill("SQL", true)
	_ = r.ToggleSkill("Docker", true)
	_ = r.SetSkillExperience("Go", 5)
	r.RemoteWorkPreference = ptr(20)

	r.ContactName = "John Doe"
	r.Relationship = "Spouse"
	r.ContactPhoneNumber = "+1 555 987 6543"

	r.ConfirmInformation = ptr(true)
	return r
}
