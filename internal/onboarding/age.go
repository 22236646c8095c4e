package onboarding

import (
	"time"

	"employee-onboarding-backend/internal/domain"
)

// Age returns completed years between dob and today. The year difference is
// reduced by one while today's month/day is still before the birthday.
func Age(dob, today domain.Date) int {
	age := today.Year - dob.Year
	if today.Month < dob.Month || (today.Month == dob.Month && today.Day < dob.Day) {
		age--
	}
	return age
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
func SystemClock() Clock { return systemClock{} }
