package onboarding

import (
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/validation"
)

const (
	GuardianAgeThreshold       = 21
	RemoteApprovalThreshold    = 50
	ReasonUnderGuardianAge     = "under_guardian_age"
	ReasonRemoteNeedsApproval  = "remote_needs_approval"
	msgGuardianNameRequired    = "Guardian name is required for employees under 21"
	msgGuardianPhoneRequired   = "Guardian phone number is required for employees under 21"
	msgGuardianPhoneTooShort   = "Guardian phone number must be at least 10 digits"
	msgGuardianPhoneInvalid    = "Guardian phone number contains invalid characters"
	msgManagerApprovalRequired = "Manager approval required for remote work over 50%"
)

// Obligation is a field requirement that only exists because of the value of
// some other field. Reason tags the condition that produced it.
type Obligation struct {
	Step   domain.StepID
	Reason string
	Field  Field
}

// GuardianRequired reports whether guardian contact must be given. An unknown
// date of birth is treated as under age.
func GuardianRequired(r *domain.Record, today domain.Date) bool {
	if r.DateOfBirth == nil || r.DateOfBirth.IsZero() {
		return true
	}
	return Age(*r.DateOfBirth, today) < GuardianAgeThreshold
}

// ManagerApprovalRequired reports whether the remote share needs sign-off.
func ManagerApprovalRequired(r *domain.Record) bool {
	return r.RemoteWorkPreference != nil && *r.RemoteWorkPreference > RemoteApprovalThreshold
}

// ResolveObligations derives the extra requirements of the record as it is
// now. It reads the whole record, so age-driven rules land in the emergency
// contact step although the birth date belongs to personal info.
func ResolveObligations(r *domain.Record, today domain.Date) []Obligation {
	var out []Obligation

	if GuardianRequired(r, today) {
		out = append(out,
			Obligation{
				Step:   domain.StepEmergencyContact,
				Reason: ReasonUnderGuardianAge,
				Field: Field{
					Name:  "guardianName",
					Value: func(r *domain.Record) interface{} { return r.GuardianName },
					Rules: []validation.Rule{validation.Required(msgGuardianNameRequired)},
				},
			},
			Obligation{
				Step:   domain.StepEmergencyContact,
				Reason: ReasonUnderGuardianAge,
				Field: Field{
					Name:  "guardianPhoneNumber",
					Value: func(r *domain.Record) interface{} { return r.GuardianPhoneNumber },
					Rules: []validation.Rule{
						validation.Required(msgGuardianPhoneRequired),
						validation.MinLength(10, msgGuardianPhoneTooShort),
						validation.Tag("valid_phone", msgGuardianPhoneInvalid),
					},
				},
			},
		)
	}

	if ManagerApprovalRequired(r) {
		out = append(out, Obligation{
			Step:   domain.StepSkillsPreferences,
			Reason: ReasonRemoteNeedsApproval,
			Field: Field{
				Name:  "managerApproved",
				Value: func(r *domain.Record) interface{} { return r.ManagerApproved },
				Rules: []validation.Rule{validation.MustBeTrue(msgManagerApprovalRequired)},
			},
		})
	}

	return out
}
