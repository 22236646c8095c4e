package onboarding_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/onboarding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T, e *onboarding.Engine, step domain.StepID, r *domain.Record) domain.StepValidation {
	t.Helper()
	res, err := e.ValidateStep(step, r)
	require.NoError(t, err)
	return res
}

func TestValidateStep_ValidRecord(t *testing.T) {
	e := newEngine(t)
	r := validRecord()

	for step := domain.FirstStep; step <= domain.LastStep; step++ {
		res := validate(t, e, step, r)
		assert.True(t, res.OK, "step %d: %v", step, res.FieldErrors)
		assert.Empty(t, res.FieldErrors)
	}
}

func TestValidateStep_UnknownStep(t *testing.T) {
	e := newEngine(t)

	_, err := e.ValidateStep(6, validRecord())
	assert.ErrorIs(t, err, onboarding.ErrUnknownStep)

	_, err = e.ValidateStep(0, validRecord())
	assert.ErrorIs(t, err, onboarding.ErrUnknownStep)
}

func TestValidateStep_CollectsAllErrors(t *testing.T) {
	e := newEngine(t)

	t.Run("Should report every missing personal field in one pass", func(t *testing.T) {
		res := validate(t, e, domain.StepPersonalInfo, domain.NewRecord())
		assert.False(t, res.OK)
		assert.Equal(t, "Full name is required", res.FieldErrors["fullName"])
		assert.Equal(t, "Email is required", res.FieldErrors["email"])
		assert.Equal(t, "Phone number is required", res.FieldErrors["phoneNumber"])
		assert.Equal(t, "Date of birth is required", res.FieldErrors["dateOfBirth"])
		assert.NotContains(t, res.FieldErrors, "profilePicture")
	})

	t.Run("Should keep only the first failing rule of a field", func(t *testing.T) {
		r := validRecord()
		r.PhoneNumber = "12ab"
		res := validate(t, e, domain.StepPersonalInfo, r)
		assert.Equal(t, "Phone number must be at least 10 digits", res.FieldErrors["phoneNumber"])
	})

	t.Run("Should be idempotent on an unchanged record", func(t *testing.T) {
		r := domain.NewRecord()
		r.RemoteWorkPreference = ptr(80)
		first := validate(t, e, domain.StepSkillsPreferences, r)
		second := validate(t, e, domain.StepSkillsPreferences, r)
		assert.Equal(t, first, second)
	})
}

func TestPersonalInfoRules(t *testing.T) {
	e := newEngine(t)

	t.Run("Should reject an invalid email", func(t *testing.T) {
		r := validRecord()
		r.Email = "not-an-email"
		res := validate(t, e, domain.StepPersonalInfo, r)
		assert.Equal(t, "Invalid email address", res.FieldErrors["email"])
	})

	t.Run("Should reject employees under 18", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2007-12-31")
		res := validate(t, e, domain.StepPersonalInfo, r)
		assert.Equal(t, "You must be at least 18 years old", res.FieldErrors["dateOfBirth"])
	})

	t.Run("Should accept an 18th birthday that is today", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2007-06-02")
		res := validate(t, e, domain.StepPersonalInfo, r)
		assert.True(t, res.OK, res.FieldErrors)
	})

	t.Run("Should reject birth dates in the future or before 1900", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2030-01-01")
		assert.Equal(t, "Invalid date of birth", validate(t, e, domain.StepPersonalInfo, r).FieldErrors["dateOfBirth"])

		r.DateOfBirth = date("1899-12-31")
		assert.Equal(t, "Invalid date of birth", validate(t, e, domain.StepPersonalInfo, r).FieldErrors["dateOfBirth"])
	})

	t.Run("Should limit the profile picture size and type", func(t *testing.T) {
		r := validRecord()
		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.png", Size: 3 << 20, MIMEType: "image/png"}
		assert.Equal(t, "Max file size is 2MB", validate(t, e, domain.StepPersonalInfo, r).FieldErrors["profilePicture"])

		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.gif", Size: 1024, MIMEType: "image/gif"}
		assert.Equal(t, "Only .jpg, .jpeg and .png formats are supported",
			validate(t, e, domain.StepPersonalInfo, r).FieldErrors["profilePicture"])

		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.jpg", Size: 1024, MIMEType: "IMAGE/JPEG"}
		assert.True(t, validate(t, e, domain.StepPersonalInfo, r).OK)
	})

	t.Run("Should check uploaded picture content against the descriptor", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
		content := buf.Bytes()

		r := validRecord()
		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.png", Size: int64(len(content)), MIMEType: "image/png", Content: content}
		assert.True(t, validate(t, e, domain.StepPersonalInfo, r).OK)

		r.ProfilePicture.Size = 10
		assert.Equal(t, "Profile picture size does not match its content",
			validate(t, e, domain.StepPersonalInfo, r).FieldErrors["profilePicture"])

		text := []byte("plain text pretending to be a png")
		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.png", Size: int64(len(text)), MIMEType: "image/png", Content: text}
		assert.Equal(t, "Profile picture content is not a .jpg or .png image",
			validate(t, e, domain.StepPersonalInfo, r).FieldErrors["profilePicture"])

		r.ProfilePicture = &domain.ProfilePicture{FileName: "me.jpg", Size: int64(len(content)), MIMEType: "image/jpeg", Content: content}
		assert.Equal(t, "Profile picture file name does not match its content",
			validate(t, e, domain.StepPersonalInfo, r).FieldErrors["profilePicture"])
	})
}

func TestSalaryBand(t *testing.T) {
	e := newEngine(t)

	cases := []struct {
		name    string
		jobType domain.JobType
		salary  float64
		ok      bool
	}{
		{"Should accept an hourly rate for Contract", domain.JobTypeContract, 100, true},
		{"Should reject an annual figure for Contract", domain.JobTypeContract, 40000, false},
		{"Should not let a Contract salary pass against the annual band", domain.JobTypeContract, 100000, false},
		{"Should reject an hourly rate for Full-time", domain.JobTypeFullTime, 100, false},
		{"Should accept an annual figure for Full-time", domain.JobTypeFullTime, 30000, true},
		{"Should accept the annual upper bound", domain.JobTypeFullTime, 200000, true},
		{"Should apply the annual band to other job types", "Part-time", 151, false},
		{"Should accept the hourly bounds", domain.JobTypeContract, 50, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			r.JobType = tc.jobType
			r.SalaryExpectation = ptr(tc.salary)

			res := validate(t, e, domain.StepJobDetails, r)
			assert.Equal(t, tc.ok, res.OK, res.FieldErrors)
			if !tc.ok {
				assert.Contains(t, res.FieldErrors, "salaryExpectation")
				assert.Len(t, res.FieldErrors, 1)
			}
		})
	}

	t.Run("Should skip the band when the job type is unknown", func(t *testing.T) {
		r := validRecord()
		r.JobType = "Freelance"
		r.SalaryExpectation = ptr(5.0)

		res := validate(t, e, domain.StepJobDetails, r)
		assert.Equal(t, "Invalid job type", res.FieldErrors["jobType"])
		assert.NotContains(t, res.FieldErrors, "salaryExpectation")
	})
}

func TestWeekendStart(t *testing.T) {
	e := newEngine(t)

	t.Run("Should reject a Saturday start for HR", func(t *testing.T) {
		r := validRecord()
		r.SetDepartment(domain.DepartmentHR)
		r.ManagerID = "mgr-hr-1"
		r.StartDate = date("2025-06-07")

		res := validate(t, e, domain.StepJobDetails, r)
		assert.False(t, res.OK)
		assert.Equal(t, "HR and Finance employees cannot start on weekends", res.FieldErrors["startDate"])
	})

	t.Run("Should reject a Friday start for Finance", func(t *testing.T) {
		r := validRecord()
		r.SetDepartment(domain.DepartmentFinance)
		r.ManagerID = "mgr-fin-1"
		r.StartDate = date("2025-06-06")

		res := validate(t, e, domain.StepJobDetails, r)
		assert.Contains(t, res.FieldErrors, "startDate")
	})

	t.Run("Should accept the same Saturday for Engineering", func(t *testing.T) {
		r := validRecord()
		r.StartDate = date("2025-06-07")

		res := validate(t, e, domain.StepJobDetails, r)
		assert.True(t, res.OK, res.FieldErrors)
	})

	t.Run("Should accept a Monday start for HR", func(t *testing.T) {
		r := validRecord()
		r.SetDepartment(domain.DepartmentHR)
		r.ManagerID = "mgr-hr-1"
		r.StartDate = date("2025-06-09")

		res := validate(t, e, domain.StepJobDetails, r)
		assert.True(t, res.OK, res.FieldErrors)
	})
}

func TestJobDetailsRules(t *testing.T) {
	e := newEngine(t)

	t.Run("Should bound the start date to the next 90 days", func(t *testing.T) {
		r := validRecord()
		r.StartDate = date("2025-06-01")
		assert.Equal(t, "Start date must be within the next 90 days",
			validate(t, e, domain.StepJobDetails, r).FieldErrors["startDate"])

		r.StartDate = date("2025-08-31")
		assert.True(t, validate(t, e, domain.StepJobDetails, r).OK)

		r.StartDate = date("2025-09-01")
		assert.Contains(t, validate(t, e, domain.StepJobDetails, r).FieldErrors, "startDate")
	})

	t.Run("Should require a manager from the selected department", func(t *testing.T) {
		r := validRecord()
		r.ManagerID = "mgr-hr-1"
		assert.Equal(t, "Selected manager does not belong to the chosen department",
			validate(t, e, domain.StepJobDetails, r).FieldErrors["managerId"])

		r.ManagerID = "mgr-unknown"
		assert.Equal(t, "Unknown manager", validate(t, e, domain.StepJobDetails, r).FieldErrors["managerId"])
	})

	t.Run("Should require the manager again after a department change", func(t *testing.T) {
		r := validRecord()
		r.SetDepartment("Design")
		assert.Equal(t, "Manager is required", validate(t, e, domain.StepJobDetails, r).FieldErrors["managerId"])
	})

	t.Run("Should reject a short position title and an unknown department", func(t *testing.T) {
		r := validRecord()
		r.PositionTitle = "QA"
		r.Department = "Legal"
		res := validate(t, e, domain.StepJobDetails, r)
		assert.Equal(t, "Position title must be at least 3 characters", res.FieldErrors["positionTitle"])
		assert.Equal(t, "Invalid department", res.FieldErrors["department"])
	})
}

func TestSkillsRules(t *testing.T) {
	e := newEngine(t)

	t.Run("Should require at least three skills", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, r.ToggleSkill("Docker", false))
		assert.Equal(t, "Please select at least 3 skills",
			validate(t, e, domain.StepSkillsPreferences, r).FieldErrors["primarySkills"])

		r.PrimarySkills = nil
		r.SkillExperience = nil
		assert.Equal(t, "Please select at least 3 skills",
			validate(t, e, domain.StepSkillsPreferences, r).FieldErrors["primarySkills"])
	})

	t.Run("Should reject skills outside the department catalog", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, r.ToggleSkill("Payroll", true))
		assert.Equal(t, "Payroll is not offered for the Engineering department",
			validate(t, e, domain.StepSkillsPreferences, r).FieldErrors["primarySkills"])
	})

	t.Run("Should detect stale or missing experience entries", func(t *testing.T) {
		r := validRecord()
		r.SkillExperience["Kubernetes"] = 2
		assert.Contains(t, validate(t, e, domain.StepSkillsPreferences, r).FieldErrors, "skillExperience")

		r = validRecord()
		delete(r.SkillExperience, "Go")
		assert.Contains(t, validate(t, e, domain.StepSkillsPreferences, r).FieldErrors, "skillExperience")
	})

	t.Run("Should reject a repeated skill carrying a stale experience key", func(t *testing.T) {
		r := validRecord()
		r.PrimarySkills = []string{"Go", "Go", "SQL"}
		r.SkillExperience = map[string]int{"Go": 1, "SQL": 1, "Docker": 3}

		res := validate(t, e, domain.StepSkillsPreferences, r)
		assert.False(t, res.OK)
		assert.Equal(t, "Go is selected more than once", res.FieldErrors["primarySkills"])
		assert.Equal(t, "Experience must be recorded for exactly the selected skills", res.FieldErrors["skillExperience"])

		composite := e.ValidateRecord(r)
		assert.False(t, composite.OK)
		assert.Contains(t, composite.ByStep[domain.StepSkillsPreferences], "primarySkills")
		assert.Contains(t, composite.ByStep[domain.StepSkillsPreferences], "skillExperience")
	})

	t.Run("Should count distinct skills toward the minimum", func(t *testing.T) {
		r := validRecord()
		r.PrimarySkills = []string{"Go", "SQL", "SQL", "Go"}
		r.SkillExperience = map[string]int{"Go": 1, "SQL": 1}

		res := validate(t, e, domain.StepSkillsPreferences, r)
		assert.Contains(t, res.FieldErrors["primarySkills"], "selected more than once")
		assert.NotContains(t, res.FieldErrors, "skillExperience")
	})

	t.Run("Should range check experience per skill", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, r.SetSkillExperience("SQL", 21))
		res := validate(t, e, domain.StepSkillsPreferences, r)
		assert.Equal(t, "Experience must be between 0 and 20 years", res.FieldErrors["skillExperience.SQL"])
		assert.NotContains(t, res.FieldErrors, "skillExperience")
	})

	t.Run("Should validate working hours and notes", func(t *testing.T) {
		r := validRecord()
		r.PreferredWorkingHours = domain.WorkingHours{Start: "9:00", End: "24:00"}
		r.ExtraNotes = string(bytes.Repeat([]byte("a"), 501))

		res := validate(t, e, domain.StepSkillsPreferences, r)
		assert.Equal(t, "Invalid time format (HH:MM)", res.FieldErrors["preferredWorkingHours.start"])
		assert.Equal(t, "Invalid time format (HH:MM)", res.FieldErrors["preferredWorkingHours.end"])
		assert.Equal(t, "Notes cannot exceed 500 characters", res.FieldErrors["extraNotes"])
	})
}

func TestManagerApprovalObligation(t *testing.T) {
	e := newEngine(t)

	t.Run("Should not require approval at 50 percent", func(t *testing.T) {
		r := validRecord()
		r.RemoteWorkPreference = ptr(50)
		assert.True(t, validate(t, e, domain.StepSkillsPreferences, r).OK)
	})

	t.Run("Should require approval above 50 percent", func(t *testing.T) {
		r := validRecord()
		r.RemoteWorkPreference = ptr(51)
		assert.Equal(t, "Manager approval required for remote work over 50%",
			validate(t, e, domain.StepSkillsPreferences, r).FieldErrors["managerApproved"])
	})

	t.Run("Should treat an explicit false as missing approval", func(t *testing.T) {
		r := validRecord()
		r.RemoteWorkPreference = ptr(51)
		r.ManagerApproved = ptr(false)
		assert.Contains(t, validate(t, e, domain.StepSkillsPreferences, r).FieldErrors, "managerApproved")
	})

	t.Run("Should pass above 50 percent with approval", func(t *testing.T) {
		r := validRecord()
		r.RemoteWorkPreference = ptr(51)
		r.ManagerApproved = ptr(true)
		assert.True(t, validate(t, e, domain.StepSkillsPreferences, r).OK)
	})
}

func TestGuardianObligation(t *testing.T) {
	e := newEngine(t)

	t.Run("Should require both guardian fields at age 20", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2004-06-03")

		res := validate(t, e, domain.StepEmergencyContact, r)
		assert.False(t, res.OK)
		assert.Equal(t, "Guardian name is required for employees under 21", res.FieldErrors["guardianName"])
		assert.Equal(t, "Guardian phone number is required for employees under 21", res.FieldErrors["guardianPhoneNumber"])
	})

	t.Run("Should check the guardian phone even when the name is given", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2004-06-03")
		r.GuardianName = "Mary Doe"

		res := validate(t, e, domain.StepEmergencyContact, r)
		assert.NotContains(t, res.FieldErrors, "guardianName")
		assert.Contains(t, res.FieldErrors, "guardianPhoneNumber")
	})

	t.Run("Should not require guardian fields at age 21", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2004-06-02")
		assert.True(t, validate(t, e, domain.StepEmergencyContact, r).OK)
	})

	t.Run("Should require guardian fields while the birth date is unknown", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = nil
		assert.Contains(t, validate(t, e, domain.StepEmergencyContact, r).FieldErrors, "guardianName")
	})

	t.Run("Should re-evaluate after the birth date changes", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2004-06-03")
		assert.False(t, validate(t, e, domain.StepEmergencyContact, r).OK)

		r.DateOfBirth = date("1990-01-01")
		assert.True(t, validate(t, e, domain.StepEmergencyContact, r).OK)
	})
}

func TestResolveObligations(t *testing.T) {
	today := domain.NewDate(2025, 6, 2)

	t.Run("Should tag guardian obligations to the emergency step", func(t *testing.T) {
		r := validRecord()
		r.DateOfBirth = date("2005-01-01")

		obs := onboarding.ResolveObligations(r, today)
		require.Len(t, obs, 2)
		for _, ob := range obs {
			assert.Equal(t, domain.StepEmergencyContact, ob.Step)
			assert.Equal(t, onboarding.ReasonUnderGuardianAge, ob.Reason)
		}
	})

	t.Run("Should produce nothing for an adult with low remote share", func(t *testing.T) {
		assert.Empty(t, onboarding.ResolveObligations(validRecord(), today))
	})

	t.Run("Should tag manager approval to the skills step", func(t *testing.T) {
		r := validRecord()
		r.RemoteWorkPreference = ptr(90)

		obs := onboarding.ResolveObligations(r, today)
		require.Len(t, obs, 1)
		assert.Equal(t, domain.StepSkillsPreferences, obs[0].Step)
		assert.Equal(t, "managerApproved", obs[0].Field.Name)
	})
}

func TestReviewAndComposite(t *testing.T) {
	e := newEngine(t)

	t.Run("Should require confirmation to be true", func(t *testing.T) {
		r := validRecord()
		r.ConfirmInformation = ptr(false)
		assert.Equal(t, "You must confirm that all information is correct",
			validate(t, e, domain.StepReview, r).FieldErrors["confirmInformation"])

		r.ConfirmInformation = nil
		assert.False(t, validate(t, e, domain.StepReview, r).OK)
	})

	t.Run("Should pass a valid record as a whole", func(t *testing.T) {
		res := e.ValidateRecord(validRecord())
		assert.True(t, res.OK)
		assert.Empty(t, res.FieldErrors)
		assert.Empty(t, res.ByStep)
	})

	t.Run("Should union errors across steps", func(t *testing.T) {
		r := validRecord()
		r.Email = ""
		r.RemoteWorkPreference = ptr(75)
		r.ContactName = ""

		res := e.ValidateRecord(r)
		assert.False(t, res.OK)
		assert.Contains(t, res.ByStep[domain.StepPersonalInfo], "email")
		assert.Contains(t, res.ByStep[domain.StepSkillsPreferences], "managerApproved")
		assert.Contains(t, res.ByStep[domain.StepEmergencyContact], "contactName")
		assert.Len(t, res.FieldErrors, 3)
	})
}

func TestSummary(t *testing.T) {
	e := newEngine(t)

	r := validRecord()
	s := e.Summary(r)
	require.NotNil(t, s.Age)
	assert.Equal(t, 35, *s.Age)
	assert.Equal(t, "Alice Johnson", s.ManagerName)
	assert.Equal(t, "/year", s.SalaryUnit)
	assert.False(t, s.GuardianRequired)

	r.JobType = domain.JobTypeContract
	r.DateOfBirth = nil
	s = e.Summary(r)
	assert.Nil(t, s.Age)
	assert.Equal(t, "/hour", s.SalaryUnit)
	assert.True(t, s.GuardianRequired)
}
