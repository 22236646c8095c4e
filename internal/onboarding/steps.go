package onboarding

import (
	"fmt"
	"slices"
	"time"

	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/imaging"
	"employee-onboarding-backend/pkg/validation"
)

const (
	MaxProfilePictureBytes = 2 << 20
	StartDateWindowDays    = 90
	MinimumAge             = 18
	MinPrimarySkills       = 3
	MaxSkillExperience     = 20
	MaxExtraNotes          = 500
	MinPhoneLength         = 10
)

// Salary bands by job type. Contract is hourly, everything else annual.
const (
	HourlyMin = 50
	HourlyMax = 150
	AnnualMin = 30000
	AnnualMax = 200000
)

var (
	AllowedPictureTypes = []string{"image/jpeg", "image/jpg", "image/png"}
	earliestBirthDate   = domain.NewDate(1900, time.January, 1)
	weekendDepartments  = []domain.Department{domain.DepartmentHR, domain.DepartmentFinance}
)

// stepSchemas builds the five step contracts for one evaluation day. Date
// bounds depend on today, so schemas are not cached.
func stepSchemas(c *domain.Catalog, today domain.Date) map[domain.StepID]Schema {
	return map[domain.StepID]Schema{
		domain.StepPersonalInfo:      personalInfoSchema(today),
		domain.StepJobDetails:        jobDetailsSchema(c, today),
		domain.StepSkillsPreferences: skillsSchema(c),
		domain.StepEmergencyContact:  emergencyContactSchema(c),
		domain.StepReview:            reviewSchema(),
	}
}

func personalInfoSchema(today domain.Date) Schema {
	return Schema{
		Step: domain.StepPersonalInfo,
		Fields: []Field{
			{
				Name:  "fullName",
				Value: func(r *domain.Record) interface{} { return r.FullName },
				Rules: []validation.Rule{
					validation.Required("Full name is required"),
					validation.Tag("valid_name", "Full name contains invalid characters"),
				},
			},
			{
				Name:  "email",
				Value: func(r *domain.Record) interface{} { return r.Email },
				Rules: []validation.Rule{
					validation.Required("Email is required"),
					validation.Email("Invalid email address"),
				},
			},
			{
				Name:  "phoneNumber",
				Value: func(r *domain.Record) interface{} { return r.PhoneNumber },
				Rules: phoneRules("Phone number"),
			},
			{
				Name:  "dateOfBirth",
				Value: func(r *domain.Record) interface{} { return r.DateOfBirth },
				Rules: []validation.Rule{
					validation.Required("Date of birth is required"),
					validation.DateRange(earliestBirthDate.Time(), today.Time(), "Invalid date of birth"),
				},
			},
			{
				Name:  "profilePicture",
				Value: func(r *domain.Record) interface{} { return r.ProfilePicture },
				Rules: []validation.Rule{
					validation.FileConstraint(MaxProfilePictureBytes, AllowedPictureTypes,
						"Max file size is 2MB", "Only .jpg, .jpeg and .png formats are supported"),
				},
			},
		},
		Refinements: []Refinement{
			{Name: "minimum_age", Check: minimumAge(today)},
			{Name: "picture_content", Check: pictureContent},
		},
	}
}

func jobDetailsSchema(c *domain.Catalog, today domain.Date) Schema {
	return Schema{
		Step: domain.StepJobDetails,
		Fields: []Field{
			{
				Name:  "department",
				Value: func(r *domain.Record) interface{} { return r.Department },
				Rules: []validation.Rule{
					validation.Required("Department is required"),
					validation.OneOf(domain.DepartmentNames(c.Departments), "Invalid department"),
				},
			},
			{
				Name:  "positionTitle",
				Value: func(r *domain.Record) interface{} { return r.PositionTitle },
				Rules: []validation.Rule{
					validation.Required("Position title is required"),
					validation.MinLength(3, "Position title must be at least 3 characters"),
				},
			},
			{
				Name:  "startDate",
				Value: func(r *domain.Record) interface{} { return r.StartDate },
				Rules: []validation.Rule{
					validation.Required("Start date is required"),
					validation.DateRange(today.Time(), today.AddDays(StartDateWindowDays).Time(),
						"Start date must be within the next 90 days"),
				},
			},
			{
				Name:  "jobType",
				Value: func(r *domain.Record) interface{} { return r.JobType },
				Rules: []validation.Rule{
					validation.Required("Job type is required"),
					validation.OneOf(domain.JobTypeNames(c.JobTypes), "Invalid job type"),
				},
			},
			{
				Name:  "salaryExpectation",
				Value: func(r *domain.Record) interface{} { return r.SalaryExpectation },
				Rules: []validation.Rule{validation.Required("Salary expectation is required")},
			},
			{
				Name:  "managerId",
				Value: func(r *domain.Record) interface{} { return r.ManagerID },
				Rules: []validation.Rule{validation.Required("Manager is required")},
			},
		},
		Refinements: []Refinement{
			{Name: "salary_band", Check: salaryBand(c)},
			{Name: "weekend_start", Check: weekendStart},
			{Name: "manager_department", Check: managerInDepartment(c)},
		},
	}
}

func skillsSchema(c *domain.Catalog) Schema {
	return Schema{
		Step: domain.StepSkillsPreferences,
		Fields: []Field{
			{
				Name:  "primarySkills",
				Value: func(r *domain.Record) interface{} { return r.PrimarySkills },
				Rules: []validation.Rule{
					validation.Required("Please select at least 3 skills"),
					validation.MinLength(MinPrimarySkills, "Please select at least 3 skills"),
				},
			},
			{
				Name:  "preferredWorkingHours.start",
				Value: func(r *domain.Record) interface{} { return r.PreferredWorkingHours.Start },
				Rules: clockRules("Start time"),
			},
			{
				Name:  "preferredWorkingHours.end",
				Value: func(r *domain.Record) interface{} { return r.PreferredWorkingHours.End },
				Rules: clockRules("End time"),
			},
			{
				Name:  "remoteWorkPreference",
				Value: func(r *domain.Record) interface{} { return r.RemoteWorkPreference },
				Rules: []validation.Rule{
					validation.Required("Remote work preference is required"),
					validation.NumberRange(0, 100, "Remote work preference must be between 0 and 100"),
				},
			},
			{
				Name:  "extraNotes",
				Value: func(r *domain.Record) interface{} { return r.ExtraNotes },
				Rules: []validation.Rule{validation.MaxLength(MaxExtraNotes, "Notes cannot exceed 500 characters")},
			},
		},
		Refinements: []Refinement{
			{Name: "skills_in_catalog", Check: skillsInCatalog(c)},
			{Name: "skill_experience", Check: skillExperience},
		},
	}
}

func emergencyContactSchema(c *domain.Catalog) Schema {
	return Schema{
		Step: domain.StepEmergencyContact,
		Fields: []Field{
			{
				Name:  "contactName",
				Value: func(r *domain.Record) interface{} { return r.ContactName },
				Rules: []validation.Rule{validation.Required("Contact name is required")},
			},
			{
				Name:  "relationship",
				Value: func(r *domain.Record) interface{} { return r.Relationship },
				Rules: []validation.Rule{
					validation.Required("Relationship is required"),
					validation.OneOf(domain.RelationshipNames(c.Relationships), "Invalid relationship"),
				},
			},
			{
				Name:  "contactPhoneNumber",
				Value: func(r *domain.Record) interface{} { return r.ContactPhoneNumber },
				Rules: phoneRules("Phone number"),
			},
		},
	}
}

func reviewSchema() Schema {
	return Schema{
		Step: domain.StepReview,
		Fields: []Field{
			{
				Name:  "confirmInformation",
				Value: func(r *domain.Record) interface{} { return r.ConfirmInformation },
				Rules: []validation.Rule{
					validation.MustBeTrue("You must confirm that all information is correct"),
				},
			},
		},
	}
}

func phoneRules(label string) []validation.Rule {
	return []validation.Rule{
		validation.Required(label + " is required"),
		validation.MinLength(MinPhoneLength, label+" must be at least 10 digits"),
		validation.Tag("valid_phone", label+" contains invalid characters"),
	}
}

func clockRules(label string) []validation.Rule {
	return []validation.Rule{
		validation.Required(label + " is required"),
		validation.Pattern(validation.ClockRegex, "Invalid time format (HH:MM)"),
	}
}

// ============================================================================
// Refinements
// ============================================================================

func minimumAge(today domain.Date) func(r *domain.Record) domain.FieldErrors {
	return func(r *domain.Record) domain.FieldErrors {
		if r.DateOfBirth == nil || r.DateOfBirth.IsZero() || r.DateOfBirth.After(today) {
			return nil
		}
		if Age(*r.DateOfBirth, today) < MinimumAge {
			return domain.FieldErrors{"dateOfBirth": "You must be at least 18 years old"}
		}
		return nil
	}
}

// pictureContent checks uploaded bytes against the declared descriptor.
func pictureContent(r *domain.Record) domain.FieldErrors {
	p := r.ProfilePicture
	if p == nil || len(p.Content) == 0 {
		return nil
	}
	if int64(len(p.Content)) != p.Size {
		return domain.FieldErrors{"profilePicture": "Profile picture size does not match its content"}
	}
	sniffed := imaging.DetectMIME(p.Content)
	if !slices.Contains(AllowedPictureTypes, sniffed) {
		return domain.FieldErrors{"profilePicture": "Profile picture content is not a .jpg or .png image"}
	}
	if !imaging.ExtensionMatches(p.FileName, sniffed) {
		return domain.FieldErrors{"profilePicture": "Profile picture file name does not match its content"}
	}
	return nil
}

// salaryBand picks exactly one range by job type. Without a known job type no
// band applies and the jobType field reports the problem.
func salaryBand(c *domain.Catalog) func(r *domain.Record) domain.FieldErrors {
	hourly := validation.NumberRange(HourlyMin, HourlyMax, "Hourly rate must be between $50 and $150")
	annual := validation.NumberRange(AnnualMin, AnnualMax, "Annual salary must be between $30,000 and $200,000")

	return func(r *domain.Record) domain.FieldErrors {
		if r.SalaryExpectation == nil || !c.HasJobType(r.JobType) {
			return nil
		}
		rule := annual
		if r.JobType == domain.JobTypeContract {
			rule = hourly
		}
		if ok, reason := rule.Check(*r.SalaryExpectation); !ok {
			return domain.FieldErrors{"salaryExpectation": reason}
		}
		return nil
	}
}

func weekendStart(r *domain.Record) domain.FieldErrors {
	if r.StartDate == nil || r.StartDate.IsZero() || !slices.Contains(weekendDepartments, r.Department) {
		return nil
	}
	switch r.StartDate.Weekday() {
	case time.Friday, time.Saturday:
		return domain.FieldErrors{"startDate": "HR and Finance employees cannot start on weekends"}
	}
	return nil
}

func managerInDepartment(c *domain.Catalog) func(r *domain.Record) domain.FieldErrors {
	return func(r *domain.Record) domain.FieldErrors {
		if r.ManagerID == "" {
			return nil
		}
		m, ok := c.Manager(r.ManagerID)
		if !ok {
			return domain.FieldErrors{"managerId": "Unknown manager"}
		}
		if m.Department != r.Department {
			return domain.FieldErrors{"managerId": "Selected manager does not belong to the chosen department"}
		}
		return nil
	}
}

func skillsInCatalog(c *domain.Catalog) func(r *domain.Record) domain.FieldErrors {
	return func(r *domain.Record) domain.FieldErrors {
		offered := c.SkillsFor(r.Department)
		for _, s := range r.PrimarySkills {
			if !slices.Contains(offered, s) {
				if r.Department == "" {
					return domain.FieldErrors{"primarySkills": "Select a department before choosing skills"}
				}
				return domain.FieldErrors{"primarySkills": fmt.Sprintf("%s is not offered for the %s department", s, r.Department)}
			}
		}
		return nil
	}
}

// skillExperience requires the selected skills to be distinct and the
// experience keys to be exactly that set, then range-checks each value under
// its own path.
func skillExperience(r *domain.Record) domain.FieldErrors {
	errs := domain.FieldErrors{}
	const mismatch = "Experience must be recorded for exactly the selected skills"

	selected := make(map[string]struct{}, len(r.PrimarySkills))
	for _, s := range r.PrimarySkills {
		if _, dup := selected[s]; dup {
			errs["primarySkills"] = fmt.Sprintf("%s is selected more than once", s)
		}
		selected[s] = struct{}{}
	}
	if len(r.PrimarySkills) > 0 && len(selected) < MinPrimarySkills {
		errs.Merge(domain.FieldErrors{"primarySkills": "Please select at least 3 skills"})
	}

	for s := range r.SkillExperience {
		if _, ok := selected[s]; !ok {
			errs["skillExperience"] = mismatch
		}
	}

	years := validation.NumberRange(0, MaxSkillExperience, "Experience must be between 0 and 20 years")
	for s := range selected {
		v, ok := r.SkillExperience[s]
		if !ok {
			errs["skillExperience"] = mismatch
			continue
		}
		if ok, reason := years.Check(v); !ok {
			errs["skillExperience."+s] = reason
		}
	}
	return errs
}
