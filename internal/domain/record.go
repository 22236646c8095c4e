package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrSkillNotSelected = errors.New("skill is not among the selected primary skills")
	ErrEmptySkill       = errors.New("skill name must not be empty")
)

// ProfilePicture describes an uploaded image. Content is optional; when it is
// present it is sniffed and used to build a thumbnail.
type ProfilePicture struct {
	FileName string `json:"fileName" validate:"max=255"`
	Size     int64  `json:"size" validate:"gte=0"`
	MIMEType string `json:"mimeType" validate:"max=100"`
	Content  []byte `json:"content,omitempty" validate:"max=4194304"`
}

func (p ProfilePicture) FileSize() int64 { return p.Size }

func (p ProfilePicture) FileMIME() string { return p.MIMEType }

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Record is the single aggregate behind every wizard step. Steps are views
// over it; nothing is copied per step.
type Record struct {
	// Step 1: Personal info
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	PhoneNumber    string          `json:"phoneNumber"`
	DateOfBirth    *Date           `json:"dateOfBirth,omitempty"`
	ProfilePicture *ProfilePicture `json:"profilePicture,omitempty"`

	// Step 2: Job details
	Department        Department `json:"department"`
	PositionTitle     string     `json:"positionTitle"`
	StartDate         *Date      `json:"startDate,omitempty"`
	JobType           JobType    `json:"jobType"`
	SalaryExpectation *float64   `json:"salaryExpectation,omitempty"`
	ManagerID         string     `json:"managerId"`

	// Step 3: Skills & preferences
	PrimarySkills         []string       `json:"primarySkills"`
	SkillExperience       map[string]int `json:"skillExperience"`
	PreferredWorkingHours WorkingHours   `json:"preferredWorkingHours"`
	RemoteWorkPreference  *int           `json:"remoteWorkPreference,omitempty"`
	ManagerApproved       *bool          `json:"managerApproved,omitempty"`
	ExtraNotes            string         `json:"extraNotes,omitempty"`

	// Step 4: Emergency contact
	ContactName         string       `json:"contactName"`
	Relationship        Relationship `json:"relationship"`
	ContactPhoneNumber  string       `json:"contactPhoneNumber"`
	GuardianName        string       `json:"guardianName,omitempty"`
	GuardianPhoneNumber string       `json:"guardianPhoneNumber,omitempty"`

	// Step 5: Review
	ConfirmInformation *bool `json:"confirmInformation,omitempty"`
}

// NewRecord returns the empty record a wizard starts with.
func NewRecord() *Record {
	remote := 0
	return &Record{
		PrimarySkills:         []string{},
		SkillExperience:       map[string]int{},
		PreferredWorkingHours: WorkingHours{Start: "09:00", End: "17:00"},
		RemoteWorkPreference:  &remote,
	}
}

// SetDepartment changes the department. A previously chosen manager belongs
// to the old department's directory, so it is cleared.
func (r *Record) SetDepartment(d Department) {
	if d == r.Department {
		return
	}
	r.Department = d
	r.ManagerID = ""
}

// ToggleSkill selects or deselects one skill. A newly selected skill always
// starts at zero years, even if it was selected before.
func (r *Record) ToggleSkill(skill string, selected bool) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ErrEmptySkill
	}
	if r.SkillExperience == nil {
		r.SkillExperience = map[string]int{}
	}

	idx := slices.Index(r.PrimarySkills, skill)
	switch {
	case selected && idx < 0:
		r.PrimarySkills = append(r.PrimarySkills, skill)
		r.SkillExperience[skill] = 0
	case !selected && idx >= 0:
		r.PrimarySkills = slices.Delete(r.PrimarySkills, idx, idx+1)
		delete(r.SkillExperience, skill)
	}
	return nil
}

// SetPrimarySkills replaces the selection. Retained skills keep their years,
// new ones start at zero, dropped ones lose their entry.
func (r *Record) SetPrimarySkills(skills []string) error {
	next := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			return ErrEmptySkill
		}
		if !slices.Contains(next, s) {
			next = append(next, s)
		}
	}

	exp := make(map[string]int, len(next))
	for _, s := range next {
		exp[s] = r.SkillExperience[s]
	}
	r.PrimarySkills = next
	r.SkillExperience = exp
	return nil
}

// SetSkillExperience records years for a selected skill. Writing a key that is
// not selected would break the key-set invariant and is refused.
func (r *Record) SetSkillExperience(skill string, years int) error {
	if !slices.Contains(r.PrimarySkills, skill) {
		return fmt.Errorf("%w: %q", ErrSkillNotSelected, skill)
	}
	if r.SkillExperience == nil {
		r.SkillExperience = map[string]int{}
	}
	r.SkillExperience[skill] = years
	return nil
}

// Clone returns a deep copy, used as the submission snapshot.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.DateOfBirth != nil {
		d := *r.DateOfBirth
		c.DateOfBirth = &d
	}
	if r.StartDate != nil {
		d := *r.StartDate
		c.StartDate = &d
	}
	if r.ProfilePicture != nil {
		p := *r.ProfilePicture
		p.Content = slices.Clone(r.ProfilePicture.Content)
		c.ProfilePicture = &p
	}
	if r.SalaryExpectation != nil {
		v := *r.SalaryExpectation
		c.SalaryExpectation = &v
	}
	if r.RemoteWorkPreference != nil {
		v := *r.RemoteWorkPreference
		c.RemoteWorkPreference = &v
	}
	if r.ManagerApproved != nil {
		v := *r.ManagerApproved
		c.ManagerApproved = &v
	}
	if r.ConfirmInformation != nil {
		v := *r.ConfirmInformation
		c.ConfirmInformation = &v
	}
	c.PrimarySkills = slices.Clone(r.PrimarySkills)
	c.SkillExperience = maps.Clone(r.SkillExperience)
	return &c
}

// ============================================================================
// Partial updates
// ============================================================================

// RecordPatch carries the fields a client wants to write. Nil means "leave
// unchanged"; an empty string clears a text field. Dates and the picture are
// cleared with their explicit flags. The validate tags only
// bound payload size; business rules live in the step schemas.
type RecordPatch struct {
	FullName              *string         `json:"fullName,omitempty" validate:"omitempty,max=100,no_emoji"`
	Email                 *string         `json:"email,omitempty" validate:"omitempty,max=254"`
	PhoneNumber           *string         `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	DateOfBirth           *Date           `json:"dateOfBirth,omitempty"`
	ClearDateOfBirth      bool            `json:"clearDateOfBirth,omitempty"`
	ProfilePicture        *ProfilePicture `json:"profilePicture,omitempty"`
	RemoveProfilePicture  bool            `json:"removeProfilePicture,omitempty"`
	Department            *Department     `json:"department,omitempty"`
	PositionTitle         *string         `json:"positionTitle,omitempty" validate:"omitempty,max=100"`
	StartDate             *Date           `json:"startDate,omitempty"`
	ClearStartDate        bool            `json:"clearStartDate,omitempty"`
	JobType               *JobType        `json:"jobType,omitempty"`
	SalaryExpectation     *float64        `json:"salaryExpectation,omitempty"`
	ManagerID             *string         `json:"managerId,omitempty" validate:"omitempty,max=64"`
	PrimarySkills         []string        `json:"primarySkills,omitempty" validate:"omitempty,max=50,dive,max=64"`
	SkillExperience       map[string]int  `json:"skillExperience,omitempty"`
	PreferredWorkingHours *WorkingHours   `json:"preferredWorkingHours,omitempty"`
	RemoteWorkPreference  *int            `json:"remoteWorkPreference,omitempty"`
	ManagerApproved       *bool           `json:"managerApproved,omitempty"`
	ExtraNotes            *string         `json:"extraNotes,omitempty" validate:"omitempty,max=2000"`
	ContactName           *string         `json:"contactName,omitempty" validate:"omitempty,max=100"`
	Relationship          *Relationship   `json:"relationship,omitempty"`
	ContactPhoneNumber    *string         `json:"contactPhoneNumber,omitempty" validate:"omitempty,max=30"`
	GuardianName          *string         `json:"guardianName,omitempty" validate:"omitempty,max=100"`
	GuardianPhoneNumber   *string         `json:"guardianPhoneNumber,omitempty" validate:"omitempty,max=30"`
	ConfirmInformation    *bool           `json:"confirmInformation,omitempty"`
}

// Apply writes the patch through the record mutators. Department is applied
// before managerId and skills before experience so one patch can set both.
// On error the record may be partially updated up to the failing field.
func (p *RecordPatch) Apply(r *Record) error {
	setString(&r.FullName, p.FullName)
	setString(&r.Email, p.Email)
	setString(&r.PhoneNumber, p.PhoneNumber)
	if p.ClearDateOfBirth {
		r.DateOfBirth = nil
	} else if p.DateOfBirth != nil {
		d := *p.DateOfBirth
		r.DateOfBirth = &d
	}
	if p.RemoveProfilePicture {
		r.ProfilePicture = nil
	} else if p.ProfilePicture != nil {
		pic := *p.ProfilePicture
		r.ProfilePicture = &pic
	}

	if p.Department != nil {
		r.SetDepartment(*p.Department)
	}
	setString(&r.PositionTitle, p.PositionTitle)
	if p.ClearStartDate {
		r.StartDate = nil
	} else if p.StartDate != nil {
		d := *p.StartDate
		r.StartDate = &d
	}
	if p.JobType != nil {
		r.JobType = *p.JobType
	}
	if p.SalaryExpectation != nil {
		v := *p.SalaryExpectation
		r.SalaryExpectation = &v
	}
	setString(&r.ManagerID, p.ManagerID)

	if p.PrimarySkills != nil {
		if err := r.SetPrimarySkills(p.PrimarySkills); err != nil {
			return err
		}
	}
	// Sorted for a deterministic first error
	for _, skill := range slices.Sorted(maps.Keys(p.SkillExperience)) {
		if err := r.SetSkillExperience(skill, p.SkillExperience[skill]); err != nil {
			return err
		}
	}
	if p.PreferredWorkingHours != nil {
		r.PreferredWorkingHours = *p.PreferredWorkingHours
	}
	if p.RemoteWorkPreference != nil {
		v := *p.RemoteWorkPreference
		r.RemoteWorkPreference = &v
	}
	if p.ManagerApproved != nil {
		v := *p.ManagerApproved
		r.ManagerApproved = &v
	}
	setString(&r.ExtraNotes, p.ExtraNotes)

	setString(&r.ContactName, p.ContactName)
	if p.Relationship != nil {
		r.Relationship = *p.Relationship
	}
	setString(&r.ContactPhoneNumber, p.ContactPhoneNumber)
	setString(&r.GuardianName, p.GuardianName)
	setString(&r.GuardianPhoneNumber, p.GuardianPhoneNumber)

	if p.ConfirmInformation != nil {
		v := *p.ConfirmInformation
		r.ConfirmInformation = &v
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
