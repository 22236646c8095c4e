package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Personal info
	"FullName":       "Full name",
	"Email":          "Email address",
	"PhoneNumber":    "Phone number",
	"DateOfBirth":    "Date of birth",
	"ProfilePicture": "Profile picture",

	// Job details
	"Department":        "Department",
	"PositionTitle":     "Position title",
	"StartDate":         "Start date",
	"JobType":           "Job type",
	"SalaryExpectation": "Salary expectation",
	"ManagerID":         "Manager",

	// Skills & preferences
	"PrimarySkills":        "Primary skills",
	"SkillExperience":      "Skill experience",
	"Start":                "Preferred start time",
	"End":                  "Preferred end time",
	"RemoteWorkPreference": "Remote work preference",
	"ManagerApproved":      "Manager approval",
	"ExtraNotes":           "Additional notes",

	// Emergency contact
	"ContactName":         "Contact name",
	"Relationship":        "Relationship",
	"ContactPhoneNumber":  "Contact phone number",
	"GuardianName":        "Guardian name",
	"GuardianPhoneNumber": "Guardian phone number",

	// Review & navigation
	"ConfirmInformation": "Confirmation",
	"Step":               "Step",
	"Years":              "Years of experience",
}

// ValidationRules contains units for min/max messages
var ValidationRules = map[string]map[string]interface{}{
	"RemoteWorkPreference": {"min": 0, "max": 100, "unit": "%"},
	"Years":                {"min": 0, "max": 20, "unit": "years"},
	"ExtraNotes":           {"max": 500},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required", "not_blank":
		return fmt.Sprintf("%s: is required", label)

	case "min", "gte":
		if unit := unitFor(fieldName); unit != "" {
			return fmt.Sprintf("%s: must be at least %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max", "lte":
		if unit := unitFor(fieldName); unit != "" {
			return fmt.Sprintf("%s: must be at most %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: is not a valid email address", label)

	case "valid_name":
		return fmt.Sprintf("%s: may only contain letters, spaces and . ' - ,", label)

	case "valid_phone":
		return fmt.Sprintf("%s: is not a valid phone number", label)

	case "clock_time":
		return fmt.Sprintf("%s: must be in HH:MM format", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s: failed validation (%s)", label, tag)
	}
}

func unitFor(fieldName string) string {
	if rules, ok := ValidationRules[fieldName]; ok {
		if unit, hasUnit := rules["unit"].(string); hasUnit {
			return unit
		}
	}
	return ""
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
