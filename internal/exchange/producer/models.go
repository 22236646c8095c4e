package producer

import "time"

const EventOnboardingSubmitted = "onboarding.submitted"

// SubmittedPayload is the event body published for every accepted
// onboarding. Emergency and guardian contacts stay out of the event.
type SubmittedPayload struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	SubmissionID string    `json:"submission_id"`
	SessionID    string    `json:"session_id"`
	SubmittedAt  time.Time `json:"submitted_at"`

	Employee struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	} `json:"employee"`

	Position struct {
		Department    string   `json:"department"`
		Title         string   `json:"title"`
		JobType       string   `json:"job_type"`
		StartDate     string   `json:"start_date"`
		ManagerID     string   `json:"manager_id"`
		RemotePercent int      `json:"remote_percent"`
		Salary        *float64 `json:"salary,omitempty"`
	} `json:"position"`

	Skills map[string]int `json:"skills"`
}
