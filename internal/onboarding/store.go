package onboarding

import "github.com/google/uuid"

// SessionStore keeps live wizards between requests.
type SessionStore interface {
	Save(w *Wizard) error
	// Get returns ErrSessionNotFound for unknown or evicted sessions
	Get(id uuid.UUID) (*Wizard, error)
	Delete(id uuid.UUID)
	Count() int
}
