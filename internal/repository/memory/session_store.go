package memory

import (
	"sync"
	"time"

	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/onboarding"
	"employee-onboarding-backend/pkg/logger"

	"github.com/google/uuid"
)

// SessionStore keeps wizards in process memory. Sessions idle for longer than
// the configured TTL are evicted by a background sweep.
type SessionStore struct {
	sessions sync.Map // uuid.UUID -> *onboarding.Wizard
	idleTTL  time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	onEvict  func(id uuid.UUID)
}

type Option func(*SessionStore)

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *SessionStore) { s.now = now }
}

// WithEvictHook is called for every session removed by the sweep.
func WithEvictHook(fn func(id uuid.UUID)) Option {
	return func(s *SessionStore) { s.onEvict = fn }
}

func NewSessionStore(idleTTL time.Duration, opts ...Option) *SessionStore {
	s := &SessionStore{
		idleTTL: idleTTL,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Save(w *onboarding.Wizard) error {
	s.sessions.Store(w.ID(), w)
	return nil
}

func (s *SessionStore) Get(id uuid.UUID) (*onboarding.Wizard, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, onboarding.ErrSessionNotFound
	}
	return v.(*onboarding.Wizard), nil
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.sessions.Delete(id)
}

func (s *SessionStore) Count() int {
	n := 0
	s.sessions.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// EvictIdle removes sessions whose last activity is older than the TTL and
// returns how many were dropped. A session with a submission in flight is
// kept until the submission returns.
func (s *SessionStore) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)
	evicted := 0
	s.sessions.Range(func(key, value interface{}) bool {
		w := value.(*onboarding.Wizard)
		if w.Status() == domain.SessionSubmitting {
			return true
		}
		if w.LastActivity().Before(cutoff) {
			s.sessions.Delete(key)
			evicted++
			if s.onEvict != nil {
				s.onEvict(w.ID())
			}
		}
		return true
	})
	return evicted
}

// StartCleanup sweeps idle sessions every interval until Close is called.
func (s *SessionStore) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.EvictIdle(); n > 0 {
					logger.Log.Infow("evicted idle onboarding sessions", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}
