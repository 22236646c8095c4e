package memory_test

import (
	"context"
	"testing"
	"time"

	"employee-onboarding-backend/internal/catalog"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/onboarding"
	"employee-onboarding-backend/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time { return s.now }

func TestSessionStore(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	clk := &stubClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	engine := onboarding.NewEngine(c, clk, time.UTC)

	t.Run("Should save and load a wizard", func(t *testing.T) {
		store := memory.NewSessionStore(time.Hour)
		w := onboarding.NewWizard(uuid.New(), "invitee", engine)
		require.NoError(t, store.Save(w))

		got, err := store.Get(w.ID())
		require.NoError(t, err)
		assert.Same(t, w, got)
		assert.Equal(t, 1, store.Count())

		store.Delete(w.ID())
		_, err = store.Get(w.ID())
		assert.ErrorIs(t, err, onboarding.ErrSessionNotFound)
	})

	t.Run("Should evict only idle sessions", func(t *testing.T) {
		var evicted []uuid.UUID
		store := memory.NewSessionStore(30*time.Minute,
			memory.WithClock(clk.Now),
			memory.WithEvictHook(func(id uuid.UUID) { evicted = append(evicted, id) }),
		)

		idle := onboarding.NewWizard(uuid.New(), "a", engine)
		require.NoError(t, store.Save(idle))

		clk.now = clk.now.Add(20 * time.Minute)
		active := onboarding.NewWizard(uuid.New(), "b", engine)
		require.NoError(t, store.Save(active))

		clk.now = clk.now.Add(15 * time.Minute)
		assert.Equal(t, 1, store.EvictIdle())
		assert.Equal(t, []uuid.UUID{idle.ID()}, evicted)

		_, err := store.Get(active.ID())
		assert.NoError(t, err)
	})

	t.Run("Should keep a session whose submission is in flight", func(t *testing.T) {
		store := memory.NewSessionStore(30*time.Minute, memory.WithClock(clk.Now))
		w := reviewReadyWizard(t, engine)
		require.NoError(t, store.Save(w))

		entered := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			_, err := w.Submit(context.Background(), onboarding.SubmitterFunc(
				func(ctx context.Context, _ *domain.Record) (*domain.SubmissionReceipt, error) {
					close(entered)
					<-release
					return &domain.SubmissionReceipt{SubmissionID: uuid.New()}, nil
				}))
			done <- err
		}()
		<-entered
		require.Equal(t, domain.SessionSubmitting, w.Status())

		clk.now = clk.now.Add(time.Hour)
		assert.Zero(t, store.EvictIdle())
		_, err := store.Get(w.ID())
		assert.NoError(t, err)

		close(release)
		require.NoError(t, <-done)
		assert.Equal(t, domain.SessionSubmitted, w.Status())
	})

	t.Run("Should never evict with a zero TTL", func(t *testing.T) {
		store := memory.NewSessionStore(0)
		require.NoError(t, store.Save(onboarding.NewWizard(uuid.New(), "a", engine)))
		assert.Zero(t, store.EvictIdle())
	})
}

// reviewReadyWizard returns a wizard on the review step whose record passes
// every step on 2025-06-02.
func reviewReadyWizard(t *testing.T, engine *onboarding.Engine) *onboarding.Wizard {
	t.Helper()
	w := onboarding.NewWizard(uuid.New(), "invitee", engine)
	require.NoError(t, w.Update(func(r *domain.Record) error {
		dob := domain.NewDate(1990, time.May, 15)
		start := domain.NewDate(2025, time.June, 9)
		salary := 90000.0
		remote := 20
		confirmed := true

		r.FullName = "Jane Doe"
		r.Email = "jane.doe@example.com"
		r.PhoneNumber = "+1 555 123 4567"
		r.DateOfBirth = &dob
		r.SetDepartment("Engineering")
		r.PositionTitle = "Backend Engineer"
		r.StartDate = &start
		r.JobType = domain.JobTypeFullTime
		r.SalaryExpectation = &salary
		r.ManagerID = "mgr-eng-1"
		if err := r.SetPrimarySkills([]string{"Go", "SQL", "Docker"}); err != nil {
			return err
		}
		r.RemoteWorkPreference = &remote
		r.ContactName = "John Doe"
		r.Relationship = "Spouse"
		r.ContactPhoneNumber = "+1 555 987 6543"
		r.ConfirmInformation = &confirmed
		return nil
	}))
	for range 4 {
		res, err := w.Advance()
		require.NoError(t, err)
		require.True(t, res.OK, res.FieldErrors)
	}
	return w
}
