package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"employee-onboarding-backend/internal/domain"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission() *domain.Submission {
	rec := domain.NewRecord()
	rec.FullName = "Jane Doe"
	rec.Email = "jane@example.com"
	rec.SetDepartment("Engineering")
	rec.JobType = domain.JobTypeContract
	salary := 95.0
	rec.SalaryExpectation = &salary
	start := domain.NewDate(2025, time.June, 9)
	rec.StartDate = &start
	rec.ContactName = "John Doe"
	_ = rec.SetPrimarySkills([]string{"Go", "SQL", "Docker"})
	_ = rec.SetSkillExperience("Go", 4)

	return &domain.Submission{
		ID:          uuid.New(),
		SessionID:   uuid.New(),
		SubmittedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		Record:      rec,
	}
}

func TestOnboardingProducer_PublishSubmitted(t *testing.T) {
	t.Run("Should send one message keyed by submission id", func(t *testing.T) {
		sp := mocks.NewSyncProducer(t, nil)
		sub := submission()

		sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			key, err := msg.Key.Encode()
			require.NoError(t, err)
			assert.Equal(t, sub.ID.String(), string(key))
			assert.Equal(t, "onboarding-events", msg.Topic)

			raw, err := msg.Value.Encode()
			require.NoError(t, err)
			var payload SubmittedPayload
			require.NoError(t, json.Unmarshal(raw, &payload))
			assert.Equal(t, EventOnboardingSubmitted, payload.EventType)
			assert.Equal(t, "Jane Doe", payload.Employee.FullName)
			assert.Equal(t, "2025-06-09", payload.Position.StartDate)
			assert.Equal(t, map[string]int{"Go": 4, "SQL": 0, "Docker": 0}, payload.Skills)
			assert.NotContains(t, string(raw), "John Doe")
			return nil
		})

		p := NewOnboardingProducer(sp, Config{Topic: "onboarding-events", Source: "onboarding-api"})
		require.NoError(t, p.PublishSubmitted(context.Background(), sub))
		require.NoError(t, p.Close())
	})

	t.Run("Should wrap broker errors", func(t *testing.T) {
		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageAndFail(errors.New("leader not available"))

		p := NewOnboardingProducer(sp, Config{Topic: "onboarding-events"})
		err := p.PublishSubmitted(context.Background(), submission())
		assert.ErrorContains(t, err, "send kafka message")
		require.NoError(t, p.Close())
	})

	t.Run("Should fail without a producer", func(t *testing.T) {
		var p *OnboardingProducer
		assert.Error(t, p.PublishSubmitted(context.Background(), submission()))
		assert.NoError(t, p.Close())
	})
}
