package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type OnboardingProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
}

type Config struct {
	Topic  string
	Source string
}

func NewOnboardingProducer(sp sarama.SyncProducer, cfg Config) *OnboardingProducer {
	return &OnboardingProducer{sp: sp, topic: cfg.Topic, source: cfg.Source}
}

// NewSyncProducer dials brokers with acks from all in-sync replicas and
// idempotent writes.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V3_3_2_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 200 * time.Millisecond

	return sarama.NewSyncProducer(brokers, cfg)
}

func (p *OnboardingProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

// PublishSubmitted emits one event keyed by submission id.
func (p *OnboardingProducer) PublishSubmitted(ctx context.Context, sub *domain.Submission) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}
	body, err := json.Marshal(buildPayload(sub))
	if err != nil {
		return fmt.Errorf("marshal submitted payload: %w", err)
	}

	return p.send(ctx, sub.ID.String(), body, map[string]string{
		"event-kind":   EventOnboardingSubmitted,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func buildPayload(sub *domain.Submission) SubmittedPayload {
	rec := sub.Record
	var payload SubmittedPayload

	payload.EventID = uuid.NewString()
	payload.EventType = EventOnboardingSubmitted
	payload.SubmissionID = sub.ID.String()
	payload.SessionID = sub.SessionID.String()
	payload.SubmittedAt = sub.SubmittedAt

	payload.Employee.FullName = rec.FullName
	payload.Employee.Email = rec.Email
	payload.Employee.Phone = rec.PhoneNumber

	payload.Position.Department = string(rec.Department)
	payload.Position.Title = rec.PositionTitle
	payload.Position.JobType = string(rec.JobType)
	if rec.StartDate != nil {
		payload.Position.StartDate = rec.StartDate.String()
	}
	payload.Position.ManagerID = rec.ManagerID
	if rec.RemoteWorkPreference != nil {
		payload.Position.RemotePercent = *rec.RemoteWorkPreference
	}
	payload.Position.Salary = rec.SalaryExpectation

	payload.Skills = make(map[string]int, len(rec.PrimarySkills))
	for _, s := range rec.PrimarySkills {
		payload.Skills[s] = rec.SkillExperience[s]
	}
	return payload
}

func (p *OnboardingProducer) send(_ context.Context, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		logger.Log.Errorw("failed to send kafka message",
			"error", err, "topic", p.topic, "key", key, "bytes", len(value))
		return fmt.Errorf("send kafka message: %w", err)
	}

	logger.Log.Infow("kafka message sent",
		"topic", p.topic, "key", key, "partition", part, "offset", off, "bytes", len(value))
	return nil
}
