package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StepValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_step_validations_total",
			Help: "Total number of step validations by step and outcome",
		},
		[]string{"step", "outcome"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Total number of submission attempts by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "onboarding_submission_duration_seconds",
			Help:    "Duration of the external submission call in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "onboarding_active_sessions",
			Help: "Number of onboarding sessions held in memory",
		},
	)
)

// Outcome labels
const (
	OutcomePassed   = "passed"
	OutcomeBlocked  = "blocked"
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)
