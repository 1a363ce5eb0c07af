package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts login attempts by outcome
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medrem",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome (success, invalid_credentials, validation_error, rejected_inflight)",
	}, []string{"outcome"})

	// Registrations counts registration attempts by outcome
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medrem",
		Name:      "registrations_total",
		Help:      "Registration attempts by outcome",
	}, []string{"outcome"})

	// SessionRestores counts session restores by outcome
	SessionRestores = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medrem",
		Name:      "session_restores_total",
		Help:      "Session restores by outcome (restored, empty, malformed, read_error)",
	}, []string{"outcome"})

	// RemindersSent counts reminder deliveries by channel and status
	RemindersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medrem",
		Name:      "reminders_sent_total",
		Help:      "Reminder deliveries by channel and status",
	}, []string{"channel", "status"})

	// HTTPDuration observes request durations
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "medrem",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by method and status code",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)
