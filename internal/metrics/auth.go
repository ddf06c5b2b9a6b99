// Package metrics
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "userauth"

// Outcomes recorded for registrations and logins.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeLockedOut = "locked_out"
	OutcomeError     = "error"
)

const (
	OperationHash   = "hash"
	OperationVerify = "verify"
)

// bcrypt at cost 10 lands around 50-100ms.
const hashBucketStart = 0.01

type AuthMetrics struct {
	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	HashDuration  *prometheus.HistogramVec
}

// NewAuthMetrics registers the collectors on reg, the default registerer when nil.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &AuthMetrics{
		Registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "registrations_total",
				Help:      "Registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "logins_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		HashDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "password_hash_seconds",
				Help:      "Time spent hashing or verifying passwords",
				Buckets:   prometheus.ExponentialBuckets(hashBucketStart, 2, 10),
			},
			[]string{"op"},
		),
	}
}

func (m *AuthMetrics) IncRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

func (m *AuthMetrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *AuthMetrics) ObserveHash(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.HashDuration.WithLabelValues(op).Observe(d.Seconds())
}
