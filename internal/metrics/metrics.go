// Package metrics exposes Prometheus collectors for the onboarding bot.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aliskhannn/place-onboarding-bot/internal/domain/entities"
	"github.com/aliskhannn/place-onboarding-bot/internal/onboarding"
)

const namespace = "place_onboarding"

// Metrics reports backend calls, applied results and live sessions.
type Metrics struct {
	loadDuration   *prometheus.HistogramVec
	submitDuration *prometheus.HistogramVec
	outcomes       *prometheus.CounterVec
	sessions       prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg and panics on a
// registration conflict. A nil reg means the default registerer.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "load_duration_seconds",
				Help:      "Duration of question fetches.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"lang", "status"},
		),
		submitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "backend",
				Name:      "submit_duration_seconds",
				Help:      "Duration of response submissions.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "results_total",
				Help:      "Results applied to onboarding flows, by outcome.",
			},
			[]string{"outcome"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "flow",
				Name:      "sessions_active",
				Help:      "Onboarding sessions held in memory.",
			},
		),
	}

	reg.MustRegister(m.loadDuration, m.submitDuration, m.outcomes, m.sessions)

	return m
}

// ObserveLoad records a question fetch.
func (m *Metrics) ObserveLoad(lang entities.Language, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.loadDuration.WithLabelValues(lang.String(), status(err)).Observe(elapsed.Seconds())
}

// ObserveSubmit records a submission.
func (m *Metrics) ObserveSubmit(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submitDuration.WithLabelValues(status(err)).Observe(elapsed.Seconds())
}

// ObserveOutcome counts a result applied to a flow.
func (m *Metrics) ObserveOutcome(o onboarding.Outcome) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(o.String()).Inc()
}

// SetSessions sets the number of live sessions.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, onboarding.ErrNoCredentials):
		return "no_credentials"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
