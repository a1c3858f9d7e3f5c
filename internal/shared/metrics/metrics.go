package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide instrumentation for the bot.
type Metrics struct {
	UpdatesHandled    *prometheus.CounterVec
	OutboundCalls     *prometheus.CounterVec
	OutboundDuration  *prometheus.HistogramVec
	RegistrationsDone prometheus.Counter
}

// New registers and returns the metric set. Call once from main.
func New() *Metrics {
	return &Metrics{
		UpdatesHandled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "myvote_bot_updates_handled_total",
			Help: "Total number of Telegram updates routed, by kind",
		}, []string{"kind"}),
		OutboundCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "myvote_outbound_calls_total",
			Help: "Total number of calls to external providers, by provider and outcome",
		}, []string{"provider", "outcome"}),
		OutboundDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "myvote_outbound_call_duration_seconds",
			Help:    "Latency of external provider calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		RegistrationsDone: promauto.NewCounter(prometheus.CounterOpts{
			Name: "myvote_voter_registrations_total",
			Help: "Total number of successful voter registrations submitted",
		}),
	}
}

// ObserveCall records one outbound provider call. Safe on a nil receiver so
// adapters can run unmetered in tests.
func (m *Metrics) ObserveCall(provider string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.OutboundCalls.WithLabelValues(provider, outcome).Inc()
	m.OutboundDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

// CountUpdate records one routed Telegram update.
func (m *Metrics) CountUpdate(kind string) {
	if m == nil {
		return
	}
	m.UpdatesHandled.WithLabelValues(kind).Inc()
}

// CountRegistration records one successful voter registration.
func (m *Metrics) CountRegistration() {
	if m == nil {
		return
	}
	m.RegistrationsDone.Inc()
}
