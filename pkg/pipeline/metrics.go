package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts submission outcomes and times actions per form.
type Metrics struct {
	submissions    *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventforms",
				Name:      "submissions_total",
				Help:      "Submit attempts by form and outcome.",
			},
			[]string{"form", "outcome"},
		),
		actionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eventforms",
				Name:      "action_duration_seconds",
				Help:      "Time spent in the bound action.",
				Buckets:   []float64{.01, .05, .1, .5, 1, 2, 3, 5, 10},
			},
			[]string{"form"},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.submissions, m.actionDuration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Submissions exposes the outcome counter (for tests and exporters).
func (m *Metrics) Submissions() *prometheus.CounterVec {
	return m.submissions
}

func (m *Metrics) observeOutcome(form string, status Status) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, status.String()).Inc()
}

func (m *Metrics) observeAction(form string, d time.Duration) {
	if m == nil {
		return
	}
	m.actionDuration.WithLabelValues(form).Observe(d.Seconds())
}
