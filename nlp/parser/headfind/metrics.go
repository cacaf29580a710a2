package headfind

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts head decisions by base category and outcome
type Metrics struct {
	Decisions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "rutb",
				Subsystem: "headfind",
				Name:      "decisions_total",
				Help:      "Head decisions by base category and outcome (unary, rule, fallback)",
			},
			[]string{"category", "outcome"},
		),
	}
	if reg != nil {
		if err := reg.Register(m.Decisions); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Observe(category string, outcome Outcome) {
	m.Decisions.WithLabelValues(category, outcome.String()).Inc()
}
