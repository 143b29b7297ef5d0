package intake

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "incidentintake"

// Submission outcomes.
const (
	outcomeCreated         = "created"
	outcomeValidationError = "validation_error"
	outcomeInvalidSeverity = "invalid_severity"
	outcomeDuplicate       = "duplicate"
	outcomeError           = "error"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "submissions_total",
			Help:      "Incident submissions by outcome",
		},
		[]string{"source", "outcome"},
	)

	incidentsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "incidents",
			Name:      "stored",
			Help:      "Number of incidents held in memory",
		},
	)
)

func recordSubmission(source, outcome string) {
	submissionsTotal.WithLabelValues(source, outcome).Inc()
}

func recordStored(count int) {
	incidentsStored.Set(float64(count))
}
