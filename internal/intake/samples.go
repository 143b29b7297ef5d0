package intake

import (
	"fmt"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
)

// UrgencySample shows how urgency is scored for a fixed example incident.
type UrgencySample struct {
	Title       string          `json:"title"`
	Severity    domain.Severity `json:"severity"`
	AgeDays     int             `json:"ageDays"`
	Urgency     int             `json:"urgency"`
	Description string          `json:"description"`
	IsUrgent    bool            `json:"isUrgent"`
}

var sampleReports = []struct {
	title    string
	severity string
	age      time.Duration
}{
	{"Database server unreachable", "High", 2 * time.Hour},
	{"Checkout latency above SLO", "High", 3 * 24 * time.Hour},
	{"Search results missing images", "Medium", 7 * 24 * time.Hour},
	{"Nightly report delayed", "Medium", 12 * time.Hour},
	{"Typo on help page", "Low", 30 * 24 * time.Hour},
	{"Dark mode contrast issue", "Low", 24 * time.Hour},
}

// SampleUrgencies scores the built-in sample incidents as of now.
// Nothing is stored.
func SampleUrgencies(now time.Time) ([]UrgencySample, error) {
	samples := make([]UrgencySample, 0, len(sampleReports))
	for _, r := range sampleReports {
		inc, err := domain.NewIncidentAt(r.title, r.severity, now.Add(-r.age), now)
		if err != nil {
			return nil, fmt.Errorf("build sample %q: %w", r.title, err)
		}

		score := inc.UrgencyAt(now)
		samples = append(samples, UrgencySample{
			Title:       inc.Title(),
			Severity:    inc.Severity(),
			AgeDays:     int(inc.AgeAt(now) / (24 * time.Hour)),
			Urgency:     score,
			Description: domain.DescribeUrgency(score),
			IsUrgent:    domain.IsUrgentScore(score),
		})
	}
	return samples, nil
}
