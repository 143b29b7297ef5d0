package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateUrgency_Tiers(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		age      time.Duration
		want     int
	}{
		{"high fresh", SeverityHigh, 0, 8},
		{"high at 1h boundary", SeverityHigh, time.Hour, 8},
		{"high just past 1h", SeverityHigh, time.Hour + time.Second, 10},
		{"high 2h", SeverityHigh, 2 * time.Hour, 10},
		{"high 3 days", SeverityHigh, 72 * time.Hour, 10},
		{"medium fresh", SeverityMedium, time.Minute, 5},
		{"medium at 24h boundary", SeverityMedium, 24 * time.Hour, 5},
		{"medium 2 days", SeverityMedium, 48 * time.Hour, 6},
		{"medium 7 days", SeverityMedium, 168 * time.Hour, 7},
		{"medium 8 days", SeverityMedium, 192 * time.Hour, 8},
		{"low fresh", SeverityLow, time.Hour, 2},
		{"low at 168h boundary", SeverityLow, 168 * time.Hour, 2},
		{"low 10 days", SeverityLow, 240 * time.Hour, 3},
		{"low 30 days", SeverityLow, 720 * time.Hour, 3},
		{"low 31 days", SeverityLow, 744 * time.Hour, 3},
		{"unknown severity", Severity("Critical"), 1000 * time.Hour, 1},
		{"empty severity", Severity(""), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateUrgency(tt.severity, tt.age))
		})
	}
}

func TestAgeMultiplier(t *testing.T) {
	assert.InDelta(t, 1.0, AgeMultiplier(SeverityHigh, 30*time.Minute), 1e-9)
	assert.InDelta(t, 1.2, AgeMultiplier(SeverityHigh, 4*time.Hour), 1e-9)
	assert.InDelta(t, 1.4, AgeMultiplier(SeverityHigh, 24*time.Hour), 1e-9)
	assert.InDelta(t, 1.6, AgeMultiplier(SeverityHigh, 48*time.Hour), 1e-9)
	assert.InDelta(t, 2.0, AgeMultiplier(SeverityHigh, 49*time.Hour), 1e-9)
	assert.InDelta(t, 1.4, AgeMultiplier(SeverityMedium, 168*time.Hour), 1e-9)
	assert.InDelta(t, 1.6, AgeMultiplier(SeverityMedium, 169*time.Hour), 1e-9)
	assert.InDelta(t, 1.2, AgeMultiplier(SeverityLow, 720*time.Hour), 1e-9)
	assert.InDelta(t, 1.4, AgeMultiplier(SeverityLow, 721*time.Hour), 1e-9)
	assert.InDelta(t, 1.0, AgeMultiplier(Severity("other"), 9999*time.Hour), 1e-9)
}

func TestCalculateUrgency_RangeAndMonotonic(t *testing.T) {
	for _, sev := range Severities {
		prev := 0
		for hours := 0; hours <= 24*400; hours++ {
			score := CalculateUrgency(sev, time.Duration(hours)*time.Hour)
			assert.GreaterOrEqual(t, score, MinUrgency)
			assert.LessOrEqual(t, score, MaxUrgency)
			if score < prev {
				t.Fatalf("%s: urgency decreased from %d to %d at %dh", sev, prev, score, hours)
			}
			prev = score
		}
	}
}

func TestDescribeUrgency(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{10, "Critical - Immediate Action Required"},
		{9, "Critical - Immediate Action Required"},
		{8, "High - Action Required Today"},
		{7, "High - Action Required Today"},
		{6, "Medium - Action Required This Week"},
		{5, "Medium - Action Required This Week"},
		{4, "Low - Action Required Soon"},
		{3, "Low - Action Required Soon"},
		{2, "Minimal - Action When Convenient"},
		{1, "Minimal - Action When Convenient"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DescribeUrgency(tt.score), "score %d", tt.score)
	}
}

func TestIsUrgentScore(t *testing.T) {
	for score := MinUrgency; score <= MaxUrgency; score++ {
		assert.Equal(t, score >= 7, IsUrgentScore(score), "score %d", score)
	}
}
