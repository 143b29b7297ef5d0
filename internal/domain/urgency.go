package domain

import "time"

// Urgency bounds and the threshold for same-day action.
const (
	MinUrgency      = 1
	MaxUrgency      = 10
	UrgentThreshold = 7
)

const (
	fallbackBase  = 1
	defaultTenths = 10
)

var baseUrgency = map[Severity]int{
	SeverityHigh:   8,
	SeverityMedium: 5,
	SeverityLow:    2,
}

// ageTier applies multiplier (in tenths) when age <= upTo.
// A zero upTo closes the table and matches any age.
type ageTier struct {
	upTo   time.Duration
	tenths int
}

var ageTiers = map[Severity][]ageTier{
	SeverityHigh: {
		{upTo: 1 * time.Hour, tenths: 10},
		{upTo: 4 * time.Hour, tenths: 12},
		{upTo: 24 * time.Hour, tenths: 14},
		{upTo: 48 * time.Hour, tenths: 16},
		{tenths: 20},
	},
	SeverityMedium: {
		{upTo: 24 * time.Hour, tenths: 10},
		{upTo: 72 * time.Hour, tenths: 12},
		{upTo: 168 * time.Hour, tenths: 14},
		{tenths: 16},
	},
	SeverityLow: {
		{upTo: 168 * time.Hour, tenths: 10},
		{upTo: 720 * time.Hour, tenths: 12},
		{tenths: 14},
	},
}

type urgencyLabel struct {
	min   int
	label string
}

var urgencyLabels = []urgencyLabel{
	{min: 9, label: "Critical - Immediate Action Required"},
	{min: 7, label: "High - Action Required Today"},
	{min: 5, label: "Medium - Action Required This Week"},
	{min: 3, label: "Low - Action Required Soon"},
	{min: 0, label: "Minimal - Action When Convenient"},
}

// CalculateUrgency scores an incident of the given severity and age as
// ceil(base * multiplier), clamped to [MinUrgency, MaxUrgency].
func CalculateUrgency(severity Severity, age time.Duration) int {
	base, ok := baseUrgency[severity]
	if !ok {
		base = fallbackBase
	}

	tenths := ageMultiplierTenths(severity, age)
	score := (base*tenths + 9) / 10

	return min(max(score, MinUrgency), MaxUrgency)
}

// AgeMultiplier returns the age multiplier applied to the base urgency.
func AgeMultiplier(severity Severity, age time.Duration) float64 {
	return float64(ageMultiplierTenths(severity, age)) / 10
}

func ageMultiplierTenths(severity Severity, age time.Duration) int {
	for _, tier := range ageTiers[severity] {
		if tier.upTo == 0 || age <= tier.upTo {
			return tier.tenths
		}
	}
	return defaultTenths
}

// DescribeUrgency maps an urgency score to its action label.
func DescribeUrgency(score int) string {
	for _, l := range urgencyLabels {
		if score >= l.min {
			return l.label
		}
	}
	return urgencyLabels[len(urgencyLabels)-1].label
}

// IsUrgentScore reports whether score calls for action today.
func IsUrgentScore(score int) bool {
	return score >= UrgentThreshold
}
