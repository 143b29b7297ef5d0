package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity represents the severity level of an incident.
type Severity string

// Severity levels.
const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Severities lists the accepted severity levels in ascending order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// IsValid checks if the severity is one of the canonical levels.
func (s Severity) IsValid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity matches raw case-insensitively against the known levels
// and returns the canonical form ("high" -> "High").
func ParseSeverity(raw string) (Severity, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: severity is required", ErrInvalidSeverity)
	}

	// cases.Caser keeps state, so one per call.
	s := Severity(cases.Title(language.English).String(strings.ToLower(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, raw)
	}
	return s, nil
}
