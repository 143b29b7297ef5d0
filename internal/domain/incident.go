package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxReportAgeYears    = 10
)

// DefaultStatus is assigned to newly admitted incidents.
const DefaultStatus = "Open"

// Validation messages.
const (
	MsgTitleRequired    = "title is required"
	MsgTitleTooLong     = "title cannot exceed 200 characters"
	MsgSeverityRequired = "severity is required"
	MsgSeverityInvalid  = "severity must be one of: Low, Medium, High"
	MsgReportedInFuture = "date reported cannot be in the future"
	MsgReportedTooOld   = "date reported cannot be more than 10 years in the past"
)

const (
	fieldTitle      = "title"
	fieldSeverity   = "severity"
	fieldReportedAt = "reportedAt"
)

// Incident is a reported incident. Title, severity and report date are
// validated on every assignment, so a constructed Incident is always valid
// at the time it was built.
type Incident struct {
	id          string
	title       string
	description string
	severity    Severity
	reportedAt  time.Time
	status      string
}

// NewIncident builds an incident, failing on the first invalid field.
func NewIncident(title, severity string, reportedAt time.Time) (*Incident, error) {
	return NewIncidentAt(title, severity, reportedAt, time.Now())
}

// NewIncidentAt is NewIncident evaluated against now.
func NewIncidentAt(title, severity string, reportedAt, now time.Time) (*Incident, error) {
	i := &Incident{status: DefaultStatus}
	if err := i.SetTitle(title); err != nil {
		return nil, err
	}
	if err := i.SetSeverity(severity); err != nil {
		return nil, err
	}
	if err := i.SetReportedAtAt(reportedAt, now); err != nil {
		return nil, err
	}
	return i, nil
}

// ID returns the identifier assigned at admission.
func (i *Incident) ID() string { return i.id }

// Title returns the trimmed title.
func (i *Incident) Title() string { return i.title }

// Description returns the trimmed description.
func (i *Incident) Description() string { return i.description }

// Severity returns the canonical severity.
func (i *Incident) Severity() Severity { return i.severity }

// ReportedAt returns when the incident was reported.
func (i *Incident) ReportedAt() time.Time { return i.reportedAt }

// CreatedAt is an alias of ReportedAt for admitted incidents.
func (i *Incident) CreatedAt() time.Time { return i.reportedAt }

// Status returns the incident status.
func (i *Incident) Status() string { return i.status }

// SetTitle trims and assigns the title.
func (i *Incident) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if msg := titleProblem(title); msg != "" {
		return newFieldError(fieldTitle, msg)
	}
	i.title = title
	return nil
}

// SetSeverity assigns the severity in canonical form.
func (i *Incident) SetSeverity(severity string) error {
	if strings.TrimSpace(severity) == "" {
		return newFieldError(fieldSeverity, MsgSeverityRequired)
	}
	s, err := ParseSeverity(severity)
	if err != nil {
		return newFieldError(fieldSeverity, MsgSeverityInvalid)
	}
	i.severity = s
	return nil
}

// SetReportedAt assigns the report date.
func (i *Incident) SetReportedAt(t time.Time) error {
	return i.SetReportedAtAt(t, time.Now())
}

// SetReportedAtAt is SetReportedAt evaluated against now.
func (i *Incident) SetReportedAtAt(t, now time.Time) error {
	if msg := reportedAtProblem(t, now); msg != "" {
		return newFieldError(fieldReportedAt, msg)
	}
	i.reportedAt = t
	return nil
}

// SetDescription trims and assigns the description. Length limits are
// enforced at submission, not here.
func (i *Incident) SetDescription(description string) {
	i.description = strings.TrimSpace(description)
}

// SetStatus assigns the status verbatim.
func (i *Incident) SetStatus(status string) {
	i.status = status
}

// AssignID sets the identifier once. Later calls are ignored and return false.
func (i *Incident) AssignID(id string) bool {
	if i.id != "" {
		return false
	}
	i.id = id
	return true
}

// Validate returns every field problem without failing.
func (i *Incident) Validate() []string {
	return i.ValidateAt(time.Now())
}

// ValidateAt is Validate evaluated against now.
func (i *Incident) ValidateAt(now time.Time) []string {
	var errs []string
	if msg := titleProblem(strings.TrimSpace(i.title)); msg != "" {
		errs = append(errs, msg)
	}
	if i.severity == "" {
		errs = append(errs, MsgSeverityRequired)
	} else if !i.severity.IsValid() {
		errs = append(errs, MsgSeverityInvalid)
	}
	if msg := reportedAtProblem(i.reportedAt, now); msg != "" {
		errs = append(errs, msg)
	}
	return errs
}

// IsValid reports whether Validate returns no problems.
func (i *Incident) IsValid() bool {
	return len(i.Validate()) == 0
}

// Age returns the time elapsed since the incident was reported.
func (i *Incident) Age() time.Duration {
	return i.AgeAt(time.Now())
}

// AgeAt is Age evaluated against now.
func (i *Incident) AgeAt(now time.Time) time.Duration {
	return now.Sub(i.reportedAt)
}

// AgeDays returns the number of whole days since the report.
func (i *Incident) AgeDays() int {
	return int(i.Age() / (24 * time.Hour))
}

// AgeHours returns the fractional hours since the report.
func (i *Incident) AgeHours() float64 {
	return i.Age().Hours()
}

// Urgency returns the 1-10 urgency score.
func (i *Incident) Urgency() int {
	return i.UrgencyAt(time.Now())
}

// UrgencyAt is Urgency evaluated against now.
func (i *Incident) UrgencyAt(now time.Time) int {
	return CalculateUrgency(i.severity, i.AgeAt(now))
}

// UrgencyDescription returns the label for the current urgency.
func (i *Incident) UrgencyDescription() string {
	return DescribeUrgency(i.Urgency())
}

// IsUrgent reports whether the current urgency requires same-day action.
func (i *Incident) IsUrgent() bool {
	return IsUrgentScore(i.Urgency())
}

func titleProblem(title string) string {
	if title == "" {
		return MsgTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return MsgTitleTooLong
	}
	return ""
}

func reportedAtProblem(t, now time.Time) string {
	if t.After(now) {
		return MsgReportedInFuture
	}
	if t.Before(now.AddDate(-MaxReportAgeYears, 0, 0)) {
		return MsgReportedTooOld
	}
	return ""
}

// SameReport reports whether both incidents carry the same title and
// description, ignoring surrounding whitespace and case.
func (i *Incident) SameReport(other *Incident) bool {
	return strings.EqualFold(strings.TrimSpace(i.title), strings.TrimSpace(other.title)) &&
		strings.EqualFold(strings.TrimSpace(i.description), strings.TrimSpace(other.description))
}
