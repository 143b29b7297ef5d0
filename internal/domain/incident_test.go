package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNewIncident_Valid(t *testing.T) {
	inc, err := NewIncidentAt("  Disk full on db-1  ", "hIgH", testNow.Add(-time.Hour), testNow)
	require.NoError(t, err)

	assert.Equal(t, "Disk full on db-1", inc.Title())
	assert.Equal(t, SeverityHigh, inc.Severity())
	assert.Equal(t, DefaultStatus, inc.Status())
	assert.Empty(t, inc.ID())
	assert.Empty(t, inc.ValidateAt(testNow))
}

func TestNewIncident_FailsFast(t *testing.T) {
	_, err := NewIncidentAt("", "Critical", testNow.Add(time.Hour), testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "title", vErr.Fields[0].Field)
	assert.Equal(t, MsgTitleRequired, vErr.Fields[0].Message)
}

func TestIncident_SetTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr string
	}{
		{"trimmed", "  Outage  ", "Outage", ""},
		{"exactly max", strings.Repeat("a", MaxTitleLength), strings.Repeat("a", MaxTitleLength), ""},
		{"multibyte counted as characters", strings.Repeat("é", MaxTitleLength), strings.Repeat("é", MaxTitleLength), ""},
		{"empty", "", "", MsgTitleRequired},
		{"whitespace", " \t\n ", "", MsgTitleRequired},
		{"too long", strings.Repeat("a", MaxTitleLength+1), "", MsgTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := &Incident{}
			err := inc.SetTitle(tt.title)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, inc.Title())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, inc.Title())
		})
	}
}

func TestIncident_SetTitle_Idempotent(t *testing.T) {
	inc := &Incident{}
	require.NoError(t, inc.SetTitle("  Broken login  "))
	first := inc.Title()
	require.NoError(t, inc.SetTitle(first))
	assert.Equal(t, first, inc.Title())
}

func TestIncident_SetTitle_KeepsPreviousOnFailure(t *testing.T) {
	inc := &Incident{}
	require.NoError(t, inc.SetTitle("Original"))
	require.Error(t, inc.SetTitle("   "))
	assert.Equal(t, "Original", inc.Title())
}

func TestIncident_SetSeverity(t *testing.T) {
	for _, raw := range []string{"high", "HIGH", "High", "hIGH"} {
		inc := &Incident{}
		require.NoError(t, inc.SetSeverity(raw), raw)
		assert.Equal(t, SeverityHigh, inc.Severity(), raw)
	}

	inc := &Incident{}
	require.NoError(t, inc.SetSeverity("medium"))
	assert.Equal(t, SeverityMedium, inc.Severity())
	require.NoError(t, inc.SetSeverity("LOW"))
	assert.Equal(t, SeverityLow, inc.Severity())

	err := inc.SetSeverity("Critical")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgSeverityInvalid)
	assert.Equal(t, SeverityLow, inc.Severity())

	err = inc.SetSeverity("  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgSeverityRequired)
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("medium")
	require.NoError(t, err)
	assert.Equal(t, SeverityMedium, s)

	again, err := ParseSeverity(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, again)

	_, err = ParseSeverity("urgent")
	assert.ErrorIs(t, err, ErrInvalidSeverity)
	assert.Contains(t, err.Error(), `"urgent"`)

	_, err = ParseSeverity("")
	assert.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestIncident_SetReportedAt(t *testing.T) {
	inc := &Incident{}

	require.NoError(t, inc.SetReportedAtAt(testNow, testNow))
	require.NoError(t, inc.SetReportedAtAt(testNow.AddDate(-10, 0, 0), testNow))

	err := inc.SetReportedAtAt(testNow.Add(time.Second), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgReportedInFuture)

	err = inc.SetReportedAtAt(testNow.AddDate(-10, 0, 0).Add(-time.Second), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgReportedTooOld)

	assert.Equal(t, testNow.AddDate(-10, 0, 0), inc.ReportedAt())
}

func TestIncident_Validate_CollectsAll(t *testing.T) {
	inc := &Incident{}
	errs := inc.ValidateAt(testNow)

	assert.Equal(t, []string{MsgTitleRequired, MsgSeverityRequired, MsgReportedTooOld}, errs)
	assert.False(t, inc.IsValid())
}

func TestIncident_Validate_Valid(t *testing.T) {
	inc, err := NewIncident("Printer on fire", "low", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, inc.Validate())
	assert.True(t, inc.IsValid())
}

func TestIncident_Age(t *testing.T) {
	inc, err := NewIncidentAt("Slow API", "Medium", testNow.Add(-50*time.Hour), testNow)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Hour, inc.AgeAt(testNow))
	assert.Equal(t, 51*time.Hour, inc.AgeAt(testNow.Add(time.Hour)))
	assert.GreaterOrEqual(t, inc.AgeDays(), 2)
	assert.GreaterOrEqual(t, inc.AgeHours(), 50.0)
}

func TestIncident_UrgencyScenarios(t *testing.T) {
	tests := []struct {
		name       string
		severity   string
		age        time.Duration
		wantScore  int
		wantLabel  string
		wantUrgent bool
	}{
		{"high two hours", "High", 2 * time.Hour, 10, "Critical - Immediate Action Required", true},
		{"medium one week", "Medium", 168 * time.Hour, 7, "High - Action Required Today", true},
		{"low thirty days", "Low", 720 * time.Hour, 3, "Low - Action Required Soon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc, err := NewIncidentAt("Scenario", tt.severity, testNow.Add(-tt.age), testNow)
			require.NoError(t, err)

			score := inc.UrgencyAt(testNow)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantLabel, DescribeUrgency(score))
			assert.Equal(t, tt.wantUrgent, IsUrgentScore(score))
		})
	}
}

func TestIncident_UrgencyNow(t *testing.T) {
	inc, err := NewIncident("Payments failing", "high", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 10, inc.Urgency())
	assert.Equal(t, "Critical - Immediate Action Required", inc.UrgencyDescription())
	assert.True(t, inc.IsUrgent())
}

func TestIncident_AssignID(t *testing.T) {
	inc := &Incident{}
	assert.True(t, inc.AssignID("a"))
	assert.False(t, inc.AssignID("b"))
	assert.Equal(t, "a", inc.ID())
}

func TestIncident_SameReport(t *testing.T) {
	a := &Incident{title: "Server Down", description: "Prod API is down"}
	b := &Incident{title: "  server down ", description: "PROD API IS DOWN"}
	c := &Incident{title: "Server Down", description: "Staging API is down"}

	assert.True(t, a.SameReport(b))
	assert.True(t, b.SameReport(a))
	assert.False(t, a.SameReport(c))
}

func TestIncident_SetDescription(t *testing.T) {
	inc := &Incident{}
	inc.SetDescription("  details  ")
	assert.Equal(t, "details", inc.Description())
	inc.SetDescription(inc.Description())
	assert.Equal(t, "details", inc.Description())
}
