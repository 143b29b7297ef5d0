package intake

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
	"github.com/bissquit/incident-intake/internal/pkg/ctxlog"
	"github.com/bissquit/incident-intake/internal/pkg/httputil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// View renders the incident list page.
type View struct {
	tmpl *template.Template
}

// NewView parses the embedded page templates.
func NewView() (*View, error) {
	funcMap := template.FuncMap{
		"title":        titleCase,
		"formatTime":   formatTime,
		"formatAge":    formatAge,
		"urgencyClass": urgencyClass,
	}

	tmpl, err := template.New("incidents.html.tmpl").Funcs(funcMap).ParseFS(templatesFS, "templates/incidents.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse incidents template: %w", err)
	}

	return &View{tmpl: tmpl}, nil
}

type viewRow struct {
	IncidentResponse
	Age time.Duration
}

type viewData struct {
	Incidents   []viewRow
	Count       int
	UrgentCount int
	GeneratedAt time.Time
}

// Render writes the incident table for incidents as of now.
func (v *View) Render(incidents []*domain.Incident, now time.Time) ([]byte, error) {
	data := viewData{
		Incidents:   make([]viewRow, 0, len(incidents)),
		Count:       len(incidents),
		GeneratedAt: now,
	}
	for _, inc := range incidents {
		row := viewRow{IncidentResponse: NewIncidentResponse(inc, now), Age: inc.AgeAt(now)}
		if row.IsUrgent {
			data.UrgentCount++
		}
		data.Incidents = append(data.Incidents, row)
	}

	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute incidents template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderIncidents handles GET /incidents (HTML).
func (h *Handler) RenderIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.service.ListIncidents(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	page, err := h.view.Render(incidents, h.service.Now())
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to render incidents page", "error", err)
		httputil.Text(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	httputil.HTML(w, http.StatusOK, page)
}

// Template functions

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 15:04 UTC")
}

func formatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	days := int(d / (24 * time.Hour))
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func urgencyClass(score int) string {
	switch {
	case score >= 9:
		return "critical"
	case domain.IsUrgentScore(score):
		return "high"
	case score >= 5:
		return "medium"
	default:
		return strings.ToLower(string(domain.SeverityLow))
	}
}
