package intake

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
	"github.com/bissquit/incident-intake/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Error codes specific to incident intake.
const (
	CodeInvalidSeverity   = "invalid_severity"
	CodeDuplicateIncident = "duplicate_incident"
)

const maxRequestBody = 64 << 10

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrIncidentNotFound, Status: http.StatusNotFound, Code: httputil.CodeNotFound, Message: "incident not found"},
	{Error: ErrDuplicateIncident, Status: http.StatusConflict, Code: CodeDuplicateIncident, Message: "an incident with the same title and description was reported recently"},
	{Error: ErrResetDisabled, Status: http.StatusNotFound, Code: httputil.CodeNotFound, Message: "reset is disabled"},
	{Error: domain.ErrInvalidSeverity, Status: http.StatusBadRequest, Code: CodeInvalidSeverity},
}

// HandlerConfig holds handler settings.
type HandlerConfig struct {
	EnableReset bool
}

// Handler handles HTTP requests for the intake module.
type Handler struct {
	service     *Service
	view        *View
	enableReset bool
}

// NewHandler creates a new intake handler.
func NewHandler(service *Service, view *View, cfg HandlerConfig) *Handler {
	return &Handler{
		service:     service,
		view:        view,
		enableReset: cfg.EnableReset,
	}
}

// RegisterRoutes registers read and maintenance routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/incidents", h.ListIncidents)
	r.Delete("/incidents", h.ResetIncidents)
	r.Get("/incidents/{id}", h.GetIncident)
	r.Get("/urgency/samples", h.GetUrgencySamples)
}

// RegisterSubmitRoutes registers the routes that create incidents.
func (h *Handler) RegisterSubmitRoutes(r chi.Router) {
	r.Post("/incidents", h.CreateIncident)
	r.Post("/mobile/incidents", h.CreateMobileIncident)
}

// RegisterViewRoutes registers the server-rendered pages.
func (h *Handler) RegisterViewRoutes(r chi.Router) {
	r.Get("/incidents", h.RenderIncidents)
}

// CreateIncidentRequest represents the request body for creating an incident.
type CreateIncidentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ToInput converts the request to service input.
func (r *CreateIncidentRequest) ToInput(source string) SubmitInput {
	return SubmitInput{
		Title:       r.Title,
		Description: r.Description,
		Severity:    r.Severity,
		Source:      source,
	}
}

// IncidentResponse is the JSON representation of an incident.
type IncidentResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Severity           domain.Severity `json:"severity"`
	CreatedAt          time.Time       `json:"createdAt"`
	Status             string          `json:"status"`
	Urgency            int             `json:"urgency"`
	UrgencyDescription string          `json:"urgencyDescription"`
	IsUrgent           bool            `json:"isUrgent"`
}

// NewIncidentResponse builds the response for inc with urgency as of now.
func NewIncidentResponse(inc *domain.Incident, now time.Time) IncidentResponse {
	score := inc.UrgencyAt(now)
	return IncidentResponse{
		ID:                 inc.ID(),
		Title:              inc.Title(),
		Description:        inc.Description(),
		Severity:           inc.Severity(),
		CreatedAt:          inc.CreatedAt(),
		Status:             inc.Status(),
		Urgency:            score,
		UrgencyDescription: domain.DescribeUrgency(score),
		IsUrgent:           domain.IsUrgentScore(score),
	}
}

// ListIncidentsResponse wraps the incident list with its size.
type ListIncidentsResponse struct {
	Incidents []IncidentResponse `json:"incidents"`
	Count     int                `json:"count"`
}

// CreateIncident handles POST /incidents request.
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req CreateIncidentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid json")
		return
	}

	h.submit(w, r, req.ToInput(SourceAPI))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, input SubmitInput) {
	incident, err := h.service.Submit(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/incidents/"+incident.ID())
	httputil.Success(w, http.StatusCreated, NewIncidentResponse(incident, incident.CreatedAt()))
}

// GetIncident handles GET /incidents/{id} request.
func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	incident, err := h.service.GetIncident(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, NewIncidentResponse(incident, h.service.Now()))
}

// ListIncidents handles GET /incidents request.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := h.service.ListIncidents(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	now := h.service.Now()
	resp := ListIncidentsResponse{
		Incidents: make([]IncidentResponse, 0, len(incidents)),
		Count:     len(incidents),
	}
	for _, inc := range incidents {
		resp.Incidents = append(resp.Incidents, NewIncidentResponse(inc, now))
	}

	httputil.Success(w, http.StatusOK, resp)
}

// ResetIncidents handles DELETE /incidents request.
func (h *Handler) ResetIncidents(w http.ResponseWriter, r *http.Request) {
	if !h.enableReset {
		h.handleServiceError(w, r, ErrResetDisabled)
		return
	}

	if err := h.service.Reset(r.Context()); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetUrgencySamples handles GET /urgency/samples request.
func (h *Handler) GetUrgencySamples(w http.ResponseWriter, r *http.Request) {
	samples, err := SampleUrgencies(h.service.Now())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusOK, samples)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrValidation) {
		httputil.ValidationError(w, err)
		return
	}
	httputil.HandleError(r.Context(), w, err, errorMappings)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
