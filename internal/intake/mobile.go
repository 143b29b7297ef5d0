package intake

import (
	"mime"
	"net/http"

	"github.com/bissquit/incident-intake/internal/pkg/httputil"
)

// CodeInvalidForm is returned when a form-encoded body cannot be parsed.
const CodeInvalidForm = "invalid_form"

// MobileIncidentRequest is the form body posted by the mobile app.
type MobileIncidentRequest struct {
	Title       string `json:"incident_title"`
	Description string `json:"incident_description"`
	Severity    string `json:"incident_severity"`
}

// ToCreateRequest translates mobile field names to the canonical request.
func (r *MobileIncidentRequest) ToCreateRequest() CreateIncidentRequest {
	return CreateIncidentRequest{
		Title:       r.Title,
		Description: r.Description,
		Severity:    r.Severity,
	}
}

// CreateMobileIncident handles POST /mobile/incidents request.
func (h *Handler) CreateMobileIncident(w http.ResponseWriter, r *http.Request) {
	var req MobileIncidentRequest
	if isFormPost(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := r.ParseForm(); err != nil {
			httputil.Error(w, http.StatusBadRequest, CodeInvalidForm, "invalid form")
			return
		}
		req = MobileIncidentRequest{
			Title:       r.PostForm.Get("incident_title"),
			Description: r.PostForm.Get("incident_description"),
			Severity:    r.PostForm.Get("incident_severity"),
		}
	} else if err := decodeJSON(w, r, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, httputil.CodeInvalidJSON, "invalid json")
		return
	}

	canonical := req.ToCreateRequest()
	h.submit(w, r, canonical.ToInput(SourceMobile))
}

func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}
