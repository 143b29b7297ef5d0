// Package intake admits incident reports into the in-memory store and serves them over HTTP.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
	"github.com/bissquit/incident-intake/internal/pkg/ctxlog"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultDuplicateWindow is how long an identical report is rejected.
const DefaultDuplicateWindow = 24 * time.Hour

// Submission sources.
const (
	SourceAPI    = "api"
	SourceMobile = "mobile"
)

// ServiceConfig holds gatekeeper settings.
type ServiceConfig struct {
	DuplicateWindow time.Duration
}

// Service implements incident submission and lookup.
type Service struct {
	repo            Repository
	validate        *validator.Validate
	duplicateWindow time.Duration
	now             func() time.Time
	newID           func() string
}

// NewService creates a new intake service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	window := cfg.DuplicateWindow
	if window <= 0 {
		window = DefaultDuplicateWindow
	}

	return &Service{
		repo:            repo,
		validate:        validator.New(),
		duplicateWindow: window,
		now:             time.Now,
		newID:           func() string { return uuid.New().String() },
	}
}

// SubmitInput holds data for submitting an incident.
type SubmitInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=1000"`
	Severity    string `validate:"required"`
	Source      string `validate:"-"`
}

func (in SubmitInput) normalized() SubmitInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Severity = strings.TrimSpace(in.Severity)
	if in.Source == "" {
		in.Source = SourceAPI
	}
	return in
}

// Submit validates input, rejects duplicates and stores a new incident.
// Checks run in order and stop at the first failing step: field shape,
// severity, duplicate window.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Incident, error) {
	logger := ctxlog.FromContext(ctx)
	input = input.normalized()

	if err := s.validateShape(input); err != nil {
		recordSubmission(input.Source, outcomeValidationError)
		logger.Debug("incident rejected", "reason", "validation", "error", err)
		return nil, err
	}

	severity, err := domain.ParseSeverity(input.Severity)
	if err != nil {
		recordSubmission(input.Source, outcomeInvalidSeverity)
		logger.Debug("incident rejected", "reason", "severity", "severity", input.Severity)
		return nil, err
	}

	now := s.now()
	incident, err := domain.NewIncidentAt(input.Title, severity.String(), now, now)
	if err != nil {
		recordSubmission(input.Source, outcomeValidationError)
		return nil, err
	}
	incident.SetDescription(input.Description)
	incident.SetStatus(domain.DefaultStatus)
	incident.AssignID(s.newID())

	if err := s.repo.CreateUnlessDuplicate(ctx, incident, now.Add(-s.duplicateWindow)); err != nil {
		if errors.Is(err, ErrDuplicateIncident) {
			recordSubmission(input.Source, outcomeDuplicate)
			logger.Debug("incident rejected", "reason", "duplicate", "title", incident.Title())
			return nil, err
		}
		recordSubmission(input.Source, outcomeError)
		return nil, fmt.Errorf("create incident: %w", err)
	}

	recordSubmission(input.Source, outcomeCreated)
	s.refreshStoredGauge(ctx)

	logger.Info("incident admitted",
		"incident_id", incident.ID(),
		"severity", incident.Severity(),
		"source", input.Source,
	)

	return incident, nil
}

func (s *Service) validateShape(input SubmitInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, e := range verrs {
		name := strings.ToLower(e.Field())
		var msg string
		switch e.Tag() {
		case "required":
			msg = name + " is required"
		case "max":
			msg = fmt.Sprintf("%s cannot exceed %s characters", name, e.Param())
		default:
			msg = fmt.Sprintf("%s is invalid (%s)", name, e.Tag())
		}
		fields = append(fields, domain.FieldError{Field: name, Message: msg})
	}
	return domain.NewValidationError(fields)
}

// GetIncident returns an incident by ID.
func (s *Service) GetIncident(ctx context.Context, id string) (*domain.Incident, error) {
	return s.repo.GetIncident(ctx, id)
}

// ListIncidents returns all incidents, most recent first.
func (s *Service) ListIncidents(ctx context.Context) ([]*domain.Incident, error) {
	return s.repo.ListIncidents(ctx)
}

// Reset removes every stored incident.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset incidents: %w", err)
	}
	recordStored(0)
	ctxlog.FromContext(ctx).Warn("incident store reset")
	return nil
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) refreshStoredGauge(ctx context.Context) {
	count, err := s.repo.CountIncidents(ctx)
	if err != nil {
		ctxlog.FromContext(ctx).Error("failed to count incidents", "error", err)
		return
	}
	recordStored(count)
}
