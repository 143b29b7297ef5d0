// Package memory provides the process-local incident store.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
	"github.com/bissquit/incident-intake/internal/intake"
)

// Repository implements intake.Repository on an in-memory slice.
// All writes and the duplicate check share one lock.
type Repository struct {
	mu        sync.RWMutex
	incidents []domain.Incident
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// CreateUnlessDuplicate appends incident unless a matching report was
// created after since.
func (r *Repository) CreateUnlessDuplicate(_ context.Context, incident *domain.Incident, since time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.incidents {
		existing := &r.incidents[i]
		if existing.CreatedAt().After(since) && existing.SameReport(incident) {
			return intake.ErrDuplicateIncident
		}
	}

	r.incidents = append(r.incidents, *incident)
	return nil
}

// GetIncident returns a copy of the incident with the given ID.
func (r *Repository) GetIncident(_ context.Context, id string) (*domain.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.incidents {
		if r.incidents[i].ID() == id {
			inc := r.incidents[i]
			return &inc, nil
		}
	}
	return nil, intake.ErrIncidentNotFound
}

// ListIncidents returns copies of all incidents, newest first. Incidents
// created at the same instant keep reverse admission order.
func (r *Repository) ListIncidents(_ context.Context) ([]*domain.Incident, error) {
	r.mu.RLock()
	out := make([]*domain.Incident, 0, len(r.incidents))
	for i := len(r.incidents) - 1; i >= 0; i-- {
		inc := r.incidents[i]
		out = append(out, &inc)
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b *domain.Incident) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return out, nil
}

// CountIncidents returns the number of stored incidents.
func (r *Repository) CountIncidents(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.incidents), nil
}

// Reset removes all incidents.
func (r *Repository) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incidents = nil
	return nil
}
