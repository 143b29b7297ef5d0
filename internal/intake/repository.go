package intake

import (
	"context"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
)

// Repository defines the interface for incident storage.
type Repository interface {
	// CreateUnlessDuplicate stores incident unless an incident with the same
	// report was created after since. The check and the insert are atomic.
	// Returns ErrDuplicateIncident when a match exists.
	CreateUnlessDuplicate(ctx context.Context, incident *domain.Incident, since time.Time) error
	GetIncident(ctx context.Context, id string) (*domain.Incident, error)
	// ListIncidents returns all incidents, most recently created first.
	ListIncidents(ctx context.Context) ([]*domain.Incident, error)
	CountIncidents(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}
