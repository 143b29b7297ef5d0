package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bissquit/incident-intake/internal/domain"
	"github.com/bissquit/incident-intake/internal/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncident(t *testing.T, id, title, description string, createdAt time.Time) *domain.Incident {
	t.Helper()
	inc, err := domain.NewIncidentAt(title, "Medium", createdAt, createdAt)
	require.NoError(t, err)
	inc.SetDescription(description)
	inc.AssignID(id)
	return inc
}

func TestRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	inc := newIncident(t, "id-1", "Disk full", "db-1 is out of space", now)
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, inc, now.Add(-24*time.Hour)))

	got, err := repo.GetIncident(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Disk full", got.Title())
	assert.Equal(t, "db-1 is out of space", got.Description())

	_, err = repo.GetIncident(ctx, "missing")
	assert.ErrorIs(t, err, intake.ErrIncidentNotFound)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	inc := newIncident(t, "id-1", "Disk full", "db-1", now)
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, inc, now.Add(-time.Hour)))

	require.NoError(t, inc.SetTitle("changed after insert"))
	got, err := repo.GetIncident(ctx, "id-1")
	require.NoError(t, err)
	require.NoError(t, got.SetTitle("changed after get"))

	again, err := repo.GetIncident(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "Disk full", again.Title())
}

func TestRepository_DuplicateWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := newIncident(t, "id-1", "Server Down", "Prod API is down", now.Add(-23*time.Hour))
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, first, now.Add(-47*time.Hour)))

	dup := newIncident(t, "id-2", "  server down ", "PROD API IS DOWN", now)
	err := repo.CreateUnlessDuplicate(ctx, dup, now.Add(-24*time.Hour))
	assert.ErrorIs(t, err, intake.ErrDuplicateIncident)

	// Same report once the window has passed.
	later := now.Add(2 * time.Hour)
	dupLater := newIncident(t, "id-3", "Server Down", "Prod API is down", later)
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, dupLater, later.Add(-24*time.Hour)))

	// Different description is never a duplicate.
	other := newIncident(t, "id-4", "Server Down", "Staging API is down", later)
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, other, later.Add(-24*time.Hour)))

	count, err := repo.CountIncidents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "b", "B", "b", base.Add(time.Hour)), base.Add(-time.Hour)))
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "a", "A", "a", base), base.Add(-time.Hour)))
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "c", "C", "c", base.Add(2*time.Hour)), base.Add(-time.Hour)))
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "d", "D", "d", base.Add(2*time.Hour)), base.Add(-time.Hour)))

	list, err := repo.ListIncidents(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, inc := range list {
		ids = append(ids, inc.ID())
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)
}

func TestRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "a", "A", "a", now), now.Add(-time.Hour)))
	require.NoError(t, repo.Reset(ctx))

	list, err := repo.ListIncidents(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The same report is accepted again after a reset.
	require.NoError(t, repo.CreateUnlessDuplicate(ctx, newIncident(t, "b", "A", "a", now), now.Add(-time.Hour)))
}

func TestRepository_ConcurrentDuplicatesAdmitOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	now := time.Now()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	created, rejected := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inc := newIncident(t, fmt.Sprintf("id-%d", i), "Same title", "Same description", now)
			err := repo.CreateUnlessDuplicate(ctx, inc, now.Add(-24*time.Hour))

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else {
				assert.ErrorIs(t, err, intake.ErrDuplicateIncident)
				rejected++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, rejected)
}
