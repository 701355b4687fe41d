package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

func TestTimeoffLifecycle(t *testing.T) {
	repo := NewTimeoffRepository(newTestDB(t), time.UTC)

	id, err := repo.Create(1, "Alice", "dentist appointment")
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	pending, err := repo.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.TimeoffPending, pending[0].Status)
	assert.Equal(t, "dentist appointment", pending[0].Reason)
	assert.Nil(t, pending[0].ResponseTime)

	require.NoError(t, repo.Respond(id, 99, models.TimeoffApproved))

	pending, err = repo.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	requests, err := repo.ListForSubject(1)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.TimeoffApproved, requests[0].Status)
	require.NotNil(t, requests[0].AdminID)
	assert.Equal(t, int64(99), *requests[0].AdminID)
	assert.NotNil(t, requests[0].ResponseTime)
}

func TestTimeoffRespondGuardsResolvedRequests(t *testing.T) {
	repo := NewTimeoffRepository(newTestDB(t), time.UTC)

	id, err := repo.Create(1, "Alice", "moving day")
	require.NoError(t, err)
	require.NoError(t, repo.Respond(id, 99, models.TimeoffRejected))

	err = repo.Respond(id, 99, models.TimeoffApproved)
	assert.Error(t, err, "a resolved request must not be re-resolved")

	err = repo.Respond(12345, 99, models.TimeoffApproved)
	assert.Error(t, err, "unknown request ids are rejected")
}

func TestTimeoffStats(t *testing.T) {
	repo := NewTimeoffRepository(newTestDB(t), time.UTC)

	a, err := repo.Create(1, "Alice", "one")
	require.NoError(t, err)
	b, err := repo.Create(1, "Alice", "two")
	require.NoError(t, err)
	_, err = repo.Create(1, "Alice", "three")
	require.NoError(t, err)

	require.NoError(t, repo.Respond(a, 99, models.TimeoffApproved))
	require.NoError(t, repo.Respond(b, 99, models.TimeoffRejected))

	stats, err := repo.StatsForSubject(1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Pending)
}
