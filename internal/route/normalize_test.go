package route

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

func testNormalizer(now time.Time) *Normalizer {
	n := NewNormalizer(time.UTC)
	n.now = func() time.Time { return now }
	return n
}

func TestParseTimestampFormats(t *testing.T) {
	fallback := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	n := testNormalizer(fallback)

	ts, ok := n.ParseTimestamp("2026-03-02 09:30:00")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), ts)

	ts, ok = n.ParseTimestamp("2026-03-02 09:30:00.123456")
	assert.True(t, ok)
	assert.Equal(t, 123456000, ts.Nanosecond())

	ts, ok = n.ParseTimestamp([]byte("2026-03-02 09:30:00"))
	assert.True(t, ok)
	assert.Equal(t, 9, ts.Hour())

	native := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	ts, ok = n.ParseTimestamp(native)
	assert.True(t, ok)
	assert.Equal(t, native, ts)

	// Unparseable values fall back to now instead of failing the batch.
	ts, ok = n.ParseTimestamp("yesterday around noon")
	assert.False(t, ok)
	assert.Equal(t, fallback, ts)

	ts, ok = n.ParseTimestamp(nil)
	assert.False(t, ok)
	assert.Equal(t, fallback, ts)
}

func TestNormalizeLocationsDropsInvalidRows(t *testing.T) {
	n := testNormalizer(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	rows := []models.RawLocationRow{
		{SubjectID: 1, Latitude: 55.75, Longitude: 37.61, Timestamp: "2026-03-02 09:00:00"},
		{SubjectID: 1, Latitude: "not-a-number", Longitude: 37.61, Timestamp: "2026-03-02 09:01:00"},
		{SubjectID: 1, Latitude: 95.0, Longitude: 37.61, Timestamp: "2026-03-02 09:02:00"},
		{SubjectID: 1, Latitude: 55.76, Longitude: 200.0, Timestamp: "2026-03-02 09:03:00"},
		{SubjectID: 1, Latitude: "55.77", Longitude: "37.62", Timestamp: "2026-03-02 09:04:00"},
	}

	samples := n.NormalizeLocations(rows)
	require.Len(t, samples, 2, "rows with bad coordinates must be dropped")
	assert.Equal(t, 55.75, samples[0].Latitude)
	assert.Equal(t, 55.77, samples[1].Latitude)
}

func TestNormalizeLocationsSortsAndDefaults(t *testing.T) {
	n := testNormalizer(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	rows := []models.RawLocationRow{
		{SubjectID: 1, Latitude: 55.76, Longitude: 37.61, Timestamp: "2026-03-02 10:00:00",
			SessionID: sql.NullString{String: "session_1_abc", Valid: true},
			Kind:      sql.NullString{String: models.PointEnd, Valid: true}},
		{SubjectID: 1, Latitude: 55.75, Longitude: 37.61, Timestamp: "2026-03-02 09:00:00"},
	}

	samples := n.NormalizeLocations(rows)
	require.Len(t, samples, 2)
	assert.True(t, samples[0].Timestamp.Before(samples[1].Timestamp))

	// Old rows without session or kind columns get defaults.
	assert.Equal(t, "unknown_session", samples[0].SessionID)
	assert.Equal(t, models.PointIntermediate, samples[0].Kind)
	assert.Equal(t, "session_1_abc", samples[1].SessionID)
	assert.Equal(t, models.PointEnd, samples[1].Kind)
}

func TestNormalizeStatusesSorts(t *testing.T) {
	n := testNormalizer(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))

	rows := []models.RawStatusRow{
		{SubjectID: 1, Status: models.StatusHome, Timestamp: "2026-03-02 18:00:00"},
		{SubjectID: 1, Status: models.StatusOffice, Timestamp: "2026-03-02 09:00:00"},
	}

	events := n.NormalizeStatuses(rows)
	require.Len(t, events, 2)
	assert.Equal(t, models.StatusOffice, events[0].Status)
	assert.Equal(t, models.StatusHome, events[1].Status)
}
