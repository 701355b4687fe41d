package service

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReportDay(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, env.userRepo.Upsert(1, "Alice", false))

	_, err := env.db.Exec(`INSERT INTO status_history (subject_id, status, timestamp)
		VALUES (1, 'office', '2026-03-02 09:00:00'),
		       (1, 'home', '2026-03-02 18:00:00')`)
	require.NoError(t, err)

	_, err = env.db.Exec(`INSERT INTO location_history (subject_id, latitude, longitude, timestamp, session_id, location_type)
		VALUES (1, 55.75, 37.61, '2026-03-02 09:30:00', 's1', 'start'),
		       (1, 55.751, 37.611, '2026-03-02 12:00:00', 's1', 'intermediate')`)
	require.NoError(t, err)
}

func TestBuildReportChronology(t *testing.T) {
	env := newTestEnv(t)
	seedReportDay(t, env)

	rows, err := env.report.BuildReport(1, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// Chronological with sequential ids assigned after the sort.
	for i, row := range rows {
		assert.Equal(t, i+1, row.ID)
		assert.Equal(t, "Alice", row.Name)
		if i > 0 {
			assert.False(t, row.Timestamp.Before(rows[i-1].Timestamp))
		}
	}
	assert.Equal(t, "Status", rows[0].EventType)
	assert.Equal(t, "Location", rows[1].EventType)
	assert.Equal(t, "Location", rows[2].EventType)
	assert.Equal(t, "Status", rows[3].EventType)
}

func TestBuildReportEmptyDayPlaceholder(t *testing.T) {
	env := newTestEnv(t)

	rows, err := env.report.BuildReport(7, "2026-03-02")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "No data", rows[0].EventType)
	assert.Equal(t, "User_7", rows[0].Name)
	assert.Equal(t, 1, rows[0].ID)
}

func TestWriteCSV(t *testing.T) {
	env := newTestEnv(t)
	seedReportDay(t, env)

	path, err := env.report.WriteCSV(1, "2026-03-02")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header plus four rows")
	assert.Equal(t, []string{"id", "name", "subject_id", "event_type", "value", "timestamp"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Alice", records[1][1])
}

func TestWriteHTML(t *testing.T) {
	env := newTestEnv(t)
	seedReportDay(t, env)

	path, err := env.report.WriteHTML(1, "2026-03-02")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "Activity report: Alice (2026-03-02)")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "09:30:00")
}
