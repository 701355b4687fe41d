package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

func TestBuildArtifactNoData(t *testing.T) {
	cfg := DefaultRendererConfig()
	artifact := BuildArtifact(1, "Alice", "2026-03-02", nil, nil, nil, nil, cfg)

	require.NotNil(t, artifact)
	assert.True(t, artifact.NoData)
	assert.Equal(t, cfg.DefaultCenter, artifact.Center)
	assert.Equal(t, cfg.EmptyZoom, artifact.Zoom)
	require.Len(t, artifact.Markers, 1)
	assert.Equal(t, models.MarkerInfo, artifact.Markers[0].Kind)
	assert.Equal(t, "gray", artifact.Markers[0].Color)
	assert.Empty(t, artifact.Polylines)
}

func TestBuildArtifactStatusOnly(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	statuses := []models.StatusEvent{
		statusAt(base, models.StatusSick),
	}

	cfg := DefaultRendererConfig()
	artifact := BuildArtifact(1, "Alice", "2026-03-02", nil, nil, nil, statuses, cfg)

	assert.False(t, artifact.NoData)
	assert.True(t, artifact.StatusOnly)
	assert.Equal(t, cfg.DefaultCenter, artifact.Center)
	require.Len(t, artifact.Markers, 1)
	assert.Equal(t, models.MarkerInfo, artifact.Markers[0].Kind)
	assert.Contains(t, artifact.Markers[0].Label, models.StatusLabel(models.StatusSick))
}

func TestBuildArtifactFullRoute(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	statuses := []models.StatusEvent{statusAt(base, models.StatusOffice)}

	var locations []models.LocationSample
	for i := 0; i < 4; i++ {
		locations = append(locations, sampleAt(base.Add(time.Duration(i*5)*time.Minute), 55.75+float64(i)*0.001, 37.61))
	}

	c := NewClassifier(DefaultThresholds(), NewStateStore())
	points := c.ClassifyAll(locations)
	timeline := Merge(locations, statuses)
	segments, annotated, changes := BuildSegments(timeline, points)

	cfg := DefaultRendererConfig()
	artifact := BuildArtifact(1, "Alice", "2026-03-02", segments, annotated, changes, statuses, cfg)

	assert.False(t, artifact.NoData)
	assert.False(t, artifact.StatusOnly)
	assert.Equal(t, cfg.RouteZoom, artifact.Zoom)
	assert.InDelta(t, 55.7515, artifact.Center.Lat, 0.0001, "center is the mean of all fixes")

	var starts, ends int
	for _, m := range artifact.Markers {
		switch m.Kind {
		case models.MarkerRouteStart:
			starts++
		case models.MarkerRouteEnd:
			ends++
		}
	}
	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)

	require.Len(t, artifact.Polylines, 1)
	assert.Len(t, artifact.Polylines[0].Points, 4)
	assert.Equal(t, segmentColors[0], artifact.Polylines[0].Color)
}

func TestBuildArtifactSkipsUndrawableSegments(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	statuses := []models.StatusEvent{
		statusAt(base, models.StatusOffice),
		statusAt(base.Add(time.Hour), models.StatusHome),
	}
	locations := []models.LocationSample{
		sampleAt(base.Add(10*time.Minute), 55.75, 37.61),
		sampleAt(base.Add(20*time.Minute), 55.751, 37.61),
	}

	c := NewClassifier(DefaultThresholds(), NewStateStore())
	points := c.ClassifyAll(locations)
	timeline := Merge(locations, statuses)
	segments, annotated, changes := BuildSegments(timeline, points)
	require.Len(t, segments, 2)

	artifact := BuildArtifact(1, "Alice", "2026-03-02", segments, annotated, changes, statuses, DefaultRendererConfig())
	assert.Len(t, artifact.Polylines, 1, "the trailing empty segment is not drawn")
}

func TestBuildArtifactLocationsWithoutStatuses(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	locations := []models.LocationSample{
		sampleAt(base, 55.75, 37.61),
		sampleAt(base.Add(10*time.Minute), 55.751, 37.61),
	}

	c := NewClassifier(DefaultThresholds(), NewStateStore())
	points := c.ClassifyAll(locations)
	timeline := Merge(locations, nil)
	segments, annotated, changes := BuildSegments(timeline, points)

	artifact := BuildArtifact(1, "Alice", "2026-03-02", segments, annotated, changes, nil, DefaultRendererConfig())
	assert.False(t, artifact.StatusOnly)
	assert.Equal(t, "No status data", artifact.Banner)
	require.Len(t, artifact.Segments, 1)
	assert.Equal(t, models.StatusUnknown, artifact.Segments[0].Status)
}

func TestSegmentColorCycle(t *testing.T) {
	assert.Len(t, segmentColors, 10)
	assert.Equal(t, segmentColors[0], segmentColors[10%len(segmentColors)])
}
