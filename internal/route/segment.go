package route

import (
	"time"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// StatusChange pairs a status event with the location sample nearest in time
// to it, for map annotation. Location is nil when the day has no samples.
type StatusChange struct {
	Time     time.Time
	Status   string
	Location *models.LocationSample
}

// BuildSegments walks the merged timeline in order and groups location points
// into path segments, closing the open segment whenever a status event
// intervenes and flushing the final one at end of stream. A status event that
// closes a populated segment opens a successor; if no points follow, that
// successor is emitted empty so the status is still represented. Every
// location point is annotated with the status active while it was recorded.
//
// The concatenation of all segment point lists reproduces the location order
// exactly; for k status events at most k+1 segments are produced.
//
// points must be the classification output for the same samples that were
// merged into the timeline, in the same order.
func BuildSegments(timeline []models.TimelineEvent, points []models.RoutePoint) ([]models.Segment, []models.RoutePoint, []StatusChange) {
	samples := make([]models.LocationSample, len(points))
	for i := range points {
		samples[i] = points[i].Sample
	}

	annotated := make([]models.RoutePoint, len(points))
	copy(annotated, points)

	var (
		segments      []models.Segment
		changes       []StatusChange
		current       models.Segment
		currentStatus = models.StatusUnknown
		locIndex      int
		reopened      bool
	)

	for _, event := range timeline {
		switch event.Kind {
		case models.TimelineStatus:
			if len(current.Points) > 0 {
				segments = append(segments, current)
				current = models.Segment{}
				reopened = true
			}
			currentStatus = event.Status
			current.Status = currentStatus
			current.StartTime = event.Time
			current.EndTime = event.Time
			changes = append(changes, StatusChange{
				Time:     event.Time,
				Status:   event.Status,
				Location: NearestLocation(samples, event.Time),
			})

		case models.TimelineLocation:
			if event.Location == nil || locIndex >= len(annotated) {
				continue
			}
			if len(current.Points) == 0 {
				current.Status = currentStatus
				current.StartTime = event.Time
			}
			current.Points = append(current.Points, models.LatLon{
				Lat: event.Location.Latitude,
				Lon: event.Location.Longitude,
			})
			current.EndTime = event.Time
			annotated[locIndex].Status = currentStatus
			locIndex++
		}
	}

	if len(current.Points) > 0 || reopened {
		segments = append(segments, current)
	}
	return segments, annotated, changes
}
