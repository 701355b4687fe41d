package route

import (
	"sort"
	"time"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// Merge combines normalized location samples and status events into a single
// timeline sorted ascending by timestamp. The sort is stable with status
// events placed first, so a status change that coincides exactly with a
// location fix takes effect before the fix is processed.
func Merge(locations []models.LocationSample, statuses []models.StatusEvent) []models.TimelineEvent {
	events := make([]models.TimelineEvent, 0, len(locations)+len(statuses))

	for _, s := range statuses {
		events = append(events, models.TimelineEvent{
			Kind:   models.TimelineStatus,
			Time:   s.Timestamp,
			Status: s.Status,
		})
	}
	for i := range locations {
		loc := locations[i]
		events = append(events, models.TimelineEvent{
			Kind:     models.TimelineLocation,
			Time:     loc.Timestamp,
			Location: &loc,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})
	return events
}

// StatusAt returns the status active at time t: the status whose timestamp is
// the latest one not after t. Before the first event the status is "unknown".
func StatusAt(statuses []models.StatusEvent, t time.Time) string {
	current := models.StatusUnknown
	for _, s := range statuses {
		if s.Timestamp.After(t) {
			break
		}
		current = s.Status
	}
	return current
}

// NearestLocation returns the sample whose timestamp is closest to t, or nil
// when the list is empty. On a tie the earlier sample wins.
func NearestLocation(locations []models.LocationSample, t time.Time) *models.LocationSample {
	if len(locations) == 0 {
		return nil
	}

	best := 0
	bestDiff := absDuration(locations[0].Timestamp.Sub(t))
	for i := 1; i < len(locations); i++ {
		diff := absDuration(locations[i].Timestamp.Sub(t))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return &locations[best]
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
