package route

import (
	"math"
	"sort"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/metrics"
	"github.com/worktrack/tracker-backend-go/internal/models"
)

// Timestamp layouts accepted from storage. Older rows were written with
// second precision, newer ones carry microseconds.
const (
	TimeLayout      = "2006-01-02 15:04:05"
	TimeLayoutMicro = "2006-01-02 15:04:05.999999"
)

// Normalizer converts heterogeneous storage rows into uniform, time-ordered
// sample and event sequences. Rows with unparseable or out-of-range
// coordinates are dropped with a diagnostic; unparseable timestamps fall back
// to the current time instead of failing the batch (inherited policy).
type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

// NewNormalizer creates a normalizer operating in the given timezone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc, now: time.Now}
}

// ParseTimestamp converts a storage timestamp of unknown type into time.Time.
// Returns false when the fallback to "now" was taken.
func (n *Normalizer) ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.In(n.loc), true
	case string:
		return n.parseTimeString(t)
	case []byte:
		return n.parseTimeString(string(t))
	case int64:
		return time.Unix(t, 0).In(n.loc), true
	}
	return n.now().In(n.loc), false
}

func (n *Normalizer) parseTimeString(s string) (time.Time, bool) {
	if t, err := time.ParseInLocation(TimeLayout, s, n.loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(TimeLayoutMicro, s, n.loc); err == nil {
		return t, true
	}
	return n.now().In(n.loc), false
}

// parseCoordinate converts a coordinate of unknown storage type to float64.
func parseCoordinate(v any) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case float32:
		return float64(c), true
	case int64:
		return float64(c), true
	case string:
		f, err := strconv.ParseFloat(c, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(c), 64)
		return f, err == nil
	}
	return 0, false
}

func validCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// NormalizeLocations converts raw location rows into validated samples sorted
// ascending by timestamp. Invalid rows are logged and skipped.
func (n *Normalizer) NormalizeLocations(rows []models.RawLocationRow) []models.LocationSample {
	samples := make([]models.LocationSample, 0, len(rows))

	for _, row := range rows {
		lat, latOK := parseCoordinate(row.Latitude)
		lon, lonOK := parseCoordinate(row.Longitude)
		if !latOK || !lonOK {
			log.Warnf("[Normalizer] Dropping location row with unparseable coordinates: %v, %v", row.Latitude, row.Longitude)
			metrics.RecordsDropped.Inc()
			continue
		}
		if !validCoordinates(lat, lon) {
			log.Warnf("[Normalizer] Dropping location row with out-of-range coordinates: %f, %f", lat, lon)
			metrics.RecordsDropped.Inc()
			continue
		}

		ts, parsed := n.ParseTimestamp(row.Timestamp)
		if !parsed {
			log.Warnf("[Normalizer] Unparseable location timestamp %v, falling back to now", row.Timestamp)
		}

		sessionID := "unknown_session"
		if row.SessionID.Valid && row.SessionID.String != "" {
			sessionID = row.SessionID.String
		}
		kind := models.PointIntermediate
		if row.Kind.Valid && row.Kind.String != "" {
			kind = row.Kind.String
		}

		samples = append(samples, models.LocationSample{
			SubjectID: row.SubjectID,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: ts,
			SessionID: sessionID,
			Kind:      kind,
		})
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})

	if dropped := len(rows) - len(samples); dropped > 0 {
		log.Infof("[Normalizer] Kept %d of %d location rows (%d dropped)", len(samples), len(rows), dropped)
	}
	return samples
}

// NormalizeStatuses converts raw status rows into events sorted ascending by
// timestamp.
func (n *Normalizer) NormalizeStatuses(rows []models.RawStatusRow) []models.StatusEvent {
	events := make([]models.StatusEvent, 0, len(rows))

	for _, row := range rows {
		ts, parsed := n.ParseTimestamp(row.Timestamp)
		if !parsed {
			log.Warnf("[Normalizer] Unparseable status timestamp %v, falling back to now", row.Timestamp)
		}
		events = append(events, models.StatusEvent{
			SubjectID: row.SubjectID,
			Status:    row.Status,
			Timestamp: ts,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}
