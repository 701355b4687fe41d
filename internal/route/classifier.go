package route

import (
	"sync"

	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/spatial"
)

// Thresholds holds the movement classification tuning values.
type Thresholds struct {
	StationaryRadiusMeters float64 // displacement below this accumulates dwell time
	DwellSeconds           float64 // accumulated dwell before a point is stationary
	AlertSeconds           float64 // accumulated dwell before the admin alert fires
	FastSpeedKmh           float64 // speed above this is fast_moving
}

// DefaultThresholds returns the production thresholds: 10 m radius, 5 minute
// dwell window, 30 minute alert window, 50 km/h fast-movement cutoff.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StationaryRadiusMeters: 10,
		DwellSeconds:           300,
		AlertSeconds:           1800,
		FastSpeedKmh:           50,
	}
}

// SubjectState is the per-subject classifier accumulator. It is created on
// the subject's first sample and reset when a session closes or a new
// calendar day starts.
type SubjectState struct {
	StationaryAccum float64
	LastSample      *models.LocationSample
	AlertSent       bool
	day             string
}

type subjectEntry struct {
	mu    sync.Mutex
	state SubjectState
}

// StateStore keys classifier state by subject id. Each subject carries its
// own lock, so concurrent updates for different subjects never contend and
// duplicate deliveries for the same subject are serialized.
type StateStore struct {
	mu      sync.Mutex
	entries map[int64]*subjectEntry
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{entries: make(map[int64]*subjectEntry)}
}

func (s *StateStore) entry(subjectID int64) *subjectEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[subjectID]
	if !ok {
		e = &subjectEntry{}
		s.entries[subjectID] = e
	}
	return e
}

// Reset clears the accumulated state for a subject.
func (s *StateStore) Reset(subjectID int64) {
	e := s.entry(subjectID)
	e.mu.Lock()
	e.state = SubjectState{}
	e.mu.Unlock()
}

// Classification is the outcome of classifying one sample against the
// subject's previous one.
type Classification struct {
	Movement  string
	SpeedKmh  float64
	DistanceM float64
	Alert     bool // set once per stationary episode when the alert window is crossed
}

// Classifier labels consecutive location samples as stationary, moving or
// fast_moving. Computed speeds are deliberately not capped: implausible
// jumps between distant fixes produce implausible speeds, matching the
// long-standing behavior reports are built on.
type Classifier struct {
	thresholds Thresholds
	store      *StateStore
}

// NewClassifier creates a classifier backed by the given state store.
func NewClassifier(t Thresholds, store *StateStore) *Classifier {
	if store == nil {
		store = NewStateStore()
	}
	return &Classifier{thresholds: t, store: store}
}

// Classify updates the subject's state with a new sample and returns the
// movement classification for it. The first sample for a subject (and the
// first of each calendar day) has no predecessor and is classified unknown.
func (c *Classifier) Classify(sample models.LocationSample) Classification {
	e := c.store.entry(sample.SubjectID)
	e.mu.Lock()
	defer e.mu.Unlock()

	day := sample.Timestamp.Format("2006-01-02")
	if e.state.day != "" && e.state.day != day {
		e.state = SubjectState{}
	}
	e.state.day = day

	if e.state.LastSample == nil {
		s := sample
		e.state.LastSample = &s
		return Classification{Movement: models.MovementUnknown}
	}

	last := e.state.LastSample
	d := spatial.HaversineDistance(last.Latitude, last.Longitude, sample.Latitude, sample.Longitude)
	dt := sample.Timestamp.Sub(last.Timestamp).Seconds()

	result := Classification{Movement: models.MovementUnknown, DistanceM: d}

	if d < c.thresholds.StationaryRadiusMeters {
		e.state.StationaryAccum += dt
		if e.state.StationaryAccum > c.thresholds.DwellSeconds {
			result.Movement = models.MovementStationary
		}
		if e.state.StationaryAccum > c.thresholds.AlertSeconds && !e.state.AlertSent {
			result.Alert = true
			e.state.AlertSent = true
		}
	} else {
		result.SpeedKmh = spatial.SpeedKmh(d, dt)
		result.Movement = models.MovementMoving
		if result.SpeedKmh > c.thresholds.FastSpeedKmh {
			result.Movement = models.MovementFastMoving
		}
		e.state.StationaryAccum = 0
		e.state.AlertSent = false
	}

	s := sample
	e.state.LastSample = &s
	return result
}

// ClassifyAll runs a fresh classification pass over an already-sorted sample
// list, returning one annotated route point per sample in the same order.
// Used when rebuilding a day's route from storage; live ingest state is not
// touched.
func (c *Classifier) ClassifyAll(samples []models.LocationSample) []models.RoutePoint {
	scratch := NewClassifier(c.thresholds, NewStateStore())
	points := make([]models.RoutePoint, 0, len(samples))
	for _, sample := range samples {
		cls := scratch.Classify(sample)
		points = append(points, models.RoutePoint{
			Sample:   sample,
			Movement: cls.Movement,
			SpeedKmh: cls.SpeedKmh,
		})
	}
	return points
}
