package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/metrics"
	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/notify"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
)

// LocationService handles location ingest: live movement classification,
// session bookkeeping and the long-stationary admin alert.
type LocationService struct {
	locationRepo *repository.LocationRepository
	userRepo     *repository.UserRepository
	classifier   *route.Classifier
	states       *route.StateStore
	notifier     notify.Notifier
	loc          *time.Location
	maxAgeHours  int
}

// NewLocationService creates a location service. The state store backs the
// live classifier and is shared with session-close resets. maxAgeHours bounds
// the default history lookback when a query sets no filter.
func NewLocationService(locationRepo *repository.LocationRepository, userRepo *repository.UserRepository,
	thresholds route.Thresholds, notifier notify.Notifier, loc *time.Location, maxAgeHours int) *LocationService {

	states := route.NewStateStore()
	return &LocationService{
		locationRepo: locationRepo,
		userRepo:     userRepo,
		classifier:   route.NewClassifier(thresholds, states),
		states:       states,
		notifier:     notifier,
		loc:          loc,
		maxAgeHours:  maxAgeHours,
	}
}

// IngestResult reports how a submitted location sample was filed.
type IngestResult struct {
	SessionID string  `json:"session_id"`
	Kind      string  `json:"kind"`
	Movement  string  `json:"movement"`
	SpeedKmh  float64 `json:"speed_kmh"`
}

// RecordLocation validates, classifies and persists one location sample.
// The point kind follows the live classification; the first point of a day
// with no open session becomes the session start.
func (s *LocationService) RecordLocation(subjectID int64, lat, lon float64) (*IngestResult, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinates out of range: %f, %f", lat, lon)
	}

	now := time.Now().In(s.loc)
	cls := s.classifier.Classify(models.LocationSample{
		SubjectID: subjectID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: now,
	})

	kind := models.PointIntermediate
	switch cls.Movement {
	case models.MovementStationary:
		kind = models.PointStationary
	case models.MovementMoving, models.MovementFastMoving:
		kind = models.PointMoving
	}

	open, err := s.locationRepo.ListOpenSessions(subjectID, "")
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		kind = models.PointStart
	}

	sessionID, err := s.locationRepo.SaveLocation(subjectID, lat, lon, "", kind)
	if err != nil {
		return nil, err
	}
	metrics.LocationsSaved.Inc()
	if kind == models.PointStart {
		metrics.OpenSessions.Inc()
	}

	if cls.Alert {
		s.sendStationaryAlert(subjectID, lat, lon)
	}

	log.Infof("[LocationService] Saved location for subject %d: session=%s kind=%s movement=%s",
		subjectID, sessionID, kind, cls.Movement)

	return &IngestResult{
		SessionID: sessionID,
		Kind:      kind,
		Movement:  cls.Movement,
		SpeedKmh:  cls.SpeedKmh,
	}, nil
}

func (s *LocationService) sendStationaryAlert(subjectID int64, lat, lon float64) {
	name, err := s.userRepo.GetName(subjectID)
	if err != nil {
		log.Errorf("[LocationService] Failed to resolve name for alert: %v", err)
		name = fmt.Sprintf("User_%d", subjectID)
	}
	if err := s.notifier.NotifyAdmins(notify.StationaryAlert(name, lat, lon)); err != nil {
		log.Errorf("[LocationService] Failed to deliver stationary alert: %v", err)
		return
	}
	metrics.StationaryAlerts.Inc()
}

// CloseSession ends a session, optionally appending a final point, and clears
// the subject's live classifier state.
func (s *LocationService) CloseSession(subjectID int64, sessionID string, lat, lon *float64) error {
	closed, err := s.locationRepo.CloseSession(sessionID, subjectID, lat, lon)
	if err != nil {
		return err
	}
	s.states.Reset(subjectID)
	if closed {
		metrics.SessionsClosed.Inc()
		metrics.OpenSessions.Dec()
	}
	return nil
}

// CloseOpenSessions ends every open session the subject has for the given
// date (today when empty). Returns the number of sessions closed.
func (s *LocationService) CloseOpenSessions(subjectID int64, date string) (int, error) {
	open, err := s.locationRepo.ListOpenSessions(subjectID, date)
	if err != nil {
		return 0, err
	}
	for _, sessionID := range open {
		if err := s.CloseSession(subjectID, sessionID, nil, nil); err != nil {
			return 0, fmt.Errorf("failed to close session %s: %w", sessionID, err)
		}
	}
	if len(open) > 0 {
		log.Infof("[LocationService] Closed %d open sessions for subject %d", len(open), subjectID)
	}
	return len(open), nil
}

// GetLocations returns normalized location samples for a subject.
func (s *LocationService) GetLocations(subjectID int64, filter models.LocationFilter) ([]models.LocationSample, error) {
	if filter.SessionID == "" && filter.Date == "" && filter.HoursLimit <= 0 {
		filter.HoursLimit = s.maxAgeHours
	}
	rows, err := s.locationRepo.GetLocations(subjectID, filter)
	if err != nil {
		return nil, err
	}
	return route.NewNormalizer(s.loc).NormalizeLocations(rows), nil
}

// LatestLocation returns the subject's most recent sample, or nil.
func (s *LocationService) LatestLocation(subjectID int64) (*models.LocationSample, error) {
	row, err := s.locationRepo.LatestLocation(subjectID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	samples := route.NewNormalizer(s.loc).NormalizeLocations([]models.RawLocationRow{*row})
	if len(samples) == 0 {
		return nil, nil
	}
	return &samples[0], nil
}
