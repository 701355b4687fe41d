package service

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/metrics"
	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
)

var validStatuses = map[string]bool{
	models.StatusOffice:    true,
	models.StatusHome:      true,
	models.StatusSick:      true,
	models.StatusVacation:  true,
	models.StatusToNight:   true,
	models.StatusFromNight: true,
}

// StatusService handles declared-status events and their side effects on
// location tracking.
type StatusService struct {
	statusRepo      *repository.StatusRepository
	locationService *LocationService
	loc             *time.Location
}

// NewStatusService creates a status service.
func NewStatusService(statusRepo *repository.StatusRepository, locationService *LocationService,
	loc *time.Location) *StatusService {
	return &StatusService{statusRepo: statusRepo, locationService: locationService, loc: loc}
}

// SaveStatus appends a status event. Declaring "home" also closes the
// subject's open location sessions for today, ending route tracking.
func (s *StatusService) SaveStatus(subjectID int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("unknown status %q", status)
	}

	if err := s.statusRepo.SaveStatus(subjectID, status); err != nil {
		return err
	}
	metrics.StatusesSaved.WithLabelValues(status).Inc()
	log.Infof("[StatusService] Saved status %q for subject %d", status, subjectID)

	if status == models.StatusHome {
		if _, err := s.locationService.CloseOpenSessions(subjectID, ""); err != nil {
			log.Errorf("[StatusService] Failed to close sessions after home status: %v", err)
		}
	}
	return nil
}

// GetStatusHistory returns normalized status events for a subject.
func (s *StatusService) GetStatusHistory(subjectID int64, filter models.StatusFilter) ([]models.StatusEvent, error) {
	rows, err := s.statusRepo.GetStatusHistory(subjectID, filter)
	if err != nil {
		return nil, err
	}
	return route.NewNormalizer(s.loc).NormalizeStatuses(rows), nil
}

// GetLatestStatus returns the subject's most recent status event, or nil when
// the subject has never reported.
func (s *StatusService) GetLatestStatus(subjectID int64) (*models.StatusEvent, error) {
	row, err := s.statusRepo.GetLatestStatus(subjectID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	events := route.NewNormalizer(s.loc).NormalizeStatuses([]models.RawStatusRow{*row})
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// Overview returns every registered subject with their latest status, for the
// admin dashboard.
func (s *StatusService) Overview() ([]models.SubjectStatus, error) {
	return s.statusRepo.AllSubjectsWithLatestStatus()
}
