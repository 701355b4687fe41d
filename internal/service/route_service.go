package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/metrics"
	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/render"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
)

// RouteService reconstructs daily routes and renders them as map files.
type RouteService struct {
	locationRepo    *repository.LocationRepository
	statusRepo      *repository.StatusRepository
	userRepo        *repository.UserRepository
	locationService *LocationService
	engine          *route.Engine
	loc             *time.Location
	outputDir       string
}

// NewRouteService creates a route service writing map files under outputDir.
func NewRouteService(locationRepo *repository.LocationRepository, statusRepo *repository.StatusRepository,
	userRepo *repository.UserRepository, locationService *LocationService,
	engine *route.Engine, loc *time.Location, outputDir string) *RouteService {
	return &RouteService{
		locationRepo:    locationRepo,
		statusRepo:      statusRepo,
		userRepo:        userRepo,
		locationService: locationService,
		engine:          engine,
		loc:             loc,
		outputDir:       outputDir,
	}
}

// BuildRouteArtifact reconstructs the subject's route for one day (today when
// date is empty). Requesting today first closes any still-open sessions so
// the reconstruction sees complete session boundaries.
func (s *RouteService) BuildRouteArtifact(subjectID int64, date string) (*models.RouteArtifact, error) {
	today := time.Now().In(s.loc).Format("2006-01-02")
	if date == "" {
		date = today
	}

	if date == today {
		if _, err := s.locationService.CloseOpenSessions(subjectID, date); err != nil {
			log.Errorf("[RouteService] Failed to close open sessions before build: %v", err)
		}
	}

	rawLocations, err := s.locationRepo.GetLocations(subjectID, models.LocationFilter{Date: date})
	if err != nil {
		return nil, err
	}
	rawStatuses, err := s.statusRepo.GetStatusHistory(subjectID, models.StatusFilter{Date: date})
	if err != nil {
		return nil, err
	}

	name, err := s.userRepo.GetName(subjectID)
	if err != nil {
		return nil, err
	}

	return s.engine.BuildRoute(subjectID, name, date, rawLocations, rawStatuses), nil
}

// RenderRouteMap builds the subject's route for the given day and writes the
// interactive map HTML file. Returns the written file path.
func (s *RouteService) RenderRouteMap(subjectID int64, date string) (string, error) {
	artifact, err := s.BuildRouteArtifact(subjectID, date)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("route_%d_%s.html", subjectID, artifact.Date))
	if err := render.WriteRouteMap(artifact, path); err != nil {
		return "", err
	}
	metrics.MapsRendered.Inc()
	log.Infof("[RouteService] Rendered route map for subject %d: %s", subjectID, path)
	return path, nil
}
