package route

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// Engine runs the full route reconstruction pipeline: normalization, temporal
// merge, movement classification, segmentation and artifact assembly.
type Engine struct {
	normalizer *Normalizer
	classifier *Classifier
	renderer   RendererConfig
}

// NewEngine creates a route engine for the given timezone and thresholds.
func NewEngine(loc *time.Location, thresholds Thresholds, renderer RendererConfig) *Engine {
	return &Engine{
		normalizer: NewNormalizer(loc),
		classifier: NewClassifier(thresholds, NewStateStore()),
		renderer:   renderer,
	}
}

// BuildRoute reconstructs a subject's route for one day from raw storage rows
// and returns the rendering artifact. It never returns nil for valid inputs.
func (e *Engine) BuildRoute(subjectID int64, subjectName, date string,
	rawLocations []models.RawLocationRow, rawStatuses []models.RawStatusRow) *models.RouteArtifact {

	locations := e.normalizer.NormalizeLocations(rawLocations)
	statuses := e.normalizer.NormalizeStatuses(rawStatuses)

	log.Infof("[RouteEngine] Building route for subject %d on %s: %d locations, %d statuses",
		subjectID, date, len(locations), len(statuses))

	points := e.classifier.ClassifyAll(locations)
	timeline := Merge(locations, statuses)
	segments, annotated, changes := BuildSegments(timeline, points)

	artifact := BuildArtifact(subjectID, subjectName, date, segments, annotated, changes, statuses, e.renderer)
	log.Infof("[RouteEngine] Built artifact for subject %d: %d segments, %d markers, %d polylines",
		subjectID, len(artifact.Segments), len(artifact.Markers), len(artifact.Polylines))
	return artifact
}
