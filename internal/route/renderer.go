package route

import (
	"fmt"
	"strings"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// segmentColors is the rotation used for per-segment polylines.
var segmentColors = []string{
	"blue", "red", "green", "purple", "orange",
	"darkred", "darkblue", "darkgreen", "cadetblue", "darkpurple",
}

// RendererConfig carries the fallback geometry for artifacts.
type RendererConfig struct {
	DefaultCenter models.LatLon
	EmptyZoom     int
	RouteZoom     int
}

// DefaultRendererConfig centers empty maps on Moscow, matching the reports
// the admin panel has always produced.
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		DefaultCenter: models.LatLon{Lat: 55.7558, Lon: 37.6173},
		EmptyZoom:     10,
		RouteZoom:     14,
	}
}

// BuildArtifact assembles the complete, ordered, annotated structure a map
// renderer needs. It never fails for valid inputs: with neither locations nor
// statuses it produces a placeholder artifact at the default center, and with
// statuses only it produces an informational artifact anchored there.
func BuildArtifact(subjectID int64, subjectName, date string, segments []models.Segment,
	points []models.RoutePoint, changes []StatusChange, statuses []models.StatusEvent,
	cfg RendererConfig) *models.RouteArtifact {

	artifact := &models.RouteArtifact{
		SubjectID:   subjectID,
		SubjectName: subjectName,
		Date:        date,
		Title:       fmt.Sprintf("Location report: %s", subjectName),
		Center:      cfg.DefaultCenter,
		Zoom:        cfg.EmptyZoom,
		Segments:    segments,
		Points:      points,
	}

	if len(points) == 0 && len(statuses) == 0 {
		artifact.NoData = true
		artifact.Banner = "No location data for the requested date"
		artifact.Markers = append(artifact.Markers, models.Marker{
			Position: cfg.DefaultCenter,
			Kind:     models.MarkerInfo,
			Label:    "No location data: the subject did not share a position on this date",
			Tooltip:  "No data",
			Color:    "gray",
		})
		return artifact
	}

	artifact.Banner = statusBanner(statuses)

	if len(points) == 0 {
		artifact.StatusOnly = true
		artifact.Markers = append(artifact.Markers, models.Marker{
			Position: cfg.DefaultCenter,
			Kind:     models.MarkerInfo,
			Label:    statusListing(statuses),
			Tooltip:  "Subject statuses",
			Color:    "blue",
		})
		return artifact
	}

	artifact.Center = meanCenter(points)
	artifact.Zoom = cfg.RouteZoom

	for i := range points {
		artifact.Markers = append(artifact.Markers, pointMarker(&points[i]))
	}

	for _, change := range changes {
		if change.Location == nil {
			continue
		}
		pos := models.LatLon{Lat: change.Location.Latitude, Lon: change.Location.Longitude}
		timeStr := change.Time.Format("15:04:05")
		artifact.Markers = append(artifact.Markers, models.Marker{
			Position: pos,
			Kind:     models.MarkerStatusChange,
			Time:     change.Time,
			Label:    fmt.Sprintf("Status changed to %s at %s", models.StatusLabel(change.Status), timeStr),
			Tooltip:  fmt.Sprintf("ℹ️ Status: %s | ⏱️ %s | 📍[%.6f, %.6f]", change.Status, timeStr, pos.Lat, pos.Lon),
			Color:    "purple",
		})
	}

	for i, segment := range segments {
		if !segment.Drawable() {
			continue
		}
		color := segmentColors[i%len(segmentColors)]
		artifact.Polylines = append(artifact.Polylines, models.Polyline{
			Points:  segment.Points,
			Color:   color,
			Status:  segment.Status,
			Tooltip: fmt.Sprintf("🚶 Route segment %d | 📋 %s", i+1, models.StatusLabel(segment.Status)),
			Index:   i,
		})
	}

	// The global first and last fixes are always marked regardless of how
	// the segments fall.
	first := &points[0]
	last := &points[len(points)-1]
	artifact.Markers = append(artifact.Markers,
		models.Marker{
			Position: samplePosition(first),
			Kind:     models.MarkerRouteStart,
			Time:     first.Sample.Timestamp,
			Label:    fmt.Sprintf("Route start at %s", first.Sample.Timestamp.Format("15:04:05")),
			Tooltip:  fmt.Sprintf("🟢 Route start | ⏱️ %s", first.Sample.Timestamp.Format("15:04:05")),
			Color:    "green",
		},
		models.Marker{
			Position: samplePosition(last),
			Kind:     models.MarkerRouteEnd,
			Time:     last.Sample.Timestamp,
			Label:    fmt.Sprintf("Route end at %s", last.Sample.Timestamp.Format("15:04:05")),
			Tooltip:  fmt.Sprintf("🔴 Route end | ⏱️ %s", last.Sample.Timestamp.Format("15:04:05")),
			Color:    "red",
		},
	)

	return artifact
}

func samplePosition(p *models.RoutePoint) models.LatLon {
	return models.LatLon{Lat: p.Sample.Latitude, Lon: p.Sample.Longitude}
}

func pointMarker(p *models.RoutePoint) models.Marker {
	pos := samplePosition(p)
	timeStr := p.Sample.Timestamp.Format("15:04:05")
	statusLabel := models.StatusLabel(p.Status)
	tooltip := func(prefix string) string {
		return fmt.Sprintf("%s ⏱️ %s | 📍[%.6f, %.6f] | 📋 %s", prefix, timeStr, pos.Lat, pos.Lon, statusLabel)
	}
	label := fmt.Sprintf("Time: %s, coordinates: [%.6f, %.6f], status: %s", timeStr, pos.Lat, pos.Lon, statusLabel)

	// Stored start/end kinds win over the movement classification.
	switch p.Sample.Kind {
	case models.PointStart:
		return models.Marker{Position: pos, Kind: models.MarkerStart, Time: p.Sample.Timestamp,
			Label: label, Tooltip: tooltip("🟢 START |"), Color: "green"}
	case models.PointEnd:
		return models.Marker{Position: pos, Kind: models.MarkerEnd, Time: p.Sample.Timestamp,
			Label: label, Tooltip: tooltip("🔴 END |"), Color: "red"}
	}

	switch {
	case p.Sample.Kind == models.PointStationary || p.Movement == models.MovementStationary:
		return models.Marker{Position: pos, Kind: models.MarkerStationary, Time: p.Sample.Timestamp,
			Label: label, Tooltip: tooltip("⏸️ STOP |"), Color: "orange"}
	case p.Movement == models.MovementFastMoving:
		return models.Marker{Position: pos, Kind: models.MarkerPoint, Time: p.Sample.Timestamp,
			Label: label, Tooltip: tooltip(""), Color: "darkpurple"}
	case p.Movement == models.MovementMoving:
		return models.Marker{Position: pos, Kind: models.MarkerPoint, Time: p.Sample.Timestamp,
			Label: label, Tooltip: tooltip(""), Color: "purple"}
	}
	return models.Marker{Position: pos, Kind: models.MarkerPoint, Time: p.Sample.Timestamp,
		Label: label, Tooltip: tooltip(""), Color: "blue"}
}

func meanCenter(points []models.RoutePoint) models.LatLon {
	var latSum, lonSum float64
	for i := range points {
		latSum += points[i].Sample.Latitude
		lonSum += points[i].Sample.Longitude
	}
	n := float64(len(points))
	return models.LatLon{Lat: latSum / n, Lon: lonSum / n}
}

func statusBanner(statuses []models.StatusEvent) string {
	if len(statuses) == 0 {
		return "No status data"
	}
	labels := make([]string, 0, len(statuses))
	for _, s := range statuses {
		labels = append(labels, models.StatusLabel(s.Status))
	}
	return "Statuses: " + strings.Join(labels, ", ")
}

func statusListing(statuses []models.StatusEvent) string {
	lines := make([]string, 0, len(statuses))
	for _, s := range statuses {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Timestamp.Format("15:04:05"), models.StatusLabel(s.Status)))
	}
	return "Subject statuses: " + strings.Join(lines, "; ")
}
