package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

// mapTemplate renders a RouteArtifact as a self-contained Leaflet page. The
// artifact is embedded as JSON and drawn client-side so the page needs no
// backend once written.
var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body { margin: 0; height: 100%; }
#map { height: 100%; }
.banner {
  position: absolute; top: 10px; left: 50px; z-index: 1000;
  background: rgba(255,255,255,0.9); padding: 8px 14px;
  border-radius: 4px; font-family: Arial, sans-serif; font-size: 14px;
}
</style>
</head>
<body>
<div class="banner">{{.Banner}}</div>
<div id="map"></div>
<script>
var artifact = {{.ArtifactJSON}};

var map = L.map('map').setView([artifact.center.lat, artifact.center.lon], artifact.zoom);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

(artifact.polylines || []).forEach(function (line) {
  var latlngs = line.points.map(function (p) { return [p.lat, p.lon]; });
  L.polyline(latlngs, { color: line.color, weight: 4, opacity: 0.8 })
    .bindTooltip(line.tooltip)
    .addTo(map);
});

(artifact.markers || []).forEach(function (m) {
  L.circleMarker([m.position.lat, m.position.lon], {
    radius: 6, color: m.color, fillColor: m.color, fillOpacity: 0.8
  }).bindPopup(m.label).bindTooltip(m.tooltip).addTo(map);
});
</script>
</body>
</html>
`))

type mapPage struct {
	Title        string
	Banner       string
	ArtifactJSON template.JS
}

// RenderRouteMap writes the artifact's Leaflet page to w.
func RenderRouteMap(artifact *models.RouteArtifact, w io.Writer) error {
	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to encode route artifact: %w", err)
	}
	page := mapPage{
		Title:        artifact.Title,
		Banner:       artifact.Banner,
		ArtifactJSON: template.JS(payload),
	}
	if err := mapTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render route map: %w", err)
	}
	return nil
}

// WriteRouteMap renders the artifact's map page to a file.
func WriteRouteMap(artifact *models.RouteArtifact, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}
	defer f.Close()
	return RenderRouteMap(artifact, f)
}
