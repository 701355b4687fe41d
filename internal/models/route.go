package models

import "time"

// Movement classification constants
const (
	MovementUnknown    = "unknown"
	MovementStationary = "stationary"
	MovementMoving     = "moving"
	MovementFastMoving = "fast_moving"
)

// TimelineKind tags entries of the merged status/location timeline.
type TimelineKind int

const (
	TimelineStatus TimelineKind = iota
	TimelineLocation
)

// TimelineEvent is one entry of the merged chronological timeline. Exactly
// one of Status / Location carries data, selected by Kind.
type TimelineEvent struct {
	Kind     TimelineKind
	Time     time.Time
	Status   string
	Location *LocationSample
}

// LatLon is a bare coordinate pair used in segment point lists and polylines.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Segment is a contiguous run of route points accumulated under a single
// declared status. Derived in memory during rendering, never persisted.
// Only segments with at least two points are eligible for polyline drawing.
type Segment struct {
	Points    []LatLon  `json:"points"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Drawable reports whether the segment has enough points for a polyline.
func (s *Segment) Drawable() bool {
	return len(s.Points) >= 2
}

// RoutePoint is a location sample annotated with its movement classification,
// computed speed and the status that was active when it was recorded.
type RoutePoint struct {
	Sample   LocationSample `json:"sample"`
	Movement string         `json:"movement"`
	SpeedKmh float64        `json:"speed_kmh"`
	Status   string         `json:"status"`
}

// Marker kinds understood by the rendering layer
const (
	MarkerStart        = "start"
	MarkerEnd          = "end"
	MarkerStationary   = "stationary"
	MarkerPoint        = "point"
	MarkerStatusChange = "status_change"
	MarkerRouteStart   = "route_start"
	MarkerRouteEnd     = "route_end"
	MarkerInfo         = "info"
)

// Marker is one map annotation handed to the renderer.
type Marker struct {
	Position LatLon    `json:"position"`
	Kind     string    `json:"kind"`
	Time     time.Time `json:"time,omitempty"`
	Label    string    `json:"label"`
	Tooltip  string    `json:"tooltip"`
	Color    string    `json:"color"`
}

// Polyline is one drawable route segment with its display attributes.
type Polyline struct {
	Points  []LatLon `json:"points"`
	Color   string   `json:"color"`
	Status  string   `json:"status"`
	Tooltip string   `json:"tooltip"`
	Index   int      `json:"index"`
}

// RouteArtifact is the complete, ordered, annotated structure the route
// engine hands to a renderer. It is always non-nil for valid inputs: with no
// data at all NoData is set and a single informational marker is present at
// the default center.
type RouteArtifact struct {
	SubjectID   int64        `json:"subject_id"`
	SubjectName string       `json:"subject_name"`
	Date        string       `json:"date"`
	Center      LatLon       `json:"center"`
	Zoom        int          `json:"zoom"`
	Title       string       `json:"title"`
	Banner      string       `json:"banner,omitempty"`
	NoData      bool         `json:"no_data"`
	StatusOnly  bool         `json:"status_only"`
	Markers     []Marker     `json:"markers"`
	Polylines   []Polyline   `json:"polylines"`
	Segments    []Segment    `json:"segments"`
	Points      []RoutePoint `json:"points"`
}
