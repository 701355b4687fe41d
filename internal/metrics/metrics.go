package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges for the tracker's operational surface.
var (
	LocationsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "locations_saved_total",
		Help:      "Number of location samples persisted.",
	})

	StatusesSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "statuses_saved_total",
		Help:      "Number of status events persisted, by status.",
	}, []string{"status"})

	RecordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "records_dropped_total",
		Help:      "Number of malformed rows dropped during normalization.",
	})

	MapsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "maps_rendered_total",
		Help:      "Number of route map artifacts generated.",
	})

	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "reports_generated_total",
		Help:      "Number of tabular reports generated.",
	})

	StationaryAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "stationary_alerts_total",
		Help:      "Number of long-stationary admin alerts emitted.",
	})

	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tracker",
		Name:      "sessions_closed_total",
		Help:      "Number of location sessions closed.",
	})

	OpenSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracker",
		Name:      "open_sessions",
		Help:      "Number of location sessions currently open.",
	})
)
