package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worktrack/tracker-backend-go/internal/config"
	"github.com/worktrack/tracker-backend-go/internal/handler"
	"github.com/worktrack/tracker-backend-go/internal/middleware"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Location *handler.LocationHandler
	Status   *handler.StatusHandler
	Route    *handler.RouteHandler
	Report   *handler.ReportHandler
	Timeoff  *handler.TimeoffHandler
	Admin    *handler.AdminHandler
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tracker Backend API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Location ingest arrives on a per-subject webhook cadence; the limiter
	// caps bursty duplicate deliveries.
	ingestLimiter := middleware.NewRateLimiter(120, time.Minute)

	api := r.Group("/api/v1")
	{
		api.POST("/locations", ingestLimiter.Middleware(), h.Location.SaveLocation)
		api.POST("/statuses", h.Status.SaveStatus)
		api.POST("/timeoff", h.Timeoff.Submit)

		subjects := api.Group("/subjects/:id")
		{
			subjects.GET("/locations", h.Location.GetLocations)
			subjects.GET("/locations/latest", h.Location.GetLatestLocation)
			subjects.POST("/sessions/close", h.Location.CloseSession)

			subjects.GET("/statuses", h.Status.GetStatusHistory)
			subjects.GET("/statuses/latest", h.Status.GetLatestStatus)

			subjects.GET("/route", h.Route.GetRoute)
			subjects.GET("/route/map", h.Route.GetRouteMap)
			subjects.GET("/report", h.Report.GetReport)

			subjects.GET("/timeoff", h.Timeoff.ListForSubject)
			subjects.GET("/timeoff/stats", h.Timeoff.Stats)
		}

		admin := api.Group("/admin", middleware.AdminAuth(cfg.JWTSecret, cfg.IsAdmin))
		{
			admin.GET("/overview", h.Admin.Overview)
			admin.GET("/subjects", h.Admin.ListSubjects)
			admin.POST("/subjects", h.Admin.RegisterSubject)
			admin.GET("/timeoff/pending", h.Admin.PendingTimeoff)
			admin.POST("/timeoff/:id/respond", h.Admin.RespondTimeoff)
		}
	}

	return r
}
