package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/api"
	"github.com/worktrack/tracker-backend-go/internal/config"
	"github.com/worktrack/tracker-backend-go/internal/database"
	"github.com/worktrack/tracker-backend-go/internal/handler"
	"github.com/worktrack/tracker-backend-go/internal/notify"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
	"github.com/worktrack/tracker-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	loc := cfg.Timezone

	locationRepo := repository.NewLocationRepository(db, loc)
	statusRepo := repository.NewStatusRepository(db, loc)
	userRepo := repository.NewUserRepository(db)
	timeoffRepo := repository.NewTimeoffRepository(db, loc)

	notifier := notify.LogNotifier{Recipients: cfg.AdminIDs}
	thresholds := route.Thresholds{
		StationaryRadiusMeters: cfg.StationaryRadiusM,
		DwellSeconds:           cfg.StationaryDwellSec,
		AlertSeconds:           cfg.StationaryAlertSec,
		FastSpeedKmh:           cfg.FastSpeedKmh,
	}

	rendererCfg := route.DefaultRendererConfig()
	rendererCfg.DefaultCenter.Lat = cfg.DefaultLat
	rendererCfg.DefaultCenter.Lon = cfg.DefaultLon
	engine := route.NewEngine(loc, thresholds, rendererCfg)

	locationService := service.NewLocationService(locationRepo, userRepo, thresholds, notifier, loc, cfg.MaxLocationAgeHours)
	statusService := service.NewStatusService(statusRepo, locationService, loc)
	routeService := service.NewRouteService(locationRepo, statusRepo, userRepo, locationService, engine, loc, cfg.OutputDir)
	reportService := service.NewReportService(locationRepo, statusRepo, userRepo, timeoffRepo, locationService, loc, cfg.OutputDir)
	timeoffService := service.NewTimeoffService(timeoffRepo, userRepo, notifier)
	userService := service.NewUserService(userRepo)

	router := api.SetupRouter(cfg, api.Handlers{
		Location: handler.NewLocationHandler(locationService),
		Status:   handler.NewStatusHandler(statusService),
		Route:    handler.NewRouteHandler(routeService),
		Report:   handler.NewReportHandler(reportService),
		Timeoff:  handler.NewTimeoffHandler(timeoffService),
		Admin:    handler.NewAdminHandler(statusService, userService, timeoffService),
	})

	log.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
