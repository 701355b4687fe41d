// Command mapgen renders a subject's daily route map from the database
// without starting the API server.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/config"
	"github.com/worktrack/tracker-backend-go/internal/database"
	"github.com/worktrack/tracker-backend-go/internal/notify"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
	"github.com/worktrack/tracker-backend-go/internal/service"
)

func main() {
	subjectID := flag.Int64("subject", 0, "subject id (required)")
	date := flag.String("date", "", "date as 2006-01-02 (defaults to today)")
	flag.Parse()

	if *subjectID == 0 {
		fmt.Fprintln(os.Stderr, "usage: mapgen -subject <id> [-date 2006-01-02]")
		os.Exit(1)
	}

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

	locationService := service.NewLocationService(locationRepo, userRepo, thresholds, notify.LogNotifier{}, loc, cfg.MaxLocationAgeHours)
	routeService := service.NewRouteService(locationRepo, statusRepo, userRepo, locationService, engine, loc, cfg.OutputDir)

	path, err := routeService.RenderRouteMap(*subjectID, *date)
	if err != nil {
		log.Errorf("Failed to render route map: %v", err)
		os.Exit(1)
	}
	fmt.Println(path)
}
