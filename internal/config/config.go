package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config is the application configuration, loaded from the environment.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// AdminIDs are the subject ids allowed to use the admin API and the
	// recipients of stationary alerts.
	AdminIDs []int64

	// Timezone is the display timezone for reports and maps.
	Timezone *time.Location

	// DefaultLat/DefaultLon anchor maps when a subject has no coordinates.
	DefaultLat float64
	DefaultLon float64

	// MaxLocationAgeHours bounds the default location lookback window.
	MaxLocationAgeHours int

	// Movement classification thresholds.
	StationaryRadiusM  float64
	StationaryDwellSec float64
	StationaryAlertSec float64
	FastSpeedKmh       float64

	// OutputDir is where generated map and report files are written.
	OutputDir string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	cfg := &Config{
		Port:                getEnv("PORT", ":8080"),
		DBPath:              getEnv("DB_PATH", "./data/tracker.db"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		DefaultLat:          getEnvFloat("DEFAULT_LAT", 55.7558),
		DefaultLon:          getEnvFloat("DEFAULT_LON", 37.6173),
		MaxLocationAgeHours: getEnvInt("MAX_LOCATION_AGE_HOURS", 24),
		OutputDir:           getEnv("OUTPUT_DIR", "./data/output"),
		StationaryRadiusM:   getEnvFloat("STATIONARY_RADIUS_M", 10),
		StationaryDwellSec:  getEnvFloat("STATIONARY_DWELL_SEC", 300),
		StationaryAlertSec:  getEnvFloat("STATIONARY_ALERT_SEC", 1800),
		FastSpeedKmh:        getEnvFloat("FAST_SPEED_KMH", 50),
	}

	tzName := getEnv("TIMEZONE", "Europe/Moscow")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warnf("[Config] Unknown timezone %q, falling back to UTC", tzName)
		loc = time.UTC
	}
	cfg.Timezone = loc

	for _, part := range strings.Split(getEnv("ADMIN_IDS", ""), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warnf("[Config] Skipping invalid admin id %q", part)
			continue
		}
		cfg.AdminIDs = append(cfg.AdminIDs, id)
	}

	return cfg
}

// IsAdmin reports whether a subject id is in the configured admin list.
func (c *Config) IsAdmin(subjectID int64) bool {
	for _, id := range c.AdminIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
