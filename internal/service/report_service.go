package service

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/worktrack/tracker-backend-go/internal/metrics"
	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/repository"
	"github.com/worktrack/tracker-backend-go/internal/route"
)

// Event type labels used in report rows.
const (
	eventStatus   = "Status"
	eventLocation = "Location"
	eventTimeoff  = "Time off"
	eventNone     = "No data"
)

// ReportService builds the chronological tabular activity report and writes
// it as CSV or styled HTML.
type ReportService struct {
	locationRepo    *repository.LocationRepository
	statusRepo      *repository.StatusRepository
	userRepo        *repository.UserRepository
	timeoffRepo     *repository.TimeoffRepository
	locationService *LocationService
	loc             *time.Location
	outputDir       string
}

// NewReportService creates a report service writing files under outputDir.
func NewReportService(locationRepo *repository.LocationRepository, statusRepo *repository.StatusRepository,
	userRepo *repository.UserRepository, timeoffRepo *repository.TimeoffRepository,
	locationService *LocationService, loc *time.Location, outputDir string) *ReportService {
	return &ReportService{
		locationRepo:    locationRepo,
		statusRepo:      statusRepo,
		userRepo:        userRepo,
		timeoffRepo:     timeoffRepo,
		locationService: locationService,
		loc:             loc,
		outputDir:       outputDir,
	}
}

// BuildReport assembles the subject's chronological activity rows for one day
// (today when date is empty). Requesting today first closes any open sessions
// so session end markers appear in the report. A subject with no activity at
// all still yields a single placeholder row.
func (s *ReportService) BuildReport(subjectID int64, date string) ([]models.ReportRow, error) {
	today := time.Now().In(s.loc).Format("2006-01-02")
	if date == "" {
		date = today
	}
	if date == today {
		if _, err := s.locationService.CloseOpenSessions(subjectID, date); err != nil {
			log.Errorf("[ReportService] Failed to close open sessions before report: %v", err)
		}
	}

	name, err := s.userRepo.GetName(subjectID)
	if err != nil {
		return nil, err
	}

	normalizer := route.NewNormalizer(s.loc)
	var rows []models.ReportRow

	rawStatuses, err := s.statusRepo.GetStatusHistory(subjectID, models.StatusFilter{Date: date})
	if err != nil {
		return nil, err
	}
	for _, event := range normalizer.NormalizeStatuses(rawStatuses) {
		rows = append(rows, models.ReportRow{
			Name:      name,
			SubjectID: subjectID,
			EventType: eventStatus,
			Value:     models.StatusLabel(event.Status),
			Timestamp: event.Timestamp,
		})
	}

	rawLocations, err := s.locationRepo.GetLocations(subjectID, models.LocationFilter{Date: date})
	if err != nil {
		return nil, err
	}
	for _, sample := range normalizer.NormalizeLocations(rawLocations) {
		rows = append(rows, models.ReportRow{
			Name:      name,
			SubjectID: subjectID,
			EventType: eventLocation,
			Value:     fmt.Sprintf("%s [%.6f, %.6f]", sample.Kind, sample.Latitude, sample.Longitude),
			Timestamp: sample.Timestamp,
		})
	}

	requests, err := s.timeoffRepo.ListForSubject(subjectID)
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		if req.RequestTime.In(s.loc).Format("2006-01-02") != date {
			continue
		}
		rows = append(rows, models.ReportRow{
			Name:      name,
			SubjectID: subjectID,
			EventType: eventTimeoff,
			Value:     fmt.Sprintf("%s (%s)", req.Reason, req.Status),
			Timestamp: req.RequestTime,
		})
	}

	if len(rows) == 0 {
		dayStart, _ := time.ParseInLocation("2006-01-02", date, s.loc)
		rows = append(rows, models.ReportRow{
			Name:      name,
			SubjectID: subjectID,
			EventType: eventNone,
			Value:     "No recorded activity",
			Timestamp: dayStart,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	for i := range rows {
		rows[i].ID = i + 1
	}

	metrics.ReportsGenerated.Inc()
	log.Infof("[ReportService] Built report for subject %d on %s: %d rows", subjectID, date, len(rows))
	return rows, nil
}

// WriteCSV builds the report and writes it as a CSV file, returning the path.
func (s *ReportService) WriteCSV(subjectID int64, date string) (string, error) {
	rows, err := s.BuildReport(subjectID, date)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("report_%d_%s.csv", subjectID, reportDate(rows, date, s.loc)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "name", "subject_id", "event_type", "value", "timestamp"}); err != nil {
		return "", fmt.Errorf("failed to write report header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.Name,
			fmt.Sprintf("%d", row.SubjectID),
			row.EventType,
			row.Value,
			row.Timestamp.Format(route.TimeLayout),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}
	return path, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Activity report: {{.Name}} ({{.Date}})</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; }
h1 { font-size: 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #2c3e50; color: #fff; }
tr:nth-child(even) { background: #f4f6f7; }
</style>
</head>
<body>
<h1>Activity report: {{.Name}} ({{.Date}})</h1>
<table>
<tr><th>#</th><th>Event</th><th>Details</th><th>Time</th></tr>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.EventType}}</td><td>{{.Value}}</td><td>{{.Timestamp.Format "15:04:05"}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// WriteHTML builds the report and writes it as a styled HTML table, returning
// the path.
func (s *ReportService) WriteHTML(subjectID int64, date string) (string, error) {
	rows, err := s.BuildReport(subjectID, date)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	day := reportDate(rows, date, s.loc)
	path := filepath.Join(s.outputDir, fmt.Sprintf("report_%d_%s.html", subjectID, day))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	data := struct {
		Name string
		Date string
		Rows []models.ReportRow
	}{Name: rows[0].Name, Date: day, Rows: rows}

	if err := reportTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return path, nil
}

func reportDate(rows []models.ReportRow, date string, loc *time.Location) string {
	if date != "" {
		return date
	}
	if len(rows) > 0 {
		return rows[0].Timestamp.In(loc).Format("2006-01-02")
	}
	return time.Now().In(loc).Format("2006-01-02")
}
