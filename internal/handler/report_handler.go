package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// ReportHandler handles HTTP requests for tabular activity reports.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport handles GET /api/v1/subjects/:id/report
// The format query selects json (default), csv or html output.
func (h *ReportHandler) GetReport(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}
	date := c.Query("date")

	switch c.DefaultQuery("format", "json") {
	case "json":
		rows, err := h.reportService.BuildReport(subjectID, date)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		response.Success(c, gin.H{
			"data":  rows,
			"count": len(rows),
		})
	case "csv":
		path, err := h.reportService.WriteCSV(subjectID, date)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		c.FileAttachment(path, "report.csv")
	case "html":
		path, err := h.reportService.WriteHTML(subjectID, date)
		if err != nil {
			response.InternalError(c, err.Error())
			return
		}
		c.File(path)
	default:
		response.BadRequest(c, "Unknown report format")
	}
}
