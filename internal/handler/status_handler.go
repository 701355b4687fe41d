package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// StatusHandler handles HTTP requests for declared statuses.
type StatusHandler struct {
	statusService *service.StatusService
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(statusService *service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

type saveStatusRequest struct {
	SubjectID int64  `json:"subject_id" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// SaveStatus handles POST /api/v1/statuses
func (h *StatusHandler) SaveStatus(c *gin.Context) {
	var req saveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid status payload")
		return
	}

	if err := h.statusService.SaveStatus(req.SubjectID, req.Status); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"status": req.Status,
		"label":  models.StatusLabel(req.Status),
	})
}

// GetStatusHistory handles GET /api/v1/subjects/:id/statuses
func (h *StatusHandler) GetStatusHistory(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	var filter models.StatusFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	events, err := h.statusService.GetStatusHistory(subjectID, filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  events,
		"count": len(events),
	})
}

// GetLatestStatus handles GET /api/v1/subjects/:id/statuses/latest
func (h *StatusHandler) GetLatestStatus(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	event, err := h.statusService.GetLatestStatus(subjectID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if event == nil {
		response.NotFound(c, "No statuses recorded for subject")
		return
	}
	response.Success(c, event)
}
