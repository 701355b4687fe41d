package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// TimeoffHandler handles HTTP requests for absence requests.
type TimeoffHandler struct {
	timeoffService *service.TimeoffService
}

// NewTimeoffHandler creates a new timeoff handler.
func NewTimeoffHandler(timeoffService *service.TimeoffService) *TimeoffHandler {
	return &TimeoffHandler{timeoffService: timeoffService}
}

type submitTimeoffRequest struct {
	SubjectID int64  `json:"subject_id" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// Submit handles POST /api/v1/timeoff
func (h *TimeoffHandler) Submit(c *gin.Context) {
	var req submitTimeoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid timeoff payload")
		return
	}

	id, err := h.timeoffService.Submit(req.SubjectID, req.Reason)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"request_id": id})
}

// ListForSubject handles GET /api/v1/subjects/:id/timeoff
func (h *TimeoffHandler) ListForSubject(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	requests, err := h.timeoffService.ListForSubject(subjectID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  requests,
		"count": len(requests),
	})
}

// Stats handles GET /api/v1/subjects/:id/timeoff/stats
func (h *TimeoffHandler) Stats(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	stats, err := h.timeoffService.Stats(subjectID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, stats)
}
