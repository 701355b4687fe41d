package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/middleware"
	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// AdminHandler handles the authenticated admin surface: the status overview,
// subject registry management and timeoff resolution.
type AdminHandler struct {
	statusService  *service.StatusService
	userService    *service.UserService
	timeoffService *service.TimeoffService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(statusService *service.StatusService, userService *service.UserService,
	timeoffService *service.TimeoffService) *AdminHandler {
	return &AdminHandler{
		statusService:  statusService,
		userService:    userService,
		timeoffService: timeoffService,
	}
}

// Overview handles GET /api/v1/admin/overview
// Returns every registered subject with their latest declared status.
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.statusService.Overview()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  overview,
		"count": len(overview),
	})
}

type registerSubjectRequest struct {
	SubjectID int64  `json:"subject_id" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

// RegisterSubject handles POST /api/v1/admin/subjects
func (h *AdminHandler) RegisterSubject(c *gin.Context) {
	var req registerSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid subject payload")
		return
	}

	if err := h.userService.Register(req.SubjectID, req.FullName, req.IsAdmin); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"subject_id": req.SubjectID})
}

// ListSubjects handles GET /api/v1/admin/subjects
func (h *AdminHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.userService.List()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  subjects,
		"count": len(subjects),
	})
}

// PendingTimeoff handles GET /api/v1/admin/timeoff/pending
func (h *AdminHandler) PendingTimeoff(c *gin.Context) {
	requests, err := h.timeoffService.ListPending()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  requests,
		"count": len(requests),
	})
}

type respondTimeoffRequest struct {
	Status string `json:"status" binding:"required"`
}

// RespondTimeoff handles POST /api/v1/admin/timeoff/:id/respond
// The resolving admin id is taken from the authenticated token.
func (h *AdminHandler) RespondTimeoff(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid request ID")
		return
	}

	var req respondTimeoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid resolution payload")
		return
	}

	adminID := c.GetInt64(middleware.ContextSubjectID)
	if err := h.timeoffService.Respond(requestID, adminID, req.Status); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"request_id": requestID, "status": req.Status})
}
