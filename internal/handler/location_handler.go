package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/models"
	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// LocationHandler handles HTTP requests for location ingest and history.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Coordinates bind through pointers so a legitimate zero value is not
// mistaken for a missing field.
type saveLocationRequest struct {
	SubjectID int64    `json:"subject_id" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// SaveLocation handles POST /api/v1/locations
func (h *LocationHandler) SaveLocation(c *gin.Context) {
	var req saveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid location payload")
		return
	}

	result, err := h.locationService.RecordLocation(req.SubjectID, *req.Latitude, *req.Longitude)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, result)
}

// GetLocations handles GET /api/v1/subjects/:id/locations
func (h *LocationHandler) GetLocations(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	var filter models.LocationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	samples, err := h.locationService.GetLocations(subjectID, filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  samples,
		"count": len(samples),
	})
}

// GetLatestLocation handles GET /api/v1/subjects/:id/locations/latest
func (h *LocationHandler) GetLatestLocation(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	sample, err := h.locationService.LatestLocation(subjectID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if sample == nil {
		response.NotFound(c, "No locations recorded for subject")
		return
	}
	response.Success(c, sample)
}

type closeSessionRequest struct {
	SessionID string   `json:"session_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// CloseSession handles POST /api/v1/subjects/:id/sessions/close
// Without a session id every open session of the day is closed.
func (h *LocationHandler) CloseSession(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	// An empty body means "close everything open today".
	var req closeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid session payload")
		return
	}

	if req.SessionID != "" {
		if err := h.locationService.CloseSession(subjectID, req.SessionID, req.Latitude, req.Longitude); err != nil {
			response.InternalError(c, err.Error())
			return
		}
		response.Success(c, gin.H{"closed": 1})
		return
	}

	closed, err := h.locationService.CloseOpenSessions(subjectID, c.Query("date"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"closed": closed})
}

// subjectIDParam parses the :id path parameter, writing the error response on
// failure.
func subjectIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid subject ID")
		return 0, false
	}
	return id, true
}
