package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrack/tracker-backend-go/internal/service"
	"github.com/worktrack/tracker-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for route reconstruction and map files.
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new route handler.
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// GetRoute handles GET /api/v1/subjects/:id/route
// Returns the full route artifact for the requested date (today by default).
func (h *RouteHandler) GetRoute(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	artifact, err := h.routeService.BuildRouteArtifact(subjectID, c.Query("date"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, artifact)
}

// GetRouteMap handles GET /api/v1/subjects/:id/route/map
// Renders the interactive map page and serves it.
func (h *RouteHandler) GetRouteMap(c *gin.Context) {
	subjectID, ok := subjectIDParam(c)
	if !ok {
		return
	}

	path, err := h.routeService.RenderRouteMap(subjectID, c.Query("date"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	c.File(path)
}
