package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/events"
	"kanban-board-api/internal/service"
)

type EventsHandler struct {
	hub            *events.Hub
	projectService service.ProjectService
	logger         *zap.Logger
}

func NewEventsHandler(hub *events.Hub, projectService service.ProjectService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub:            hub,
		projectService: projectService,
		logger:         logger,
	}
}

// Subscribe godoc
// @Summary      Project change feed
// @Description  Upgrades to a websocket that receives {type, projectId, entityId, at} after each change to the project
// @Tags         events
// @Param        id path string true "Project ID"
// @Success      101
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/events [get]
func (h *EventsHandler) Subscribe(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := h.projectService.GetProject(c.Request.Context(), projectID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	if err := h.hub.ServeWS(c.Writer, c.Request, projectID); err != nil {
		h.logger.Warn("Failed to open event stream", zap.String("project_id", projectID), zap.Error(err))
	}
}
