package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type ColumnHandler struct {
	columnService service.ColumnService
	logger        *zap.Logger
}

func NewColumnHandler(columnService service.ColumnService, logger *zap.Logger) *ColumnHandler {
	return &ColumnHandler{
		columnService: columnService,
		logger:        logger,
	}
}

// AddColumn godoc
// @Summary      Add column
// @Description  Appends a column after the existing ones
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body dto.CreateColumnRequest true "Column"
// @Success      201 {object} domain.Column
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/columns [post]
func (h *ColumnHandler) AddColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	column, err := h.columnService.AddColumn(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, column)
}

// DeleteColumn godoc
// @Summary      Delete column
// @Description  Deletes an empty column. A column that still holds tasks cannot be deleted.
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body dto.DeleteColumnRequest true "Column to delete"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Column not found or has tasks"
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/columns [delete]
func (h *ColumnHandler) DeleteColumn(c *gin.Context) {
	var req dto.DeleteColumnRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.columnService.DeleteColumn(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendOK(c, http.StatusOK)
}

// ReorderColumns godoc
// @Summary      Reorder columns
// @Description  Each listed column takes its index in columnIds as sortOrder
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body dto.ReorderColumnsRequest true "Ordered column ids"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/columns/reorder [post]
func (h *ColumnHandler) ReorderColumns(c *gin.Context) {
	var req dto.ReorderColumnsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.columnService.ReorderColumns(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendOK(c, http.StatusOK)
}
