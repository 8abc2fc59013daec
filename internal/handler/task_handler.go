package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(taskService service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// AddTask godoc
// @Summary      Add task
// @Description  Appends a task to the end of the column
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body dto.CreateTaskRequest true "Task"
// @Success      201 {object} domain.Task
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/tasks [post]
func (h *TaskHandler) AddTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.AddTask(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary      Update task
// @Description  Partial update. id and createdAt cannot change; send dueDate null to clear it.
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        taskId path string true "Task ID"
// @Param        request body dto.UpdateTaskRequest true "Fields to change"
// @Success      200 {object} domain.Task
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/tasks/{taskId} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), c.Param("taskId"), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        taskId path string true "Task ID"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id"), c.Param("taskId")); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendOK(c, http.StatusOK)
}

// MoveTask godoc
// @Summary      Move task
// @Description  Moves a task within or across columns; both columns are renumbered 0..n-1
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body dto.MoveTaskRequest true "Move"
// @Success      200 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /projects/{id}/tasks/reorder [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.taskService.MoveTask(c.Request.Context(), c.Param("id"), &req); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendOK(c, http.StatusOK)
}
