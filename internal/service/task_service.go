package service

import (
	"context"

	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// TaskService defines the interface for task business logic
type TaskService interface {
	AddTask(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, projectID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error
	MoveTask(ctx context.Context, projectID string, req *dto.MoveTaskRequest) error
}

type taskServiceImpl struct {
	repo      repository.ProjectRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTaskService creates a new instance of TaskService
func NewTaskService(repo repository.ProjectRepository, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) TaskService {
	return &taskServiceImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// loadProject fetches the project and maps absence to NotFound
func (s *taskServiceImpl) loadProject(ctx context.Context, projectID, op string) (*domain.Project, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, storageError(err, "Failed to "+op)
	}
	if project == nil {
		return nil, notFound("project " + projectID)
	}
	return project, nil
}

func requireColumn(project *domain.Project, columnID string) error {
	if !project.HasColumn(columnID) {
		return response.NewValidationError("Column not found in project", "column "+columnID)
	}
	return nil
}

// AddTask appends a task to the end of the target column
func (s *taskServiceImpl) AddTask(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	title, err := requireText("Title", req.Title)
	if err != nil {
		return nil, err
	}

	fields := domain.TaskFields{
		Title:       title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Labels:      req.Labels,
		DueDate:     req.DueDate,
		ColumnID:    req.ColumnID,
	}
	if fields.Priority != "" && !fields.Priority.Valid() {
		return nil, response.NewValidationError("Invalid priority", req.Priority)
	}
	// An empty dueDate means no due date, as on update
	if fields.DueDate != nil && *fields.DueDate == "" {
		fields.DueDate = nil
	}
	if fields.DueDate != nil {
		if err := validateDueDate(*fields.DueDate); err != nil {
			return nil, err
		}
	}

	project, err := s.loadProject(ctx, projectID, "add task")
	if err != nil {
		return nil, err
	}
	if err := requireColumn(project, req.ColumnID); err != nil {
		return nil, err
	}

	task, err := s.repo.AddTask(ctx, projectID, fields)
	if err != nil {
		s.logger.Error("Failed to add task", zap.String("project_id", projectID), zap.Error(err))
		return nil, storageError(err, "Failed to add task")
	}
	if task == nil {
		return nil, notFound("project " + projectID)
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskCreated()
	}
	publish(s.publisher, events.TypeTaskCreated, projectID, task.ID)
	return task, nil
}

// UpdateTask applies a partial update to the task
func (s *taskServiceImpl) UpdateTask(ctx context.Context, projectID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	patch := domain.TaskPatch{
		Description: req.Description,
		Labels:      req.Labels,
		ColumnID:    req.ColumnID,
		SortOrder:   req.SortOrder,
	}

	if req.Title != nil {
		title, err := requireText("Title", *req.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, response.NewValidationError("Invalid priority", *req.Priority)
		}
		patch.Priority = &priority
	}
	if req.DueDate.Set {
		if req.DueDate.Value == nil || *req.DueDate.Value == "" {
			patch.ClearDueDate = true
		} else {
			if err := validateDueDate(*req.DueDate.Value); err != nil {
				return nil, err
			}
			patch.DueDate = req.DueDate.Value
		}
	}
	if req.SortOrder != nil && *req.SortOrder < 0 {
		return nil, response.NewValidationError("sortOrder must not be negative", "")
	}

	if req.ColumnID != nil {
		project, err := s.loadProject(ctx, projectID, "update task")
		if err != nil {
			return nil, err
		}
		if err := requireColumn(project, *req.ColumnID); err != nil {
			return nil, err
		}
	}

	task, err := s.repo.UpdateTask(ctx, projectID, taskID, patch)
	if err != nil {
		s.logger.Error("Failed to update task",
			zap.String("project_id", projectID),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return nil, storageError(err, "Failed to update task")
	}
	if task == nil {
		return nil, notFound("task " + taskID)
	}

	publish(s.publisher, events.TypeTaskUpdated, projectID, taskID)
	return task, nil
}

// DeleteTask removes the task
func (s *taskServiceImpl) DeleteTask(ctx context.Context, projectID, taskID string) error {
	ok, err := s.repo.DeleteTask(ctx, projectID, taskID)
	if err != nil {
		s.logger.Error("Failed to delete task",
			zap.String("project_id", projectID),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return storageError(err, "Failed to delete task")
	}
	if !ok {
		return notFound("task " + taskID)
	}

	publish(s.publisher, events.TypeTaskDeleted, projectID, taskID)
	return nil
}

// MoveTask repositions a task within or across columns
func (s *taskServiceImpl) MoveTask(ctx context.Context, projectID string, req *dto.MoveTaskRequest) error {
	if req.NewIndex == nil {
		return response.NewValidationError("newIndex is required", "")
	}

	project, err := s.loadProject(ctx, projectID, "move task")
	if err != nil {
		return err
	}
	task := project.FindTask(req.TaskID)
	if task == nil {
		return notFound("task " + req.TaskID)
	}
	if err := requireColumn(project, req.DestinationColumnID); err != nil {
		return err
	}
	scope := "cross_column"
	if task.ColumnID == req.DestinationColumnID {
		scope = "same_column"
	}

	ok, err := s.repo.MoveTask(ctx, projectID, req.TaskID, req.DestinationColumnID, *req.NewIndex)
	if err != nil {
		s.logger.Error("Failed to move task",
			zap.String("project_id", projectID),
			zap.String("task_id", req.TaskID),
			zap.Error(err),
		)
		return storageError(err, "Failed to move task")
	}
	if !ok {
		return notFound("task " + req.TaskID)
	}

	if s.metrics != nil {
		s.metrics.IncrementTaskMoved(scope)
	}
	publish(s.publisher, events.TypeTaskMoved, projectID, req.TaskID)
	s.logger.Debug("Task moved",
		zap.String("project_id", projectID),
		zap.String("task_id", req.TaskID),
		zap.String("destination_column_id", req.DestinationColumnID),
		zap.Int("new_index", *req.NewIndex),
	)
	return nil
}
