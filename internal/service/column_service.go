package service

import (
	"context"

	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// ColumnService defines the interface for column business logic
type ColumnService interface {
	AddColumn(ctx context.Context, projectID string, req *dto.CreateColumnRequest) (*domain.Column, error)
	DeleteColumn(ctx context.Context, projectID string, req *dto.DeleteColumnRequest) error
	ReorderColumns(ctx context.Context, projectID string, req *dto.ReorderColumnsRequest) error
}

type columnServiceImpl struct {
	repo      repository.ProjectRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewColumnService creates a new instance of ColumnService
func NewColumnService(repo repository.ProjectRepository, publisher events.Publisher, logger *zap.Logger) ColumnService {
	return &columnServiceImpl{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// AddColumn appends a column to the project
func (s *columnServiceImpl) AddColumn(ctx context.Context, projectID string, req *dto.CreateColumnRequest) (*domain.Column, error) {
	title, err := requireText("Title", req.Title)
	if err != nil {
		return nil, err
	}

	column, err := s.repo.AddColumn(ctx, projectID, title)
	if err != nil {
		s.logger.Error("Failed to add column", zap.String("project_id", projectID), zap.Error(err))
		return nil, storageError(err, "Failed to add column")
	}
	if column == nil {
		return nil, notFound("project " + projectID)
	}

	publish(s.publisher, events.TypeColumnCreated, projectID, column.ID)
	return column, nil
}

// DeleteColumn removes an empty column
func (s *columnServiceImpl) DeleteColumn(ctx context.Context, projectID string, req *dto.DeleteColumnRequest) error {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return storageError(err, "Failed to delete column")
	}
	if project == nil {
		return notFound("project " + projectID)
	}
	if !project.HasColumn(req.ColumnID) {
		return response.NewValidationError("Column not found or has tasks", "column "+req.ColumnID)
	}
	if project.CountTasksInColumn(req.ColumnID) > 0 {
		return response.NewAppError(response.ErrCodeInvariantViolation, "Column has tasks", "")
	}

	ok, err := s.repo.DeleteColumn(ctx, projectID, req.ColumnID)
	if err != nil {
		s.logger.Error("Failed to delete column",
			zap.String("project_id", projectID),
			zap.String("column_id", req.ColumnID),
			zap.Error(err),
		)
		return storageError(err, "Failed to delete column")
	}
	// The board changed between the check and the write
	if !ok {
		return response.NewAppError(response.ErrCodeInvariantViolation, "Column not found or has tasks", "")
	}

	publish(s.publisher, events.TypeColumnDeleted, projectID, req.ColumnID)
	return nil
}

// ReorderColumns assigns sortOrder from the position of each id in the request
func (s *columnServiceImpl) ReorderColumns(ctx context.Context, projectID string, req *dto.ReorderColumnsRequest) error {
	ok, err := s.repo.ReorderColumns(ctx, projectID, req.ColumnIDs)
	if err != nil {
		s.logger.Error("Failed to reorder columns", zap.String("project_id", projectID), zap.Error(err))
		return storageError(err, "Failed to reorder columns")
	}
	if !ok {
		return notFound("project " + projectID)
	}

	publish(s.publisher, events.TypeColumnsReordered, projectID, "")
	return nil
}
