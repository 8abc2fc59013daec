package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
)

// ProjectService defines the interface for project business logic
type ProjectService interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	GetBoardSummary(ctx context.Context, projectID string) (*dto.BoardSummaryResponse, error)
}

// projectServiceImpl is the implementation of ProjectService
type projectServiceImpl struct {
	repo      repository.ProjectRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo repository.ProjectRepository, publisher events.Publisher, m *metrics.Metrics, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ListProjects returns all projects, most recently modified first
func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		s.logger.Error("Failed to list projects", zap.Error(err))
		return nil, storageError(err, "Failed to list projects")
	}
	return projects, nil
}

// CreateProject creates a new project with the default columns
func (s *projectServiceImpl) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	title, err := requireText("Title", req.Title)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.CreateProject(ctx, title, req.Description)
	if err != nil {
		s.logger.Error("Failed to create project", zap.Error(err))
		return nil, storageError(err, "Failed to create project")
	}

	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	s.publish(events.TypeProjectCreated, project.ID, "")
	s.logger.Info("Project created", zap.String("project_id", project.ID))
	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectServiceImpl) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, storageError(err, "Failed to get project")
	}
	if project == nil {
		return nil, notFound("project " + projectID)
	}
	return project, nil
}

// UpdateProject patches title and description
func (s *projectServiceImpl) UpdateProject(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*domain.Project, error) {
	patch := domain.ProjectPatch{Description: req.Description}
	if req.Title != nil {
		title, err := requireText("Title", *req.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}

	project, err := s.repo.UpdateProject(ctx, projectID, patch)
	if err != nil {
		s.logger.Error("Failed to update project", zap.String("project_id", projectID), zap.Error(err))
		return nil, storageError(err, "Failed to update project")
	}
	if project == nil {
		return nil, notFound("project " + projectID)
	}

	s.publish(events.TypeProjectUpdated, projectID, "")
	return project, nil
}

// DeleteProject removes a project with all of its columns and tasks
func (s *projectServiceImpl) DeleteProject(ctx context.Context, projectID string) error {
	ok, err := s.repo.DeleteProject(ctx, projectID)
	if err != nil {
		s.logger.Error("Failed to delete project", zap.String("project_id", projectID), zap.Error(err))
		return storageError(err, "Failed to delete project")
	}
	if !ok {
		return notFound("project " + projectID)
	}

	s.publish(events.TypeProjectDeleted, projectID, "")
	s.logger.Info("Project deleted", zap.String("project_id", projectID))
	return nil
}

// GetBoardSummary renders the board in display order
func (s *projectServiceImpl) GetBoardSummary(ctx context.Context, projectID string) (*dto.BoardSummaryResponse, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary := SummarizeBoard(project)
	return &summary, nil
}

func (s *projectServiceImpl) publish(eventType, projectID, entityID string) {
	publish(s.publisher, eventType, projectID, entityID)
}

func publish(p events.Publisher, eventType, projectID, entityID string) {
	if p == nil {
		return
	}
	p.Publish(events.Event{
		Type:      eventType,
		ProjectID: projectID,
		EntityID:  entityID,
		At:        time.Now().UTC(),
	})
}
