package service

import (
	"context"

	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
)

// CourseService defines the interface for custom course authoring
type CourseService interface {
	ListCourses(ctx context.Context) ([]domain.CustomCourse, error)
	GetCourse(ctx context.Context, id string) (*domain.CustomCourse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*domain.CustomCourse, error)
	UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*domain.CustomCourse, error)
	DeleteCourse(ctx context.Context, id string) error
}

type courseServiceImpl struct {
	repo   repository.CourseRepository
	logger *zap.Logger
}

// NewCourseService creates a new instance of CourseService
func NewCourseService(repo repository.CourseRepository, logger *zap.Logger) CourseService {
	return &courseServiceImpl{repo: repo, logger: logger}
}

func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]domain.CustomCourse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list courses", zap.Error(err))
		return nil, storageError(err, "Failed to list courses")
	}
	return courses, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id string) (*domain.CustomCourse, error) {
	course, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "Failed to get course")
	}
	if course == nil {
		return nil, notFound("course " + id)
	}
	return course, nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*domain.CustomCourse, error) {
	title, err := requireText("Title", req.Title)
	if err != nil {
		return nil, err
	}
	if _, err := requireText("Content", req.Content); err != nil {
		return nil, err
	}

	course, err := s.repo.Create(ctx, domain.CustomCourse{
		Title:       title,
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
	})
	if err != nil {
		s.logger.Error("Failed to create course", zap.Error(err))
		return nil, storageError(err, "Failed to create course")
	}
	return course, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*domain.CustomCourse, error) {
	patch := domain.CoursePatch{
		Description: req.Description,
		Tags:        req.Tags,
	}
	if req.Title != nil {
		title, err := requireText("Title", *req.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if req.Content != nil {
		if _, err := requireText("Content", *req.Content); err != nil {
			return nil, err
		}
		patch.Content = req.Content
	}

	course, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		s.logger.Error("Failed to update course", zap.String("course_id", id), zap.Error(err))
		return nil, storageError(err, "Failed to update course")
	}
	if course == nil {
		return nil, notFound("course " + id)
	}
	return course, nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete course", zap.String("course_id", id), zap.Error(err))
		return storageError(err, "Failed to delete course")
	}
	if !ok {
		return notFound("course " + id)
	}
	return nil
}
