package router

import (
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/service"
	"kanban-board-api/internal/storage"
)

// NewRepositories builds both repositories over backend. Every writer of a
// document must go through the same repository so its lock covers all writes.
func NewRepositories(backend storage.Backend, m *metrics.Metrics) (repository.ProjectRepository, repository.CourseRepository) {
	projects := storage.NewCollection[domain.Project](backend, storage.CollectionProjects, m)
	courses := storage.NewCollection[domain.CustomCourse](backend, storage.CollectionCourses, m)
	return repository.NewProjectRepository(projects), repository.NewCourseRepository(courses)
}

// Services bundles the service layer built over one set of repositories
type Services struct {
	Projects service.ProjectService
	Columns  service.ColumnService
	Tasks    service.TaskService
	Courses  service.CourseService
}

// NewServices wires every service to the given repositories
func NewServices(
	projectRepo repository.ProjectRepository,
	courseRepo repository.CourseRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Services {
	return &Services{
		Projects: service.NewProjectService(projectRepo, publisher, m, logger),
		Columns:  service.NewColumnService(projectRepo, publisher, logger),
		Tasks:    service.NewTaskService(projectRepo, publisher, m, logger),
		Courses:  service.NewCourseService(courseRepo, logger),
	}
}
