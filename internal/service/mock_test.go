package service

import (
	"context"
	"sync"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	ListProjectsFunc   func(ctx context.Context) ([]domain.Project, error)
	CreateProjectFunc  func(ctx context.Context, title, description string) (*domain.Project, error)
	GetProjectFunc     func(ctx context.Context, id string) (*domain.Project, error)
	UpdateProjectFunc  func(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProjectFunc  func(ctx context.Context, id string) (bool, error)
	AddColumnFunc      func(ctx context.Context, projectID, title string) (*domain.Column, error)
	DeleteColumnFunc   func(ctx context.Context, projectID, columnID string) (bool, error)
	ReorderColumnsFunc func(ctx context.Context, projectID string, orderedIDs []string) (bool, error)
	AddTaskFunc        func(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error)
	UpdateTaskFunc     func(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFunc     func(ctx context.Context, projectID, taskID string) (bool, error)
	MoveTaskFunc       func(ctx context.Context, projectID, taskID, destColumnID string, newIndex int) (bool, error)
	CountStatsFunc     func(ctx context.Context) (metrics.Stats, error)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return []domain.Project{}, nil
}

func (m *MockProjectRepository) CreateProject(ctx context.Context, title, description string) (*domain.Project, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, title, description)
	}
	return nil, nil
}

func (m *MockProjectRepository) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, id string) (bool, error) {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProjectRepository) AddColumn(ctx context.Context, projectID, title string) (*domain.Column, error) {
	if m.AddColumnFunc != nil {
		return m.AddColumnFunc(ctx, projectID, title)
	}
	return nil, nil
}

func (m *MockProjectRepository) DeleteColumn(ctx context.Context, projectID, columnID string) (bool, error) {
	if m.DeleteColumnFunc != nil {
		return m.DeleteColumnFunc(ctx, projectID, columnID)
	}
	return false, nil
}

func (m *MockProjectRepository) ReorderColumns(ctx context.Context, projectID string, orderedIDs []string) (bool, error) {
	if m.ReorderColumnsFunc != nil {
		return m.ReorderColumnsFunc(ctx, projectID, orderedIDs)
	}
	return false, nil
}

func (m *MockProjectRepository) AddTask(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error) {
	if m.AddTaskFunc != nil {
		return m.AddTaskFunc(ctx, projectID, fields)
	}
	return nil, nil
}

func (m *MockProjectRepository) UpdateTask(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, projectID, taskID, patch)
	}
	return nil, nil
}

func (m *MockProjectRepository) DeleteTask(ctx context.Context, projectID, taskID string) (bool, error) {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, projectID, taskID)
	}
	return false, nil
}

func (m *MockProjectRepository) MoveTask(ctx context.Context, projectID, taskID, destColumnID string, newIndex int) (bool, error) {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, projectID, taskID, destColumnID, newIndex)
	}
	return false, nil
}

func (m *MockProjectRepository) CountStats(ctx context.Context) (metrics.Stats, error) {
	if m.CountStatsFunc != nil {
		return m.CountStatsFunc(ctx)
	}
	return metrics.Stats{}, nil
}

// MockCourseRepository is a mock implementation of CourseRepository
type MockCourseRepository struct {
	ListFunc   func(ctx context.Context) ([]domain.CustomCourse, error)
	GetFunc    func(ctx context.Context, id string) (*domain.CustomCourse, error)
	CreateFunc func(ctx context.Context, course domain.CustomCourse) (*domain.CustomCourse, error)
	UpdateFunc func(ctx context.Context, id string, patch domain.CoursePatch) (*domain.CustomCourse, error)
	DeleteFunc func(ctx context.Context, id string) (bool, error)
}

func (m *MockCourseRepository) List(ctx context.Context) ([]domain.CustomCourse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.CustomCourse{}, nil
}

func (m *MockCourseRepository) Get(ctx context.Context, id string) (*domain.CustomCourse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCourseRepository) Create(ctx context.Context, course domain.CustomCourse) (*domain.CustomCourse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	return &course, nil
}

func (m *MockCourseRepository) Update(ctx context.Context, id string, patch domain.CoursePatch) (*domain.CustomCourse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockCourseRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// boardFixture returns a project with the default columns and one task in To Do
func boardFixture() *domain.Project {
	p := &domain.Project{
		ID:    "proj-1",
		Title: "Migration",
		Columns: []domain.Column{
			{ID: "col-todo", Title: "To Do", SortOrder: 0},
			{ID: "col-doing", Title: "In Progress", SortOrder: 1},
			{ID: "col-review", Title: "Review", SortOrder: 2},
			{ID: "col-done", Title: "Done", SortOrder: 3},
		},
		Tasks: []domain.Task{
			{ID: "task-1", Title: "Audit servers", Priority: domain.PriorityHigh, Labels: []string{"infra"}, ColumnID: "col-todo", SortOrder: 0},
		},
	}
	return p
}
