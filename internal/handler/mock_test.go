package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
)

// MockProjectService is a mock implementation of service.ProjectService
type MockProjectService struct {
	ListProjectsFunc    func(ctx context.Context) ([]domain.Project, error)
	CreateProjectFunc   func(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetProjectFunc      func(ctx context.Context, projectID string) (*domain.Project, error)
	UpdateProjectFunc   func(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*domain.Project, error)
	DeleteProjectFunc   func(ctx context.Context, projectID string) error
	GetBoardSummaryFunc func(ctx context.Context, projectID string) (*dto.BoardSummaryResponse, error)
}

func (m *MockProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return []domain.Project{}, nil
}

func (m *MockProjectService) CreateProject(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockProjectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockProjectService) UpdateProject(ctx context.Context, projectID string, req *dto.UpdateProjectRequest) (*domain.Project, error) {
	if m.UpdateProjectFunc != nil {
		return m.UpdateProjectFunc(ctx, projectID, req)
	}
	return nil, nil
}

func (m *MockProjectService) DeleteProject(ctx context.Context, projectID string) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, projectID)
	}
	return nil
}

func (m *MockProjectService) GetBoardSummary(ctx context.Context, projectID string) (*dto.BoardSummaryResponse, error) {
	if m.GetBoardSummaryFunc != nil {
		return m.GetBoardSummaryFunc(ctx, projectID)
	}
	return nil, nil
}

// MockColumnService is a mock implementation of service.ColumnService
type MockColumnService struct {
	AddColumnFunc      func(ctx context.Context, projectID string, req *dto.CreateColumnRequest) (*domain.Column, error)
	DeleteColumnFunc   func(ctx context.Context, projectID string, req *dto.DeleteColumnRequest) error
	ReorderColumnsFunc func(ctx context.Context, projectID string, req *dto.ReorderColumnsRequest) error
}

func (m *MockColumnService) AddColumn(ctx context.Context, projectID string, req *dto.CreateColumnRequest) (*domain.Column, error) {
	if m.AddColumnFunc != nil {
		return m.AddColumnFunc(ctx, projectID, req)
	}
	return nil, nil
}

func (m *MockColumnService) DeleteColumn(ctx context.Context, projectID string, req *dto.DeleteColumnRequest) error {
	if m.DeleteColumnFunc != nil {
		return m.DeleteColumnFunc(ctx, projectID, req)
	}
	return nil
}

func (m *MockColumnService) ReorderColumns(ctx context.Context, projectID string, req *dto.ReorderColumnsRequest) error {
	if m.ReorderColumnsFunc != nil {
		return m.ReorderColumnsFunc(ctx, projectID, req)
	}
	return nil
}

// MockTaskService is a mock implementation of service.TaskService
type MockTaskService struct {
	AddTaskFunc    func(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTaskFunc func(ctx context.Context, projectID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTaskFunc func(ctx context.Context, projectID, taskID string) error
	MoveTaskFunc   func(ctx context.Context, projectID string, req *dto.MoveTaskRequest) error
}

func (m *MockTaskService) AddTask(ctx context.Context, projectID string, req *dto.CreateTaskRequest) (*domain.Task, error) {
	if m.AddTaskFunc != nil {
		return m.AddTaskFunc(ctx, projectID, req)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, projectID, taskID string, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, projectID, taskID, req)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, projectID, taskID)
	}
	return nil
}

func (m *MockTaskService) MoveTask(ctx context.Context, projectID string, req *dto.MoveTaskRequest) error {
	if m.MoveTaskFunc != nil {
		return m.MoveTaskFunc(ctx, projectID, req)
	}
	return nil
}

// MockCourseService is a mock implementation of service.CourseService
type MockCourseService struct {
	ListCoursesFunc  func(ctx context.Context) ([]domain.CustomCourse, error)
	GetCourseFunc    func(ctx context.Context, id string) (*domain.CustomCourse, error)
	CreateCourseFunc func(ctx context.Context, req *dto.CreateCourseRequest) (*domain.CustomCourse, error)
	UpdateCourseFunc func(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*domain.CustomCourse, error)
	DeleteCourseFunc func(ctx context.Context, id string) error
}

func (m *MockCourseService) ListCourses(ctx context.Context) ([]domain.CustomCourse, error) {
	if m.ListCoursesFunc != nil {
		return m.ListCoursesFunc(ctx)
	}
	return []domain.CustomCourse{}, nil
}

func (m *MockCourseService) GetCourse(ctx context.Context, id string) (*domain.CustomCourse, error) {
	if m.GetCourseFunc != nil {
		return m.GetCourseFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*domain.CustomCourse, error) {
	if m.CreateCourseFunc != nil {
		return m.CreateCourseFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCourseService) UpdateCourse(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*domain.CustomCourse, error) {
	if m.UpdateCourseFunc != nil {
		return m.UpdateCourseFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCourseService) DeleteCourse(ctx context.Context, id string) error {
	if m.DeleteCourseFunc != nil {
		return m.DeleteCourseFunc(ctx, id)
	}
	return nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

// doRequest serves one request through router and returns the recorder
func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
