package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/response"
)

var testNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func fixtureRepo() *MockProjectRepository {
	return &MockProjectRepository{
		GetProjectFunc: func(ctx context.Context, id string) (*domain.Project, error) {
			if id != "proj-1" {
				return nil, nil
			}
			return boardFixture(), nil
		},
	}
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestTaskService_AddTaskValidation(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		req      dto.CreateTaskRequest
		wantCode string
	}{
		{name: "blank title", project: "proj-1", req: dto.CreateTaskRequest{Title: " ", ColumnID: "col-todo"}, wantCode: response.ErrCodeValidation},
		{name: "bad priority", project: "proj-1", req: dto.CreateTaskRequest{Title: "x", ColumnID: "col-todo", Priority: "critical"}, wantCode: response.ErrCodeValidation},
		{name: "bad due date", project: "proj-1", req: dto.CreateTaskRequest{Title: "x", ColumnID: "col-todo", DueDate: strPtr("next week")}, wantCode: response.ErrCodeValidation},
		{name: "foreign column", project: "proj-1", req: dto.CreateTaskRequest{Title: "x", ColumnID: "col-other"}, wantCode: response.ErrCodeValidation},
		{name: "missing project", project: "proj-2", req: dto.CreateTaskRequest{Title: "x", ColumnID: "col-todo"}, wantCode: response.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtureRepo()
			repo.AddTaskFunc = func(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error) {
				t.Fatal("AddTask must not be called")
				return nil, nil
			}
			svc := NewTaskService(repo, events.NopPublisher{}, nil, zap.NewNop())

			_, err := svc.AddTask(context.Background(), tt.project, &tt.req)

			assertAppError(t, err, tt.wantCode)
		})
	}
}

func TestTaskService_AddTask(t *testing.T) {
	var got domain.TaskFields
	repo := fixtureRepo()
	repo.AddTaskFunc = func(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error) {
		got = fields
		return &domain.Task{ID: "task-2", Title: fields.Title, ColumnID: fields.ColumnID, SortOrder: 1}, nil
	}
	pub := &recordingPublisher{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	svc := NewTaskService(repo, pub, m, zap.NewNop())

	for _, due := range []string{"2024-04-01", "2024-04-01T10:00:00Z"} {
		task, err := svc.AddTask(context.Background(), "proj-1", &dto.CreateTaskRequest{
			Title:    "Plan cutover",
			ColumnID: "col-todo",
			Priority: "urgent",
			Labels:   []string{"Ops"},
			DueDate:  strPtr(due),
		})
		require.NoError(t, err)
		assert.Equal(t, "task-2", task.ID)
		assert.Equal(t, domain.PriorityUrgent, got.Priority)
		assert.Equal(t, due, *got.DueDate)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.TaskCreatedTotal))
	assert.Equal(t, []string{events.TypeTaskCreated, events.TypeTaskCreated}, pub.types())
}

func TestTaskService_AddTaskEmptyDueDateIsNull(t *testing.T) {
	var got domain.TaskFields
	repo := fixtureRepo()
	repo.AddTaskFunc = func(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error) {
		got = fields
		return &domain.Task{ID: "task-2", Title: fields.Title, ColumnID: fields.ColumnID, DueDate: fields.DueDate}, nil
	}
	svc := NewTaskService(repo, events.NopPublisher{}, nil, zap.NewNop())

	task, err := svc.AddTask(context.Background(), "proj-1", &dto.CreateTaskRequest{
		Title:    "Plan cutover",
		ColumnID: "col-todo",
		DueDate:  strPtr(""),
	})

	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
	assert.Nil(t, task.DueDate)
}

func TestTaskService_UpdateTaskPatch(t *testing.T) {
	tests := []struct {
		name   string
		req    dto.UpdateTaskRequest
		assert func(t *testing.T, p domain.TaskPatch)
	}{
		{
			name: "absent due date is left alone",
			req:  dto.UpdateTaskRequest{Title: strPtr("New")},
			assert: func(t *testing.T, p domain.TaskPatch) {
				assert.Equal(t, "New", *p.Title)
				assert.False(t, p.ClearDueDate)
				assert.Nil(t, p.DueDate)
			},
		},
		{
			name: "null due date clears",
			req:  dto.UpdateTaskRequest{DueDate: dto.OptionalString{Set: true}},
			assert: func(t *testing.T, p domain.TaskPatch) {
				assert.True(t, p.ClearDueDate)
			},
		},
		{
			name: "due date is set",
			req:  dto.UpdateTaskRequest{DueDate: dto.OptionalString{Set: true, Value: strPtr("2024-05-01")}},
			assert: func(t *testing.T, p domain.TaskPatch) {
				require.NotNil(t, p.DueDate)
				assert.Equal(t, "2024-05-01", *p.DueDate)
			},
		},
		{
			name: "priority and column",
			req:  dto.UpdateTaskRequest{Priority: strPtr("low"), ColumnID: strPtr("col-done"), SortOrder: intPtr(3)},
			assert: func(t *testing.T, p domain.TaskPatch) {
				assert.Equal(t, domain.PriorityLow, *p.Priority)
				assert.Equal(t, "col-done", *p.ColumnID)
				assert.Equal(t, 3, *p.SortOrder)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.TaskPatch
			repo := fixtureRepo()
			repo.UpdateTaskFunc = func(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
				got = patch
				return &domain.Task{ID: taskID}, nil
			}
			svc := NewTaskService(repo, events.NopPublisher{}, nil, zap.NewNop())

			_, err := svc.UpdateTask(context.Background(), "proj-1", "task-1", &tt.req)

			require.NoError(t, err)
			tt.assert(t, got)
		})
	}
}

func TestTaskService_UpdateTaskErrors(t *testing.T) {
	tests := []struct {
		name     string
		taskID   string
		req      dto.UpdateTaskRequest
		wantCode string
	}{
		{name: "unknown task", taskID: "task-9", req: dto.UpdateTaskRequest{Title: strPtr("x")}, wantCode: response.ErrCodeNotFound},
		{name: "bad priority", taskID: "task-1", req: dto.UpdateTaskRequest{Priority: strPtr("asap")}, wantCode: response.ErrCodeValidation},
		{name: "blank title", taskID: "task-1", req: dto.UpdateTaskRequest{Title: strPtr("")}, wantCode: response.ErrCodeValidation},
		{name: "bad due date", taskID: "task-1", req: dto.UpdateTaskRequest{DueDate: dto.OptionalString{Set: true, Value: strPtr("04/01/2024")}}, wantCode: response.ErrCodeValidation},
		{name: "foreign column", taskID: "task-1", req: dto.UpdateTaskRequest{ColumnID: strPtr("col-x")}, wantCode: response.ErrCodeValidation},
		{name: "negative sort order", taskID: "task-1", req: dto.UpdateTaskRequest{SortOrder: intPtr(-1)}, wantCode: response.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtureRepo()
			repo.UpdateTaskFunc = func(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
				if taskID != "task-1" {
					return nil, nil
				}
				return &domain.Task{ID: taskID}, nil
			}
			svc := NewTaskService(repo, events.NopPublisher{}, nil, zap.NewNop())

			_, err := svc.UpdateTask(context.Background(), "proj-1", tt.taskID, &tt.req)

			assertAppError(t, err, tt.wantCode)
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	repo := &MockProjectRepository{
		DeleteTaskFunc: func(ctx context.Context, projectID, taskID string) (bool, error) {
			return taskID == "task-1", nil
		},
	}
	pub := &recordingPublisher{}
	svc := NewTaskService(repo, pub, nil, zap.NewNop())

	require.NoError(t, svc.DeleteTask(context.Background(), "proj-1", "task-1"))
	assertAppError(t, svc.DeleteTask(context.Background(), "proj-1", "task-2"), response.ErrCodeNotFound)
	assert.Equal(t, []string{events.TypeTaskDeleted}, pub.types())
}

func TestTaskService_MoveTask(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.MoveTaskRequest
		wantCode  string
		wantScope string
	}{
		{name: "same column", req: dto.MoveTaskRequest{TaskID: "task-1", DestinationColumnID: "col-todo", NewIndex: intPtr(0)}, wantScope: "same_column"},
		{name: "cross column", req: dto.MoveTaskRequest{TaskID: "task-1", DestinationColumnID: "col-done", NewIndex: intPtr(5)}, wantScope: "cross_column"},
		{name: "unknown task", req: dto.MoveTaskRequest{TaskID: "task-9", DestinationColumnID: "col-done", NewIndex: intPtr(0)}, wantCode: response.ErrCodeNotFound},
		{name: "foreign column", req: dto.MoveTaskRequest{TaskID: "task-1", DestinationColumnID: "col-x", NewIndex: intPtr(0)}, wantCode: response.ErrCodeValidation},
		{name: "missing index", req: dto.MoveTaskRequest{TaskID: "task-1", DestinationColumnID: "col-done"}, wantCode: response.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := fixtureRepo()
			var gotIndex int
			repo.MoveTaskFunc = func(ctx context.Context, projectID, taskID, destColumnID string, newIndex int) (bool, error) {
				gotIndex = newIndex
				return true, nil
			}
			m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
			svc := NewTaskService(repo, events.NopPublisher{}, m, zap.NewNop())

			err := svc.MoveTask(context.Background(), "proj-1", &tt.req)

			if tt.wantCode != "" {
				assertAppError(t, err, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tt.req.NewIndex, gotIndex)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.TaskMovedTotal.WithLabelValues(tt.wantScope)))
		})
	}
}
