package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
)

func setupColumnRouter(svc *MockColumnService) *gin.Engine {
	h := NewColumnHandler(svc, zap.NewNop())
	router := gin.New()
	router.POST("/api/projects/:id/columns", h.AddColumn)
	router.DELETE("/api/projects/:id/columns", h.DeleteColumn)
	router.POST("/api/projects/:id/columns/reorder", h.ReorderColumns)
	return router
}

func TestColumnHandler_AddColumn(t *testing.T) {
	svc := &MockColumnService{
		AddColumnFunc: func(ctx context.Context, projectID string, req *dto.CreateColumnRequest) (*domain.Column, error) {
			assert.Equal(t, "proj-1", projectID)
			return &domain.Column{ID: "col-new", Title: req.Title, SortOrder: 4}, nil
		},
	}

	w := doRequest(setupColumnRouter(svc), http.MethodPost, "/api/projects/proj-1/columns", `{"title":"Blocked"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"col-new","title":"Blocked","sortOrder":4}`, w.Body.String())
}

func TestColumnHandler_DeleteColumn(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "deleted", body: `{"columnId":"col-1"}`, wantStatus: http.StatusOK},
		{name: "missing body", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: response.ErrCodeValidation},
		{
			name:       "column has tasks",
			body:       `{"columnId":"col-1"}`,
			err:        response.NewAppError(response.ErrCodeInvariantViolation, "Column has tasks", "col-1"),
			wantStatus: http.StatusBadRequest,
			wantCode:   response.ErrCodeInvariantViolation,
		},
		{
			name:       "project missing",
			body:       `{"columnId":"col-1"}`,
			err:        response.NewNotFoundError("project proj-1"),
			wantStatus: http.StatusNotFound,
			wantCode:   response.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockColumnService{
				DeleteColumnFunc: func(ctx context.Context, projectID string, req *dto.DeleteColumnRequest) error {
					return tt.err
				},
			}

			w := doRequest(setupColumnRouter(svc), http.MethodDelete, "/api/projects/proj-1/columns", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				assert.JSONEq(t, `{"success":true}`, w.Body.String())
				return
			}
			var resp response.ErrorResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestColumnHandler_ReorderColumns(t *testing.T) {
	var got []string
	svc := &MockColumnService{
		ReorderColumnsFunc: func(ctx context.Context, projectID string, req *dto.ReorderColumnsRequest) error {
			got = req.ColumnIDs
			return nil
		},
	}

	w := doRequest(setupColumnRouter(svc), http.MethodPost, "/api/projects/proj-1/columns/reorder", `{"columnIds":["c","a","b"]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c", "a", "b"}, got)
}
