package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/ordering"
	"kanban-board-api/internal/storage"
)

// ProjectRepository defines the board operations over the project collection.
// Missing projects, columns and tasks are reported as nil or false, never as an error.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, title, description string) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) (bool, error)

	AddColumn(ctx context.Context, projectID, title string) (*domain.Column, error)
	DeleteColumn(ctx context.Context, projectID, columnID string) (bool, error)
	ReorderColumns(ctx context.Context, projectID string, orderedIDs []string) (bool, error)

	AddTask(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error)
	UpdateTask(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string) (bool, error)
	MoveTask(ctx context.Context, projectID, taskID, destColumnID string, newIndex int) (bool, error)

	CountStats(ctx context.Context) (metrics.Stats, error)
}

// projectRepositoryImpl runs every operation as one read-modify-write cycle
// of the whole collection. mu serializes the cycles of this process only.
type projectRepositoryImpl struct {
	mu       sync.Mutex
	projects *storage.Collection[domain.Project]
	now      func() time.Time
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(projects *storage.Collection[domain.Project]) ProjectRepository {
	return &projectRepositoryImpl{
		projects: projects,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// mutate loads the collection, applies fn to the project with the given id and
// writes the collection back when fn reports a change.
func (r *projectRepositoryImpl) mutate(ctx context.Context, id string, fn func(p *domain.Project) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOfProject(projects, id)
	if idx < 0 {
		return false, nil
	}

	if !fn(&projects[idx]) {
		return false, nil
	}

	if err := r.projects.WriteAll(ctx, projects); err != nil {
		return false, err
	}
	return true, nil
}

func indexOfProject(projects []domain.Project, id string) int {
	return slices.IndexFunc(projects, func(p domain.Project) bool { return p.ID == id })
}

// ListProjects returns all projects, most recently modified first
func (r *projectRepositoryImpl) ListProjects(ctx context.Context) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(projects, func(a, b domain.Project) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return projects, nil
}

// CreateProject creates a project seeded with the default columns
func (r *projectRepositoryImpl) CreateProject(ctx context.Context, title, description string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	project := domain.NewProject(title, description, r.now())
	projects = append(projects, project)

	if err := r.projects.WriteAll(ctx, projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject returns the project or nil
func (r *projectRepositoryImpl) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfProject(projects, id)
	if idx < 0 {
		return nil, nil
	}
	return &projects[idx], nil
}

// UpdateProject patches title and description
func (r *projectRepositoryImpl) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	var updated domain.Project
	ok, err := r.mutate(ctx, id, func(p *domain.Project) bool {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		p.Touch(r.now())
		updated = *p
		return true
	})
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject removes the project along with its embedded columns and tasks
func (r *projectRepositoryImpl) DeleteProject(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOfProject(projects, id)
	if idx < 0 {
		return false, nil
	}

	projects = slices.Delete(projects, idx, idx+1)
	if err := r.projects.WriteAll(ctx, projects); err != nil {
		return false, err
	}
	return true, nil
}

// AddColumn appends a column after the existing ones
func (r *projectRepositoryImpl) AddColumn(ctx context.Context, projectID, title string) (*domain.Column, error) {
	var column domain.Column
	ok, err := r.mutate(ctx, projectID, func(p *domain.Project) bool {
		column = domain.Column{
			ID:        domain.NewID(domain.PrefixColumn),
			Title:     title,
			SortOrder: ordering.NextColumnOrder(p.Columns),
		}
		p.Columns = append(p.Columns, column)
		p.Touch(r.now())
		return true
	})
	if err != nil || !ok {
		return nil, err
	}
	return &column, nil
}

// DeleteColumn removes an empty column. It returns false when the project or
// column is missing or when any task still references the column.
func (r *projectRepositoryImpl) DeleteColumn(ctx context.Context, projectID, columnID string) (bool, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) bool {
		if p.CountTasksInColumn(columnID) > 0 {
			return false
		}
		idx := slices.IndexFunc(p.Columns, func(c domain.Column) bool { return c.ID == columnID })
		if idx < 0 {
			return false
		}
		p.Columns = slices.Delete(p.Columns, idx, idx+1)
		p.Touch(r.now())
		return true
	})
}

// ReorderColumns assigns each listed column its position in orderedIDs
func (r *projectRepositoryImpl) ReorderColumns(ctx context.Context, projectID string, orderedIDs []string) (bool, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) bool {
		ordering.ReorderColumns(p.Columns, orderedIDs)
		p.Touch(r.now())
		return true
	})
}

// AddTask appends a task to the end of its column
func (r *projectRepositoryImpl) AddTask(ctx context.Context, projectID string, fields domain.TaskFields) (*domain.Task, error) {
	var task domain.Task
	ok, err := r.mutate(ctx, projectID, func(p *domain.Project) bool {
		now := r.now()
		priority := fields.Priority
		if priority == "" {
			priority = domain.DefaultPriority
		}
		task = domain.Task{
			ID:          domain.NewID(domain.PrefixTask),
			Title:       fields.Title,
			Description: fields.Description,
			Priority:    priority,
			Labels:      domain.NormalizeLabels(fields.Labels),
			DueDate:     fields.DueDate,
			ColumnID:    fields.ColumnID,
			SortOrder:   ordering.NextTaskOrder(p.Tasks, fields.ColumnID),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		p.Tasks = append(p.Tasks, task)
		p.Touch(now)
		return true
	})
	if err != nil || !ok {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial patch to the task
func (r *projectRepositoryImpl) UpdateTask(ctx context.Context, projectID, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	var updated domain.Task
	ok, err := r.mutate(ctx, projectID, func(p *domain.Project) bool {
		task := p.FindTask(taskID)
		if task == nil {
			return false
		}
		now := r.now()
		patch.Apply(task, now)
		p.Touch(now)
		updated = *task
		return true
	})
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes the task and closes the gap it leaves in its column
func (r *projectRepositoryImpl) DeleteTask(ctx context.Context, projectID, taskID string) (bool, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) bool {
		idx := slices.IndexFunc(p.Tasks, func(t domain.Task) bool { return t.ID == taskID })
		if idx < 0 {
			return false
		}
		columnID := p.Tasks[idx].ColumnID
		p.Tasks = slices.Delete(p.Tasks, idx, idx+1)
		ordering.RenumberColumn(p.Tasks, columnID)
		p.Touch(r.now())
		return true
	})
}

// MoveTask repositions the task at newIndex within destColumnID.
// destColumnID is not checked against the project's columns.
func (r *projectRepositoryImpl) MoveTask(ctx context.Context, projectID, taskID, destColumnID string, newIndex int) (bool, error) {
	return r.mutate(ctx, projectID, func(p *domain.Project) bool {
		now := r.now()
		if !ordering.MoveTask(p.Tasks, taskID, destColumnID, newIndex, now) {
			return false
		}
		p.Touch(now)
		return true
	})
}

// CountStats totals projects, columns and tasks
func (r *projectRepositoryImpl) CountStats(ctx context.Context) (metrics.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.projects.ReadAll(ctx)
	if err != nil {
		return metrics.Stats{}, err
	}

	stats := metrics.Stats{Projects: int64(len(projects))}
	for _, p := range projects {
		stats.Columns += int64(len(p.Columns))
		stats.Tasks += int64(len(p.Tasks))
	}
	return stats, nil
}
