package domain

import (
	"time"
)

// Project represents one kanban board. Columns and tasks are embedded so the
// whole project is persisted as a single document.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Columns     []Column  `json:"columns"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Column represents an ordered lane within a project
type Column struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SortOrder int    `json:"sortOrder"`
}

// DefaultColumns are seeded into every new project
var DefaultColumns = []Column{
	{Title: "To Do", SortOrder: 0},
	{Title: "In Progress", SortOrder: 1},
	{Title: "Review", SortOrder: 2},
	{Title: "Done", SortOrder: 3},
}

// ProjectPatch holds the project fields that may be updated
type ProjectPatch struct {
	Title       *string
	Description *string
}

// NewProject builds a project with the default columns and no tasks
func NewProject(title, description string, now time.Time) Project {
	columns := make([]Column, len(DefaultColumns))
	for i, col := range DefaultColumns {
		columns[i] = Column{
			ID:        NewID(PrefixColumn),
			Title:     col.Title,
			SortOrder: col.SortOrder,
		}
	}

	return Project{
		ID:          NewID(PrefixProject),
		Title:       title,
		Description: description,
		Columns:     columns,
		Tasks:       []Task{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FindColumn returns the column with the given ID, or nil
func (p *Project) FindColumn(columnID string) *Column {
	for i := range p.Columns {
		if p.Columns[i].ID == columnID {
			return &p.Columns[i]
		}
	}
	return nil
}

// FindTask returns the task with the given ID, or nil
func (p *Project) FindTask(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// HasColumn reports whether the project owns a column with the given ID
func (p *Project) HasColumn(columnID string) bool {
	return p.FindColumn(columnID) != nil
}

// CountTasksInColumn returns how many tasks reference the column
func (p *Project) CountTasksInColumn(columnID string) int {
	count := 0
	for _, t := range p.Tasks {
		if t.ColumnID == columnID {
			count++
		}
	}
	return count
}

// Touch bumps the project's modification time
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}
