package ordering

import (
	"fmt"

	"kanban-board-api/internal/domain"
)

// ViolationKind classifies an ordering problem found by Check
type ViolationKind string

// ViolationKind constants
const (
	ViolationTaskOrder   ViolationKind = "task_order"
	ViolationColumnOrder ViolationKind = "column_order"
	ViolationOrphanTask  ViolationKind = "orphan_task"
)

// Violation describes one broken ordering or reference invariant
type Violation struct {
	Kind      ViolationKind `json:"kind"`
	ProjectID string        `json:"projectId"`
	ColumnID  string        `json:"columnId,omitempty"`
	TaskID    string        `json:"taskId,omitempty"`
	Message   string        `json:"message"`
}

// Check reports columns whose tasks are not densely ordered, a column list
// that is not densely ordered, and tasks pointing at a missing column.
func Check(p *domain.Project) []Violation {
	var out []Violation

	for i, c := range SortedColumns(p.Columns) {
		if c.SortOrder != i {
			out = append(out, Violation{
				Kind:      ViolationColumnOrder,
				ProjectID: p.ID,
				ColumnID:  c.ID,
				Message:   fmt.Sprintf("column %q has sortOrder %d, expected %d", c.Title, c.SortOrder, i),
			})
		}
	}

	for _, c := range p.Columns {
		for i, t := range ColumnTasks(p.Tasks, c.ID) {
			if t.SortOrder != i {
				out = append(out, Violation{
					Kind:      ViolationTaskOrder,
					ProjectID: p.ID,
					ColumnID:  c.ID,
					TaskID:    t.ID,
					Message:   fmt.Sprintf("task %q has sortOrder %d, expected %d", t.Title, t.SortOrder, i),
				})
			}
		}
	}

	for _, t := range p.Tasks {
		if !p.HasColumn(t.ColumnID) {
			out = append(out, Violation{
				Kind:      ViolationOrphanTask,
				ProjectID: p.ID,
				ColumnID:  t.ColumnID,
				TaskID:    t.ID,
				Message:   fmt.Sprintf("task %q references missing column %q", t.Title, t.ColumnID),
			})
		}
	}

	return out
}
