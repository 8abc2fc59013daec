// Package ordering computes sortOrder values for columns and tasks.
//
// Task orders are scoped per column and column orders per project. Every
// membership change renumbers the affected siblings densely to 0..n-1.
package ordering

import (
	"cmp"
	"slices"
	"time"

	"kanban-board-api/internal/domain"
)

// NextSortOrder returns the order that places a new item after all siblings
func NextSortOrder(orders []int) int {
	highest := -1
	for _, o := range orders {
		if o > highest {
			highest = o
		}
	}
	return highest + 1
}

// NextTaskOrder returns the append position for a new task in the column
func NextTaskOrder(tasks []domain.Task, columnID string) int {
	orders := make([]int, 0, len(tasks))
	for _, t := range tasks {
		if t.ColumnID == columnID {
			orders = append(orders, t.SortOrder)
		}
	}
	return NextSortOrder(orders)
}

// NextColumnOrder returns the append position for a new column
func NextColumnOrder(columns []domain.Column) int {
	orders := make([]int, len(columns))
	for i, c := range columns {
		orders[i] = c.SortOrder
	}
	return NextSortOrder(orders)
}

// ColumnTasks returns pointers to the column's tasks ordered by sortOrder.
// Equal orders keep their array order.
func ColumnTasks(tasks []domain.Task, columnID string) []*domain.Task {
	return columnTasksExcept(tasks, columnID, "")
}

func columnTasksExcept(tasks []domain.Task, columnID, skipID string) []*domain.Task {
	out := make([]*domain.Task, 0)
	for i := range tasks {
		if tasks[i].ColumnID == columnID && tasks[i].ID != skipID {
			out = append(out, &tasks[i])
		}
	}
	slices.SortStableFunc(out, func(a, b *domain.Task) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// Renumber assigns sortOrder = index to every task in the slice
func Renumber(tasks []*domain.Task) {
	for i, t := range tasks {
		t.SortOrder = i
	}
}

// RenumberColumn densely renumbers the tasks of one column in their current order
func RenumberColumn(tasks []domain.Task, columnID string) {
	Renumber(ColumnTasks(tasks, columnID))
}

// ClampIndex bounds index to [0, length]
func ClampIndex(index, length int) int {
	if index < 0 {
		return 0
	}
	if index > length {
		return length
	}
	return index
}

// MoveTask repositions a task to newIndex within destColumnID, which may be
// its current column. Source and destination siblings are renumbered densely.
// The destination column is not validated. Returns false if the task is absent.
func MoveTask(tasks []domain.Task, taskID, destColumnID string, newIndex int, now time.Time) bool {
	var moved *domain.Task
	for i := range tasks {
		if tasks[i].ID == taskID {
			moved = &tasks[i]
			break
		}
	}
	if moved == nil {
		return false
	}

	source := columnTasksExcept(tasks, moved.ColumnID, taskID)

	moved.ColumnID = destColumnID
	moved.UpdatedAt = now

	dest := columnTasksExcept(tasks, destColumnID, taskID)
	dest = slices.Insert(dest, ClampIndex(newIndex, len(dest)), moved)

	Renumber(source)
	Renumber(dest)
	return true
}

// ReorderColumns sets each listed column's sortOrder to its index in
// orderedIDs. Unknown IDs are ignored and unlisted columns keep their order.
func ReorderColumns(columns []domain.Column, orderedIDs []string) {
	for index, id := range orderedIDs {
		for i := range columns {
			if columns[i].ID == id {
				columns[i].SortOrder = index
				break
			}
		}
	}
}

// SortedColumns returns a copy of the columns ordered by sortOrder
func SortedColumns(columns []domain.Column) []domain.Column {
	out := slices.Clone(columns)
	slices.SortStableFunc(out, func(a, b domain.Column) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// Normalize densifies the column order and every column's task order.
// Tasks whose column no longer exists are left untouched.
func Normalize(p *domain.Project) {
	sorted := SortedColumns(p.Columns)
	ids := make([]string, len(sorted))
	for i, c := range sorted {
		ids[i] = c.ID
	}
	ReorderColumns(p.Columns, ids)

	for _, c := range p.Columns {
		RenumberColumn(p.Tasks, c.ID)
	}
}
