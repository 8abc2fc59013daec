package domain

import (
	"strings"
	"time"
)

// Priority represents the urgency of a task
type Priority string

// Priority constants
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is applied when a task is created without one
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Task represents a unit of work placed in exactly one column
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Labels      []string  `json:"labels"`
	DueDate     *string   `json:"dueDate"`
	ColumnID    string    `json:"columnId"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskFields are the caller-supplied fields for a new task
type TaskFields struct {
	Title       string
	Description string
	Priority    Priority
	Labels      []string
	DueDate     *string
	ColumnID    string
}

// TaskPatch is a partial task update. Nil fields are left untouched.
// ClearDueDate resets the due date to null and wins over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *Priority
	Labels       *[]string
	DueDate      *string
	ClearDueDate bool
	ColumnID     *string
	SortOrder    *int
}

// Apply copies the set fields of the patch onto the task
func (patch TaskPatch) Apply(t *Task, now time.Time) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Labels != nil {
		t.Labels = NormalizeLabels(*patch.Labels)
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		t.DueDate = &due
	}
	if patch.ColumnID != nil {
		t.ColumnID = *patch.ColumnID
	}
	if patch.SortOrder != nil {
		t.SortOrder = *patch.SortOrder
	}
	t.UpdatedAt = now
}

// NormalizeLabels lowercases and trims labels, dropping empties and duplicates.
// The first occurrence of each label keeps its position.
func NormalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
