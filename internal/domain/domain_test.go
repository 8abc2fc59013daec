package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	p := NewProject("Migration", "Move servers", now)

	assert.True(t, strings.HasPrefix(p.ID, PrefixProject+"-"))
	assert.Equal(t, "Migration", p.Title)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NotNil(t, p.Tasks)
	assert.Empty(t, p.Tasks)

	require.Len(t, p.Columns, len(DefaultColumns))
	seen := map[string]bool{}
	for i, c := range p.Columns {
		assert.Equal(t, DefaultColumns[i].Title, c.Title)
		assert.Equal(t, i, c.SortOrder)
		assert.True(t, strings.HasPrefix(c.ID, PrefixColumn+"-"))
		assert.False(t, seen[c.ID], "column ids must be unique")
		seen[c.ID] = true
	}
}

func TestNewProject_ColumnsNotShared(t *testing.T) {
	now := time.Now()
	a := NewProject("A", "", now)
	b := NewProject("B", "", now)

	a.Columns[0].Title = "Backlog"

	assert.Equal(t, "To Do", b.Columns[0].Title)
	assert.Equal(t, "To Do", DefaultColumns[0].Title)
	assert.NotEqual(t, a.Columns[0].ID, b.Columns[0].ID)
}

func TestProject_Lookups(t *testing.T) {
	p := NewProject("A", "", time.Now())
	todo := p.Columns[0].ID
	p.Tasks = []Task{
		{ID: "task-1", ColumnID: todo},
		{ID: "task-2", ColumnID: todo},
		{ID: "task-3", ColumnID: p.Columns[1].ID},
	}

	assert.Equal(t, "To Do", p.FindColumn(todo).Title)
	assert.Nil(t, p.FindColumn("col-missing"))
	assert.Equal(t, "task-3", p.FindTask("task-3").ID)
	assert.Nil(t, p.FindTask("task-missing"))
	assert.True(t, p.HasColumn(todo))
	assert.False(t, p.HasColumn("col-missing"))
	assert.Equal(t, 2, p.CountTasksInColumn(todo))
	assert.Equal(t, 0, p.CountTasksInColumn(p.Columns[3].ID))
}

func TestPriority_Valid(t *testing.T) {
	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{PriorityUrgent, true},
		{"", false},
		{"HIGH", false},
		{"critical", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.priority.Valid())
		})
	}
}

func TestNormalizeLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{name: "nil", labels: nil, want: []string{}},
		{name: "lowercase and trim", labels: []string{" Infra ", "OPS"}, want: []string{"infra", "ops"}},
		{name: "drops empties", labels: []string{"", "  ", "api"}, want: []string{"api"}},
		{name: "first occurrence wins", labels: []string{"ops", "infra", "Ops"}, want: []string{"ops", "infra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabels(tt.labels))
		})
	}
}

func TestTaskPatch_Apply(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	due := "2024-04-01"

	newTask := func() Task {
		return Task{
			ID:        "task-1",
			Title:     "Audit",
			Priority:  PriorityLow,
			Labels:    []string{"infra"},
			DueDate:   &due,
			ColumnID:  "col-1",
			CreatedAt: created,
			UpdatedAt: created,
		}
	}

	t.Run("empty patch only bumps updatedAt", func(t *testing.T) {
		task := newTask()
		TaskPatch{}.Apply(&task, now)

		want := newTask()
		want.UpdatedAt = now
		assert.Equal(t, want, task)
	})

	t.Run("sets fields", func(t *testing.T) {
		task := newTask()
		title := "Audit servers"
		priority := PriorityUrgent
		labels := []string{"Ops", "ops"}
		later := "2024-04-15"
		column := "col-2"
		order := 4

		TaskPatch{
			Title:     &title,
			Priority:  &priority,
			Labels:    &labels,
			DueDate:   &later,
			ColumnID:  &column,
			SortOrder: &order,
		}.Apply(&task, now)

		assert.Equal(t, "Audit servers", task.Title)
		assert.Equal(t, PriorityUrgent, task.Priority)
		assert.Equal(t, []string{"ops"}, task.Labels)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2024-04-15", *task.DueDate)
		assert.Equal(t, "col-2", task.ColumnID)
		assert.Equal(t, 4, task.SortOrder)
		assert.Equal(t, "task-1", task.ID)
		assert.Equal(t, created, task.CreatedAt)
	})

	t.Run("clear due date wins", func(t *testing.T) {
		task := newTask()
		later := "2024-04-15"
		TaskPatch{DueDate: &later, ClearDueDate: true}.Apply(&task, now)
		assert.Nil(t, task.DueDate)
	})

	t.Run("due date is copied", func(t *testing.T) {
		task := newTask()
		later := "2024-04-15"
		TaskPatch{DueDate: &later}.Apply(&task, now)
		later = "changed"
		assert.Equal(t, "2024-04-15", *task.DueDate)
	})
}

func TestCoursePatch_Apply(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Minute)
	course := CustomCourse{ID: "custom-1", Title: "Go", Content: "basics", Tags: []string{"lang"}, CreatedAt: created}

	tags := []string{"lang", "backend"}
	content := "advanced"
	CoursePatch{Content: &content, Tags: &tags}.Apply(&course, now)
	tags[0] = "mutated"

	assert.Equal(t, "Go", course.Title)
	assert.Equal(t, "advanced", course.Content)
	assert.Equal(t, []string{"lang", "backend"}, course.Tags)
	assert.Equal(t, created, course.CreatedAt)
	assert.Equal(t, now, course.UpdatedAt)
}

func TestNewID(t *testing.T) {
	a := NewID(PrefixTask)
	b := NewID(PrefixTask)

	assert.True(t, strings.HasPrefix(a, "task-"))
	assert.NotEqual(t, a, b)
}
