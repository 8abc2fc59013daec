package service

import (
	"fmt"
	"strings"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/ordering"
)

// SummarizeBoard lists every column in display order with its tasks, e.g.
//
//	To Do (1 tasks):
//	  - [HIGH] Audit servers (due: 2024-04-01) [infra, ops]
func SummarizeBoard(p *domain.Project) dto.BoardSummaryResponse {
	summary := dto.BoardSummaryResponse{
		ProjectID:  p.ID,
		Title:      p.Title,
		Columns:    []dto.ColumnSummary{},
		TotalTasks: len(p.Tasks),
	}

	blocks := make([]string, 0, len(p.Columns))
	for _, col := range ordering.SortedColumns(p.Columns) {
		tasks := ordering.ColumnTasks(p.Tasks, col.ID)
		summary.Columns = append(summary.Columns, dto.ColumnSummary{
			ColumnID:  col.ID,
			Title:     col.Title,
			TaskCount: len(tasks),
		})

		lines := make([]string, 0, len(tasks))
		for _, t := range tasks {
			lines = append(lines, taskLine(t))
		}
		body := "  (empty)"
		if len(lines) > 0 {
			body = strings.Join(lines, "\n")
		}
		blocks = append(blocks, fmt.Sprintf("%s (%d tasks):\n%s", col.Title, len(tasks), body))
	}

	summary.Text = strings.Join(blocks, "\n\n")
	return summary
}

func taskLine(t *domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  - [%s] %s", strings.ToUpper(string(t.Priority)), t.Title)
	if t.DueDate != nil && *t.DueDate != "" {
		fmt.Fprintf(&b, " (due: %s)", *t.DueDate)
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(t.Labels, ", "))
	}
	return b.String()
}
