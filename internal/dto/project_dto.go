package dto

// CreateProjectRequest represents the request to create a new project
// @Description Request body for creating a project. The project is seeded with the default columns.
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required" example:"Migration"`
	Description string `json:"description" example:"Move the servers to the new data center"`
}

// UpdateProjectRequest represents the request to update a project
// @Description Request body for updating a project. All fields are optional; only title and description can change.
type UpdateProjectRequest struct {
	Title       *string `json:"title" example:"Migration phase 2"`
	Description *string `json:"description" example:"Updated description"`
}

// BoardSummaryResponse is a plain-text rendering of a board plus counts
// @Description Board summary. Columns and tasks appear in display order.
type BoardSummaryResponse struct {
	ProjectID  string          `json:"projectId" example:"proj-539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	Title      string          `json:"title" example:"Migration"`
	Columns    []ColumnSummary `json:"columns"`
	TotalTasks int             `json:"totalTasks" example:"5"`
	Text       string          `json:"text" example:"To Do (1 tasks):\n  - [HIGH] Audit servers (due: 2024-04-01) [infra]"`
}

// ColumnSummary counts the tasks of one column
type ColumnSummary struct {
	ColumnID  string `json:"columnId" example:"col-a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Title     string `json:"title" example:"To Do"`
	TaskCount int    `json:"taskCount" example:"2"`
}
