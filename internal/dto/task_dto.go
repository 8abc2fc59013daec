package dto

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent field from an explicit null.
// Set is true whenever the key was present in the request body.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// CreateTaskRequest represents the request to add a task to a column
// @Description Request body for creating a task. The task is appended to the end of the column.
// @Description dueDate accepts YYYY-MM-DD or RFC3339; labels are lowercased and deduplicated.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required" example:"Audit servers"`
	ColumnID    string   `json:"columnId" binding:"required" example:"col-a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	Description string   `json:"description" example:"List every host and its owner"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high urgent" example:"high"`
	Labels      []string `json:"labels" example:"infra"`
	DueDate     *string  `json:"dueDate" example:"2024-04-01"`
}

// UpdateTaskRequest represents a partial task update
// @Description All fields are optional. Send dueDate as null to clear it.
type UpdateTaskRequest struct {
	Title       *string        `json:"title" example:"Audit all servers"`
	Description *string        `json:"description" example:"Include staging"`
	Priority    *string        `json:"priority" example:"urgent"`
	Labels      *[]string      `json:"labels"`
	DueDate     OptionalString `json:"dueDate" swaggertype:"string" example:"2024-04-15"`
	ColumnID    *string        `json:"columnId" example:"col-a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	SortOrder   *int           `json:"sortOrder" example:"0"`
}

// MoveTaskRequest represents a drag-and-drop move
// @Description newIndex is clamped to the destination column's bounds.
type MoveTaskRequest struct {
	TaskID              string `json:"taskId" binding:"required" example:"task-f47ac10b-58cc-4372-a567-0e02b2c3d479"`
	DestinationColumnID string `json:"destinationColumnId" binding:"required" example:"col-a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
	NewIndex            *int   `json:"newIndex" binding:"required" example:"0"`
}
