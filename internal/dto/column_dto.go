package dto

// CreateColumnRequest represents the request to add a column
type CreateColumnRequest struct {
	Title string `json:"title" binding:"required" example:"Blocked"`
}

// DeleteColumnRequest represents the request to delete an empty column
type DeleteColumnRequest struct {
	ColumnID string `json:"columnId" binding:"required" example:"col-a1b2c3d4-e5f6-7890-abcd-ef1234567890"`
}

// ReorderColumnsRequest carries the column ids in their new display order
// @Description Columns omitted from columnIds keep their current sortOrder.
type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"columnIds" binding:"required"`
}
