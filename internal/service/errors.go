package service

import (
	"errors"
	"strings"
	"time"

	"kanban-board-api/internal/response"
	"kanban-board-api/internal/storage"
)

// storageError converts a repository failure into an AppError
func storageError(err error, message string) error {
	if errors.Is(err, storage.ErrCorrupt) {
		return response.NewAppError(response.ErrCodeStorageCorruption, "Storage is corrupted", err.Error())
	}
	return response.NewAppError(response.ErrCodeInternal, message, err.Error())
}

func notFound(details string) error {
	return response.NewNotFoundError(details)
}

// requireText trims s and rejects blank values
func requireText(field, s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", response.NewValidationError(field+" is required", "")
	}
	return trimmed, nil
}

// validateDueDate accepts a calendar date or an RFC3339 timestamp
func validateDueDate(due string) error {
	if _, err := time.Parse(time.DateOnly, due); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, due); err == nil {
		return nil
	}
	return response.NewValidationError("Invalid dueDate", "expected YYYY-MM-DD or RFC3339")
}
