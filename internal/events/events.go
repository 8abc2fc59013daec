// Package events fans board change notifications out to websocket clients.
//
// Delivery is best effort. Publish never blocks; a client whose send buffer
// is full is disconnected and is expected to reload the board.
package events

import (
	"time"
)

// Event types
const (
	TypeProjectCreated   = "project.created"
	TypeProjectUpdated   = "project.updated"
	TypeProjectDeleted   = "project.deleted"
	TypeColumnCreated    = "column.created"
	TypeColumnDeleted    = "column.deleted"
	TypeColumnsReordered = "columns.reordered"
	TypeTaskCreated      = "task.created"
	TypeTaskUpdated      = "task.updated"
	TypeTaskDeleted      = "task.deleted"
	TypeTaskMoved        = "task.moved"
)

// Event describes one successful mutation of a project
type Event struct {
	Type      string    `json:"type"`
	ProjectID string    `json:"projectId"`
	EntityID  string    `json:"entityId,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher accepts events for delivery
type Publisher interface {
	Publish(event Event)
}

// NopPublisher drops every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(Event) {}

// Multi publishes every event to each of its publishers in order
type Multi []Publisher

// Publish implements Publisher
func (m Multi) Publish(event Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
