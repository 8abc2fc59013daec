package domain

import (
	"github.com/google/uuid"
)

// ID prefixes per entity type
const (
	PrefixProject = "proj"
	PrefixColumn  = "col"
	PrefixTask    = "task"
	PrefixCourse  = "custom"
)

// NewID returns a unique identifier such as "task-3f0c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
