package domain

import "time"

// CustomCourse represents a user-authored course
type CustomCourse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CoursePatch is a partial course update
type CoursePatch struct {
	Title       *string
	Description *string
	Content     *string
	Tags        *[]string
}

// Apply copies the set fields of the patch onto the course
func (patch CoursePatch) Apply(c *CustomCourse, now time.Time) {
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Content != nil {
		c.Content = *patch.Content
	}
	if patch.Tags != nil {
		c.Tags = append([]string{}, (*patch.Tags)...)
	}
	c.UpdatedAt = now
}
