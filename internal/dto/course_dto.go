package dto

// CreateCourseRequest represents the request to author a course
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required" example:"Kubernetes basics"`
	Content     string   `json:"content" binding:"required" example:"# Pods\nA pod is..."`
	Description string   `json:"description" example:"Intro course"`
	Tags        []string `json:"tags" example:"k8s"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Title       *string   `json:"title" example:"Kubernetes basics v2"`
	Content     *string   `json:"content"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}
