package dto

import "time"

// SubjectResponse represents a subject in API responses
type SubjectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubjectDetailResponse includes the subject's chapters
type SubjectDetailResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	Chapters  []ChapterResponse `json:"chapters"`
}

// CreateSubjectRequest represents subject creation data
type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// RenameSubjectRequest represents subject rename data
type RenameSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
