package dto

import "time"

// ChapterResponse represents a chapter in API responses
type ChapterResponse struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subjectId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateChapterRequest represents chapter creation data
type CreateChapterRequest struct {
	SubjectID int64  `json:"subjectId" binding:"required,gt=0"`
	Name      string `json:"name" binding:"required,min=2,max=100"`
}

// RenameChapterRequest represents chapter rename data
type RenameChapterRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}
