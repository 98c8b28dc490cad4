package dto

import (
	"time"

	"github.com/emre/notesphere/internal/app/models"
)

// NoteAttachmentResponse represents an image or PDF attachment
type NoteAttachmentResponse struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID           int64                    `json:"id"`
	SubjectID    int64                    `json:"subjectId"`
	SubjectName  string                   `json:"subjectName"`
	ChapterID    *int64                   `json:"chapterId,omitempty"`
	ChapterName  string                   `json:"chapterName,omitempty"`
	TopicTitle   string                   `json:"topicTitle"`
	Content      string                   `json:"content"`
	IsPublished  bool                     `json:"isPublished"`
	DisplayOrder int                      `json:"displayOrder"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
	Images       []NoteAttachmentResponse `json:"images"`
	PDFs         []NoteAttachmentResponse `json:"pdfs"`
}

// NoteListResponse represents a paginated list of notes
type NoteListResponse struct {
	Notes      []NoteResponse `json:"notes"`
	Pagination PaginationInfo `json:"pagination"`
}

// NoteFilterRequest holds note listing filters
type NoteFilterRequest struct {
	SubjectID *int64 `form:"subjectId" binding:"omitempty,gt=0"`
	ChapterID *int64 `form:"chapterId" binding:"omitempty,gt=0"`
	Page      int    `form:"page,default=1" binding:"omitempty,gt=0"`
	Size      int    `form:"size,default=20" binding:"omitempty,gt=0,lte=100"`
}

// CreateNoteRequest represents note creation data
type CreateNoteRequest struct {
	SubjectID    int64    `json:"subjectId" binding:"required,gt=0"`
	ChapterID    *int64   `json:"chapterId" binding:"omitempty,gt=0"`
	TopicTitle   string   `json:"topicTitle" binding:"required,min=3,max=200"`
	Content      string   `json:"content"`
	IsPublished  bool     `json:"isPublished"`
	DisplayOrder int      `json:"displayOrder" binding:"omitempty,gte=0"`
	NewImageURLs []string `json:"newImageUrls" binding:"omitempty,dive,url"`
	NewPDFURLs   []string `json:"newPdfUrls" binding:"omitempty,dive,url"`
}

// UpdateNoteRequest represents note update data. Attachment changes are a diff:
// ids to remove plus URLs to add.
type UpdateNoteRequest struct {
	SubjectID      int64    `json:"subjectId" binding:"required,gt=0"`
	ChapterID      *int64   `json:"chapterId" binding:"omitempty,gt=0"`
	TopicTitle     string   `json:"topicTitle" binding:"required,min=3,max=200"`
	Content        string   `json:"content"`
	IsPublished    bool     `json:"isPublished"`
	DisplayOrder   int      `json:"displayOrder" binding:"omitempty,gte=0"`
	ImagesToDelete []int64  `json:"imagesToDelete" binding:"omitempty,dive,gt=0"`
	PDFsToDelete   []int64  `json:"pdfsToDelete" binding:"omitempty,dive,gt=0"`
	NewImageURLs   []string `json:"newImageUrls" binding:"omitempty,dive,url"`
	NewPDFURLs     []string `json:"newPdfUrls" binding:"omitempty,dive,url"`
}

// PublishStatusRequest toggles a note's publish flag
type PublishStatusRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

// BulkDeleteNotesRequest represents a bulk note deletion
type BulkDeleteNotesRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,dive,gt=0"`
}

// UploadResponse returns the public URL of an uploaded file
type UploadResponse struct {
	URL string `json:"url"`
}

// AttachmentsToResponses converts attachment models to response DTOs
func AttachmentsToResponses(images []*models.NoteImage, pdfs []*models.NotePDF) (imgs, docs []NoteAttachmentResponse) {
	imgs = make([]NoteAttachmentResponse, 0, len(images))
	for _, img := range images {
		imgs = append(imgs, NoteAttachmentResponse{ID: img.ID, URL: img.ImageURL, CreatedAt: img.CreatedAt})
	}
	docs = make([]NoteAttachmentResponse, 0, len(pdfs))
	for _, pdf := range pdfs {
		docs = append(docs, NoteAttachmentResponse{ID: pdf.ID, URL: pdf.PDFURL, CreatedAt: pdf.CreatedAt})
	}
	return imgs, docs
}
