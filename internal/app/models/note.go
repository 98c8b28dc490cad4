package models

import "time"

// Note is a published or draft piece of content. A note always belongs to a
// subject and may optionally sit inside one of that subject's chapters.
type Note struct {
	ID           int64     `db:"id" json:"id"`
	SubjectID    int64     `db:"subject_id" json:"subjectId"`
	ChapterID    *int64    `db:"chapter_id" json:"chapterId,omitempty"`
	TopicTitle   string    `db:"topic_title" json:"topicTitle"`
	Content      string    `db:"content" json:"content"`
	IsPublished  bool      `db:"is_published" json:"isPublished"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	Images []*NoteImage `json:"images,omitempty"`
	PDFs   []*NotePDF   `json:"pdfs,omitempty"`
}
