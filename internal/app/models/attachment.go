package models

import "time"

// NoteImage is an image attached to a note, stored by public URL.
type NoteImage struct {
	ID        int64     `db:"id" json:"id"`
	NoteID    int64     `db:"note_id" json:"noteId"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NotePDF is a PDF attached to a note, stored by public URL. The application
// keeps at most one active PDF source per note: uploading a new one retires
// the previous rows.
type NotePDF struct {
	ID        int64     `db:"id" json:"id"`
	NoteID    int64     `db:"note_id" json:"noteId"`
	PDFURL    string    `db:"pdf_url" json:"pdfUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
