package models

import "time"

// Chapter groups notes within a subject. Chapter names are unique within their
// subject, case-insensitively.
type Chapter struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subjectId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	Subject *Subject `json:"subject,omitempty"`
}
