package models

import "time"

// Subject is a top-level content category. Subject names are unique across the
// site, case-insensitively.
type Subject struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	Chapters []*Chapter `json:"chapters,omitempty"`
}
