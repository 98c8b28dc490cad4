package repositories

import (
	"github.com/emre/notesphere/internal/db"
)

// Repositories bundles all repository instances for dependency injection
type Repositories struct {
	SubjectRepository    *SubjectRepository
	ChapterRepository    *ChapterRepository
	NoteRepository       *NoteRepository
	AttachmentRepository *AttachmentRepository
}

// NewRepositories creates all repositories backed by the given database
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		SubjectRepository:    NewSubjectRepository(database.Pool),
		ChapterRepository:    NewChapterRepository(database.Pool),
		NoteRepository:       NewNoteRepository(database),
		AttachmentRepository: NewAttachmentRepository(database.Pool),
	}
}
