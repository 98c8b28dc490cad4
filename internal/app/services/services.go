package services

import (
	"github.com/emre/notesphere/internal/app/repositories"
	"github.com/emre/notesphere/internal/config"
	"github.com/emre/notesphere/internal/pkg/auth"
	"github.com/emre/notesphere/internal/pkg/filestorage"
	"github.com/emre/notesphere/internal/pkg/revalidate"
)

// Services bundles all service instances for dependency injection
type Services struct {
	SubjectService   *SubjectService
	ChapterService   *ChapterService
	NoteService      *NoteService
	AdminAuthService *AdminAuthService
}

// NewServices creates all services wired to the given repositories
func NewServices(
	repos *repositories.Repositories,
	storage filestorage.FileStorage,
	invalidator revalidate.Invalidator,
	tokenService *auth.TokenService,
	cfg *config.Config,
) *Services {
	return &Services{
		SubjectService: NewSubjectService(repos.SubjectRepository, repos.ChapterRepository, invalidator),
		ChapterService: NewChapterService(repos.ChapterRepository, repos.SubjectRepository, invalidator),
		NoteService: NewNoteService(
			repos.NoteRepository,
			repos.AttachmentRepository,
			repos.SubjectRepository,
			repos.ChapterRepository,
			storage,
			invalidator,
		),
		AdminAuthService: NewAdminAuthService(cfg.Admin.PasscodeHash, tokenService),
	}
}
