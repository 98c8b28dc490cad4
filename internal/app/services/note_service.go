package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/repositories"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/filestorage"
	"github.com/emre/notesphere/internal/pkg/logger"
	"github.com/emre/notesphere/internal/pkg/revalidate"
)

// NoteStore is the persistence surface the note service needs
type NoteStore interface {
	GetByID(ctx context.Context, id int64) (*repositories.NoteDetails, error)
	GetAll(ctx context.Context, params repositories.GetAllNotesParams) ([]*repositories.NoteDetails, dto.PaginationInfo, error)
	CreateWithAttachments(ctx context.Context, note *models.Note, imageURLs, pdfURLs []string) (int64, error)
	UpdateWithAttachments(ctx context.Context, note *models.Note, imagesToDelete, pdfsToDelete []int64, newImageURLs, newPDFURLs []string) error
	SetPublished(ctx context.Context, id int64, published bool) error
	DeleteMany(ctx context.Context, ids []int64) (repositories.NoteDeleteResult, error)
}

// AttachmentStore is the read surface for note attachments
type AttachmentStore interface {
	ListImagesByNoteID(ctx context.Context, noteID int64) ([]*models.NoteImage, error)
	ListPDFsByNoteID(ctx context.Context, noteID int64) ([]*models.NotePDF, error)
	ListByNoteIDs(ctx context.Context, noteIDs []int64) (map[int64][]*models.NoteImage, map[int64][]*models.NotePDF, error)
}

// NoteService handles note-related operations
type NoteService struct {
	noteStore       NoteStore
	attachmentStore AttachmentStore
	subjectStore    SubjectStore
	chapterStore    ChapterStore
	storage         filestorage.FileStorage
	invalidator     revalidate.Invalidator
}

// NewNoteService creates a new note service instance
func NewNoteService(
	noteStore NoteStore,
	attachmentStore AttachmentStore,
	subjectStore SubjectStore,
	chapterStore ChapterStore,
	storage filestorage.FileStorage,
	invalidator revalidate.Invalidator,
) *NoteService {
	return &NoteService{
		noteStore:       noteStore,
		attachmentStore: attachmentStore,
		subjectStore:    subjectStore,
		chapterStore:    chapterStore,
		storage:         storage,
		invalidator:     invalidator,
	}
}

const minTopicTitleLength = 3

// validateTopicTitle trims the title and enforces the minimum length on the
// trimmed value, counted in runes. The binding tag measures the raw string,
// so padded titles have to be caught here.
func validateTopicTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if len([]rune(title)) < minTopicTitleLength {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("topic title must be at least %d characters", minTopicTitleLength))
	}
	return title, nil
}

// validateNotePlacement checks that the target subject exists and, when a
// chapter is given, that it belongs to that subject.
func (s *NoteService) validateNotePlacement(ctx context.Context, subjectID int64, chapterID *int64) error {
	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return err
	}

	if chapterID != nil {
		chapter, err := s.chapterStore.GetByID(ctx, *chapterID)
		if err != nil {
			return err
		}
		if chapter.SubjectID != subjectID {
			return apperrors.ErrChapterSubjectMismatch
		}
	}

	return nil
}

// ListNotes retrieves a filtered, paginated list of notes with attachments.
// Public callers only see published notes.
func (s *NoteService) ListNotes(ctx context.Context, filter dto.NoteFilterRequest, includeUnpublished bool) (*dto.NoteListResponse, error) {
	params := repositories.GetAllNotesParams{
		SubjectID:     filter.SubjectID,
		ChapterID:     filter.ChapterID,
		PublishedOnly: !includeUnpublished,
		Page:          filter.Page,
		Size:          filter.Size,
	}

	notes, pagination, err := s.noteStore.GetAll(ctx, params)
	if err != nil {
		return nil, err
	}

	noteIDs := make([]int64, 0, len(notes))
	for _, n := range notes {
		noteIDs = append(noteIDs, n.ID)
	}

	imagesByNote, pdfsByNote, err := s.attachmentStore.ListByNoteIDs(ctx, noteIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, toNoteResponse(n, imagesByNote[n.ID], pdfsByNote[n.ID]))
	}

	return &dto.NoteListResponse{Notes: responses, Pagination: pagination}, nil
}

// GetNote retrieves a single note with attachments. Unpublished notes are
// hidden from public callers as if they did not exist.
func (s *NoteService) GetNote(ctx context.Context, id int64, includeUnpublished bool) (*dto.NoteResponse, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !note.IsPublished && !includeUnpublished {
		return nil, apperrors.ErrNoteNotFound
	}

	images, err := s.attachmentStore.ListImagesByNoteID(ctx, id)
	if err != nil {
		return nil, err
	}
	pdfs, err := s.attachmentStore.ListPDFsByNoteID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toNoteResponse(note, images, pdfs)
	return &resp, nil
}

// CreateNote creates a note with its initial attachments
func (s *NoteService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title, err := validateTopicTitle(req.TopicTitle)
	if err != nil {
		return nil, err
	}

	if err := s.validateNotePlacement(ctx, req.SubjectID, req.ChapterID); err != nil {
		return nil, err
	}

	note := &models.Note{
		SubjectID:    req.SubjectID,
		ChapterID:    req.ChapterID,
		TopicTitle:   title,
		Content:      req.Content,
		IsPublished:  req.IsPublished,
		DisplayOrder: req.DisplayOrder,
	}

	id, err := s.noteStore.CreateWithAttachments(ctx, note, req.NewImageURLs, req.NewPDFURLs)
	if err != nil {
		return nil, err
	}

	s.invalidateNotePaths(req.SubjectID)
	return s.GetNote(ctx, id, true)
}

// UpdateNote applies a full note update plus an attachment diff. Uploading any
// new PDF replaces the note's entire PDF set; the files backing removed
// attachment rows are deleted from storage best-effort after commit.
func (s *NoteService) UpdateNote(ctx context.Context, id int64, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	title, err := validateTopicTitle(req.TopicTitle)
	if err != nil {
		return nil, err
	}

	existing, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateNotePlacement(ctx, req.SubjectID, req.ChapterID); err != nil {
		return nil, err
	}

	removedURLs, err := s.collectRemovedAttachmentURLs(ctx, id, req)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		ID:           id,
		SubjectID:    req.SubjectID,
		ChapterID:    req.ChapterID,
		TopicTitle:   title,
		Content:      req.Content,
		IsPublished:  req.IsPublished,
		DisplayOrder: req.DisplayOrder,
	}

	err = s.noteStore.UpdateWithAttachments(ctx, note, req.ImagesToDelete, req.PDFsToDelete, req.NewImageURLs, req.NewPDFURLs)
	if err != nil {
		return nil, err
	}

	s.cleanupFiles(removedURLs)

	s.invalidateNotePaths(req.SubjectID)
	if existing.SubjectID != req.SubjectID {
		s.invalidateNotePaths(existing.SubjectID)
	}

	return s.GetNote(ctx, id, true)
}

// collectRemovedAttachmentURLs resolves which stored files the update will
// orphan, before the rows are gone.
func (s *NoteService) collectRemovedAttachmentURLs(ctx context.Context, id int64, req dto.UpdateNoteRequest) ([]string, error) {
	var removed []string

	if len(req.ImagesToDelete) > 0 {
		images, err := s.attachmentStore.ListImagesByNoteID(ctx, id)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]string, len(images))
		for _, img := range images {
			byID[img.ID] = img.ImageURL
		}
		for _, imgID := range req.ImagesToDelete {
			url, ok := byID[imgID]
			if !ok {
				return nil, apperrors.ErrAttachmentNotFound
			}
			removed = append(removed, url)
		}
	}

	if len(req.PDFsToDelete) > 0 || len(req.NewPDFURLs) > 0 {
		pdfs, err := s.attachmentStore.ListPDFsByNoteID(ctx, id)
		if err != nil {
			return nil, err
		}
		toDelete := make(map[int64]bool, len(req.PDFsToDelete))
		for _, pdfID := range req.PDFsToDelete {
			toDelete[pdfID] = true
		}
		for _, pdf := range pdfs {
			// New PDFs replace the whole set, so surviving PDFs are orphaned too
			if toDelete[pdf.ID] || len(req.NewPDFURLs) > 0 {
				removed = append(removed, pdf.PDFURL)
				delete(toDelete, pdf.ID)
			}
		}
		if len(toDelete) > 0 {
			return nil, apperrors.ErrAttachmentNotFound
		}
	}

	return removed, nil
}

// SetPublishStatus toggles a note's publish flag
func (s *NoteService) SetPublishStatus(ctx context.Context, id int64, published bool) (*dto.NoteResponse, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.noteStore.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}

	s.invalidateNotePaths(note.SubjectID)
	return s.GetNote(ctx, id, true)
}

// DeleteNote deletes a single note and its attachments
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	result, err := s.noteStore.DeleteMany(ctx, []int64{id})
	if err != nil {
		return err
	}
	if result.Deleted == 0 {
		return apperrors.ErrNoteNotFound
	}

	s.cleanupFiles(result.FileURLs)
	s.invalidateNotePaths(result.SubjectIDs...)
	return nil
}

// DeleteNotes deletes a batch of notes, returning how many existed and were
// deleted. IDs that match nothing are skipped.
func (s *NoteService) DeleteNotes(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed, "no note ids given")
	}

	result, err := s.noteStore.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	s.cleanupFiles(result.FileURLs)
	s.invalidateNotePaths(result.SubjectIDs...)
	return result.Deleted, nil
}

// cleanupFiles removes stored files best-effort. The database rows are already
// gone, so failures here only leak disk space and are logged, not returned.
func (s *NoteService) cleanupFiles(urls []string) {
	for _, url := range urls {
		if err := s.storage.DeleteFile(url); err != nil {
			logger.Warn().Err(err).Str("url", url).Msg("Failed to delete attachment file")
		}
	}
}

// invalidateNotePaths refreshes the note listing plus the detail page of each
// affected subject.
func (s *NoteService) invalidateNotePaths(subjectIDs ...int64) {
	s.invalidator.Invalidate("/notes")
	for _, subjectID := range subjectIDs {
		s.invalidator.Invalidate(fmt.Sprintf("/subjects/%d", subjectID))
	}
}

func toNoteResponse(n *repositories.NoteDetails, images []*models.NoteImage, pdfs []*models.NotePDF) dto.NoteResponse {
	imgs, docs := dto.AttachmentsToResponses(images, pdfs)
	return dto.NoteResponse{
		ID:           n.ID,
		SubjectID:    n.SubjectID,
		SubjectName:  n.SubjectName,
		ChapterID:    n.ChapterID,
		ChapterName:  n.ChapterName,
		TopicTitle:   n.TopicTitle,
		Content:      n.Content,
		IsPublished:  n.IsPublished,
		DisplayOrder: n.DisplayOrder,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
		Images:       imgs,
		PDFs:         docs,
	}
}
