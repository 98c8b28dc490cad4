package services

import (
	"context"
	"fmt"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/pkg/revalidate"
)

// ChapterService handles chapter-related operations
type ChapterService struct {
	chapterStore ChapterStore
	subjectStore SubjectStore
	invalidator  revalidate.Invalidator
}

// NewChapterService creates a new chapter service instance
func NewChapterService(chapterStore ChapterStore, subjectStore SubjectStore, invalidator revalidate.Invalidator) *ChapterService {
	return &ChapterService{
		chapterStore: chapterStore,
		subjectStore: subjectStore,
		invalidator:  invalidator,
	}
}

// CreateChapter creates a new chapter under an existing subject
func (s *ChapterService) CreateChapter(ctx context.Context, subjectID int64, name string) (*models.Chapter, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	// The subject must exist before we hang a chapter off it
	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	chapter := &models.Chapter{SubjectID: subjectID, Name: name}
	if err := s.chapterStore.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(fmt.Sprintf("/subjects/%d", subjectID))
	return chapter, nil
}

// GetChaptersBySubject retrieves all chapters of a subject
func (s *ChapterService) GetChaptersBySubject(ctx context.Context, subjectID int64) ([]*models.Chapter, error) {
	if _, err := s.subjectStore.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.chapterStore.GetBySubjectID(ctx, subjectID)
}

// RenameChapter changes a chapter's name within its subject
func (s *ChapterService) RenameChapter(ctx context.Context, id int64, name string) (*models.Chapter, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	if err := s.chapterStore.Rename(ctx, id, name); err != nil {
		return nil, err
	}

	chapter, err := s.chapterStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(fmt.Sprintf("/subjects/%d", chapter.SubjectID))
	return chapter, nil
}

// DeleteChapter deletes a chapter. Chapters that still have notes are rejected
// with apperrors.ErrChapterHasRelations.
func (s *ChapterService) DeleteChapter(ctx context.Context, id int64) error {
	chapter, err := s.chapterStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.chapterStore.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidator.Invalidate(fmt.Sprintf("/subjects/%d", chapter.SubjectID))
	return nil
}
