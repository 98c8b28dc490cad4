package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/revalidate"
)

// SubjectStore is the persistence surface the subject service needs
type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetAll(ctx context.Context) ([]*models.Subject, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// ChapterStore is the persistence surface for chapters
type ChapterStore interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
	GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Chapter, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// SubjectService handles subject-related operations
type SubjectService struct {
	subjectStore SubjectStore
	chapterStore ChapterStore
	invalidator  revalidate.Invalidator
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectStore SubjectStore, chapterStore ChapterStore, invalidator revalidate.Invalidator) *SubjectService {
	return &SubjectService{
		subjectStore: subjectStore,
		chapterStore: chapterStore,
		invalidator:  invalidator,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewCustomError(apperrors.ErrValidationFailed, "name cannot be empty")
	}
	return name, nil
}

// CreateSubject creates a new subject
func (s *SubjectService) CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{Name: name}
	if err := s.subjectStore.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate("/subjects")
	return subject, nil
}

// GetSubjects retrieves all subjects
func (s *SubjectService) GetSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectStore.GetAll(ctx)
}

// GetSubjectDetail retrieves a subject with its chapters
func (s *SubjectService) GetSubjectDetail(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chapters, err := s.chapterStore.GetBySubjectID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chapters for subject: %w", err)
	}
	subject.Chapters = chapters

	return subject, nil
}

// RenameSubject changes a subject's name
func (s *SubjectService) RenameSubject(ctx context.Context, id int64, name string) (*models.Subject, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	if err := s.subjectStore.Rename(ctx, id, name); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate("/subjects")
	s.invalidator.Invalidate(fmt.Sprintf("/subjects/%d", id))

	return s.subjectStore.GetByID(ctx, id)
}

// DeleteSubject deletes a subject. Subjects that still have chapters or notes
// are rejected with apperrors.ErrSubjectHasRelations.
func (s *SubjectService) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.subjectStore.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidator.Invalidate("/subjects")
	return nil
}
