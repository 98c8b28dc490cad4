package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/dberrors"
)

// ChapterRepository handles database operations for chapters
type ChapterRepository struct {
	db *pgxpool.Pool
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{
		db: db,
	}
}

// Create inserts a new chapter. Chapter names are unique case-insensitively
// within their subject; the same name may recur across subjects.
func (r *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	exists, err := r.ExistsByNameInSubject(ctx, chapter.SubjectID, chapter.Name, 0)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrChapterAlreadyExists
	}

	query := `
		INSERT INTO chapters (subject_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query, chapter.SubjectID, chapter.Name).Scan(&chapter.ID, &chapter.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "chapters_subject_name_lower_idx") {
			return apperrors.ErrChapterAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectNotFound
		}
		return fmt.Errorf("error creating chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	query := `
		SELECT id, subject_id, name, created_at
		FROM chapters
		WHERE id = $1
	`

	var chapter models.Chapter
	err := r.db.QueryRow(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.SubjectID,
		&chapter.Name,
		&chapter.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error retrieving chapter: %w", err)
	}

	return &chapter, nil
}

// GetBySubjectID retrieves all chapters of a subject ordered by name
func (r *ChapterRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Chapter, error) {
	query := `
		SELECT id, subject_id, name, created_at
		FROM chapters
		WHERE subject_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chapters := make([]*models.Chapter, 0)
	for rows.Next() {
		var chapter models.Chapter
		if err := rows.Scan(
			&chapter.ID,
			&chapter.SubjectID,
			&chapter.Name,
			&chapter.CreatedAt,
		); err != nil {
			return nil, err
		}
		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chapters, nil
}

// ExistsByNameInSubject checks whether a chapter with the given name exists in
// the subject, case-insensitively, excluding the given id (pass 0 to exclude
// nothing).
func (r *ChapterRepository) ExistsByNameInSubject(ctx context.Context, subjectID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM chapters
			WHERE subject_id = $1 AND LOWER(name) = LOWER($2) AND id != $3)`,
		subjectID, name, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking chapter existence: %w", err)
	}

	return exists, nil
}

// Rename updates a chapter's name within its subject
func (r *ChapterRepository) Rename(ctx context.Context, id int64, name string) error {
	chapter, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	exists, err := r.ExistsByNameInSubject(ctx, chapter.SubjectID, name, id)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrChapterAlreadyExists
	}

	cmdTag, err := r.db.Exec(ctx, `UPDATE chapters SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "chapters_subject_name_lower_idx") {
			return apperrors.ErrChapterAlreadyExists
		}
		return fmt.Errorf("error renaming chapter: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}

// HasNotes reports whether any note still references the chapter
func (r *ChapterRepository) HasNotes(ctx context.Context, id int64) (bool, error) {
	var hasNotes bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notes WHERE chapter_id = $1)`,
		id).Scan(&hasNotes)

	if err != nil {
		return false, fmt.Errorf("error checking chapter notes: %w", err)
	}

	return hasNotes, nil
}

// Delete deletes a chapter by ID. Chapters with notes are rejected, never
// cascaded.
func (r *ChapterRepository) Delete(ctx context.Context, id int64) error {
	hasNotes, err := r.HasNotes(ctx, id)
	if err != nil {
		return err
	}
	if hasNotes {
		return apperrors.ErrChapterHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrChapterHasRelations
		}
		return fmt.Errorf("error deleting chapter: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChapterNotFound
	}

	return nil
}
