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

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// Create inserts a new subject. Subject names are unique case-insensitively.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	exists, err := r.ExistsByName(ctx, subject.Name, 0)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrSubjectAlreadyExists
	}

	query := `
		INSERT INTO subjects (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query, subject.Name).Scan(&subject.ID, &subject.CreatedAt)
	if err != nil {
		// Backstop for races between the existence check and the insert
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_lower_idx") {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, created_at
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// GetAll retrieves all subjects ordered by name
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT id, name, created_at
		FROM subjects
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.CreatedAt,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// ExistsByName checks whether a subject with the given name exists,
// case-insensitively, excluding the given id (pass 0 to exclude nothing).
func (r *SubjectRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subjects WHERE LOWER(name) = LOWER($1) AND id != $2)`,
		name, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking subject existence: %w", err)
	}

	return exists, nil
}

// Rename updates a subject's name. Renaming a subject to its own current name
// is allowed.
func (r *SubjectRepository) Rename(ctx context.Context, id int64, name string) error {
	exists, err := r.ExistsByName(ctx, name, id)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrSubjectAlreadyExists
	}

	cmdTag, err := r.db.Exec(ctx, `UPDATE subjects SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_lower_idx") {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error renaming subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// HasDependents reports whether any chapter or note still references the subject
func (r *SubjectRepository) HasDependents(ctx context.Context, id int64) (bool, error) {
	var hasDependents bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM chapters WHERE subject_id = $1)
		    OR EXISTS(SELECT 1 FROM notes WHERE subject_id = $1)`,
		id).Scan(&hasDependents)

	if err != nil {
		return false, fmt.Errorf("error checking subject dependents: %w", err)
	}

	return hasDependents, nil
}

// Delete deletes a subject by ID. Subjects with chapters or notes are rejected,
// never cascaded.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	hasDependents, err := r.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDependents {
		return apperrors.ErrSubjectHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectHasRelations
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
