package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/db"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/helpers"
	"github.com/emre/notesphere/internal/pkg/logger"
)

// NoteDetails includes a note row joined with its subject and chapter names.
type NoteDetails struct {
	models.Note
	SubjectName string `db:"subject_name" json:"subjectName"`
	ChapterName string `db:"chapter_name" json:"chapterName"`
}

// GetAllNotesParams holds parameters for filtering and pagination.
type GetAllNotesParams struct {
	SubjectID     *int64
	ChapterID     *int64
	PublishedOnly bool
	Page          int
	Size          int
}

// NoteRepository handles database operations for notes and their attachments.
// Mutations that touch more than one table run inside a transaction.
type NoteRepository struct {
	db *db.PostgresDB
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(database *db.PostgresDB) *NoteRepository {
	return &NoteRepository{db: database}
}

// Common select query builder for notes with joined names
func (r *NoteRepository) selectNoteDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"n.id", "n.subject_id", "s.name as subject_name",
		"n.chapter_id", "COALESCE(c.name, '') as chapter_name",
		"n.topic_title", "COALESCE(n.content, '') as content",
		"n.is_published", "n.display_order",
		"n.created_at", "n.updated_at",
	).From("notes n").
		Join("subjects s ON n.subject_id = s.id").
		LeftJoin("chapters c ON n.chapter_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

// scanNoteDetails scans a row into a NoteDetails struct.
func scanNoteDetails(row pgx.Row) (*NoteDetails, error) {
	var note NoteDetails
	err := row.Scan(
		&note.ID, &note.SubjectID, &note.SubjectName,
		&note.ChapterID, &note.ChapterName,
		&note.TopicTitle, &note.Content,
		&note.IsPublished, &note.DisplayOrder,
		&note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note details")
		return nil, err
	}
	return &note, nil
}

// GetByID retrieves a single note by its ID with joined names.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*NoteDetails, error) {
	sqlStr, args, err := r.selectNoteDetailsQuery().Where(squirrel.Eq{"n.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}

	row := r.db.Pool.QueryRow(ctx, sqlStr, args...)
	return scanNoteDetails(row)
}

// GetAll retrieves a paginated and filtered list of notes. Ordering is by
// display_order ascending, then newest first.
func (r *NoteRepository) GetAll(ctx context.Context, params GetAllNotesParams) ([]*NoteDetails, dto.PaginationInfo, error) {
	sqlBuilder := r.selectNoteDetailsQuery()
	countBuilder := squirrel.Select("count(*)").From("notes n").
		PlaceholderFormat(squirrel.Dollar)

	if params.SubjectID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.subject_id": *params.SubjectID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.subject_id": *params.SubjectID})
	}
	if params.ChapterID != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.chapter_id": *params.ChapterID})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.chapter_id": *params.ChapterID})
	}
	if params.PublishedOnly {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"n.is_published": true})
		countBuilder = countBuilder.Where(squirrel.Eq{"n.is_published": true})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	var totalItems int64
	err = r.db.Pool.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing count notes query")
		return nil, dto.PaginationInfo{}, err
	}

	pagination := helpers.NewPaginationInfo(totalItems, params.Page, params.Size)

	if totalItems == 0 {
		return []*NoteDetails{}, pagination, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)

	sqlBuilder = sqlBuilder.
		OrderBy("n.display_order ASC", "n.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset)

	sqlStr, args, err := sqlBuilder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all notes SQL")
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all notes query")
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	notes := make([]*NoteDetails, 0)
	for rows.Next() {
		note, err := scanNoteDetails(rows)
		if err != nil {
			return nil, pagination, err
		}
		notes = append(notes, note)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating note rows")
		return nil, pagination, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, pagination, nil
}

// CreateWithAttachments inserts a note and its initial attachments atomically.
func (r *NoteRepository) CreateWithAttachments(ctx context.Context, note *models.Note, imageURLs, pdfURLs []string) (int64, error) {
	var noteID int64

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Insert("notes").
			Columns("subject_id", "chapter_id", "topic_title", "content", "is_published", "display_order").
			Values(note.SubjectID, note.ChapterID, note.TopicTitle,
				helpers.GetContentNullString(note.Content), note.IsPublished, note.DisplayOrder).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create note SQL")
			return err
		}

		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&noteID); err != nil {
			logger.Error().Err(err).Msg("Error executing create note query")
			return err
		}

		if err := insertAttachments(ctx, tx, "note_images", "image_url", noteID, imageURLs); err != nil {
			return err
		}
		return insertAttachments(ctx, tx, "note_pdfs", "pdf_url", noteID, pdfURLs)
	})

	if err != nil {
		return 0, err
	}
	return noteID, nil
}

// UpdateWithAttachments applies a note update and its attachment diff
// atomically. Adding any PDF replaces the note's whole PDF set: a note keeps
// at most the PDFs from its latest upload.
func (r *NoteRepository) UpdateWithAttachments(ctx context.Context, note *models.Note, imagesToDelete, pdfsToDelete []int64, newImageURLs, newPDFURLs []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM notes WHERE id = $1 FOR UPDATE`,
			note.ID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNoteNotFound
			}
			return fmt.Errorf("error locking note row: %w", err)
		}

		if len(imagesToDelete) > 0 {
			cmdTag, err := tx.Exec(ctx,
				`DELETE FROM note_images WHERE note_id = $1 AND id = ANY($2)`,
				note.ID, imagesToDelete)
			if err != nil {
				return fmt.Errorf("error deleting note images: %w", err)
			}
			if cmdTag.RowsAffected() != int64(len(imagesToDelete)) {
				return apperrors.ErrAttachmentNotFound
			}
		}

		if len(pdfsToDelete) > 0 {
			cmdTag, err := tx.Exec(ctx,
				`DELETE FROM note_pdfs WHERE note_id = $1 AND id = ANY($2)`,
				note.ID, pdfsToDelete)
			if err != nil {
				return fmt.Errorf("error deleting note pdfs: %w", err)
			}
			if cmdTag.RowsAffected() != int64(len(pdfsToDelete)) {
				return apperrors.ErrAttachmentNotFound
			}
		}

		if len(newPDFURLs) > 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM note_pdfs WHERE note_id = $1`, note.ID); err != nil {
				return fmt.Errorf("error replacing note pdfs: %w", err)
			}
		}

		if err := insertAttachments(ctx, tx, "note_images", "image_url", note.ID, newImageURLs); err != nil {
			return err
		}
		if err := insertAttachments(ctx, tx, "note_pdfs", "pdf_url", note.ID, newPDFURLs); err != nil {
			return err
		}

		sqlStr, args, err := squirrel.Update("notes").
			Set("subject_id", note.SubjectID).
			Set("chapter_id", note.ChapterID).
			Set("topic_title", note.TopicTitle).
			Set("content", helpers.GetContentNullString(note.Content)).
			Set("is_published", note.IsPublished).
			Set("display_order", note.DisplayOrder).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": note.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building update note SQL")
			return err
		}

		cmdTag, err := tx.Exec(ctx, sqlStr, args...)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing update note query")
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNoteNotFound
		}

		return nil
	})
}

// SetPublished toggles a note's publish flag.
func (r *NoteRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	cmdTag, err := r.db.Pool.Exec(ctx,
		`UPDATE notes SET is_published = $1, updated_at = NOW() WHERE id = $2`,
		published, id)
	if err != nil {
		return fmt.Errorf("error updating publish status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// NoteDeleteResult describes what a batch note delete removed: the attachment
// file URLs to clean up, the subjects that lost notes, and the note count.
type NoteDeleteResult struct {
	FileURLs   []string
	SubjectIDs []int64
	Deleted    int64
}

// DeleteMany deletes the given notes and their attachment rows atomically.
// IDs that match no note are skipped rather than failing the whole batch.
func (r *NoteRepository) DeleteMany(ctx context.Context, ids []int64) (NoteDeleteResult, error) {
	var result NoteDeleteResult
	if len(ids) == 0 {
		return result, nil
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		subjectRows, err := tx.Query(ctx,
			`SELECT DISTINCT subject_id FROM notes WHERE id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("error collecting affected subjects: %w", err)
		}
		defer subjectRows.Close()

		for subjectRows.Next() {
			var subjectID int64
			if err := subjectRows.Scan(&subjectID); err != nil {
				return err
			}
			result.SubjectIDs = append(result.SubjectIDs, subjectID)
		}
		if err := subjectRows.Err(); err != nil {
			return err
		}
		subjectRows.Close()

		rows, err := tx.Query(ctx, `
			SELECT image_url FROM note_images WHERE note_id = ANY($1)
			UNION ALL
			SELECT pdf_url FROM note_pdfs WHERE note_id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("error collecting attachment urls: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var url string
			if err := rows.Scan(&url); err != nil {
				return err
			}
			result.FileURLs = append(result.FileURLs, url)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM note_images WHERE note_id = ANY($1)`, ids); err != nil {
			return fmt.Errorf("error deleting note images: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM note_pdfs WHERE note_id = ANY($1)`, ids); err != nil {
			return fmt.Errorf("error deleting note pdfs: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM notes WHERE id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("error deleting notes: %w", err)
		}
		result.Deleted = cmdTag.RowsAffected()

		return nil
	})

	if err != nil {
		return NoteDeleteResult{}, err
	}
	return result, nil
}

func insertAttachments(ctx context.Context, tx pgx.Tx, table, urlColumn string, noteID int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	builder := squirrel.Insert(table).
		Columns("note_id", urlColumn).
		PlaceholderFormat(squirrel.Dollar)
	for _, url := range urls {
		builder = builder.Values(noteID, url)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error building attachment insert SQL")
		return err
	}

	if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error inserting attachments")
		return err
	}

	return nil
}
