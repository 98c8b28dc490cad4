package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/notesphere/internal/app/models"
)

// AttachmentRepository handles read operations for note attachments.
// Attachment writes always happen inside note transactions and live in
// NoteRepository.
type AttachmentRepository struct {
	db *pgxpool.Pool
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{
		db: db,
	}
}

// ListImagesByNoteID retrieves a note's images in insertion order
func (r *AttachmentRepository) ListImagesByNoteID(ctx context.Context, noteID int64) ([]*models.NoteImage, error) {
	query := `
		SELECT id, note_id, image_url, created_at
		FROM note_images
		WHERE note_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("error listing note images: %w", err)
	}
	defer rows.Close()

	images := make([]*models.NoteImage, 0)
	for rows.Next() {
		var img models.NoteImage
		if err := rows.Scan(&img.ID, &img.NoteID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, &img)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

// ListPDFsByNoteID retrieves a note's PDFs in insertion order
func (r *AttachmentRepository) ListPDFsByNoteID(ctx context.Context, noteID int64) ([]*models.NotePDF, error) {
	query := `
		SELECT id, note_id, pdf_url, created_at
		FROM note_pdfs
		WHERE note_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("error listing note pdfs: %w", err)
	}
	defer rows.Close()

	pdfs := make([]*models.NotePDF, 0)
	for rows.Next() {
		var pdf models.NotePDF
		if err := rows.Scan(&pdf.ID, &pdf.NoteID, &pdf.PDFURL, &pdf.CreatedAt); err != nil {
			return nil, err
		}
		pdfs = append(pdfs, &pdf)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pdfs, nil
}

// ListByNoteIDs retrieves images and PDFs for a set of notes in one round trip
// per table, keyed by note id.
func (r *AttachmentRepository) ListByNoteIDs(ctx context.Context, noteIDs []int64) (map[int64][]*models.NoteImage, map[int64][]*models.NotePDF, error) {
	images := make(map[int64][]*models.NoteImage)
	pdfs := make(map[int64][]*models.NotePDF)
	if len(noteIDs) == 0 {
		return images, pdfs, nil
	}

	imgRows, err := r.db.Query(ctx, `
		SELECT id, note_id, image_url, created_at
		FROM note_images
		WHERE note_id = ANY($1)
		ORDER BY id`, noteIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing note images: %w", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img models.NoteImage
		if err := imgRows.Scan(&img.ID, &img.NoteID, &img.ImageURL, &img.CreatedAt); err != nil {
			return nil, nil, err
		}
		images[img.NoteID] = append(images[img.NoteID], &img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, nil, err
	}

	pdfRows, err := r.db.Query(ctx, `
		SELECT id, note_id, pdf_url, created_at
		FROM note_pdfs
		WHERE note_id = ANY($1)
		ORDER BY id`, noteIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing note pdfs: %w", err)
	}
	defer pdfRows.Close()

	for pdfRows.Next() {
		var pdf models.NotePDF
		if err := pdfRows.Scan(&pdf.ID, &pdf.NoteID, &pdf.PDFURL, &pdf.CreatedAt); err != nil {
			return nil, nil, err
		}
		pdfs[pdf.NoteID] = append(pdfs[pdf.NoteID], &pdf)
	}
	if err := pdfRows.Err(); err != nil {
		return nil, nil, err
	}

	return images, pdfs, nil
}
