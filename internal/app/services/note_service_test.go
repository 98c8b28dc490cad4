package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/pkg/apperrors"
)

type noteServiceFixture struct {
	svc      *NoteService
	subjects *fakeSubjectStore
	chapters *fakeChapterStore
	notes    *fakeNoteStore
	storage  *fakeStorage
	inv      *recordingInvalidator
	subject  *models.Subject
	chapter  *models.Chapter
}

func newNoteServiceFixture(t *testing.T) *noteServiceFixture {
	t.Helper()
	subjects := newFakeSubjectStore()
	chapters := newFakeChapterStore()
	notes := newFakeNoteStore()
	storage := &fakeStorage{}
	inv := &recordingInvalidator{}

	subject := &models.Subject{Name: "Mathematics"}
	require.NoError(t, subjects.Create(context.Background(), subject))
	chapter := &models.Chapter{SubjectID: subject.ID, Name: "Algebra"}
	require.NoError(t, chapters.Create(context.Background(), chapter))

	return &noteServiceFixture{
		svc:      NewNoteService(notes, notes, subjects, chapters, storage, inv),
		subjects: subjects,
		chapters: chapters,
		notes:    notes,
		storage:  storage,
		inv:      inv,
		subject:  subject,
		chapter:  chapter,
	}
}

func (f *noteServiceFixture) createNote(t *testing.T, req dto.CreateNoteRequest) *dto.NoteResponse {
	t.Helper()
	if req.SubjectID == 0 {
		req.SubjectID = f.subject.ID
	}
	note, err := f.svc.CreateNote(context.Background(), req)
	require.NoError(t, err)
	return note
}

func TestCreateNoteWithAttachments(t *testing.T) {
	f := newNoteServiceFixture(t)

	note := f.createNote(t, dto.CreateNoteRequest{
		ChapterID:    &f.chapter.ID,
		TopicTitle:   "Quadratic equations",
		Content:      "ax^2 + bx + c = 0",
		IsPublished:  true,
		NewImageURLs: []string{"http://localhost/uploads/images/a.png"},
		NewPDFURLs:   []string{"http://localhost/uploads/pdfs/a.pdf"},
	})

	assert.Equal(t, "Quadratic equations", note.TopicTitle)
	require.Len(t, note.Images, 1)
	require.Len(t, note.PDFs, 1)
	assert.Equal(t, "http://localhost/uploads/images/a.png", note.Images[0].URL)
	assert.True(t, f.inv.has("/notes"))
}

func TestCreateNoteChapterFromOtherSubject(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	other := &models.Subject{Name: "Physics"}
	require.NoError(t, f.subjects.Create(ctx, other))

	_, err := f.svc.CreateNote(ctx, dto.CreateNoteRequest{
		SubjectID:  other.ID,
		ChapterID:  &f.chapter.ID,
		TopicTitle: "Misplaced note",
	})
	assert.ErrorIs(t, err, apperrors.ErrChapterSubjectMismatch)
}

func TestCreateNoteSubjectNotFound(t *testing.T) {
	f := newNoteServiceFixture(t)

	_, err := f.svc.CreateNote(context.Background(), dto.CreateNoteRequest{
		SubjectID:  999,
		TopicTitle: "Orphan note",
	})
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestCreateNoteRejectsShortTitle(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	// Padding must not count towards the minimum length
	for _, title := range []string{"ab", "ab ", "  a  ", "   "} {
		_, err := f.svc.CreateNote(ctx, dto.CreateNoteRequest{
			SubjectID:  f.subject.ID,
			TopicTitle: title,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "title: %q", title)
	}

	list, err := f.svc.ListNotes(ctx, dto.NoteFilterRequest{Page: 1, Size: 20}, true)
	require.NoError(t, err)
	assert.Empty(t, list.Notes)
}

func TestCreateNoteCountsTitleInRunes(t *testing.T) {
	f := newNoteServiceFixture(t)

	// Three runes, more than three bytes
	note := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "πδε"})
	assert.Equal(t, "πδε", note.TopicTitle)
}

func TestUpdateNoteRejectsShortTitle(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Valid title"})

	_, err := f.svc.UpdateNote(ctx, note.ID, dto.UpdateNoteRequest{
		SubjectID:  f.subject.ID,
		TopicTitle: "ab ",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	got, err := f.svc.GetNote(ctx, note.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Valid title", got.TopicTitle)
}

func TestGetNoteHidesDraftsFromPublic(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Draft note", IsPublished: false})

	_, err := f.svc.GetNote(ctx, note.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	got, err := f.svc.GetNote(ctx, note.ID, true)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)
}

func TestListNotesPublishedOnly(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Published note", IsPublished: true})
	f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Draft note", IsPublished: false})

	public, err := f.svc.ListNotes(ctx, dto.NoteFilterRequest{Page: 1, Size: 20}, false)
	require.NoError(t, err)
	require.Len(t, public.Notes, 1)
	assert.Equal(t, "Published note", public.Notes[0].TopicTitle)

	admin, err := f.svc.ListNotes(ctx, dto.NoteFilterRequest{Page: 1, Size: 20}, true)
	require.NoError(t, err)
	assert.Len(t, admin.Notes, 2)
	assert.EqualValues(t, 2, admin.Pagination.TotalItems)
}

func TestListNotesOrderedByDisplayOrder(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Second", IsPublished: true, DisplayOrder: 2})
	f.createNote(t, dto.CreateNoteRequest{TopicTitle: "First", IsPublished: true, DisplayOrder: 1})

	list, err := f.svc.ListNotes(ctx, dto.NoteFilterRequest{Page: 1, Size: 20}, false)
	require.NoError(t, err)
	require.Len(t, list.Notes, 2)
	assert.Equal(t, "First", list.Notes[0].TopicTitle)
	assert.Equal(t, "Second", list.Notes[1].TopicTitle)
}

func TestUpdateNoteReplacesPDFSet(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{
		TopicTitle: "PDF note",
		NewPDFURLs: []string{"http://localhost/uploads/pdfs/old.pdf"},
	})

	updated, err := f.svc.UpdateNote(ctx, note.ID, dto.UpdateNoteRequest{
		SubjectID:  f.subject.ID,
		TopicTitle: "PDF note",
		NewPDFURLs: []string{"http://localhost/uploads/pdfs/new.pdf"},
	})
	require.NoError(t, err)

	// Only the latest upload survives
	require.Len(t, updated.PDFs, 1)
	assert.Equal(t, "http://localhost/uploads/pdfs/new.pdf", updated.PDFs[0].URL)
	assert.Contains(t, f.storage.deletedURLs(), "http://localhost/uploads/pdfs/old.pdf")
}

func TestUpdateNoteDeletesMarkedImages(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{
		TopicTitle:   "Image note",
		NewImageURLs: []string{"http://localhost/uploads/images/a.png", "http://localhost/uploads/images/b.png"},
	})
	require.Len(t, note.Images, 2)

	updated, err := f.svc.UpdateNote(ctx, note.ID, dto.UpdateNoteRequest{
		SubjectID:      f.subject.ID,
		TopicTitle:     "Image note",
		ImagesToDelete: []int64{note.Images[0].ID},
	})
	require.NoError(t, err)

	require.Len(t, updated.Images, 1)
	assert.Equal(t, note.Images[1].ID, updated.Images[0].ID)
	assert.Contains(t, f.storage.deletedURLs(), note.Images[0].URL)
}

func TestUpdateNoteUnknownAttachmentID(t *testing.T) {
	f := newNoteServiceFixture(t)

	note := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Image note"})

	_, err := f.svc.UpdateNote(context.Background(), note.ID, dto.UpdateNoteRequest{
		SubjectID:      f.subject.ID,
		TopicTitle:     "Image note",
		ImagesToDelete: []int64{12345},
	})
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestUpdateNoteNotFound(t *testing.T) {
	f := newNoteServiceFixture(t)

	_, err := f.svc.UpdateNote(context.Background(), 999, dto.UpdateNoteRequest{
		SubjectID:  f.subject.ID,
		TopicTitle: "Missing note",
	})
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestSetPublishStatus(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Draft note"})

	published, err := f.svc.SetPublishStatus(ctx, note.ID, true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	unpublished, err := f.svc.SetPublishStatus(ctx, note.ID, false)
	require.NoError(t, err)
	assert.False(t, unpublished.IsPublished)
}

func TestDeleteNoteCleansUpFiles(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	note := f.createNote(t, dto.CreateNoteRequest{
		TopicTitle:   "Note with files",
		NewImageURLs: []string{"http://localhost/uploads/images/a.png"},
		NewPDFURLs:   []string{"http://localhost/uploads/pdfs/a.pdf"},
	})

	require.NoError(t, f.svc.DeleteNote(ctx, note.ID))

	_, err := f.svc.GetNote(ctx, note.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	deleted := f.storage.deletedURLs()
	assert.Contains(t, deleted, "http://localhost/uploads/images/a.png")
	assert.Contains(t, deleted, "http://localhost/uploads/pdfs/a.pdf")
}

func TestDeleteNotesSkipsMissingIDs(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	first := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "First note"})
	second := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Second note"})

	deleted, err := f.svc.DeleteNotes(ctx, []int64{first.ID, second.ID, 999})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
}

func TestDeleteNotesInvalidatesSubjectPages(t *testing.T) {
	f := newNoteServiceFixture(t)
	ctx := context.Background()

	other := &models.Subject{Name: "Physics"}
	require.NoError(t, f.subjects.Create(ctx, other))

	first := f.createNote(t, dto.CreateNoteRequest{TopicTitle: "Math note"})
	second := f.createNote(t, dto.CreateNoteRequest{SubjectID: other.ID, TopicTitle: "Physics note"})

	deleted, err := f.svc.DeleteNotes(ctx, []int64{first.ID, second.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	assert.True(t, f.inv.has("/notes"))
	assert.True(t, f.inv.has(fmt.Sprintf("/subjects/%d", f.subject.ID)))
	assert.True(t, f.inv.has(fmt.Sprintf("/subjects/%d", other.ID)))
}

func TestDeleteNotesEmptyBatch(t *testing.T) {
	f := newNoteServiceFixture(t)

	_, err := f.svc.DeleteNotes(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
