package services

import (
	"context"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emre/notesphere/internal/app/models"
	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/app/repositories"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/filestorage"
	"github.com/emre/notesphere/internal/pkg/helpers"
)

// In-memory store fakes mirroring the repository semantics, so the services
// can be exercised without a database.

type fakeSubjectStore struct {
	subjects map[int64]*models.Subject
	// blocks deletion, standing in for existing chapters or notes
	dependents map[int64]bool
	nextID     int64
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{
		subjects:   make(map[int64]*models.Subject),
		dependents: make(map[int64]bool),
	}
}

func (f *fakeSubjectStore) nameTaken(name string, excludeID int64) bool {
	for id, s := range f.subjects {
		if id != excludeID && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	if f.nameTaken(subject.Name, 0) {
		return apperrors.ErrSubjectAlreadyExists
	}
	f.nextID++
	subject.ID = f.nextID
	subject.CreatedAt = time.Now()
	f.subjects[subject.ID] = &models.Subject{ID: subject.ID, Name: subject.Name, CreatedAt: subject.CreatedAt}
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	s, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubjectStore) GetAll(_ context.Context) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(f.subjects))
	for _, s := range f.subjects {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeSubjectStore) Rename(_ context.Context, id int64, name string) error {
	s, ok := f.subjects[id]
	if !ok {
		return apperrors.ErrSubjectNotFound
	}
	if f.nameTaken(name, id) {
		return apperrors.ErrSubjectAlreadyExists
	}
	s.Name = name
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	if f.dependents[id] {
		return apperrors.ErrSubjectHasRelations
	}
	delete(f.subjects, id)
	return nil
}

type fakeChapterStore struct {
	chapters map[int64]*models.Chapter
	hasNotes map[int64]bool
	nextID   int64
}

func newFakeChapterStore() *fakeChapterStore {
	return &fakeChapterStore{
		chapters: make(map[int64]*models.Chapter),
		hasNotes: make(map[int64]bool),
	}
}

func (f *fakeChapterStore) nameTaken(subjectID int64, name string, excludeID int64) bool {
	for id, c := range f.chapters {
		if id != excludeID && c.SubjectID == subjectID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (f *fakeChapterStore) Create(_ context.Context, chapter *models.Chapter) error {
	if f.nameTaken(chapter.SubjectID, chapter.Name, 0) {
		return apperrors.ErrChapterAlreadyExists
	}
	f.nextID++
	chapter.ID = f.nextID
	chapter.CreatedAt = time.Now()
	f.chapters[chapter.ID] = &models.Chapter{
		ID: chapter.ID, SubjectID: chapter.SubjectID, Name: chapter.Name, CreatedAt: chapter.CreatedAt,
	}
	return nil
}

func (f *fakeChapterStore) GetByID(_ context.Context, id int64) (*models.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok {
		return nil, apperrors.ErrChapterNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChapterStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Chapter, error) {
	out := make([]*models.Chapter, 0)
	for _, c := range f.chapters {
		if c.SubjectID == subjectID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeChapterStore) Rename(_ context.Context, id int64, name string) error {
	c, ok := f.chapters[id]
	if !ok {
		return apperrors.ErrChapterNotFound
	}
	if f.nameTaken(c.SubjectID, name, id) {
		return apperrors.ErrChapterAlreadyExists
	}
	c.Name = name
	return nil
}

func (f *fakeChapterStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.chapters[id]; !ok {
		return apperrors.ErrChapterNotFound
	}
	if f.hasNotes[id] {
		return apperrors.ErrChapterHasRelations
	}
	delete(f.chapters, id)
	return nil
}

// fakeNoteStore implements both NoteStore and AttachmentStore so attachment
// state stays consistent with note mutations.
type fakeNoteStore struct {
	notes      map[int64]*repositories.NoteDetails
	images     map[int64][]*models.NoteImage
	pdfs       map[int64][]*models.NotePDF
	nextNoteID int64
	nextAttID  int64
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		notes:  make(map[int64]*repositories.NoteDetails),
		images: make(map[int64][]*models.NoteImage),
		pdfs:   make(map[int64][]*models.NotePDF),
	}
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*repositories.NoteDetails, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoteStore) GetAll(_ context.Context, params repositories.GetAllNotesParams) ([]*repositories.NoteDetails, dto.PaginationInfo, error) {
	matched := make([]*repositories.NoteDetails, 0)
	for _, n := range f.notes {
		if params.SubjectID != nil && n.SubjectID != *params.SubjectID {
			continue
		}
		if params.ChapterID != nil && (n.ChapterID == nil || *n.ChapterID != *params.ChapterID) {
			continue
		}
		if params.PublishedOnly && !n.IsPublished {
			continue
		}
		cp := *n
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].DisplayOrder != matched[j].DisplayOrder {
			return matched[i].DisplayOrder < matched[j].DisplayOrder
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	pagination := helpers.NewPaginationInfo(int64(len(matched)), params.Page, params.Size)
	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Size)
	start := int(offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

func (f *fakeNoteStore) CreateWithAttachments(_ context.Context, note *models.Note, imageURLs, pdfURLs []string) (int64, error) {
	f.nextNoteID++
	id := f.nextNoteID
	now := time.Now()
	f.notes[id] = &repositories.NoteDetails{
		Note: models.Note{
			ID: id, SubjectID: note.SubjectID, ChapterID: note.ChapterID,
			TopicTitle: note.TopicTitle, Content: note.Content,
			IsPublished: note.IsPublished, DisplayOrder: note.DisplayOrder,
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, url := range imageURLs {
		f.nextAttID++
		f.images[id] = append(f.images[id], &models.NoteImage{ID: f.nextAttID, NoteID: id, ImageURL: url, CreatedAt: now})
	}
	for _, url := range pdfURLs {
		f.nextAttID++
		f.pdfs[id] = append(f.pdfs[id], &models.NotePDF{ID: f.nextAttID, NoteID: id, PDFURL: url, CreatedAt: now})
	}
	return id, nil
}

func (f *fakeNoteStore) UpdateWithAttachments(_ context.Context, note *models.Note, imagesToDelete, pdfsToDelete []int64, newImageURLs, newPDFURLs []string) error {
	existing, ok := f.notes[note.ID]
	if !ok {
		return apperrors.ErrNoteNotFound
	}

	for _, imgID := range imagesToDelete {
		if !f.removeImage(note.ID, imgID) {
			return apperrors.ErrAttachmentNotFound
		}
	}
	for _, pdfID := range pdfsToDelete {
		if !f.removePDF(note.ID, pdfID) {
			return apperrors.ErrAttachmentNotFound
		}
	}

	if len(newPDFURLs) > 0 {
		f.pdfs[note.ID] = nil
	}

	now := time.Now()
	for _, url := range newImageURLs {
		f.nextAttID++
		f.images[note.ID] = append(f.images[note.ID], &models.NoteImage{ID: f.nextAttID, NoteID: note.ID, ImageURL: url, CreatedAt: now})
	}
	for _, url := range newPDFURLs {
		f.nextAttID++
		f.pdfs[note.ID] = append(f.pdfs[note.ID], &models.NotePDF{ID: f.nextAttID, NoteID: note.ID, PDFURL: url, CreatedAt: now})
	}

	existing.SubjectID = note.SubjectID
	existing.ChapterID = note.ChapterID
	existing.TopicTitle = note.TopicTitle
	existing.Content = note.Content
	existing.IsPublished = note.IsPublished
	existing.DisplayOrder = note.DisplayOrder
	existing.UpdatedAt = now
	return nil
}

func (f *fakeNoteStore) removeImage(noteID, imgID int64) bool {
	for i, img := range f.images[noteID] {
		if img.ID == imgID {
			f.images[noteID] = append(f.images[noteID][:i], f.images[noteID][i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeNoteStore) removePDF(noteID, pdfID int64) bool {
	for i, pdf := range f.pdfs[noteID] {
		if pdf.ID == pdfID {
			f.pdfs[noteID] = append(f.pdfs[noteID][:i], f.pdfs[noteID][i+1:]...)
			return true
		}
	}
	return false
}

func (f *fakeNoteStore) SetPublished(_ context.Context, id int64, published bool) error {
	n, ok := f.notes[id]
	if !ok {
		return apperrors.ErrNoteNotFound
	}
	n.IsPublished = published
	n.UpdatedAt = time.Now()
	return nil
}

func (f *fakeNoteStore) DeleteMany(_ context.Context, ids []int64) (repositories.NoteDeleteResult, error) {
	var result repositories.NoteDeleteResult
	seenSubjects := make(map[int64]bool)
	for _, id := range ids {
		n, ok := f.notes[id]
		if !ok {
			continue
		}
		if !seenSubjects[n.SubjectID] {
			seenSubjects[n.SubjectID] = true
			result.SubjectIDs = append(result.SubjectIDs, n.SubjectID)
		}
		for _, img := range f.images[id] {
			result.FileURLs = append(result.FileURLs, img.ImageURL)
		}
		for _, pdf := range f.pdfs[id] {
			result.FileURLs = append(result.FileURLs, pdf.PDFURL)
		}
		delete(f.images, id)
		delete(f.pdfs, id)
		delete(f.notes, id)
		result.Deleted++
	}
	return result, nil
}

func (f *fakeNoteStore) ListImagesByNoteID(_ context.Context, noteID int64) ([]*models.NoteImage, error) {
	return append([]*models.NoteImage(nil), f.images[noteID]...), nil
}

func (f *fakeNoteStore) ListPDFsByNoteID(_ context.Context, noteID int64) ([]*models.NotePDF, error) {
	return append([]*models.NotePDF(nil), f.pdfs[noteID]...), nil
}

func (f *fakeNoteStore) ListByNoteIDs(_ context.Context, noteIDs []int64) (map[int64][]*models.NoteImage, map[int64][]*models.NotePDF, error) {
	images := make(map[int64][]*models.NoteImage)
	pdfs := make(map[int64][]*models.NotePDF)
	for _, id := range noteIDs {
		if imgs := f.images[id]; len(imgs) > 0 {
			images[id] = append([]*models.NoteImage(nil), imgs...)
		}
		if docs := f.pdfs[id]; len(docs) > 0 {
			pdfs[id] = append([]*models.NotePDF(nil), docs...)
		}
	}
	return images, pdfs, nil
}

// recordingInvalidator captures invalidated paths
type recordingInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingInvalidator) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingInvalidator) has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}

// fakeStorage records deleted file URLs
type fakeStorage struct {
	mu      sync.Mutex
	saved   int
	deleted []string
}

var _ filestorage.FileStorage = (*fakeStorage)(nil)

func (f *fakeStorage) SaveFile(_ *multipart.FileHeader, kind filestorage.Kind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved++
	return "http://localhost/uploads/" + string(kind) + "/fake", nil
}

func (f *fakeStorage) DeleteFile(fileURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeStorage) deletedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}
