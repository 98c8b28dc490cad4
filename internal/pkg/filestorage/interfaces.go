package filestorage

import "mime/multipart"

// Kind partitions uploads into subdirectories by attachment type.
type Kind string

const (
	KindImage Kind = "images"
	KindPDF   Kind = "pdfs"
)

// FileStorage is the blob store surface the application depends on:
// store bytes, get back a public URL.
type FileStorage interface {
	// SaveFile stores an uploaded file and returns its publicly reachable URL.
	SaveFile(fileHeader *multipart.FileHeader, kind Kind) (string, error)
	// DeleteFile removes a previously stored file given its public URL.
	// Deleting a missing file is not an error.
	DeleteFile(fileURL string) error
}
