package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/logger"
)

// Content types accepted per upload kind. Anything else is rejected before
// touching the disk.
var allowedContentTypes = map[Kind]map[string]bool{
	KindImage: {
		"image/png":  true,
		"image/jpeg": true,
		"image/webp": true,
		"image/gif":  true,
	},
	KindPDF: {
		"application/pdf": true,
	},
}

// LocalStorage stores uploaded files on the local filesystem and serves them
// through the static /uploads route.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the root directory on disk; baseURL is prepended to returned paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile stores an uploaded file under the kind's subdirectory and returns
// its public URL.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, kind Kind) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("%w: no file provided", apperrors.ErrUploadFailed)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if allowed, ok := allowedContentTypes[kind]; !ok || !allowed[contentType] {
		return "", fmt.Errorf("%w: %s is not allowed for %s uploads", apperrors.ErrUnsupportedFileType, contentType, kind)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, string(kind))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	// Unique filename to prevent collisions
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("%w: %v", apperrors.ErrUploadFailed, err)
	}

	accessiblePath := strings.TrimRight(ls.baseURL, "/") + "/" + string(kind) + "/" + uniqueFilename

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("url", accessiblePath).Msg("File saved")
	return accessiblePath, nil
}

// DeleteFile removes a file from disk given its public URL.
// Returns nil when the file does not exist (idempotent delete).
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	filename := filepath.Base(fileURL)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file url: %s", fileURL)
	}

	// The kind subdirectory is the path segment before the filename.
	kind := filepath.Base(filepath.Dir(fileURL))
	physicalPath := filepath.Join(ls.basePath, kind, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}
