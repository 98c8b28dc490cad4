package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrInvalidFormat   = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrUploadFailed        = errors.New("file upload failed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// Subject errors
var (
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrSubjectAlreadyExists = errors.New("subject with this name already exists")
	ErrSubjectHasRelations  = errors.New("subject has chapters or notes and cannot be deleted")
)

// Chapter errors
var (
	ErrChapterNotFound        = errors.New("chapter not found")
	ErrChapterAlreadyExists   = errors.New("chapter with this name already exists in the subject")
	ErrChapterHasRelations    = errors.New("chapter has notes and cannot be deleted")
	ErrChapterSubjectMismatch = errors.New("chapter does not belong to the given subject")
)

// Note errors
var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// CustomError carries a caller-facing message on top of a sentinel, so the
// error middleware can match on the sentinel while the response shows the
// specific message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}
