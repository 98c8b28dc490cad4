package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatchesSentinel(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "name cannot be empty")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "name cannot be empty", err.Error())
	assert.Equal(t, ErrValidationFailed, errors.Unwrap(err))
}

func TestCustomErrorFallsBackToSentinelMessage(t *testing.T) {
	err := NewCustomError(ErrNoteNotFound, "")
	assert.Equal(t, ErrNoteNotFound.Error(), err.Error())
}
