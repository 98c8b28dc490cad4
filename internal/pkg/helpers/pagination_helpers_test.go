package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.EqualValues(t, 0, offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 10)
	assert.EqualValues(t, 20, offset)
	assert.Equal(t, 10, limit)

	// Out-of-range sizes fall back to the default
	offset, limit = CalculateOffsetLimit(1, 0)
	assert.EqualValues(t, 0, offset)
	assert.Equal(t, DefaultPageSize, limit)

	offset, limit = CalculateOffsetLimit(2, MaxPageSize+1)
	assert.EqualValues(t, DefaultPageSize, offset)
	assert.Equal(t, DefaultPageSize, limit)

	// Pages below 1 clamp to the first page
	offset, _ = CalculateOffsetLimit(0, 10)
	assert.EqualValues(t, 0, offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.EqualValues(t, 45, info.TotalItems)
}

func TestNewPaginationInfoEmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 20)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
	assert.EqualValues(t, 0, info.TotalItems)
}

func TestNewPaginationInfoPageBeyondEnd(t *testing.T) {
	info := NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
}
