package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 25)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, 25, limit)

	// oversized page size falls back to the default
	offset, limit = CalculateOffsetLimit(2, MaxPageSize+1)
	assert.Equal(t, uint64(DefaultPageSize), offset)
	assert.Equal(t, DefaultPageSize, limit)

	// page below 1 is clamped
	offset, _ = CalculateOffsetLimit(0, 10)
	assert.Equal(t, uint64(0), offset)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, int64(45), info.TotalItems)

	// empty result set still reports one page
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// page past the end is clamped to the last page
	info = NewPaginationInfo(20, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
}
