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

	// Out-of-range values fall back to defaults
	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(95, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 10, info.TotalPages)
	assert.Equal(t, int64(95), info.TotalItems)

	// Empty result still reports one page
	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// Page beyond the end is clamped
	info = NewPaginationInfo(15, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
}

func TestParseDate(t *testing.T) {
	date := "2015-03-20"
	parsed, err := ParseDate(&date)
	assert.NoError(t, err)
	assert.Equal(t, "2015-03-20", parsed.Format(DateFormat))

	parsed, err = ParseDate(nil)
	assert.NoError(t, err)
	assert.Nil(t, parsed)

	empty := ""
	parsed, err = ParseDate(&empty)
	assert.NoError(t, err)
	assert.Nil(t, parsed)

	bad := "20/03/2015"
	_, err = ParseDate(&bad)
	assert.Error(t, err)
}
