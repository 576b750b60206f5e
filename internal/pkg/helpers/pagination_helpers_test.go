package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantSize   int
	}{
		{"first page", 1, 10, 0, 10},
		{"second page", 2, 10, 10, 10},
		{"custom limit", 3, 25, 50, 25},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"negative page defaults to first", -5, 10, 0, 10},
		{"zero limit defaults", 2, 0, 10, 10},
		{"limit above max defaults", 2, 500, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, size := CalculateOffsetLimit(tt.page, tt.limit)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(15, 1, 10)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, int64(15), info.Total)
	assert.Equal(t, 2, info.TotalPages)

	info = NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 0, info.TotalPages)

	info = NewPaginationInfo(10, 1, 10)
	assert.Equal(t, 1, info.TotalPages)

	// Invalid inputs fall back to defaults
	info = NewPaginationInfo(5, 0, 0)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, DefaultPageSize, info.Limit)
	assert.Equal(t, 1, info.TotalPages)
}
