package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSort(t *testing.T) {
	columns := map[string]string{
		"createdAt":  "c.created_at",
		"status":     "c.status",
		"roomNumber": "c.room_number",
	}

	tests := []struct {
		name       string
		filters    map[string]interface{}
		wantColumn string
		wantOrder  string
	}{
		{"no filters", map[string]interface{}{}, "c.created_at", "DESC"},
		{"whitelisted column", map[string]interface{}{"sortBy": "status"}, "c.status", "DESC"},
		{"order normalized", map[string]interface{}{"sortBy": "roomNumber", "sortOrder": "asc"}, "c.room_number", "ASC"},
		{"unknown column falls back", map[string]interface{}{"sortBy": "password"}, "c.created_at", "DESC"},
		{"injection attempt falls back", map[string]interface{}{"sortBy": "id; DROP TABLE users"}, "c.created_at", "DESC"},
		{"bad order falls back", map[string]interface{}{"sortOrder": "sideways"}, "c.created_at", "DESC"},
		{"non-string values ignored", map[string]interface{}{"sortBy": 7, "sortOrder": true}, "c.created_at", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, order := resolveSort(tt.filters, columns, "c.created_at", "DESC")
			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}
