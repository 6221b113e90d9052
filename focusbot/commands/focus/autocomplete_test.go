package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestActivities(t *testing.T) {
	known := []string{"Rust", "coding"}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{
			name:  "empty query lists known first without case duplicates",
			query: "",
			limit: 4,
			want:  []string{"Rust", "coding", "Studying", "Reading"},
		},
		{
			name:  "fuzzy match",
			query: "rea",
			limit: 25,
			want:  []string{"rea", "Reading", "Research"},
		},
		{
			name:  "exact known activity is not repeated",
			query: "Rust",
			limit: 25,
			want:  []string{"Rust"},
		},
		{
			name:  "limit",
			query: "",
			limit: 1,
			want:  []string{"Rust"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggestActivities(tt.query, known, tt.limit))
		})
	}
}
