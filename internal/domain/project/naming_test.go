package project_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmorenz/tasktree/internal/domain/project"
)

func TestNextCopyName(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		existing []string
		want     string
	}{
		{
			name:     "first copy",
			source:   "Gamma",
			existing: []string{"Gamma"},
			want:     "Gamma (1)",
		},
		{
			name:     "fills numbering gap",
			source:   "Alpha",
			existing: []string{"Alpha", "Alpha (1)", "Alpha (3)"},
			want:     "Alpha (2)",
		},
		{
			name:     "copy of a copy strips the suffix",
			source:   "Beta (2)",
			existing: []string{"Beta", "Beta (1)", "Beta (2)"},
			want:     "Beta (3)",
		},
		{
			name:     "suffixed source with sparse family",
			source:   "Alpha (3)",
			existing: []string{"Alpha (3)"},
			want:     "Alpha (1)",
		},
		{
			name:     "unrelated names ignored",
			source:   "Alpha",
			existing: []string{"Alpha", "Beta (1)", "Alphabet (1)"},
			want:     "Alpha (1)",
		},
		{
			name:     "non-numeric parenthetical is part of the base",
			source:   "Release (final)",
			existing: []string{"Release (final)"},
			want:     "Release (final) (1)",
		},
		{
			name:     "only the trailing suffix is stripped",
			source:   "Alpha (1) (2)",
			existing: []string{"Alpha (1)", "Alpha (1) (2)"},
			want:     "Alpha (1) (1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, project.NextCopyName(tt.source, tt.existing))
		})
	}
}
