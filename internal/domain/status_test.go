package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{
			name:     "no assignments",
			statuses: nil,
			want:     StatusUnassigned,
		},
		{
			name:     "single todo",
			statuses: []Status{StatusTodo},
			want:     StatusTodo,
		},
		{
			name:     "done beats todo",
			statuses: []Status{StatusTodo, StatusDone},
			want:     StatusDone,
		},
		{
			name:     "done beats in_progress regardless of order",
			statuses: []Status{StatusDone, StatusInProgress},
			want:     StatusDone,
		},
		{
			name:     "in_progress beats todo",
			statuses: []Status{StatusTodo, StatusInProgress, StatusTodo},
			want:     StatusInProgress,
		},
		{
			name:     "unknown status never displaces a real one",
			statuses: []Status{StatusTodo, Status("archived")},
			want:     StatusTodo,
		},
		{
			name:     "only unknown statuses keep the sentinel",
			statuses: []Status{Status("archived"), Status("")},
			want:     StatusUnassigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.statuses))
		})
	}
}

// The resolver must be order-independent: folding any permutation of the
// same statuses yields the same result.
func TestResolveStatus_PermutationInvariance(t *testing.T) {
	statuses := []Status{StatusTodo, StatusDone, StatusInProgress, StatusTodo}
	want := ResolveStatus(statuses)

	perms := [][]Status{
		{StatusDone, StatusTodo, StatusTodo, StatusInProgress},
		{StatusInProgress, StatusTodo, StatusDone, StatusTodo},
		{StatusTodo, StatusTodo, StatusInProgress, StatusDone},
	}
	for _, p := range perms {
		assert.Equal(t, want, ResolveStatus(p))
	}
}

func TestBestStatus_Incremental(t *testing.T) {
	resolved := StatusUnassigned
	for _, s := range []Status{StatusTodo, StatusDone, StatusInProgress} {
		resolved = BestStatus(resolved, s)
	}
	assert.Equal(t, StatusDone, resolved)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("  In_Progress ")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, s)

	s, ok = ParseStatus("unassigned")
	assert.True(t, ok)
	assert.Equal(t, StatusUnassigned, s)

	_, ok = ParseStatus("bogus")
	assert.False(t, ok)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortScoreAsc, ParseSortKey("SCORE_ASC"))
	assert.Equal(t, SortDateDesc, ParseSortKey(""))
	assert.Equal(t, SortDateDesc, ParseSortKey("relevance"))
}
