package in_mem

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gawa-wiki/gawa/internal/domain"
)

var ctx = context.Background()

func ts(day int, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func TestInMemStore_RangeQueries(t *testing.T) {
	s := NewInMemStore()

	require.NoError(t, s.SaveQueries(ctx, []domain.Query{
		{ID: "q1", Label: "inside", CreatedAt: ts(5, 10)},
		{ID: "q2", Label: "boundary start", CreatedAt: ts(1, 0)},
		{ID: "q3", Label: "outside", CreatedAt: ts(20, 0)},
	}))

	got, err := s.QueriesCreatedBetween(ctx, ts(1, 0), ts(10, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	// insertion order is preserved
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, "q2", got[1].ID)

	// half-open interval: end is excluded
	got, err = s.QueriesCreatedBetween(ctx, ts(1, 0), ts(5, 10))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "q2", got[0].ID)
}

func TestInMemStore_AssignmentsUpdatedVsCreated(t *testing.T) {
	s := NewInMemStore()

	require.NoError(t, s.SaveAssignments(ctx, []domain.Assignment{
		{ID: "a1", SuggestionID: "s1", Status: domain.StatusTodo, CreatedAt: ts(1, 0), UpdatedAt: ts(15, 0)},
	}))

	created, err := s.AssignmentsCreatedBetween(ctx, ts(10, 0), ts(20, 0))
	require.NoError(t, err)
	assert.Empty(t, created)

	updated, err := s.AssignmentsUpdatedBetween(ctx, ts(10, 0), ts(20, 0))
	require.NoError(t, err)
	assert.Len(t, updated, 1)
}

func TestInMemStore_Lookups(t *testing.T) {
	s := NewInMemStore()

	require.NoError(t, s.SaveArticles(ctx, []domain.Article{
		{ID: "art1", Title: "One"},
		{ID: "art2", Title: "Two"},
	}))
	require.NoError(t, s.SaveAssignments(ctx, []domain.Assignment{
		{ID: "a1", SuggestionID: "s1"},
		{ID: "a2", SuggestionID: "s1"},
		{ID: "a3", SuggestionID: "s2"},
	}))

	arts, err := s.ArticlesByID(ctx, []string{"art2", "missing"})
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, "Two", arts["art2"].Title)

	asgs, err := s.AssignmentsBySuggestion(ctx, []string{"s1"})
	require.NoError(t, err)
	assert.Len(t, asgs, 2)

	asgs, err = s.AssignmentsBySuggestion(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, asgs)
}
