package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gawa-wiki/gawa/internal/catalog"
	"github.com/gawa-wiki/gawa/internal/domain"
	"github.com/gawa-wiki/gawa/internal/storage/in_mem"
	"github.com/gawa-wiki/gawa/internal/window"
)

var (
	ctx   = context.Background()
	today = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
)

func win(from, to string) window.Window {
	return window.Resolve(from, to, today)
}

func newEngine(t *testing.T, seed func(s *in_mem.InMemStore)) *Engine {
	t.Helper()
	s := in_mem.NewInMemStore()
	seed(s)
	return NewEngine(s, catalog.Default())
}

// referenceStore builds the reference scenario: one CIV query, one
// article with an "ébauche" banner, one suggestion with two assignments
// (todo then done).
func referenceStore(t *testing.T) *in_mem.InMemStore {
	t.Helper()
	s := in_mem.NewInMemStore()
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveQueries(ctx, []domain.Query{{ID: "q1", Label: "civ", Project: "CIV", CreatedAt: d}}))
	require.NoError(t, s.SaveArticles(ctx, []domain.Article{
		{ID: "a1", Title: "Grand-Bassam", Wiki: domain.DefaultWiki, Length: 2000, Views30d: 500, Banners: []string{"ébauche"}},
	}))
	require.NoError(t, s.SaveSuggestions(ctx, []domain.Suggestion{
		{ID: "s1", QueryID: "q1", ArticleID: "a1", Score: 75, CreatedAt: d},
	}))
	require.NoError(t, s.SaveAssignments(ctx, []domain.Assignment{
		{ID: "as1", SuggestionID: "s1", UserID: "u1", Status: domain.StatusTodo, CreatedAt: d, UpdatedAt: d},
		{ID: "as2", SuggestionID: "s1", UserID: "u1", Status: domain.StatusDone, CreatedAt: d, UpdatedAt: d},
	}))
	return s
}

func TestSearch_ReferenceScenario(t *testing.T) {
	e := NewEngine(referenceStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-02"), Params{})
	require.NoError(t, err)

	require.Equal(t, 1, got.Total, "two assignment rows collapse to one result")
	require.Len(t, got.Items, 1)

	item := got.Items[0]
	assert.Equal(t, "s1", item.SuggestionID)
	assert.Equal(t, "Grand-Bassam", item.Title)
	assert.Equal(t, "done", item.Status)
	assert.Equal(t, "CIV", item.Project)
	require.NotNil(t, item.ProjectLabel)
	assert.Equal(t, "Côte d’Ivoire", *item.ProjectLabel)
	assert.Equal(t, 75.0, item.Score)
	assert.Equal(t, 2000, item.Length)
	assert.Equal(t, 500, item.Views30d)
	assert.Equal(t, "2024-01-01", item.Date)
}

func TestSearch_BannerNoMatch(t *testing.T) {
	e := NewEngine(referenceStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-02"), Params{Banner: "source"})
	require.NoError(t, err)

	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 1, got.Pages)
	assert.Empty(t, got.Items)
}

func TestSearch_BannerSubstring(t *testing.T) {
	e := NewEngine(referenceStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-02"), Params{Banner: "bauche"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total, "filter matches as substring of the banner")
}

func multiStore(t *testing.T) *in_mem.InMemStore {
	t.Helper()
	s := in_mem.NewInMemStore()

	var (
		queries     []domain.Query
		articles    []domain.Article
		suggestions []domain.Suggestion
	)
	// 13 suggestions over distinct days with varying score/views/length
	for i := 1; i <= 13; i++ {
		project := "CIV"
		if i%2 == 0 {
			project = "AFR"
		}
		qid := fmt.Sprintf("q%02d", i)
		aid := fmt.Sprintf("a%02d", i)
		queries = append(queries, domain.Query{ID: qid, Project: project, CreatedAt: day(i)})
		articles = append(articles, domain.Article{
			ID:       aid,
			Title:    fmt.Sprintf("Article %02d", i),
			Length:   1000 + i*10,
			Views30d: 100 * i,
			Banners:  []string{"wikifier"},
		})
		suggestions = append(suggestions, domain.Suggestion{
			ID: fmt.Sprintf("s%02d", i), QueryID: qid, ArticleID: aid,
			Score: float64(100 - i), CreatedAt: day(i),
		})
	}
	require.NoError(t, s.SaveQueries(ctx, queries))
	require.NoError(t, s.SaveArticles(ctx, articles))
	require.NoError(t, s.SaveSuggestions(ctx, suggestions))

	require.NoError(t, s.SaveAssignments(ctx, []domain.Assignment{
		{ID: "as1", SuggestionID: "s01", UserID: "u1", Status: domain.StatusDone, CreatedAt: day(1), UpdatedAt: day(1)},
		{ID: "as2", SuggestionID: "s02", UserID: "u1", Status: domain.StatusTodo, CreatedAt: day(2), UpdatedAt: day(2)},
		{ID: "as3", SuggestionID: "s02", UserID: "u2", Status: domain.StatusInProgress, CreatedAt: day(2), UpdatedAt: day(2)},
	}))
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 8, 0, 0, 0, time.UTC)
}

func TestSearch_DefaultSortIsDateDesc(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{})
	require.NoError(t, err)

	require.Equal(t, 13, got.Total)
	assert.Equal(t, "s13", got.Items[0].SuggestionID)
	assert.Equal(t, "s01", got.Items[12].SuggestionID)
}

func TestSearch_SortKeys(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())
	w := win("2024-01-01", "2024-01-31")

	tests := []struct {
		sort      string
		wantFirst string
	}{
		{sort: "date_asc", wantFirst: "s01"},
		{sort: "score_desc", wantFirst: "s01"},
		{sort: "score_asc", wantFirst: "s13"},
		{sort: "views_desc", wantFirst: "s13"},
		{sort: "views_asc", wantFirst: "s01"},
		{sort: "length_desc", wantFirst: "s13"},
		{sort: "length_asc", wantFirst: "s01"},
		{sort: "definitely_not_a_key", wantFirst: "s13"}, // falls back to date_desc
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got, err := e.Search(ctx, w, Params{Sort: tt.sort})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFirst, got.Items[0].SuggestionID)
		})
	}
}

func TestSearch_StableTiebreak(t *testing.T) {
	e := newEngine(t, func(s *in_mem.InMemStore) {
		d := day(1)
		require.NoError(t, s.SaveQueries(ctx, []domain.Query{{ID: "q1", CreatedAt: d}}))
		require.NoError(t, s.SaveArticles(ctx, []domain.Article{
			{ID: "a1", Title: "Alpha"}, {ID: "a2", Title: "Beta"},
		}))
		// identical creation time and score
		require.NoError(t, s.SaveSuggestions(ctx, []domain.Suggestion{
			{ID: "s2", QueryID: "q1", ArticleID: "a2", Score: 10, CreatedAt: d},
			{ID: "s1", QueryID: "q1", ArticleID: "a1", Score: 10, CreatedAt: d},
		}))
	})

	for i := 0; i < 3; i++ {
		got, err := e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{Sort: "score_desc"})
		require.NoError(t, err)
		assert.Equal(t, "s1", got.Items[0].SuggestionID, "suggestion id breaks the tie deterministically")
		assert.Equal(t, "s2", got.Items[1].SuggestionID)
	}
}

func TestSearch_PageClampedPastEnd(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{Page: 5, Size: 20})
	require.NoError(t, err)

	assert.Equal(t, 13, got.Total)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.Pages)
	assert.Len(t, got.Items, 13)
}

func TestSearch_Pagination(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())
	w := win("2024-01-01", "2024-01-31")

	sum := 0
	first, err := e.Search(ctx, w, Params{Size: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Pages)

	for p := 1; p <= first.Pages; p++ {
		page, err := e.Search(ctx, w, Params{Page: p, Size: 5})
		require.NoError(t, err)
		sum += len(page.Items)
	}
	assert.Equal(t, first.Total, sum)
}

func TestSearch_TextFilter(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{Text: "article 0"})
	require.NoError(t, err)
	assert.Equal(t, 9, got.Total, "case-insensitive substring on the title")

	got, err = e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{Text: "ARTICLE 13"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
}

func TestSearch_ProjectFilter(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())
	w := win("2024-01-01", "2024-01-31")

	got, err := e.Search(ctx, w, Params{Project: "civ"})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Total, "project codes are uppercased before matching")

	// an unknown code is ignored, not rejected
	got, err = e.Search(ctx, w, Params{Project: "NOPE"})
	require.NoError(t, err)
	assert.Equal(t, 13, got.Total)
}

func TestSearch_StatusFilter(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())
	w := win("2024-01-01", "2024-01-31")

	tests := []struct {
		status string
		want   int
	}{
		{status: "", want: 13},
		{status: "done", want: 1},
		{status: "in_progress", want: 1}, // s02 resolves to in_progress over todo
		{status: "todo", want: 0},
		{status: "unassigned", want: 11},
		{status: "bogus", want: 0}, // unrecognized value matches nothing
	}
	for _, tt := range tests {
		t.Run("status="+tt.status, func(t *testing.T) {
			got, err := e.Search(ctx, w, Params{Status: tt.status})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Total)
			for _, item := range got.Items {
				if tt.status != "" {
					assert.Equal(t, tt.status, item.Status)
				}
			}
		})
	}
}

func TestSearch_WindowExcludesSuggestions(t *testing.T) {
	e := NewEngine(multiStore(t), catalog.Default())

	got, err := e.Search(ctx, win("2024-01-05", "2024-01-07"), Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Total)
}

func TestSearch_NoProjectLabelForUnknownCode(t *testing.T) {
	e := newEngine(t, func(s *in_mem.InMemStore) {
		d := day(1)
		require.NoError(t, s.SaveQueries(ctx, []domain.Query{{ID: "q1", Project: "", CreatedAt: d}}))
		require.NoError(t, s.SaveArticles(ctx, []domain.Article{{ID: "a1", Title: "Orphan"}}))
		require.NoError(t, s.SaveSuggestions(ctx, []domain.Suggestion{
			{ID: "s1", QueryID: "q1", ArticleID: "a1", CreatedAt: d},
		}))
	})

	got, err := e.Search(ctx, win("2024-01-01", "2024-01-31"), Params{})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Empty(t, got.Items[0].Project)
	assert.Nil(t, got.Items[0].ProjectLabel)
	assert.Equal(t, "unassigned", got.Items[0].Status)
	assert.Zero(t, got.Items[0].Score)
	assert.Zero(t, got.Items[0].Length)
	assert.Zero(t, got.Items[0].Views30d)
}

func TestBannerMatch(t *testing.T) {
	assert.True(t, bannerMatch([]string{"sources manquantes"}, "manquante"))
	assert.True(t, bannerMatch([]string{"Wikifier"}, "wiki"))
	assert.False(t, bannerMatch(nil, "wiki"), "no banners never match an active filter")
	assert.False(t, bannerMatch([]string{""}, "wiki"))
	assert.True(t, bannerMatch(nil, ""), "no filter keeps everything")
}
