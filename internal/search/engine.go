// Package search joins suggestions to their article, query and
// assignments inside a date window, collapses the one-row-per-assignment
// join down to one result per suggestion, applies the request filters and
// returns a sorted page.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gawa-wiki/gawa/internal/catalog"
	"github.com/gawa-wiki/gawa/internal/domain"
	"github.com/gawa-wiki/gawa/internal/storage"
	"github.com/gawa-wiki/gawa/internal/window"
	"github.com/gawa-wiki/gawa/pkg/pagination"
)

// Params are the raw search inputs. Everything is normalized here:
// unknown project codes and sort keys are ignored, page and size are
// clamped, so Search never rejects a request.
type Params struct {
	Text    string
	Project string
	Banner  string
	Status  string
	Sort    string
	Page    int
	Size    int
}

// Item is one deduplicated search result.
type Item struct {
	SuggestionID string  `json:"suggestion_id"`
	Title        string  `json:"title"`
	Project      string  `json:"project"`
	ProjectLabel *string `json:"project_label"`
	Status       string  `json:"status"`
	Score        float64 `json:"score"`
	Length       int     `json:"length"`
	Views30d     int     `json:"views_30d"`
	Date         string  `json:"date"`
}

type Result = pagination.OffsetResult[Item]

type Engine struct {
	store   storage.RecordStore
	catalog *catalog.Catalog
}

func NewEngine(store storage.RecordStore, cat *catalog.Catalog) *Engine {
	return &Engine{store: store, catalog: cat}
}

// row keeps the sortable fields next to the shaped item until the final
// ordering pass.
type row struct {
	item      Item
	createdAt time.Time
}

func (e *Engine) Search(ctx context.Context, w window.Window, p Params) (*Result, error) {
	text := strings.ToLower(strings.TrimSpace(p.Text))
	banner := strings.ToLower(strings.TrimSpace(p.Banner))
	statusFilter := strings.ToLower(strings.TrimSpace(p.Status))
	sortKey := domain.ParseSortKey(p.Sort)

	project := strings.ToUpper(strings.TrimSpace(p.Project))
	if project != "" && !e.catalog.HasProject(project) {
		// an unrecognized code is ignored, not rejected
		project = ""
	}

	req := pagination.OffsetRequest{Page: p.Page, Size: p.Size}
	req.Normalize()

	suggestions, err := e.store.SuggestionsCreatedBetween(ctx, w.From, w.EndExclusive())
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}

	queryIDs := make([]string, 0, len(suggestions))
	articleIDs := make([]string, 0, len(suggestions))
	suggestionIDs := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		queryIDs = append(queryIDs, s.QueryID)
		articleIDs = append(articleIDs, s.ArticleID)
		suggestionIDs = append(suggestionIDs, s.ID)
	}

	queries, err := e.store.QueriesByID(ctx, queryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	articles, err := e.store.ArticlesByID(ctx, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	assignments, err := e.store.AssignmentsBySuggestion(ctx, suggestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}

	// fold assignment rows into one resolved status per suggestion; rows
	// may arrive in any order
	resolved := make(map[string]domain.Status, len(suggestions))
	for _, a := range assignments {
		current, ok := resolved[a.SuggestionID]
		if !ok {
			current = domain.StatusUnassigned
		}
		resolved[a.SuggestionID] = domain.BestStatus(current, a.Status)
	}

	rows := make([]row, 0, len(suggestions))
	for _, s := range suggestions {
		art, ok := articles[s.ArticleID]
		if !ok {
			continue
		}
		q, ok := queries[s.QueryID]
		if !ok {
			continue
		}

		if project != "" && q.Project != project {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(art.Title), text) {
			continue
		}
		if !bannerMatch(art.Banners, banner) {
			continue
		}

		status, ok := resolved[s.ID]
		if !ok {
			status = domain.StatusUnassigned
		}
		if statusFilter != "" && string(status) != statusFilter {
			continue
		}

		var label *string
		if l, ok := e.catalog.ProjectLabel(q.Project); ok {
			label = &l
		}

		rows = append(rows, row{
			item: Item{
				SuggestionID: s.ID,
				Title:        art.Title,
				Project:      q.Project,
				ProjectLabel: label,
				Status:       string(status),
				Score:        s.Score,
				Length:       art.Length,
				Views30d:     art.Views30d,
				Date:         s.CreatedAt.UTC().Format(window.ISO),
			},
			createdAt: s.CreatedAt,
		})
	}

	sortRows(rows, sortKey)

	items := make([]Item, len(rows))
	for i, r := range rows {
		items[i] = r.item
	}
	return pagination.NewOffsetResult(items, req.Page, req.Size), nil
}

// bannerMatch keeps articles with at least one banner the filter string is
// a case-insensitive substring of (or a prefix of). With an active filter,
// an article without banners never matches.
func bannerMatch(banners []string, filter string) bool {
	if filter == "" {
		return true
	}
	for _, b := range banners {
		if b == "" {
			continue
		}
		lb := strings.ToLower(b)
		if strings.Contains(lb, filter) || strings.HasPrefix(lb, filter) {
			return true
		}
	}
	return false
}

// sortRows orders by the requested key with suggestion id as the stable
// tiebreak, keeping pagination deterministic across repeated calls.
func sortRows(rows []row, key domain.SortKey) {
	less := func(i, j row) bool { return i.createdAt.After(j.createdAt) }

	switch key {
	case domain.SortDateAsc:
		less = func(i, j row) bool { return i.createdAt.Before(j.createdAt) }
	case domain.SortScoreDesc:
		less = func(i, j row) bool { return i.item.Score > j.item.Score }
	case domain.SortScoreAsc:
		less = func(i, j row) bool { return i.item.Score < j.item.Score }
	case domain.SortViewsDesc:
		less = func(i, j row) bool { return i.item.Views30d > j.item.Views30d }
	case domain.SortViewsAsc:
		less = func(i, j row) bool { return i.item.Views30d < j.item.Views30d }
	case domain.SortLengthDesc:
		less = func(i, j row) bool { return i.item.Length > j.item.Length }
	case domain.SortLengthAsc:
		less = func(i, j row) bool { return i.item.Length < j.item.Length }
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.item.SuggestionID < b.item.SuggestionID
	})
}
