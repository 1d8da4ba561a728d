// Package seed fills an empty store with a demo dataset: thirty days of
// queries cycling through the first catalog projects, five suggestions
// per day with varied banners, and a sprinkle of assignments.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gawa-wiki/gawa/internal/catalog"
	"github.com/gawa-wiki/gawa/internal/domain"
	"github.com/gawa-wiki/gawa/internal/storage"
)

const (
	days              = 30
	suggestionsPerDay = 5
	userCount         = 6
)

// IfEmpty seeds the store unless it already holds any query.
func IfEmpty(ctx context.Context, store storage.Store, cat *catalog.Catalog, today time.Time) (bool, error) {
	existing, err := store.QueriesCreatedBetween(ctx, time.Unix(0, 0).UTC(), today.AddDate(0, 0, 1))
	if err != nil {
		return false, fmt.Errorf("failed to check for existing data: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}
	if err := Demo(ctx, store, cat, today); err != nil {
		return false, err
	}
	return true, nil
}

// Demo writes the demo dataset unconditionally.
func Demo(ctx context.Context, store storage.Store, cat *catalog.Catalog, today time.Time) error {
	users := make([]domain.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		users = append(users, domain.User{
			ID:       uuid.NewString(),
			Username: fmt.Sprintf("User%d", i),
		})
	}

	projCycle := cat.Projects()
	if len(projCycle) > userCount {
		projCycle = projCycle[:userCount]
	}

	var (
		queries     []domain.Query
		articles    []domain.Article
		suggestions []domain.Suggestion
		assignments []domain.Assignment
	)

	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		day := base.AddDate(0, 0, -(days - 1 - i))
		proj := projCycle[i%len(projCycle)]

		q := domain.Query{
			ID:        uuid.NewString(),
			Label:     fmt.Sprintf("Auto query %d", i),
			Project:   proj.Code,
			CreatedAt: day,
		}
		queries = append(queries, q)

		for j := 0; j < suggestionsPerDay; j++ {
			var banners []string
			switch j % 3 {
			case 0:
				banners = []string{"wikifier", "sources"}
			case 1:
				banners = []string{"ébauche"}
			default:
				banners = []string{"sources manquantes"}
			}

			art := domain.Article{
				ID:       uuid.NewString(),
				Title:    fmt.Sprintf("Article %d-%d", i, j),
				Wiki:     domain.DefaultWiki,
				Length:   1500 + i*10 + j*3,
				Views30d: 1000 + i*27 + j*11,
				Banners:  banners,
				LastSeen: day,
			}
			articles = append(articles, art)

			sug := domain.Suggestion{
				ID:        uuid.NewString(),
				QueryID:   q.ID,
				ArticleID: art.ID,
				Score:     50 + float64(j) + float64(i)*0.1,
				Reasons:   map[string]string{"note": "seed demo"},
				CreatedAt: day,
			}
			suggestions = append(suggestions, sug)

			// two of five suggestions per day get an assignment
			if j < 2 {
				var st domain.Status
				switch (i + j) % 3 {
				case 0:
					st = domain.StatusDone
				case 1:
					st = domain.StatusInProgress
				default:
					st = domain.StatusTodo
				}
				assignments = append(assignments, domain.Assignment{
					ID:           uuid.NewString(),
					SuggestionID: sug.ID,
					UserID:       users[(i+j)%len(users)].ID,
					Status:       st,
					CreatedAt:    day,
					UpdatedAt:    day,
				})
			}
		}
	}

	if err := store.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := store.SaveQueries(ctx, queries); err != nil {
		return fmt.Errorf("failed to seed queries: %w", err)
	}
	if err := store.SaveArticles(ctx, articles); err != nil {
		return fmt.Errorf("failed to seed articles: %w", err)
	}
	if err := store.SaveSuggestions(ctx, suggestions); err != nil {
		return fmt.Errorf("failed to seed suggestions: %w", err)
	}
	if err := store.SaveAssignments(ctx, assignments); err != nil {
		return fmt.Errorf("failed to seed assignments: %w", err)
	}
	return nil
}
