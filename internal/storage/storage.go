// Package storage defines the record-store contracts the stats and search
// engines consume. Implementations only answer flat equality/range
// predicates; all joining, deduplication and aggregation logic lives in
// the engines so every backend behaves identically.
package storage

import (
	"context"
	"time"

	"github.com/gawa-wiki/gawa/internal/domain"
)

// RecordStore is the read side. All "Between" methods take a half-open
// [from, end) interval produced by window.Window.
type RecordStore interface {
	QueriesCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Query, error)
	SuggestionsCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Suggestion, error)
	AssignmentsCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Assignment, error)
	AssignmentsUpdatedBetween(ctx context.Context, from, end time.Time) ([]domain.Assignment, error)

	// AssignmentsBySuggestion returns all assignment rows referencing any of
	// the given suggestions, in no particular order.
	AssignmentsBySuggestion(ctx context.Context, suggestionIDs []string) ([]domain.Assignment, error)

	ArticlesByID(ctx context.Context, ids []string) (map[string]domain.Article, error)
	QueriesByID(ctx context.Context, ids []string) (map[string]domain.Query, error)
}

// Storer is the write side, used by the seeder and import paths. The
// engines themselves never write.
type Storer interface {
	SaveQueries(ctx context.Context, queries []domain.Query) error
	SaveArticles(ctx context.Context, articles []domain.Article) error
	SaveSuggestions(ctx context.Context, suggestions []domain.Suggestion) error
	SaveUsers(ctx context.Context, users []domain.User) error
	SaveAssignments(ctx context.Context, assignments []domain.Assignment) error
}

// Store combines both sides; every backend implements it.
type Store interface {
	RecordStore
	Storer
}

type Type string

const (
	PG     Type = "pg"
	SQLite Type = "sqlite"
	InMem  Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
