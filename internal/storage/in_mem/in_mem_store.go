package in_mem

import (
	"context"
	"sync"
	"time"

	"github.com/gawa-wiki/gawa/internal/domain"
)

// InMemStore keeps all records in insertion order behind a RWMutex. Used
// by the engine tests and by demo mode; it implements storage.Store.
type InMemStore struct {
	mu          sync.RWMutex
	queries     []domain.Query
	articles    []domain.Article
	suggestions []domain.Suggestion
	users       []domain.User
	assignments []domain.Assignment
}

func NewInMemStore() *InMemStore {
	return &InMemStore{}
}

func (s *InMemStore) SaveQueries(_ context.Context, queries []domain.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, queries...)
	return nil
}

func (s *InMemStore) SaveArticles(_ context.Context, articles []domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append(s.articles, articles...)
	return nil
}

func (s *InMemStore) SaveSuggestions(_ context.Context, suggestions []domain.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = append(s.suggestions, suggestions...)
	return nil
}

func (s *InMemStore) SaveUsers(_ context.Context, users []domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
	return nil
}

func (s *InMemStore) SaveAssignments(_ context.Context, assignments []domain.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = append(s.assignments, assignments...)
	return nil
}

func (s *InMemStore) QueriesCreatedBetween(_ context.Context, from, end time.Time) ([]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Query
	for _, q := range s.queries {
		if inRange(q.CreatedAt, from, end) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *InMemStore) SuggestionsCreatedBetween(_ context.Context, from, end time.Time) ([]domain.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Suggestion
	for _, sug := range s.suggestions {
		if inRange(sug.CreatedAt, from, end) {
			out = append(out, sug)
		}
	}
	return out, nil
}

func (s *InMemStore) AssignmentsCreatedBetween(_ context.Context, from, end time.Time) ([]domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Assignment
	for _, a := range s.assignments {
		if inRange(a.CreatedAt, from, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *InMemStore) AssignmentsUpdatedBetween(_ context.Context, from, end time.Time) ([]domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Assignment
	for _, a := range s.assignments {
		if inRange(a.UpdatedAt, from, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *InMemStore) AssignmentsBySuggestion(_ context.Context, suggestionIDs []string) ([]domain.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(suggestionIDs))
	for _, id := range suggestionIDs {
		wanted[id] = struct{}{}
	}

	var out []domain.Assignment
	for _, a := range s.assignments {
		if _, ok := wanted[a.SuggestionID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *InMemStore) ArticlesByID(_ context.Context, ids []string) (map[string]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make(map[string]domain.Article, len(ids))
	for _, a := range s.articles {
		if _, ok := wanted[a.ID]; ok {
			out[a.ID] = a
		}
	}
	return out, nil
}

func (s *InMemStore) QueriesByID(_ context.Context, ids []string) (map[string]domain.Query, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make(map[string]domain.Query, len(ids))
	for _, q := range s.queries {
		if _, ok := wanted[q.ID]; ok {
			out[q.ID] = q
		}
	}
	return out, nil
}

func inRange(ts, from, end time.Time) bool {
	return !ts.Before(from) && ts.Before(end)
}
