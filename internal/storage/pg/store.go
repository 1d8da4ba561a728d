package pg

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gawa-wiki/gawa/internal/domain"
)

// psql builds every statement with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements storage.Store on a pgx connection pool.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) QueriesCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Query, error) {
	sql, args, err := psql.
		Select("id", "label", "COALESCE(project, '')", "created_at").
		From("queries").
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": end}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build queries query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	defer rows.Close()

	var out []domain.Query
	for rows.Next() {
		var q domain.Query
		if err := rows.Scan(&q.ID, &q.Label, &q.Project, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) SuggestionsCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Suggestion, error) {
	sql, args, err := psql.
		Select("id", "query_id", "article_id", "score", "reasons", "created_at").
		From("suggestions").
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": end}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestions query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	defer rows.Close()

	var out []domain.Suggestion
	for rows.Next() {
		var sug domain.Suggestion
		if err := rows.Scan(&sug.ID, &sug.QueryID, &sug.ArticleID, &sug.Score, &sug.Reasons, &sug.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		out = append(out, sug)
	}
	return out, rows.Err()
}

func (s *Store) AssignmentsCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Assignment, error) {
	return s.assignmentsBetween(ctx, "created_at", from, end)
}

func (s *Store) AssignmentsUpdatedBetween(ctx context.Context, from, end time.Time) ([]domain.Assignment, error) {
	return s.assignmentsBetween(ctx, "updated_at", from, end)
}

func (s *Store) assignmentsBetween(ctx context.Context, column string, from, end time.Time) ([]domain.Assignment, error) {
	sql, args, err := psql.
		Select("id", "suggestion_id", "user_id", "status", "created_at", "updated_at").
		From("assignments").
		Where(sq.GtOrEq{column: from}).
		Where(sq.Lt{column: end}).
		OrderBy(column, "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignments query: %w", err)
	}
	return s.scanAssignments(ctx, sql, args)
}

func (s *Store) AssignmentsBySuggestion(ctx context.Context, suggestionIDs []string) ([]domain.Assignment, error) {
	if len(suggestionIDs) == 0 {
		return nil, nil
	}

	sql, args, err := psql.
		Select("id", "suggestion_id", "user_id", "status", "created_at", "updated_at").
		From("assignments").
		Where(sq.Eq{"suggestion_id": suggestionIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build assignments query: %w", err)
	}
	return s.scanAssignments(ctx, sql, args)
}

func (s *Store) scanAssignments(ctx context.Context, sql string, args []interface{}) ([]domain.Assignment, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.SuggestionID, &a.UserID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ArticlesByID(ctx context.Context, ids []string) (map[string]domain.Article, error) {
	out := make(map[string]domain.Article, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := psql.
		Select("id", "title", "wiki", "COALESCE(page_id, '')", "length", "views_30d",
			"has_references", "stub_like", "banners", "last_seen").
		From("articles").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build articles query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			art      domain.Article
			lastSeen *time.Time
		)
		if err := rows.Scan(&art.ID, &art.Title, &art.Wiki, &art.PageID, &art.Length, &art.Views30d,
			&art.HasReferences, &art.StubLike, &art.Banners, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		if lastSeen != nil {
			art.LastSeen = *lastSeen
		}
		out[art.ID] = art
	}
	return out, rows.Err()
}

func (s *Store) QueriesByID(ctx context.Context, ids []string) (map[string]domain.Query, error) {
	out := make(map[string]domain.Query, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := psql.
		Select("id", "label", "COALESCE(project, '')", "created_at").
		From("queries").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build queries query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q domain.Query
		if err := rows.Scan(&q.ID, &q.Label, &q.Project, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		out[q.ID] = q
	}
	return out, rows.Err()
}

func (s *Store) SaveQueries(ctx context.Context, queries []domain.Query) error {
	if len(queries) == 0 {
		return nil
	}

	b := psql.
		Insert("queries").
		Columns("id", "label", "project", "created_at").
		Suffix("ON CONFLICT (id) DO NOTHING")
	for _, q := range queries {
		b = b.Values(q.ID, q.Label, nullable(q.Project), q.CreatedAt)
	}
	return s.exec(ctx, b, "queries")
}

func (s *Store) SaveArticles(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	b := psql.
		Insert("articles").
		Columns("id", "title", "wiki", "page_id", "length", "views_30d",
			"has_references", "stub_like", "banners", "last_seen").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			length = EXCLUDED.length,
			views_30d = EXCLUDED.views_30d,
			has_references = EXCLUDED.has_references,
			stub_like = EXCLUDED.stub_like,
			banners = EXCLUDED.banners,
			last_seen = EXCLUDED.last_seen`)
	for _, a := range articles {
		banners := a.Banners
		if banners == nil {
			banners = []string{}
		}
		b = b.Values(a.ID, a.Title, a.Wiki, nullable(a.PageID), a.Length, a.Views30d,
			a.HasReferences, a.StubLike, banners, a.LastSeen)
	}
	return s.exec(ctx, b, "articles")
}

func (s *Store) SaveSuggestions(ctx context.Context, suggestions []domain.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	b := psql.
		Insert("suggestions").
		Columns("id", "query_id", "article_id", "score", "reasons", "created_at").
		Suffix("ON CONFLICT (id) DO NOTHING")
	for _, sug := range suggestions {
		reasons := sug.Reasons
		if reasons == nil {
			reasons = map[string]string{}
		}
		b = b.Values(sug.ID, sug.QueryID, sug.ArticleID, sug.Score, reasons, sug.CreatedAt)
	}
	return s.exec(ctx, b, "suggestions")
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}

	b := psql.
		Insert("users").
		Columns("id", "username", "roles", "last_login").
		Suffix("ON CONFLICT (id) DO NOTHING")
	for _, u := range users {
		b = b.Values(u.ID, u.Username, nullable(u.Roles), u.LastLogin)
	}
	return s.exec(ctx, b, "users")
}

func (s *Store) SaveAssignments(ctx context.Context, assignments []domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	// assignments are the one mutable record: re-saving transitions status
	b := psql.
		Insert("assignments").
		Columns("id", "suggestion_id", "user_id", "status", "created_at", "updated_at").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`)
	for _, a := range assignments {
		b = b.Values(a.ID, a.SuggestionID, a.UserID, string(a.Status), a.CreatedAt, a.UpdatedAt)
	}
	return s.exec(ctx, b, "assignments")
}

func (s *Store) exec(ctx context.Context, b sq.InsertBuilder, table string) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s insert: %w", table, err)
	}
	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
