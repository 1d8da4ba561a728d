// Package sqlite backs the record store with an embedded SQLite file,
// the deployment the system historically ran on. Timestamps are stored
// as unix seconds so range predicates stay plain integer comparisons;
// banner and reason sets are stored as JSON text.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gawa-wiki/gawa/internal/domain"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and bootstraps the schema.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		project TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_queries_created ON queries(created_at);

	CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		wiki TEXT NOT NULL DEFAULT 'frwiki',
		page_id TEXT NOT NULL DEFAULT '',
		length INTEGER NOT NULL DEFAULT 0,
		views_30d INTEGER NOT NULL DEFAULT 0,
		has_references INTEGER NOT NULL DEFAULT 0,
		stub_like INTEGER NOT NULL DEFAULT 0,
		banners TEXT NOT NULL DEFAULT '[]',
		last_seen INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS suggestions (
		id TEXT PRIMARY KEY,
		query_id TEXT NOT NULL,
		article_id TEXT NOT NULL,
		score REAL NOT NULL DEFAULT 0,
		reasons TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL,
		FOREIGN KEY (query_id) REFERENCES queries(id),
		FOREIGN KEY (article_id) REFERENCES articles(id)
	);
	CREATE INDEX IF NOT EXISTS idx_suggestions_created ON suggestions(created_at);
	CREATE INDEX IF NOT EXISTS idx_suggestions_query ON suggestions(query_id);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		roles TEXT NOT NULL DEFAULT '',
		last_login INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		suggestion_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'todo',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY (suggestion_id) REFERENCES suggestions(id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	);
	CREATE INDEX IF NOT EXISTS idx_assignments_suggestion ON assignments(suggestion_id);
	CREATE INDEX IF NOT EXISTS idx_assignments_created ON assignments(created_at);
	CREATE INDEX IF NOT EXISTS idx_assignments_updated ON assignments(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) QueriesCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Query, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, project, created_at
		FROM queries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at, id
	`, from.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	defer rows.Close()

	var out []domain.Query
	for rows.Next() {
		var (
			q       domain.Query
			created int64
		)
		if err := rows.Scan(&q.ID, &q.Label, &q.Project, &created); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		q.CreatedAt = fromUnix(created)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) SuggestionsCreatedBetween(ctx context.Context, from, end time.Time) ([]domain.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query_id, article_id, score, reasons, created_at
		FROM suggestions
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at, id
	`, from.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	defer rows.Close()

	var out []domain.Suggestion
	for rows.Next() {
		var (
			sug     domain.Suggestion
			reasons string
			created int64
		)
		if err := rows.Scan(&sug.ID, &sug.QueryID, &sug.ArticleID, &sug.Score, &reasons, &created); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		if err := json.Unmarshal([]byte(reasons), &sug.Reasons); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasons: %w", err)
		}
		sug.CreatedAt = fromUnix(created)
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
	// column is one of two fixed names, never caller input
	query := fmt.Sprintf(`
		SELECT id, suggestion_id, user_id, status, created_at, updated_at
		FROM assignments
		WHERE %[1]s >= ? AND %[1]s < ?
		ORDER BY %[1]s, id
	`, column)

	rows, err := s.db.QueryContext(ctx, query, from.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (s *Store) AssignmentsBySuggestion(ctx context.Context, suggestionIDs []string) ([]domain.Assignment, error) {
	if len(suggestionIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, suggestion_id, user_id, status, created_at, updated_at
		FROM assignments
		WHERE suggestion_id IN (` + placeholders(len(suggestionIDs)) + `)`

	rows, err := s.db.QueryContext(ctx, query, toArgs(suggestionIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func scanAssignments(rows *sql.Rows) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for rows.Next() {
		var (
			a                domain.Assignment
			status           string
			created, updated int64
		)
		if err := rows.Scan(&a.ID, &a.SuggestionID, &a.UserID, &status, &created, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Status = domain.Status(status)
		a.CreatedAt = fromUnix(created)
		a.UpdatedAt = fromUnix(updated)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ArticlesByID(ctx context.Context, ids []string) (map[string]domain.Article, error) {
	out := make(map[string]domain.Article, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `
		SELECT id, title, wiki, page_id, length, views_30d, has_references, stub_like, banners, last_seen
		FROM articles
		WHERE id IN (` + placeholders(len(ids)) + `)`

	rows, err := s.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			art      domain.Article
			banners  string
			lastSeen int64
		)
		if err := rows.Scan(&art.ID, &art.Title, &art.Wiki, &art.PageID, &art.Length, &art.Views30d,
			&art.HasReferences, &art.StubLike, &banners, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		if err := json.Unmarshal([]byte(banners), &art.Banners); err != nil {
			return nil, fmt.Errorf("failed to unmarshal banners: %w", err)
		}
		if lastSeen != 0 {
			art.LastSeen = fromUnix(lastSeen)
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

	query := `
		SELECT id, label, project, created_at
		FROM queries
		WHERE id IN (` + placeholders(len(ids)) + `)`

	rows, err := s.db.QueryContext(ctx, query, toArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			q       domain.Query
			created int64
		)
		if err := rows.Scan(&q.ID, &q.Label, &q.Project, &created); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		q.CreatedAt = fromUnix(created)
		out[q.ID] = q
	}
	return out, rows.Err()
}

func (s *Store) SaveQueries(ctx context.Context, queries []domain.Query) error {
	return s.inTx(ctx, `
		INSERT INTO queries (id, label, project, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, len(queries), func(stmt *sql.Stmt, i int) error {
		q := queries[i]
		_, err := stmt.ExecContext(ctx, q.ID, q.Label, q.Project, q.CreatedAt.Unix())
		return err
	})
}

func (s *Store) SaveArticles(ctx context.Context, articles []domain.Article) error {
	return s.inTx(ctx, `
		INSERT INTO articles (id, title, wiki, page_id, length, views_30d, has_references, stub_like, banners, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			length = excluded.length,
			views_30d = excluded.views_30d,
			has_references = excluded.has_references,
			stub_like = excluded.stub_like,
			banners = excluded.banners,
			last_seen = excluded.last_seen
	`, len(articles), func(stmt *sql.Stmt, i int) error {
		a := articles[i]
		banners, err := json.Marshal(orEmpty(a.Banners))
		if err != nil {
			return err
		}
		var lastSeen int64
		if !a.LastSeen.IsZero() {
			lastSeen = a.LastSeen.Unix()
		}
		_, err = stmt.ExecContext(ctx, a.ID, a.Title, a.Wiki, a.PageID, a.Length, a.Views30d,
			a.HasReferences, a.StubLike, string(banners), lastSeen)
		return err
	})
}

func (s *Store) SaveSuggestions(ctx context.Context, suggestions []domain.Suggestion) error {
	return s.inTx(ctx, `
		INSERT INTO suggestions (id, query_id, article_id, score, reasons, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, len(suggestions), func(stmt *sql.Stmt, i int) error {
		sug := suggestions[i]
		reasons := sug.Reasons
		if reasons == nil {
			reasons = map[string]string{}
		}
		encoded, err := json.Marshal(reasons)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, sug.ID, sug.QueryID, sug.ArticleID, sug.Score, string(encoded), sug.CreatedAt.Unix())
		return err
	})
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	return s.inTx(ctx, `
		INSERT INTO users (id, username, roles, last_login)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, len(users), func(stmt *sql.Stmt, i int) error {
		u := users[i]
		var lastLogin int64
		if !u.LastLogin.IsZero() {
			lastLogin = u.LastLogin.Unix()
		}
		_, err := stmt.ExecContext(ctx, u.ID, u.Username, u.Roles, lastLogin)
		return err
	})
}

func (s *Store) SaveAssignments(ctx context.Context, assignments []domain.Assignment) error {
	return s.inTx(ctx, `
		INSERT INTO assignments (id, suggestion_id, user_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at
	`, len(assignments), func(stmt *sql.Stmt, i int) error {
		a := assignments[i]
		_, err := stmt.ExecContext(ctx, a.ID, a.SuggestionID, a.UserID, string(a.Status), a.CreatedAt.Unix(), a.UpdatedAt.Unix())
		return err
	})
}

func (s *Store) inTx(ctx context.Context, query string, n int, bind func(stmt *sql.Stmt, i int) error) error {
	if n == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := bind(stmt, i); err != nil {
			return fmt.Errorf("failed to save row: %w", err)
		}
	}
	return tx.Commit()
}

func fromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toArgs(ids []string) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
