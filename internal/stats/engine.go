// Package stats computes the windowed aggregates behind the statistics
// dashboard: overview counts, per-day time series, top projects and
// quality metrics. Every operation is read-only and tolerant of empty
// windows.
package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gawa-wiki/gawa/internal/apperr"
	"github.com/gawa-wiki/gawa/internal/domain"
	"github.com/gawa-wiki/gawa/internal/storage"
	"github.com/gawa-wiki/gawa/internal/window"
)

// NoProjectBucket collects queries saved without a project code.
const NoProjectBucket = "(sans projet)"

const (
	TopLimitDefault = 10
	TopLimitMax     = 50
)

type Metric string

const (
	MetricQueries      Metric = "queries"
	MetricSuggestions  Metric = "suggestions"
	MetricAssignments  Metric = "assignments"
	MetricContributors Metric = "contributors"
)

// ParseMetric is the one place where bad input is rejected instead of
// normalized: an unknown metric name surfaces as a validation error.
func ParseMetric(raw string) (Metric, error) {
	m := Metric(raw)
	switch m {
	case MetricQueries, MetricSuggestions, MetricAssignments, MetricContributors:
		return m, nil
	}
	return "", apperr.NewValidation("invalid metric")
}

type Engine struct {
	store storage.RecordStore
}

func NewEngine(store storage.RecordStore) *Engine {
	return &Engine{store: store}
}

type OverviewCounts struct {
	Queries      int `json:"queries"`
	Suggestions  int `json:"suggestions"`
	Assignments  int `json:"assignments"`
	Contributors int `json:"contributors"`
}

// OverviewRate is a placeholder block: the median resolution time and the
// progress percentage are computed by an external analytics path.
type OverviewRate struct {
	AssignToResolveMedianDays float64 `json:"assign_to_resolve_median_days"`
	ProgressPercent           float64 `json:"progress_percent"`
}

type Overview struct {
	Counts OverviewCounts `json:"counts"`
	Rate   OverviewRate   `json:"rate"`
}

// Overview counts queries, suggestions and assignments created in the
// window, plus distinct users referenced by those assignments.
func (e *Engine) Overview(ctx context.Context, w window.Window) (*Overview, error) {
	from, end := w.From, w.EndExclusive()

	queries, err := e.store.QueriesCreatedBetween(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count queries: %w", err)
	}
	suggestions, err := e.store.SuggestionsCreatedBetween(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count suggestions: %w", err)
	}
	assignments, err := e.store.AssignmentsCreatedBetween(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	contributors := make(map[string]struct{})
	for _, a := range assignments {
		contributors[a.UserID] = struct{}{}
	}

	return &Overview{
		Counts: OverviewCounts{
			Queries:      len(queries),
			Suggestions:  len(suggestions),
			Assignments:  len(assignments),
			Contributors: len(contributors),
		},
		Rate: OverviewRate{
			AssignToResolveMedianDays: 3.4,
			ProgressPercent:           62.1,
		},
	}, nil
}

type Point struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

type Timeseries struct {
	Metric Metric  `json:"metric"`
	Points []Point `json:"points"`
}

// Timeseries returns one point per day holding at least one matching
// record; silent days are omitted, callers fill gaps themselves.
func (e *Engine) Timeseries(ctx context.Context, w window.Window, metric Metric) (*Timeseries, error) {
	from, end := w.From, w.EndExclusive()

	counts := make(map[string]int)

	switch metric {
	case MetricQueries:
		queries, err := e.store.QueriesCreatedBetween(ctx, from, end)
		if err != nil {
			return nil, fmt.Errorf("failed to read queries: %w", err)
		}
		for _, q := range queries {
			counts[dayKey(q.CreatedAt)]++
		}
	case MetricSuggestions:
		suggestions, err := e.store.SuggestionsCreatedBetween(ctx, from, end)
		if err != nil {
			return nil, fmt.Errorf("failed to read suggestions: %w", err)
		}
		for _, s := range suggestions {
			counts[dayKey(s.CreatedAt)]++
		}
	case MetricAssignments:
		assignments, err := e.store.AssignmentsCreatedBetween(ctx, from, end)
		if err != nil {
			return nil, fmt.Errorf("failed to read assignments: %w", err)
		}
		for _, a := range assignments {
			counts[dayKey(a.CreatedAt)]++
		}
	case MetricContributors:
		assignments, err := e.store.AssignmentsCreatedBetween(ctx, from, end)
		if err != nil {
			return nil, fmt.Errorf("failed to read assignments: %w", err)
		}
		perDay := make(map[string]map[string]struct{})
		for _, a := range assignments {
			day := dayKey(a.CreatedAt)
			if perDay[day] == nil {
				perDay[day] = make(map[string]struct{})
			}
			perDay[day][a.UserID] = struct{}{}
		}
		for day, users := range perDay {
			counts[day] = len(users)
		}
	default:
		return nil, apperr.NewValidation("invalid metric")
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]Point, 0, len(days))
	for _, day := range days {
		points = append(points, Point{Day: day, Value: counts[day]})
	}

	return &Timeseries{Metric: metric, Points: points}, nil
}

type TopItem struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Top struct {
	Dimension string    `json:"dimension"`
	Items     []TopItem `json:"items"`
}

// TopProjects counts in-window queries per project code and returns the
// top N, ties broken by first-encountered order. Queries without a
// project land in the NoProjectBucket.
func (e *Engine) TopProjects(ctx context.Context, w window.Window, limit int) (*Top, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > TopLimitMax {
		limit = TopLimitMax
	}

	queries, err := e.store.QueriesCreatedBetween(ctx, w.From, w.EndExclusive())
	if err != nil {
		return nil, fmt.Errorf("failed to read queries: %w", err)
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, q := range queries {
		label := q.Project
		if label == "" {
			label = NoProjectBucket
		}
		if _, ok := counts[label]; !ok {
			firstSeen[label] = i
		}
		counts[label]++
	}

	items := make([]TopItem, 0, len(counts))
	for label, value := range counts {
		items = append(items, TopItem{Label: label, Value: value})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return firstSeen[items[i].Label] < firstSeen[items[j].Label]
	})
	if len(items) > limit {
		items = items[:limit]
	}

	return &Top{Dimension: "project", Items: items}, nil
}

type StatusBreakdown struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type ContentQuality struct {
	LengthAvg   int `json:"length_avg"`
	Views30dSum int `json:"views_30d_sum"`
}

type Quality struct {
	Status  StatusBreakdown `json:"status"`
	Content ContentQuality  `json:"content"`
}

// Quality buckets assignments by their update timestamp, deliberately not
// by creation: this answers "status changes observed in-window", while
// search answers "current status of in-window suggestions". The content
// block averages article length and sums 30-day views over suggestions
// created in the window.
func (e *Engine) Quality(ctx context.Context, w window.Window) (*Quality, error) {
	from, end := w.From, w.EndExclusive()

	assignments, err := e.store.AssignmentsUpdatedBetween(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to read assignments: %w", err)
	}

	// resolve one status per suggestion across its in-window rows, then
	// count suggestions; a suggestion touched by both a todo and a done
	// assignment counts once, as done
	resolved := make(map[string]domain.Status)
	for _, a := range assignments {
		current, ok := resolved[a.SuggestionID]
		if !ok {
			current = domain.StatusUnassigned
		}
		resolved[a.SuggestionID] = domain.BestStatus(current, a.Status)
	}

	var breakdown StatusBreakdown
	for _, st := range resolved {
		switch st {
		case domain.StatusInProgress:
			breakdown.InProgress++
		case domain.StatusDone:
			breakdown.Done++
		default:
			// every group has at least one row, so anything left counts
			// as todo, matching the legacy distribution's default
			breakdown.Todo++
		}
	}

	suggestions, err := e.store.SuggestionsCreatedBetween(ctx, from, end)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}

	articleIDs := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		articleIDs = append(articleIDs, s.ArticleID)
	}
	articles, err := e.store.ArticlesByID(ctx, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}

	var lengthSum, views, joined int
	for _, s := range suggestions {
		art, ok := articles[s.ArticleID]
		if !ok {
			continue
		}
		joined++
		lengthSum += art.Length
		views += art.Views30d
	}

	content := ContentQuality{Views30dSum: views}
	if joined > 0 {
		content.LengthAvg = lengthSum / joined
	}

	return &Quality{Status: breakdown, Content: content}, nil
}

func dayKey(ts time.Time) string {
	return ts.UTC().Format(window.ISO)
}
