package domain

import (
	"time"
)

const DefaultWiki = "frwiki"

// Query is a saved search that produced suggestions. Immutable after
// creation; re-running a search creates a new Query.
type Query struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Project   string    `json:"project,omitempty"` // catalog code, empty when the search had no project
	CreatedAt time.Time `json:"createdAt"`
}

// Article is a crawled wiki page snapshot, refreshed when the same
// title/wiki pair is observed again.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Wiki          string    `json:"wiki"`
	PageID        string    `json:"pageId,omitempty"`
	Length        int       `json:"length"`
	Views30d      int       `json:"views30d"`
	HasReferences bool      `json:"hasReferences"`
	StubLike      bool      `json:"stubLike"`
	Banners       []string  `json:"banners"` // maintenance template codes, free-form, possibly empty
	LastSeen      time.Time `json:"lastSeen,omitempty"`
}

// Suggestion links one Query to one Article. Score and reasons are a
// snapshot taken at creation time.
type Suggestion struct {
	ID        string            `json:"id"`
	QueryID   string            `json:"queryId"`
	ArticleID string            `json:"articleId"`
	Score     float64           `json:"score"`
	Reasons   map[string]string `json:"reasons,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     string    `json:"roles,omitempty"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// Assignment is the only mutable record: status and updated_at change as
// work progresses. A suggestion may carry zero, one or several of them.
type Assignment struct {
	ID           string    `json:"id"`
	SuggestionID string    `json:"suggestionId"`
	UserID       string    `json:"userId"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
