package domain

import "strings"

// SortKey selects the ordering of search results.
type SortKey string

const (
	SortDateDesc   SortKey = "date_desc"
	SortDateAsc    SortKey = "date_asc"
	SortScoreDesc  SortKey = "score_desc"
	SortScoreAsc   SortKey = "score_asc"
	SortViewsDesc  SortKey = "views_desc"
	SortViewsAsc   SortKey = "views_asc"
	SortLengthDesc SortKey = "length_desc"
	SortLengthAsc  SortKey = "length_asc"
)

// ParseSortKey falls back to SortDateDesc for anything it does not
// recognize, so a bad sort parameter can never fail a request.
func ParseSortKey(raw string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	switch k {
	case SortDateDesc, SortDateAsc,
		SortScoreDesc, SortScoreAsc,
		SortViewsDesc, SortViewsAsc,
		SortLengthDesc, SortLengthAsc:
		return k
	}
	return SortDateDesc
}
