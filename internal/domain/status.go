package domain

import "strings"

// Status is the workflow state of an assignment. StatusUnassigned is never
// stored; it only exists as the resolved state of a suggestion with no
// assignment rows.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusUnassigned Status = "unassigned"
)

// statusWeights orders statuses for resolution: the highest weight wins
// when a suggestion carries several assignments. Unknown or empty statuses
// weigh 0 and therefore never displace a real one.
var statusWeights = map[Status]int{
	StatusDone:       3,
	StatusInProgress: 2,
	StatusTodo:       1,
}

func (s Status) Weight() int {
	return statusWeights[s]
}

// ParseStatus normalizes a raw string into a Status. The bool reports
// whether the value is one of the three stored statuses or the unassigned
// sentinel.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusUnassigned:
		return s, true
	}
	return s, false
}

// BestStatus folds one more observed status into the current best. Designed
// to be applied incrementally while join rows stream in any order: start
// from StatusUnassigned and fold each assignment's status. On equal weight
// the first seen wins.
func BestStatus(current, candidate Status) Status {
	if candidate.Weight() > current.Weight() {
		return candidate
	}
	return current
}

// ResolveStatus reduces a multiset of assignment statuses to the single
// representative one. Empty input resolves to StatusUnassigned.
func ResolveStatus(statuses []Status) Status {
	resolved := StatusUnassigned
	for _, s := range statuses {
		resolved = BestStatus(resolved, s)
	}
	return resolved
}
