package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 3, 15, 13, 37, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "both missing defaults to trailing 30 days",
			wantFrom: day(2024, 2, 15),
			wantTo:   day(2024, 3, 15),
		},
		{
			name:     "explicit bounds",
			from:     "2024-01-01",
			to:       "2024-01-31",
			wantFrom: day(2024, 1, 1),
			wantTo:   day(2024, 1, 31),
		},
		{
			name:     "inverted bounds are swapped",
			from:     "2024-01-31",
			to:       "2024-01-01",
			wantFrom: day(2024, 1, 1),
			wantTo:   day(2024, 1, 31),
		},
		{
			name:     "garbage from falls back to default",
			from:     "not-a-date",
			to:       "2024-03-10",
			wantFrom: day(2024, 2, 15),
			wantTo:   day(2024, 3, 10),
		},
		{
			name:     "garbage to falls back to today",
			from:     "2024-03-01",
			to:       "31/01/2024",
			wantFrom: day(2024, 3, 1),
			wantTo:   day(2024, 3, 15),
		},
		{
			name:     "single day window",
			from:     "2024-03-10",
			to:       "2024-03-10",
			wantFrom: day(2024, 3, 10),
			wantTo:   day(2024, 3, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Resolve(tt.from, tt.to, today)
			assert.Equal(t, tt.wantFrom, w.From)
			assert.Equal(t, tt.wantTo, w.To)
			assert.False(t, w.From.After(w.To), "resolved window must never be inverted")
		})
	}
}

// Swapping the two inputs must yield the same resolved interval.
func TestResolve_SymmetryUnderInversion(t *testing.T) {
	a := Resolve("2024-01-05", "2024-02-20", today)
	b := Resolve("2024-02-20", "2024-01-05", today)
	assert.Equal(t, a, b)
}

func TestWindow_EndExclusive(t *testing.T) {
	w := Resolve("2024-01-01", "2024-01-02", today)
	assert.Equal(t, day(2024, 1, 3), w.EndExclusive())

	// any time-of-day on the "to" day is inside the window
	assert.True(t, w.Contains(time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.Contains(day(2024, 1, 3)))
	assert.True(t, w.Contains(day(2024, 1, 1)))
	assert.False(t, w.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)))
}
