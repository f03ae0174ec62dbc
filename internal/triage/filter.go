package triage

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// PriorityAll disables the priority constraint.
const PriorityAll Priority = "all"

// Visibility restricts a view by read and starred state.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityUnread  Visibility = "unread"
	VisibilityRead    Visibility = "read"
	VisibilityStarred Visibility = "starred"
)

// Visibilities lists the options in menu order.
var Visibilities = []Visibility{VisibilityAll, VisibilityUnread, VisibilityRead, VisibilityStarred}

// ParseVisibility parses a visibility option.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VisibilityAll, VisibilityUnread, VisibilityRead, VisibilityStarred:
		return v, nil
	}
	return "", fmt.Errorf("unknown visibility %q", s)
}

// ParsePriorityFilter is ParsePriority that also accepts "all".
func ParsePriorityFilter(s string) (Priority, error) {
	if strings.EqualFold(strings.TrimSpace(s), string(PriorityAll)) {
		return PriorityAll, nil
	}
	return ParsePriority(s)
}

// Criteria selects which records a view shows.
type Criteria struct {
	MaxAgeDays int
	Priority   Priority
	Visibility Visibility
}

// DefaultCriteria is the initial filter: the last week, everything.
func DefaultCriteria() Criteria {
	return Criteria{
		MaxAgeDays: 7,
		Priority:   PriorityAll,
		Visibility: VisibilityAll,
	}
}

// AgePresets are the selectable age windows, in days.
var AgePresets = []int{1, 7, 30, 90, 365}

// NextAgePreset returns the preset after days, wrapping around. Values that
// are not presets move to the first preset larger than them.
func NextAgePreset(days int) int {
	for _, p := range AgePresets {
		if p > days {
			return p
		}
	}
	return AgePresets[0]
}

// Validate reports whether every field holds a known value.
func (c Criteria) Validate() error {
	if c.MaxAgeDays < 0 {
		return fmt.Errorf("max age must not be negative, got %d", c.MaxAgeDays)
	}
	if c.Priority != PriorityAll && !slices.Contains(Priorities, c.Priority) {
		return fmt.Errorf("unknown priority %q", c.Priority)
	}
	if !slices.Contains(Visibilities, c.Visibility) {
		return fmt.Errorf("unknown visibility %q", c.Visibility)
	}
	return nil
}

// Cutoff returns the oldest date the criteria keep, relative to now.
func (c Criteria) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -max(c.MaxAgeDays, 0))
}

// Match reports whether r satisfies the criteria, relative to now.
func (c Criteria) Match(r Record, now time.Time) bool {
	if r.Date.Before(c.Cutoff(now)) {
		return false
	}
	if c.Priority != "" && c.Priority != PriorityAll && r.Priority != c.Priority {
		return false
	}
	switch c.Visibility {
	case VisibilityUnread:
		return !r.IsRead
	case VisibilityRead:
		return r.IsRead
	case VisibilityStarred:
		return r.IsStarred
	default:
		return true
	}
}

// Filter returns the records matching c, highest priority first and most
// recent first within a tier. Ties keep their input order. records is not
// modified.
func Filter(records []Record, c Criteria, now time.Time) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r, now) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// Compare orders records by priority rank descending, then date descending.
func Compare(a, b Record) int {
	if c := cmp.Compare(b.Priority.Rank(), a.Priority.Rank()); c != 0 {
		return c
	}
	return b.Date.Compare(a.Date)
}

// Stats are counts over a whole working set.
type Stats struct {
	Total     int `json:"total"`
	Unread    int `json:"unread"`
	Important int `json:"important"`
	Spam      int `json:"spam"`
}

// Aggregate counts records. Important counts high priority records and Spam
// counts spam priority records.
func Aggregate(records []Record) Stats {
	stats := Stats{Total: len(records)}
	for _, r := range records {
		if !r.IsRead {
			stats.Unread++
		}
		switch r.Priority {
		case PriorityHigh:
			stats.Important++
		case PrioritySpam:
			stats.Spam++
		}
	}
	return stats
}

// FindByID returns the record with the given id.
func FindByID(records []Record, id string) (Record, bool) {
	i := slices.IndexFunc(records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return Record{}, false
	}
	return records[i], true
}
