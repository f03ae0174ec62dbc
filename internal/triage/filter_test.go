package triage

import (
	"slices"
	"testing"
	"time"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return now.AddDate(0, 0, -n)
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter_EndToEnd(t *testing.T) {
	records := []Record{
		{ID: "low", Priority: PriorityLow, Date: daysAgo(2), IsRead: true},
		{ID: "high", Priority: PriorityHigh, Date: daysAgo(3), IsRead: false},
		{ID: "spam", Priority: PrioritySpam, Date: daysAgo(1), IsRead: true},
	}
	c := Criteria{MaxAgeDays: 30, Priority: PriorityAll, Visibility: VisibilityUnread}

	got := Filter(records, c, now)
	if want := []string{"high"}; !slices.Equal(ids(got), want) {
		t.Errorf("Filter = %v, want %v", ids(got), want)
	}
}

func TestFilter_Sort(t *testing.T) {
	records := []Record{
		{ID: "low-new", Priority: PriorityLow, Date: daysAgo(0)},
		{ID: "high-old", Priority: PriorityHigh, Date: daysAgo(20)},
		{ID: "spam-new", Priority: PrioritySpam, Date: daysAgo(0)},
		{ID: "medium-mid", Priority: PriorityMedium, Date: daysAgo(5)},
		{ID: "high-new", Priority: PriorityHigh, Date: daysAgo(1)},
		{ID: "medium-new", Priority: PriorityMedium, Date: daysAgo(2)},
	}
	c := Criteria{MaxAgeDays: 30, Priority: PriorityAll, Visibility: VisibilityAll}

	got := Filter(records, c, now)
	want := []string{"high-new", "high-old", "medium-new", "medium-mid", "low-new", "spam-new"}
	if !slices.Equal(ids(got), want) {
		t.Errorf("Filter = %v, want %v", ids(got), want)
	}
	if records[0].ID != "low-new" {
		t.Error("Filter reordered its input")
	}
}

func TestFilter_StableTies(t *testing.T) {
	same := daysAgo(1)
	records := []Record{
		{ID: "a", Priority: PriorityMedium, Date: same},
		{ID: "b", Priority: PriorityMedium, Date: same},
		{ID: "c", Priority: PriorityMedium, Date: same},
	}
	got := Filter(records, DefaultCriteria(), now)
	if want := []string{"a", "b", "c"}; !slices.Equal(ids(got), want) {
		t.Errorf("Filter = %v, want %v", ids(got), want)
	}
}

func TestFilter_Criteria(t *testing.T) {
	records := []Record{
		{ID: "fresh-unread", Priority: PriorityHigh, Date: daysAgo(1)},
		{ID: "fresh-read-starred", Priority: PriorityLow, Date: daysAgo(2), IsRead: true, IsStarred: true},
		{ID: "old", Priority: PriorityHigh, Date: daysAgo(40)},
		{ID: "undated", Priority: PriorityMedium},
		{ID: "edge", Priority: PriorityMedium, Date: daysAgo(7)},
	}

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"age window", Criteria{MaxAgeDays: 7, Priority: PriorityAll, Visibility: VisibilityAll},
			[]string{"fresh-unread", "edge", "fresh-read-starred"}},
		{"zero days", Criteria{MaxAgeDays: 0, Priority: PriorityAll, Visibility: VisibilityAll}, []string{}},
		{"priority", Criteria{MaxAgeDays: 60, Priority: PriorityHigh, Visibility: VisibilityAll},
			[]string{"fresh-unread", "old"}},
		{"read", Criteria{MaxAgeDays: 60, Priority: PriorityAll, Visibility: VisibilityRead},
			[]string{"fresh-read-starred"}},
		{"starred", Criteria{MaxAgeDays: 60, Priority: PriorityAll, Visibility: VisibilityStarred},
			[]string{"fresh-read-starred"}},
		{"unread", Criteria{MaxAgeDays: 60, Priority: PriorityAll, Visibility: VisibilityUnread},
			[]string{"fresh-unread", "old", "edge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.c, now)
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("Filter = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	records := []Record{
		{ID: "1", Priority: PriorityLow, Date: daysAgo(1)},
		{ID: "2", Priority: PriorityHigh, Date: daysAgo(2), IsStarred: true},
		{ID: "3", Priority: PriorityHigh, Date: daysAgo(1)},
	}
	c := Criteria{MaxAgeDays: 30, Priority: PriorityAll, Visibility: VisibilityAll}

	once := Filter(records, c, now)
	twice := Filter(once, c, now)
	if !slices.Equal(ids(once), ids(twice)) {
		t.Errorf("second pass %v differs from first %v", ids(twice), ids(once))
	}
}

func TestAggregate(t *testing.T) {
	records := []Record{
		{ID: "1", Priority: PriorityHigh},
		{ID: "2", Priority: PriorityHigh, IsRead: true},
		{ID: "3", Priority: PrioritySpam, IsRead: true},
		{ID: "4", Priority: PriorityLow},
		{ID: "5", Priority: PriorityMedium, IsRead: true},
	}
	got := Aggregate(records)
	want := Stats{Total: 5, Unread: 2, Important: 2, Spam: 1}
	if got != want {
		t.Errorf("Aggregate = %+v, want %+v", got, want)
	}

	read := 0
	for _, r := range records {
		if r.IsRead {
			read++
		}
	}
	if got.Unread+read != got.Total {
		t.Errorf("unread %d + read %d != total %d", got.Unread, read, got.Total)
	}
	if (Aggregate(nil) != Stats{}) {
		t.Error("Aggregate(nil) should be zero")
	}
}

func TestFindByID(t *testing.T) {
	records := []Record{{ID: "a"}, {ID: "b", Subject: "hello"}}
	if r, ok := FindByID(records, "b"); !ok || r.Subject != "hello" {
		t.Errorf("FindByID(b) = %+v, %v", r, ok)
	}
	if _, ok := FindByID(records, "c"); ok {
		t.Error("FindByID(c) should miss")
	}
}

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "unknown"},
		{now, "Today"},
		{now.Add(-2 * time.Hour), "Yesterday"},
		{daysAgo(3), "3 days ago"},
		{daysAgo(10), "2 weeks ago"},
		{daysAgo(45), "2 months ago"},
		{daysAgo(400), "2 years ago"},
	}
	for _, tt := range tests {
		if got := RelativeAge(tt.t, now); got != tt.want {
			t.Errorf("RelativeAge(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	for _, v := range Visibilities {
		got, err := ParseVisibility(string(v))
		if err != nil || got != v {
			t.Errorf("ParseVisibility(%q) = %q, %v", v, got, err)
		}
	}
	if _, err := ParseVisibility("flagged"); err == nil {
		t.Error("expected error for unknown visibility")
	}
}

func TestNextAgePreset(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 7}, {7, 30}, {30, 90}, {90, 365}, {365, 1}, {0, 1}, {14, 30}, {1000, 1},
	}
	for _, tt := range tests {
		if got := NextAgePreset(tt.in); got != tt.want {
			t.Errorf("NextAgePreset(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCriteriaValidate(t *testing.T) {
	if err := DefaultCriteria().Validate(); err != nil {
		t.Errorf("default criteria invalid: %v", err)
	}
	bad := []Criteria{
		{MaxAgeDays: -1, Priority: PriorityAll, Visibility: VisibilityAll},
		{MaxAgeDays: 7, Priority: "urgent", Visibility: VisibilityAll},
		{MaxAgeDays: 7, Priority: PriorityAll, Visibility: "flagged"},
		{},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
}

func TestCriteriaCutoff_CalendarDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks sprang forward at 2am, so noon to noon spans only 23 hours.
	at := time.Date(2025, 3, 9, 12, 0, 0, 0, loc)
	c := Criteria{MaxAgeDays: 1, Priority: PriorityAll, Visibility: VisibilityAll}

	want := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	if got := c.Cutoff(at); !got.Equal(want) {
		t.Errorf("Cutoff = %v, want %v", got, want)
	}
	r := Record{ID: "edge", Priority: PriorityLow, Date: at.Add(-23*time.Hour - 30*time.Minute)}
	if c.Match(r, at) {
		t.Error("record from before noon yesterday matched")
	}
}
