package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"go.withmatt.com/triage/internal/triage"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func TestWriteRecordTable(t *testing.T) {
	records := []triage.Record{
		{ID: "a", Priority: triage.PriorityHigh, From: `"Ann Lee" <ann@example.com>`,
			Subject: "Deadline moved to Friday", Date: now.AddDate(0, 0, -3), IsStarred: true,
			Summary: " The deadline moved.", KeyPoints: []string{"Ship it"}},
		{ID: "b", Priority: triage.PriorityLow, From: "shop@example.com",
			Subject: strings.Repeat("sale ", 40), Date: now, IsRead: true,
			Summary: triage.NoSummary},
	}

	var buf bytes.Buffer
	writeRecordTable(&buf, records, now, 80, false)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"high", "•★", "3 days ago", "Ann Lee", "Deadline moved to Friday"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line %q missing %q", lines[0], want)
		}
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Errorf("long subject not truncated: %q", lines[1])
	}

	buf.Reset()
	writeRecordTable(&buf, records[:1], now, 80, true)
	out := buf.String()
	if !strings.Contains(out, "    The deadline moved.") || !strings.Contains(out, "    - Ship it") {
		t.Errorf("summary block missing:\n%s", out)
	}
}

func TestWriteRecordTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	writeRecordTable(&buf, nil, now, 80, false)
	if !strings.Contains(buf.String(), "No emails") {
		t.Errorf("got %q", buf.String())
	}
}

func TestListCriteria(t *testing.T) {
	saved := listFlags
	t.Cleanup(func() { listFlags = saved })

	base := triage.DefaultCriteria()
	got, err := listCriteria(base, false)
	if err != nil || got != base {
		t.Errorf("no flags: got %+v, %v", got, err)
	}

	listFlags.days = 30
	listFlags.priority = "HIGH"
	listFlags.show = "unread"
	got, err = listCriteria(base, true)
	if err != nil {
		t.Fatal(err)
	}
	want := triage.Criteria{MaxAgeDays: 30, Priority: triage.PriorityHigh, Visibility: triage.VisibilityUnread}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	listFlags.days = 0
	got, err = listCriteria(base, true)
	if err != nil || got.MaxAgeDays != 0 {
		t.Errorf("--days 0: got %+v, %v", got, err)
	}
	if got, _ := listCriteria(base, false); got.MaxAgeDays != base.MaxAgeDays {
		t.Errorf("unset --days changed MaxAgeDays to %d", got.MaxAgeDays)
	}

	listFlags.days = -1
	if _, err := listCriteria(base, true); err == nil {
		t.Error("expected error for negative days")
	}
	listFlags.days = 30

	listFlags.show = "flagged"
	if _, err := listCriteria(base, true); err == nil {
		t.Error("expected error for unknown visibility")
	}
}
