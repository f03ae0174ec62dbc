package triage

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		body    string
		labels  []string
		want    Priority
	}{
		{"spam label", "URGENT sale", "asap", []string{"INBOX", "SPAM"}, PrioritySpam},
		{"spam beats important", "", "", []string{"IMPORTANT", "SPAM"}, PrioritySpam},
		{"important label", "weekly newsletter", "big discount", []string{"IMPORTANT"}, PriorityHigh},
		{"urgent subject", "Reply ASAP please", "", nil, PriorityHigh},
		{"urgent body", "hello", "the deadline is friday", nil, PriorityHigh},
		{"urgent beats promo", "Flash sale", "emergency restock", nil, PriorityHigh},
		{"promo subject", "Spring Sale", "", nil, PriorityLow},
		{"promo body", "hi", "Our NEWSLETTER this week", nil, PriorityLow},
		{"substring over-trigger", "wholesale pricing", "", nil, PriorityLow},
		{"default", "lunch?", "want to grab lunch", []string{"INBOX", "UNREAD"}, PriorityMedium},
		{"empty", "", "", nil, PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.subject, "someone@example.com", tt.body, tt.labels); got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPriorityRank(t *testing.T) {
	for i := 1; i < len(Priorities); i++ {
		if Priorities[i-1].Rank() <= Priorities[i].Rank() {
			t.Errorf("%s rank %d not above %s rank %d",
				Priorities[i-1], Priorities[i-1].Rank(), Priorities[i], Priorities[i].Rank())
		}
	}
	if PriorityHigh.Rank() != 3 || PrioritySpam.Rank() != 0 {
		t.Errorf("unexpected ranks high=%d spam=%d", PriorityHigh.Rank(), PrioritySpam.Rank())
	}
}

func TestParsePriority(t *testing.T) {
	if p, err := ParsePriority(" High "); err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority(High) = %q, %v", p, err)
	}
	if _, err := ParsePriority("all"); err == nil {
		t.Error("ParsePriority(all) should fail")
	}
	if p, err := ParsePriorityFilter("ALL"); err != nil || p != PriorityAll {
		t.Errorf("ParsePriorityFilter(ALL) = %q, %v", p, err)
	}
}
