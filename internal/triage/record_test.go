package triage

import (
	"encoding/base64"
	"testing"
	"time"

	"google.golang.org/api/gmail/v1"
)

func TestBuild(t *testing.T) {
	body := "Please review the attached quarterly report today. " +
		"The numbers look better than last quarter overall."
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		LabelIds: []string{"INBOX", "UNREAD", "STARRED"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmail.MessagePartHeader{
				{Name: "subject", Value: "Quarterly report"},
				{Name: "From", Value: "Ann <ann@example.com>"},
				{Name: "Date", Value: "Tue, 03 Jun 2025 09:00:00 +0000"},
			},
			Body: &gmail.MessagePartBody{},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(body))},
				},
			},
		},
	}

	r := Build(msg)

	if r.ID != "m1" || r.ThreadID != "t1" {
		t.Errorf("ids = %q/%q", r.ID, r.ThreadID)
	}
	if r.Subject != "Quarterly report" {
		t.Errorf("Subject = %q", r.Subject)
	}
	if r.From != "Ann <ann@example.com>" {
		t.Errorf("From = %q", r.From)
	}
	if want := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC); !r.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", r.Date, want)
	}
	if r.Body != body {
		t.Errorf("Body = %q", r.Body)
	}
	if r.Summary == NoSummary {
		t.Error("expected a derived summary")
	}
	if r.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want medium", r.Priority)
	}
	if r.IsRead || !r.IsStarred || r.IsImportant || r.IsSpam {
		t.Errorf("flags read=%v starred=%v important=%v spam=%v",
			r.IsRead, r.IsStarred, r.IsImportant, r.IsSpam)
	}
}

func TestBuild_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		msg  *gmail.Message
	}{
		{"nil message", nil},
		{"nil payload", &gmail.Message{Id: "x"}},
		{"undecodable body", &gmail.Message{
			Id:      "y",
			Payload: &gmail.MessagePart{Body: &gmail.MessagePartBody{Data: "***"}},
		}},
		{"bad date", &gmail.Message{
			Id: "z",
			Payload: &gmail.MessagePart{
				Headers: []*gmail.MessagePartHeader{{Name: "Date", Value: "yesterday-ish"}},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(tt.msg)
			if r.Body != "" {
				t.Errorf("Body = %q, want empty", r.Body)
			}
			if r.Summary != NoSummary {
				t.Errorf("Summary = %q, want placeholder", r.Summary)
			}
			if !r.Date.IsZero() {
				t.Errorf("Date = %v, want zero", r.Date)
			}
			if r.Priority != PriorityMedium {
				t.Errorf("Priority = %q, want medium", r.Priority)
			}
			if len(r.KeyPoints) > 3 {
				t.Errorf("KeyPoints = %q", r.KeyPoints)
			}
		})
	}
}

func TestBuild_LabelFlags(t *testing.T) {
	r := Build(&gmail.Message{LabelIds: []string{"SPAM", "IMPORTANT"}})
	if !r.IsRead || !r.IsSpam || !r.IsImportant {
		t.Errorf("flags read=%v spam=%v important=%v", r.IsRead, r.IsSpam, r.IsImportant)
	}
	if r.Priority != PrioritySpam {
		t.Errorf("Priority = %q, want spam", r.Priority)
	}
}
