package triage

import (
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"go.withmatt.com/triage/internal/gmail"
)

// Record is a decoded, classified inbox message. Records are built once
// and never modified.
type Record struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	Subject     string    `json:"subject"`
	From        string    `json:"from"`
	Date        time.Time `json:"date"`
	Body        string    `json:"body"`
	Summary     string    `json:"summary"`
	KeyPoints   []string  `json:"key_points"`
	Priority    Priority  `json:"priority"`
	IsRead      bool      `json:"is_read"`
	IsStarred   bool      `json:"is_starred"`
	IsImportant bool      `json:"is_important"`
	IsSpam      bool      `json:"is_spam"`
}

// Build converts a provider message into a Record. It never fails: parts
// that cannot be decoded are dropped from the body and missing headers
// become empty strings.
func Build(msg *gmailapi.Message) Record {
	if msg == nil {
		msg = &gmailapi.Message{}
	}

	headers := gmail.Headers(msg)
	subject := headers.Text("Subject")
	from := headers.Text("From")
	body := gmail.DecodeBody(msg.Payload)
	summary, keyPoints := Summarize(body)

	return Record{
		ID:          msg.Id,
		ThreadID:    msg.ThreadId,
		Subject:     subject,
		From:        from,
		Date:        headers.Date(),
		Body:        body,
		Summary:     summary,
		KeyPoints:   keyPoints,
		Priority:    Classify(subject, from, body, msg.LabelIds),
		IsRead:      !gmail.HasLabel(msg.LabelIds, gmail.LabelUnread),
		IsStarred:   gmail.HasLabel(msg.LabelIds, gmail.LabelStarred),
		IsImportant: gmail.HasLabel(msg.LabelIds, gmail.LabelImportant),
		IsSpam:      gmail.HasLabel(msg.LabelIds, gmail.LabelSpam),
	}
}
