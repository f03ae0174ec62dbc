package gmail

import "slices"

// System label IDs the triage rules look at.
const (
	LabelUnread    = "UNREAD"
	LabelStarred   = "STARRED"
	LabelImportant = "IMPORTANT"
	LabelSpam      = "SPAM"
)

// HasLabel reports whether labels contains id.
func HasLabel(labels []string, id string) bool {
	return slices.Contains(labels, id)
}
