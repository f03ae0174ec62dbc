// Package triage classifies, summarizes and filters inbox messages.
package triage

import (
	"fmt"
	"strings"

	"go.withmatt.com/triage/internal/gmail"
)

// Priority is a message's triage tier.
type Priority string

const (
	PrioritySpam   Priority = "spam"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every tier from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PrioritySpam}

// Keyword sets for the content rules. Matching is a case-insensitive
// substring test, so "offer" also matches "offering" and "sale" matches
// "wholesale". That is a known limitation of the heuristic.
var (
	urgentKeywords      = []string{"urgent", "asap", "emergency", "deadline", "important"}
	promotionalKeywords = []string{"sale", "discount", "offer", "promotion", "newsletter"}
)

// Rank orders tiers for sorting: high=3, medium=2, low=1, spam=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) String() string {
	return string(p)
}

// ParsePriority parses a tier name.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PrioritySpam, PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Classify assigns a tier. Rules are evaluated in order and the first match
// wins: spam label, important label, urgent keywords, promotional keywords,
// and medium otherwise. from is part of the contract but no rule uses it yet.
func Classify(subject, from, body string, labels []string) Priority {
	_ = from
	if gmail.HasLabel(labels, gmail.LabelSpam) {
		return PrioritySpam
	}
	if gmail.HasLabel(labels, gmail.LabelImportant) {
		return PriorityHigh
	}

	subject = strings.ToLower(subject)
	body = strings.ToLower(body)
	if containsAny(subject, urgentKeywords) || containsAny(body, urgentKeywords) {
		return PriorityHigh
	}
	if containsAny(subject, promotionalKeywords) || containsAny(body, promotionalKeywords) {
		return PriorityLow
	}
	return PriorityMedium
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
