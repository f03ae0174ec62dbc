package config

import (
	"fmt"
	"strings"

	"go.withmatt.com/triage/internal/triage"
)

// Layout is how the inbox view renders records.
type Layout string

const (
	LayoutList Layout = "list"
	LayoutCard Layout = "card"
)

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutList, LayoutCard:
		return l, nil
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

// Toggle returns the other layout.
func (l Layout) Toggle() Layout {
	if l == LayoutCard {
		return LayoutList
	}
	return LayoutCard
}

type UIConfig struct {
	Layout                 string `toml:"layout"`
	CardSummaryLines       int    `toml:"card_summary_lines"`
	RefreshIntervalSeconds int    `toml:"refresh_interval_seconds"`
}

func (u UIConfig) WithDefaults() UIConfig {
	if _, err := ParseLayout(u.Layout); err != nil {
		u.Layout = string(LayoutList)
	}
	if u.CardSummaryLines <= 0 {
		u.CardSummaryLines = 2
	}
	if u.RefreshIntervalSeconds == 0 {
		u.RefreshIntervalSeconds = 300
	}
	return u
}

// FetchConfig bounds how much of the inbox one refresh pulls.
type FetchConfig struct {
	ListLimit      int `toml:"list_limit"`
	FetchLimit     int `toml:"fetch_limit"`
	Concurrency    int `toml:"concurrency"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

func (f FetchConfig) WithDefaults() FetchConfig {
	if f.ListLimit <= 0 {
		f.ListLimit = 100
	}
	if f.FetchLimit <= 0 {
		f.FetchLimit = 50
	}
	if f.Concurrency <= 0 {
		f.Concurrency = 10
	}
	return f
}

// FilterConfig is the filter a session starts with.
type FilterConfig struct {
	MaxAgeDays int    `toml:"max_age_days"`
	Priority   string `toml:"priority"`
	Visibility string `toml:"visibility"`
}

func (f FilterConfig) WithDefaults() FilterConfig {
	def := triage.DefaultCriteria()
	if f.MaxAgeDays <= 0 {
		f.MaxAgeDays = def.MaxAgeDays
	}
	if f.Priority == "" {
		f.Priority = string(def.Priority)
	}
	if f.Visibility == "" {
		f.Visibility = string(def.Visibility)
	}
	return f
}

// Criteria converts the configured filter.
func (f FilterConfig) Criteria() (triage.Criteria, error) {
	f = f.WithDefaults()
	priority, err := triage.ParsePriorityFilter(f.Priority)
	if err != nil {
		return triage.Criteria{}, fmt.Errorf("filter.priority: %w", err)
	}
	visibility, err := triage.ParseVisibility(f.Visibility)
	if err != nil {
		return triage.Criteria{}, fmt.Errorf("filter.visibility: %w", err)
	}
	return triage.Criteria{
		MaxAgeDays: f.MaxAgeDays,
		Priority:   priority,
		Visibility: visibility,
	}, nil
}
