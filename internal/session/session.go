// Package session holds the state of one interactive triage session and
// routes user commands to the code that handles them.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/ingest"
	"go.withmatt.com/triage/internal/log"
	"go.withmatt.com/triage/internal/prefs"
	"go.withmatt.com/triage/internal/triage"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownRecord  = errors.New("no such email")
)

// Ingestor is the part of the ingestion pipeline a session drives.
type Ingestor interface {
	Refresh(ctx context.Context) error
	Snapshot() *ingest.WorkingSet
	Clear()
}

// SignOuter forgets the signed-in account.
type SignOuter interface {
	SignOut() error
}

// PrefStore persists preferences between runs.
type PrefStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Options are the starting values of a session, before saved preferences
// are applied.
type Options struct {
	Criteria triage.Criteria
	Layout   config.Layout
	Mode     config.Mode
}

// State is the user-controlled part of a session.
type State struct {
	Criteria triage.Criteria
	Layout   config.Layout
	Mode     config.Mode
	Selected string
}

// View is what the presentation layer renders.
type View struct {
	State
	Records   []triage.Record
	Stats     triage.Stats
	FetchedAt time.Time
}

// Session owns the pipeline, the current criteria and the display
// preferences. It is safe for concurrent use.
type Session struct {
	pipeline Ingestor
	auth     SignOuter
	prefs    PrefStore

	mu    sync.Mutex
	state State
}

func New(pipeline Ingestor, auth SignOuter, store PrefStore, opts Options) *Session {
	if opts.Criteria.Validate() != nil {
		opts.Criteria = triage.DefaultCriteria()
	}
	if opts.Layout == "" {
		opts.Layout = config.LayoutList
	}
	if opts.Mode == "" {
		opts.Mode = config.ModeDark
	}
	return &Session{
		pipeline: pipeline,
		auth:     auth,
		prefs:    store,
		state: State{
			Criteria: opts.Criteria,
			Layout:   opts.Layout,
			Mode:     opts.Mode,
		},
	}
}

// Restore applies saved preferences over the starting values. Unreadable or
// invalid entries are skipped.
func (s *Session) Restore(ctx context.Context) error {
	if s.prefs == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	get := func(key string) (string, bool) {
		v, ok, err := s.prefs.Get(ctx, key)
		if err != nil {
			errs = append(errs, err)
			return "", false
		}
		return v, ok
	}

	if v, ok := get(prefs.KeyThemeMode); ok {
		if mode, err := config.ParseMode(v); err == nil {
			s.state.Mode = mode
		}
	}
	if v, ok := get(prefs.KeyLayout); ok {
		if layout, err := config.ParseLayout(v); err == nil {
			s.state.Layout = layout
		}
	}

	c := s.state.Criteria
	if v, ok := get(prefs.KeyFilterMaxAgeDays); ok {
		if days, err := strconv.Atoi(v); err == nil {
			c.MaxAgeDays = days
		}
	}
	if v, ok := get(prefs.KeyFilterPriority); ok {
		if p, err := triage.ParsePriorityFilter(v); err == nil {
			c.Priority = p
		}
	}
	if v, ok := get(prefs.KeyFilterVisibility); ok {
		if vis, err := triage.ParseVisibility(v); err == nil {
			c.Visibility = vis
		}
	}
	if c.Validate() == nil {
		s.state.Criteria = c
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("restoring preferences: %w", err)
	}
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View filters the current WorkingSet with the current criteria. Stats
// always cover the whole WorkingSet.
func (s *Session) View(now time.Time) View {
	state := s.State()
	ws := s.pipeline.Snapshot()
	return View{
		State:     state,
		Records:   triage.Filter(ws.Records, state.Criteria, now),
		Stats:     triage.Aggregate(ws.Records),
		FetchedAt: ws.FetchedAt,
	}
}

// Selected returns the selected record, if it is still in the WorkingSet.
func (s *Session) Selected() (triage.Record, bool) {
	id := s.State().Selected
	if id == "" {
		return triage.Record{}, false
	}
	return triage.FindByID(s.pipeline.Snapshot().Records, id)
}

func (s *Session) savePref(ctx context.Context, key, value string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(ctx, key, value); err != nil {
		log.Printf("session: saving %s: %v", key, err)
	}
}
