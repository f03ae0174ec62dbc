package session

import (
	"context"
	"fmt"
	"strconv"

	"go.withmatt.com/triage/internal/prefs"
	"go.withmatt.com/triage/internal/triage"
)

// CommandKind names a user action.
type CommandKind int

const (
	CmdSetCriteria CommandKind = iota
	CmdRefresh
	CmdSelect
	CmdToggleLayout
	CmdToggleTheme
	CmdSignOut
)

func (k CommandKind) String() string {
	switch k {
	case CmdSetCriteria:
		return "set-criteria"
	case CmdRefresh:
		return "refresh"
	case CmdSelect:
		return "select"
	case CmdToggleLayout:
		return "toggle-layout"
	case CmdToggleTheme:
		return "toggle-theme"
	case CmdSignOut:
		return "sign-out"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command is one user action. Criteria is read by CmdSetCriteria and ID by
// CmdSelect; an empty ID clears the selection.
type Command struct {
	Kind     CommandKind
	Criteria triage.Criteria
	ID       string
}

type handler func(s *Session, ctx context.Context, cmd Command) error

var handlers = map[CommandKind]handler{
	CmdSetCriteria:  (*Session).setCriteria,
	CmdRefresh:      (*Session).refresh,
	CmdSelect:       (*Session).selectRecord,
	CmdToggleLayout: (*Session).toggleLayout,
	CmdToggleTheme:  (*Session).toggleTheme,
	CmdSignOut:      (*Session).signOut,
}

// Dispatch runs cmd and returns the resulting state.
func (s *Session) Dispatch(ctx context.Context, cmd Command) (State, error) {
	h, ok := handlers[cmd.Kind]
	if !ok {
		return s.State(), fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	if err := h(s, ctx, cmd); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

func (s *Session) setCriteria(ctx context.Context, cmd Command) error {
	if err := cmd.Criteria.Validate(); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	s.mu.Lock()
	s.state.Criteria = cmd.Criteria
	s.mu.Unlock()

	s.savePref(ctx, prefs.KeyFilterMaxAgeDays, strconv.Itoa(cmd.Criteria.MaxAgeDays))
	s.savePref(ctx, prefs.KeyFilterPriority, string(cmd.Criteria.Priority))
	s.savePref(ctx, prefs.KeyFilterVisibility, string(cmd.Criteria.Visibility))
	return nil
}

func (s *Session) refresh(ctx context.Context, _ Command) error {
	return s.pipeline.Refresh(ctx)
}

func (s *Session) selectRecord(_ context.Context, cmd Command) error {
	if cmd.ID != "" {
		if _, ok := triage.FindByID(s.pipeline.Snapshot().Records, cmd.ID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRecord, cmd.ID)
		}
	}

	s.mu.Lock()
	s.state.Selected = cmd.ID
	s.mu.Unlock()
	return nil
}

func (s *Session) toggleLayout(ctx context.Context, _ Command) error {
	s.mu.Lock()
	s.state.Layout = s.state.Layout.Toggle()
	layout := s.state.Layout
	s.mu.Unlock()

	s.savePref(ctx, prefs.KeyLayout, string(layout))
	return nil
}

func (s *Session) toggleTheme(ctx context.Context, _ Command) error {
	s.mu.Lock()
	s.state.Mode = s.state.Mode.Toggle()
	mode := s.state.Mode
	s.mu.Unlock()

	s.savePref(ctx, prefs.KeyThemeMode, string(mode))
	return nil
}

func (s *Session) signOut(_ context.Context, _ Command) error {
	if s.auth != nil {
		if err := s.auth.SignOut(); err != nil {
			return fmt.Errorf("signing out: %w", err)
		}
	}
	s.pipeline.Clear()

	s.mu.Lock()
	s.state.Selected = ""
	s.mu.Unlock()
	return nil
}
