package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"go.withmatt.com/triage/internal/config"
)

type listKeyMap struct {
	Up              key.Binding
	Down            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	Open            key.Binding
	Refresh         key.Binding
	CycleAge        key.Binding
	CyclePriority   key.Binding
	CycleVisibility key.Binding
	ResetFilter     key.Binding
	ToggleLayout    key.Binding
	ToggleTheme     key.Binding
	SignOut         key.Binding
	Help            key.Binding
	Quit            key.Binding
}

type detailKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ToggleTheme key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

type signInKeyMap struct {
	SignIn key.Binding
	Quit   key.Binding
}

type keyMap struct {
	view       viewState
	detailOpen bool

	list   listKeyMap
	detail detailKeyMap
	signIn signInKeyMap
}

func keyMapFromConfig(cfg config.KeyMap) keyMap {
	return keyMap{
		list: listKeyMap{
			Up: makeBinding(bindingDef{keys: []string{"k", "up"}, desc: "up"}, cfg.List.Up),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "down"},
				cfg.List.Down,
			),
			PageUp: makeBinding(
				bindingDef{keys: []string{"pgup"}, desc: "page up"},
				cfg.List.PageUp,
			),
			PageDown: makeBinding(
				bindingDef{keys: []string{"pgdown"}, desc: "page down"},
				cfg.List.PageDown,
			),
			Open: makeBinding(
				bindingDef{keys: []string{"enter"}, desc: "open"},
				cfg.List.Open,
			),
			Refresh: makeBinding(
				bindingDef{keys: []string{"r"}, desc: "refresh"},
				cfg.List.Refresh,
			),
			CycleAge: makeBinding(
				bindingDef{keys: []string{"t"}, desc: "age"},
				cfg.List.CycleAge,
			),
			CyclePriority: makeBinding(
				bindingDef{keys: []string{"p"}, desc: "priority"},
				cfg.List.CyclePriority,
			),
			CycleVisibility: makeBinding(
				bindingDef{keys: []string{"v"}, desc: "show"},
				cfg.List.CycleVisibility,
			),
			ResetFilter: makeBinding(
				bindingDef{keys: []string{"0"}, desc: "reset filter"},
				cfg.List.ResetFilter,
			),
			ToggleLayout: makeBinding(
				bindingDef{keys: []string{"l"}, desc: "layout"},
				cfg.List.ToggleLayout,
			),
			ToggleTheme: makeBinding(
				bindingDef{keys: []string{"T"}, desc: "light/dark"},
				cfg.List.ToggleTheme,
			),
			SignOut: makeBinding(
				bindingDef{keys: []string{"ctrl+o"}, desc: "sign out"},
				cfg.List.SignOut,
			),
			Help: makeBinding(bindingDef{keys: []string{"?"}, desc: "help"}, cfg.List.Help),
			Quit: makeBinding(
				bindingDef{keys: []string{"q", "esc", "ctrl+c"}, desc: "quit"},
				cfg.List.Quit,
			),
		},
		detail: detailKeyMap{
			Up: makeBinding(
				bindingDef{keys: []string{"k", "up"}, desc: "prev"},
				cfg.Detail.Up,
			),
			Down: makeBinding(
				bindingDef{keys: []string{"j", "down"}, desc: "next"},
				cfg.Detail.Down,
			),
			ScrollUp: makeBinding(
				bindingDef{keys: []string{"pgup", "b"}, desc: "scroll up"},
				cfg.Detail.ScrollUp,
			),
			ScrollDown: makeBinding(
				bindingDef{keys: []string{"pgdown", " ", "space"}, desc: "scroll down"},
				cfg.Detail.ScrollDown,
			),
			ToggleTheme: makeBinding(
				bindingDef{keys: []string{"T"}, desc: "light/dark"},
				cfg.Detail.ToggleTheme,
			),
			Back: makeBinding(
				bindingDef{keys: []string{"esc", "q"}, desc: "close"},
				cfg.Detail.Back,
			),
			Help: makeBinding(
				bindingDef{keys: []string{"?"}, desc: "help"},
				cfg.Detail.Help,
			),
			Quit: makeBinding(
				bindingDef{keys: []string{"ctrl+c"}, desc: "quit"},
				cfg.Detail.Quit,
			),
		},
		signIn: signInKeyMap{
			SignIn: makeBinding(
				bindingDef{keys: []string{"enter"}, desc: "confirm"},
				cfg.SignIn.SignIn,
			),
			Quit: makeBinding(
				bindingDef{keys: []string{"ctrl+c"}, desc: "quit"},
				cfg.SignIn.Quit,
			),
		},
	}
}

func (m Model) keyMap() keyMap {
	km := keyMapFromConfig(m.keyMapCfg)
	km.view = m.currentView
	km.detailOpen = m.detail.open
	return km
}

type bindingDef struct {
	keys []string
	desc string
}

func makeBinding(def bindingDef, override []string) key.Binding {
	keys := def.keys
	if len(override) > 0 {
		keys = override
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(formatHelpKeys(keys), def.desc),
	)
}

func formatHelpKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		label := formatKeyLabel(key)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return strings.Join(out, "/")
}

func formatKeyLabel(key string) string {
	switch key {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "pgdown":
		return "pgdn"
	case " ":
		return "space"
	default:
		return key
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.view == viewSignIn:
		return []key.Binding{k.signIn.SignIn, k.signIn.Quit}
	case k.detailOpen:
		return []key.Binding{
			k.detail.Up,
			k.detail.Down,
			k.detail.ScrollDown,
			k.detail.Back,
			k.detail.Help,
		}
	default:
		return []key.Binding{
			k.list.Up,
			k.list.Down,
			k.list.Open,
			k.list.CycleAge,
			k.list.CyclePriority,
			k.list.CycleVisibility,
			k.list.Refresh,
			k.list.Help,
			k.list.Quit,
		}
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	switch {
	case k.view == viewSignIn:
		return [][]key.Binding{{k.signIn.SignIn, k.signIn.Quit}}
	case k.detailOpen:
		return [][]key.Binding{
			{k.detail.Up, k.detail.Down},
			{k.detail.ScrollUp, k.detail.ScrollDown},
			{k.detail.ToggleTheme, k.detail.Back, k.detail.Help, k.detail.Quit},
		}
	default:
		return [][]key.Binding{
			{k.list.Up, k.list.Down, k.list.PageUp, k.list.PageDown},
			{k.list.Open, k.list.Refresh},
			{k.list.CycleAge, k.list.CyclePriority, k.list.CycleVisibility, k.list.ResetFilter},
			{k.list.ToggleLayout, k.list.ToggleTheme, k.list.SignOut},
			{k.list.Help, k.list.Quit},
		}
	}
}
