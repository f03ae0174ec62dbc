package tui

import (
	"context"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/oauth"
	"go.withmatt.com/triage/internal/session"
)

type viewState int

const (
	viewSignIn viewState = iota
	viewList
)

// Auth is the sign-in collaborator the TUI drives.
type Auth interface {
	IsAuthenticated() bool
	SignIn(ctx context.Context) (oauth.Profile, error)
	Profile(ctx context.Context) (oauth.Profile, error)
}

// Themes holds the resolved palette for each mode.
type Themes struct {
	Light config.Theme
	Dark  config.Theme
}

func (t Themes) For(mode config.Mode) config.Theme {
	if mode == config.ModeLight {
		return t.Light
	}
	return t.Dark
}

// Options wires the TUI to the rest of the program.
type Options struct {
	Session   *session.Session
	Auth      Auth
	Themes    Themes
	UIConfig  config.UIConfig
	KeyMapCfg config.KeyMap
	// OnSignIn, when set, is called after a successful interactive sign-in.
	OnSignIn func(oauth.Profile)
}

// Model is the TUI application state
type Model struct {
	currentView viewState

	ui        uiState
	inbox     inboxState
	detail    detailState
	signIn    signInState
	renderers renderersState
	themes    Themes
	theme     config.Theme
	uiConfig  config.UIConfig
	keyMapCfg config.KeyMap

	session  *session.Session
	auth     Auth
	onSignIn func(oauth.Profile)
	profile  oauth.Profile
	now      func() time.Time

	// Context for cancellation
	ctx context.Context
}

// New creates a new TUI model
func New(ctx context.Context, opts Options) Model {
	state := opts.Session.State()
	theme := opts.Themes.For(state.Mode)

	ui := newUIState()
	ui.help = newHelpModel(theme)
	ui.alert = newAlertModel(theme, 0)

	r, _ := newGlamourRenderer(theme, state.Mode, detailDefaultWidth)

	converter := md.NewConverter(
		md.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithStrongDelimiter("**"),
				commonmark.WithEmDelimiter("_"),
			),
		),
		md.WithEscapeMode(md.EscapeModeDisabled),
	)

	model := Model{
		currentView: viewSignIn,
		ui:          ui,
		inbox:       inboxState{loading: true},
		detail:      newDetailState(),
		themes:      opts.Themes,
		theme:       theme,
		uiConfig:    opts.UIConfig.WithDefaults(),
		keyMapCfg:   opts.KeyMapCfg,
		session:     opts.Session,
		auth:        opts.Auth,
		onSignIn:    opts.OnSignIn,
		now:         time.Now,
		renderers: renderersState{
			glamourRenderer: r,
			glamourWidth:    detailDefaultWidth,
			htmlConverter:   converter,
		},
		ctx: ctx,
	}
	if opts.Auth != nil && opts.Auth.IsAuthenticated() {
		model.currentView = viewList
	} else {
		model.signIn = newSignInState(theme)
	}
	model.logf("tui start view=%d mode=%s layout=%s", model.currentView, state.Mode, state.Layout)
	return model
}

func newGlamourRenderer(
	theme config.Theme,
	mode config.Mode,
	width int,
) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(theme, mode)),
		glamour.WithEmoji(),
		glamour.WithWordWrap(width),
	)
}

// Init initializes the TUI and kicks off the first refresh
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.ui.spinner.Tick,
		m.ui.alert.Init(),
		m.setWindowTitleCmd(),
	}
	if m.currentView == viewSignIn {
		cmds = append(cmds, m.signIn.form.Init())
	} else {
		cmds = append(cmds, m.refreshCmd(), m.profileCmd(), m.autoRefreshCmd())
	}
	return tea.Batch(cmds...)
}

// Run starts the TUI
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(
		New(ctx, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
