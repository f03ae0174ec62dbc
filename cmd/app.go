package cmd

import (
	"context"
	"fmt"
	"time"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/gmail"
	"go.withmatt.com/triage/internal/ingest"
	"go.withmatt.com/triage/internal/log"
	"go.withmatt.com/triage/internal/oauth"
	"go.withmatt.com/triage/internal/prefs"
	"go.withmatt.com/triage/internal/session"
	"go.withmatt.com/triage/internal/tui"
)

// app is the wired object graph shared by the commands.
type app struct {
	// raw is the config as read from disk, without defaults, so saving it
	// does not write environment-provided secrets.
	raw      *config.Config
	cfg      config.Config
	auth     *oauth.Authenticator
	pipeline *ingest.Pipeline
	prefs    *prefs.Store
	session  *session.Session
}

func openApp(ctx context.Context) (*app, error) {
	raw, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}
	cfg := raw.WithDefaults()

	criteria, err := cfg.Filter.Criteria()
	if err != nil {
		return nil, fmt.Errorf("invalid [filter] config: %w", err)
	}
	layout, _ := config.ParseLayout(cfg.UI.Layout)
	mode, _ := config.ParseMode(cfg.Theme.Mode)

	auth := oauth.New(cfg.Account.Email, cfg.OAuth)
	pipeline := ingest.New(gmail.NewClientFromCredentials(auth), auth, ingest.Options{
		ListLimit:   cfg.Fetch.ListLimit,
		FetchLimit:  cfg.Fetch.FetchLimit,
		Concurrency: cfg.Fetch.Concurrency,
		Timeout:     time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
	})

	a := &app{raw: raw, cfg: cfg, auth: auth, pipeline: pipeline}

	var store session.PrefStore
	if path, err := config.PrefsPath(); err != nil {
		log.Printf("prefs path: %v", err)
	} else if a.prefs, err = prefs.Open(path); err != nil {
		log.Printf("open prefs %s: %v", path, err)
	} else {
		store = a.prefs
	}

	a.session = session.New(pipeline, auth, store, session.Options{
		Criteria: criteria,
		Layout:   layout,
		Mode:     mode,
	})
	if err := a.session.Restore(ctx); err != nil {
		log.Printf("restore prefs: %v", err)
	}
	return a, nil
}

func (a *app) Close() error {
	return a.prefs.Close()
}

// rememberAccount saves the signed-in email so the next start finds its
// token.
func (a *app) rememberAccount(profile oauth.Profile) {
	if profile.Email == "" || profile.Email == a.raw.Account.Email {
		return
	}
	a.raw.Account.Email = profile.Email
	if err := config.Save(a.raw); err != nil {
		log.Printf("save account: %v", err)
	}
}

// themes resolves the light and dark palettes. A light theme that fails to
// resolve falls back to the dark one.
func (a *app) themes() (tui.Themes, error) {
	dark, err := config.ResolveTheme(a.cfg.Theme.Dark)
	if err != nil {
		return tui.Themes{}, fmt.Errorf("unable to resolve dark theme: %w", err)
	}
	light, err := config.ResolveTheme(a.cfg.Theme.Light)
	if err != nil {
		log.Printf("light theme %q: %v", a.cfg.Theme.Light.Name, err)
		light = dark
	}
	return tui.Themes{Light: light, Dark: dark}, nil
}
