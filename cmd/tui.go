package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.withmatt.com/triage/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	themes, err := a.themes()
	if err != nil {
		return err
	}

	if err := tui.Run(ctx, tui.Options{
		Session:   a.session,
		Auth:      a.auth,
		Themes:    themes,
		UIConfig:  a.cfg.UI,
		KeyMapCfg: a.cfg.Keys,
		OnSignIn:  a.rememberAccount,
	}); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
