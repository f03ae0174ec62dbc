package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"go.withmatt.com/triage/internal/config"
	"go.withmatt.com/triage/internal/oauth"
)

type accountAction string

const (
	accountActionSignIn  accountAction = "signin"
	accountActionSignOut accountAction = "signout"
	accountActionQuit    accountAction = "quit"
)

// AccountManager is what the account menu needs from the authenticator.
type AccountManager interface {
	Email() string
	IsAuthenticated() bool
	SignIn(ctx context.Context) (oauth.Profile, error)
	SignOut() error
}

// RunAccount shows an interactive menu for signing the Gmail account in
// and out. The signed-in email is saved to cfg.
func RunAccount(ctx context.Context, cfg *config.Config, auth AccountManager) error {
	if ctx == nil {
		ctx = context.Background()
	}

	status := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		action, err := runAccountMenu(ctx, auth, status)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch action {
		case accountActionSignIn:
			status, err = runSignIn(ctx, cfg, auth)
		case accountActionSignOut:
			status, err = runSignOut(ctx, auth)
		case accountActionQuit:
			return nil
		default:
			status = "Unknown action."
		}
		if err != nil {
			return err
		}
	}
}

func runAccountMenu(
	ctx context.Context,
	auth AccountManager,
	status string,
) (accountAction, error) {
	signedIn := auth.IsAuthenticated()
	action := accountActionSignIn
	options := []huh.Option[accountAction]{}
	if signedIn {
		action = accountActionQuit
		options = append(options,
			huh.NewOption("Switch account", accountActionSignIn),
			huh.NewOption("Sign out", accountActionSignOut),
		)
	} else {
		options = append(options, huh.NewOption("Sign in with Google", accountActionSignIn))
	}
	options = append(options, huh.NewOption("Quit", accountActionQuit))

	fields := make([]huh.Field, 0, 3)
	if status != "" {
		fields = append(fields, huh.NewNote().Title("Status").Description(status))
	}
	fields = append(fields,
		huh.NewNote().Title("Account").Description(formatAccountNote(auth.Email(), signedIn)),
		huh.NewSelect[accountAction]().
			Title("Action").
			Options(options...).
			Value(&action),
	)

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithProgramOptions(tea.WithAltScreen())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return action, nil
}

func runSignIn(ctx context.Context, cfg *config.Config, auth AccountManager) (string, error) {
	profile, err := auth.SignIn(ctx)
	if err != nil {
		if errors.Is(err, oauth.ErrMissingClient) {
			return "", err
		}
		return fmt.Sprintf("Sign-in failed: %v", err), nil
	}
	cfg.Account.Email = profile.Email
	if err := config.Save(cfg); err != nil {
		return fmt.Sprintf("Save failed: %v", err), nil
	}
	return "Signed in as " + profile.Email, nil
}

func runSignOut(ctx context.Context, auth AccountManager) (string, error) {
	email := auth.Email()
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sign out of " + email + "?").
				Affirmative("Sign out").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithProgramOptions(tea.WithAltScreen())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "Sign out canceled.", nil
		}
		return "", err
	}
	if !confirm {
		return "Sign out canceled.", nil
	}
	if err := auth.SignOut(); err != nil {
		return fmt.Sprintf("Sign out failed: %v", err), nil
	}
	return "Signed out " + email, nil
}

func formatAccountNote(email string, signedIn bool) string {
	switch {
	case email == "":
		return "Not signed in."
	case signedIn:
		return email + " (signed in)"
	default:
		return email + " (signed out)"
	}
}
