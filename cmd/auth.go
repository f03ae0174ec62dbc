package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.withmatt.com/triage/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Gmail account",
	Long:  "Launch an interactive menu to sign in to or out of your Gmail account.",
	RunE:  runAuth,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google in your browser",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return tui.RunAccount(cmd.Context(), a.raw, a.auth)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Fprintln(cmd.ErrOrStderr(), "Opening browser for Google sign-in...")
	profile, err := a.auth.SignIn(cmd.Context())
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	a.rememberAccount(profile)
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", profile.Email)
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	email := a.auth.Email()
	if email == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
		return nil
	}
	if err := a.auth.SignOut(); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", email)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if !a.auth.IsAuthenticated() {
		fmt.Fprintln(out, "Not signed in. Run 'triage auth login' to sign in.")
		return nil
	}
	profile, err := a.auth.Profile(cmd.Context())
	if err != nil {
		return fmt.Errorf("unable to load profile: %w", err)
	}
	fmt.Fprintf(out, "Signed in as %s\n", profile.Email)
	if profile.Name != "" {
		fmt.Fprintf(out, "Name:   %s\n", profile.Name)
	}
	if profile.Picture != "" {
		fmt.Fprintf(out, "Avatar: %s\n", profile.Picture)
	}
	return nil
}
