package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.withmatt.com/themes"

	"go.withmatt.com/triage/internal/config"
)

var previewFlags struct {
	name string
	mode string
}

var themePreviewCmd = &cobra.Command{
	Use:   "theme-preview",
	Short: "Preview resolved theme colors",
	Args:  cobra.NoArgs,
	RunE:  runThemePreview,
}

func init() {
	themePreviewCmd.Flags().StringVar(&previewFlags.name, "name", "", "theme name to preview")
	themePreviewCmd.Flags().StringVar(&previewFlags.mode, "mode", "", "light or dark (default: configured mode)")
	rootCmd.AddCommand(themePreviewCmd)
}

type themeColor struct {
	label string
	value string
}

func runThemePreview(cmd *cobra.Command, args []string) error {
	raw, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	cfg := raw.WithDefaults()

	modeName := cfg.Theme.Mode
	if previewFlags.mode != "" {
		modeName = previewFlags.mode
	}
	mode, err := config.ParseMode(modeName)
	if err != nil {
		return err
	}

	theme := cfg.Theme.For(mode)
	if previewFlags.name != "" {
		theme.Name = previewFlags.name
	}
	resolved, err := config.ResolveTheme(theme)
	if err != nil {
		return fmt.Errorf("unable to resolve theme: %w", err)
	}
	palette, err := themes.GetTheme(theme.Name)
	if err != nil {
		return fmt.Errorf("unable to load palette %q: %w", theme.Name, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Theme preview: %s (%s)\n", resolved.Name, mode)
	for _, section := range previewSections(palette, resolved) {
		printThemeSection(out, section.title, section.colors)
	}
	return nil
}

type themeSection struct {
	title  string
	colors []themeColor
}

func previewSections(palette *themes.Theme, t config.Theme) []themeSection {
	return []themeSection{
		{"Palette", []themeColor{
			{"background", palette.Background},
			{"foreground", palette.Foreground},
			{"red", palette.Red},
			{"green", palette.Green},
			{"yellow", palette.Yellow},
			{"magenta", palette.Magenta},
			{"bright_black", palette.BrightBlack},
		}},
		{"Status", []themeColor{
			{"bg", t.Status.Bg},
			{"fg", t.Status.Fg},
			{"dim", t.Status.Dim},
			{"mode_bg", t.Status.ModeBg},
			{"mode_fg", t.Status.ModeFg},
			{"tab_bg", t.Status.TabBg},
			{"tab_fg", t.Status.TabFg},
		}},
		{"List", []themeColor{
			{"unread_fg", t.List.UnreadFg},
			{"selected_fg", t.List.SelectedFg},
			{"read_fg", t.List.ReadFg},
			{"selected_bg", t.List.SelectedBg},
			{"star_fg", t.List.StarFg},
		}},
		{"Detail", []themeColor{
			{"summary_fg", t.Detail.SummaryFg},
			{"border_selected", t.Detail.BorderSelected},
			{"border_normal", t.Detail.BorderNormal},
			{"header_label_fg", t.Detail.HeaderLabelFg},
			{"header_value_fg", t.Detail.HeaderValueFg},
		}},
		{"Priority", []themeColor{
			{"high", t.Priority.High},
			{"medium", t.Priority.Medium},
			{"low", t.Priority.Low},
			{"spam", t.Priority.Spam},
			{"badge_fg", t.Priority.BadgeFg},
		}},
		{"Modal", []themeColor{
			{"footer_fg", t.Modal.FooterFg},
		}},
	}
}

func printThemeSection(w io.Writer, title string, colors []themeColor) {
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range colors {
		fmt.Fprintf(w, "  %-16s %s %s\n", item.label, renderSwatch(item.value), item.value)
	}
}

func renderSwatch(color string) string {
	if color == "" {
		return "  "
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Render("  ")
}
