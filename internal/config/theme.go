package config

import (
	"fmt"
	"strings"

	"go.withmatt.com/themes"
)

const (
	defaultDarkTheme  = "Nord"
	defaultLightTheme = "Tomorrow"
)

// Mode selects between the light and dark palettes.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// ParseMode parses a theme mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLight, ModeDark:
		return m, nil
	}
	return "", fmt.Errorf("unknown theme mode %q", s)
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ThemeConfig holds one theme per mode plus the mode to start in.
type ThemeConfig struct {
	Mode  string `toml:"mode"`
	Light Theme  `toml:"light"`
	Dark  Theme  `toml:"dark"`
}

func (t ThemeConfig) WithDefaults() ThemeConfig {
	if _, err := ParseMode(t.Mode); err != nil {
		t.Mode = string(ModeDark)
	}
	if strings.TrimSpace(t.Light.Name) == "" {
		t.Light.Name = defaultLightTheme
	}
	if strings.TrimSpace(t.Dark.Name) == "" {
		t.Dark.Name = defaultDarkTheme
	}
	return t
}

// For returns the configured theme for mode.
func (t ThemeConfig) For(mode Mode) Theme {
	if mode == ModeLight {
		return t.Light
	}
	return t.Dark
}

type Theme struct {
	Name     string        `toml:"name"`
	Status   ThemeStatus   `toml:"status"`
	List     ThemeList     `toml:"list"`
	Detail   ThemeDetail   `toml:"detail"`
	Priority ThemePriority `toml:"priority"`
	Modal    ThemeModal    `toml:"modal"`
}

type ThemeStatus struct {
	Bg     string `toml:"bg"`
	Fg     string `toml:"fg"`
	Dim    string `toml:"dim"`
	ModeBg string `toml:"mode_bg"`
	ModeFg string `toml:"mode_fg"`
	TabBg  string `toml:"tab_bg"`
	TabFg  string `toml:"tab_fg"`
}

type ThemeList struct {
	UnreadFg   string `toml:"unread_fg"`
	SelectedFg string `toml:"selected_fg"`
	ReadFg     string `toml:"read_fg"`
	SelectedBg string `toml:"selected_bg"`
	StarFg     string `toml:"star_fg"`
}

type ThemeDetail struct {
	SummaryFg      string `toml:"summary_fg"`
	BorderSelected string `toml:"border_selected"`
	BorderNormal   string `toml:"border_normal"`
	HeaderLabelFg  string `toml:"header_label_fg"`
	HeaderValueFg  string `toml:"header_value_fg"`
}

// ThemePriority colors the priority badge of each email.
type ThemePriority struct {
	High    string `toml:"high"`
	Medium  string `toml:"medium"`
	Low     string `toml:"low"`
	Spam    string `toml:"spam"`
	BadgeFg string `toml:"badge_fg"`
}

type ThemeModal struct {
	FooterFg string `toml:"footer_fg"`
}

func ResolveTheme(theme Theme) (Theme, error) {
	palette, err := paletteForTheme(theme.Name)
	if err != nil {
		return Theme{}, err
	}
	base := themeFromPalette(palette)
	merged := mergeTheme(base, theme)
	merged = resolveThemeColorNames(merged, palette)
	merged.Name = theme.Name
	return merged, nil
}

func themeFromPalette(palette *themes.Theme) Theme {
	dim := firstNonEmpty(
		palette.BrightBlack,
		palette.Foreground,
	)
	accent := firstNonEmpty(
		palette.Magenta,
		palette.Foreground,
	)
	unreadFg := firstNonEmpty(
		palette.BrightMagenta,
		palette.Magenta,
		palette.Foreground,
	)
	selectedFg := firstNonEmpty(
		palette.BrightGreen,
		palette.Green,
		palette.Foreground,
	)
	starFg := firstNonEmpty(
		palette.Yellow,
		palette.BrightYellow,
		palette.Foreground,
	)
	return Theme{
		Status: ThemeStatus{
			Bg:     palette.Background,
			Fg:     palette.Foreground,
			Dim:    dim,
			ModeBg: accent,
			ModeFg: palette.Background,
			TabBg:  accent,
			TabFg:  palette.Background,
		},
		List: ThemeList{
			UnreadFg:   unreadFg,
			SelectedFg: selectedFg,
			ReadFg:     palette.Foreground,
			SelectedBg: palette.Background,
			StarFg:     starFg,
		},
		Detail: ThemeDetail{
			SummaryFg:      palette.Foreground,
			BorderSelected: accent,
			BorderNormal:   dim,
			HeaderLabelFg:  dim,
			HeaderValueFg:  palette.Foreground,
		},
		Priority: ThemePriority{
			High:    firstNonEmpty(palette.Red, palette.Foreground),
			Medium:  firstNonEmpty(palette.Yellow, palette.Foreground),
			Low:     firstNonEmpty(palette.Green, palette.Foreground),
			Spam:    dim,
			BadgeFg: palette.Background,
		},
		Modal: ThemeModal{
			FooterFg: dim,
		},
	}
}

func mergeTheme(base, override Theme) Theme {
	out := override
	for i, dst := range themeFields(&out) {
		fillIfEmpty(dst, *themeFields(&base)[i])
	}
	return out
}

// themeFields lists every color slot in a stable order.
func themeFields(t *Theme) []*string {
	return []*string{
		&t.Status.Bg, &t.Status.Fg, &t.Status.Dim,
		&t.Status.ModeBg, &t.Status.ModeFg, &t.Status.TabBg, &t.Status.TabFg,

		&t.List.UnreadFg, &t.List.SelectedFg, &t.List.ReadFg, &t.List.SelectedBg, &t.List.StarFg,

		&t.Detail.SummaryFg, &t.Detail.BorderSelected, &t.Detail.BorderNormal,
		&t.Detail.HeaderLabelFg, &t.Detail.HeaderValueFg,

		&t.Priority.High, &t.Priority.Medium, &t.Priority.Low, &t.Priority.Spam, &t.Priority.BadgeFg,

		&t.Modal.FooterFg,
	}
}

func fillIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

func paletteForTheme(name string) (*themes.Theme, error) {
	themeName := strings.TrimSpace(name)
	if themeName == "" {
		themeName = defaultDarkTheme
	}
	palette, err := themes.GetTheme(themeName)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", themeName, err)
	}
	return palette, nil
}

func resolveThemeColorNames(theme Theme, palette *themes.Theme) Theme {
	for _, field := range themeFields(&theme) {
		*field = resolveColorName(*field, palette)
	}
	return theme
}

func resolveColorName(value string, palette *themes.Theme) string {
	if palette == nil {
		return value
	}
	switch normalizeColorName(value) {
	case "foreground":
		return palette.Foreground
	case "background":
		return palette.Background
	case "cursor":
		return palette.Cursor
	case "black":
		return palette.Black
	case "red":
		return palette.Red
	case "green":
		return palette.Green
	case "yellow":
		return palette.Yellow
	case "blue":
		return palette.Blue
	case "magenta":
		return palette.Magenta
	case "cyan":
		return palette.Cyan
	case "white":
		return palette.White
	case "brightblack":
		return palette.BrightBlack
	case "brightred":
		return palette.BrightRed
	case "brightgreen":
		return palette.BrightGreen
	case "brightyellow":
		return palette.BrightYellow
	case "brightblue":
		return palette.BrightBlue
	case "brightmagenta":
		return palette.BrightMagenta
	case "brightcyan":
		return palette.BrightCyan
	case "brightwhite":
		return palette.BrightWhite
	default:
		return value
	}
}

func normalizeColorName(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return normalized
}
