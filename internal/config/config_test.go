package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.withmatt.com/triage/internal/triage"
)

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Account.Email != "" || cfg.Fetch.FetchLimit != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFile_Parses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[account]
email = "me@example.com"

[fetch]
fetch_limit = 20

[filter]
max_age_days = 30
priority = "high"
visibility = "unread"

[ui]
layout = "card"

[theme]
mode = "light"

[theme.dark]
name = "Dracula"

[keys.list]
refresh = ["R"]
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got := cfg.WithDefaults()

	if got.Account.Email != "me@example.com" {
		t.Errorf("email = %q", got.Account.Email)
	}
	if got.Fetch.FetchLimit != 20 || got.Fetch.ListLimit != 100 || got.Fetch.Concurrency != 10 {
		t.Errorf("fetch = %+v", got.Fetch)
	}
	if got.UI.Layout != "card" || got.UI.RefreshIntervalSeconds != 300 {
		t.Errorf("ui = %+v", got.UI)
	}
	if got.Theme.Mode != "light" || got.Theme.Dark.Name != "Dracula" || got.Theme.Light.Name != defaultLightTheme {
		t.Errorf("theme = %+v", got.Theme)
	}
	if len(got.Keys.List.Refresh) != 1 || got.Keys.List.Refresh[0] != "R" {
		t.Errorf("keys.list.refresh = %v", got.Keys.List.Refresh)
	}

	c, err := got.Filter.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	want := triage.Criteria{MaxAgeDays: 30, Priority: triage.PriorityHigh, Visibility: triage.VisibilityUnread}
	if c != want {
		t.Errorf("Criteria = %+v, want %+v", c, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[fetch\nlimit = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	in := &Config{Account: Account{Email: "me@example.com"}}
	if err := SaveFile(path, in); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if out.Account.Email != in.Account.Email {
		t.Errorf("email = %q, want %q", out.Account.Email, in.Account.Email)
	}
}

func TestFilterConfig_Defaults(t *testing.T) {
	c, err := FilterConfig{}.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if c != triage.DefaultCriteria() {
		t.Errorf("Criteria = %+v, want %+v", c, triage.DefaultCriteria())
	}
	if _, err := (FilterConfig{Priority: "urgent"}).Criteria(); err == nil {
		t.Error("expected error for unknown priority")
	}
	if _, err := (FilterConfig{Visibility: "flagged"}).Criteria(); err == nil {
		t.Error("expected error for unknown visibility")
	}
}

func TestLayoutAndMode(t *testing.T) {
	if LayoutList.Toggle() != LayoutCard || LayoutCard.Toggle() != LayoutList {
		t.Error("layout toggle is not an involution")
	}
	if ModeDark.Toggle() != ModeLight || ModeLight.Toggle() != ModeDark {
		t.Error("mode toggle is not an involution")
	}
	if _, err := ParseLayout("grid"); err == nil {
		t.Error("expected error for unknown layout")
	}
	if m, err := ParseMode(" Dark "); err != nil || m != ModeDark {
		t.Errorf("ParseMode = %q, %v", m, err)
	}
	if got := (UIConfig{Layout: "grid"}).WithDefaults().Layout; got != string(LayoutList) {
		t.Errorf("invalid layout defaulted to %q", got)
	}
}

func TestMergeTheme(t *testing.T) {
	base := Theme{Status: ThemeStatus{Bg: "#000", Fg: "#fff"}, Priority: ThemePriority{High: "#f00"}}
	override := Theme{Status: ThemeStatus{Fg: "#eee"}}
	got := mergeTheme(base, override)
	if got.Status.Bg != "#000" || got.Status.Fg != "#eee" || got.Priority.High != "#f00" {
		t.Errorf("merged = %+v", got)
	}
}

func TestNormalizeColorName(t *testing.T) {
	for in, want := range map[string]string{
		"Bright_Black": "brightblack",
		" bright-red ": "brightred",
		"Bright White": "brightwhite",
		"":             "",
	} {
		if got := normalizeColorName(in); got != want {
			t.Errorf("normalizeColorName(%q) = %q, want %q", in, got, want)
		}
	}
	if got := resolveColorName("#123456", nil); got != "#123456" {
		t.Errorf("resolveColorName passthrough = %q", got)
	}
}

func TestOAuthConfig_EnvFallback(t *testing.T) {
	t.Setenv("TRIAGE_OAUTH_CLIENT_ID", "env-id")
	t.Setenv("TRIAGE_OAUTH_CLIENT_SECRET", "env-secret")

	got := OAuthConfig{}.WithDefaults()
	if got.ClientID != "env-id" || got.ClientSecret != "env-secret" {
		t.Errorf("env fallback = %+v", got)
	}
	got = OAuthConfig{ClientID: "file-id"}.WithDefaults()
	if got.ClientID != "file-id" {
		t.Errorf("file value overridden: %+v", got)
	}
}
