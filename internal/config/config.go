package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const appConfigDir = "triage"

// Account identifies the signed-in Gmail account
type Account struct {
	Email string `toml:"email"`
}

// OAuthConfig holds the Google oauth client credentials.
type OAuthConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// WithDefaults falls back to TRIAGE_OAUTH_CLIENT_ID and
// TRIAGE_OAUTH_CLIENT_SECRET for unset fields.
func (o OAuthConfig) WithDefaults() OAuthConfig {
	if o.ClientID == "" {
		o.ClientID = os.Getenv("TRIAGE_OAUTH_CLIENT_ID")
	}
	if o.ClientSecret == "" {
		o.ClientSecret = os.Getenv("TRIAGE_OAUTH_CLIENT_SECRET")
	}
	return o
}

// Config represents the triage configuration
type Config struct {
	Account Account      `toml:"account"`
	OAuth   OAuthConfig  `toml:"oauth"`
	Fetch   FetchConfig  `toml:"fetch"`
	Filter  FilterConfig `toml:"filter"`
	UI      UIConfig     `toml:"ui"`
	Theme   ThemeConfig  `toml:"theme"`
	Keys    KeyMap       `toml:"keys"`
}

// WithDefaults fills every unset section with its defaults.
func (c Config) WithDefaults() Config {
	c.OAuth = c.OAuth.WithDefaults()
	c.Fetch = c.Fetch.WithDefaults()
	c.Filter = c.Filter.WithDefaults()
	c.UI = c.UI.WithDefaults()
	c.Theme = c.Theme.WithDefaults()
	return c
}

// ConfigDir returns the directory where config files are stored
func ConfigDir() (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appConfigDir, "config.toml"))
}

// PrefsPath returns the path to the preferences database
func PrefsPath() (string, error) {
	return xdg.StateFile(filepath.Join(appConfigDir, "prefs.sqlite"))
}

// Load reads the config file from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
