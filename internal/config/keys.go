package config

type KeyMap struct {
	List   ListKeyMap   `toml:"list"`
	Detail DetailKeyMap `toml:"detail"`
	SignIn SignInKeyMap `toml:"sign_in"`
}

type ListKeyMap struct {
	Up              []string `toml:"up"`
	Down            []string `toml:"down"`
	PageUp          []string `toml:"page_up"`
	PageDown        []string `toml:"page_down"`
	Open            []string `toml:"open"`
	Refresh         []string `toml:"refresh"`
	CycleAge        []string `toml:"cycle_age"`
	CyclePriority   []string `toml:"cycle_priority"`
	CycleVisibility []string `toml:"cycle_visibility"`
	ResetFilter     []string `toml:"reset_filter"`
	ToggleLayout    []string `toml:"toggle_layout"`
	ToggleTheme     []string `toml:"toggle_theme"`
	SignOut         []string `toml:"sign_out"`
	Help            []string `toml:"help"`
	Quit            []string `toml:"quit"`
}

type DetailKeyMap struct {
	Up          []string `toml:"up"`
	Down        []string `toml:"down"`
	ScrollUp    []string `toml:"scroll_up"`
	ScrollDown  []string `toml:"scroll_down"`
	ToggleTheme []string `toml:"toggle_theme"`
	Back        []string `toml:"back"`
	Help        []string `toml:"help"`
	Quit        []string `toml:"quit"`
}

type SignInKeyMap struct {
	SignIn []string `toml:"sign_in"`
	Quit   []string `toml:"quit"`
}
