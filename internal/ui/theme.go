package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Tag lipgloss.Color

	// TileAccents cycles down the rows so neighbouring tiles are easy to
	// tell apart.
	TileAccents []lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		Tag: lipgloss.Color("#f5c2e7"),

		TileAccents: []lipgloss.Color{
			"#89b4fa", "#a6e3a1", "#f5c2e7", "#f9e2af",
			"#89dceb", "#fab387", "#cba6f7", "#f38ba8",
		},
	}
}

// LightTheme returns a light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#dce0e8"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		Tag: lipgloss.Color("#ea76cb"),

		TileAccents: []lipgloss.Color{
			"#1e66f5", "#40a02b", "#ea76cb", "#df8e1d",
			"#04a5e5", "#fe640b", "#8839ef", "#d20f39",
		},
	}
}

// ThemeByName resolves a config theme name, falling back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Tiles
	Tile      lipgloss.Style
	TileEmpty lipgloss.Style
	TileTitle lipgloss.Style
	TileSub   lipgloss.Style
	TileTag   lipgloss.Style
	TileIndex lipgloss.Style

	// Text
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Tile = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Border).PaddingLeft(1)
	s.TileEmpty = lipgloss.NewStyle().Foreground(t.TextSubtle).Faint(true)
	s.TileTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.TileSub = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.TileTag = lipgloss.NewStyle().Foreground(t.Tag).Bold(true)
	s.TileIndex = lipgloss.NewStyle().Foreground(t.TextSubtle)

	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
