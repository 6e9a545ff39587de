package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Alert      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    "#7aa2f7",
		Secondary:  "#7dcfff",
		Foreground: "#c0caf5",
		Muted:      "#565f89",
		Background: "#1a1b26",
		Surface:    "#3b4261",
		Success:    "#9ece6a",
		Warning:    "#e0af68",
		Error:      "#f7768e",
		Alert:      "#bb9af7",
	},
	"gruvbox": {
		Primary:    "#83a598",
		Secondary:  "#8ec07c",
		Foreground: "#ebdbb2",
		Muted:      "#665c54",
		Background: "#282828",
		Surface:    "#3c3836",
		Success:    "#b8bb26",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
		Alert:      "#d3869b",
	},
	"catppuccin": {
		Primary:    "#89b4fa", // Blue
		Secondary:  "#94e2d5", // Teal
		Foreground: "#cdd6f4", // Text
		Muted:      "#6c7086", // Overlay0
		Background: "#1e1e2e", // Base
		Surface:    "#313244", // Surface0
		Success:    "#a6e3a1", // Green
		Warning:    "#f9e2af", // Yellow
		Error:      "#f38ba8", // Red
		Alert:      "#cba6f7", // Mauve
	},
	"onedark": {
		Primary:    "#61afef",
		Secondary:  "#56b6c2",
		Foreground: "#abb2bf",
		Muted:      "#5c6370",
		Background: "#282c34",
		Surface:    "#3e4452",
		Success:    "#98c379",
		Warning:    "#e5c07b",
		Error:      "#e06c75",
		Alert:      "#c678dd",
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
