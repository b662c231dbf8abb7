package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the bodies and panel of the play view.
type Theme struct {
	Name   string
	Hero   lipgloss.Color
	Target lipgloss.Color
	Home   lipgloss.Color
	Body   lipgloss.Color
	Halo   lipgloss.Color
	Aim    lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:   "deepspace",
		Hero:   lipgloss.Color("#ffffff"),
		Target: lipgloss.Color("#00ffff"),
		Home:   lipgloss.Color("#3399ff"),
		Body:   lipgloss.Color("#aa88ff"),
		Halo:   lipgloss.Color("#ffff00"),
		Aim:    lipgloss.Color("#e8c008"), // widget colour
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#666688"),
		Alert:  lipgloss.Color("#ec1e14"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Hero:   lipgloss.Color("#88ff88"),
		Target: lipgloss.Color("#ffff00"),
		Home:   lipgloss.Color("#00cc00"),
		Body:   lipgloss.Color("#008800"),
		Halo:   lipgloss.Color("#ffff00"),
		Aim:    lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Hero:   lipgloss.Color("#ffffff"),
		Target: lipgloss.Color("#ffffff"),
		Home:   lipgloss.Color("#cccccc"),
		Body:   lipgloss.Color("#888888"),
		Halo:   lipgloss.Color("#0088ff"),
		Aim:    lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Alert:  lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeDeepSpace, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

func nextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
