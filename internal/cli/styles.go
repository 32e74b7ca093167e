package cli

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme shared by the command output.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	BarFill lipgloss.Color
	BarRest lipgloss.Color
}

var defaultTheme = Theme{
	Accent:  lipgloss.Color("#10B5CB"), // brand teal
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	BarFill: lipgloss.Color("#10B5CB"),
	BarRest: lipgloss.Color("#3A3A3A"),
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// renderBar draws a simple used/limit meter, capped at full.
func (t Theme) renderBar(used, limit, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := 0
	if limit > 0 {
		filled = used * width / limit
	}
	if filled > width {
		filled = width
	}
	fill := lipgloss.NewStyle().Foreground(t.BarFill).Render(repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(t.BarRest).Render(repeat("░", width-filled))
	return fill + rest
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
