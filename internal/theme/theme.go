package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/team-tracker/internal/rules"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
)

// ColorFor maps a semantic color token to the palette.
func ColorFor(c rules.Color) lipgloss.AdaptiveColor {
	switch c {
	case rules.ColorError:
		return ColorRed
	case rules.ColorWarning:
		return ColorYellow
	case rules.ColorSuccess:
		return ColorGreen
	case rules.ColorPrimary:
		return ColorBlue
	default:
		return ColorGray
	}
}

// StatusStyle returns a color-coded style for a project, milestone or task status.
func StatusStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(ColorFor(rules.GetStatusColor(status)))
}

// PriorityStyle returns a color-coded style for a priority name.
func PriorityStyle(priority string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorFor(rules.GetPriorityColor(priority)))
}

// tierGlyphs renders task type icons in a terminal.
var tierGlyphs = map[rules.Icon]string{
	rules.IconSmall:   "S",
	rules.IconMedium:  "M",
	rules.IconLarge:   "L",
	rules.IconUnknown: "?",
}

// TaskTypeBadge renders a short badge for a task type.
func TaskTypeBadge(taskType string) string {
	icon := rules.GetTaskTypeIcon(taskType)
	return lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(tierGlyphs[icon])
}
