package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants - Dracula theme
const (
	colorCurrentLine = "#44475a"
	colorComment     = "#6272a4"
	colorCyan        = "#8be9fd"
	colorGreen       = "#50fa7b"
	colorOrange      = "#ffb86c"
	colorRed         = "#ff5555"
)

const (
	separatorLine = "─────────────────────────────────────"

	pairSuccessFormat = "✓ %s -> %s"
	pairErrorFormat   = "✗ %s -> %s"

	plainSuccessFormat = "[SUCCESS] %s -> %s"
	plainErrorFormat   = "[FAILED] %s -> %s"

	missingLabelFormat     = "Label '%s' not found in target repository."
	missingMilestoneFormat = "Milestone '%s' not found in target repository."
)

// create a common style with the given foreground color
func color(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// printerStyles contains styles for per-pair console output
type printerStyles struct {
	pairSuccess lipgloss.Style
	pairError   lipgloss.Style
	errorText   lipgloss.Style

	title     lipgloss.Style
	missing   lipgloss.Style
	complete  lipgloss.Style
	separator lipgloss.Style
	path      lipgloss.Style
}

func newPrinterStyles() printerStyles {
	return printerStyles{
		pairSuccess: color(colorGreen).Bold(true),
		pairError:   color(colorRed).Bold(true),
		errorText:   color(colorRed).MarginLeft(2),

		title:     color(colorCyan).Bold(true),
		missing:   color(colorOrange).MarginLeft(2),
		complete:  color(colorGreen).MarginLeft(2),
		separator: color(colorCurrentLine),
		path:      color(colorComment).Italic(true),
	}
}

// plainStyles renders everything unstyled.
func plainStyles() printerStyles {
	plain := lipgloss.NewStyle()
	indented := plain.MarginLeft(2)

	return printerStyles{
		pairSuccess: plain,
		pairError:   plain,
		errorText:   indented,
		title:       plain,
		missing:     indented,
		complete:    indented,
		separator:   plain,
		path:        plain,
	}
}
