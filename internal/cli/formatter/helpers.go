package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatInstant renders t in UTC at minute precision, e.g. "2025-11-11 09:00".
func FormatInstant(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatDelay renders a signed delay such as "+1h 30m", "-3h" or "0m".
func FormatDelay(delayMin int) string {
	switch {
	case delayMin > 0:
		return "+" + FormatMinutes(delayMin)
	case delayMin < 0:
		return "-" + FormatMinutes(-delayMin)
	default:
		return "0m"
	}
}

// DelayCell is FormatDelay colored with DelayStyle.
func DelayCell(delayMin int) string {
	return DelayStyle(delayMin).Render(FormatDelay(delayMin))
}

// OrDash returns s, or a dimmed "--" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return StyleDim.Render("--")
	}
	return s
}
