package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reflow/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor switches all rendering to plain text. Call it before any
// output when stdout is not a terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// DelayStyle colors a delay by size: late finishes red or yellow, early
// finishes green.
func DelayStyle(delayMin int) lipgloss.Style {
	switch {
	case delayMin >= 240:
		return StyleRed
	case delayMin > 0:
		return StyleYellow
	case delayMin < 0:
		return StyleGreen
	default:
		return StyleDim
	}
}

// ViolationBadge returns a colored label for a violation kind.
func ViolationBadge(kind scheduler.ViolationKind) string {
	switch kind {
	case scheduler.ViolationDependency:
		return StyleRed.Render("● dependency")
	case scheduler.ViolationWorkCenterOverlap:
		return StyleRed.Render("● overlap")
	case scheduler.ViolationMaintenance:
		return StyleYellow.Render("● maintenance")
	case scheduler.ViolationOffShift:
		return StyleYellow.Render("● off shift")
	case scheduler.ViolationUnknownWorkCenter:
		return StylePurple.Render("● unknown center")
	default:
		return StyleDim.Render("● " + string(kind))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
