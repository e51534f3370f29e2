// Package style holds the palette and icons shared by the logger and the reporter.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Amber  = lipgloss.Color("#D97706")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#3B82F6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Skip    = "↷"
	Dot     = "●"
)
