package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	MiscStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	FocusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)
)

// Probability bands, highest first
var (
	LikelyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	EvenStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")).Bold(true)
	UnlikelyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB923C")).Bold(true)
	RareStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
)

// ProbabilityStyle picks the colour band for a percentage.
func ProbabilityStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 75:
		return LikelyStyle
	case percent >= 50:
		return EvenStyle
	case percent >= 25:
		return UnlikelyStyle
	default:
		return RareStyle
	}
}
