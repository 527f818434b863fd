package ui

import "github.com/charmbracelet/lipgloss"

// ANSI escape codes for simple terminal output (CLI commands)
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	BoldRed = "\033[1;31m"
)

// Color palette
var (
	// Brand colors
	Primary   = lipgloss.Color("#7D56F4") // Purple
	Secondary = lipgloss.Color("#00D4AA") // Teal

	// Severity colors
	Critical = lipgloss.Color("#FF0000")
	High     = lipgloss.Color("#FF6B6B")
	Medium   = lipgloss.Color("#FFD93D")
	Low      = lipgloss.Color("#6BCB77")
	Info     = lipgloss.Color("#4D96FF")

	// Status colors
	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")

	// Verdict colors. A vulnerable verdict is the bad outcome here, a
	// refused response means the guardrails held.
	Vulnerable = lipgloss.Color("#FF3838")
	Guarded    = lipgloss.Color("#00D26A")
	Ambiguous  = lipgloss.Color("#FFD93D")
)

// Pre-configured styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true).
			MarginTop(1)

	VulnerableStyle = lipgloss.NewStyle().
			Foreground(Vulnerable).
			Bold(true)

	GuardedStyle = lipgloss.NewStyle().
			Foreground(Guarded)

	AmbiguousStyle = lipgloss.NewStyle().
			Foreground(Ambiguous)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// SeverityStyle returns the style for a severity label.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "critical":
		return lipgloss.NewStyle().Foreground(Critical).Bold(true)
	case "high":
		return lipgloss.NewStyle().Foreground(High)
	case "medium":
		return lipgloss.NewStyle().Foreground(Medium)
	case "low":
		return lipgloss.NewStyle().Foreground(Low)
	default:
		return lipgloss.NewStyle().Foreground(Info)
	}
}

// VerdictStyle returns the style for a verdict line given success and
// confidence.
func VerdictStyle(success bool, confidence float64) lipgloss.Style {
	switch {
	case success:
		return VulnerableStyle
	case confidence == 0.5:
		return AmbiguousStyle
	default:
		return GuardedStyle
	}
}
