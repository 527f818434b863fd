package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dividerStyle = lipgloss.NewStyle().Foreground(Muted)

	configLabelStyle = lipgloss.NewStyle().Foreground(Muted).Width(14)
	configValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))

	passStyle = lipgloss.NewStyle().Foreground(Success)
	failStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(Warning)
)

// PrintDivider prints a horizontal rule (to stderr).
func PrintDivider() {
	if Silent() {
		return
	}
	fmt.Fprintln(os.Stderr, dividerStyle.Render(strings.Repeat("-", 60)))
}

// PrintSection prints a section header (to stderr).
func PrintSection(title string) {
	if Silent() {
		return
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, SectionStyle.Render("> "+title))
	PrintDivider()
}

// PrintConfigLine prints a single config line (to stderr).
func PrintConfigLine(key, value string) {
	if Silent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s\n",
		configLabelStyle.Render(key+":"),
		configValueStyle.Render(value),
	)
}

// PrintSuccess prints a success message (to stderr).
func PrintSuccess(message string) {
	if Silent() {
		return
	}
	fmt.Fprintln(os.Stderr, passStyle.Render("  [+] "+message))
}

// PrintError prints an error message (to stderr). Errors print even in
// silent mode.
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, failStyle.Render("  [X] "+message))
}

// PrintWarning prints a warning message (to stderr).
func PrintWarning(message string) {
	if Silent() {
		return
	}
	fmt.Fprintln(os.Stderr, warnStyle.Render("  [!] "+message))
}

// PrintInfo prints an informational message (to stderr).
func PrintInfo(message string) {
	if Silent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s\n", MutedStyle.Render("*"), message)
}
