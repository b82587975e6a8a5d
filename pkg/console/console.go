// Package console formats user-facing terminal output: status messages,
// tables, reflective struct summaries, a progress spinner and confirmation
// prompts. Styling is applied only when the destination is a terminal.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hacheck/hacheck/pkg/tty"
)

var (
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#D73737", Dark: "#FF5555"})
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#E67E22", Dark: "#FFB86C"})
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#27AE60", Dark: "#50FA7B"})
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"})
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8E44AD", Dark: "#BD93F9"})
	verboseStyle  = lipgloss.NewStyle().Faint(true)
	locationStyle = lipgloss.NewStyle().Bold(true)
	commandStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2980B9", Dark: "#8BE9FD"}).Bold(true)
)

// isStyled is swapped in tests.
var isStyled = tty.IsStderrTerminal

func applyStyle(style lipgloss.Style, text string) string {
	if !isStyled() {
		return text
	}
	return style.Render(text)
}

// IsAccessibleMode reports whether animations and rich prompts should be
// replaced by plain alternatives.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != "" ||
		os.Getenv("TERM") == "dumb" ||
		os.Getenv("NO_COLOR") != ""
}

// FormatErrorMessage formats an error line.
func FormatErrorMessage(message string) string {
	return applyStyle(errorStyle, "✗ ") + message
}

// FormatWarningMessage formats a warning line.
func FormatWarningMessage(message string) string {
	return applyStyle(warningStyle, "⚠ ") + message
}

// FormatSuccessMessage formats a success line.
func FormatSuccessMessage(message string) string {
	return applyStyle(successStyle, "✓ ") + message
}

// FormatInfoMessage formats an informational line.
func FormatInfoMessage(message string) string {
	return applyStyle(infoStyle, "ℹ ") + message
}

// FormatProgressMessage formats a line announcing work in progress.
func FormatProgressMessage(message string) string {
	return applyStyle(progressStyle, "→ ") + message
}

// FormatVerboseMessage formats a detail line shown with --verbose.
func FormatVerboseMessage(message string) string {
	return applyStyle(verboseStyle, "  "+message)
}

// FormatCommandMessage formats a command the user can run.
func FormatCommandMessage(command string) string {
	return applyStyle(commandStyle, "$ "+command)
}

// FormatLocation formats a file position prefix such as "scripts.yaml:4:3".
func FormatLocation(location string) string {
	if location == "" {
		return ""
	}
	return applyStyle(locationStyle, location)
}

// FormatListItem formats one bullet of a list.
func FormatListItem(item string) string {
	return "  • " + item
}

// FormatErrorWithDetails formats an error line followed by indented detail
// lines, one per non-empty line of details.
func FormatErrorWithDetails(message string, details string) string {
	var sb strings.Builder
	sb.WriteString(FormatErrorMessage(message))
	for line := range strings.SplitSeq(details, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(&sb, "\n    %s", line)
	}
	return sb.String()
}
