package styles

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "●"
	SymbolPending = "○"
	SymbolArrow   = "→"
)

// NoColor checks if colors should be disabled.
func NoColor() bool {
	return os.Getenv("NO_COLOR") != "" || os.Getenv("RIF_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled.
// When enabled: no animations, no spinner, simplified output.
func IsAccessible() bool {
	return os.Getenv("RIF_ACCESSIBLE") == "1" || os.Getenv("RIF_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Dim       = lipgloss.NewStyle().Foreground(Muted)
	Underline = lipgloss.NewStyle().Underline(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Staging indicators
	Added     = lipgloss.NewStyle().Foreground(ColorAdded)
	Forced    = lipgloss.NewStyle().Foreground(ColorForced)
	Deleted   = lipgloss.NewStyle().Foreground(ColorDeleted)
	Untracked = lipgloss.NewStyle().Foreground(ColorUntracked)

	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Tracking status
	FreshStyle = lipgloss.NewStyle().Foreground(ColorFresh)
	StaleStyle = lipgloss.NewStyle().Foreground(ColorStale).Bold(true)

	// Interactive TUI
	SelectedStyle = lipgloss.NewStyle().
			Background(BgHighlight).
			Foreground(TextPrimary)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

// render applies a style if colors are enabled.
func render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// Status renders a tracking status ("Fresh"/"Stale"/"Neutral") with color.
func Status(status string) string {
	switch status {
	case "Fresh":
		return render(FreshStyle, status)
	case "Stale":
		return render(StaleStyle, status)
	default:
		return render(MutedStyle, status)
	}
}

// Path formats a file path. Paths are primary text, no special color.
func Path(path string) string {
	return path
}

// StagePrefix returns a colored prefix for staged-change listings.
func StagePrefix(kind string) string {
	switch kind {
	case "new", "register":
		return render(Added, "new file")
	case "modified", "add":
		return render(Added, "modified")
	case "forced", "force":
		return render(Forced, "forced  ")
	case "deleted", "delete":
		return render(Deleted, "deleted ")
	case "untracked":
		return render(Untracked, "?")
	default:
		return kind
	}
}

// SuccessMsg formats a success message with checkmark.
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message.
func ErrorMsg(title string) string {
	return render(ErrorStyle, "error: "+title)
}

// WarningMsg formats a warning message.
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", render(WarningStyle, symbol), msg)
}

// InfoMsg formats an info message.
func InfoMsg(msg string) string {
	return render(InfoStyle, msg)
}

// MutedMsg formats muted/secondary text.
func MutedMsg(msg string) string {
	return render(MutedStyle, msg)
}

// SectionHeader formats a section header.
func SectionHeader(title string) string {
	return render(Bold, title)
}

// HelpLine formats a help line (key + description).
func HelpLine(key, description string) string {
	return fmt.Sprintf("  %s %s", render(HelpKey, key), render(MutedStyle, description))
}

// Indent returns text indented by n spaces.
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func Green(s string) string       { return render(Added, s) }
func Red(s string) string         { return render(Deleted, s) }
func Yellow(s string) string      { return render(Forced, s) }
func Cyan(s string) string        { return render(InfoStyle, s) }
func Mute(s string) string        { return render(MutedStyle, s) }
func SuccessText(s string) string { return render(SuccessStyle, s) }
func WarningText(s string) string { return render(WarningStyle, s) }
func ErrorText(s string) string   { return render(ErrorStyle, s) }

func Greenf(format string, a ...any) string   { return Green(fmt.Sprintf(format, a...)) }
func Redf(format string, a ...any) string     { return Red(fmt.Sprintf(format, a...)) }
func Cyanf(format string, a ...any) string    { return Cyan(fmt.Sprintf(format, a...)) }
func Mutef(format string, a ...any) string    { return Mute(fmt.Sprintf(format, a...)) }
func Boldf(format string, a ...any) string    { return Bold.Render(fmt.Sprintf(format, a...)) }
func Errorf(format string, a ...any) string   { return ErrorText(fmt.Sprintf(format, a...)) }
func Successf(format string, a ...any) string { return SuccessText(fmt.Sprintf(format, a...)) }
func Warningf(format string, a ...any) string { return WarningText(fmt.Sprintf(format, a...)) }
