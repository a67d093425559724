// Package output provides terminal output helpers for the kacl CLI.
// It has no kacl dependencies so any command package can import it.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// ColorDisabled reports whether colored output should be turned off:
// NO_COLOR is set or stdout is not a terminal.
func ColorDisabled() bool {
	return os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintSuccess prints a green checkmark followed by message, e.g.
// "✓ Released 1.2.0 in CHANGELOG.md".
func PrintSuccess(out io.Writer, format string, args ...any) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// PrintNotice prints a yellow marker followed by message for outcomes that
// are not failures, like an existing file that was left alone.
func PrintNotice(out io.Writer, format string, args ...any) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), fmt.Sprintf(format, args...))
}
