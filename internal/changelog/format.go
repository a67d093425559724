package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kacl-dev/kacl/internal/output"
)

// SectionStyle defines the color and icon for a change section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps lower-cased section titles to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultSectionStyle = SectionStyle{Color: color.New(color.FgWhite), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatVersion writes a single version with its sections to the writer.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeVersionHeader(v, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range v.sections {
		if err := writeSection(s, w, opts, width); err != nil {
			return fmt.Errorf("formatting section %s: %w", s.Title, err)
		}
	}
	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(v *Version, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case v.IsUnreleased() || v.version == "":
		header = v.Title
	case v.date != "":
		header = fmt.Sprintf("v%s (%s)", v.version, v.date)
	default:
		header = fmt.Sprintf("v%s", v.version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a section header followed by its items.
func writeSection(s *Section, w io.Writer, opts FormatOptions, width int) error {
	style, ok := sectionStyles[strings.ToLower(s.Title)]
	if !ok {
		style = defaultSectionStyle
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", s.Title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(s.Title)); err != nil {
			return err
		}
	}

	for _, item := range s.items {
		if err := writeItem(item, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeItem writes a single entry with optional wrapping.
func writeItem(item string, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, item)
		return err
	}

	wrapped := wrapText(item, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// FormatDiagnostics writes validation errors compiler-style:
//
//	CHANGELOG.md:12:4: error: Date '2020-1-01' does not match the format YYYY-MM-DD
//	## 1.0.0 - 2020-1-01
//	          ^~~~~~~~~
func FormatDiagnostics(file string, result ValidationResult, w io.Writer, opts FormatOptions) error {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	if opts.Plain {
		plain := fmt.Sprint
		bold, red, green = plain, plain, plain
	}

	for _, e := range result.Errors {
		location := file
		if e.LineNumber != nil {
			location = fmt.Sprintf("%s:%d", file, *e.LineNumber)
			if e.StartColumn != nil {
				location = fmt.Sprintf("%s:%d", location, *e.StartColumn+1)
			}
		}
		if _, err := fmt.Fprintf(w, "%s: %s %s\n", bold(location), red("error:"), e.Message); err != nil {
			return err
		}

		if e.Line == nil {
			continue
		}
		if _, err := fmt.Fprintln(w, *e.Line); err != nil {
			return err
		}
		if e.StartColumn != nil && e.EndColumn != nil {
			if _, err := fmt.Fprintln(w, strings.Repeat(" ", *e.StartColumn)+green(caret(*e.StartColumn, *e.EndColumn))); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("%d error(s) found", len(result.Errors))
	if result.IsValid() {
		summary = "Changelog is valid"
	}
	_, err := fmt.Fprintf(w, "%s\n", summary)
	return err
}

// caret returns "^" followed by "~" for the rest of the span.
func caret(start, end int) string {
	if end-start <= 1 {
		return "^"
	}
	return "^" + strings.Repeat("~", end-start-1)
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
