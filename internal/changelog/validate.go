package changelog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ValidationError is a single diagnostic. Line and the column fields are nil
// when the problem is not tied to a source line. Columns are 0-based byte
// offsets into Line; EndColumn is exclusive.
type ValidationError struct {
	Line        *string `json:"line" yaml:"line"`
	LineNumber  *int    `json:"line_number" yaml:"line_number"`
	StartColumn *int    `json:"start_char_pos" yaml:"start_char_pos"`
	EndColumn   *int    `json:"end_character_pos" yaml:"end_character_pos"`
	Message     string  `json:"error_message" yaml:"error_message"`
}

func (e ValidationError) Error() string {
	if e.LineNumber != nil {
		return fmt.Sprintf("line %d: %s", *e.LineNumber, e.Message)
	}
	return e.Message
}

// ValidationResult accumulates the diagnostics of one Validate run.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid reports whether no diagnostics were raised.
func (r ValidationResult) IsValid() bool { return len(r.Errors) == 0 }

// ValidationReport is the machine-readable form of a ValidationResult.
type ValidationReport struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"errors" yaml:"errors"`
}

// Report converts the result into its serializable shape. Errors is never nil.
func (r ValidationResult) Report() ValidationReport {
	errs := r.Errors
	if errs == nil {
		errs = []ValidationError{}
	}
	return ValidationReport{Valid: r.IsValid(), Errors: errs}
}

// MarshalJSON encodes the result as {"valid": ..., "errors": [...]}.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Report())
}

func (r *ValidationResult) add(message string) {
	r.Errors = append(r.Errors, ValidationError{Message: message})
}

// addLine records an error on line lineNumber. A negative start omits columns.
func (r *ValidationResult) addLine(line string, lineNumber int, message string, start, end int) {
	e := ValidationError{Line: &line, LineNumber: &lineNumber, Message: message}
	if start >= 0 && end >= start {
		e.StartColumn = &start
		e.EndColumn = &end
	}
	r.Errors = append(r.Errors, e)
}

var (
	linkedVersionHeading   = regexp.MustCompile(`^##\s+\[` + semverPattern + `\](\s|$)`)
	unlinkedVersionHeading = regexp.MustCompile(`^##\s+` + semverPattern + `(\s|$)`)
	versionToken           = regexp.MustCompile(`^#+\s+\[?([^\s\]\[]+)`)
	bracketSpan            = regexp.MustCompile(`\[[^\]]*\]`)
	exactDate              = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	continuationLine       = regexp.MustCompile(`\n[ \t]+`)
)

// Validate checks the document against its rulebook and returns every
// diagnostic found. Rules run in a fixed order so output is stable.
func (d *Document) Validate() ValidationResult {
	var r ValidationResult

	d.validateHeader(&r)
	d.validateVersionFormat(&r)
	d.validateVersionOrder(&r)
	d.validateDates(&r)
	d.validateSectionTitles(&r)
	d.validateSectionItems(&r)
	d.validateOrphanChanges(&r)
	d.validateDanglingLinks(&r)
	d.validateUnusedLinks(&r)

	return r
}

func (d *Document) validateHeader(r *ValidationResult) {
	if len(d.headers) == 0 {
		r.add("Changelog has no top-level heading")
		return
	}

	h := d.headers[0]
	line := firstLine(h.Raw)
	if h.Start != 0 {
		r.addLine(line, h.LineNumber, "Changelog heading must be the first line of the document", -1, -1)
	}

	for _, extra := range d.headers[1:] {
		l := firstLine(extra.Raw)
		start, end := locate(l, extra.Title)
		r.addLine(l, extra.LineNumber, fmt.Sprintf("Unexpected additional top-level heading '%s'", extra.Title), start, end)
	}

	if !containsTitle(d.config.AllowedHeaderTitles, h.Title, d.config.HeaderCaseSensitive) {
		start, end := locate(line, h.Title)
		r.addLine(line, h.LineNumber, fmt.Sprintf("Header title '%s' is not allowed. Allowed titles: %s",
			h.Title, strings.Join(d.config.AllowedHeaderTitles, ", ")), start, end)
	}

	if d.config.CheckDefaultContent {
		body := collapseSpace(h.Body)
		for _, want := range d.config.DefaultContent {
			if !strings.Contains(body, collapseSpace(want)) {
				r.addLine(line, h.LineNumber, fmt.Sprintf("Missing default content '%s'", want), -1, -1)
			}
		}
	}
}

func (d *Document) validateVersionFormat(r *ValidationResult) {
	for _, v := range d.versions {
		if v.IsUnreleased() {
			continue
		}
		line := firstLine(v.Raw)
		if v.link != nil && linkedVersionHeading.MatchString(line) {
			continue
		}
		if v.link == nil && unlinkedVersionHeading.MatchString(line) {
			continue
		}
		if v.link == nil && linkedVersionHeading.MatchString(line) {
			// bracketed without a reference; reported as a dangling link
			continue
		}

		token, start, end := headingToken(line)
		msg := fmt.Sprintf("'%s' is not a valid semantic version", token)
		if v.link != nil && IsValidVersion(token) {
			msg = fmt.Sprintf("Version '%s' has a link reference and must be enclosed in brackets", token)
		}
		r.addLine(line, v.LineNumber, msg, start, end)
	}
}

func (d *Document) validateVersionOrder(r *ValidationResult) {
	var released []*Version
	for _, v := range d.versions {
		if !v.IsUnreleased() {
			released = append(released, v)
		}
	}

	for i := 1; i < len(released); i++ {
		newer, older := released[i-1], released[i]
		c, err := CompareVersions(older.version, newer.version, d.config.PostReleasePrefix)
		if err != nil || c < 0 {
			continue
		}
		line := firstLine(older.Raw)
		start, end := locate(line, older.version)
		r.addLine(line, older.LineNumber, fmt.Sprintf("Versions are not in descending order: '%s' is not lower than '%s'",
			older.version, newer.version), start, end)
	}
}

func (d *Document) validateDates(r *ValidationResult) {
	for _, v := range d.versions {
		if v.IsUnreleased() {
			continue
		}
		line := firstLine(v.Raw)

		tail := ""
		if i := strings.Index(line, " - "); i >= 0 {
			tail = strings.TrimSpace(line[i+3:])
		}
		if tail == "" {
			if v.date == "" {
				r.addLine(line, v.LineNumber, fmt.Sprintf("Version '%s' is missing a release date", v.Title), -1, -1)
			}
			continue
		}

		token := strings.Fields(tail)[0]
		if !exactDate.MatchString(token) {
			start, end := locate(line, token)
			r.addLine(line, v.LineNumber, fmt.Sprintf("Date '%s' does not match the format YYYY-MM-DD", token), start, end)
		}
	}
}

func (d *Document) validateSectionTitles(r *ValidationResult) {
	for _, v := range d.versions {
		for _, s := range v.sections {
			if containsTitle(d.config.AllowedVersionSections, s.Title, d.config.SectionCaseSensitive) {
				continue
			}
			line := firstLine(s.Raw)
			start, end := locate(line, s.Title)
			r.addLine(line, s.LineNumber, fmt.Sprintf("Invalid change type '%s'. Allowed types: %s",
				s.Title, strings.Join(d.config.AllowedVersionSections, ", ")), start, end)
		}
	}
}

func (d *Document) validateSectionItems(r *ValidationResult) {
	for _, v := range d.versions {
		for _, s := range v.sections {
			folded := continuationLine.ReplaceAllString(s.Body, " ")
			for _, l := range strings.Split(folded, "\n") {
				if strings.TrimSpace(l) == "" || strings.HasPrefix(l, "-") {
					continue
				}
				r.addLine(strings.TrimSpace(s.Body), s.LineNumber,
					fmt.Sprintf("Section '%s' may only contain list items", s.Title), -1, -1)
				break
			}
		}
	}
}

func (d *Document) validateOrphanChanges(r *ValidationResult) {
	for _, v := range d.versions {
		if len(v.sections) == 0 && strings.TrimSpace(v.Body) != "" {
			r.addLine(firstLine(v.Raw), v.LineNumber,
				fmt.Sprintf("Version '%s' has changes outside of a section", v.Title), -1, -1)
		}
	}
}

func (d *Document) validateDanglingLinks(r *ValidationResult) {
	for _, v := range d.versions {
		if v.link != nil {
			continue
		}
		line := firstLine(v.Raw)
		if loc := bracketSpan.FindStringIndex(line); loc != nil {
			r.addLine(line, v.LineNumber, fmt.Sprintf("Version '%s' is bracketed but has no link reference", v.Title),
				loc[0], loc[1])
		}
	}
}

func (d *Document) validateUnusedLinks(r *ValidationResult) {
	for _, id := range d.linkOrder {
		if d.isVersionID(id) {
			continue
		}
		ref := d.links[id]
		start, end := locate(ref.Raw, "["+id+"]")
		r.addLine(ref.Raw, ref.LineNumber, fmt.Sprintf("Link reference '%s' does not match any version", id), start, end)
	}
}

// headingToken returns the would-be version token of a heading line and its
// column span.
func headingToken(line string) (string, int, int) {
	m := versionToken.FindStringSubmatchIndex(line)
	if m == nil {
		return strings.TrimLeft(line, "# "), -1, -1
	}
	return line[m[2]:m[3]], m[2], m[3]
}

// locate returns the span of the first occurrence of sub in line, or -1, -1.
func locate(line, sub string) (int, int) {
	if sub == "" {
		return -1, -1
	}
	i := strings.Index(line, sub)
	if i < 0 {
		return -1, -1
	}
	return i, i + len(sub)
}

func containsTitle(allowed []string, title string, caseSensitive bool) bool {
	for _, a := range allowed {
		if a == title || (!caseSensitive && strings.EqualFold(a, title)) {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
