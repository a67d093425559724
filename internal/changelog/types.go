package changelog

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Element is a positioned span of changelog text: a heading line together
// with the body that follows it, or a single link-reference line.
type Element struct {
	// Raw is the full span, heading line included.
	Raw string
	// Title is the trimmed heading text after the '#' markers, or the id of a
	// link reference.
	Title string
	// Body is the text after the heading line, or the URL of a link reference.
	Body string
	// Start is the byte offset of the element within the scanned text.
	Start int
	// LineNumber is the 1-based line of the heading in the source document.
	LineNumber int
}

// semverPattern is the official Semantic Versioning 2.0.0 regular expression
// without anchors, so it can be searched for inside a heading.
const semverPattern = `(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
	`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
	`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`

var (
	semverSearch = regexp.MustCompile(semverPattern)
	semverExact  = regexp.MustCompile(`^` + semverPattern + `$`)
	dateSearch   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// Unreleased is the version identifier of the pending-changes block.
const Unreleased = "Unreleased"

// Version is a level-two block of the changelog.
type Version struct {
	Element

	version  string
	date     string
	link     *Element
	sections []*Section
}

// newVersion derives the version, date and sections of a scanned element.
func newVersion(el *Element) *Version {
	v := &Version{Element: *el}
	v.version = extractVersion(el.Title)
	v.date = dateSearch.FindString(el.Title)

	for _, s := range scanHeadings(el.Body, 3, 3, el.LineNumber) {
		v.putSection(newSection(s))
	}
	return v
}

// NewVersion creates an empty version block with a bracket-free heading.
func NewVersion(version, date string) *Version {
	v := &Version{version: version, date: date}
	v.syncHeading()
	return v
}

func extractVersion(title string) string {
	if m := semverSearch.FindString(title); m != "" {
		return m
	}
	if strings.Contains(strings.ToLower(title), "unreleased") {
		return Unreleased
	}
	return ""
}

// Version returns the semantic version in the heading, "Unreleased" for the
// pending block, or "" when neither is present.
func (v *Version) Version() string { return v.version }

// Date returns the YYYY-MM-DD release date, or "".
func (v *Version) Date() string { return v.date }

// Link returns the link reference bound to this version, if any.
func (v *Version) Link() *Element { return v.link }

// IsUnreleased reports whether this is the pending-changes block.
func (v *Version) IsUnreleased() bool { return v.version == Unreleased }

// Sections returns the change sections in document order.
func (v *Version) Sections() []*Section { return v.sections }

// Changes returns the section with the given title (case-insensitive), or nil.
func (v *Version) Changes(title string) *Section {
	for _, s := range v.sections {
		if strings.EqualFold(s.Title, title) {
			return s
		}
	}
	return nil
}

// HasChanges reports whether any section holds at least one item.
func (v *Version) HasChanges() bool {
	for _, s := range v.sections {
		if len(s.items) > 0 {
			return true
		}
	}
	return false
}

// Add appends entry to the named section, creating it when missing.
// The section title is capitalized, so "added" becomes "Added".
func (v *Version) Add(section, entry string) {
	title := capitalizeTitle(section)
	s := v.Changes(title)
	if s == nil {
		s = &Section{Element: Element{Title: title}}
		v.sections = append(v.sections, s)
	}
	s.Add(entry)
}

// SetVersion replaces the version identifier and rewrites the heading.
func (v *Version) SetVersion(version string) {
	v.version = version
	v.syncHeading()
}

// SetDate replaces the release date and rewrites the heading.
func (v *Version) SetDate(date string) {
	v.date = date
	v.syncHeading()
}

// SetLink binds a link reference to the version. An empty url removes it.
func (v *Version) SetLink(url string) {
	if url == "" {
		v.link = nil
	} else {
		v.link = &Element{Title: v.version, Body: url, Raw: "[" + v.version + "]: " + url}
	}
	v.syncHeading()
}

// ClearSections removes every section from the version.
func (v *Version) ClearSections() {
	v.sections = nil
	v.Body = ""
	v.Raw = "## " + v.Title + "\n"
}

// putSection appends s, replacing an existing section of the same title in place.
func (v *Version) putSection(s *Section) {
	for i, existing := range v.sections {
		if existing.Title == s.Title {
			v.sections[i] = s
			return
		}
	}
	v.sections = append(v.sections, s)
}

func (v *Version) syncHeading() {
	v.Title = strings.TrimPrefix(versionHeading(v), "## ")
	if i := strings.IndexByte(v.Raw, '\n'); i >= 0 {
		v.Raw = "## " + v.Title + v.Raw[i:]
	} else {
		v.Raw = "## " + v.Title + "\n"
	}
}

// Section is a level-three block grouping list items under a title such as
// "Added" or "Fixed".
type Section struct {
	Element

	items []string
}

func newSection(el *Element) *Section {
	return &Section{Element: *el, items: splitItems(el.Body)}
}

// Items returns the list entries with continuation lines folded in.
func (s *Section) Items() []string { return s.items }

// Add appends an entry to the section. A multi-line entry is folded onto
// one line.
func (s *Section) Add(entry string) {
	var parts []string
	for _, line := range strings.Split(entry, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	if len(parts) == 0 {
		return
	}
	s.items = append(s.items, strings.Join(parts, " "))
}

// splitItems breaks a section body into list items. A '-' at the start of a
// line opens an item; following lines are continuations joined by one space.
func splitItems(body string) []string {
	var (
		items   []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			if item := strings.TrimSpace(strings.Join(current, " ")); item != "" {
				items = append(items, item)
			}
		}
		current = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "-") {
			flush()
			line = line[1:]
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			current = append(current, trimmed)
		}
	}
	flush()
	return items
}

// capitalizeTitle upper-cases the first letter and lower-cases the rest.
func capitalizeTitle(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
