package changelog

import (
	"fmt"
	"io"
	"strings"
)

// Serialize renders the document back to Keep a Changelog markdown.
//
// The output is idempotent: parsing and serializing it again yields the
// same text.
func Serialize(d *Document) string {
	var b strings.Builder

	if h := d.Header(); h != nil {
		b.WriteString("# " + h.Title + "\n")
		b.WriteString(h.Body)
	}

	blocks := make([]string, 0, len(d.versions))
	for _, v := range d.versions {
		blocks = append(blocks, renderVersionBlock(v))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))

	if refs := renderLinkReferences(d); len(refs) > 0 {
		if len(blocks) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.Join(refs, "\n"))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// SerializeVersion renders a single version block without document links.
func SerializeVersion(v *Version) string {
	return renderVersionBlock(v) + "\n"
}

// RenderMarkdown writes the serialized document to w.
func RenderMarkdown(d *Document, w io.Writer) error {
	if _, err := io.WriteString(w, Serialize(d)); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// renderVersionBlock writes the heading, then each section heading with one
// "- item" line per entry. Trailing blank lines are trimmed.
func renderVersionBlock(v *Version) string {
	lines := []string{versionHeading(v)}
	for _, s := range v.sections {
		lines = append(lines, "### "+s.Title)
		for _, item := range s.items {
			lines = append(lines, "- "+item)
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// versionHeading formats the version heading line:
//
//	## [1.0.0] - 2020-01-01   linked
//	## 1.0.0 - 2020-01-01     unlinked
//	## Unreleased             no date
func versionHeading(v *Version) string {
	if v.version == "" {
		return "## " + v.Title
	}
	id := v.version
	if v.link != nil {
		id = "[" + id + "]"
	}
	if v.date != "" {
		return "## " + id + " - " + v.date
	}
	return "## " + id
}

// renderLinkReferences returns "[id]: url" lines for linked versions in
// document order.
func renderLinkReferences(d *Document) []string {
	var refs []string
	for _, v := range d.versions {
		if v.link != nil && v.version != "" {
			refs = append(refs, "["+v.version+"]: "+v.link.Body)
		}
	}
	return refs
}
