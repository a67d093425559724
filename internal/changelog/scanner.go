package changelog

import (
	"regexp"
	"strings"
)

// heading is a heading line located by the scanner.
type heading struct {
	depth   int
	start   int // offset of the first '#'
	lineEnd int // offset of the terminating '\n', or len(text)
	line    int // 0-based line index
	title   string
}

// scanHeadings returns one Element per heading of exactly startDepth '#'
// characters. Each body runs to the next heading whose depth lies within
// [startDepth, endDepth], or to the end of text. Deeper headings stay in
// the body. lineOffset is added to the 1-based line numbers.
func scanHeadings(text string, startDepth, endDepth, lineOffset int) []*Element {
	var found []heading

	offset := 0
	for line := 0; offset <= len(text); line++ {
		end := strings.IndexByte(text[offset:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += offset
		}

		if depth, title, ok := parseHeadingLine(text[offset:end]); ok && depth >= startDepth && depth <= endDepth {
			found = append(found, heading{depth: depth, start: offset, lineEnd: end, line: line, title: title})
		}

		if end == len(text) {
			break
		}
		offset = end + 1
	}

	var elements []*Element
	for i, h := range found {
		if h.depth != startDepth {
			continue
		}
		bodyEnd := len(text)
		if i+1 < len(found) {
			bodyEnd = found[i+1].start
		}
		bodyStart := h.lineEnd + 1
		if bodyStart > bodyEnd {
			bodyStart = bodyEnd
		}
		elements = append(elements, &Element{
			Raw:        text[h.start:bodyEnd],
			Title:      h.title,
			Body:       text[bodyStart:bodyEnd],
			Start:      h.start,
			LineNumber: lineOffset + 1 + h.line,
		})
	}
	return elements
}

// parseHeadingLine reports the depth and trimmed title of an ATX heading line.
// The '#' run must be followed by a space or tab.
func parseHeadingLine(line string) (int, string, bool) {
	depth := 0
	for depth < len(line) && line[depth] == '#' {
		depth++
	}
	if depth == 0 || depth >= len(line) {
		return 0, "", false
	}
	if c := line[depth]; c != ' ' && c != '\t' {
		return 0, "", false
	}
	return depth, strings.TrimSpace(line[depth:]), true
}

var linkRefLine = regexp.MustCompile(`(?m)^\[([^\]\n]+)\]:[ \t]*(\S.*?)[ \t]*$`)

// linkRefs is the result of extracting link reference definitions.
type linkRefs struct {
	// split is the offset of the newline preceding the first definition,
	// or -1 when there are none.
	split int
	byID  map[string]*Element
	order []string
}

// extractLinkReferences finds "[id]: url" lines that follow a newline.
// A later definition of the same id replaces the earlier one.
func extractLinkReferences(text string) linkRefs {
	refs := linkRefs{split: -1, byID: map[string]*Element{}}

	for _, m := range linkRefLine.FindAllStringSubmatchIndex(text, -1) {
		start := m[0]
		if start == 0 {
			continue
		}
		if refs.split < 0 {
			refs.split = start - 1
		}
		id := strings.TrimSpace(text[m[2]:m[3]])
		if _, seen := refs.byID[id]; !seen {
			refs.order = append(refs.order, id)
		}
		refs.byID[id] = &Element{
			Raw:        text[m[0]:m[1]],
			Title:      id,
			Body:       text[m[4]:m[5]],
			Start:      start,
			LineNumber: strings.Count(text[:start], "\n") + 1,
		}
	}
	return refs
}
