package changelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Document is a parsed changelog.
type Document struct {
	headers   []*Element
	versions  []*Version
	links     map[string]*Element
	linkOrder []string
	config    *Config
	content   string
}

// Parse builds a Document from changelog text. A nil cfg selects
// DefaultConfig. Parsing never fails; structural problems are reported by
// Validate.
func Parse(text string, cfg *Config) *Document {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	refs := extractLinkReferences(text)
	body := text
	if refs.split >= 0 {
		body = text[:refs.split]
	}

	doc := &Document{
		headers:   scanHeadings(body, 1, 2, 0),
		links:     refs.byID,
		linkOrder: refs.order,
		config:    cfg,
		content:   text,
	}

	for _, el := range scanHeadings(body, 2, 2, 0) {
		v := newVersion(el)
		if link, ok := refs.byID[v.version]; ok && v.version != "" {
			v.link = link
		}
		doc.versions = append(doc.versions, v)
	}
	return doc
}

// Load reads and parses the changelog at path.
// A missing file yields an Error of kind ErrMissingSourceFile.
func Load(path string, cfg *Config) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrMissingSourceFile, Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f, cfg)
}

// LoadFromReader parses changelog text read from r.
func LoadFromReader(r io.Reader, cfg *Config) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data), cfg), nil
}

// Config returns the rulebook the document was parsed with.
func (d *Document) Config() *Config { return d.config }

// Content returns the normalised source text the document was parsed from.
func (d *Document) Content() string { return d.content }

// Header returns the first level-one heading, or nil.
func (d *Document) Header() *Element {
	if len(d.headers) == 0 {
		return nil
	}
	return d.headers[0]
}

// Headers returns every level-one heading in document order.
func (d *Document) Headers() []*Element { return d.headers }

// Title returns the text of the first level-one heading.
func (d *Document) Title() string {
	if h := d.Header(); h != nil {
		return h.Title
	}
	return ""
}

// Versions returns the version blocks in document order, newest first.
func (d *Document) Versions() []*Version { return d.versions }

// Links returns the link reference definitions keyed by id.
func (d *Document) Links() map[string]*Element { return d.links }
