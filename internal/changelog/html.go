package changelog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLOptions controls HTML export.
type HTMLOptions struct {
	// HardWraps renders newlines inside paragraphs as <br>.
	HardWraps bool
	// Unsafe passes raw HTML in the changelog through unescaped.
	Unsafe bool
}

// RenderHTML converts the serialized document to HTML. Version headings get
// anchor ids and bracketed versions resolve to their link references.
func RenderHTML(d *Document, opts HTMLOptions) ([]byte, error) {
	return convertMarkdown([]byte(Serialize(d)), opts)
}

// RenderVersionHTML converts a single version block to HTML, keeping its link.
func RenderVersionHTML(v *Version, opts HTMLOptions) ([]byte, error) {
	md := SerializeVersion(v)
	if v.link != nil {
		md += "\n[" + v.version + "]: " + v.link.Body + "\n"
	}
	return convertMarkdown([]byte(md), opts)
}

func convertMarkdown(markdown []byte, opts HTMLOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := newMarkdownEngine(opts).Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("rendering changelog html: %w", err)
	}
	return buf.Bytes(), nil
}

func newMarkdownEngine(opts HTMLOptions) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}
