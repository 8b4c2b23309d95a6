package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts page Markdown to an HTML fragment.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// goldmarkSettings collects the GoldmarkOption values.
type goldmarkSettings struct {
	rawHTML bool
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkSettings)

// WithRawHTML keeps raw HTML blocks and inline tags found in the Markdown.
// Only for content the site owner controls.
func WithRawHTML() GoldmarkOption {
	return func(s *goldmarkSettings) {
		s.rawHTML = true
	}
}

// NewGoldmarkConverter creates a converter for page bodies: GFM, footnotes,
// definition lists, smart punctuation, heading IDs and {.class} attributes.
// Code blocks get chroma CSS classes; the site stylesheet supplies the theme.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	var settings goldmarkSettings
	for _, opt := range opts {
		opt(&settings)
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if settings.rawHTML {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts content to an HTML fragment for a page template.
// goldmark takes no context, so the conversion runs in its own goroutine
// and ToHTML returns as soon as ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		out     bytes.Buffer
		convErr error
	)
	done := make(chan struct{})

	go func() {
		defer close(done)
		convErr = c.md.Convert([]byte(content), &out)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-done:
	}

	if convErr != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, convErr)
	}
	return out.String(), nil
}
