package encore

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/alnah/go-encore/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TagInjector   = (*pipeline.TagInjection)(nil)
)

// Page describes one server-rendered page.
type Page struct {
	// Name identifies the template in error messages. Defaults to "page".
	Name string
	// Template is html/template source. The resolver directives are
	// available as functions; see Resolver.FuncMap.
	Template string
	// Markdown, if set, is converted to HTML and exposed as .Content.
	Markdown string
	// Data is exposed to the template as .Data.
	Data any
	// Entries, if set, get their link tags injected before </head> and
	// their script tags before </body>.
	Entries []string
	// RewriteAssets rewrites img, script, link, source and video references
	// that are manifest keys to their physical paths.
	RewriteAssets bool
}

// pageData is the value the page template is executed with.
type pageData struct {
	Content template.HTML
	Data    any
}

// RenderResult holds the rendered page.
type RenderResult struct {
	HTML string
}

// Renderer renders pages with a Resolver wired into html/template.
// A Renderer is safe for concurrent use.
type Renderer struct {
	resolver      *Resolver
	htmlConverter pipeline.HTMLConverter
	tagInjector   pipeline.TagInjector
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// withHTMLConverter replaces the markdown converter (used by tests).
func withHTMLConverter(c pipeline.HTMLConverter) RendererOption {
	return func(r *Renderer) {
		r.htmlConverter = c
	}
}

// WithRawMarkdownHTML keeps raw HTML written inside Page.Markdown.
// By default it is dropped. Use it only for trusted content.
func WithRawMarkdownHTML() RendererOption {
	return func(r *Renderer) {
		r.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.WithRawHTML())
	}
}

// NewRenderer creates a Renderer backed by resolver.
func NewRenderer(resolver *Resolver, opts ...RendererOption) *Renderer {
	r := &Renderer{
		resolver:      resolver,
		htmlConverter: pipeline.NewGoldmarkConverter(),
		tagInjector:   &pipeline.TagInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render runs the page pipeline:
//
//  1. Markdown to HTML (if Page.Markdown is set)
//  2. template execution with the resolver functions
//  3. tag injection for Page.Entries
//  4. asset path rewriting (if Page.RewriteAssets)
//
// The context is checked between stages.
func (r *Renderer) Render(ctx context.Context, page Page) (*RenderResult, error) {
	if page.Template == "" {
		return nil, ErrEmptyTemplate
	}
	name := page.Name
	if name == "" {
		name = "page"
	}

	var content template.HTML
	if page.Markdown != "" {
		fragment, err := r.htmlConverter.ToHTML(ctx, page.Markdown)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
		}
		content = template.HTML(fragment) // #nosec G203 -- goldmark output; raw HTML only with WithRawMarkdownHTML
	}

	tmpl, err := template.New(name).Funcs(r.resolver.FuncMap()).Parse(page.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, pageData{Content: content, Data: page.Data}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	htmlContent := buf.String()

	if len(page.Entries) > 0 {
		htmlContent = r.tagInjector.InjectHead(ctx, htmlContent, r.resolver.LinkTags(nil, page.Entries...).Val)
		htmlContent = r.tagInjector.InjectBody(ctx, htmlContent, r.resolver.ScriptTags(nil, page.Entries...).Val)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page.RewriteAssets {
		htmlContent, err = pipeline.RewriteAssetPaths(htmlContent, r.lookupAsset)
		if err != nil {
			return nil, fmt.Errorf("rewriting asset paths: %w", err)
		}
	}

	return &RenderResult{HTML: htmlContent}, nil
}

// lookupAsset adapts the manifest to pipeline.AssetLookup.
func (r *Renderer) lookupAsset(logicalPath string) (string, bool) {
	manifest, err := r.resolver.Manifest()
	if err != nil {
		return "", false
	}
	physical, ok := manifest[logicalPath]
	return physical, ok
}
