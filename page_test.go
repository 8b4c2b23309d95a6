package encore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

// failingConverter always fails markdown conversion.
type failingConverter struct{}

func (failingConverter) ToHTML(context.Context, string) (string, error) {
	return "", errors.New("boom")
}

func newPageTestResolver() *Resolver {
	fsys := fstest.MapFS{
		"vfs/entrypoints.json": {Data: []byte(`{"entrypoints":{"app":{"js":["/build/app.js"],"css":["/build/app.css"]}}}`)},
		"vfs/manifest.json":    {Data: []byte(`{"build/logo.png":"/build/logo.5d1e.png"}`)},
	}
	return newTestResolver(fsys)
}

const pageLayout = `<!DOCTYPE html>
<html>
<head><title>{{ .Data.Title }}</title></head>
<body>
<img src="build/logo.png">
{{ .Content }}
</body>
</html>`

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		page         Page
		wantContains []string
		wantExcludes []string
	}{
		{
			name: "template with directives",
			page: Page{
				Template: `<head>{{ link_tags "app" }}</head><body>{{ script_tags "app" }}</body>`,
			},
			wantContains: []string{
				`<link rel="stylesheet" href="/build/app.css">`,
				`<script src="/build/app.js"></script>`,
			},
		},
		{
			name: "markdown content and data",
			page: Page{
				Template: pageLayout,
				Markdown: "# Welcome\n\nHello **there**",
				Data:     map[string]string{"Title": "Home"},
			},
			wantContains: []string{
				"<title>Home</title>",
				`<h1 id="welcome">Welcome</h1>`,
				"<strong>there</strong>",
			},
		},
		{
			name: "entries injected into head and body",
			page: Page{
				Template: pageLayout,
				Data:     map[string]string{"Title": "Home"},
				Entries:  []string{"app"},
			},
			wantContains: []string{
				`<link rel="stylesheet" href="/build/app.css">` + "\n</head>",
				`<script src="/build/app.js"></script>` + "\n</body>",
			},
		},
		{
			name: "asset rewriting",
			page: Page{
				Template:      pageLayout,
				Data:          map[string]string{"Title": "Home"},
				RewriteAssets: true,
			},
			wantContains: []string{`src="/build/logo.5d1e.png"`},
			wantExcludes: []string{`src="build/logo.png"`},
		},
		{
			name: "no rewriting by default",
			page: Page{
				Template: pageLayout,
				Data:     map[string]string{"Title": "Home"},
			},
			wantContains: []string{`src="build/logo.png"`},
		},
		{
			name: "data is escaped",
			page: Page{
				Template: `<p>{{ .Data }}</p>`,
				Data:     "<b>bold</b>",
			},
			wantContains: []string{"&lt;b&gt;bold&lt;/b&gt;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			renderer := NewRenderer(newPageTestResolver())
			got, err := renderer.Render(context.Background(), tt.page)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got.HTML, want) {
					t.Errorf("Render() missing %q in:\n%s", want, got.HTML)
				}
			}
			for _, notWant := range tt.wantExcludes {
				if strings.Contains(got.HTML, notWant) {
					t.Errorf("Render() should not contain %q in:\n%s", notWant, got.HTML)
				}
			}
		})
	}
}

func TestRenderer_RawMarkdownHTML(t *testing.T) {
	t.Parallel()

	page := Page{Template: "<main>{{ .Content }}</main>", Markdown: `<aside class="note">Beta</aside>`}

	tests := []struct {
		name    string
		opts    []RendererOption
		want    string
		wantNot string
	}{
		{"dropped by default", nil, "raw HTML omitted", `<aside class="note">`},
		{"kept when trusted", []RendererOption{WithRawMarkdownHTML()}, `<aside class="note">Beta</aside>`, "raw HTML omitted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewRenderer(newPageTestResolver(), tt.opts...).Render(context.Background(), page)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if !strings.Contains(got.HTML, tt.want) {
				t.Errorf("Render() missing %q in:\n%s", tt.want, got.HTML)
			}
			if strings.Contains(got.HTML, tt.wantNot) {
				t.Errorf("Render() should not contain %q in:\n%s", tt.wantNot, got.HTML)
			}
		})
	}
}

func TestRenderer_Render_Errors(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name     string
		ctx      context.Context
		opts     []RendererOption
		page     Page
		wantErr  error
		wantText string
	}{
		{
			name:    "empty template",
			ctx:     context.Background(),
			page:    Page{},
			wantErr: ErrEmptyTemplate,
		},
		{
			name:    "parse error",
			ctx:     context.Background(),
			page:    Page{Template: "{{ if }}"},
			wantErr: ErrTemplateParse,
		},
		{
			name:    "execution error",
			ctx:     context.Background(),
			page:    Page{Template: "{{ .Data.Missing.Field }}", Data: 42},
			wantErr: ErrTemplateRender,
		},
		{
			name:    "markdown failure",
			ctx:     context.Background(),
			opts:    []RendererOption{withHTMLConverter(failingConverter{})},
			page:    Page{Template: "{{ .Content }}", Markdown: "# x"},
			wantErr: ErrMarkdownConversion,
		},
		{
			name:    "canceled context",
			ctx:     canceled,
			page:    Page{Template: "<p>x</p>"},
			wantErr: context.Canceled,
		},
		{
			name:     "template name in error",
			ctx:      context.Background(),
			page:     Page{Name: "layout.html", Template: "{{ end }}"},
			wantErr:  ErrTemplateParse,
			wantText: "layout.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			renderer := NewRenderer(newPageTestResolver(), tt.opts...)
			_, err := renderer.Render(tt.ctx, tt.page)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Render() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Render() error = %q, want it to mention %q", err, tt.wantText)
			}
		})
	}
}
