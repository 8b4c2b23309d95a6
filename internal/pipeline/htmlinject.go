package pipeline

import (
	"context"
	"strings"
)

// TagInjector defines the contract for placing rendered tags into a page.
type TagInjector interface {
	InjectHead(ctx context.Context, htmlContent, tags string) string
	InjectBody(ctx context.Context, htmlContent, tags string) string
}

// TagInjection inserts pre-rendered <link> and <script> markup into HTML.
// Matching is case-insensitive and based on the first occurrence of each
// marker; the document is not parsed.
type TagInjection struct{}

// InjectHead inserts tags before </head>.
// Falls back to right after the opening <body> tag, then to prepending.
// Returns htmlContent unchanged if tags is empty or ctx is done.
func (t *TagInjection) InjectHead(ctx context.Context, htmlContent, tags string) string {
	if tags == "" || ctx.Err() != nil {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + tags + htmlContent[idx:]
	}

	if pos := afterOpeningBody(htmlContent, lowerHTML); pos != -1 {
		return htmlContent[:pos] + tags + htmlContent[pos:]
	}

	return tags + htmlContent
}

// InjectBody inserts tags before </body>, falling back to appending.
// Returns htmlContent unchanged if tags is empty or ctx is done.
func (t *TagInjection) InjectBody(ctx context.Context, htmlContent, tags string) string {
	if tags == "" || ctx.Err() != nil {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)

	// Last occurrence: an inline script may contain the literal "</body>".
	if idx := strings.LastIndex(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + tags + htmlContent[idx:]
	}

	return htmlContent + tags
}

// afterOpeningBody returns the offset just past the opening <body ...> tag,
// or -1 if there is none.
func afterOpeningBody(htmlContent, lowerHTML string) int {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}
