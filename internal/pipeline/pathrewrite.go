package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AssetLookup returns the physical path for a logical asset path.
type AssetLookup func(logicalPath string) (string, bool)

// rewriteTargets lists the element attributes that reference assets.
var rewriteTargets = map[atom.Atom]string{
	atom.Img:    "src",
	atom.Script: "src",
	atom.Link:   "href",
	atom.Source: "src",
	atom.Video:  "poster",
}

// RewriteAssetPaths replaces asset references with their manifest entries.
// If lookup is nil, returns the HTML unchanged.
//
// Rewrites img[src], script[src], link[href], source[src] and video[poster]
// when lookup knows the exact attribute value. URLs, data URIs and anchors
// are left alone, as are values the manifest does not contain.
// Does NOT rewrite srcset or CSS url() references.
func RewriteAssetPaths(htmlContent string, lookup AssetLookup) (string, error) {
	if lookup == nil {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, lookup)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only the children are rendered (no <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, lookup AssetLookup) {
	if n.Type == html.ElementNode {
		if attrName, ok := rewriteTargets[n.DataAtom]; ok {
			rewriteAttr(n, attrName, lookup)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, lookup)
	}
}

func rewriteAttr(n *html.Node, attrName string, lookup AssetLookup) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isLogicalPath(attr.Val) {
			continue
		}
		if resolved, ok := lookup(attr.Val); ok && resolved != "" {
			n.Attr[i].Val = resolved
		}
	}
}

// isLogicalPath returns true if the value could be a manifest key.
func isLogicalPath(path string) bool {
	if path == "" {
		return false
	}

	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//", "#"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	return true
}
