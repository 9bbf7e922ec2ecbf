package pipeline

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkResolver maps a sibling source filename ("second-post.md") to the
// URL of its generated page. ok is false for files that are not posts.
type LinkResolver func(filename string) (target string, ok bool)

// RewritePostLinks rewrites a[href] values that point at sibling Markdown
// source files to the URL returned by resolve. A #fragment is kept.
// If resolve is nil or no link qualifies, the HTML is returned unchanged.
//
// Does NOT rewrite:
//   - URLs with a scheme or host, absolute paths, bare anchors
//   - links into other directories (posts are discovered non-recursively)
//   - img[src] and other media
func RewritePostLinks(htmlContent string, resolve LinkResolver) (string, error) {
	if resolve == nil || !mayContainMarkdownLink(htmlContent) {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	if !rewriteNode(doc, resolve) {
		return htmlContent, nil
	}
	return renderHTML(doc, isFragment)
}

func mayContainMarkdownLink(s string) bool {
	return strings.Contains(s, ".md") || strings.Contains(s, ".markdown")
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
// For fragments, only renders the children (avoids adding <html><body> wrapper).
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

// rewriteNode walks the tree and reports whether any link changed.
func rewriteNode(n *html.Node, resolve LinkResolver) bool {
	changed := false
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if target, ok := resolveHref(attr.Val, resolve); ok {
				n.Attr[i].Val = target
				changed = true
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c, resolve) {
			changed = true
		}
	}
	return changed
}

// resolveHref maps one href to its rewritten value.
func resolveHref(href string, resolve LinkResolver) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || u.RawQuery != "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return "", false
	}

	clean := path.Clean(u.Path)
	if strings.Contains(clean, "/") {
		return "", false
	}
	ext := strings.ToLower(path.Ext(clean))
	if ext != ".md" && ext != ".markdown" {
		return "", false
	}

	target, ok := resolve(clean)
	if !ok {
		return "", false
	}
	if u.Fragment != "" {
		target += "#" + u.EscapedFragment()
	}
	return target, true
}
