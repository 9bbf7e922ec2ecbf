package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrAnchorNotFound indicates the listing shell lacks the anchor element.
var ErrAnchorNotFound = errors.New("listing anchor element not found")

// DefaultListingAnchor is the id of the element that receives the listing.
const DefaultListingAnchor = "blog-list"

// SanitizeCSS escapes sequences that could break out of a <style> block.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// InjectListing replaces the children of the element with id anchorID in
// shell with the parsed fragment and returns the rendered page.
// Everything outside the anchor element is preserved.
// Returns ErrAnchorNotFound if no element carries the id.
func InjectListing(shell, fragment, anchorID string) (string, error) {
	if anchorID == "" {
		anchorID = DefaultListingAnchor
	}

	doc, isFragment, err := parseHTML(shell)
	if err != nil {
		return "", fmt.Errorf("parsing listing shell: %w", err)
	}

	anchor := findByID(doc, anchorID)
	if anchor == nil {
		return "", fmt.Errorf("%w: id=%q", ErrAnchorNotFound, anchorID)
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), anchor)
	if err != nil {
		return "", fmt.Errorf("parsing listing fragment: %w", err)
	}

	for c := anchor.FirstChild; c != nil; {
		next := c.NextSibling
		anchor.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		anchor.AppendChild(n)
	}

	return renderHTML(doc, isFragment)
}

// findByID returns the first element in document order whose id is id.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
