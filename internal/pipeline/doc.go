// Package pipeline turns a post body into HTML and assembles listing pages.
//
// Stages, in order:
//   - Markdown preprocessing (BOM, line endings)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//     and the ==mark== inline extension
//   - Rewriting links to sibling .md sources into post URLs
//
// InjectListing places a rendered listing inside an existing HTML page.
// HTML parsing and rendering for both go through golang.org/x/net/html.
package pipeline
