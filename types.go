package mdblog

import (
	"html/template"
	"time"
)

// Post is one successfully built post.
type Post struct {
	Slug        string    // URL path segment, from the file name
	Title       string    // From frontmatter, or derived from the slug
	Description string    // From frontmatter, may be empty
	Date        time.Time // Midnight UTC; zero when undated
	RawDate     string    // Date exactly as written in frontmatter
	DisplayDate string    // Date rendered with the display format
	Draft       bool
	SourcePath  string // Markdown file the post was built from
	OutputPath  string // Written <output>/<slug>/index.html
	URL         string // Link used by the listing page
}

// Undated reports whether the post kept an unparseable date.
func (p Post) Undated() bool {
	return p.Date.IsZero()
}

// Skipped records a source file that did not produce a post.
type Skipped struct {
	Path string
	Err  error
}

// Result summarizes a build.
type Result struct {
	Posts       []Post    // Listing order: newest first
	Skipped     []Skipped // Source order
	ListingPath string    // Written <output>/index.html
}

// Site holds values shared by every page.
type Site struct {
	Title   string
	BaseURL string
}

// PostPage is the data passed to the post template.
type PostPage struct {
	Site        Site
	Title       string
	Slug        string
	Date        string // Display date
	ISODate     string // YYYY-MM-DD, empty when undated
	Description string
	URL         string
	HomeURL     string // Link back to the listing
	Content     template.HTML
	Style       template.CSS
}

// ListingEntry is one post summary on the listing page.
type ListingEntry struct {
	Title       string
	Slug        string
	URL         string
	Date        string
	ISODate     string
	Description string
}

// ListingPage is the data passed to the listing template.
// The "entries" block only needs Posts.
type ListingPage struct {
	Site  Site
	Posts []ListingEntry
	Style template.CSS
}
