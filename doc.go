// Package mdblog builds a static blog from a directory of Markdown posts.
//
// # Quick Start
//
//	result, err := mdblog.Build(ctx, "blog_src", "blog")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range result.Skipped {
//	    log.Printf("skipped %s: %v", s.Path, s.Err)
//	}
//
// Each post is a Markdown file with a frontmatter block:
//
//	---
//	title: "Hello"
//	date: "2024-01-15"
//	description: "First post"
//	---
//	Body in **Markdown**.
//
// # Output Layout
//
//	blog/
//	├── index.html            # listing, newest first
//	└── hello/
//	    └── index.html        # one directory per post slug
//
// # Build Pipeline
//
//  1. Discovery: .md and .markdown files directly under the source directory
//  2. Frontmatter and date parsing (ISO or long English dates)
//  3. Markdown to HTML via Goldmark (GFM, footnotes, chroma highlighting)
//  4. Page template execution and atomic write per post
//  5. Listing page, rendered from a template or injected into a shell page
//
// A malformed post is skipped and reported in Result.Skipped; the rest of
// the build continues. An empty or unreadable source directory, or any
// write failure, aborts the build.
//
// # Configuration
//
//	b, err := mdblog.NewBuilder(
//	    mdblog.WithSiteTitle("Notes"),
//	    mdblog.WithDateFormat("long"),
//	    mdblog.WithCollisionPolicy(mdblog.CollisionOverwrite),
//	    mdblog.WithAssetPath("./theme"),
//	    mdblog.WithLogger(slog.Default()),
//	)
//
// Asset directory structure:
//
//	theme/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── default/
//	        ├── post.html
//	        └── listing.html
//
// Files missing from the asset directory fall back to the embedded defaults.
package mdblog
