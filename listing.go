package mdblog

import (
	"bytes"
	"cmp"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
)

// sortPosts orders posts newest first. Undated posts go last and equal
// dates fall back to slug order, so the listing is deterministic.
func sortPosts(posts []Post) {
	slices.SortFunc(posts, func(a, b Post) int {
		if a.Undated() != b.Undated() {
			if a.Undated() {
				return 1
			}
			return -1
		}
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

// listingEntries projects sorted posts onto listing template data.
func listingEntries(posts []Post) []ListingEntry {
	entries := make([]ListingEntry, len(posts))
	for i, p := range posts {
		entries[i] = ListingEntry{
			Title:       p.Title,
			Slug:        p.Slug,
			URL:         p.URL,
			Date:        p.DisplayDate,
			ISODate:     isoDate(p.Date),
			Description: p.Description,
		}
	}
	return entries
}

// writeListing renders <outputDir>/index.html. With a shell page, only the
// entries block is rendered and injected into the shell's anchor element.
func (b *Builder) writeListing(outputDir, shell string, posts []Post) (string, error) {
	page := ListingPage{
		Site:  b.site(),
		Posts: listingEntries(posts),
		Style: b.style,
	}

	var buf bytes.Buffer
	if shell == "" {
		if err := b.listingTmpl.Execute(&buf, page); err != nil {
			return "", fmt.Errorf("%w: listing: %v", ErrTemplate, err)
		}
	} else {
		if err := b.listingTmpl.ExecuteTemplate(&buf, entriesTemplate, page); err != nil {
			return "", fmt.Errorf("%w: listing entries: %v", ErrTemplate, err)
		}
		injected, err := pipeline.InjectListing(shell, buf.String(), b.cfg.listingAnchor)
		if err != nil {
			return "", err
		}
		buf.Reset()
		buf.WriteString(injected)
	}

	out := filepath.Join(outputDir, pageFile)
	if err := fileutil.WriteFileAtomic(out, buf.Bytes(), fileutil.FilePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return out, nil
}
