package mdblog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
	"github.com/alnah/go-mdblog/internal/post"
)

// entry is a source file that passed parsing and awaits rendering.
type entry struct {
	path string
	name string // base name, the target of sibling links
	slug string
	meta post.Meta
	body []byte
	date time.Time // zero when undated
}

// loadAll parses every source and applies the collision policy.
// Per-file failures are recorded in result; only cancellation is returned.
func (b *Builder) loadAll(ctx context.Context, sources []string, result *Result) ([]*entry, error) {
	entries := make([]*entry, 0, len(sources))
	bySlug := make(map[string]int, len(sources))

	for _, path := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := b.load(path)
		if err != nil {
			b.skip(result, path, err)
			continue
		}

		i, taken := bySlug[e.slug]
		if !taken {
			bySlug[e.slug] = len(entries)
			entries = append(entries, e)
			continue
		}

		prev := entries[i]
		if b.cfg.collision == CollisionOverwrite {
			b.skip(result, prev.path, fmt.Errorf("%w: %q replaced by %s", ErrSlugCollision, e.slug, e.name))
			entries[i] = e
			continue
		}
		b.skip(result, path, fmt.Errorf("%w: %q already used by %s", ErrSlugCollision, e.slug, prev.name))
	}

	return entries, nil
}

// load reads and parses one source file.
func (b *Builder) load(path string) (*entry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered in the source directory
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPost, err)
	}

	meta, body, err := post.Parse(data)
	if err != nil {
		return nil, err
	}

	slug, err := post.Slug(path)
	if err != nil {
		return nil, err
	}

	if meta.Draft && !b.cfg.drafts {
		return nil, ErrDraft
	}

	date, err := dateutil.ParsePostDate(meta.Date)
	if err != nil {
		if !b.cfg.keepUndated {
			return nil, err
		}
		b.log.Warn("keeping undated post", "file", path, "date", meta.Date)
		date = time.Time{}
	}

	if meta.Title == "" {
		meta.Title = post.TitleFromSlug(slug)
		b.log.Warn("missing title, derived from file name", "file", path, "title", meta.Title)
	}

	return &entry{
		path: path,
		name: filepath.Base(path),
		slug: slug,
		meta: meta,
		body: body,
		date: date,
	}, nil
}

// linkResolver maps sibling source file names to the pages built from them.
func (b *Builder) linkResolver(entries []*entry) pipeline.LinkResolver {
	targets := make(map[string]string, len(entries))
	for _, e := range entries {
		targets[e.name] = b.siblingURL(e.slug)
	}
	return func(filename string) (string, bool) {
		target, ok := targets[filename]
		return target, ok
	}
}

// writePost renders one entry and writes <outputDir>/<slug>/index.html.
// Render failures wrap ErrRenderPost; write failures wrap ErrWriteOutput.
func (b *Builder) writePost(ctx context.Context, e *entry, outputDir string, links pipeline.LinkResolver) (Post, error) {
	fragment, err := b.body.Render(ctx, string(e.body), links)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Post{}, ctxErr
		}
		return Post{}, fmt.Errorf("%w: %s: %v", ErrRenderPost, e.path, err)
	}

	p := b.newPost(e)
	page := PostPage{
		Site:        b.site(),
		Title:       p.Title,
		Slug:        p.Slug,
		Date:        p.DisplayDate,
		ISODate:     isoDate(p.Date),
		Description: p.Description,
		URL:         p.URL,
		HomeURL:     b.homeURL(),
		Content:     template.HTML(fragment), // #nosec G203 -- produced by goldmark
		Style:       b.style,
	}

	var buf bytes.Buffer
	if err := b.postTmpl.Execute(&buf, page); err != nil {
		return Post{}, fmt.Errorf("%w: %s: %v", ErrRenderPost, e.path, err)
	}

	out := filepath.Join(outputDir, p.Slug, pageFile)
	if err := fileutil.WriteFileAtomic(out, buf.Bytes(), fileutil.FilePermissions); err != nil {
		return Post{}, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	p.OutputPath = out
	return p, nil
}

// newPost builds the public Post for an entry.
func (b *Builder) newPost(e *entry) Post {
	display := e.meta.Date
	if !e.date.IsZero() {
		display = e.date.Format(b.displayLayout)
	}

	return Post{
		Slug:        e.slug,
		Title:       e.meta.Title,
		Description: e.meta.Description,
		Date:        e.date,
		RawDate:     e.meta.Date,
		DisplayDate: display,
		Draft:       e.meta.Draft,
		SourcePath:  e.path,
		URL:         b.postURL(e.slug),
	}
}

// isoDate formats t for datetime attributes; empty for the zero time.
func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateutil.ISOLayout)
}

// writePosts renders entries in source order. Render failures are recorded
// in result; write failures and cancellation are returned.
func (b *Builder) writePosts(ctx context.Context, entries []*entry, outputDir string, result *Result) ([]Post, error) {
	links := b.linkResolver(entries)
	posts := make([]Post, 0, len(entries))

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := b.writePost(ctx, e, outputDir, links)
		if err != nil {
			if errors.Is(err, ErrRenderPost) {
				b.skip(result, e.path, err)
				continue
			}
			return nil, err
		}
		b.log.Debug("wrote post", "file", e.path, "output", p.OutputPath)
		posts = append(posts, p)
	}
	return posts, nil
}
