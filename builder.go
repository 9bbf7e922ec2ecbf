package mdblog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdblog/internal/assets"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*assets.AssetResolver)(nil)
)

// entriesTemplate is the block of the listing template injected into a shell.
const entriesTemplate = "entries"

// Builder turns a directory of Markdown posts into a static blog.
// Create with NewBuilder; a Builder may run Build any number of times.
type Builder struct {
	cfg           builderConfig
	log           *slog.Logger
	body          *pipeline.BodyRenderer
	postTmpl      *template.Template
	listingTmpl   *template.Template
	style         template.CSS
	displayLayout string
}

// NewBuilder validates options and loads templates and styles.
// Returns error if an asset, template or option value is invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	cfg := defaultBuilderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := ParseCollisionPolicy(string(cfg.collision)); err != nil {
		return nil, fmt.Errorf("%w: %q", err, cfg.collision)
	}
	if err := config.ValidateBaseURL(cfg.baseURL); err != nil {
		return nil, err
	}

	layout, err := dateutil.ResolveDisplayFormat(cfg.dateFormat)
	if err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, err
	}

	style, err := loadStyle(resolver, cfg.style, cfg.highlightStyle)
	if err != nil {
		return nil, err
	}

	ts, err := assets.LoadTemplateSet(resolver, cfg.templateSet)
	if err != nil {
		return nil, err
	}
	postTmpl, err := template.New(assets.PagePost).Parse(ts.Post)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s.html: %v", ErrTemplate, ts.Name, assets.PagePost, err)
	}
	listingTmpl, err := template.New(assets.PageListing).Parse(ts.Listing)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s.html: %v", ErrTemplate, ts.Name, assets.PageListing, err)
	}
	if cfg.listingShell != "" && listingTmpl.Lookup(entriesTemplate) == nil {
		return nil, fmt.Errorf("%w: %s/%s.html does not define %q, required with a listing shell",
			ErrTemplate, ts.Name, assets.PageListing, entriesTemplate)
	}

	converter := pipeline.NewGoldmarkConverter(
		pipeline.WithHardWraps(cfg.hardWraps),
		pipeline.WithUnsafeHTML(cfg.unsafeHTML),
	)

	return &Builder{
		cfg:           cfg,
		log:           cfg.logger,
		body:          pipeline.NewBodyRenderer(converter),
		postTmpl:      postTmpl,
		listingTmpl:   listingTmpl,
		style:         style,
		displayLayout: layout,
	}, nil
}

// loadStyle returns the page stylesheet followed by the code highlighting
// rules. NoStyle yields no CSS at all.
func loadStyle(loader assets.AssetLoader, name, highlightStyle string) (template.CSS, error) {
	highlight, err := pipeline.HighlightCSS(highlightStyle)
	if err != nil {
		return "", err
	}
	if name == NoStyle {
		return "", nil
	}

	css, err := loader.LoadStyle(name)
	if err != nil {
		return "", err
	}
	// #nosec G203 -- stylesheet comes from the site's own assets
	return template.CSS(pipeline.SanitizeCSS(css + "\n" + highlight)), nil
}

// Build reads every Markdown file directly under sourceDir and writes
// <outputDir>/<slug>/index.html per post plus <outputDir>/index.html.
//
// Malformed posts are skipped and reported in Result.Skipped. An unreadable
// or empty source directory, any write failure, or cancellation of ctx
// aborts the build.
func (b *Builder) Build(ctx context.Context, sourceDir, outputDir string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sources, err := discoverSources(sourceDir)
	if err != nil {
		return nil, err
	}

	var shell string
	if b.cfg.listingShell != "" {
		data, err := os.ReadFile(b.cfg.listingShell) // #nosec G304 -- user-provided shell page
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrListingShell, err)
		}
		shell = string(data)
	}

	if b.cfg.clean {
		if err := cleanOutput(sourceDir, outputDir); err != nil {
			return nil, err
		}
	}
	if err := fileutil.EnsureWritableDir(outputDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	result := &Result{}
	entries, err := b.loadAll(ctx, sources, result)
	if err != nil {
		return nil, err
	}

	posts, err := b.writePosts(ctx, entries, outputDir, result)
	if err != nil {
		return nil, err
	}

	sortPosts(posts)
	listingPath, err := b.writeListing(outputDir, shell, posts)
	if err != nil {
		return nil, err
	}

	result.Posts = posts
	result.ListingPath = listingPath
	b.log.Info("build complete",
		"posts", len(posts),
		"skipped", len(result.Skipped),
		"output", outputDir)
	return result, nil
}

// skip records a per-file failure and logs it. Drafts are expected and
// logged below warning level.
func (b *Builder) skip(result *Result, path string, err error) {
	result.Skipped = append(result.Skipped, Skipped{Path: path, Err: err})
	if errors.Is(err, ErrDraft) {
		b.log.Info("skipping draft", "file", path)
		return
	}
	b.log.Warn("skipping post", "file", path, "error", err)
}

// cleanOutput removes outputDir unless doing so would delete the sources,
// the working directory, or a filesystem root.
func cleanOutput(sourceDir, outputDir string) error {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeClean, err)
	}
	if !fileutil.DirExists(abs) {
		return nil
	}
	if filepath.Dir(abs) == abs {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeClean, abs)
	}

	if within, err := fileutil.IsWithin(abs, sourceDir); err != nil || within {
		return fmt.Errorf("%w: %s contains the source directory", ErrUnsafeClean, outputDir)
	}
	if cwd, err := os.Getwd(); err == nil {
		if within, _ := fileutil.IsWithin(abs, cwd); within {
			return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeClean, outputDir)
		}
	}

	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("%w: removing %s: %v", ErrWriteOutput, outputDir, err)
	}
	return nil
}

// postURL is the listing's link to a post.
func (b *Builder) postURL(slug string) string {
	if b.cfg.baseURL != "" {
		return b.cfg.baseURL + "/" + slug + "/"
	}
	return slug + "/"
}

// homeURL is a post page's link back to the listing.
func (b *Builder) homeURL() string {
	if b.cfg.baseURL != "" {
		return b.cfg.baseURL + "/"
	}
	return "../"
}

// siblingURL is a post page's link to another post.
func (b *Builder) siblingURL(slug string) string {
	if b.cfg.baseURL != "" {
		return b.postURL(slug)
	}
	return "../" + slug + "/"
}

func (b *Builder) site() Site {
	return Site{Title: b.cfg.siteTitle, BaseURL: b.cfg.baseURL}
}

// Build is shorthand for NewBuilder(opts...) followed by Builder.Build.
func Build(ctx context.Context, sourceDir, outputDir string, opts ...Option) (*Result, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, sourceDir, outputDir)
}
