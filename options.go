package mdblog

import (
	"log/slog"
	"strings"
)

// CollisionPolicy decides what happens when two files map to one slug.
type CollisionPolicy string

const (
	// CollisionSkip keeps the first file in lexical order and skips later ones.
	CollisionSkip CollisionPolicy = "skip"
	// CollisionOverwrite lets the later file replace the earlier page and
	// its listing entry.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// ParseCollisionPolicy converts a case-insensitive name to a CollisionPolicy.
// An empty name selects CollisionSkip.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(name)) {
	case "", CollisionSkip:
		return CollisionSkip, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	}
	return "", ErrInvalidCollision
}

// Defaults applied by NewBuilder.
const (
	DefaultSiteTitle = "Blog"
	DefaultSourceDir = "blog_src"
	DefaultOutputDir = "blog"
	DefaultStyle     = "default"
	NoStyle          = "none"
	DefaultListingID = "blog-list"
	DefaultTemplate  = "default"
	pageFile         = "index.html"
)

// Option configures a Builder.
type Option func(*builderConfig)

// builderConfig holds the resolved options of a Builder.
type builderConfig struct {
	logger         *slog.Logger
	assetPath      string
	style          string
	templateSet    string
	listingShell   string
	listingAnchor  string
	siteTitle      string
	baseURL        string
	dateFormat     string
	collision      CollisionPolicy
	keepUndated    bool
	drafts         bool
	clean          bool
	hardWraps      bool
	unsafeHTML     bool
	highlightStyle string
}

func defaultBuilderConfig() builderConfig {
	return builderConfig{
		logger:        slog.New(slog.DiscardHandler),
		style:         DefaultStyle,
		templateSet:   DefaultTemplate,
		listingAnchor: DefaultListingID,
		siteTitle:     DefaultSiteTitle,
		collision:     CollisionSkip,
		hardWraps:     true,
	}
}

// WithLogger sets the logger for per-file warnings and progress.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *builderConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// embedded defaults for files it does not contain.
func WithAssetPath(dir string) Option {
	return func(c *builderConfig) { c.assetPath = dir }
}

// WithStyle selects the stylesheet by name. NoStyle disables CSS.
func WithStyle(name string) Option {
	return func(c *builderConfig) {
		if name != "" {
			c.style = name
		}
	}
}

// WithTemplateSet selects the template set by name.
func WithTemplateSet(name string) Option {
	return func(c *builderConfig) {
		if name != "" {
			c.templateSet = name
		}
	}
}

// WithListingShell injects the listing into the page at path instead of
// rendering the listing template. anchorID names the receiving element;
// empty means DefaultListingID.
func WithListingShell(path, anchorID string) Option {
	return func(c *builderConfig) {
		c.listingShell = path
		if anchorID != "" {
			c.listingAnchor = anchorID
		}
	}
}

// WithSiteTitle sets the site title shown on every page.
func WithSiteTitle(title string) Option {
	return func(c *builderConfig) {
		if title != "" {
			c.siteTitle = title
		}
	}
}

// WithBaseURL makes post links absolute under baseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *builderConfig) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithDateFormat sets the display date format (tokens or preset name).
func WithDateFormat(format string) Option {
	return func(c *builderConfig) { c.dateFormat = format }
}

// WithCollisionPolicy sets the slug collision policy.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(c *builderConfig) { c.collision = p }
}

// WithKeepUndated keeps posts whose date cannot be parsed. They sort last
// and show the raw date.
func WithKeepUndated(enabled bool) Option {
	return func(c *builderConfig) { c.keepUndated = enabled }
}

// WithDrafts includes posts marked `draft: true`.
func WithDrafts(enabled bool) Option {
	return func(c *builderConfig) { c.drafts = enabled }
}

// WithClean removes the output directory before building.
func WithClean(enabled bool) Option {
	return func(c *builderConfig) { c.clean = enabled }
}

// WithHardWraps renders single newlines as line breaks (default true).
func WithHardWraps(enabled bool) Option {
	return func(c *builderConfig) { c.hardWraps = enabled }
}

// WithUnsafeHTML passes raw HTML in posts through to the page.
func WithUnsafeHTML(enabled bool) Option {
	return func(c *builderConfig) { c.unsafeHTML = enabled }
}

// WithHighlightStyle sets the chroma style for code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *builderConfig) { c.highlightStyle = name }
}

