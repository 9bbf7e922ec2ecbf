package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/fileutil"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "mdblog"

// Collision policies.
const (
	CollisionSkip      = "skip"
	CollisionOverwrite = "overwrite"
)

// Field length limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxURLLength        = 2048 // Browser limit
	MaxSiteTitleLength  = 200
	MaxAssetNameLength  = 64 // Style and template set names
	MaxAnchorIDLength   = 100
	MaxStyleNameLength  = 50 // Chroma style names
	MaxDateFormatLength = dateutil.MaxDateFormatLength
)

// Config holds all configuration for a blog build.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Output   OutputConfig   `yaml:"output"`
	Site     SiteConfig     `yaml:"site"`
	Date     DateConfig     `yaml:"date"`
	Build    BuildConfig    `yaml:"build"`
	Assets   AssetsConfig   `yaml:"assets"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Listing  ListingConfig  `yaml:"listing"`
}

// SourceConfig locates the Markdown posts.
type SourceConfig struct {
	Dir string `yaml:"dir"` // Empty = "blog_src"
}

// OutputConfig locates the generated site.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = "blog"
}

// SiteConfig describes the site as a whole.
type SiteConfig struct {
	Title   string `yaml:"title"`   // Page title of the listing (default: "Blog")
	BaseURL string `yaml:"baseURL"` // Empty = relative links
}

// DateConfig controls how post dates are displayed.
type DateConfig struct {
	Format string `yaml:"format"` // Tokens ("MMMM DD, YYYY") or preset ("iso", "long")
}

// BuildConfig controls per-post policies.
type BuildConfig struct {
	OnCollision string `yaml:"onCollision"` // "skip" (default) or "overwrite"
	KeepUndated bool   `yaml:"keepUndated"`
	Drafts      bool   `yaml:"drafts"`
	Clean       bool   `yaml:"clean"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	Style       string `yaml:"style"`       // Empty = "default", "none" disables CSS
	TemplateSet string `yaml:"templateSet"` // Empty = "default"
}

// MarkdownConfig tunes the Markdown renderer.
type MarkdownConfig struct {
	HardWraps      *bool  `yaml:"hardWraps"`      // nil = true
	UnsafeHTML     bool   `yaml:"unsafeHTML"`     // Pass raw HTML through
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style, empty = "github"
}

// ListingConfig points the listing at an existing HTML page.
type ListingConfig struct {
	Shell  string `yaml:"shell"`  // Path to HTML page, empty = built-in template
	Anchor string `yaml:"anchor"` // Element id, empty = "blog-list"
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"source.dir", c.Source.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"site.title", c.Site.Title, MaxSiteTitleLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"date.format", c.Date.Format, MaxDateFormatLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxAssetNameLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxAssetNameLength},
		{"markdown.highlightStyle", c.Markdown.HighlightStyle, MaxStyleNameLength},
		{"listing.shell", c.Listing.Shell, MaxPathLength},
		{"listing.anchor", c.Listing.Anchor, MaxAnchorIDLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Build.OnCollision) {
	case "", CollisionSkip, CollisionOverwrite:
	default:
		return fmt.Errorf("%w: build.onCollision %q (must be %s or %s)",
			ErrInvalidValue, c.Build.OnCollision, CollisionSkip, CollisionOverwrite)
	}

	if c.Date.Format != "" {
		if _, err := dateutil.ResolveDisplayFormat(c.Date.Format); err != nil {
			return fmt.Errorf("date.format: %w", err)
		}
	}

	if err := ValidateBaseURL(c.Site.BaseURL); err != nil {
		return err
	}

	if strings.ContainsAny(c.Listing.Anchor, " \t\n\"'") {
		return fmt.Errorf("%w: listing.anchor %q contains whitespace or quotes", ErrInvalidValue, c.Listing.Anchor)
	}

	return nil
}

// ValidateBaseURL accepts an empty value or an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: site.baseURL %q (must be an absolute http or https URL)", ErrInvalidValue, raw)
	}
	return nil
}

// HardWrapsEnabled resolves the hardWraps default.
func (m MarkdownConfig) HardWrapsEnabled() bool {
	return m.HardWraps == nil || *m.HardWraps
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every field at its zero value.
// Defaults for empty fields are applied by the consumer.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator or ending in .yaml/.yml is a file path.
// Otherwise it is a config name searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isPathLike(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Unmarshal(data, &cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isPathLike(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return fileutil.IsFilePath(s) || ext == ".yaml" || ext == ".yml"
}

// SearchPaths lists the files tried, in order, when resolving a config name:
// name.yaml and name.yml in the current directory, then in ~/.config/go-mdblog/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdblog", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
