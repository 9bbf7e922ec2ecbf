package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/assets"
	"github.com/alnah/go-mdblog/internal/config"
	"github.com/alnah/go-mdblog/internal/hints"
	"github.com/alnah/go-mdblog/internal/pipeline"
)

// runBuild resolves configuration and builds the blog.
func runBuild(ctx context.Context, flags *buildFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common)
	warnUnknownEnvVars(logger)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, logger)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := builderOptions(cfg, logger)
	if err != nil {
		return err
	}

	source := valueOr(cfg.Source.Dir, mdblog.DefaultSourceDir)
	output := valueOr(cfg.Output.Dir, mdblog.DefaultOutputDir)
	logger.Debug("building", "source", source, "output", output)

	result, err := mdblog.Build(ctx, source, output, opts...)
	if err != nil {
		return withHint(err, source, cfg)
	}

	printResults(env.Stdout, result, flags.common.quiet)
	return nil
}

// newLogger returns a text logger on w. -q shows errors only, -v adds debug.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the explicit config (flag, then MDBLOG_CONFIG). Without
// one, the default config name is tried and its absence is not an error.
func loadConfig(flagValue, envValue string, logger *slog.Logger) (*config.Config, error) {
	name := valueOr(flagValue, envValue)
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, withHint(fmt.Errorf("loading config: %w", err), "", nil)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("loaded default config", "name", config.DefaultName)
	return cfg, nil
}

// mergeFlags copies set flags over cfg. Boolean flags can only enable.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	setIf(&cfg.Source.Dir, f.source)
	setIf(&cfg.Output.Dir, f.output)

	setIf(&cfg.Site.Title, f.site.title)
	setIf(&cfg.Site.BaseURL, f.site.baseURL)
	setIf(&cfg.Date.Format, f.site.dateFormat)

	setIf(&cfg.Assets.BasePath, f.assets.assetPath)
	setIf(&cfg.Assets.Style, f.assets.style)
	setIf(&cfg.Assets.TemplateSet, f.assets.template)
	if f.assets.noStyle {
		cfg.Assets.Style = assets.NoStyleName
	}
	setIf(&cfg.Listing.Shell, f.assets.listingShell)
	setIf(&cfg.Listing.Anchor, f.assets.listingAnchor)
	setIf(&cfg.Markdown.HighlightStyle, f.assets.highlightStyle)

	setIf(&cfg.Build.OnCollision, f.policy.onCollision)
	cfg.Build.KeepUndated = cfg.Build.KeepUndated || f.policy.keepUndated
	cfg.Build.Drafts = cfg.Build.Drafts || f.policy.drafts
	cfg.Build.Clean = cfg.Build.Clean || f.policy.clean
	cfg.Markdown.UnsafeHTML = cfg.Markdown.UnsafeHTML || f.policy.unsafeHTML
	if f.policy.noHardWraps {
		disabled := false
		cfg.Markdown.HardWraps = &disabled
	}
}

// builderOptions translates a validated config into builder options.
func builderOptions(cfg *config.Config, logger *slog.Logger) ([]mdblog.Option, error) {
	policy, err := mdblog.ParseCollisionPolicy(cfg.Build.OnCollision)
	if err != nil {
		return nil, err
	}

	return []mdblog.Option{
		mdblog.WithLogger(logger),
		mdblog.WithAssetPath(cfg.Assets.BasePath),
		mdblog.WithStyle(cfg.Assets.Style),
		mdblog.WithTemplateSet(cfg.Assets.TemplateSet),
		mdblog.WithListingShell(cfg.Listing.Shell, cfg.Listing.Anchor),
		mdblog.WithSiteTitle(cfg.Site.Title),
		mdblog.WithBaseURL(cfg.Site.BaseURL),
		mdblog.WithDateFormat(cfg.Date.Format),
		mdblog.WithCollisionPolicy(policy),
		mdblog.WithKeepUndated(cfg.Build.KeepUndated),
		mdblog.WithDrafts(cfg.Build.Drafts),
		mdblog.WithClean(cfg.Build.Clean),
		mdblog.WithHardWraps(cfg.Markdown.HardWrapsEnabled()),
		mdblog.WithUnsafeHTML(cfg.Markdown.UnsafeHTML),
		mdblog.WithHighlightStyle(cfg.Markdown.HighlightStyle),
	}, nil
}

// printResults lists written pages on w, one "Created <path>" per line.
func printResults(w io.Writer, result *mdblog.Result, quiet bool) {
	if quiet {
		return
	}
	for _, p := range result.Posts {
		fmt.Fprintf(w, "Created %s\n", p.OutputPath)
	}
	fmt.Fprintf(w, "Created %s\n", result.ListingPath)

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\n%d posts, %d skipped\n", len(result.Posts), len(result.Skipped))
	}
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if any.
func withHint(err error, source string, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(config.SearchPaths(config.DefaultName))
	case errors.Is(err, mdblog.ErrNoPosts):
		hint = hints.ForEmptySource(source)
	case errors.Is(err, mdblog.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, mdblog.ErrListingAnchor):
		anchor := mdblog.DefaultListingID
		if cfg != nil && cfg.Listing.Anchor != "" {
			anchor = cfg.Listing.Anchor
		}
		hint = hints.ForListingAnchor(anchor)
	case errors.Is(err, mdblog.ErrTemplate),
		errors.Is(err, mdblog.ErrIncompleteTemplateSet),
		errors.Is(err, mdblog.ErrTemplateSetNotFound):
		hint = hints.ForTemplate()
	case errors.Is(err, mdblog.ErrStyleNotFound):
		hint = hints.ForStyleNotFound(embeddedStyles())
	case errors.Is(err, mdblog.ErrHighlightStyle):
		hint = hints.ForHighlightStyle(pipeline.HighlightStyles())
	case errors.Is(err, mdblog.ErrUnsafeClean):
		hint = hints.ForUnsafeClean()
	}

	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// embeddedStyles lists the built-in style names.
func embeddedStyles() []string {
	resolver, err := assets.NewAssetResolver("")
	if err != nil {
		return nil
	}
	return resolver.AvailableStyles()
}

// valueOr returns value, or fallback when value is empty.
func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
