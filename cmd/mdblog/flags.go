package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds site-wide presentation flags.
type siteFlags struct {
	title      string
	baseURL    string
	dateFormat string
}

// assetFlags holds asset-related flags (styles, templates, listing shell).
type assetFlags struct {
	assetPath      string
	style          string
	template       string
	noStyle        bool
	listingShell   string
	listingAnchor  string
	highlightStyle string
}

// policyFlags holds per-post policy flags.
type policyFlags struct {
	onCollision string
	keepUndated bool
	drafts      bool
	clean       bool
	unsafeHTML  bool
	noHardWraps bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	source string
	output string
	site   siteFlags
	assets assetFlags
	policy policyFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addSiteFlags adds site flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.title, "site-title", "", "site title (default \"Blog\")")
	fs.StringVar(&f.baseURL, "base-url", "", "absolute URL prefix for post links")
	fs.StringVar(&f.dateFormat, "date-format", "", "display date format or preset")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.listingShell, "listing-shell", "", "HTML page to inject the listing into")
	fs.StringVar(&f.listingAnchor, "listing-anchor", "", "id of the element receiving the listing")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlighting style")
}

// addPolicyFlags adds per-post policy flags to a FlagSet.
func addPolicyFlags(fs *flag.FlagSet, f *policyFlags) {
	fs.StringVar(&f.onCollision, "on-collision", "", "slug collision policy: skip, overwrite")
	fs.BoolVar(&f.keepUndated, "keep-undated", false, "keep posts with unparseable dates")
	fs.BoolVar(&f.drafts, "drafts", false, "include draft posts")
	fs.BoolVar(&f.clean, "clean", false, "remove the output directory first")
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass raw HTML in posts through")
	fs.BoolVar(&f.noHardWraps, "no-hard-wraps", false, "treat single newlines as spaces")
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage goes to w on --help or a parse error.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &buildFlags{}

	// I/O flags
	fs.StringVarP(&f.source, "source", "s", "", "source directory (default \"blog_src\")")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default \"blog\")")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addAssetFlags(fs, &f.assets)
	addPolicyFlags(fs, &f.policy)

	fs.Usage = func() { printBuildUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
