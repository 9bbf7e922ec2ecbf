package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the blog (default)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdblog help build' for build flags.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every Markdown post in the source directory to")
	fmt.Fprintln(w, "<output>/<slug>/index.html and write a listing to <output>/index.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -s, --source <dir>            Source directory (default: blog_src)")
	fmt.Fprintln(w, "  -o, --output <dir>            Output directory (default: blog)")
	fmt.Fprintln(w, "  -c, --config <name>           Config file name or path (default: mdblog if present)")
	fmt.Fprintln(w, "      --clean                   Remove the output directory first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --site-title <s>          Site title (default: Blog)")
	fmt.Fprintln(w, "      --base-url <url>          Absolute URL prefix for post links")
	fmt.Fprintln(w, "      --date-format <s>         Display format (default: MMMM DD, YYYY)")
	fmt.Fprintln(w, "                                Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                                Presets: iso, european, us, long, short")
	fmt.Fprintln(w, "                                Use [text] to escape literals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Posts:")
	fmt.Fprintln(w, "      --on-collision <s>        Same slug twice: skip (default), overwrite")
	fmt.Fprintln(w, "      --keep-undated            Keep posts with unparseable dates, listed last")
	fmt.Fprintln(w, "      --drafts                  Include posts with draft: true")
	fmt.Fprintln(w, "      --unsafe-html             Pass raw HTML in posts through")
	fmt.Fprintln(w, "      --no-hard-wraps           Treat single newlines as spaces")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>        Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --style <name>            Stylesheet name (default: default)")
	fmt.Fprintln(w, "      --no-style                Disable CSS styling")
	fmt.Fprintln(w, "      --template <name>         Template set name (default: default)")
	fmt.Fprintln(w, "      --highlight-style <name>  Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --listing-shell <file>    Inject the listing into an existing HTML page")
	fmt.Fprintln(w, "      --listing-anchor <id>     Element id receiving the listing (default: blog-list)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet                   Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                 Show debug output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBLOG_CONFIG, MDBLOG_SOURCE_DIR, MDBLOG_OUTPUT_DIR, MDBLOG_SITE_TITLE,")
	fmt.Fprintln(w, "  MDBLOG_BASE_URL, MDBLOG_STYLE, MDBLOG_DATE_FORMAT, MDBLOG_ON_COLLISION,")
	fmt.Fprintln(w, "  MDBLOG_DRAFTS")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// runHelp prints help for the named command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version", "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}
