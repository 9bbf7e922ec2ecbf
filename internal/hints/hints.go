// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config under ~/.config/go-mdblog/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/mdblog.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), ".config/go-mdblog") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForEmptySource returns hints when the source directory holds no posts.
func ForEmptySource(dir string) string {
	return format("add .md files with a --- frontmatter block to " + dir + ", or point --source elsewhere")
}

// ForOutputDirectory returns hints for output directory creation or write errors.
// Mounted volumes in containers are a frequent cause, so it says so.
func ForOutputDirectory() string {
	hints := []string{"check the output directory exists and is writable"}
	if IsInContainer() {
		hints = append(hints, "inside a container, make sure the volume is mounted read-write")
	}
	return formatHints(hints)
}

// ForListingAnchor returns hints when a listing shell lacks the anchor element.
func ForListingAnchor(id string) string {
	return format(`add <div id="` + id + `"></div> where the post list should appear`)
}

// ForTemplate returns hints for template parse or lookup errors.
func ForTemplate() string {
	return format("templates live in <asset-path>/templates/<name>/post.html and listing.html")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForHighlightStyle returns hints for unknown chroma style names.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("--highlight-style accepts: " + strings.Join(available, ", "))
}

// ForUnsafeClean returns hints when --clean is refused.
func ForUnsafeClean() string {
	return format("choose an output directory that does not contain the source directory")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
