// Package post splits a Markdown source file into frontmatter metadata and
// body, and derives the URL slug and fallback title from its filename.
package post

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// Sentinel errors for post parsing.
var (
	ErrMissingFrontmatter = errors.New("missing or malformed frontmatter")
	ErrInvalidSlug        = errors.New("invalid slug")
)

// maxFrontmatterSize bounds the YAML block of a single post.
const maxFrontmatterSize = 64 << 10

// Meta is the frontmatter of a post. Unknown keys are ignored.
type Meta struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// yamlFormat only accepts the `---` ... `---` block.
var yamlFormat = frontmatter.NewFormat("---", "---", decodeMeta)

// Parse splits content into its frontmatter and Markdown body.
// Leading blank lines before the opening delimiter are tolerated.
// Returns ErrMissingFrontmatter if either delimiter is missing or
// the block is not valid YAML. Values are strict YAML, so a title
// such as `Go: a tour` must be quoted.
func Parse(content []byte) (Meta, []byte, error) {
	var meta Meta

	body, err := frontmatter.MustParse(bytes.NewReader(content), &meta, yamlFormat)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Meta{}, nil, fmt.Errorf("%w: no closed --- block", ErrMissingFrontmatter)
		}
		return Meta{}, nil, fmt.Errorf("%w: %v (quote values containing \": \")", ErrMissingFrontmatter, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Date = strings.TrimSpace(meta.Date)
	meta.Description = strings.TrimSpace(meta.Description)
	return meta, body, nil
}

func decodeMeta(data []byte, v any) error {
	// An empty block is valid and leaves every field unset.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return yamlutil.Unmarshal(data, v, yamlutil.MaxSize(maxFrontmatterSize))
}

// Slug derives the URL path segment for a source file from its base name
// without extension. Returns ErrInvalidSlug when nothing URL-safe remains.
func Slug(filename string) (string, error) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	s, err := slug.Normalize(stem)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSlug, base, err)
	}
	if s == "" || s == "." || s == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, base)
	}
	return s, nil
}

// TitleFromSlug turns "my-first-post" into "My First Post".
func TitleFromSlug(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
