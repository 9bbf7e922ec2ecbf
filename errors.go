package mdblog

import (
	"errors"

	"github.com/alnah/go-mdblog/internal/assets"
	"github.com/alnah/go-mdblog/internal/dateutil"
	"github.com/alnah/go-mdblog/internal/pipeline"
	"github.com/alnah/go-mdblog/internal/post"
)

// Per-file errors. The file is skipped, reported in Result.Skipped and
// logged as a warning; the build continues.
var (
	ErrMissingFrontmatter = post.ErrMissingFrontmatter
	ErrInvalidSlug        = post.ErrInvalidSlug
	ErrUnparseableDate    = dateutil.ErrUnparseableDate
	ErrSlugCollision      = errors.New("slug collision")
	ErrReadPost           = errors.New("failed to read post")
	ErrRenderPost         = errors.New("failed to render post")
	ErrDraft              = errors.New("post is a draft")
)

// Fatal errors. Build stops and returns the error.
var (
	ErrReadSource    = errors.New("cannot read source directory")
	ErrNoPosts       = errors.New("no Markdown files in source directory")
	ErrWriteOutput   = errors.New("cannot write output")
	ErrListingShell  = errors.New("cannot read listing shell")
	ErrListingAnchor = pipeline.ErrAnchorNotFound
	ErrUnsafeClean   = errors.New("refusing to clean output directory")
	ErrTemplate      = errors.New("invalid page template")
)

// Option validation errors, returned by NewBuilder.
var (
	ErrInvalidAssetPath      = assets.ErrInvalidBasePath
	ErrStyleNotFound         = assets.ErrStyleNotFound
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet
	ErrInvalidDateFormat     = dateutil.ErrInvalidDateFormat
	ErrHighlightStyle        = pipeline.ErrUnknownHighlightStyle
	ErrInvalidCollision      = errors.New("invalid collision policy")
)
