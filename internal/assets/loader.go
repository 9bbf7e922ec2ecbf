package assets

import (
	"errors"
	"fmt"
)

// Template page names inside a template set.
const (
	PagePost    = "post"
	PageListing = "listing"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// NoStyleName disables the stylesheet entirely.
const NoStyleName = "none"

// AssetLoader defines the contract for loading stylesheets and page templates.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads one page of a template set (without .html extension).
	// Returns ErrTemplateNotFound if the page doesn't exist.
	// Returns ErrInvalidAssetName if either name contains invalid characters.
	LoadTemplate(set, page string) (string, error)
}

// TemplateSet holds the HTML templates that render a blog.
type TemplateSet struct {
	Name    string // Identifier (set name)
	Post    string // Post page template source
	Listing string // Listing page template source
}

// LoadTemplateSet loads both pages of the named set through loader.
// Returns ErrTemplateSetNotFound if neither page exists and
// ErrIncompleteTemplateSet if only one does.
func LoadTemplateSet(loader AssetLoader, name string) (*TemplateSet, error) {
	post, postErr := loader.LoadTemplate(name, PagePost)
	listing, listingErr := loader.LoadTemplate(name, PageListing)

	postMissing := errors.Is(postErr, ErrTemplateNotFound)
	listingMissing := errors.Is(listingErr, ErrTemplateNotFound)

	if postMissing && listingMissing {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if postErr != nil && !postMissing {
		return nil, postErr
	}
	if listingErr != nil && !listingMissing {
		return nil, listingErr
	}
	if postMissing {
		return nil, fmt.Errorf("%w: %q missing %s.html", ErrIncompleteTemplateSet, name, PagePost)
	}
	if listingMissing {
		return nil, fmt.Errorf("%w: %q missing %s.html", ErrIncompleteTemplateSet, name, PageListing)
	}

	return &TemplateSet{Name: name, Post: post, Listing: listing}, nil
}
