package assets

import (
	"errors"
)

// AssetResolver serves assets from a custom directory when one is configured
// and falls back to the embedded defaults for anything the directory lacks.
// Fallback happens per file.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath means embedded assets only.
// Returns ErrInvalidBasePath if customBasePath is set but unusable.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a stylesheet, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.fallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadTemplate loads one template page, custom directory first.
func (r *AssetResolver) LoadTemplate(set, page string) (string, error) {
	return r.fallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(set, page)
	})
}

// AvailableStyles lists the embedded style names.
func (r *AssetResolver) AvailableStyles() []string {
	return r.embedded.Styles()
}

func (r *AssetResolver) fallback(load func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}

	// Validation, traversal and I/O errors are not masked by the defaults.
	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return load(r.embedded)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
