package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdblog/internal/fileutil"
)

// FilesystemLoader reads stylesheets and templates from a site directory.
// Implements AssetLoader interface.
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader opens root as an asset directory.
// Returns ErrInvalidBasePath unless root is a readable directory.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	// Containment checks compare real paths, so resolve the root too.
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	if _, err := os.ReadDir(abs); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		case !fileutil.DirExists(abs):
			return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
		default:
			return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
		}
	}

	return &FilesystemLoader{root: abs}, nil
}

// LoadStyle reads {root}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := f.read(filepath.Join("styles", name+".css"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return content, err
}

// LoadTemplate reads {root}/templates/{set}/{page}.html.
func (f *FilesystemLoader) LoadTemplate(set, page string) (string, error) {
	if err := ValidateAssetName(set); err != nil {
		return "", err
	}
	if err := ValidateAssetName(page); err != nil {
		return "", err
	}

	content, err := f.read(filepath.Join("templates", set, page+".html"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, set, page)
	}
	return content, err
}

// read loads rel from below the root. A missing file is reported as
// fs.ErrNotExist so callers can map it to their own not-found sentinel.
func (f *FilesystemLoader) read(rel string) (string, error) {
	path := filepath.Join(f.root, rel)
	if err := f.contain(path); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path contained in root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fs.ErrNotExist
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// contain rejects paths whose real location falls outside the root.
// Symlinks are followed so a link inside the root cannot point elsewhere.
func (f *FilesystemLoader) contain(path string) error {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}

	within, err := fileutil.IsWithin(f.root, path)
	if err != nil || !within || path == f.root {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ AssetLoader = (*FilesystemLoader)(nil)
