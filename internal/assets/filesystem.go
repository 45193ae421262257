package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader loads assets from a user asset directory laid out like the
// embedded one: styles/<name>.css, styles/catalog.yaml and
// templates/<name>.html. Reads go through an os.Root, so neither ".." nor a
// symlink can reach a file outside the directory.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer func() { _ = root.Close() }()

	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: abs}, nil
}

// LoadStyle reads styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return loadStyle(f.read, name)
}

// LoadTemplate reads templates/<name>.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return loadTemplate(f.read, name)
}

// LoadCatalog parses styles/catalog.yaml.
func (f *FilesystemLoader) LoadCatalog() (*Catalog, error) {
	return loadCatalog(f.read, f.basePath)
}

// read returns the content of rel, a slash-separated path under basePath.
// Not-exist errors are returned as is so callers can map them; a path that
// leaves basePath yields ErrPathTraversal.
func (f *FilesystemLoader) read(rel string) ([]byte, error) {
	root, err := os.OpenRoot(f.basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = root.Close() }()

	data, err := root.ReadFile(filepath.FromSlash(rel))
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, err
	case f.escapes(rel):
		return nil, fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	default:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}

// escapes reports whether rel resolves, through symlinks, outside basePath.
// Only consulted to classify a failed read.
func (f *FilesystemLoader) escapes(rel string) bool {
	resolved, err := filepath.EvalSymlinks(filepath.Join(f.basePath, filepath.FromSlash(rel)))
	if err != nil {
		return false
	}
	base, err := filepath.EvalSymlinks(f.basePath)
	if err != nil {
		base = f.basePath
	}
	up, err := filepath.Rel(base, resolved)
	return err != nil || up == ".." || len(up) > 2 && up[:3] == ".."+string(filepath.Separator)
}

var _ AssetLoader = (*FilesystemLoader)(nil)
