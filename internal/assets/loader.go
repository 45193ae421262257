package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// AssetLoader defines the contract for loading preview assets.
// Implementations may load from embedded assets, the filesystem, or elsewhere.
type AssetLoader interface {
	// LoadStyle loads a CSS stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadCatalog loads the style catalog.
	// Returns ErrCatalogNotFound if the loader has no catalog.
	LoadCatalog() (*Catalog, error)
}

// Asset locations, relative to a loader's root.
const (
	stylesDir    = "styles"
	templatesDir = "templates"
	catalogFile  = "catalog.yaml"
)

// readFunc reads a slash-separated path relative to a loader's root.
// A missing file is reported with an error matching fs.ErrNotExist.
type readFunc func(rel string) ([]byte, error)

func loadStyle(read readFunc, name string) (string, error) {
	return loadNamed(read, name, stylesDir, ".css", ErrStyleNotFound)
}

func loadTemplate(read readFunc, name string) (string, error) {
	return loadNamed(read, name, templatesDir, ".html", ErrTemplateNotFound)
}

// loadNamed validates name and reads dir/name+ext, reporting a missing file
// as notFound.
func loadNamed(read readFunc, name, dir, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := read(path.Join(dir, name+ext))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", notFound, name)
		}
		return "", err
	}
	return string(data), nil
}

// loadCatalog reads and parses styles/catalog.yaml; where names the root in
// the not-found error.
func loadCatalog(read readFunc, where string) (*Catalog, error) {
	data, err := read(path.Join(stylesDir, catalogFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, where)
		}
		return nil, err
	}
	return ParseCatalog(data)
}
