package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) read(rel string) ([]byte, error) {
	return fs.ReadFile(builtin, rel)
}

// LoadStyle loads a built-in stylesheet.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return loadStyle(e.read, name)
}

// LoadTemplate loads a built-in page template.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return loadTemplate(e.read, name)
}

// LoadCatalog parses the built-in style catalog.
func (e *EmbeddedLoader) LoadCatalog() (*Catalog, error) {
	return loadCatalog(e.read, "embedded")
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
