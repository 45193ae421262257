package mdpreview

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdpreview/internal/assets"
	"github.com/alnah/go-mdpreview/internal/pipeline"
)

// DefaultStyleName is the preview style used when none is chosen.
const DefaultStyleName = assets.DefaultStyleName

// Style is a preview look: page CSS plus the Chroma style for code blocks.
type Style struct {
	Name      string
	Label     string
	CSS       string
	CodeStyle string
	BuiltIn   bool
}

// StyleCatalog resolves preview styles from the embedded catalog, merged with
// the catalog of a custom asset directory when one is configured.
type StyleCatalog struct {
	loader  assets.AssetLoader
	catalog *assets.Catalog
}

// NewStyleCatalog loads the catalog. An empty assetPath uses the embedded
// styles only.
func NewStyleCatalog(assetPath string) (*StyleCatalog, error) {
	loader, err := newAssetLoader(assetPath)
	if err != nil {
		return nil, err
	}

	cat, err := loader.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading style catalog: %w", err)
	}

	return &StyleCatalog{loader: loader, catalog: cat}, nil
}

// Names lists style names in catalog order.
func (c *StyleCatalog) Names() []string {
	names := make([]string, 0, len(c.catalog.Styles))
	for _, s := range c.catalog.Styles {
		names = append(names, s.Name)
	}
	return names
}

// Styles returns every style with its CSS loaded.
func (c *StyleCatalog) Styles() ([]Style, error) {
	out := make([]Style, 0, len(c.catalog.Styles))
	for _, entry := range c.catalog.Styles {
		s, err := c.resolve(entry)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LookupStyle returns the named style with its CSS loaded.
// Returns ErrStyleNotFound if the catalog has no such style or its
// stylesheet is missing.
func (c *StyleCatalog) LookupStyle(name string) (Style, error) {
	entry, ok := c.catalog.Lookup(name)
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return c.resolve(entry)
}

func (c *StyleCatalog) resolve(entry assets.StyleEntry) (Style, error) {
	css, err := c.loader.LoadStyle(entry.Name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return Style{}, fmt.Errorf("%w: %q has no stylesheet", ErrStyleNotFound, entry.Name)
		}
		return Style{}, err
	}

	codeStyle := entry.CodeStyle
	if codeStyle == "" {
		codeStyle = DefaultCodeStyle
	}

	label := entry.Label
	if label == "" {
		label = entry.Name
	}

	return Style{
		Name:      entry.Name,
		Label:     label,
		CSS:       css,
		CodeStyle: codeStyle,
		BuiltIn:   entry.BuiltIn,
	}, nil
}

// CodeStyleNames lists the Chroma styles usable as a code highlighting style.
func CodeStyleNames() []string {
	return pipeline.CodeStyleNames()
}

// CodeStyleExists reports whether Chroma knows the style name.
func CodeStyleExists(name string) bool {
	return pipeline.CodeStyleExists(name)
}
