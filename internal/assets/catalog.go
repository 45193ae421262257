package assets

import (
	"fmt"

	"github.com/alnah/go-mdpreview/internal/yamlutil"
)

// DefaultStyleName is the name of the built-in preview style.
const DefaultStyleName = "default"

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "preview"

// Catalog lists the preview styles a loader knows about.
type Catalog struct {
	Styles []StyleEntry `yaml:"styles"`
}

// StyleEntry describes one preview style.
// The stylesheet is loaded separately by name.
type StyleEntry struct {
	Name      string `yaml:"name"`
	Label     string `yaml:"label"`
	CodeStyle string `yaml:"codeStyle"` // Chroma style used for code blocks
	BuiltIn   bool   `yaml:"builtIn"`
}

// ParseCatalog decodes a YAML catalog and validates its entries.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yamlutil.UnmarshalStrict(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(c.Styles))
	for i, s := range c.Styles {
		if err := ValidateAssetName(s.Name); err != nil {
			return nil, fmt.Errorf("%w: styles[%d]: %v", ErrInvalidCatalog, i, err)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: duplicate style %q", ErrInvalidCatalog, s.Name)
		}
		seen[s.Name] = true
	}

	return &c, nil
}

// Lookup returns the entry named name.
func (c *Catalog) Lookup(name string) (StyleEntry, bool) {
	for _, s := range c.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return StyleEntry{}, false
}

// Merge returns a catalog holding c's entries with overrides applied.
// Entries of overrides replace same-named entries in place; new names are
// appended in overrides order.
func (c *Catalog) Merge(overrides *Catalog) *Catalog {
	merged := &Catalog{Styles: append([]StyleEntry(nil), c.Styles...)}
	if overrides == nil {
		return merged
	}

	index := make(map[string]int, len(merged.Styles))
	for i, s := range merged.Styles {
		index[s.Name] = i
	}
	for _, s := range overrides.Styles {
		if i, ok := index[s.Name]; ok {
			merged.Styles[i] = s
			continue
		}
		index[s.Name] = len(merged.Styles)
		merged.Styles = append(merged.Styles, s)
	}
	return merged
}
