package assets

import "errors"

// AssetResolver looks assets up in a user asset directory before the
// embedded set. Styles and templates missing from the directory come from the
// embedded set; catalogs are merged so a user catalog only needs the styles it
// adds or overrides.
type AssetResolver struct {
	chain []AssetLoader // custom first when configured, embedded last
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// only embedded assets. Returns ErrInvalidBasePath for an unusable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	chain := make([]AssetLoader, 0, 2)
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, custom)
	}
	chain = append(chain, NewEmbeddedLoader())

	return &AssetResolver{chain: chain}, nil
}

// LoadStyle returns the first CSS style named name along the chain.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return firstFound(r.chain, func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate returns the first page template named name along the chain.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return firstFound(r.chain, func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadCatalog merges every catalog along the chain, embedded entries first.
// A directory without a catalog contributes nothing.
func (r *AssetResolver) LoadCatalog() (*Catalog, error) {
	merged := &Catalog{}
	for i := len(r.chain) - 1; i >= 0; i-- {
		cat, err := r.chain[i].LoadCatalog()
		if errors.Is(err, ErrCatalogNotFound) && i < len(r.chain)-1 {
			continue
		}
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(cat)
	}
	return merged, nil
}

// HasCustomLoader reports whether a user asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

// firstFound calls load on each loader until one succeeds. Only not-found
// errors move on to the next loader; validation and I/O errors stop the
// lookup.
func firstFound(chain []AssetLoader, load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

var _ AssetLoader = (*AssetResolver)(nil)
