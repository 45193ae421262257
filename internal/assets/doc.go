// Package assets provides the preview template, preview stylesheets and the
// style catalog.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the preview engine. Styles and
// templates are looked up in the custom directory first and fall back to the
// embedded copies when missing. Catalogs are merged: entries from the custom
// catalog replace built-in entries of the same name and new names are added.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── catalog.yaml         # style catalog (optional)
//	│   └── {name}.css           # preview stylesheet
//	└── templates/
//	    └── {name}.html          # page template with __HTML_HEADER__ / __HTML_CONTENT__
//
// # Security
//
// Asset names are limited to letters, digits, '-' and '_'. FilesystemLoader
// reads through an os.Root, so a symlink cannot lead outside basePath either.
package assets
