package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpreview/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// previewFlags holds rendering flags. The set* fields record whether a
// boolean was given on the command line, so unset flags keep config values.
type previewFlags struct {
	style        string
	codeStyle    string
	assetPath    string
	math         bool
	highlight    bool
	rawHTML      bool
	setMath      bool
	setHighlight bool
	setRawHTML   bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common   commonFlags
	preview  previewFlags
	addr     string
	debounce time.Duration
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common  commonFlags
	preview previewFlags
	output  string
	toc     bool
	bare    bool
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common  commonFlags
	preview previewFlags
	output  string
	format  string
	timeout time.Duration
}

// stylesFlags holds flags for the styles command.
type stylesFlags struct {
	common    commonFlags
	assetPath string
	yaml      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addPreviewFlags adds rendering flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "preview style name")
	fs.StringVar(&f.codeStyle, "code-style", "", "chroma style for code blocks")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.math, "math", false, "enable MathJax")
	fs.BoolVar(&f.highlight, "highlight", true, "highlight fenced code blocks")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "keep raw HTML, sanitized")
}

// markChanged records which boolean preview flags were given.
func (f *previewFlags) markChanged(fs *flag.FlagSet) {
	f.setMath = fs.Changed("math")
	f.setHighlight = fs.Changed("highlight")
	f.setRawHTML = fs.Changed("raw-html")
}

// mergeFlags applies command line values to cfg. CLI wins.
func (f *previewFlags) mergeFlags(cfg *config.Config) {
	if f.style != "" {
		cfg.Preview.Style = f.style
	}
	if f.codeStyle != "" {
		cfg.Preview.CodeStyle = f.codeStyle
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.setMath {
		cfg.Preview.MathSupport = f.math
	}
	if f.setHighlight {
		cfg.Preview.CodeHighlighting = f.highlight
	}
	if f.setRawHTML {
		cfg.Preview.RawHTML = f.rawHTML
	}
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", printServeUsage, stderr)
	addCommonFlags(fs, &f.common)
	addPreviewFlags(fs, &f.preview)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (host:port)")
	fs.DurationVar(&f.debounce, "debounce", 0, "delay grouping file save events")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.preview.markChanged(fs)
	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)
	addCommonFlags(fs, &f.common)
	addPreviewFlags(fs, &f.preview)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.BoolVar(&f.toc, "toc", false, "write the table of contents instead")
	fs.BoolVar(&f.bare, "bare", false, "do not inject the style CSS")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.preview.markChanged(fs)
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, stderr io.Writer) (*exportFlags, []string, error) {
	f := &exportFlags{}
	fs := newFlagSet("export", printExportUsage, stderr)
	addCommonFlags(fs, &f.common)
	addPreviewFlags(fs, &f.preview)
	fs.StringVarP(&f.output, "output", "o", "", "output file (.html or .pdf)")
	fs.StringVarP(&f.format, "format", "f", "", "html or pdf (default from extension)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "PDF generation timeout (e.g., 30s, 2m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.preview.markChanged(fs)
	return f, fs.Args(), nil
}

// parseStylesFlags parses styles command flags.
func parseStylesFlags(args []string, stderr io.Writer) (*stylesFlags, error) {
	f := &stylesFlags{}
	fs := newFlagSet("styles", printStylesUsage, stderr)
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.yaml, "yaml", false, "print the catalog as YAML")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
