package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrNoOutput     = errors.New("no output specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrRender       = errors.New("rendering failed")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// usageError wraps a flag parsing error. Asking for help is not an error.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// resolveConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
func resolveConfig(common commonFlags, preview *previewFlags) (*config.Config, error) {
	env := loadEnvConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	if preview != nil {
		preview.mergeFlags(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a text logger on w honoring --quiet and --verbose.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// readMarkdown reads path, or stdin when path is "-".
func readMarkdown(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- path is user-provided
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// session is one document wired to a preview generator.
type session struct {
	doc     *mdpreview.Document
	gen     *mdpreview.Generator
	catalog *mdpreview.StyleCatalog
}

// newSession builds the converter, style catalog, generator and document
// described by cfg. sourceDir and baseURL control relative path rewriting.
func newSession(cfg *config.Config, sourceDir, baseURL string, logger *slog.Logger) (*session, error) {
	catalog, err := mdpreview.NewStyleCatalog(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}

	conv, err := mdpreview.NewMarkdownConverter(
		mdpreview.WithAssetPath(cfg.Assets.BasePath),
		mdpreview.WithSourceDir(sourceDir),
		mdpreview.WithBaseURL(baseURL),
		mdpreview.WithRawHTML(cfg.Preview.RawHTML),
	)
	if err != nil {
		return nil, err
	}

	gen := mdpreview.NewGenerator(conv,
		mdpreview.WithLogger(logger),
		mdpreview.WithInitialConfig(mdpreview.WorkerConfig{
			MathSupport:           cfg.Preview.MathSupport,
			CodeHighlighting:      cfg.Preview.CodeHighlighting,
			CodeHighlightingStyle: mdpreview.DefaultCodeStyle,
		}),
	)
	doc := mdpreview.NewDocument(gen, catalog)

	// No text yet, so switching style only configures the generator.
	if err := doc.SetStyle(cfg.Preview.Style); err != nil {
		return nil, fmt.Errorf("preview style %q: %w", cfg.Preview.Style, err)
	}
	if cs := cfg.Preview.CodeStyle; cs != "" {
		if !mdpreview.CodeStyleExists(cs) {
			return nil, fmt.Errorf("%w: code style %q", mdpreview.ErrStyleNotFound, cs)
		}
		gen.SetCodeHighlightingStyle(cs)
	}

	return &session{doc: doc, gen: gen, catalog: catalog}, nil
}

// renderOnce runs text through the generator and returns the delivered
// result. The generator is shut down afterwards.
func (s *session) renderOnce(text string) (mdpreview.Result, error) {
	var (
		res mdpreview.Result
		got bool
	)
	s.gen.OnResult(func(r mdpreview.Result) {
		res = r
		got = true
	})

	if err := s.gen.Start(); err != nil {
		return res, err
	}
	if err := s.gen.Enqueue(text); err != nil {
		return res, err
	}
	s.gen.Shutdown()

	if !got {
		return res, ErrRender
	}
	return res, nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	return hints.For(err, hints.Context{Styles: embeddedStyleNames})
}

// embeddedStyleNames lists the built-in preview styles.
func embeddedStyleNames() []string {
	catalog, err := mdpreview.NewStyleCatalog("")
	if err != nil {
		return nil
	}
	return catalog.Names()
}
