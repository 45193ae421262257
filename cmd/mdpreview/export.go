package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/config"
)

// runExportCmd renders one Markdown file and saves it as HTML or PDF.
func runExportCmd(args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	if flags.output == "" {
		return ErrNoOutput
	}

	cfg, err := resolveConfig(flags.common, &flags.preview)
	if err != nil {
		return err
	}
	if flags.timeout > 0 {
		cfg.Export.Timeout = flags.timeout
	}
	format, err := resolveFormat(flags.format, flags.output, cfg)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, flags.common)

	text, err := readMarkdown(input, env.Stdin)
	if err != nil {
		return err
	}

	s, err := newSession(cfg, sourceDirOf(input), "", logger)
	if err != nil {
		return err
	}
	res, err := s.renderOnce(text)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := mdpreview.ExportHTML(&buf, res, s.doc.Style()); err != nil {
		return err
	}

	data := buf.Bytes()
	if format == "pdf" {
		ctx, stop := notifyContext(context.Background())
		defer stop()

		exporter := mdpreview.NewPDFExporter(
			mdpreview.WithPDFTimeout(cfg.Export.Timeout),
			mdpreview.WithPDFLogger(logger),
		)
		defer func() { _ = exporter.Close() }()

		data, err = exporter.ExportPDF(ctx, buf.String())
		if err != nil {
			return err
		}
	}

	if err := writeOutput(flags.output, data, env.Stdout); err != nil {
		return err
	}
	logger.Info("exported preview", "output", flags.output, "format", format)
	return nil
}

// resolveFormat picks the export format: the flag, then the output
// extension, then the config.
func resolveFormat(flagFormat, output string, cfg *config.Config) (string, error) {
	format := strings.ToLower(flagFormat)
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".pdf":
			format = "pdf"
		case ".html", ".htm":
			format = "html"
		default:
			format = strings.ToLower(cfg.Export.Format)
		}
	}

	switch format {
	case "html", "pdf":
		return format, nil
	default:
		return "", fmt.Errorf("%w: format %q (must be html or pdf)", ErrUsage, flagFormat)
	}
}
