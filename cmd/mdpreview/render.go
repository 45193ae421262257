package main

import (
	"fmt"
	"path/filepath"

	mdpreview "github.com/alnah/go-mdpreview"
)

// runRenderCmd renders one Markdown file to a standalone HTML page.
func runRenderCmd(args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, &flags.preview)
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

	var page string
	switch {
	case flags.toc:
		page = mdpreview.TOCPage(res.TOC)
	case flags.bare:
		page = res.HTML
	default:
		page = mdpreview.StandaloneHTML(res, s.doc.Style())
	}

	return writeOutput(flags.output, []byte(page), env.Stdout)
}

// singleInput returns the one positional input argument.
func singleInput(positional []string) (string, error) {
	switch len(positional) {
	case 0:
		return "", ErrNoInput
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(positional))
	}
}

// sourceDirOf returns the absolute directory relative links resolve against.
// Stdin input resolves against the working directory.
func sourceDirOf(input string) string {
	if input == "-" {
		input = "."
	} else {
		input = filepath.Dir(input)
	}
	if abs, err := filepath.Abs(input); err == nil {
		return abs
	}
	return input
}
