package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	mdpreview "github.com/alnah/go-mdpreview"
	"github.com/alnah/go-mdpreview/internal/server"
	"github.com/alnah/go-mdpreview/internal/watch"
)

// runServeCmd previews a Markdown file in the browser and re-renders it
// every time the file is saved.
func runServeCmd(args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	if input == "-" {
		return fmt.Errorf("%w: serve needs a file to watch", ErrUsage)
	}

	cfg, err := resolveConfig(flags.common, &flags.preview)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.debounce > 0 {
		cfg.Watch.Debounce = flags.debounce
	}
	logger := newLogger(env.Stderr, flags.common)

	path, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	text, err := readMarkdown(path, nil)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	s, err := newSession(cfg, dir, server.FilesPrefix, logger)
	if err != nil {
		return err
	}

	hub := server.NewHub(logger)
	wirePreview(s, hub)

	if err := s.gen.Start(); err != nil {
		return err
	}
	defer s.doc.Close()

	if err := s.doc.SetText(text); err != nil {
		return err
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	w := watch.New(path, cfg.Watch.Debounce, func(text string) {
		if err := s.doc.SetText(text); err != nil {
			logger.Warn("submitting document", slog.Any("error", err))
			return
		}
		logger.Debug("document changed", slog.Int("words", s.doc.WordCount()))
	}, logger)

	watchErr := make(chan error, 1)
	go func() {
		err := w.Run(ctx)
		if err != nil {
			stop()
		}
		watchErr <- err
	}()

	srv := server.New(server.Config{
		Addr:   cfg.Server.Addr,
		DocDir: dir,
		Title:  filepath.Base(path),
	}, hub, s.gen.Stats, logger)

	srvErr := srv.Run(ctx)
	stop()
	if err := <-watchErr; err != nil && srvErr == nil {
		return err
	}
	return srvErr
}

// wirePreview publishes every render and style switch of s to hub.
func wirePreview(s *session, hub *server.Hub) {
	hub.Publish(server.KindStyle, s.doc.Style().Label)
	s.doc.OnStyleChanged(func(st mdpreview.Style) {
		hub.Publish(server.KindStyle, st.Label)
	})
	s.gen.OnResult(func(r mdpreview.Result) {
		hub.Publish(server.KindHTML, mdpreview.StandaloneHTML(r, s.doc.Style()))
		hub.Publish(server.KindTOC, r.TOC)
	})
}
