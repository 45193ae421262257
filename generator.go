package mdpreview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/alnah/go-mdpreview/internal/queue"
)

// Generator converts document snapshots on a single background goroutine and
// delivers each result to the registered handlers on a UI context.
//
// Create with NewGenerator, register handlers, call Start, submit text with
// Enqueue and call Shutdown when done. All methods are safe for concurrent
// use.
type Generator struct {
	conv   Converter
	logger *slog.Logger
	queue  *queue.Queue[Snapshot]
	cfg    atomic.Pointer[WorkerConfig]
	disp   *dispatcher

	loop    *EventLoop // owned loop when no Poster was given
	started bool       // worker and owned loop launched

	mu    sync.Mutex // guards state and ordering of queue pushes against the stop marker
	state State
	done  chan struct{}

	closeOnce sync.Once

	submitted atomic.Int64
	rendered  atomic.Int64
	failed    atomic.Int64
	pending   atomic.Int64
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*generatorConfig)

type generatorConfig struct {
	logger *slog.Logger
	poster Poster
	cfg    WorkerConfig
}

// WithLogger sets the logger for conversion failures and lifecycle events.
// The default logger discards everything.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(c *generatorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPoster delivers results through p instead of an owned EventLoop.
func WithPoster(p Poster) GeneratorOption {
	return func(c *generatorConfig) {
		c.poster = p
	}
}

// WithInitialConfig sets the rendering options used until a setter changes them.
func WithInitialConfig(cfg WorkerConfig) GeneratorOption {
	return func(c *generatorConfig) {
		c.cfg = cfg
	}
}

// NewGenerator creates an idle Generator that converts with conv.
func NewGenerator(conv Converter, opts ...GeneratorOption) *Generator {
	gc := generatorConfig{
		logger: slog.New(slog.DiscardHandler),
		cfg:    DefaultWorkerConfig(),
	}
	for _, opt := range opts {
		opt(&gc)
	}

	g := &Generator{
		conv:   conv,
		logger: gc.logger,
		queue:  queue.New[Snapshot](),
		done:   make(chan struct{}),
	}

	poster := gc.poster
	if poster == nil {
		g.loop = NewEventLoop()
		poster = g.loop
	}
	g.disp = newDispatcher(poster, gc.logger)

	cfg := gc.cfg
	g.cfg.Store(&cfg)

	return g
}

// Start launches the worker goroutine. Calling Start on a running generator
// is a no-op. A generator that was shut down cannot be restarted.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateRunning:
		return nil
	case StateStopping, StateStopped:
		return ErrGeneratorStopped
	}

	g.state = StateRunning
	g.started = true
	if g.loop != nil {
		go func() { _ = g.loop.Run(context.Background()) }()
	}
	go g.run()

	g.logger.Debug("preview generator started")
	return nil
}

// Enqueue submits a snapshot of text for rendering. It never blocks.
// Snapshots submitted before Start are rendered once the worker starts.
// After Shutdown has been requested the text is ignored and
// ErrGeneratorStopped is returned.
func (g *Generator) Enqueue(text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateStopping || g.state == StateStopped {
		return ErrGeneratorStopped
	}

	g.pending.Add(1)
	g.submitted.Add(1)
	g.queue.Push(NewSnapshot(text))
	return nil
}

// Shutdown queues the stop marker behind every pending snapshot, waits for
// the worker to finish them and disables delivery. Once Shutdown returns no
// handler is invoked again. It is idempotent and safe to call concurrently.
//
// With the owned EventLoop every rendered result is delivered before
// Shutdown returns. With a Poster given through WithPoster, results the UI
// context has not run yet are discarded; call Shutdown from the UI context
// after draining it to keep them.
//
// Shutdown waits for a handler that is currently running, so it must not be
// called from inside a handler.
func (g *Generator) Shutdown() {
	g.mu.Lock()
	switch g.state {
	case StateIdle:
		// Never started: queued snapshots are dropped.
		g.state = StateStopped
		g.pending.Store(0)
		close(g.done)
	case StateRunning:
		g.state = StateStopping
		g.queue.Push(stopSnapshot)
		g.logger.Debug("preview generator stopping", slog.Int64("pending", g.pending.Load()))
	}
	started := g.started
	g.mu.Unlock()

	<-g.done
	g.closeOnce.Do(func() {
		if started && g.loop != nil {
			g.flushLoop()
		}
		g.disp.close()
		if g.loop != nil {
			g.loop.Stop()
		}
	})
}

// flushLoop waits until the owned loop has run every delivery posted so far.
func (g *Generator) flushLoop() {
	flushed := make(chan struct{})
	g.loop.Post(func() { close(flushed) })
	<-flushed
}

// run is the worker loop.
func (g *Generator) run() {
	defer func() {
		g.mu.Lock()
		g.state = StateStopped
		g.mu.Unlock()
		close(g.done)
		g.logger.Debug("preview generator stopped")
	}()

	for {
		snap := g.queue.Pop()
		if snap.sentinel {
			return
		}
		g.pending.Add(-1)
		g.render(snap)
	}
}

// render converts one snapshot with the configuration current at this moment
// and delivers the result. Failures are logged and skipped.
func (g *Generator) render(snap Snapshot) {
	cfg := *g.cfg.Load()

	res, err := g.convert(snap.Text(), cfg)
	if err != nil {
		g.failed.Add(1)
		g.logger.Error("preview conversion failed",
			slog.Int("bytes", len(snap.Text())),
			slog.Any("error", err))
		return
	}

	g.disp.deliver(res)
	g.rendered.Add(1)
}

// convert calls the converter, turning a panic into an error.
func (g *Generator) convert(text string, cfg WorkerConfig) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrConversionPanic, r)
		}
	}()
	return g.conv.Convert(context.Background(), text, cfg)
}

// OnHTMLReady registers a handler receiving the HTML page of every result.
func (g *Generator) OnHTMLReady(fn func(html string)) {
	g.disp.onHTML(fn)
}

// OnTOCReady registers a handler receiving the TOC fragment of every result.
func (g *Generator) OnTOCReady(fn func(toc string)) {
	g.disp.onTOC(fn)
}

// OnResult registers a handler receiving every result whole.
func (g *Generator) OnResult(fn func(Result)) {
	g.disp.onResult(fn)
}

// SetMathSupportEnabled toggles the MathJax script for later conversions.
func (g *Generator) SetMathSupportEnabled(enabled bool) {
	g.updateConfig(func(c *WorkerConfig) { c.MathSupport = enabled })
}

// SetCodeHighlightingEnabled toggles syntax highlighting for later conversions.
func (g *Generator) SetCodeHighlightingEnabled(enabled bool) {
	g.updateConfig(func(c *WorkerConfig) { c.CodeHighlighting = enabled })
}

// SetCodeHighlightingStyle selects the Chroma style for later conversions.
// Unknown names render with Chroma's fallback style.
func (g *Generator) SetCodeHighlightingStyle(style string) {
	g.updateConfig(func(c *WorkerConfig) { c.CodeHighlightingStyle = style })
}

// Config returns the rendering options the next conversion will use.
func (g *Generator) Config() WorkerConfig {
	return *g.cfg.Load()
}

// updateConfig publishes a modified copy of the current configuration.
func (g *Generator) updateConfig(mutate func(*WorkerConfig)) {
	for {
		old := g.cfg.Load()
		next := *old
		mutate(&next)
		if g.cfg.CompareAndSwap(old, &next) {
			return
		}
	}
}

// State returns the lifecycle state.
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Stats returns activity counters.
func (g *Generator) Stats() Stats {
	return Stats{
		Submitted: g.submitted.Load(),
		Rendered:  g.rendered.Load(),
		Failed:    g.failed.Load(),
		Pending:   int(g.pending.Load()),
	}
}
