package mdpreview

import (
	"log/slog"
	"sync"
)

// Poster schedules functions on a UI context.
// Post must not block and must run functions in the order they were posted.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a function to the Poster interface.
type PosterFunc func(fn func())

// Post calls f(fn).
func (f PosterFunc) Post(fn func()) { f(fn) }

// dispatcher hands results from the worker to the registered handlers on the
// UI context. After close returns no handler is invoked; results posted
// earlier but not yet run become no-ops.
type dispatcher struct {
	poster Poster
	logger *slog.Logger

	hmu    sync.RWMutex // guards handler slices
	html   []func(string)
	toc    []func(string)
	result []func(Result)

	mu     sync.Mutex // held while handlers run
	closed bool
}

func newDispatcher(p Poster, logger *slog.Logger) *dispatcher {
	return &dispatcher{poster: p, logger: logger}
}

func (d *dispatcher) onHTML(fn func(string)) {
	d.hmu.Lock()
	d.html = append(d.html, fn)
	d.hmu.Unlock()
}

func (d *dispatcher) onTOC(fn func(string)) {
	d.hmu.Lock()
	d.toc = append(d.toc, fn)
	d.hmu.Unlock()
}

func (d *dispatcher) onResult(fn func(Result)) {
	d.hmu.Lock()
	d.result = append(d.result, fn)
	d.hmu.Unlock()
}

// deliver posts one message carrying both the HTML and TOC of r.
func (d *dispatcher) deliver(r Result) {
	d.poster.Post(func() { d.invoke(r) })
}

// invoke runs on the UI context. HTML handlers run before TOC handlers,
// then whole-result handlers.
func (d *dispatcher) invoke(r Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.hmu.RLock()
	html, toc, result := d.html, d.toc, d.result
	d.hmu.RUnlock()

	for _, h := range html {
		d.call(func() { h(r.HTML) })
	}
	for _, h := range toc {
		d.call(func() { h(r.TOC) })
	}
	for _, h := range result {
		d.call(func() { h(r) })
	}
}

// call runs one handler; a panicking handler does not stop the others.
func (d *dispatcher) call(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("preview handler panicked", slog.Any("panic", rec))
		}
	}()
	fn()
}

// close disables delivery. It waits for a handler batch already running.
func (d *dispatcher) close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}
