// Package mdpreview renders Markdown into a live HTML preview without ever
// blocking the editing side.
//
// # Quick Start
//
// Create a converter and a generator, register handlers, start it and feed it
// text. Handlers run on the generator's UI context, one result at a time:
//
//	conv, err := mdpreview.NewMarkdownConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen := mdpreview.NewGenerator(conv)
//	gen.OnHTMLReady(func(html string) { fmt.Println(html) })
//	gen.OnTOCReady(func(toc string) { fmt.Println(toc) })
//	if err := gen.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Shutdown()
//
//	_ = gen.Enqueue("# Hello\n\nWorld")
//
// # Preview Pipeline
//
// Every call to Enqueue captures an immutable snapshot of the text and appends
// it to an unbounded FIFO queue. A single worker goroutine drains the queue in
// order, converts each snapshot with the Converter using the rendering options
// current at that moment, and posts the HTML and TOC to the UI context.
//
//  1. Enqueue never blocks and never drops a snapshot
//  2. Snapshots are rendered one at a time, in submission order
//  3. Results are delivered in the order they were produced
//  4. A snapshot that fails to convert is logged and skipped
//
// There is no coalescing: ten edits produce ten renders. Callers that want
// fewer renders debounce before calling Enqueue.
//
// # UI Context
//
// Results are handed to a Poster, which schedules a function on whatever
// goroutine owns the user interface. Without WithPoster the generator runs its
// own EventLoop. The preview server in internal/server posts onto its
// websocket hub instead.
//
// # Shutdown
//
// Shutdown enqueues a stop marker behind every pending snapshot, waits for the
// worker to render them, then closes delivery. Once Shutdown returns no
// handler runs again. Enqueue after Shutdown returns ErrGeneratorStopped.
// Shutdown must not be called from inside a handler.
//
// # Styles and Export
//
// A StyleCatalog resolves preview styles (page CSS plus a Chroma code style)
// from embedded assets or a custom directory. Document ties the current text,
// the active style and a Generator together the way an editor window does.
// ExportHTML writes a standalone page; PDFExporter prints it through headless
// Chrome.
package mdpreview
