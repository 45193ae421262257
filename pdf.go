package mdpreview

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpreview/internal/fileutil"
	"github.com/alnah/go-mdpreview/internal/process"
)

// DefaultPDFTimeout bounds page loading when the context has no deadline.
const DefaultPDFTimeout = 30 * time.Second

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// PDFExporter prints HTML documents to PDF with headless Chrome.
// The browser is launched on first use and reused until Close.
// Rod downloads Chromium on first run if no browser is found.
type PDFExporter struct {
	mu       sync.Mutex // one print at a time per browser
	renderer pdfRenderer
}

// PDFOption configures a PDFExporter.
type PDFOption func(*rodRenderer)

// WithPDFTimeout sets the page load timeout used when the context has no deadline.
func WithPDFTimeout(d time.Duration) PDFOption {
	return func(r *rodRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithPDFLogger sets the logger for browser lifecycle events.
func WithPDFLogger(l *slog.Logger) PDFOption {
	return func(r *rodRenderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewPDFExporter creates an exporter. No browser is started until ExportPDF.
func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	r := &rodRenderer{
		timeout: DefaultPDFTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return &PDFExporter{renderer: r}
}

// ExportPDF prints a full HTML document. The document is written to a
// temporary file so that file:// resources next to it load.
func (e *PDFExporter) ExportPDF(ctx context.Context, htmlDoc string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlDoc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases the browser.
func (e *PDFExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.Close()
}

// rodRenderer implements pdfRenderer using go-rod.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	logger   *slog.Logger
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser

	r.logger.Debug("browser started", slog.Int("pid", l.PID()))
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdf, nil
}

// Close disconnects from the browser and kills its process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
	r.logger.Debug("browser stopped")
}

var _ pdfRenderer = (*rodRenderer)(nil)
