package htmlindex

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-htmlindex/internal/fileutil"
	"github.com/alnah/go-htmlindex/internal/process"
)

// DefaultPDFTimeout bounds page loading when the context has no deadline.
const DefaultPDFTimeout = 30 * time.Second

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  float64 = 8.5
	paperHeightInches float64 = 11
	marginInches      float64 = 0.5
)

// PDFOptions controls the printed page. Zero values use US Letter with
// half-inch margins.
type PDFOptions struct {
	PaperWidth  float64 // inches
	PaperHeight float64 // inches
	Margin      float64 // inches, all sides
}

// fileRenderer prints a local HTML file to PDF. It exists so PDFRenderer
// can be tested without a browser.
type fileRenderer interface {
	RenderFromFile(ctx context.Context, path string, opts *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

var _ fileRenderer = (*rodRenderer)(nil)

// PDFRenderer prints assembled documents with headless Chrome (go-rod).
// Rod downloads a managed Chromium on first use unless ROD_BROWSER_BIN
// points to an installed browser. A PDFRenderer is safe for concurrent
// use; the browser is started lazily and shared.
type PDFRenderer struct {
	renderer fileRenderer
}

// NewPDFRenderer creates a PDFRenderer whose page loads time out after
// timeout (DefaultPDFTimeout if zero or negative).
func NewPDFRenderer(timeout time.Duration) *PDFRenderer {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &PDFRenderer{renderer: &rodRenderer{timeout: timeout}}
}

// ToPDF prints document to PDF bytes. The document is written to a
// temporary file first so relative and file:// resources resolve the way
// they would for a saved page.
func (p *PDFRenderer) ToPDF(ctx context.Context, document string, opts *PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, path, printOptions(opts))
}

// Close shuts the browser down.
func (p *PDFRenderer) Close() error {
	return p.renderer.Close()
}

// printOptions converts PDFOptions into the DevTools print request.
func printOptions(opts *PDFOptions) *proto.PagePrintToPDF {
	width, height, margin := paperWidthInches, paperHeightInches, marginInches
	if opts != nil {
		if opts.PaperWidth > 0 {
			width = opts.PaperWidth
		}
		if opts.PaperHeight > 0 {
			height = opts.PaperHeight
		}
		if opts.Margin > 0 {
			margin = opts.Margin
		}
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodRenderer implements fileRenderer with go-rod.
type rodRenderer struct {
	timeout time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// No sandbox in CI and containers
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return browser, nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, path string, opts *proto.PagePrintToPDF) ([]byte, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout, err := loadTimeout(ctx, r.timeout, time.Now())
	if err != nil {
		return nil, err
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.Context(ctx).PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// loadTimeout bounds page loading by the configured timeout and by the
// context deadline, whichever comes first.
func loadTimeout(ctx context.Context, configured time.Duration, now time.Time) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return configured, nil
	}
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	return min(configured, remaining), nil
}

// Close releases browser resources and kills any leftover processes.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}
