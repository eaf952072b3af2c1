package rec2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ovoronin/go-rec2pdf/internal/fileutil"
)

// Engine produces the final binary document from rendered markup and an
// auxiliary stylesheet.
type Engine interface {
	Render(ctx context.Context, htmlContent, css string) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts rendering from an HTML file to enable testing
// without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
}

// Compile-time interface checks
var (
	_ Engine      = (*RodEngine)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)

// DefaultRenderTimeout bounds page load when the context carries no
// deadline.
const DefaultRenderTimeout = 30 * time.Second

// paperSizes maps page size names to width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	page    PageSettings
	timeout time.Duration
}

func newRodRenderer(page PageSettings, timeout time.Duration) *rodRenderer {
	return &rodRenderer{page: page, timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
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
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it
// to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
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
	defer page.Close()

	// Wait for page load with timeout from context or default
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

	reader, err := page.PDF(r.buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions maps the page settings onto Chrome's print parameters.
// Landscape swaps the paper dimensions.
func (r *rodRenderer) buildPDFOptions() *proto.PagePrintToPDF {
	size, ok := paperSizes[strings.ToLower(r.page.Size)]
	if !ok {
		size = paperSizes[PageSizeLetter]
	}
	width, height := size[0], size[1]
	if strings.ToLower(r.page.Orientation) == OrientationLandscape {
		width, height = height, width
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(r.page.Margin),
		MarginBottom:    floatPtr(r.page.Margin),
		MarginLeft:      floatPtr(r.page.Margin),
		MarginRight:     floatPtr(r.page.Margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// RodEngine renders documents with headless Chrome via go-rod.
type RodEngine struct {
	renderer *rodRenderer
	injector cssInjector
}

// NewRodEngine creates an engine with the given page geometry. A zero or
// negative timeout falls back to DefaultRenderTimeout.
func NewRodEngine(page PageSettings, timeout time.Duration) *RodEngine {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &RodEngine{
		renderer: newRodRenderer(page, timeout),
		injector: &cssInjection{},
	}
}

// Render injects the stylesheet into the markup, writes the result to a
// temporary file and prints it through the browser.
func (e *RodEngine) Render(ctx context.Context, htmlContent, css string) ([]byte, error) {
	injected := e.injector.InjectCSS(ctx, htmlContent, css)

	tmpPath, cleanup, err := fileutil.WriteTempFile(injected, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath)
}

// Close releases browser resources.
func (e *RodEngine) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}
