package html2pdf

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
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable
// testing without a browser. Close must be safe to call exactly once
// per render session, on every path.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *RenderOptions) ([]byte, error)
	Close() error
}

// Compile-time interface check
var _ pdfRenderer = (*rodRenderer)(nil)

// cssPixelsPerInch converts CSS pixel margins to the inch units Chrome
// expects.
const cssPixelsPerInch = 96.0

// paperSize holds page dimensions in inches.
type paperSize struct {
	width  float64
	height float64
}

// paperSizes maps page formats to their dimensions.
var paperSizes = map[string]paperSize{
	PageFormatA4:     {width: 8.27, height: 11.69},
	PageFormatLetter: {width: 8.5, height: 11},
	PageFormatLegal:  {width: 8.5, height: 14},
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
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

// RenderFromFile opens a local HTML file in headless Chrome and renders
// it to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *RenderOptions) ([]byte, error) {
	// Check context before starting
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

	// Wait for page to load with timeout from context or default
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

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfOpts, err := buildPDFOptions(opts)
	if err != nil {
		return nil, err
	}

	reader, err := page.PDF(pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from render options,
// converting pixel margins to inches.
func buildPDFOptions(opts *RenderOptions) (*proto.PagePrintToPDF, error) {
	opts = opts.withDefaults()

	size, ok := paperSizes[strings.ToLower(opts.PageFormat)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageFormat, opts.PageFormat)
	}

	margins := make([]float64, 4)
	for i, value := range []string{opts.Margins.Top, opts.Margins.Bottom, opts.Margins.Left, opts.Margins.Right} {
		px, err := parseMarginPx(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMargin, err)
		}
		margins[i] = px / cssPixelsPerInch
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(size.width),
		PaperHeight:     floatPtr(size.height),
		MarginTop:       floatPtr(margins[0]),
		MarginBottom:    floatPtr(margins[1]),
		MarginLeft:      floatPtr(margins[2]),
		MarginRight:     floatPtr(margins[3]),
		PrintBackground: opts.PrintBackground,
	}, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
