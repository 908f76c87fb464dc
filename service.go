package html2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// File permission for written artifacts.
const outputFilePermissions = 0o644

// Service orchestrates the collect, aggregate, merge and render stages.
// Create with New, convert with MergeLinked or ConvertFile, and Close
// when done to release the browser.
type Service struct {
	cfg      serviceConfig
	renderer pdfRenderer
	diagOut  io.Writer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithMaxDepth).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:  defaultTimeout,
			maxDepth: DefaultMaxDepth,
		},
		diagOut: os.Stderr,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s
}

// WithDiagnostics redirects traversal and merge warnings.
// A nil writer silences them.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Service) {
		if w == nil {
			w = io.Discard
		}
		s.diagOut = w
	}
}

// MergeLinked discovers every local HTML file reachable from rootFile,
// merges them into one document with internal cross-references turned
// into in-document anchors, and renders the result to PDF. When
// outputPath is empty the artifact lands next to the root file with a
// .pdf extension. The PDF bytes are always returned.
func (s *Service) MergeLinked(ctx context.Context, rootFile, outputPath string, opts *RenderOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	files, diags, err := Collect(rootFile, s.cfg.maxDepth)
	if err != nil {
		return nil, err
	}
	s.reportDiagnostics(diags)
	if len(files) == 0 {
		return nil, ErrEmptyFileList
	}

	styles, diags := aggregateStyles(files)
	s.reportDiagnostics(diags)

	merged, diags := mergeDocuments(files, styles)
	s.reportDiagnostics(diags)

	if outputPath == "" {
		outputPath = DeriveOutputPath(rootFile)
	}

	return s.render(ctx, merged, outputPath, opts)
}

// ConvertFile renders a single HTML file to PDF without traversal.
func (s *Service) ConvertFile(ctx context.Context, htmlFile, outputPath string, opts *RenderOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if !isHTMLFile(htmlFile) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(htmlFile))
	}

	content, err := os.ReadFile(htmlFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}

	if outputPath == "" {
		outputPath = DeriveOutputPath(htmlFile)
	}

	return s.render(ctx, string(content), outputPath, opts)
}

// render persists the document to a uniquely named temp file, invokes
// the rendering backend, and writes the artifact. The temp file is
// removed on every exit path, including backend failure; backend errors
// are propagated to the caller after cleanup, never swallowed.
func (s *Service) render(ctx context.Context, document, outputPath string, opts *RenderOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfBytes, err := s.renderer.RenderFromFile(ctx, tmpPath, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering merged document: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, pdfBytes, outputFilePermissions); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	return pdfBytes, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// reportDiagnostics prints human-readable warnings. Diagnostics never
// abort a run.
func (s *Service) reportDiagnostics(diags []Diagnostic) {
	for _, d := range diags {
		line := d.String()
		if d.Reason == DiagDepthLimit {
			line += hints.ForDepthLimit()
		}
		fmt.Fprintln(s.diagOut, line)
	}
}

// DeriveOutputPath returns the default artifact path for an input HTML
// file: same directory, same base name, .pdf extension.
func DeriveOutputPath(htmlFile string) string {
	ext := filepath.Ext(htmlFile)
	return strings.TrimSuffix(htmlFile, ext) + ".pdf"
}
