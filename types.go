package html2pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Page format constants.
const (
	PageFormatA4     = "a4"
	PageFormatLetter = "letter"
	PageFormatLegal  = "legal"
)

// Default margin applied to every side when unset.
const DefaultMarginPx = "20px"

// Margins holds per-side page margins as CSS pixel lengths ("20px").
// Values are opaque pass-through to the rendering backend apart from
// the unit conversion the backend requires.
type Margins struct {
	Top    string
	Bottom string
	Left   string
	Right  string
}

// RenderOptions configures the rendering backend. A nil *RenderOptions
// means defaults everywhere it is accepted.
type RenderOptions struct {
	PageFormat      string  // "a4", "letter", "legal" (case-insensitive)
	PrintBackground bool
	Margins         Margins
}

// DefaultRenderOptions returns render options matching the fixed
// defaults: A4, backgrounds printed, 20px margins on every side.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		PageFormat:      PageFormatA4,
		PrintBackground: true,
		Margins: Margins{
			Top:    DefaultMarginPx,
			Bottom: DefaultMarginPx,
			Left:   DefaultMarginPx,
			Right:  DefaultMarginPx,
		},
	}
}

// withDefaults returns a copy with empty fields filled in from the
// defaults. A nil receiver yields the full default set.
func (o *RenderOptions) withDefaults() *RenderOptions {
	if o == nil {
		return DefaultRenderOptions()
	}
	out := *o
	if out.PageFormat == "" {
		out.PageFormat = PageFormatA4
	}
	if out.Margins.Top == "" {
		out.Margins.Top = DefaultMarginPx
	}
	if out.Margins.Bottom == "" {
		out.Margins.Bottom = DefaultMarginPx
	}
	if out.Margins.Left == "" {
		out.Margins.Left = DefaultMarginPx
	}
	if out.Margins.Right == "" {
		out.Margins.Right = DefaultMarginPx
	}
	return &out
}

// Validate checks that render options are valid.
// Returns nil if o is nil (nil means use defaults).
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}

	if o.PageFormat != "" && !isValidPageFormat(o.PageFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidPageFormat, o.PageFormat)
	}

	for _, m := range []struct {
		side  string
		value string
	}{
		{"top", o.Margins.Top},
		{"bottom", o.Margins.Bottom},
		{"left", o.Margins.Left},
		{"right", o.Margins.Right},
	} {
		if m.value == "" {
			continue
		}
		if _, err := parseMarginPx(m.value); err != nil {
			return fmt.Errorf("%w: %s: %q", ErrInvalidMargin, m.side, m.value)
		}
	}

	return nil
}

// isValidPageFormat checks if format is a known page format
// (case-insensitive).
func isValidPageFormat(format string) bool {
	switch strings.ToLower(format) {
	case PageFormatA4, PageFormatLetter, PageFormatLegal:
		return true
	}
	return false
}

// parseMarginPx parses a CSS pixel length ("20px", "12.5px", bare
// "20") into a pixel count. Negative margins are rejected.
func parseMarginPx(value string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(value))
	s = strings.TrimSuffix(s, "px")
	px, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing margin %q: %w", value, err)
	}
	if px < 0 {
		return 0, fmt.Errorf("margin %q is negative", value)
	}
	return px, nil
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout  time.Duration
	maxDepth int
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithMaxDepth bounds link-graph traversal.
// Panics if n <= 0 (programmer error).
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("html2pdf: WithMaxDepth must be positive")
	}
	return func(s *Service) {
		s.cfg.maxDepth = n
	}
}
