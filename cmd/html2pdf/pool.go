package main

import (
	"context"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Converter is the interface for the conversion service.
type Converter interface {
	MergeLinked(ctx context.Context, rootFile, outputPath string, opts *html2pdf.RenderOptions) ([]byte, error)
	ConvertFile(ctx context.Context, htmlFile, outputPath string, opts *html2pdf.RenderOptions) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Converter = (*html2pdf.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// servicePool adapts html2pdf.ServicePool to the Pool interface.
type servicePool struct {
	inner *html2pdf.ServicePool
}

// NewPool creates a Pool backed by html2pdf.ServicePool.
func NewPool(n int, opts ...html2pdf.Option) Pool {
	return &servicePool{inner: html2pdf.NewServicePool(n, opts...)}
}

func (p *servicePool) Acquire() Converter {
	return p.inner.Acquire()
}

func (p *servicePool) Release(c Converter) {
	if svc, ok := c.(*html2pdf.Service); ok {
		p.inner.Release(svc)
	}
}

func (p *servicePool) Size() int {
	return p.inner.Size()
}

// Close releases all pooled browsers.
func (p *servicePool) Close() error {
	return p.inner.Close()
}
