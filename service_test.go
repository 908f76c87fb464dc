package html2pdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRenderer records render calls and returns canned results, so the
// pipeline runs without a browser.
type fakeRenderer struct {
	pdf        []byte
	err        error
	renderedAt string // temp file path seen by the last render
	rendered   string // document content read from that temp file
	closed     int
}

func (f *fakeRenderer) RenderFromFile(ctx context.Context, filePath string, opts *RenderOptions) ([]byte, error) {
	f.renderedAt = filePath
	if content, err := os.ReadFile(filePath); err == nil {
		f.rendered = string(content)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func (f *fakeRenderer) Close() error {
	f.closed++
	return nil
}

func newTestService(r pdfRenderer, opts ...Option) *Service {
	s := New(append(opts, WithDiagnostics(nil))...)
	s.renderer = r
	return s
}

func TestMergeLinkedEndToEnd(t *testing.T) {
	// A small linked set: index links a.html and
	// b.html#frag; a.html links back to index and on to c.html; b.html
	// is a leaf. Discovery order is index, a, c, b.
	dir := t.TempDir()
	root := writeFile(t, dir, "index.html", `<html><body>
		<a href="a.html">A</a>
		<a href="b.html#frag">B</a>
	</body></html>`)
	writeFile(t, dir, "a.html", `<html><body>
		<a href="index.html">back</a>
		<a href="c.html">C</a>
	</body></html>`)
	writeFile(t, dir, "b.html", `<html><body><p>leaf</p></body></html>`)
	writeFile(t, dir, "c.html", `<html><body><p>end</p></body></html>`)

	fake := &fakeRenderer{pdf: []byte("%PDF-fake")}
	svc := newTestService(fake)
	defer svc.Close()

	outputPath := filepath.Join(dir, "out.pdf")
	pdf, err := svc.MergeLinked(context.Background(), root, outputPath, nil)
	if err != nil {
		t.Fatalf("MergeLinked() error = %v", err)
	}
	if !bytes.Equal(pdf, []byte("%PDF-fake")) {
		t.Errorf("returned bytes = %q, want renderer output", pdf)
	}

	merged := fake.rendered

	t.Run("four sections in discovery order", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			if !strings.Contains(merged, anchorDiv(i)) {
				t.Errorf("merged document missing section-%d wrapper", i)
			}
		}
		aIdx := strings.Index(merged, anchorDiv(1))
		cIdx := strings.Index(merged, anchorDiv(2))
		bIdx := strings.Index(merged, anchorDiv(3))
		if !(aIdx < cIdx && cIdx < bIdx) {
			t.Errorf("section order wrong: a=%d c=%d b=%d", aIdx, cIdx, bIdx)
		}
	})

	t.Run("back link rewritten to section-0", func(t *testing.T) {
		if !strings.Contains(merged, `href="#section-0"`) {
			t.Error("back link to index not rewritten")
		}
	})

	t.Run("fragment link resolves to b section", func(t *testing.T) {
		if !strings.Contains(merged, `href="#section-3"`) {
			t.Error("b.html#frag not rewritten to #section-3")
		}
		if strings.Contains(merged, `href="b.html#frag"`) {
			t.Error("original fragment href survived")
		}
	})

	t.Run("artifact written to output path", func(t *testing.T) {
		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("reading artifact: %v", err)
		}
		if !bytes.Equal(content, []byte("%PDF-fake")) {
			t.Errorf("artifact = %q, want renderer output", content)
		}
	})

	t.Run("temp file removed after success", func(t *testing.T) {
		if _, err := os.Stat(fake.renderedAt); !os.IsNotExist(err) {
			t.Errorf("temp file %q still exists", fake.renderedAt)
		}
	})
}

func anchorDiv(i int) string {
	return `<div id="section-` + string(rune('0'+i)) + `"`
}

func TestMergeLinkedCleanupOnRenderFailure(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "index.html", `<html><body><p>solo</p></body></html>`)

	fake := &fakeRenderer{err: errors.New("backend exploded")}
	svc := newTestService(fake)
	defer svc.Close()

	_, err := svc.MergeLinked(context.Background(), root, filepath.Join(dir, "out.pdf"), nil)
	if err == nil {
		t.Fatal("expected error from failing renderer")
	}
	if !strings.Contains(err.Error(), "backend exploded") {
		t.Errorf("error %v does not wrap backend failure", err)
	}

	// Cleanup invariant: the temp file must be gone even on failure.
	if fake.renderedAt == "" {
		t.Fatal("renderer was never invoked")
	}
	if _, statErr := os.Stat(fake.renderedAt); !os.IsNotExist(statErr) {
		t.Errorf("temp file %q survived a failed render", fake.renderedAt)
	}

	// No partial artifact.
	if _, statErr := os.Stat(filepath.Join(dir, "out.pdf")); !os.IsNotExist(statErr) {
		t.Error("partial artifact written despite render failure")
	}
}

func TestMergeLinkedValidatesOptions(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "index.html", `<html><body></body></html>`)

	svc := newTestService(&fakeRenderer{})
	defer svc.Close()

	_, err := svc.MergeLinked(context.Background(), root, "", &RenderOptions{PageFormat: "tabloid"})
	if !errors.Is(err, ErrInvalidPageFormat) {
		t.Errorf("error = %v, want ErrInvalidPageFormat", err)
	}
}

func TestMergeLinkedMissingRoot(t *testing.T) {
	svc := newTestService(&fakeRenderer{})
	defer svc.Close()

	_, err := svc.MergeLinked(context.Background(), filepath.Join(t.TempDir(), "none.html"), "", nil)
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("error = %v, want ErrRootNotFound", err)
	}
}

func TestMergeLinkedDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "book.html", `<html><body><p>x</p></body></html>`)

	fake := &fakeRenderer{pdf: []byte("pdf")}
	svc := newTestService(fake)
	defer svc.Close()

	if _, err := svc.MergeLinked(context.Background(), root, "", nil); err != nil {
		t.Fatalf("MergeLinked() error = %v", err)
	}

	derived := filepath.Join(dir, "book.pdf")
	if _, err := os.Stat(derived); err != nil {
		t.Errorf("derived artifact %q not written: %v", derived, err)
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("renders file content without traversal", func(t *testing.T) {
		page := writeFile(t, dir, "solo.html",
			`<html><body><a href="other.html">kept verbatim</a></body></html>`)
		writeFile(t, dir, "other.html", `<html><body></body></html>`)

		fake := &fakeRenderer{pdf: []byte("pdf")}
		svc := newTestService(fake)
		defer svc.Close()

		if _, err := svc.ConvertFile(context.Background(), page, "", nil); err != nil {
			t.Fatalf("ConvertFile() error = %v", err)
		}

		// Single-file conversion passes the source through untouched.
		if !strings.Contains(fake.rendered, `href="other.html"`) {
			t.Error("single-file conversion modified the source document")
		}
		if strings.Contains(fake.rendered, "section-0") {
			t.Error("single-file conversion injected merge anchors")
		}
	})

	t.Run("rejects non-html input", func(t *testing.T) {
		svc := newTestService(&fakeRenderer{})
		defer svc.Close()

		_, err := svc.ConvertFile(context.Background(), filepath.Join(dir, "doc.txt"), "", nil)
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		svc := newTestService(&fakeRenderer{})
		defer svc.Close()

		_, err := svc.ConvertFile(context.Background(), filepath.Join(dir, "none.html"), "", nil)
		if !errors.Is(err, ErrRootNotFound) {
			t.Errorf("error = %v, want ErrRootNotFound", err)
		}
	})
}

func TestServiceClose(t *testing.T) {
	fake := &fakeRenderer{}
	svc := newTestService(fake)

	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if fake.closed != 1 {
		t.Errorf("renderer closed %d times, want 1", fake.closed)
	}
}

func TestServiceDiagnosticsWriter(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "index.html",
		`<html><body><a href="gone.html">missing</a></body></html>`)

	var diagBuf bytes.Buffer
	svc := New(WithDiagnostics(&diagBuf))
	svc.renderer = &fakeRenderer{pdf: []byte("pdf")}
	defer svc.Close()

	if _, err := svc.MergeLinked(context.Background(), root, filepath.Join(dir, "o.pdf"), nil); err != nil {
		t.Fatalf("MergeLinked() error = %v", err)
	}

	if !strings.Contains(diagBuf.String(), "warning:") {
		t.Errorf("diagnostics output %q missing warning line", diagBuf.String())
	}
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"docs/index.html", "docs/index.pdf"},
		{"page.htm", "page.pdf"},
		{"/abs/report.html", "/abs/report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := DeriveOutputPath(tt.in); got != tt.want {
				t.Errorf("DeriveOutputPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
