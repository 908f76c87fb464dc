package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

func TestWriteTempFile(t *testing.T) {
	t.Run("creates file with content", func(t *testing.T) {
		path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(content) != "<html></html>" {
			t.Errorf("content = %q, want %q", content, "<html></html>")
		}
	})

	t.Run("path has extension and prefix", func(t *testing.T) {
		path, cleanup, err := fileutil.WriteTempFile("x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q does not end with .html", path)
		}
		if !strings.Contains(filepath.Base(path), "html2pdf-") {
			t.Errorf("path %q does not contain prefix 'html2pdf-'", path)
		}
	})

	t.Run("cleanup removes file", func(t *testing.T) {
		path, cleanup, err := fileutil.WriteTempFile("x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}

		cleanup()

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file %q still exists after cleanup", path)
		}
	})

	t.Run("cleanup is idempotent", func(t *testing.T) {
		_, cleanup, err := fileutil.WriteTempFile("x", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}

		cleanup()
		cleanup() // Must not panic
	})

	t.Run("rejects empty extension", func(t *testing.T) {
		_, _, err := fileutil.WriteTempFile("x", "")
		if err == nil {
			t.Fatal("expected error for empty extension")
		}
	})

	t.Run("rejects path traversal in extension", func(t *testing.T) {
		_, _, err := fileutil.WriteTempFile("x", "html/../../etc")
		if err == nil {
			t.Fatal("expected error for extension with separator")
		}
	})
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		wantErr   bool
	}{
		{name: "valid html", extension: "html", wantErr: false},
		{name: "valid pdf", extension: "pdf", wantErr: false},
		{name: "empty", extension: "", wantErr: true},
		{name: "forward slash", extension: "a/b", wantErr: true},
		{name: "backslash", extension: `a\b`, wantErr: true},
		{name: "null byte", extension: "a\x00b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fileutil.ValidateExtension(tt.extension)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExtension(%q) error = %v, wantErr %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "f.html")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if !fileutil.FileExists(path) {
			t.Errorf("FileExists(%q) = false, want true", path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if fileutil.FileExists(filepath.Join(t.TempDir(), "missing")) {
			t.Error("FileExists() = true for missing file")
		}
	})

	t.Run("directory", func(t *testing.T) {
		if fileutil.FileExists(t.TempDir()) {
			t.Error("FileExists() = true for directory")
		}
	})
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"./custom.yaml", true},
		{"../shared/conf.yaml", true},
		{"/absolute/path.yaml", true},
		{`C:\windows\path.yaml`, true},
		{"my-config", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
