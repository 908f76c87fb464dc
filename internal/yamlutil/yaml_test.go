package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

type traversalConf struct {
	MaxDepth int    `yaml:"maxDepth"`
	Format   string `yaml:"format"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Run("valid yaml", func(t *testing.T) {
		var got traversalConf
		err := yamlutil.UnmarshalStrict([]byte("maxDepth: 3\nformat: a4\n"), &got)
		if err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if got.MaxDepth != 3 || got.Format != "a4" {
			t.Errorf("got %+v, want {3 a4}", got)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		var got traversalConf
		err := yamlutil.UnmarshalStrict([]byte("maxDepht: 3\n"), &got)
		if err == nil {
			t.Fatal("expected error for misspelled field")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		var got traversalConf
		err := yamlutil.UnmarshalStrict([]byte("format: [unclosed"), &got)
		if err == nil {
			t.Fatal("expected error for malformed yaml")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		var got traversalConf
		err := yamlutil.UnmarshalStrict(nil, &got)
		if !errors.Is(err, yamlutil.ErrNoData) {
			t.Errorf("error = %v, want ErrNoData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		err := yamlutil.UnmarshalStrict([]byte("format: a4"), nil)
		if !errors.Is(err, yamlutil.ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		var got traversalConf
		big := strings.Repeat("#", yamlutil.MaxInputSize+1)
		err := yamlutil.UnmarshalStrict([]byte(big), &got)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}
