package html2pdf

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// parseTestHTML parses markup for tests, failing on parse errors.
func parseTestHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

// renderNode serializes a parsed tree back to markup.
func renderNode(t *testing.T, n *html.Node) string {
	t.Helper()
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		t.Fatalf("rendering test HTML: %v", err)
	}
	return sb.String()
}
