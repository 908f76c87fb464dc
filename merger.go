package html2pdf

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// mergedTitle is the fixed title of the combined document.
const mergedTitle = "Combined Document"

// layoutSafetyCSS is a fixed block of rules appended after the
// aggregated stylesheets. Merged pages often carry breadcrumb or nav
// containers built with floats; without clearing them, content from one
// section can overlap the next. Not derived from source content.
const layoutSafetyCSS = `
.breadcrumb, .breadcrumbs, .nav, .navbar, .navigation, .menu, .topnav {
  clear: both;
  overflow: hidden;
  page-break-inside: avoid;
}
`

// pageBreakSeparator forces the rendering backend to start each merged
// document on a new page boundary.
const pageBreakSeparator = `<div style="page-break-before: always; height: 20px;"></div>`

// buildAnchorMap assigns one in-document anchor per file by FileList
// position. The assignment is a bijection with positions and fully
// deterministic: merging the same FileList always yields the same
// anchors.
func buildAnchorMap(files FileList) map[DocumentRef]string {
	anchors := make(map[DocumentRef]string, len(files))
	for i, ref := range files {
		anchors[ref] = fmt.Sprintf("section-%d", i)
	}
	return anchors
}

// mergeDocuments builds the combined self-contained HTML document:
// aggregated styles in the head, one anchored wrapper per file in
// FileList order in the body, with internal hyperlinks rewritten to
// in-document anchors and a page-break separator before every section
// except the first.
func mergeDocuments(files FileList, styles []StyleFragment) (string, []Diagnostic) {
	anchors := buildAnchorMap(files)
	var diags []Diagnostic

	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8">`)
	sb.WriteString("<title>" + mergedTitle + "</title>")

	sb.WriteString("<style>\n")
	for _, fragment := range styles {
		sb.WriteString(fragment.CSS)
		sb.WriteString("\n")
	}
	sb.WriteString(layoutSafetyCSS)
	sb.WriteString("</style>")
	sb.WriteString("</head><body>")

	for i, ref := range files {
		doc, diag := readDocument(ref)
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}

		rewriteLinks(doc, anchors, resolverFor(ref))

		if i > 0 {
			sb.WriteString(pageBreakSeparator)
		}
		sb.WriteString(fmt.Sprintf(`<div id="%s" style="margin-top: 40px;">`, anchors[ref]))
		sb.WriteString(bodyContent(doc))
		sb.WriteString("</div>")
	}

	sb.WriteString("</body></html>")
	return sb.String(), diags
}

// rewriteLinks mutates the parsed tree in place: every hyperlink whose
// resolved target is one of the merged files gets its href replaced by
// that file's anchor reference. External links, fragment links and
// links pointing outside the merged set stay byte-for-byte unchanged;
// a per-link resolution failure leaves that link as-is rather than
// aborting the merge. The resolver is injected so the transform itself
// stays free of file-system knowledge.
func rewriteLinks(doc *html.Node, anchors map[DocumentRef]string, resolve linkResolver) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			rewriteAnchorElement(n, anchors, resolve)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
}

// rewriteAnchorElement rewrites a single <a> element's href when it
// targets a merged file. Fragments on the href are dropped: after the
// merge, the section anchor is the closest addressable position.
func rewriteAnchorElement(n *html.Node, anchors map[DocumentRef]string, resolve linkResolver) {
	href := attrValue(n, "href")
	if href == "" {
		return
	}

	target, reason := resolve(href)
	if reason != skipNone {
		return
	}
	anchor, ok := anchors[target]
	if !ok {
		return
	}

	for i := range n.Attr {
		if n.Attr[i].Key == "href" {
			n.Attr[i].Val = "#" + anchor
			return
		}
	}
}

// bodyContent serializes the children of the document's body element.
// Documents without a body fall back to the full parsed content, the
// same way the merge treats fragment files.
func bodyContent(doc *html.Node) string {
	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}

	var sb strings.Builder
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&sb, child); err != nil {
			// Render only fails on writer errors; strings.Builder never errors.
			continue
		}
	}
	return sb.String()
}

// findElement returns the first element with the given tag name in a
// depth-first walk, or nil.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
