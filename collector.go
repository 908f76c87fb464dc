package html2pdf

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// FileList is the ordered, deduplicated sequence of documents to merge.
// Insertion order is traversal discovery order and is authoritative: it
// drives section ordering, anchor numbering and stylesheet ordering.
type FileList []DocumentRef

// DiagReason classifies a non-fatal traversal or merge warning.
type DiagReason string

const (
	DiagUnreadableFile    DiagReason = "unreadable file"
	DiagUnparsableFile    DiagReason = "unparsable file"
	DiagDepthLimit        DiagReason = "depth limit reached"
	DiagSkippedLink       DiagReason = "skipped link"
	DiagMissingStylesheet DiagReason = "missing stylesheet"
)

// Diagnostic is a human-readable, non-fatal warning emitted while
// collecting or merging. The Reason field is machine-comparable so
// tests can assert on skip causes directly.
type Diagnostic struct {
	File   DocumentRef
	Reason DiagReason
	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("warning: %s: %s (%s)", d.File, d.Reason, d.Detail)
}

// DefaultMaxDepth bounds traversal when the caller does not specify one.
const DefaultMaxDepth = 10

// collector holds the run-scoped traversal context. Every Collect call
// owns a fresh collector; nothing is shared across runs.
type collector struct {
	maxDepth int
	visited  map[DocumentRef]bool
	files    FileList
	diags    []Diagnostic
}

// Collect walks the hyperlink graph rooted at rootFile depth-first in
// pre-order and returns every locally reachable HTML file exactly once,
// in discovery order. Traversal is read-only with respect to the file
// system. The only fatal error is an unreadable or unresolvable root;
// every per-file problem below the root becomes a Diagnostic instead.
func Collect(rootFile string, maxDepth int) (FileList, []Diagnostic, error) {
	// maxDepth 0 is meaningful: include the root, follow nothing.
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}

	root, err := resolveRoot(rootFile)
	if err != nil {
		return nil, nil, err
	}
	if !isHTMLFile(string(root)) {
		return nil, nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, string(root))
	}
	if _, err := os.ReadFile(string(root)); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}

	c := &collector{
		maxDepth: maxDepth,
		visited:  make(map[DocumentRef]bool),
	}
	c.visit(root, 0)
	return c.files, c.diags, nil
}

// visit processes one document: mark visited, append before recursing
// (pre-order, so parents precede the sections they link to), then
// follow its links in document order.
func (c *collector) visit(ref DocumentRef, depth int) {
	if c.visited[ref] {
		return
	}
	c.visited[ref] = true
	c.files = append(c.files, ref)

	doc, diag := readDocument(ref)
	if diag != nil {
		// Unreadable or unparsable: treated as "no links found"; the
		// file itself was already appended.
		c.diags = append(c.diags, *diag)
		return
	}

	links := extractHyperlinks(doc)

	targets := make([]DocumentRef, 0, len(links))
	for _, href := range links {
		target, reason := resolveLink(href, string(ref))
		if reason != skipNone {
			if reason == skipMissingTarget {
				c.diags = append(c.diags, Diagnostic{File: ref, Reason: DiagSkippedLink, Detail: fmt.Sprintf("%s: %s", href, reason)})
			}
			continue
		}
		if !isHTMLFile(string(target)) {
			continue
		}
		targets = append(targets, target)
	}

	if len(targets) == 0 {
		return
	}

	if depth >= c.maxDepth {
		c.diags = append(c.diags, Diagnostic{
			File:   ref,
			Reason: DiagDepthLimit,
			Detail: fmt.Sprintf("depth %d reached, %d link(s) not followed", depth, len(targets)),
		})
		return
	}

	for _, target := range targets {
		c.visit(target, depth+1)
	}
}

// readDocument reads and parses one HTML file, returning either the
// parsed tree or a diagnostic describing why it was skipped.
func readDocument(ref DocumentRef) (*html.Node, *Diagnostic) {
	content, err := os.ReadFile(string(ref))
	if err != nil {
		return nil, &Diagnostic{File: ref, Reason: DiagUnreadableFile, Detail: err.Error()}
	}
	doc, err := html.Parse(strings.NewReader(string(content)))
	if err != nil {
		return nil, &Diagnostic{File: ref, Reason: DiagUnparsableFile, Detail: err.Error()}
	}
	return doc, nil
}

// extractHyperlinks returns the href of every anchor element in
// document order. Order matters: traversal follows links in the order
// they appear in the markup.
func extractHyperlinks(doc *html.Node) []string {
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); href != "" {
				hrefs = append(hrefs, href)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hrefs
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}
