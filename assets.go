package html2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// StyleFragment is one raw stylesheet text block: the body of an inline
// <style> element or the full content of a linked stylesheet file.
type StyleFragment struct {
	Source DocumentRef // file the fragment was found in
	CSS    string
}

// aggregateStyles extracts stylesheet content from every collected file
// in FileList order: first the inline <style> bodies in document order,
// then each <link rel="stylesheet"> target resolved against the file's
// directory. No deduplication or minification happens; later fragments
// override earlier ones exactly as the CSS cascade dictates, which
// preserves author precedence.
func aggregateStyles(files FileList) ([]StyleFragment, []Diagnostic) {
	var fragments []StyleFragment
	var diags []Diagnostic

	for _, ref := range files {
		doc, diag := readDocument(ref)
		if diag != nil {
			diags = append(diags, *diag)
			continue
		}

		for _, css := range inlineStyles(doc) {
			fragments = append(fragments, StyleFragment{Source: ref, CSS: css})
		}

		for _, href := range stylesheetLinks(doc) {
			cssPath := href
			if !filepath.IsAbs(cssPath) {
				cssPath = filepath.Join(filepath.Dir(string(ref)), cssPath)
			}
			content, err := os.ReadFile(cssPath)
			if err != nil {
				diags = append(diags, Diagnostic{
					File:   ref,
					Reason: DiagMissingStylesheet,
					Detail: fmt.Sprintf("%s: %v", href, err),
				})
				continue
			}
			fragments = append(fragments, StyleFragment{Source: ref, CSS: string(content)})
		}
	}

	return fragments, diags
}

// inlineStyles returns the text content of every <style> element in
// document order.
func inlineStyles(doc *html.Node) []string {
	var styles []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			var sb strings.Builder
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					sb.WriteString(child.Data)
				}
			}
			styles = append(styles, sb.String())
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return styles
}

// stylesheetLinks returns the href of every stylesheet <link> element
// in document order.
func stylesheetLinks(doc *html.Node) []string {
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" && isStylesheetRel(attrValue(n, "rel")) {
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

// isStylesheetRel matches rel="stylesheet", tolerating extra tokens
// such as rel="stylesheet alternate".
func isStylesheetRel(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" {
			return true
		}
	}
	return false
}
