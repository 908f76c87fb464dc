// Package html2pdf merges linked local HTML documents and converts them
// to PDF using headless Chrome.
//
// # Quick Start
//
// Create a service, merge a linked document set, and close when done:
//
//	svc := html2pdf.New()
//	defer svc.Close()
//
//	pdf, err := svc.MergeLinked(ctx, "docs/index.html", "docs.pdf", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// MergeLinked follows every local HTML hyperlink reachable from the
// root file (depth-bounded, cycle-safe), merges the pages into one
// document with internal links rewritten to in-document anchors, and
// renders the result. Use ConvertFile for a single page without
// traversal.
//
// # Pipeline
//
//  1. Link graph collection: depth-first pre-order traversal over local
//     <a href> links, each file included exactly once in discovery order
//  2. Stylesheet aggregation: inline <style> bodies and linked
//     stylesheets, concatenated in discovery order
//  3. Merging: one anchored section per file, page-break separators,
//     internal links rewritten to #section-<i> anchors
//  4. PDF rendering via headless Chrome (go-rod)
//
// Traversal and merge problems below the root (unreadable files,
// unresolvable links, depth truncation) are non-fatal: they surface as
// human-readable warnings on the diagnostics writer and the affected
// unit of work is skipped.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := html2pdf.New(
//	    html2pdf.WithTimeout(2 * time.Minute),
//	    html2pdf.WithMaxDepth(3),
//	    html2pdf.WithDiagnostics(io.Discard),
//	)
//
// Render options are passed per conversion; nil means A4, printed
// backgrounds and 20px margins:
//
//	pdf, err := svc.MergeLinked(ctx, root, out, &html2pdf.RenderOptions{
//	    PageFormat:      "letter",
//	    PrintBackground: true,
//	    Margins:         html2pdf.Margins{Top: "40px"},
//	})
//
// # Parallel Processing
//
// Independent root files can be converted in parallel with a
// ServicePool; each worker owns its own browser instance:
//
//	pool := html2pdf.NewServicePool(4)
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library
// automatically downloads a managed Chromium instance on first run.
// Use ROD_BROWSER_BIN to point at a pre-installed browser in containers
// and CI environments.
package html2pdf
