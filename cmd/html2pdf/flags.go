package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	format       string
	marginTop    string
	marginBottom string
	marginLeft   string
	marginRight  string
	noBackground bool
}

// traversalFlags holds link-graph traversal flags.
type traversalFlags struct {
	merge    bool
	maxDepth int
}

// sampleFlags holds sample generation flags.
type sampleFlags struct {
	samplePath string // write a standalone sample page here
	sampleSet  string // write a linked sample set into this directory
}

// convertFlags holds all flags for the tool.
type convertFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	page      pageFlags
	traversal traversalFlags
	sample    sampleFlags
	version   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "page-format", "p", "", "page format: a4, letter, legal")
	fs.StringVar(&f.marginTop, "margin-top", "", `top margin ("20px")`)
	fs.StringVar(&f.marginBottom, "margin-bottom", "", `bottom margin ("20px")`)
	fs.StringVar(&f.marginLeft, "margin-left", "", `left margin ("20px")`)
	fs.StringVar(&f.marginRight, "margin-right", "", `right margin ("20px")`)
	fs.BoolVar(&f.noBackground, "no-background", false, "do not print backgrounds")
}

// addTraversalFlags adds link traversal flags to a FlagSet.
func addTraversalFlags(fs *flag.FlagSet, f *traversalFlags) {
	fs.BoolVarP(&f.merge, "merge", "m", false, "follow local links from the input and merge into one PDF")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "max link traversal depth (0 = default 10)")
}

// addSampleFlags adds sample generation flags to a FlagSet.
func addSampleFlags(fs *flag.FlagSet, f *sampleFlags) {
	fs.StringVar(&f.samplePath, "create-sample", "", "write a sample HTML page to this path and exit")
	fs.StringVar(&f.sampleSet, "create-sample-set", "", "write a linked sample set into this directory and exit")
}

// parseFlags parses command-line arguments and returns the flags plus
// remaining positional arguments.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("html2pdf", flag.ContinueOnError)
	flags := &convertFlags{}

	addCommonFlags(fs, &flags.common)
	addPageFlags(fs, &flags.page)
	addTraversalFlags(fs, &flags.traversal)
	addSampleFlags(fs, &flags.sample)
	fs.StringVarP(&flags.output, "output", "o", "", "output PDF path (file mode) or directory (batch mode)")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers for directory conversion (0 = auto)")
	fs.StringVarP(&flags.timeout, "timeout", "t", "", `render timeout per document ("30s", "2m")`)
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return flags, fs.Args(), nil
}

const usageText = `html2pdf converts local HTML files to PDF.

Usage:
  html2pdf [flags] <input.html>       convert one file
  html2pdf -m [flags] <index.html>    follow links and merge into one PDF
  html2pdf [flags] <directory>        convert every HTML file in a directory

Flags:
`
