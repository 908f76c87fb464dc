package html2pdf

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleHTML is a standalone styled page for trying out single-file
// conversion.
const sampleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sample HTML for PDF Conversion</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background-color: #f5f5f5; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
        .content { margin: 20px 0; padding: 20px; background-color: white; border-radius: 5px; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Sample HTML Document</h1>
        <p>This is a sample HTML document for PDF conversion</p>
    </div>
    <div class="content">
        <h2>About This Document</h2>
        <p>This document demonstrates converting HTML to PDF, including styled text,
        tables with borders, formatted headings and background colors.</p>
        <h2>Sample Table</h2>
        <table>
            <tr><th>Product</th><th>Price</th><th>Category</th></tr>
            <tr><td>Widget A</td><td>$19.99</td><td>Electronics</td></tr>
            <tr><td>Widget B</td><td>$29.99</td><td>Home</td></tr>
            <tr><td>Widget C</td><td>$39.99</td><td>Office</td></tr>
        </table>
    </div>
</body>
</html>
`

// sampleIndexHTML links to the chapter pages; following its links
// exercises the merge path end to end.
const sampleIndexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Sample Book</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <h1>Sample Book</h1>
    <p>A small linked document set. Convert with --merge to produce a
    single PDF with one section per page.</p>
    <ul>
        <li><a href="chapter1.html">Chapter One</a></li>
        <li><a href="chapter2.html">Chapter Two</a></li>
    </ul>
</body>
</html>
`

const sampleChapter1HTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Chapter One</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <h1>Chapter One</h1>
    <p>First chapter content. Continue to <a href="chapter2.html">Chapter Two</a>
    or go back to the <a href="index.html">index</a>.</p>
</body>
</html>
`

const sampleChapter2HTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Chapter Two</title>
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <h1>Chapter Two</h1>
    <p>Second chapter content. Back to the <a href="index.html">index</a>.</p>
</body>
</html>
`

const sampleStylesheet = `body { font-family: Georgia, serif; margin: 40px; }
h1 { color: #2c3e50; border-bottom: 2px solid #2c3e50; }
`

// CreateSampleFile writes a standalone sample HTML page to path.
func CreateSampleFile(path string) error {
	if err := os.WriteFile(path, []byte(sampleHTML), outputFilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// CreateSampleSet writes a small linked document set (index, two
// chapters, shared stylesheet) into dir and returns the index path.
func CreateSampleSet(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	files := map[string]string{
		"index.html":    sampleIndexHTML,
		"chapter1.html": sampleChapter1HTML,
		"chapter2.html": sampleChapter2HTML,
		"style.css":     sampleStylesheet,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), outputFilePermissions); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	return filepath.Join(dir, "index.html"), nil
}
