package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrRootNotFound     = errors.New("root HTML file not found")
	ErrInvalidExtension = errors.New("file must have .html or .htm extension")
	ErrEmptyFileList    = errors.New("no HTML files to merge")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrWriteOutput      = errors.New("failed to write output file")

	// Render options validation errors.
	ErrInvalidPageFormat = errors.New("invalid page format")
	ErrInvalidMargin     = errors.New("invalid margin")
)
