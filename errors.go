package rec2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrDataRead      = errors.New("failed to read data file")
	ErrCSVParse      = errors.New("CSV parse failed")
	ErrJSONParse     = errors.New("JSON parse failed")
	ErrUnknownSource = errors.New("unsupported data file extension")

	ErrTemplateRead   = errors.New("failed to read template")
	ErrTemplateRender = errors.New("template rendering failed")
	ErrManifestParse  = errors.New("template manifest parse failed")

	// Browser rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWriteOutput    = errors.New("failed to write output file")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Interactive selection errors.
	ErrInputClosed = errors.New("input stream closed")
)
