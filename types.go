package rec2pdf

import (
	"fmt"
	"strings"
)

// SourceType identifies how a data file is parsed.
type SourceType string

// Known data source types.
const (
	SourceCSV  SourceType = "csv"
	SourceJSON SourceType = "json"
)

// DataSource is one discovered data file.
type DataSource struct {
	Name string // base file name, e.g. "orders.json"
	Path string
	Type SourceType
}

// TemplateDescriptor is one discovered HTML template. RequiresGroupingKey
// tells the pipeline whether records must be partitioned by an invoice id
// before rendering.
type TemplateDescriptor struct {
	Name                string // base file name, e.g. "invoice_simple.html"
	Path                string
	RequiresGroupingKey bool
}

// FieldCandidate is a field name with its occurrence count across a record
// set and the normalized form used for heuristic matching.
type FieldCandidate struct {
	Name       string
	Normalized string
	Count      int
}

// Dirs is the directory layout a pipeline works against.
type Dirs struct {
	Data      string // input data files (.csv/.json)
	Templates string // HTML templates (.html/.htm)
	Output    string // generated PDFs
	Fonts     string // optional font files for embedding
}

// Hints are the optional non-interactive selection hints, one per decision
// point. Each resolves as a 1-based index, an exact name, or a partial
// case-insensitive name, in that order; a hint that resolves skips the
// prompt entirely.
type Hints struct {
	Data     string
	Template string
	Invoice  string
}

// Result reports what a pipeline run produced. OutputPath is empty when the
// run stopped before generating a document (no inputs, no records).
type Result struct {
	OutputPath string
	Opened     bool
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. A nil receiver and zero
// values are valid and mean use defaults.
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size != "" && !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if p.Orientation != "" && !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}
