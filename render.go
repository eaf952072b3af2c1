package rec2pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// contextTimeLayout is the human-readable timestamp templates receive.
	contextTimeLayout = "2006-01-02 15:04:05"
	// fileNameTimeLayout keeps output names sortable and filesystem-safe.
	fileNameTimeLayout = "20060102_150405"
)

// RenderInput carries everything one template render needs.
type RenderInput struct {
	// Records is the partitioned subset handed to the template.
	Records []Record
	// AllRecords is the full unfiltered set, for templates that need totals.
	AllRecords   []Record
	InvoiceKey   string
	GeneratedAt  time.Time
	DataFile     string
	TemplateFile string
}

// Context assembles the values every template can reference. The record key
// holds the first record of the subset as a convenience singular value.
func (in RenderInput) Context() map[string]any {
	first := Record{}
	if len(in.Records) > 0 {
		first = in.Records[0]
	}
	return map[string]any{
		"records":       in.Records,
		"record":        first,
		"all_records":   in.AllRecords,
		"invoice_id":    in.InvoiceKey,
		"generated_at":  in.GeneratedAt.Format(contextTimeLayout),
		"data_file":     in.DataFile,
		"template_file": in.TemplateFile,
	}
}

// RenderHTML reads the template at path and renders it with the input's
// context. Record values are HTML-escaped by the template engine.
func RenderHTML(path string, in RenderInput) (string, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- templates live in the operator's templates directory
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRead, path, err)
	}
	tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, path, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, in.Context()); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateRender, path, err)
	}
	return buf.String(), nil
}

var invoiceKeySanitizer = strings.NewReplacer("/", "-", "\\", "-")

// OutputFileName names the generated document. Grouped templates embed the
// invoice key with path separators replaced by dashes; others combine the
// data and template base names. Both end in a second-resolution timestamp.
func OutputFileName(tpl TemplateDescriptor, invoiceKey, dataFile string, now time.Time) string {
	ts := now.Format(fileNameTimeLayout)
	if tpl.RequiresGroupingKey {
		safe := invoiceKeySanitizer.Replace(strings.TrimSpace(invoiceKey))
		return fmt.Sprintf("invoice_%s_%s.pdf", safe, ts)
	}
	return fmt.Sprintf("%s_%s_%s.pdf", fileStem(dataFile), fileStem(tpl.Name), ts)
}

// fileStem returns a file name without its extension.
func fileStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
