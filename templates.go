package rec2pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ovoronin/go-rec2pdf/internal/yamlutil"
)

// ManifestName is an optional file in the templates directory that can mark
// templates explicitly instead of relying on the naming convention.
const ManifestName = "templates.yaml"

// groupingExemptTemplate is the one template name that renders the whole
// record set and therefore needs no grouping key.
const groupingExemptTemplate = "product_catalog.html"

// RequiresGroupingKey reports whether a template name implies partitioning
// by invoice. This is a naming convention, not content inspection: every
// template requires a grouping key except the literal product catalog name.
// A manifest entry overrides the convention.
func RequiresGroupingKey(name string) bool {
	return !strings.EqualFold(name, groupingExemptTemplate)
}

type templateManifest struct {
	Templates map[string]templateManifestEntry `yaml:"templates"`
}

type templateManifestEntry struct {
	// Nil means unmarked; the naming convention applies.
	RequiresGroupingKey *bool `yaml:"requires_grouping_key"`
}

// DiscoverTemplates returns the .html/.htm templates found in dir, sorted
// by name, each with its grouping requirement resolved. A missing directory
// yields an empty list.
func DiscoverTemplates(dir string) ([]TemplateDescriptor, error) {
	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	var out []TemplateDescriptor
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".html", ".htm":
		default:
			continue
		}
		req := RequiresGroupingKey(e.Name())
		if manifest != nil {
			if entry, ok := manifest.Templates[e.Name()]; ok && entry.RequiresGroupingKey != nil {
				req = *entry.RequiresGroupingKey
			}
		}
		out = append(out, TemplateDescriptor{
			Name:                e.Name(),
			Path:                filepath.Join(dir, e.Name()),
			RequiresGroupingKey: req,
		})
	}
	return out, nil
}

func loadManifest(dir string) (*templateManifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path) // #nosec G304 -- manifest lives in the operator's templates directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, path, err)
	}
	var m templateManifest
	if err := yamlutil.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, path, err)
	}
	return &m, nil
}

// templateRule narrows the candidate templates for a data source. An empty
// result means the rule does not apply.
type templateRule func(source DataSource, ds *DataSet, byName map[string]TemplateDescriptor) []TemplateDescriptor

// templateRules run in order; the first rule producing candidates wins.
var templateRules = []templateRule{
	matchSourceName,
	matchRecordShape,
}

// sourceNameRules map a substring of the data file name to the single
// template it implies.
var sourceNameRules = []struct {
	substring string
	template  string
}{
	{"invoice", "invoice_simple.html"},
	{"order", "order_detailed.html"},
	{"product", "product_catalog.html"},
}

// shapeRules accumulate: every matching shape adds its template to the
// candidate set.
var shapeRules = []struct {
	template string
	matches  func(ds *DataSet) bool
}{
	{"invoice_simple.html", hasFields("item_name", "qty", "price")},
	{"product_catalog.html", hasFields("product_id", "name", "unit")},
	{"order_detailed.html", hasItemsList},
}

// SelectTemplates narrows available templates for a source: the file name
// rule wins outright, then record shape, and when neither applies the full
// discovered set is returned so the decision defers to the operator.
// Template names match case-insensitively.
func SelectTemplates(source DataSource, ds *DataSet, available []TemplateDescriptor) []TemplateDescriptor {
	byName := make(map[string]TemplateDescriptor, len(available))
	for _, t := range available {
		byName[strings.ToLower(t.Name)] = t
	}
	for _, rule := range templateRules {
		if cands := rule(source, ds, byName); len(cands) > 0 {
			return cands
		}
	}
	return available
}

func matchSourceName(source DataSource, _ *DataSet, byName map[string]TemplateDescriptor) []TemplateDescriptor {
	name := strings.ToLower(source.Name)
	for _, r := range sourceNameRules {
		if !strings.Contains(name, r.substring) {
			continue
		}
		if t, ok := byName[r.template]; ok {
			return []TemplateDescriptor{t}
		}
	}
	return nil
}

func matchRecordShape(_ DataSource, ds *DataSet, byName map[string]TemplateDescriptor) []TemplateDescriptor {
	var out []TemplateDescriptor
	for _, r := range shapeRules {
		if !r.matches(ds) {
			continue
		}
		if t, ok := byName[r.template]; ok {
			out = append(out, t)
		}
	}
	return out
}

// hasFields matches when the union of field names covers every given name.
func hasFields(names ...string) func(ds *DataSet) bool {
	return func(ds *DataSet) bool {
		if ds == nil {
			return false
		}
		present := make(map[string]bool, len(ds.Fields))
		for _, f := range ds.Fields {
			present[f] = true
		}
		for _, n := range names {
			if !present[n] {
				return false
			}
		}
		return true
	}
}

// hasItemsList matches when any record carries an items field holding a
// sequence.
func hasItemsList(ds *DataSet) bool {
	if ds == nil {
		return false
	}
	for _, rec := range ds.Records {
		if _, ok := rec["items"].([]any); ok {
			return true
		}
	}
	return false
}
