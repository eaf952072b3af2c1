package rec2pdf

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// utf8BOM is stripped before parsing; spreadsheet exports regularly carry it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// groupingField is injected into mapping-of-mappings JSON entries that do
// not already carry it.
const groupingField = "invoice_id"

// ListDataSources returns the data files found in dir (.csv/.json,
// case-insensitive extension), sorted by name. A missing directory yields an
// empty list so a fresh workspace is not an error.
func ListDataSources(dir string) ([]DataSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing data files: %w", err)
	}

	var out []DataSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		var typ SourceType
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv":
			typ = SourceCSV
		case ".json":
			typ = SourceJSON
		default:
			continue
		}
		out = append(out, DataSource{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Type: typ,
		})
	}
	return out, nil
}

// LoadDataFile loads a data file, dispatching on its extension.
func LoadDataFile(path string) (*DataSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSource, path)
}

// LoadCSV parses a delimited text file with a header row into records.
func LoadCSV(path string) (*DataSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- data paths come from the operator's own directories
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataRead, path, err)
	}
	ds, err := ParseDelimitedText(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCSVParse, path, err)
	}
	return ds, nil
}

// ParseDelimitedText is the canonical delimited-text parser: the first row
// is the header, every following row becomes one record keyed by header
// names. Rows shorter than the header bind only the fields they have;
// quoting is lenient.
func ParseDelimitedText(r io.Reader) (*DataSet, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &DataSet{}, nil
	}
	if err != nil {
		return nil, err
	}

	ds := &DataSet{}
	seen := make(map[string]bool, len(header))
	ds.Fields = appendFields(ds.Fields, seen, header)

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// LoadJSON parses arbitrary JSON into records. Normalization rules, in
// order: a mapping whose every value is a mapping becomes one record per
// entry with the outer key injected as invoice_id when absent; any other
// mapping is a single record; sequence elements become records, wrapping
// non-mappings as {"value": v}; any other scalar becomes {"value": v}.
// Entry and field order follow the document.
func LoadJSON(path string) (*DataSet, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- data paths come from the operator's own directories
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataRead, path, err)
	}
	ds, err := parseJSONRecords(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrJSONParse, path, err)
	}
	return ds, nil
}

func parseJSONRecords(data []byte) (*DataSet, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}
	switch trimmed[0] {
	case '{':
		return parseJSONObject(trimmed)
	case '[':
		return parseJSONArray(trimmed)
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return &DataSet{Records: []Record{{"value": v}}, Fields: []string{"value"}}, nil
}

// parseJSONObject handles top-level objects: a mapping of mappings becomes
// one record per entry, anything else a single record.
func parseJSONObject(data []byte) (*DataSet, error) {
	entries, err := decodeObjectEntries(data)
	if err != nil {
		return nil, err
	}

	allMappings := true
	for _, e := range entries {
		if !isJSONObject(e.raw) {
			allMappings = false
			break
		}
	}
	if !allMappings {
		rec, order, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		return &DataSet{Records: []Record{rec}, Fields: order}, nil
	}

	// An empty object satisfies the mapping-of-mappings shape vacuously and
	// yields zero records.
	ds := &DataSet{}
	seen := make(map[string]bool)
	for _, e := range entries {
		rec, order, err := decodeRecord(e.raw)
		if err != nil {
			return nil, err
		}
		if _, ok := rec[groupingField]; !ok {
			rec[groupingField] = e.key
			order = append(order, groupingField)
		}
		ds.Records = append(ds.Records, rec)
		ds.Fields = appendFields(ds.Fields, seen, order)
	}
	return ds, nil
}

func parseJSONArray(data []byte) (*DataSet, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	ds := &DataSet{}
	seen := make(map[string]bool)
	for _, raw := range items {
		if isJSONObject(raw) {
			rec, order, err := decodeRecord(raw)
			if err != nil {
				return nil, err
			}
			ds.Records = append(ds.Records, rec)
			ds.Fields = appendFields(ds.Fields, seen, order)
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		ds.Records = append(ds.Records, Record{"value": v})
		ds.Fields = appendFields(ds.Fields, seen, []string{"value"})
	}
	return ds, nil
}

// jsonEntry is one key/value pair of a JSON object in document order.
type jsonEntry struct {
	key string
	raw json.RawMessage
}

// decodeObjectEntries reads a JSON object's entries preserving document
// order, which encoding/json's map decoding discards. Duplicate keys keep
// their first position with the last value.
func decodeObjectEntries(data []byte) ([]jsonEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []jsonEntry
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			entries[i].raw = raw
			continue
		}
		index[key] = len(entries)
		entries = append(entries, jsonEntry{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after document")
	}
	return entries, nil
}

// decodeRecord decodes one JSON object into a record plus its field names in
// document order.
func decodeRecord(data []byte) (Record, []string, error) {
	entries, err := decodeObjectEntries(data)
	if err != nil {
		return nil, nil, err
	}
	rec := make(Record, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		var v any
		if err := json.Unmarshal(e.raw, &v); err != nil {
			return nil, nil, err
		}
		rec[e.key] = v
		order = append(order, e.key)
	}
	return rec, order, nil
}

// isJSONObject reports whether raw starts with an object after whitespace.
func isJSONObject(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}

// appendFields merges names into the first-seen order list.
func appendFields(fields []string, seen map[string]bool, names []string) []string {
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			fields = append(fields, n)
		}
	}
	return fields
}
