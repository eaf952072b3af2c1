package rec2pdf

// FilterByField retains records whose value at field, converted to text,
// equals key. A missing field reads as empty text, so it matches only an
// explicitly empty key. Input order is preserved.
func FilterByField(records []Record, field, key string) []Record {
	var out []Record
	for _, rec := range records {
		if ValueToString(rec[field]) == key {
			out = append(out, rec)
		}
	}
	return out
}

// UniqueValues returns the distinct text forms of field across records in
// first-occurrence order, skipping records where the field is absent or
// null.
func UniqueValues(records []Record, field string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rec := range records {
		v, ok := rec[field]
		if !ok || v == nil {
			continue
		}
		s := ValueToString(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
