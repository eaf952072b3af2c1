package rec2pdf

import (
	"sort"
	"strings"
)

// priorityCanonicalNames are canonical field forms tried most specific
// first. invoice_id and invoiceid normalize to the same form, so one entry
// covers both.
var priorityCanonicalNames = []string{"invoiceid", "invoice", "invid", "id"}

var fieldNameSeparators = strings.NewReplacer(" ", "", "-", "", "_", "")

// NormalizeFieldName lowercases a field name and strips spaces, hyphens and
// underscores, so Invoice ID, invoice-id and INVOICE_ID compare equal.
func NormalizeFieldName(name string) string {
	return fieldNameSeparators.Replace(strings.ToLower(name))
}

// detectRule proposes a grouping field for a data set, or reports no match.
type detectRule func(ds *DataSet) (string, bool)

// detectRules run in order; the first rule that matches wins.
var detectRules = []detectRule{
	matchPriorityName,
	matchInvoiceCandidate,
	matchBareID,
}

// DetectInvoiceField infers which field identifies an invoice. Exact
// canonical names win over fields merely resembling one; resemblance is
// ranked by how many records carry the field. Returns false when nothing
// matches, which callers resolve interactively.
func DetectInvoiceField(ds *DataSet) (string, bool) {
	if ds == nil || len(ds.Records) == 0 {
		return "", false
	}
	for _, rule := range detectRules {
		if name, ok := rule(ds); ok {
			return name, true
		}
	}
	return "", false
}

// matchPriorityName scans canonical forms in priority order, preferring the
// most specific form across all fields before a less specific one.
func matchPriorityName(ds *DataSet) (string, bool) {
	for _, canon := range priorityCanonicalNames {
		for _, f := range ds.Fields {
			if NormalizeFieldName(f) == canon {
				return f, true
			}
		}
	}
	return "", false
}

func matchInvoiceCandidate(ds *DataSet) (string, bool) {
	cands := FieldCandidates(ds)
	if len(cands) == 0 {
		return "", false
	}
	return cands[0].Name, true
}

func matchBareID(ds *DataSet) (string, bool) {
	for _, f := range ds.Fields {
		if NormalizeFieldName(f) == "id" {
			return f, true
		}
	}
	return "", false
}

// FieldCandidates returns fields that look like an invoice identifier:
// normalized name contains "invoice" and either contains "id" or ends in
// "no" or "number". Ranked by occurrence count, then shortest original
// name; the stable sort keeps equally ranked fields in document order.
func FieldCandidates(ds *DataSet) []FieldCandidate {
	counts := fieldOccurrences(ds)

	var cands []FieldCandidate
	for _, f := range ds.Fields {
		norm := NormalizeFieldName(f)
		if !strings.Contains(norm, "invoice") {
			continue
		}
		if !strings.Contains(norm, "id") &&
			!strings.HasSuffix(norm, "no") &&
			!strings.HasSuffix(norm, "number") {
			continue
		}
		cands = append(cands, FieldCandidate{
			Name:       f,
			Normalized: norm,
			Count:      counts[f],
		})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Count != cands[j].Count {
			return cands[i].Count > cands[j].Count
		}
		return len(cands[i].Name) < len(cands[j].Name)
	})
	return cands
}

// fieldOccurrences counts how many records carry each field.
func fieldOccurrences(ds *DataSet) map[string]int {
	counts := make(map[string]int, len(ds.Fields))
	for _, rec := range ds.Records {
		for name := range rec {
			counts[name]++
		}
	}
	return counts
}
