package rec2pdf

import (
	"fmt"
	"math"
	"strconv"
)

// Record is one data entry: a mapping from field name to value. Values hold
// whatever the source produced: text, numbers, booleans, nested lists or
// mappings, or nil. Field sets may vary between records in the same source.
type Record map[string]any

// DataSet is the loaded content of one data source: its records plus every
// distinct field name in first-seen order. The field order drives the
// interactive fallbacks, which list fields in the order the source
// introduced them.
type DataSet struct {
	Records []Record
	Fields  []string
}

// ValueToString renders a record value the way it is compared and listed:
// text passes through, integral floats drop the decimal point, booleans are
// true/false, nil is empty text.
func ValueToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// JSON numbers arrive as float64; 1e15 keeps int64 conversion exact.
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
