package importer

import (
	"strings"
)

// Record is one data row of an input file. Values is keyed by normalized
// header name; missing trailing cells are present as empty strings so every
// row has the same shape regardless of source format.
type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Value(key string) string {
	return strings.TrimSpace(r.Values[key])
}

// Table is the decoded file: the normalized header row in column order plus
// every data row.
type Table struct {
	Headers []string
	Records []Record
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
