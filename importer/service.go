// Package importer decodes uploaded CSV/Excel buffers into typed import rows
// for one hierarchy level. Both formats funnel into the same Table shape, so
// everything past the reader is format-agnostic.
package importer

import (
	"silvo/patrimony"
)

// FileImport is the decoded, normalized input of one import request.
type FileImport struct {
	Rows      []Row
	RowsRead  int
	RowsBlank int
}

// Decode runs the full pre-persistence pipeline over an in-memory file:
// format reader, header resolution, per-row normalization. Any error it
// returns is batch-fatal; row-level problems travel inside the Rows.
func Decode(data []byte, format string, level patrimony.Level, strictEnums bool) (*FileImport, error) {
	reader, err := ReaderForFormat(format)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(data)
	if err != nil {
		return nil, err
	}

	spec := SpecForLevel(level)
	fields, err := ResolveFields(table.Headers, spec)
	if err != nil {
		return nil, err
	}

	result := &FileImport{
		Rows:     make([]Row, 0, len(table.Records)),
		RowsRead: len(table.Records),
	}
	for _, record := range table.Records {
		row, ok := NormalizeRow(record, fields, spec, strictEnums)
		if !ok {
			result.RowsBlank++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	if len(result.Rows) == 0 {
		return nil, ErrNoDataRows
	}

	return result, nil
}
