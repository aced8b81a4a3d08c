package importer

import (
	"bytes"
	"encoding/csv"
	"io"
)

type CSVReader struct{}

func (r *CSVReader) Read(data []byte) (*Table, error) {
	data = stripUTF8BOM(data)
	data = normalizeLineEndings(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, &FormatError{Format: "CSV", Err: err}
	}

	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Format: "CSV", Err: err}
		}

		values := make(map[string]string, len(normalizedHeaders))
		for i := range normalizedHeaders {
			if i < len(row) {
				values[normalizedHeaders[i]] = row[i]
			} else {
				values[normalizedHeaders[i]] = ""
			}
		}

		records = append(records, Record{RowNumber: rowNumber + 1, Values: values})
		rowNumber++
	}

	return &Table{Headers: normalizedHeaders, Records: records}, nil
}

func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// normalizeLineEndings rewrites classic-Mac files that terminate lines with a
// bare \r. Files containing any \n are left alone so quoted fields with
// embedded carriage returns survive untouched.
func normalizeLineEndings(data []byte) []byte {
	if bytes.IndexByte(data, '\n') >= 0 || bytes.IndexByte(data, '\r') < 0 {
		return data
	}
	return bytes.ReplaceAll(data, []byte{'\r'}, []byte{'\n'})
}
