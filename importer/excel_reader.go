package importer

import (
	"bytes"
	"errors"

	"github.com/xuri/excelize/v2"
)

var (
	errNoSheets   = errors.New("workbook has no sheets")
	errEmptySheet = errors.New("first sheet is empty")
)

type ExcelReader struct{}

func (r *ExcelReader) Read(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Format: "Excel", Err: err}
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, &FormatError{Format: "Excel", Err: errNoSheets}
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, &FormatError{Format: "Excel", Err: err}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Format: "Excel", Err: errEmptySheet}
	}

	headers := rows[0]
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(map[string]string, len(normalizedHeaders))
		for col := range normalizedHeaders {
			if col < len(row) {
				values[normalizedHeaders[col]] = row[col]
			} else {
				values[normalizedHeaders[col]] = ""
			}
		}

		records = append(records, Record{RowNumber: i + 2, Values: values})
	}

	return &Table{Headers: normalizedHeaders, Records: records}, nil
}
