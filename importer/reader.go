package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
)

// Reader decodes a whole in-memory file into a Table. There is no streaming
// mode; admin uploads are small enough to buffer.
type Reader interface {
	Read(data []byte) (*Table, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat picks csv vs excel decoding from an explicit override, the
// filename extension, or the upload content type, in that order.
func InferFormat(filename, contentType, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return explicit, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch extension {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm", "xls":
		return FormatExcel, nil
	}

	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	switch mediaType {
	case "text/csv", "text/plain":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/vnd.ms-excel":
		return FormatExcel, nil
	}

	return "", fmt.Errorf("unsupported file type for %s", filename)
}
