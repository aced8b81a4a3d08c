package output

import (
	"fmt"
	"strconv"
	"strings"

	"silvo/patrimony"
)

// unitHeaders matches the spellings the importer resolves, so an exported
// file can be re-imported as-is.
var unitHeaders = []string{"ID", "ParentID", "Code", "Name", "Type", "LegalStatus", "ShapeType", "TotalArea", "Area", "IsActive"}

type Writer interface {
	Write(path string, units []patrimony.Unit) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

func unitRow(unit patrimony.Unit) []string {
	return []string{
		strconv.FormatInt(unit.ID, 10),
		strconv.FormatInt(unit.ParentID, 10),
		unit.Code,
		unit.Name,
		unit.Type,
		unit.LegalStatus,
		unit.ShapeType,
		strconv.FormatFloat(unit.TotalArea, 'f', -1, 64),
		strconv.FormatFloat(unit.Area, 'f', -1, 64),
		strconv.FormatBool(unit.IsActive),
	}
}
