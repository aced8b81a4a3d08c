package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestExcelReader_ReadsFirstSheet(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Código", "Nombre", "Tipo"},
		{"S-01", "Sector Norte", "PRODUCCION"},
		{"S-02", "Sector Sur", "PROTECCION"},
	})

	table, err := (&ExcelReader{}).Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table.Records))
	}
	if table.Records[0].RowNumber != 2 {
		t.Fatalf("unexpected first row number: %d", table.Records[0].RowNumber)
	}
	if table.Records[1].Value("nombre") != "Sector Sur" {
		t.Fatalf("unexpected value: %q", table.Records[1].Value("nombre"))
	}
}

func TestExcelReader_PadsShortRows(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Código", "Nombre", "Tipo"},
		{"S-01", "Sector Norte"},
	})

	table, err := (&ExcelReader{}).Read(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := table.Records[0].Value("tipo"); got != "" {
		t.Fatalf("expected empty padded cell, got %q", got)
	}
}

func TestExcelReader_GarbageBytesIsFormatError(t *testing.T) {
	_, err := (&ExcelReader{}).Read([]byte("this is not a workbook"))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if formatErr.Format != "Excel" {
		t.Fatalf("unexpected format: %q", formatErr.Format)
	}
}
