package importer

import (
	"errors"
	"testing"

	"silvo/patrimony"
)

func TestDecode_CSVEndToEnd(t *testing.T) {
	data := []byte(`Código,Nombre,Tipo,Superficie Total,Estado Legal,Activo
P-001,Fundo Norte,FUNDO,"1.250,75",INSCRITO,si
P-002,Fundo Sur,HIJUELA,80,,no
,,,,,
P-003,,FUNDO,50,,
`)

	result, err := Decode(data, FormatCSV, patrimony.LevelPredio, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RowsRead != 4 {
		t.Fatalf("expected 4 rows read, got %d", result.RowsRead)
	}
	if result.RowsBlank != 1 {
		t.Fatalf("expected 1 blank row, got %d", result.RowsBlank)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 usable rows, got %d", len(result.Rows))
	}

	first := result.Rows[0]
	if first.Number != 2 || first.Code != "P-001" || first.TotalArea.Value != 1250.75 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.LegalStatus != "INSCRITO" {
		t.Fatalf("unexpected legal status: %q", first.LegalStatus)
	}

	second := result.Rows[1]
	if second.IsActive == nil || *second.IsActive {
		t.Fatalf("expected second row inactive")
	}
	if second.LegalStatus != "" {
		t.Fatalf("expected absent legal status, got %q", second.LegalStatus)
	}

	third := result.Rows[2]
	if third.Invalid != "código y nombre son obligatorios" {
		t.Fatalf("unexpected rejection on third row: %q", third.Invalid)
	}
	if third.Number != 5 {
		t.Fatalf("unexpected third row number: %d", third.Number)
	}
}

func TestDecode_MissingRequiredColumnIsBatchFatal(t *testing.T) {
	data := []byte("Código,Tipo,Superficie Total\nP-001,FUNDO,100\n")

	_, err := Decode(data, FormatCSV, patrimony.LevelPredio, false)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Field != "nombre" {
		t.Fatalf("unexpected missing field: %q", missing.Field)
	}
}

func TestDecode_OnlyBlankRowsIsBatchFatal(t *testing.T) {
	data := []byte("code,name,type,totalarea\n,,,\n , ,,\n")

	_, err := Decode(data, FormatCSV, patrimony.LevelPredio, false)
	if !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("expected ErrNoDataRows, got %v", err)
	}
}

func TestDecode_UnsupportedFormatFails(t *testing.T) {
	_, err := Decode([]byte("code,name\n"), "parquet", patrimony.LevelPredio, false)
	if err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestDecode_ExcelEndToEnd(t *testing.T) {
	data := buildWorkbook(t, [][]string{
		{"Código", "Nombre", "Tipo", "Forma", "Área m2", "Activo"},
		{"PC-01", "Parcela 1", "PERMANENTE", "CIRCULAR", "500", ""},
		{"PC-02", "Parcela 2", "TESTIGO", "CUADRADA", "250,5", "no"},
	})

	result, err := Decode(data, FormatExcel, patrimony.LevelParcela, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].ShapeType != "CIRCULAR" || result.Rows[0].Area.Value != 500 {
		t.Fatalf("unexpected first row: %+v", result.Rows[0])
	}
	if result.Rows[1].Area.Value != 250.5 {
		t.Fatalf("unexpected second row area: %v", result.Rows[1].Area.Value)
	}
}

func TestInferFormat(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
		explicit    string
		expected    string
	}{
		{"predios.csv", "", "", FormatCSV},
		{"predios.txt", "", "", FormatCSV},
		{"predios.XLSX", "", "", FormatExcel},
		{"upload.bin", "text/csv; charset=utf-8", "", FormatCSV},
		{"upload.bin", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "", FormatExcel},
		{"predios.csv", "", "excel", "excel"},
	}

	for _, tc := range cases {
		got, err := InferFormat(tc.filename, tc.contentType, tc.explicit)
		if err != nil {
			t.Fatalf("InferFormat(%q, %q, %q): unexpected error: %v", tc.filename, tc.contentType, tc.explicit, err)
		}
		if got != tc.expected {
			t.Fatalf("InferFormat(%q, %q, %q): expected %q, got %q", tc.filename, tc.contentType, tc.explicit, tc.expected, got)
		}
	}

	if _, err := InferFormat("upload.bin", "application/octet-stream", ""); err == nil {
		t.Fatalf("expected error for undetectable format")
	}
}
