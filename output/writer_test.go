package output

import (
	"os"
	"path/filepath"
	"testing"

	"silvo/importer"
	"silvo/patrimony"
)

func sampleUnits() []patrimony.Unit {
	return []patrimony.Unit{
		{
			ID: 1, TenantID: "forestal-sur", Level: patrimony.LevelPredio,
			Code: "P-001", Name: "Fundo Norte", Type: "FUNDO",
			LegalStatus: "INSCRITO", TotalArea: 120.5, IsActive: true,
		},
		{
			ID: 2, TenantID: "forestal-sur", Level: patrimony.LevelPredio,
			Code: "P-002", Name: `Fundo "El Roble", Sur`, Type: "HIJUELA",
			TotalArea: 80, IsActive: false,
		},
	}
}

func TestWriterForFormat(t *testing.T) {
	if _, err := WriterForFormat("csv"); err != nil {
		t.Fatalf("csv: unexpected error: %v", err)
	}
	if _, err := WriterForFormat(" Excel "); err != nil {
		t.Fatalf("excel: unexpected error: %v", err)
	}
	if _, err := WriterForFormat("parquet"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestCSVWriter_OutputIsReimportable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predios.csv")
	if err := (&CSVWriter{}).Write(path, sampleUnits()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	result, err := importer.Decode(data, importer.FormatCSV, patrimony.LevelPredio, false)
	if err != nil {
		t.Fatalf("re-import exported file: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}

	first := result.Rows[0]
	if first.Code != "P-001" || first.Name != "Fundo Norte" || first.LegalStatus != "INSCRITO" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if !first.TotalArea.Valid || first.TotalArea.Value != 120.5 {
		t.Fatalf("unexpected first row area: %+v", first.TotalArea)
	}

	second := result.Rows[1]
	if second.Name != `Fundo "El Roble", Sur` {
		t.Fatalf("quoted name did not survive the round trip: %q", second.Name)
	}
	if second.IsActive == nil || *second.IsActive {
		t.Fatalf("expected second row inactive")
	}
}

func TestExcelWriter_OutputIsReimportable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predios.xlsx")
	if err := (&ExcelWriter{}).Write(path, sampleUnits()); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	result, err := importer.Decode(data, importer.FormatExcel, patrimony.LevelPredio, false)
	if err != nil {
		t.Fatalf("re-import exported file: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[1].Code != "P-002" {
		t.Fatalf("unexpected second row: %+v", result.Rows[1])
	}
}
