package output

import (
	"testing"

	"silvo/patrimony"
)

func TestBuildTypeSummaries_GroupsAndSortsByType(t *testing.T) {
	units := []patrimony.Unit{
		{Code: "R-01", Type: "RODAL", TotalArea: 12.5, IsActive: true},
		{Code: "R-02", Type: "BOSQUETE", TotalArea: 3.25, IsActive: true},
		{Code: "R-03", Type: "RODAL", TotalArea: 7.5, IsActive: false},
	}

	summaries := BuildTypeSummaries(units)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	if summaries[0].Type != "BOSQUETE" || summaries[1].Type != "RODAL" {
		t.Fatalf("expected types sorted alphabetically, got %q, %q", summaries[0].Type, summaries[1].Type)
	}

	rodal := summaries[1]
	if rodal.UnitCount != 2 || rodal.ActiveCount != 1 {
		t.Fatalf("unexpected rodal counts: %+v", rodal)
	}
	if rodal.TotalArea != 20 {
		t.Fatalf("unexpected rodal total area: %v", rodal.TotalArea)
	}
}

func TestBuildTypeSummaries_EmptyInput(t *testing.T) {
	summaries := BuildTypeSummaries(nil)
	if len(summaries) != 0 {
		t.Fatalf("expected no summaries, got %d", len(summaries))
	}
}

func TestBuildTypeSummaries_RoundsAreas(t *testing.T) {
	units := []patrimony.Unit{
		{Code: "P-01", Type: "FUNDO", TotalArea: 0.333},
		{Code: "P-02", Type: "FUNDO", TotalArea: 0.333},
	}

	summaries := BuildTypeSummaries(units)
	if summaries[0].TotalArea != 0.67 {
		t.Fatalf("expected rounded total area 0.67, got %v", summaries[0].TotalArea)
	}
}

func TestWriteTypeSummaries_RejectsUnknownFormat(t *testing.T) {
	if err := WriteTypeSummaries("out.bin", "parquet", nil); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
