package output

import (
	"fmt"
	"math"
	"sort"

	"silvo/patrimony"
)

// TypeSummary aggregates one level of exported units by classification type.
type TypeSummary struct {
	Type        string
	UnitCount   int
	ActiveCount int
	TotalArea   float64
	Area        float64
}

func BuildTypeSummaries(units []patrimony.Unit) []TypeSummary {
	if len(units) == 0 {
		return []TypeSummary{}
	}

	byType := make(map[string][]patrimony.Unit)
	for _, unit := range units {
		byType[unit.Type] = append(byType[unit.Type], unit)
	}

	types := make([]string, 0, len(byType))
	for unitType := range byType {
		types = append(types, unitType)
	}
	sort.Strings(types)

	summaries := make([]TypeSummary, 0, len(types))
	for _, unitType := range types {
		summaries = append(summaries, summarizeType(unitType, byType[unitType]))
	}

	return summaries
}

func summarizeType(unitType string, units []patrimony.Unit) TypeSummary {
	summary := TypeSummary{Type: unitType, UnitCount: len(units)}
	for _, unit := range units {
		if unit.IsActive {
			summary.ActiveCount++
		}
		summary.TotalArea += unit.TotalArea
		summary.Area += unit.Area
	}

	summary.TotalArea = roundArea(summary.TotalArea)
	summary.Area = roundArea(summary.Area)
	return summary
}

func roundArea(value float64) float64 {
	return math.Round(value*100) / 100
}

func WriteTypeSummaries(path, format string, summaries []TypeSummary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeTypeSummariesCSV(path, summaries)
	case "excel", "xlsx":
		return writeTypeSummariesExcel(path, summaries)
	default:
		return fmt.Errorf("unsupported output format for type summaries: %s", format)
	}
}
