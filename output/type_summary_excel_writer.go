package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

func writeTypeSummariesExcel(path string, summaries []TypeSummary) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"Type", "UnitCount", "ActiveCount", "TotalArea", "Area"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, summary := range summaries {
		row := i + 2
		values := []string{
			summary.Type,
			fmt.Sprintf("%d", summary.UnitCount),
			fmt.Sprintf("%d", summary.ActiveCount),
			fmt.Sprintf("%.2f", summary.TotalArea),
			fmt.Sprintf("%.2f", summary.Area),
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
