package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func writeTypeSummariesCSV(path string, summaries []TypeSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Type", "UnitCount", "ActiveCount", "TotalArea", "Area"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, summary := range summaries {
		row := []string{
			summary.Type,
			strconv.Itoa(summary.UnitCount),
			strconv.Itoa(summary.ActiveCount),
			fmt.Sprintf("%.2f", summary.TotalArea),
			fmt.Sprintf("%.2f", summary.Area),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
