package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"silvo/patrimony"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, units []patrimony.Unit) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(unitHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, unit := range units {
		if err := writer.Write(unitRow(unit)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
