package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"silvo/config"
	"silvo/output"
	"silvo/patrimony"
	"silvo/storage"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportLevel  string
	exportParent int64
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one hierarchy level from SQLite to CSV/Excel",
	Long: `Export units of one hierarchy level from SQLite.

Modes:
- raw: export each unit row (re-importable as-is)
- summary: export per-type aggregates (unit count, active count, area totals)

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export all rodales under sector 12 to CSV
  silvo export --level rodal --parent 12 --output ./rodales.csv

  # Export predios to Excel
  silvo export --level predio --output ./predios.xlsx

  # Export a per-type summary of parcelas
  silvo export --mode summary --level parcela --parent 90 --output ./parcelas-resumen.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		level, err := patrimony.ParseLevel(exportLevel)
		if err != nil {
			return err
		}
		if !level.IsRoot() && exportParent <= 0 {
			return fmt.Errorf("--parent is required to export %ss", level)
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		dbPath := exportDBPath
		if dbPath == "" {
			dbPath = cfg.Database.Path
		}
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		units, err := store.ListUnits(cmd.Context(), cfg.Scope(), level, exportParent)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "raw":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(exportOutput, units); err != nil {
				return err
			}
			fmt.Printf("Export completed. Rows: %d, Mode: raw, Format: %s, File: %s\n", len(units), format, exportOutput)
		case "summary":
			summaries := output.BuildTypeSummaries(units)
			if err := output.WriteTypeSummaries(exportOutput, format, summaries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Types: %d, Mode: summary, Format: %s, File: %s\n", len(summaries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: raw, summary)", exportMode)
		}
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw|summary")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVarP(&exportLevel, "level", "l", "", "Hierarchy level to export: predio|sector|rodal|parcela")
	exportCmd.Flags().Int64Var(&exportParent, "parent", 0, "Parent unit id (required for sector/rodal/parcela)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default from configuration)")

	_ = exportCmd.MarkFlagRequired("output")
	_ = exportCmd.MarkFlagRequired("level")
}
