package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"silvo/config"
	"silvo/importer"
	"silvo/patrimony"
	"silvo/reconcile"
	"silvo/storage"
)

var (
	importInputs     []string
	importFormat     string
	importLevel      string
	importParent     int64
	importTenant     string
	importPrivileged bool
	importDBPath     string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import one hierarchy level from CSV/Excel files into the local database",
	Long: `Read source files, normalize each row for the selected hierarchy level, and
create or update records matched by code.

Non-root levels (--level sector|rodal|parcela) require --parent with the id of
the unit one level up. Predio imports are tenant-scoped instead and require a
tenant from --tenant or configuration.

When --format is omitted, format is inferred from each input file extension.
Rejected rows are printed with their 1-based file line; they never stop the
rest of the batch.`,
	Example: `
  # Import rodales under sector 12 from Excel
  silvo import -i rodales.xlsx --level rodal --parent 12

  # Import predios for an explicit tenant from CSV
  silvo import -i predios.csv --format csv --level predio --tenant forestal-sur

  # Privileged cross-tenant import
  silvo import -i parcelas.csv --level parcela --parent 90 --privileged

  # Import with custom config file
  silvo --configFile ./custom-silvo.yaml import -i rodales.xlsx --level rodal --parent 12
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		level, err := patrimony.ParseLevel(importLevel)
		if err != nil {
			return err
		}

		scope := cfg.Scope()
		if strings.TrimSpace(importTenant) != "" {
			scope.TenantID = strings.TrimSpace(importTenant)
		}
		if importPrivileged {
			scope.Privileged = true
		}

		dbPath := importDBPath
		if dbPath == "" {
			dbPath = cfg.Database.Path
		}
		store, err := storage.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		parent, err := resolveImportParent(cmd, store, scope, level)
		if err != nil {
			return err
		}

		total := &reconcile.Outcome{}
		for _, path := range importInputs {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read input file %s: %w", path, err)
			}

			format, err := importer.InferFormat(path, "", importFormat)
			if err != nil {
				return err
			}

			decoded, err := importer.Decode(data, format, level, cfg.Import.StrictEnums)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			outcome, err := reconcile.Run(cmd.Context(), store, scope, level, parent, decoded.Rows)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			total.Merge(outcome)
		}

		fmt.Printf("Import completed. Files: %d, Created: %d, Updated: %d, Skipped: %d\n",
			len(importInputs),
			total.Created,
			total.Updated,
			total.Skipped,
		)
		for _, rowErr := range total.Errors {
			if rowErr.Code != "" {
				fmt.Printf("  row %d (%s): %s\n", rowErr.Row, rowErr.Code, rowErr.Error)
				continue
			}
			fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Error)
		}

		return nil
	},
}

func resolveImportParent(
	cmd *cobra.Command,
	store *storage.SQLiteStore,
	scope patrimony.Scope,
	level patrimony.Level,
) (*patrimony.Unit, error) {
	if level.IsRoot() {
		if importParent != 0 {
			return nil, fmt.Errorf("--parent does not apply to %s imports", level)
		}
		return nil, nil
	}

	if importParent <= 0 {
		return nil, fmt.Errorf("--parent is required to import %ss", level)
	}

	parent, err := store.GetByID(cmd.Context(), scope, importParent)
	if err != nil {
		if errors.Is(err, patrimony.ErrUnitNotFound) {
			return nil, fmt.Errorf("parent unit %d not found within the current scope", importParent)
		}
		return nil, err
	}
	return parent, nil
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVarP(&importLevel, "level", "l", "", "Hierarchy level to import: predio|sector|rodal|parcela")
	importCmd.Flags().Int64Var(&importParent, "parent", 0, "Parent unit id (required for sector/rodal/parcela)")
	importCmd.Flags().StringVar(&importTenant, "tenant", "", "Tenant override for this run (default from configuration)")
	importCmd.Flags().BoolVar(&importPrivileged, "privileged", false, "Act across tenants (parent scoping still applies)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database (default from configuration)")

	_ = importCmd.MarkFlagRequired("input")
	_ = importCmd.MarkFlagRequired("level")
}
