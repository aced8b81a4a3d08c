package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"silvo/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "silvo",
	Short: "Maintain forestry patrimony catalogs and bulk-import hierarchy levels from CSV/Excel.",
	Long: `silvo maintains a four-level forestry land-patrimony hierarchy
(predio → sector → rodal → parcela) in a local SQLite database.

Rows for any one level can be bulk-imported from CSV or Excel files: each row
is matched against existing records by code within its parent (or tenant, for
predios) and either updated or created. A bad row is reported and skipped; it
never aborts the rest of the file.`,
	Example: `
  # Create configuration file
  silvo config create

  # Import a rodal spreadsheet under sector 12
  silvo import -i rodales.xlsx --level rodal --parent 12

  # Import predios for one tenant from CSV
  silvo import -i predios.csv --level predio --tenant forestal-sur

  # Start the local web console
  silvo serve
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.silvo.yaml, then ./.silvo.yaml)")

	rootCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "import", "serve":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".silvo")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: silvo config create")
	}
}
