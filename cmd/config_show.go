package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"silvo/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  silvo config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("database.path: %s\n", cfg.Database.Path)
			fmt.Printf("server.listen: %s\n", cfg.Server.Listen)
			fmt.Printf("import.strict_enums: %t\n", cfg.Import.StrictEnums)
			fmt.Printf("tenant.id: %s\n", cfg.Tenant.ID)
			fmt.Printf("tenant.privileged: %t\n", cfg.Tenant.Privileged)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
