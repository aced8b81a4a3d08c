package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage silvo configuration file values.",
	Long: `Create, edit, display, and delete the silvo configuration file.

The configuration stores application-wide values:
- database.path
- server.listen
- import.strict_enums
- tenant.id / tenant.privileged`,
	Example: `
  # Create default config in $HOME/.silvo.yaml
  silvo config create

  # Show active config and source file
  silvo config show

  # Open active config in editor (creates example if missing)
  silvo config edit

  # Delete active config file
  silvo config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
