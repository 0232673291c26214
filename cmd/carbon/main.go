// Carbon is the terminal client for the carbon footprint tracker.
//
// It logs appliance usage, food and travel against a tracker server and
// charts the daily footprint. Running without arguments launches the
// full-screen interface; every action is also available as a subcommand
// for scripting.
//
// Usage:
//
//	carbon [command] [flags]
//
// See 'carbon --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/version"
)

func main() {
	// A .env file next to the binary's working directory is optional
	_ = godotenv.Load()

	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carbon",
	Short: "Carbon footprint tracker client",
	Long: `Log appliance usage, food and travel against a carbon footprint
tracker server and view the daily breakdown.

If no command is specified, the interactive interface launches
automatically.`,
	Version: version.Version,
	Example: `  # Launch the interactive interface
  carbon

  # Log in once, then log from scripts
  carbon login --username alice
  carbon log food Dairy Milk 0.5

  # Chart the last week
  carbon activity`,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get())
	},
}
