package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hacheck/hacheck/pkg/cli"
	"github.com/hacheck/hacheck/pkg/console"
	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/spf13/cobra"
)

var mainLog = logger.New("main")

var rootCmd = &cobra.Command{
	Use:   string(constants.CLIName),
	Short: "Home Assistant configuration reference checker",
	Long: `hacheck checks a Home Assistant configuration directory for references that
would break after a deploy: scripts that are called but not defined, helpers
that no longer exist under the id used, dashboard cards pointing at unknown
entities and helpers without a category.

Run it before syncing a configuration to a live instance. Errors make the
configuration unsafe to deploy; warnings are informational.

Common Tasks:
  ` + string(constants.CLIName) + ` validate              # Check the current directory
  ` + string(constants.CLIName) + ` validate --json       # Machine-readable JSON report
  ` + string(constants.CLIName) + ` watch /config         # Re-check on every change
  ` + string(constants.CLIName) + ` mcp-server            # Expose the check over MCP

For detailed help on any command, use:
  ` + string(constants.CLIName) + ` [command] --help`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, constants.Version)))
	},
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "validation",
		Title: "Validation Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "utilities",
		Title: "Utilities:",
	})

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show loaded documents and corpus statistics")

	validateCmd := cli.NewValidateCommand()
	validateCmd.GroupID = "validation"
	watchCmd := cli.NewWatchCommand()
	watchCmd.GroupID = "validation"
	schemaCmd := cli.NewSchemaCommand()
	schemaCmd.GroupID = "utilities"
	mcpServerCmd := cli.NewMCPServerCommand()
	mcpServerCmd.GroupID = "utilities"

	rootCmd.AddCommand(validateCmd, watchCmd, schemaCmd, mcpServerCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		mainLog.Printf("Command failed: %v", err)
		// Unreadable corpora were already reported document by document.
		if !errors.Is(err, corpus.ErrCorpusUnreadable) {
			cli.PrintValidationError(err)
		}
		os.Exit(1)
	}
}
