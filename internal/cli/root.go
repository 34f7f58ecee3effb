package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes for CI gating
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "annolint",
	Short: "Issue annotation validation for frozen code corpora",
	Long:  "Annolint validates, exports, and syncs labeled issue annotations over frozen code snapshots, with deterministic exit codes.",
}

var flagVerbose bool

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

func newLogger() hclog.Logger {
	level := hclog.Warn
	if flagVerbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "annolint",
		Level:  level,
		Output: os.Stderr,
	})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print annolint version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "annolint version %s\n", version)
	},
}
