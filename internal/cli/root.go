package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes. Zero conflicts is a successful run; finding conflicts is
// distinguished so CI can gate on it.
const (
	ExitSuccess      = 0
	ExitConflicts    = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "crosscheck <local-branch> <remote-branch>",
	Short: "Detect files changed on both a local and a remote branch",
	Long: "Crosscheck compares a local branch against a remote branch since their\n" +
		"merge base and reports the files changed on both sides — candidate merge\n" +
		"conflicts — without fetching the remote branch.",
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print crosscheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "crosscheck version %s\n", version)
	},
}
