// Package cli wires the tabload commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabload",
	Short: "Load tabular files into a relational database",
	Long: `tabload reads tabular data — delimited text, DBF, Excel workbooks or
Access databases — and bulk-loads it into Oracle, PostgreSQL, MySQL,
SQL Server or SQLite.

Parsing is delegated to the format libraries and persistence to the
database drivers; tabload only dispatches on the file extension,
normalizes column names and batches the inserts.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - Unsupported file format
  13 - Source file missing, unreadable or malformed
  14 - Existing table incompatible with the data
  15 - Insert failed before anything committed
  16 - Some batches committed before a failure`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
