// internal/cli/index.go
package parley

import "github.com/spf13/cobra"

// indexCmd groups retrieval index commands.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Retrieval index utilities",
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
