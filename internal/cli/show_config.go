// internal/cli/show_config.go
package parley

import (
	"github.com/spf13/cobra"
)

// showConfigCmd implements 'show config', which prints the configuration
// that results from merging the config file, environment, and flags.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		runShowConfig()
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
