// internal/cli/chat.go
package parley

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/parley/cli"
)

var startGUI = cli.StartGUI

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with your transcript library",
	Long:  `The 'chat' command starts an interactive question-and-answer session grounded in the indexed transcripts.`,
	Run: func(cmd *cobra.Command, args []string) {
		runChat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
