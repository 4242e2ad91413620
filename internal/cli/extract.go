// internal/cli/extract.go
package parley

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/pipeline"
)

var (
	extractInput string
	extractForce bool
)

// extractCmd converts downloaded recordings into recognition-ready audio.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract mono 16kHz audio from downloaded recordings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := pipeline.Extract(context.Background(), GetConfig(), extractInput, extractForce)
		if err != nil {
			return err
		}
		summary.Print(os.Stdout)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractInput, "input", "", "video file or directory (defaults to the video directory)")
	extractCmd.Flags().BoolVar(&extractForce, "force", false, "re-extract audio that already exists")
	rootCmd.AddCommand(extractCmd)
}
