// internal/cli/fetch.go
package parley

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/logging"
	"github.com/mwiater/parley/internal/media"
)

var fetchListOnly bool

// fetchCmd downloads recordings from a video or playlist URL.
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download recordings from a video or playlist URL",
	Long:  `The 'fetch' command downloads the recordings behind a video, playlist, or channel URL into the video directory, skipping files that are already present. With --list it only prints what the URL contains.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := strings.TrimSpace(args[0])
		if url == "" {
			return fmt.Errorf("url is required")
		}
		cfg := GetConfig()

		if fetchListOnly {
			entries, err := media.ListVideos(context.Background(), url)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Printf("%-12s %s\n", entry.ID, entry.Title)
			}
			logging.LogStage("fetch", "-", fmt.Sprintf("listed %d entries from %s", len(entries), url))
			return nil
		}

		paths, err := media.DownloadVideos(context.Background(), url, cfg.VideosPath())
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		logging.LogStage("fetch", "-", fmt.Sprintf("downloaded %d files from %s", len(paths), url))
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchListOnly, "list", false, "list entries without downloading")
	rootCmd.AddCommand(fetchCmd)
}
