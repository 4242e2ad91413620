// internal/cli/index_preview.go
package parley

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/rag"
)

var previewQuery string

// indexPreviewCmd shows what retrieval would feed the model for a query.
var indexPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview retrieval and context assembly for a query",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(previewQuery)
		if query == "" {
			query = strings.TrimSpace(strings.Join(args, " "))
		}
		if query == "" {
			return fmt.Errorf("query is required (--query or positional)")
		}

		cfg := GetConfig()
		embedder, err := newEmbedder(cfg)
		if err != nil {
			return err
		}
		index, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer index.Close()

		return rag.RunPreview(context.Background(), cfg, index, embedder, query)
	},
}

func init() {
	indexPreviewCmd.Flags().StringVar(&previewQuery, "query", "", "query to preview")
	indexCmd.AddCommand(indexPreviewCmd)
}
