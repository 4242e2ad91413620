// internal/cli/index_build.go
package parley

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/rag"
)

var indexRebuild bool

// indexBuildCmd ingests every transcript into the retrieval index.
var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Chunk, embed, and store every transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		result, err := rag.BuildIndex(context.Background(), cfg, index, embedder, indexRebuild)
		if err != nil {
			return err
		}
		if result.FilesFailed > 0 {
			fmt.Printf("%d transcripts could not be indexed; see the log for details\n", result.FilesFailed)
		}
		return nil
	},
}

func init() {
	indexBuildCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "clear the index before ingesting")
	indexCmd.AddCommand(indexBuildCmd)
}
