// internal/cli/ask.go
package parley

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/parley/internal/rag"
)

var askQuestion string

// askCmd answers one question from the indexed transcripts and exits.
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask one question against the transcript index",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(askQuestion)
		if question == "" {
			question = strings.TrimSpace(strings.Join(args, " "))
		}
		if question == "" {
			return fmt.Errorf("question is required (--question or positional)")
		}

		engine, index, err := newQueryEngine(GetConfig())
		if err != nil {
			return err
		}
		defer index.Close()

		answer, err := engine.Ask(context.Background(), question, nil)
		if err != nil {
			if errors.Is(err, rag.ErrEmptyIndex) {
				return fmt.Errorf("the index has no chunks yet; run 'parley index build' first")
			}
			return err
		}

		fmt.Println(answer.Text)
		if len(answer.Sources) > 0 {
			fmt.Printf("\nSources: %s\n", strings.Join(answer.Sources, ", "))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer")
	rootCmd.AddCommand(askCmd)
}
