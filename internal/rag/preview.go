package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/logging"
)

// RunPreview retrieves for a query and prints the hits without generating an
// answer, so an operator can judge retrieval quality on its own.
func RunPreview(ctx context.Context, cfg *appconfig.Config, index *Index, embedder Embedder, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("query is required")
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	status := func(format string, args ...any) {
		logging.LogEvent(format, args...)
	}

	status("[PREVIEW] Query: %s", query)
	status("[PREVIEW] Index: %s", index.Path())
	status("[PREVIEW] Embedding model: %s", cfg.EmbeddingModelName())
	status("[PREVIEW] topK: %d", cfg.RetrievalTopK())
	status("[PREVIEW] context token budget: %d", cfg.ContextTokenBudget())

	vectors, err := embedder.Embed(ctx, []string{query})
	if err != nil {
		return fmt.Errorf("embed query: %w", err)
	}
	hits, err := index.Search(ctx, vectors[0], cfg.RetrievalTopK())
	if err != nil {
		return err
	}

	contextBlock, contextTokens, coverage := FormatContext(hits, cfg.ContextTokenBudget())
	status("[PREVIEW] context_tokens: %d", contextTokens)
	status("[PREVIEW] source_coverage: %d", coverage)
	status("[PREVIEW] chunks: %d", len(hits))

	for i, hit := range hits {
		status("[PREVIEW] chunk %d score=%.6f source=%s offset=%d", i+1, hit.Score, hit.Chunk.SourceFile, hit.Chunk.CharOffset)
		status("[PREVIEW] chunk %d text: %s", i+1, hit.Chunk.Text)
	}
	if contextBlock != "" {
		status("[PREVIEW] context:\n%s", contextBlock)
	}
	return nil
}
