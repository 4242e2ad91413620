// internal/cli/backends.go
package parley

import (
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/rag"
)

// newOpenAIClient builds the shared API client. The key comes from the
// environment only, never from the config file.
func newOpenAIClient() (*openai.Client, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return openai.NewClient(key), nil
}

// openIndex opens the configured retrieval index, creating it on first use.
func openIndex(cfg *appconfig.Config) (*rag.Index, error) {
	return rag.Open(cfg.IndexFilePath())
}

// newEmbedder returns the embedding backend shared by index build and
// preview.
func newEmbedder(cfg *appconfig.Config) (rag.Embedder, error) {
	client, err := newOpenAIClient()
	if err != nil {
		return nil, err
	}
	return rag.NewOpenAIEmbedder(client, cfg.EmbeddingModelName()), nil
}

// newQueryEngine wires retrieval and generation for ask and chat. The
// caller closes the returned index.
func newQueryEngine(cfg *appconfig.Config) (*rag.Engine, *rag.Index, error) {
	client, err := newOpenAIClient()
	if err != nil {
		return nil, nil, err
	}
	index, err := openIndex(cfg)
	if err != nil {
		return nil, nil, err
	}

	embedder := rag.NewOpenAIEmbedder(client, cfg.EmbeddingModelName())
	chat := rag.NewOpenAIChat(client, cfg.ChatModelName())
	engine := rag.NewEngine(index, embedder, chat, cfg.RetrievalTopK(), cfg.ChatHistoryLimit(), cfg.ContextTokenBudget())
	return engine, index, nil
}
