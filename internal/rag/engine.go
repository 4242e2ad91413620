package rag

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Message is one conversation message carried between engine calls.
type Message struct {
	Role    string
	Content string
}

// Answer is the grounded response to one question.
type Answer struct {
	Text    string
	Sources []string
}

// GenerationError wraps a chat backend failure so callers can tell it apart
// from retrieval problems and decide whether a retry is worthwhile.
type GenerationError struct {
	Err       error
	Retryable bool
}

func (e *GenerationError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("generation failed (retryable): %v", e.Err)
	}
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const groundingPrompt = `You answer questions about a library of spoken-word transcripts.
Use only the provided CONTEXT to answer. If the context does not contain the answer, say you do not know rather than guessing.
Cite every transcript you draw on using its [source:NAME] tag.`

// Engine answers questions from the indexed transcript corpus.
type Engine struct {
	index        *Index
	embedder     Embedder
	chat         ChatBackend
	topK         int
	historyLimit int
	tokenBudget  int
}

// NewEngine wires retrieval and generation together. topK bounds how many
// chunks each question retrieves, historyLimit how many prior messages are
// replayed, and tokenBudget how much context the prompt may carry.
func NewEngine(index *Index, embedder Embedder, chat ChatBackend, topK, historyLimit, tokenBudget int) *Engine {
	return &Engine{
		index:        index,
		embedder:     embedder,
		chat:         chat,
		topK:         topK,
		historyLimit: historyLimit,
		tokenBudget:  tokenBudget,
	}
}

// Ask retrieves the chunks most similar to the question and generates an
// answer grounded in them. An index with nothing ingested fails with
// ErrEmptyIndex before any backend call; a failed generation comes back as
// a *GenerationError. The returned sources are the distinct transcripts
// behind the answer, cited ones first, the rest in retrieval order.
func (e *Engine) Ask(ctx context.Context, question string, history []Message) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("question is empty")
	}

	count, err := e.index.Count(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("inspect index: %w", err)
	}
	if count == 0 {
		return Answer{}, ErrEmptyIndex
	}

	queryVecs, err := e.embedder.Embed(ctx, []string{question})
	if err != nil {
		return Answer{}, fmt.Errorf("embed question: %w", err)
	}
	retrieved, err := e.index.Search(ctx, queryVecs[0], e.topK)
	if err != nil {
		return Answer{}, err
	}

	contextBlock, _, _ := FormatContext(retrieved, e.tokenBudget)
	messages := buildPrompt(contextBlock, question, trimHistory(history, e.historyLimit))

	text, err := e.chat.Complete(ctx, messages)
	if err != nil {
		return Answer{}, &GenerationError{Err: err, Retryable: retryableGeneration(err)}
	}

	return Answer{
		Text:    strings.TrimSpace(text),
		Sources: orderedSources(text, retrieved),
	}, nil
}

// buildPrompt layers bounded history and the question onto the system grounding.
func buildPrompt(contextBlock, question string, history []Message) []Message {
	system := groundingPrompt
	if contextBlock != "" {
		system += "\n\n" + contextBlock
	}
	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: question})
	return messages
}

// trimHistory keeps only the most recent limit messages. A non-positive
// limit disables history replay entirely.
func trimHistory(history []Message, limit int) []Message {
	if limit <= 0 {
		return nil
	}
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

var citationPattern = regexp.MustCompile(`\[source:([^\]]+)\]`)

// orderedSources returns the distinct source files behind an answer. Sources
// the model cited come first in citation order; uncited retrieved sources
// follow in retrieval order.
func orderedSources(answer string, retrieved []RetrievedChunk) []string {
	sources := make([]string, 0, len(retrieved))
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		sources = append(sources, name)
	}

	for _, match := range citationPattern.FindAllStringSubmatch(answer, -1) {
		name := strings.TrimSpace(match[1])
		if retrievedContains(retrieved, name) {
			add(name)
		}
	}
	for _, chunk := range retrieved {
		add(chunk.Chunk.SourceFile)
	}
	return sources
}

func retrievedContains(retrieved []RetrievedChunk, name string) bool {
	for _, chunk := range retrieved {
		if chunk.Chunk.SourceFile == name {
			return true
		}
	}
	return false
}
