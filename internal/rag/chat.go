package rag

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ChatBackend is the generation side of the query engine.
type ChatBackend interface {
	// Complete sends the conversation and returns the assistant's reply.
	Complete(ctx context.Context, messages []Message) (string, error)
}

// OpenAIChat implements ChatBackend against the chat completions API.
type OpenAIChat struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewOpenAIChat returns a ChatBackend using the given model. Temperature is
// kept low so answers stay close to the retrieved context.
func NewOpenAIChat(client *openai.Client, model string) *OpenAIChat {
	return &OpenAIChat{client: client, model: model, temperature: 0.2}
}

// Complete sends the messages as a single chat completion request.
func (c *OpenAIChat) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// retryableGeneration classifies backend failures: rate limits, server
// errors, and transport problems are worth retrying; other API rejections
// such as a bad model name are not.
func retryableGeneration(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	return true
}
