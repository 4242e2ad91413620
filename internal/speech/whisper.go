// internal/speech/whisper.go
package speech

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperSource transcribes audio through a hosted Whisper-compatible endpoint.
type WhisperSource struct {
	client *openai.Client
	model  string
	prompt string
}

// NewWhisperSource returns a SegmentSource backed by the given client. A
// non-empty prompt biases recognition toward domain vocabulary such as
// speaker names and technical terms.
func NewWhisperSource(client *openai.Client, model, prompt string) *WhisperSource {
	return &WhisperSource{client: client, model: model, prompt: prompt}
}

// Segments requests a verbose transcription and converts its timed segments.
// Segments whose text is blank after trimming are dropped.
func (w *WhisperSource) Segments(ctx context.Context, audioPath string) ([]RecognitionSegment, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Prompt:   w.prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", audioPath, err)
	}

	segments := make([]RecognitionSegment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		segments = append(segments, RecognitionSegment{Start: s.Start, End: s.End, Text: text})
	}
	return segments, nil
}
