// internal/speech/factory.go
package speech

import (
	"errors"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mwiater/parley/internal/appconfig"
)

// NewSources builds the recognition and diarization backends from the runtime
// configuration and the environment. The API key comes only from the
// environment, never from the config file. The diarizer is optional: when the
// config names no sidecar URL the returned DiarizationSource is nil and only
// simple transcription is available.
func NewSources(cfg *appconfig.Config) (SegmentSource, DiarizationSource, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	prompt := strings.TrimSpace(cfg.VocabularyPrompt)
	if prompt == "" {
		prompt = strings.TrimSpace(os.Getenv("WHISPER_PROMPT"))
	}

	client := openai.NewClient(apiKey)
	recognizer := NewWhisperSource(client, cfg.TranscribeModelName(), prompt)

	var diarizer DiarizationSource
	if url := strings.TrimSpace(cfg.DiarizerURL); url != "" {
		diarizer = NewDiarizerClient(url, strings.TrimSpace(os.Getenv("DIARIZER_TOKEN")), cfg.RequestTimeout())
	}

	return recognizer, diarizer, nil
}
