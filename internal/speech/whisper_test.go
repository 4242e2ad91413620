// internal/speech/whisper_test.go
package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// TestWhisperSourceSegments verifies that a verbose transcription response is
// converted into ordered recognition segments with trimmed text and that
// blank segments are dropped.
func TestWhisperSourceSegments(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart form: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Fatalf("unexpected response_format: %q", got)
		}
		if got := r.FormValue("prompt"); got != "pyannote, Whisper" {
			t.Fatalf("unexpected prompt: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"task": "transcribe",
			"language": "en",
			"duration": 10.0,
			"segments": [
				{"id": 0, "start": 0.0, "end": 5.0, "text": " hello "},
				{"id": 1, "start": 5.0, "end": 7.5, "text": "   "},
				{"id": 2, "start": 7.5, "end": 10.0, "text": "world"}
			],
			"text": "hello world"
		}`))
	}))
	defer server.Close()

	clientConfig := openai.DefaultConfig("test-key")
	clientConfig.BaseURL = server.URL
	client := openai.NewClientWithConfig(clientConfig)

	source := NewWhisperSource(client, "whisper-1", "pyannote, Whisper")
	segments, err := source.Segments(context.Background(), audioPath)
	if err != nil {
		t.Fatalf("Segments returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments after dropping the blank one, got %d", len(segments))
	}
	if segments[0].Text != "hello" || segments[0].Start != 0 || segments[0].End != 5 {
		t.Fatalf("unexpected first segment: %+v", segments[0])
	}
	if segments[1].Text != "world" || segments[1].Start != 7.5 || segments[1].End != 10 {
		t.Fatalf("unexpected second segment: %+v", segments[1])
	}
}

// TestWhisperSourceBackendError verifies that an API error from the
// transcription endpoint is wrapped with the audio path.
func TestWhisperSourceBackendError(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF fake audio"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
	}))
	defer server.Close()

	clientConfig := openai.DefaultConfig("test-key")
	clientConfig.BaseURL = server.URL
	client := openai.NewClientWithConfig(clientConfig)

	source := NewWhisperSource(client, "whisper-1", "")
	if _, err := source.Segments(context.Background(), audioPath); err == nil {
		t.Fatal("expected error for 429 response")
	}
}
