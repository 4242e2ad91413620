// internal/speech/diarizer.go
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiarizerClient calls a pyannote-style diarization sidecar.
// POST {baseURL}/diarize with the audio file as multipart form data;
// the response is a JSON array of {start, end, speaker} turns.
type DiarizerClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewDiarizerClient returns a DiarizationSource for the sidecar at baseURL.
// The bearer token is optional and sent only when non-empty.
func NewDiarizerClient(baseURL, token string, timeout time.Duration) *DiarizerClient {
	return &DiarizerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type diarizationTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Turns uploads the audio file and decodes the sidecar's speaker turns.
func (d *DiarizerClient) Turns(ctx context.Context, audioPath string) ([]DiarizationSegment, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/diarize", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diarizer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("diarizer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var turns []diarizationTurn
	if err := json.NewDecoder(resp.Body).Decode(&turns); err != nil {
		return nil, fmt.Errorf("decode diarizer response: %w", err)
	}

	segments := make([]DiarizationSegment, 0, len(turns))
	for _, turn := range turns {
		segments = append(segments, DiarizationSegment{Start: turn.Start, End: turn.End, Speaker: turn.Speaker})
	}
	return segments, nil
}
