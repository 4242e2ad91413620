// internal/transcript/transcript.go

// Package transcript turns recognition output into speaker-attributed
// utterances and persists them as JSON transcript files.
package transcript

import (
	"fmt"
	"strings"

	"github.com/mwiater/parley/internal/speech"
)

// UnknownSpeaker labels utterances that no diarization turn overlaps.
const UnknownSpeaker = "UNKNOWN"

// Utterance is one transcript record. Speaker is empty in simple transcripts
// and always set in speaker-attributed ones.
type Utterance struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// FormatTimestamp renders seconds as zero-padded HH:MM:SS. Fractional
// seconds are truncated, never rounded, so 3661.9 becomes "01:01:01".
func FormatTimestamp(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseTimestamp converts a zero-padded HH:MM:SS string back to seconds.
// Hours may exceed two digits; minutes and seconds must be exactly two.
func ParseTimestamp(value string) (float64, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("timestamp %q is not HH:MM:SS", value)
	}
	fields := make([]int, 3)
	for i, part := range parts {
		if len(part) < 2 || (i > 0 && len(part) != 2) {
			return 0, fmt.Errorf("timestamp %q is not zero-padded", value)
		}
		n := 0
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("timestamp %q contains a non-digit", value)
			}
			n = n*10 + int(r-'0')
		}
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("timestamp %q has a field out of range", value)
		}
		fields[i] = n
	}
	return float64(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

// PlainText flattens utterances into the text downstream indexing consumes.
// Speaker labels stay inline when present so retrieval can answer
// who-said-what questions.
func PlainText(utterances []Utterance) string {
	var b strings.Builder
	for i, u := range utterances {
		if i > 0 {
			b.WriteByte('\n')
		}
		if u.Speaker != "" {
			b.WriteString(u.Speaker)
			b.WriteString(": ")
		}
		b.WriteString(u.Text)
	}
	return b.String()
}

// Simple converts recognition segments directly to utterances without
// speaker attribution. An empty input yields an empty transcript.
func Simple(recs []speech.RecognitionSegment) ([]Utterance, error) {
	if err := validateRecognition(recs); err != nil {
		return nil, err
	}
	utterances := make([]Utterance, 0, len(recs))
	for _, rec := range recs {
		utterances = append(utterances, Utterance{
			Start: FormatTimestamp(rec.Start),
			End:   FormatTimestamp(rec.End),
			Text:  rec.Text,
		})
	}
	return utterances, nil
}
