// internal/speech/speech.go

// Package speech defines the interfaces for the external services that turn
// audio into text and speaker turns. It provides a common abstraction over
// hosted recognition and diarization backends so the rest of the pipeline
// never depends on a concrete vendor.
package speech

import "context"

// RecognitionSegment represents one span of recognized speech.
// Timing is in seconds from the start of the recording.
type RecognitionSegment struct {
	Start float64
	End   float64
	Text  string
}

// DiarizationSegment represents one speaker turn.
// Timing is in seconds from the start of the recording.
type DiarizationSegment struct {
	Start   float64
	End     float64
	Speaker string
}

// SegmentSource is the interface recognition backends implement.
type SegmentSource interface {
	// Segments transcribes the audio file and returns its recognized spans in order.
	Segments(ctx context.Context, audioPath string) ([]RecognitionSegment, error)
}

// DiarizationSource is the interface diarization backends implement.
type DiarizationSource interface {
	// Turns diarizes the audio file and returns its speaker turns in order.
	Turns(ctx context.Context, audioPath string) ([]DiarizationSegment, error)
}
