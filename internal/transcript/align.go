// internal/transcript/align.go
package transcript

import (
	"errors"
	"fmt"
	"math"

	"github.com/mwiater/parley/internal/speech"
)

// ErrInvalidSegment reports recognition or diarization timing that cannot
// describe a real span, such as a zero or negative duration.
var ErrInvalidSegment = errors.New("invalid segment timing")

// Align attributes each recognition segment to the speaker whose diarization
// turn overlaps it the most. Intervals are half-open, so turns that merely
// touch a segment boundary do not count. Ties go to the turn that starts
// earliest, and a segment no turn overlaps gets UnknownSpeaker. Both inputs
// are validated before any output is produced; an empty recognition list
// yields an empty transcript, not an error.
func Align(recs []speech.RecognitionSegment, turns []speech.DiarizationSegment) ([]Utterance, error) {
	if err := validateRecognition(recs); err != nil {
		return nil, err
	}
	if err := validateTurns(turns); err != nil {
		return nil, err
	}

	utterances := make([]Utterance, 0, len(recs))
	for _, rec := range recs {
		utterances = append(utterances, Utterance{
			Start:   FormatTimestamp(rec.Start),
			End:     FormatTimestamp(rec.End),
			Speaker: speakerFor(rec, turns),
			Text:    rec.Text,
		})
	}
	return utterances, nil
}

// speakerFor returns the label of the turn with maximum overlap, or
// UnknownSpeaker when nothing overlaps.
func speakerFor(rec speech.RecognitionSegment, turns []speech.DiarizationSegment) string {
	best := UnknownSpeaker
	bestOverlap := 0.0
	bestStart := math.Inf(1)
	for _, turn := range turns {
		overlap := math.Min(rec.End, turn.End) - math.Max(rec.Start, turn.Start)
		if overlap <= 0 {
			continue
		}
		if overlap > bestOverlap || (overlap == bestOverlap && turn.Start < bestStart) {
			best = turn.Speaker
			bestOverlap = overlap
			bestStart = turn.Start
		}
	}
	return best
}

func validateRecognition(recs []speech.RecognitionSegment) error {
	for i, rec := range recs {
		if err := checkSpan(rec.Start, rec.End); err != nil {
			return fmt.Errorf("recognition segment %d: %w", i, err)
		}
	}
	return nil
}

func validateTurns(turns []speech.DiarizationSegment) error {
	for i, turn := range turns {
		if err := checkSpan(turn.Start, turn.End); err != nil {
			return fmt.Errorf("diarization turn %d: %w", i, err)
		}
	}
	return nil
}

func checkSpan(start, end float64) error {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return fmt.Errorf("%w: non-finite bounds %v..%v", ErrInvalidSegment, start, end)
	}
	if start < 0 {
		return fmt.Errorf("%w: negative start %v", ErrInvalidSegment, start)
	}
	if start >= end {
		return fmt.Errorf("%w: start %v is not before end %v", ErrInvalidSegment, start, end)
	}
	return nil
}
