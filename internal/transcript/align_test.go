// internal/transcript/align_test.go
package transcript

import (
	"errors"
	"math"
	"testing"

	"github.com/mwiater/parley/internal/speech"
)

func TestAlign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		recs  []speech.RecognitionSegment
		turns []speech.DiarizationSegment
		want  []Utterance
	}{
		{
			name: "majority overlap wins",
			recs: []speech.RecognitionSegment{
				{Start: 0, End: 5, Text: "hello"},
				{Start: 5, End: 10, Text: "world"},
			},
			turns: []speech.DiarizationSegment{
				{Start: 0, End: 6, Speaker: "A"},
				{Start: 6, End: 10, Speaker: "B"},
			},
			want: []Utterance{
				{Start: "00:00:00", End: "00:00:05", Speaker: "A", Text: "hello"},
				{Start: "00:00:05", End: "00:00:10", Speaker: "B", Text: "world"},
			},
		},
		{
			name: "tie goes to earliest turn",
			recs: []speech.RecognitionSegment{
				{Start: 2, End: 6, Text: "split evenly"},
			},
			turns: []speech.DiarizationSegment{
				{Start: 4, End: 8, Speaker: "LATE"},
				{Start: 0, End: 4, Speaker: "EARLY"},
			},
			want: []Utterance{
				{Start: "00:00:02", End: "00:00:06", Speaker: "EARLY", Text: "split evenly"},
			},
		},
		{
			name: "no overlap falls back to unknown",
			recs: []speech.RecognitionSegment{
				{Start: 20, End: 25, Text: "orphaned"},
			},
			turns: []speech.DiarizationSegment{
				{Start: 0, End: 10, Speaker: "A"},
			},
			want: []Utterance{
				{Start: "00:00:20", End: "00:00:25", Speaker: UnknownSpeaker, Text: "orphaned"},
			},
		},
		{
			name: "touching boundary does not count as overlap",
			recs: []speech.RecognitionSegment{
				{Start: 5, End: 10, Text: "adjacent"},
			},
			turns: []speech.DiarizationSegment{
				{Start: 0, End: 5, Speaker: "A"},
			},
			want: []Utterance{
				{Start: "00:00:05", End: "00:00:10", Speaker: UnknownSpeaker, Text: "adjacent"},
			},
		},
		{
			name: "empty diarization labels everything unknown",
			recs: []speech.RecognitionSegment{
				{Start: 0, End: 3, Text: "one"},
				{Start: 3, End: 7, Text: "two"},
			},
			turns: nil,
			want: []Utterance{
				{Start: "00:00:00", End: "00:00:03", Speaker: UnknownSpeaker, Text: "one"},
				{Start: "00:00:03", End: "00:00:07", Speaker: UnknownSpeaker, Text: "two"},
			},
		},
		{
			name:  "empty recognition yields empty transcript",
			recs:  nil,
			turns: []speech.DiarizationSegment{{Start: 0, End: 10, Speaker: "A"}},
			want:  []Utterance{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Align(tt.recs, tt.turns)
			if err != nil {
				t.Fatalf("Align returned error: %v", err)
			}
			if got == nil {
				t.Fatal("Align returned nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d utterances, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("utterance %d mismatch: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAlignInvalidTiming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		recs  []speech.RecognitionSegment
		turns []speech.DiarizationSegment
	}{
		{
			name: "zero duration segment",
			recs: []speech.RecognitionSegment{{Start: 5, End: 5, Text: "empty span"}},
		},
		{
			name: "inverted segment",
			recs: []speech.RecognitionSegment{{Start: 9, End: 4, Text: "backwards"}},
		},
		{
			name: "negative start",
			recs: []speech.RecognitionSegment{{Start: -1, End: 4, Text: "before zero"}},
		},
		{
			name: "non-finite bound",
			recs: []speech.RecognitionSegment{{Start: 0, End: math.NaN(), Text: "nan"}},
		},
		{
			name:  "invalid diarization turn",
			recs:  []speech.RecognitionSegment{{Start: 0, End: 5, Text: "fine"}},
			turns: []speech.DiarizationSegment{{Start: 7, End: 7, Speaker: "A"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Align(tt.recs, tt.turns)
			if !errors.Is(err, ErrInvalidSegment) {
				t.Fatalf("expected ErrInvalidSegment, got %v", err)
			}
			if got != nil {
				t.Fatalf("expected no partial output, got %d utterances", len(got))
			}
		})
	}
}

// TestAlignPreservesInputs confirms alignment neither reorders segments nor
// mutates either input slice.
func TestAlignPreservesInputs(t *testing.T) {
	t.Parallel()

	recs := []speech.RecognitionSegment{
		{Start: 0, End: 2, Text: "first"},
		{Start: 2, End: 4, Text: "second"},
		{Start: 4, End: 6, Text: "third"},
	}
	turns := []speech.DiarizationSegment{
		{Start: 0, End: 6, Speaker: "A"},
	}
	recsCopy := append([]speech.RecognitionSegment(nil), recs...)
	turnsCopy := append([]speech.DiarizationSegment(nil), turns...)

	got, err := Align(recs, turns)
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Text != want {
			t.Fatalf("order not preserved at %d: got %q want %q", i, got[i].Text, want)
		}
	}
	for i := range recs {
		if recs[i] != recsCopy[i] {
			t.Fatalf("recognition input mutated at %d", i)
		}
	}
	for i := range turns {
		if turns[i] != turnsCopy[i] {
			t.Fatalf("diarization input mutated at %d", i)
		}
	}
}

func TestSimple(t *testing.T) {
	t.Parallel()

	got, err := Simple([]speech.RecognitionSegment{
		{Start: 0, End: 5.7, Text: "hello"},
		{Start: 5.7, End: 10.2, Text: "world"},
	})
	if err != nil {
		t.Fatalf("Simple returned error: %v", err)
	}
	want := []Utterance{
		{Start: "00:00:00", End: "00:00:05", Text: "hello"},
		{Start: "00:00:05", End: "00:00:10", Text: "world"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d utterances, got %d", len(want), len(got))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("utterance %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}

	if _, err := Simple([]speech.RecognitionSegment{{Start: 3, End: 1, Text: "bad"}}); !errors.Is(err, ErrInvalidSegment) {
		t.Fatalf("expected ErrInvalidSegment, got %v", err)
	}
}
