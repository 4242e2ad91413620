// internal/transcript/transcript_test.go
package transcript

import "testing"

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00:00"},
		{name: "truncates fractional seconds", seconds: 3661.9, want: "01:01:01"},
		{name: "no rounding at boundary", seconds: 59.999, want: "00:00:59"},
		{name: "exact minute", seconds: 60, want: "00:01:00"},
		{name: "hours grow past two digits", seconds: 100*3600 + 7, want: "100:00:07"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatTimestamp(tt.seconds); got != tt.want {
				t.Fatalf("FormatTimestamp(%v)=%q want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "00:00:00", want: 0},
		{in: "01:01:01", want: 3661},
		{in: "100:00:07", want: 360007},
		{in: "00:59:59", want: 3599},
		{in: "1:02:03", wantErr: true},
		{in: "00:60:00", wantErr: true},
		{in: "00:00:61", wantErr: true},
		{in: "00:123:00", wantErr: true},
		{in: "12:34", wantErr: true},
		{in: "ab:cd:ef", wantErr: true},
		{in: "00:-1:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimestamp(%q) should have failed", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseTimestamp(%q)=%v want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	labeled := []Utterance{
		{Start: "00:00:00", End: "00:00:05", Speaker: "A", Text: "hello"},
		{Start: "00:00:05", End: "00:00:10", Speaker: "B", Text: "world"},
	}
	if got, want := PlainText(labeled), "A: hello\nB: world"; got != want {
		t.Fatalf("PlainText=%q want %q", got, want)
	}

	plain := []Utterance{
		{Start: "00:00:00", End: "00:00:05", Text: "hello"},
		{Start: "00:00:05", End: "00:00:10", Text: "world"},
	}
	if got, want := PlainText(plain), "hello\nworld"; got != want {
		t.Fatalf("PlainText=%q want %q", got, want)
	}

	if got := PlainText(nil); got != "" {
		t.Fatalf("PlainText(nil)=%q want empty", got)
	}
}

// TestTimestampRoundTrip confirms that formatting then parsing lands on the
// truncated second for representative values.
func TestTimestampRoundTrip(t *testing.T) {
	t.Parallel()

	for _, seconds := range []float64{0, 1.2, 59.99, 61.5, 3599.1, 3600, 86399.9} {
		formatted := FormatTimestamp(seconds)
		parsed, err := ParseTimestamp(formatted)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q) returned error: %v", formatted, err)
		}
		if parsed != float64(int64(seconds)) {
			t.Fatalf("round trip of %v: got %v want %v", seconds, parsed, float64(int64(seconds)))
		}
	}
}
