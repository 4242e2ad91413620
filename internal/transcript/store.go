// internal/transcript/store.go
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Mode selects which transcript flavor a file holds.
type Mode string

const (
	// ModeSimple stores utterances without speaker attribution.
	ModeSimple Mode = "simple"
	// ModeSpeakers stores utterances with a speaker on every record.
	ModeSpeakers Mode = "speakers"
)

// ErrMalformedTranscript reports a stored transcript that cannot be trusted:
// unparseable JSON, a failed schema check, or a field set that does not
// match its mode.
var ErrMalformedTranscript = errors.New("malformed transcript")

// transcriptSchema is the shape every stored transcript must satisfy before
// records are interpreted. Hours may grow past two digits for long
// recordings; minutes and seconds are always two.
var transcriptSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"start", "end", "text"},
		"properties": map[string]any{
			"start":   map[string]any{"type": "string", "pattern": `^\d{2,}:\d{2}:\d{2}$`},
			"end":     map[string]any{"type": "string", "pattern": `^\d{2,}:\d{2}:\d{2}$`},
			"speaker": map[string]any{"type": "string", "minLength": 1},
			"text":    map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	},
}

func (m Mode) suffix() string {
	if m == ModeSpeakers {
		return "_with_speakers.json"
	}
	return "_simple.json"
}

// Store reads and writes one JSON transcript per source recording.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory transcripts live under.
func (s *Store) Dir() string { return s.dir }

// Path returns where the transcript for a source recording lives. The
// source's extension is replaced by the mode suffix, so "talks/ep01.wav"
// in speaker mode maps to "<dir>/ep01_with_speakers.json".
func (s *Store) Path(sourceName string, mode Mode) string {
	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	return filepath.Join(s.dir, base+mode.suffix())
}

// Exists reports whether a transcript has already been written for the
// source recording in the given mode.
func (s *Store) Exists(sourceName string, mode Mode) bool {
	info, err := os.Stat(s.Path(sourceName, mode))
	return err == nil && !info.IsDir()
}

// Write persists the utterances atomically: the JSON lands in a temp file
// that is renamed over the target, so a crash mid-write never leaves a
// partial transcript behind. The utterances must match the mode's field set.
func (s *Store) Write(sourceName string, mode Mode, utterances []Utterance) error {
	if utterances == nil {
		utterances = []Utterance{}
	}
	if err := checkRecords(utterances, mode); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(utterances, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	target := s.Path(sourceName, mode)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Read loads a stored transcript and validates it before returning records.
// Any shape violation fails with ErrMalformedTranscript.
func (s *Store) Read(sourceName string, mode Mode) ([]Utterance, error) {
	data, err := os.ReadFile(s.Path(sourceName, mode))
	if err != nil {
		return nil, err
	}
	return decodeTranscript(data, mode)
}

// ModeOfPath reports which transcript flavor the filename carries, if any.
func ModeOfPath(path string) (Mode, bool) {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ModeSpeakers.suffix()):
		return ModeSpeakers, true
	case strings.HasSuffix(name, ModeSimple.suffix()):
		return ModeSimple, true
	}
	return "", false
}

// ReadFile loads a transcript by path, inferring its mode from the filename
// suffix. Paths without a transcript suffix are rejected outright.
func ReadFile(path string) ([]Utterance, Mode, error) {
	mode, ok := ModeOfPath(path)
	if !ok {
		return nil, "", fmt.Errorf("%s is not a transcript file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	utterances, err := decodeTranscript(data, mode)
	if err != nil {
		return nil, "", err
	}
	return utterances, mode, nil
}

func decodeTranscript(data []byte, mode Mode) ([]Utterance, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var utterances []Utterance
	if err := json.Unmarshal(data, &utterances); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTranscript, err)
	}
	if err := checkRecords(utterances, mode); err != nil {
		return nil, err
	}
	return utterances, nil
}

func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(transcriptSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTranscript, err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrMalformedTranscript, strings.Join(errs, ", "))
	}
	return nil
}

func checkRecords(utterances []Utterance, mode Mode) error {
	for i, u := range utterances {
		start, err := ParseTimestamp(u.Start)
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrMalformedTranscript, i, err)
		}
		end, err := ParseTimestamp(u.End)
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrMalformedTranscript, i, err)
		}
		if start > end {
			return fmt.Errorf("%w: record %d ends before it starts", ErrMalformedTranscript, i)
		}
		switch mode {
		case ModeSpeakers:
			if strings.TrimSpace(u.Speaker) == "" {
				return fmt.Errorf("%w: record %d is missing a speaker", ErrMalformedTranscript, i)
			}
		default:
			if u.Speaker != "" {
				return fmt.Errorf("%w: record %d carries an unexpected speaker", ErrMalformedTranscript, i)
			}
		}
	}
	return nil
}
