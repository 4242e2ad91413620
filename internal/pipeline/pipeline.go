// internal/pipeline/pipeline.go

// Package pipeline runs the batch stages that turn recordings into stored
// transcripts, isolating per-file failures so one bad input never sinks a
// whole run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/logging"
	"github.com/mwiater/parley/internal/media"
	"github.com/mwiater/parley/internal/speech"
	"github.com/mwiater/parley/internal/transcript"
)

// Options control one transcription run.
type Options struct {
	// Input is a single audio file or a directory of them. Empty means the
	// configured audio directory.
	Input string
	// Simple skips diarization and writes transcripts without speakers.
	Simple bool
	// Force re-transcribes files whose transcript already exists.
	Force bool
	// Jobs bounds how many files are transcribed at once.
	Jobs int
}

// Transcriber turns audio files into stored transcripts.
type Transcriber struct {
	cfg        *appconfig.Config
	recognizer speech.SegmentSource
	diarizer   speech.DiarizationSource
	store      *transcript.Store
}

// NewTranscriber wires the transcription stage. diarizer may be nil when
// only simple transcripts are wanted.
func NewTranscriber(cfg *appconfig.Config, recognizer speech.SegmentSource, diarizer speech.DiarizationSource, store *transcript.Store) *Transcriber {
	return &Transcriber{cfg: cfg, recognizer: recognizer, diarizer: diarizer, store: store}
}

// TranscribeFile processes one audio file end to end and reports whether it
// was skipped because its transcript already exists.
func (t *Transcriber) TranscribeFile(ctx context.Context, audioPath string, opts Options) (bool, error) {
	mode := transcript.ModeSpeakers
	if opts.Simple {
		mode = transcript.ModeSimple
	}
	name := filepath.Base(audioPath)

	if !opts.Force && t.store.Exists(name, mode) {
		logging.LogStage("transcribe", name, fmt.Sprintf("transcript exists at %s, skipping", t.store.Path(name, mode)))
		return true, nil
	}

	recs, err := t.recognizer.Segments(ctx, audioPath)
	if err != nil {
		return false, err
	}

	var utterances []transcript.Utterance
	if opts.Simple {
		utterances, err = transcript.Simple(recs)
	} else {
		if t.diarizer == nil {
			return false, fmt.Errorf("speaker attribution needs a diarizer; set diarizerUrl or pass --simple")
		}
		var turns []speech.DiarizationSegment
		turns, err = t.diarizer.Turns(ctx, audioPath)
		if err != nil {
			return false, fmt.Errorf("diarize %s: %w", name, err)
		}
		utterances, err = transcript.Align(recs, turns)
	}
	if err != nil {
		return false, err
	}

	if err := t.store.Write(name, mode, utterances); err != nil {
		return false, err
	}
	logging.LogStage("transcribe", name, fmt.Sprintf("wrote %d utterances to %s", len(utterances), t.store.Path(name, mode)))
	return false, nil
}

// Run transcribes every discovered input with at most opts.Jobs files in
// flight. A file that fails is recorded in the summary and the run moves on;
// only an unusable input set or a canceled context aborts the whole run.
func (t *Transcriber) Run(ctx context.Context, opts Options) (Summary, error) {
	inputs, err := t.discoverInputs(opts.Input)
	if err != nil {
		return Summary{}, err
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	summary := Summary{RunID: uuid.NewString()}
	logging.LogStage("transcribe", "-", fmt.Sprintf("run %s: %d files, %d workers", summary.RunID, len(inputs), jobs))

	type outcome struct {
		file    string
		skipped bool
		err     error
	}
	outcomes := make([]outcome, len(inputs))

	eg, groupCtx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, path := range inputs {
		eg.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			skipped, err := t.TranscribeFile(groupCtx, path, opts)
			outcomes[i] = outcome{file: filepath.Base(path), skipped: skipped, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, err
	}

	for _, o := range outcomes {
		switch {
		case o.err != nil:
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{File: o.file, Err: o.err})
			logging.LogStage("transcribe", o.file, o.err)
		case o.skipped:
			summary.Skipped++
		default:
			summary.Processed++
		}
	}
	return summary, nil
}

// discoverInputs expands the input path into the audio files to process.
func (t *Transcriber) discoverInputs(input string) ([]string, error) {
	root := input
	if root == "" {
		root = t.cfg.AudioPath()
	}
	return discoverMedia(root, media.AudioExtensions, "audio file")
}

// discoverMedia resolves a file-or-directory input into concrete media
// paths. A directory contributes matching files in name order so sequential
// runs are deterministic.
func discoverMedia(root string, extensions []string, kind string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", root, err)
	}
	if !info.IsDir() {
		if !media.HasExtension(root, extensions) {
			return nil, fmt.Errorf("input %s is not a supported %s (%s)", root, kind, strings.Join(extensions, ", "))
		}
		return []string{root}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if media.HasExtension(entry.Name(), extensions) {
			files = append(files, filepath.Join(root, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %ss found under %s", kind, root)
	}
	return files, nil
}
