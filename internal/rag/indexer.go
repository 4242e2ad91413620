package rag

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/logging"
	"github.com/mwiater/parley/internal/transcript"
)

// embedBatchSize bounds how many chunk texts go into one embedding request.
const embedBatchSize = 64

// BuildResult summarizes one indexing run.
type BuildResult struct {
	FilesIndexed int
	FilesEmpty   int
	FilesFailed  int
	ChunksStored int
}

// BuildIndex walks the transcript directory, chunks and embeds every
// transcript, and upserts the results into the index. With rebuild set the
// store is cleared first. A transcript that cannot be read or embedded is
// logged and counted without stopping the run.
func BuildIndex(ctx context.Context, cfg *appconfig.Config, index *Index, embedder Embedder, rebuild bool) (BuildResult, error) {
	if cfg == nil {
		return BuildResult{}, fmt.Errorf("config is nil")
	}
	size, overlap := cfg.Chunking()
	chunker, err := NewChunker(size, overlap)
	if err != nil {
		return BuildResult{}, err
	}

	start := time.Now()
	status := func(format string, args ...any) {
		elapsed := time.Since(start).Truncate(time.Millisecond)
		logging.LogEvent("[%s] %s", elapsed, fmt.Sprintf(format, args...))
	}

	status("[INDEX] Transcript corpus: %s", cfg.TranscriptsPath())
	status("[INDEX] Index store: %s", index.Path())
	status("[INDEX] Embedding model: %s", cfg.EmbeddingModelName())
	status("[INDEX] Chunk size: %d chars, overlap: %d chars", size, overlap)

	files, err := discoverTranscripts(cfg.TranscriptsPath())
	if err != nil {
		return BuildResult{}, err
	}
	if len(files) == 0 {
		return BuildResult{}, fmt.Errorf("no transcripts found under %s", cfg.TranscriptsPath())
	}
	status("[INDEX] Discovered %d transcripts", len(files))

	if rebuild {
		if err := index.Clear(ctx); err != nil {
			return BuildResult{}, err
		}
		status("[INDEX] Cleared existing chunks for rebuild")
	}

	var result BuildResult
	for _, path := range files {
		fileStart := time.Now()
		name := filepath.Base(path)

		utterances, _, err := transcript.ReadFile(path)
		if err != nil {
			result.FilesFailed++
			status("[INDEX] Failed %s: %v", name, err)
			continue
		}
		chunks := chunker.Chunk(name, transcript.PlainText(utterances))
		if len(chunks) == 0 {
			result.FilesEmpty++
			status("[INDEX] Skipping empty transcript: %s", name)
			continue
		}
		status("[INDEX] Chunked %s into %d chunks", name, len(chunks))

		if err := embedAndStore(ctx, index, embedder, chunks); err != nil {
			result.FilesFailed++
			status("[INDEX] Failed %s: %v", name, err)
			continue
		}

		result.FilesIndexed++
		result.ChunksStored += len(chunks)
		status("[INDEX] Finished %s in %s", name, time.Since(fileStart).Truncate(time.Millisecond))
	}

	status("[INDEX] Index complete in %s: %d indexed, %d empty, %d failed, %d chunks stored",
		time.Since(start).Truncate(time.Millisecond), result.FilesIndexed, result.FilesEmpty, result.FilesFailed, result.ChunksStored)
	return result, nil
}

func embedAndStore(ctx context.Context, index *Index, embedder Embedder, chunks []Chunk) error {
	for batchStart := 0; batchStart < len(chunks); batchStart += embedBatchSize {
		batchEnd := batchStart + embedBatchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}
		batch := chunks[batchStart:batchEnd]
		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}
		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks %d-%d: %w", batchStart, batchEnd-1, err)
		}
		if err := index.Upsert(ctx, batch, vectors); err != nil {
			return err
		}
	}
	return nil
}

// discoverTranscripts returns every transcript file under root, sorted so
// indexing order is deterministic.
func discoverTranscripts(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := transcript.ModeOfPath(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
