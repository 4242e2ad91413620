// internal/appconfig/appconfig_test.go
package appconfig

import (
	"testing"
	"time"
)

// TestConfigDefaults tests the defaulting helper methods to ensure a zero
// Config still yields a complete, working runtime configuration. It verifies
// the directory layout, the chunking geometry, retrieval and history limits,
// model identifiers, and the request timeout, then confirms that explicitly
// configured values take precedence over every default.
func TestConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.VideosPath(); got != "videos" {
		t.Fatalf("expected default video dir %q, got %q", "videos", got)
	}
	if got := cfg.AudioPath(); got != "audio" {
		t.Fatalf("expected default audio dir %q, got %q", "audio", got)
	}
	if got := cfg.TranscriptsPath(); got != "transcripts" {
		t.Fatalf("expected default transcript dir %q, got %q", "transcripts", got)
	}
	if got := cfg.IndexFilePath(); got != "index/chunks.db" {
		t.Fatalf("expected default index path %q, got %q", "index/chunks.db", got)
	}
	if got := cfg.RequestTimeout(); got != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", got)
	}
	if got := cfg.LogFilePath(); got != "parley.log" {
		t.Fatalf("expected default log file %q, got %q", "parley.log", got)
	}

	size, overlap := cfg.Chunking()
	if size != 1000 || overlap != 200 {
		t.Fatalf("expected default chunking 1000/200, got %d/%d", size, overlap)
	}
	if got := cfg.RetrievalTopK(); got != 3 {
		t.Fatalf("expected default topK of 3, got %d", got)
	}
	if got := cfg.ChatHistoryLimit(); got != 4 {
		t.Fatalf("expected default history limit of 4, got %d", got)
	}
	if got := cfg.WorkerCount(); got != 1 {
		t.Fatalf("expected default worker count of 1, got %d", got)
	}
	if got := cfg.TranscribeModelName(); got != "whisper-1" {
		t.Fatalf("expected default transcribe model %q, got %q", "whisper-1", got)
	}
	if got := cfg.EmbeddingModelName(); got != "text-embedding-3-small" {
		t.Fatalf("expected default embedding model %q, got %q", "text-embedding-3-small", got)
	}
	if got := cfg.ChatModelName(); got != "gpt-4o-mini" {
		t.Fatalf("expected default chat model %q, got %q", "gpt-4o-mini", got)
	}

	cfg = Config{
		VideoDir:       "media/in",
		ChunkSize:      400,
		ChunkOverlap:   50,
		TopK:           8,
		HistoryLimit:   10,
		Jobs:           4,
		TimeoutSeconds: 30,
	}
	if got := cfg.VideosPath(); got != "media/in" {
		t.Fatalf("expected configured video dir, got %q", got)
	}
	size, overlap = cfg.Chunking()
	if size != 400 || overlap != 50 {
		t.Fatalf("expected configured chunking 400/50, got %d/%d", size, overlap)
	}
	if got := cfg.RetrievalTopK(); got != 8 {
		t.Fatalf("expected configured topK of 8, got %d", got)
	}
	if got := cfg.ChatHistoryLimit(); got != 10 {
		t.Fatalf("expected configured history limit of 10, got %d", got)
	}
	if got := cfg.WorkerCount(); got != 4 {
		t.Fatalf("expected configured worker count of 4, got %d", got)
	}
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Fatalf("expected configured request timeout of 30s, got %v", got)
	}
}

// TestConfigHistoryLimitDisabled verifies that a negative history limit
// disables history replay instead of falling back to the default.
func TestConfigHistoryLimitDisabled(t *testing.T) {
	cfg := Config{HistoryLimit: -1}
	if got := cfg.ChatHistoryLimit(); got != 0 {
		t.Fatalf("expected disabled history limit of 0, got %d", got)
	}
}

// TestConfigChunkingNarrowWindow verifies that a small explicit chunk size
// shrinks the defaulted overlap instead of producing an unusable geometry.
func TestConfigChunkingNarrowWindow(t *testing.T) {
	cfg := Config{ChunkSize: 100}
	size, overlap := cfg.Chunking()
	if size != 100 {
		t.Fatalf("expected chunk size 100, got %d", size)
	}
	if overlap >= size {
		t.Fatalf("expected overlap below chunk size, got %d/%d", overlap, size)
	}
	if overlap != 20 {
		t.Fatalf("expected shrunken overlap of 20, got %d", overlap)
	}
}

// TestConfigValidate tests Validate against valid, conflicting, and negative
// chunk settings. A default (zero) configuration must validate cleanly, an
// overlap at or above the explicit chunk size must fail, and negative values
// must fail.
func TestConfigValidate(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on zero config failed: %v", err)
	}

	cfg = Config{ChunkSize: 100, ChunkOverlap: 100}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with overlap equal to size should have failed")
	}

	cfg = Config{ChunkSize: 100, ChunkOverlap: 250}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with overlap above size should have failed")
	}

	cfg = Config{ChunkSize: -10}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with negative chunk size should have failed")
	}

	cfg = Config{TopK: -2}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with negative topK should have failed")
	}
}
