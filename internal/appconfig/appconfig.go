// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/parley.json"
	// defaultRequestTimeout is the default timeout for hosted backend requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultChunkSize is the window width, in characters, applied when the config omits chunkSize.
	defaultChunkSize = 1000
	// defaultChunkOverlap is the character overlap between adjacent windows.
	defaultChunkOverlap = 200
	// defaultTopK is how many chunks retrieval returns when the config omits topK.
	defaultTopK = 3
	// defaultHistoryLimit caps how many prior chat messages are replayed into each prompt.
	defaultHistoryLimit = 4
	// defaultContextTokens bounds how much retrieved context a prompt may carry.
	defaultContextTokens = 2000
	// defaultTranscribeModel is the hosted recognition model used when the config omits one.
	defaultTranscribeModel = "whisper-1"
	// defaultEmbeddingModel is the embedding model used when the config omits one.
	defaultEmbeddingModel = "text-embedding-3-small"
	// defaultChatModel is the chat completion model used when the config omits one.
	defaultChatModel = "gpt-4o-mini"
)

// Config represents the top-level application configuration.
type Config struct {
	VideoDir         string `json:"videoDir,omitempty"`
	AudioDir         string `json:"audioDir,omitempty"`
	TranscriptDir    string `json:"transcriptDir,omitempty"`
	IndexPath        string `json:"indexPath,omitempty"`
	DiarizerURL      string `json:"diarizerUrl,omitempty"`
	TranscribeModel  string `json:"transcribeModel,omitempty"`
	EmbeddingModel   string `json:"embeddingModel,omitempty"`
	ChatModel        string `json:"chatModel,omitempty"`
	VocabularyPrompt string `json:"vocabularyPrompt,omitempty"`
	ChunkSize        int    `json:"chunkSize,omitempty"`
	ChunkOverlap     int    `json:"chunkOverlap,omitempty"`
	TopK             int    `json:"topK,omitempty"`
	ContextTokens    int    `json:"contextTokens,omitempty"`
	HistoryLimit     int    `json:"historyLimit,omitempty"`
	Jobs             int    `json:"jobs,omitempty"`
	TimeoutSeconds   int    `json:"timeout,omitempty"`
	LogFile          string `json:"logFile,omitempty"`
	Debug            bool   `json:"debug"`
	ConfigPath       string `json:"-"`
}

// VideosPath returns the directory that holds fetched source videos.
func (c Config) VideosPath() string {
	if dir := strings.TrimSpace(c.VideoDir); dir != "" {
		return dir
	}
	return "videos"
}

// AudioPath returns the directory that holds extracted audio files.
func (c Config) AudioPath() string {
	if dir := strings.TrimSpace(c.AudioDir); dir != "" {
		return dir
	}
	return "audio"
}

// TranscriptsPath returns the directory that holds generated transcripts.
func (c Config) TranscriptsPath() string {
	if dir := strings.TrimSpace(c.TranscriptDir); dir != "" {
		return dir
	}
	return "transcripts"
}

// IndexFilePath returns the path of the retrieval index database.
func (c Config) IndexFilePath() string {
	if path := strings.TrimSpace(c.IndexPath); path != "" {
		return path
	}
	return "index/chunks.db"
}

// RequestTimeout returns the timeout duration for backend requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "parley.log"
}

// Chunking returns the effective chunk width and overlap in characters.
func (c Config) Chunking() (int, int) {
	size := c.ChunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	overlap := c.ChunkOverlap
	if overlap <= 0 {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}
	return size, overlap
}

// RetrievalTopK returns how many chunks a query retrieves.
func (c Config) RetrievalTopK() int {
	if c.TopK <= 0 {
		return defaultTopK
	}
	return c.TopK
}

// ContextTokenBudget returns the token budget for retrieved context in each prompt.
func (c Config) ContextTokenBudget() int {
	if c.ContextTokens <= 0 {
		return defaultContextTokens
	}
	return c.ContextTokens
}

// ChatHistoryLimit returns the configured number of prior messages carried into each prompt.
func (c Config) ChatHistoryLimit() int {
	if c.HistoryLimit < 0 {
		return 0
	}
	if c.HistoryLimit == 0 {
		return defaultHistoryLimit
	}
	return c.HistoryLimit
}

// WorkerCount returns how many files a batch stage processes concurrently.
func (c Config) WorkerCount() int {
	if c.Jobs <= 0 {
		return 1
	}
	return c.Jobs
}

// TranscribeModelName returns the recognition model identifier.
func (c Config) TranscribeModelName() string {
	if m := strings.TrimSpace(c.TranscribeModel); m != "" {
		return m
	}
	return defaultTranscribeModel
}

// EmbeddingModelName returns the embedding model identifier.
func (c Config) EmbeddingModelName() string {
	if m := strings.TrimSpace(c.EmbeddingModel); m != "" {
		return m
	}
	return defaultEmbeddingModel
}

// ChatModelName returns the chat completion model identifier.
func (c Config) ChatModelName() string {
	if m := strings.TrimSpace(c.ChatModel); m != "" {
		return m
	}
	return defaultChatModel
}

// Validate reports configuration values that cannot produce a working pipeline.
func (c Config) Validate() error {
	if c.ChunkSize < 0 || c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk settings must not be negative (chunkSize=%d, chunkOverlap=%d)", c.ChunkSize, c.ChunkOverlap)
	}
	if c.ChunkSize > 0 && c.ChunkOverlap > 0 && c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunkOverlap (%d) must be smaller than chunkSize (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK < 0 {
		return fmt.Errorf("topK must not be negative, got %d", c.TopK)
	}
	return nil
}
