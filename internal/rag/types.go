package rag

// Chunk is one window of transcript text destined for the retrieval index.
type Chunk struct {
	SourceFile string
	CharOffset int
	Text       string
}

// RetrievedChunk is a chunk plus similarity score.
type RetrievedChunk struct {
	Chunk Chunk
	Score float64
}
