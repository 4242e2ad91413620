package rag

import "fmt"

// Chunker splits transcript text into overlapping character windows.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker returns a Chunker over windows of size runes that advance by
// size-overlap. The overlap must stay below the size or windows would never
// make progress.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than zero, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must be zero or greater, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Chunk windows the text, recording the rune offset of each window so a
// chunk can be traced back into its transcript. The final window may be
// shorter than size; empty text yields no chunks. Offsets and widths count
// runes, so multibyte text is never split mid-character.
func (c *Chunker) Chunk(sourceFile, text string) []Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := c.size - c.overlap

	var chunks []Chunk
	for i := 0; i < len(runes); i += step {
		end := i + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			SourceFile: sourceFile,
			CharOffset: i,
			Text:       string(runes[i:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}
