package rag

import "testing"

func TestChunkerWindows(t *testing.T) {
	chunker, err := NewChunker(10, 3)
	if err != nil {
		t.Fatalf("NewChunker returned error: %v", err)
	}

	chunks := chunker.Chunk("talk.json", "abcdefghijklmno")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "abcdefghij" || chunks[0].CharOffset != 0 {
		t.Fatalf("unexpected first chunk: %+v", chunks[0])
	}
	if chunks[1].Text != "hijklmno" || chunks[1].CharOffset != 7 {
		t.Fatalf("unexpected second chunk: %+v", chunks[1])
	}
	for i, c := range chunks {
		if c.SourceFile != "talk.json" {
			t.Fatalf("chunk %d lost its source: %+v", i, c)
		}
	}
}

func TestChunkerShortText(t *testing.T) {
	chunker, err := NewChunker(1000, 200)
	if err != nil {
		t.Fatalf("NewChunker returned error: %v", err)
	}

	chunks := chunker.Chunk("short.json", "brief remark")
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "brief remark" || chunks[0].CharOffset != 0 {
		t.Fatalf("unexpected chunk: %+v", chunks[0])
	}

	if got := chunker.Chunk("empty.json", ""); got != nil {
		t.Fatalf("expected no chunks for empty text, got %d", len(got))
	}
}

func TestChunkerRuneBoundaries(t *testing.T) {
	chunker, err := NewChunker(4, 1)
	if err != nil {
		t.Fatalf("NewChunker returned error: %v", err)
	}

	chunks := chunker.Chunk("jp.json", "こんにちは世界")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "こんにち" || chunks[0].CharOffset != 0 {
		t.Fatalf("unexpected first chunk: %+v", chunks[0])
	}
	if chunks[1].Text != "ちは世界" || chunks[1].CharOffset != 3 {
		t.Fatalf("unexpected second chunk: %+v", chunks[1])
	}
}

func TestChunkerDeterministic(t *testing.T) {
	chunker, err := NewChunker(10, 3)
	if err != nil {
		t.Fatalf("NewChunker returned error: %v", err)
	}

	text := "the quick brown fox jumps over the lazy dog"
	first := chunker.Chunk("a.json", text)
	second := chunker.Chunk("a.json", text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// TestChunkerRoundTrip checks that dropping each later chunk's overlapping
// prefix reassembles the original text exactly.
func TestChunkerRoundTrip(t *testing.T) {
	const overlap = 3
	chunker, err := NewChunker(10, overlap)
	if err != nil {
		t.Fatalf("NewChunker returned error: %v", err)
	}

	text := "spoken words become searchable chunks with stable offsets"
	chunks := chunker.Chunk("talk.json", text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	rebuilt := chunks[0].Text
	for _, c := range chunks[1:] {
		runes := []rune(c.Text)
		rebuilt += string(runes[overlap:])
	}
	if rebuilt != text {
		t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", text, rebuilt)
	}
}

func TestNewChunkerRejectsBadGeometry(t *testing.T) {
	if _, err := NewChunker(0, 0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := NewChunker(10, -1); err == nil {
		t.Fatal("expected error for negative overlap")
	}
	if _, err := NewChunker(10, 10); err == nil {
		t.Fatal("expected error for overlap equal to size")
	}
	if _, err := NewChunker(10, 15); err == nil {
		t.Fatal("expected error for overlap above size")
	}
}
