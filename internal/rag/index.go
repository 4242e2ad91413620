package rag

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"
)

// ErrEmptyIndex reports a retrieval attempt against an index that holds no
// chunks at all.
var ErrEmptyIndex = errors.New("retrieval index contains no chunks")

const indexSchema = `
CREATE TABLE IF NOT EXISTS chunks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source_file TEXT    NOT NULL,
	char_offset INTEGER NOT NULL,
	text        TEXT    NOT NULL,
	embedding   BLOB    NOT NULL,
	dimension   INTEGER NOT NULL,
	UNIQUE (source_file, char_offset)
);`

// Index is the persistent chunk store. It lives in a single SQLite file so
// the corpus survives process restarts without any external service.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens the index database at path, creating the file and schema on
// first use.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}
	return &Index{db: db, path: path}, nil
}

// Path returns the database file backing this index.
func (ix *Index) Path() string { return ix.path }

// Close releases the underlying database handle.
func (ix *Index) Close() error { return ix.db.Close() }

// Count returns how many chunks the index holds.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Clear removes every stored chunk so a rebuild starts from scratch.
func (ix *Index) Clear(ctx context.Context) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}

// Upsert stores chunks with their vectors in one transaction. A chunk whose
// (source_file, char_offset) already exists replaces the prior row, so
// re-indexing a transcript never duplicates it.
func (ix *Index) Upsert(ctx context.Context, chunks []Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("got %d chunks and %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (source_file, char_offset, text, embedding, dimension)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (source_file, char_offset)
		DO UPDATE SET text = excluded.text, embedding = excluded.embedding, dimension = excluded.dimension`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.SourceFile, chunk.CharOffset, chunk.Text, encodeVector(vectors[i]), len(vectors[i])); err != nil {
			tx.Rollback()
			return fmt.Errorf("store chunk %s@%d: %w", chunk.SourceFile, chunk.CharOffset, err)
		}
	}
	return tx.Commit()
}

// Search scores every stored chunk against the query vector and returns the
// top k by descending similarity. Rows whose stored dimension does not match
// the query are skipped. Searching an index with no chunks fails with
// ErrEmptyIndex; k larger than the corpus returns the whole corpus ranked.
func (ix *Index) Search(ctx context.Context, queryVec []float32, k int) ([]RetrievedChunk, error) {
	if k <= 0 {
		k = 3
	}

	rows, err := ix.db.QueryContext(ctx, `SELECT source_file, char_offset, text, embedding, dimension FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}
	defer rows.Close()

	queryNorm := vectorNorm(queryVec)
	var scored []RetrievedChunk
	total := 0
	for rows.Next() {
		total++
		var (
			chunk Chunk
			blob  []byte
			dim   int
		)
		if err := rows.Scan(&chunk.SourceFile, &chunk.CharOffset, &chunk.Text, &blob, &dim); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		if dim != len(queryVec) {
			continue
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %s@%d: %w", chunk.SourceFile, chunk.CharOffset, err)
		}
		if len(vec) != dim {
			continue
		}
		scored = append(scored, RetrievedChunk{
			Chunk: chunk,
			Score: cosineSimilarity(queryVec, vec, queryNorm),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read index rows: %w", err)
	}

	if total == 0 {
		return nil, ErrEmptyIndex
	}
	if len(scored) == 0 {
		return nil, fmt.Errorf("no stored chunks match the query embedding dimension %d; rebuild the index with the current embedding model", len(queryVec))
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

func cosineSimilarity(a, b []float32, normA float64) float64 {
	if normA == 0 {
		return 0
	}
	normB := vectorNorm(b)
	if normB == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float32) float64 {
	sum := 0.0
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	return math.Sqrt(sum)
}

// encodeVector packs a vector as little-endian float32s for BLOB storage.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}
