// Package store persists chunk text, metadata, and embeddings for the
// personal document corpus, and serves cosine-ranked similarity search.
//
// A collection is persisted as two artifacts: <name>.db holds the native
// sqlite-vec index, <name>_meta.json holds the parallel chunk and metadata
// lists. Both must be present to load; otherwise the store starts empty.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Well-known metadata keys.
const (
	KeySource     = "source"
	KeyDocType    = "doc_type"
	KeyChunkIndex = "chunk_index"
	KeySanitized  = "sanitized"
)

// Document type tags used for filtered retrieval.
const (
	DocTypeResume     = "resume"
	DocTypeExperience = "experience"
	DocTypeBook       = "book"
)

const (
	// DefaultBatchSize bounds the size of a single embedding request.
	DefaultBatchSize = 32
	// DefaultTopK is the fallback result count for Search.
	DefaultTopK = 12

	// filterOverfetch is how many times topK to fetch before applying a
	// doc-type filter, so excluded types don't starve the result set.
	filterOverfetch = 4
)

// ErrDimensionMismatch is returned when an embedding's width differs from
// the width fixed at first insertion.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
}

// Result is a retrieved chunk with its metadata and cosine distance
// (1 − cosine similarity; lower is more similar).
type Result struct {
	Content  string
	Meta     Metadata
	Distance float64
}

// Store owns the three parallel collections (chunk texts, metadata,
// vector index) and is their sole mutator. It assumes a single logical
// writer; it is not safe for concurrent mutation.
type Store struct {
	embedder Embedder
	dbPath   string
	metaPath string

	db     *sql.DB
	dim    int
	chunks []string
	metas  []Metadata
}

// metaRecord is the on-disk shape of the JSON sidecar.
type metaRecord struct {
	Chunks    []string   `json:"chunks"`
	Metadatas []Metadata `json:"metadatas"`
}

// Open loads the named collection from dir, creating dir if needed.
// A missing or corrupt file pair degrades to an empty store.
func Open(dir, collection string, emb Embedder) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	s := &Store{
		embedder: emb,
		dbPath:   filepath.Join(dir, collection+".db"),
		metaPath: filepath.Join(dir, collection+"_meta.json"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if !fileExists(s.dbPath) || !fileExists(s.metaPath) {
		// No partial load: a lone survivor is stale state.
		s.removeFiles()
		return nil
	}

	data, err := os.ReadFile(s.metaPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.metaPath, err)
	}
	var rec metaRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt sidecar: treat the store as uninitialized.
		s.removeFiles()
		return nil
	}
	if len(rec.Chunks) != len(rec.Metadatas) {
		s.removeFiles()
		return nil
	}

	db, err := openDB(s.dbPath)
	if err != nil {
		return fmt.Errorf("open index db: %w", err)
	}

	var dim int
	err = db.QueryRow("SELECT value FROM index_meta WHERE key = 'dim'").Scan(&dim)
	if err != nil || dim <= 0 {
		db.Close()
		s.removeFiles()
		return nil
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM vec_chunks").Scan(&n); err != nil || n != len(rec.Chunks) {
		db.Close()
		s.removeFiles()
		return nil
	}

	s.db = db
	s.dim = dim
	s.chunks = rec.Chunks
	s.metas = rec.Metadatas
	return nil
}

// AddChunks embeds and stores the given chunks with their metadata.
// Embeddings are requested in sequential batches of batchSize,
// L2-normalized, and appended to all three collections; the full state is
// then persisted. The first call fixes the index dimensionality. Returns
// the number of chunks added; an empty input returns 0 without contacting
// the embedding service.
func (s *Store) AddChunks(chunks []string, metas []Metadata, batchSize int) (int, error) {
	if len(chunks) != len(metas) {
		return 0, fmt.Errorf("mismatched chunks (%d) and metadatas (%d)", len(chunks), len(metas))
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		embs, err := s.embedder.Embed(chunks[i:end])
		if err != nil {
			return 0, fmt.Errorf("embed chunks %d-%d: %w", i, end, err)
		}
		if len(embs) != end-i {
			return 0, fmt.Errorf("expected %d embeddings, got %d", end-i, len(embs))
		}
		for _, e := range embs {
			vectors = append(vectors, Normalize(e))
		}
	}

	if s.dim == 0 {
		if len(vectors[0]) == 0 {
			return 0, fmt.Errorf("embedding service returned empty vectors")
		}
		s.dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != s.dim {
			return 0, fmt.Errorf("%w: chunk %d has width %d, index has %d",
				ErrDimensionMismatch, i, len(v), s.dim)
		}
	}

	if err := s.ensureIndex(); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT INTO vec_chunks (rowid, embedding) VALUES (?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	base := len(s.chunks)
	for i, v := range vectors {
		blob, err := sqlite_vec.SerializeFloat32(v)
		if err != nil {
			return 0, fmt.Errorf("serialize embedding %d: %w", i, err)
		}
		if _, err := stmt.Exec(base+i+1, blob); err != nil {
			return 0, fmt.Errorf("insert embedding %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	cleaned := make([]Metadata, len(metas))
	for i, m := range metas {
		if m == nil {
			m = Metadata{}
		}
		cleaned[i] = m.Clone()
	}
	s.chunks = append(s.chunks, chunks...)
	s.metas = append(s.metas, cleaned...)

	if err := s.saveMeta(); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Search embeds the query and returns up to topK chunks ranked by cosine
// distance. When includeDocTypes is non-empty, results are restricted to
// those doc types. An empty store returns no results.
func (s *Store) Search(query string, topK int, includeDocTypes []string) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if s.db == nil || len(s.chunks) == 0 {
		return nil, nil
	}

	embs, err := s.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embs) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(embs))
	}
	vec := Normalize(embs[0])
	if len(vec) != s.dim {
		return nil, fmt.Errorf("%w: query has width %d, index has %d",
			ErrDimensionMismatch, len(vec), s.dim)
	}

	var allowed map[string]bool
	fetchK := topK
	if len(includeDocTypes) > 0 {
		allowed = make(map[string]bool, len(includeDocTypes))
		for _, t := range includeDocTypes {
			allowed[t] = true
		}
		fetchK = topK * filterOverfetch
	}
	if fetchK > len(s.chunks) {
		fetchK = len(s.chunks)
	}

	blob, err := sqlite_vec.SerializeFloat32(vec)
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}
	rows, err := s.db.Query(`
		SELECT rowid, distance
		FROM vec_chunks
		WHERE embedding MATCH ?
		ORDER BY distance
		LIMIT ?
	`, blob, fetchK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var rowid int64
		var distance float64
		if err := rows.Scan(&rowid, &distance); err != nil {
			return nil, err
		}
		pos := int(rowid) - 1
		if pos < 0 || pos >= len(s.chunks) {
			continue
		}
		meta := s.metas[pos]
		if allowed != nil && !allowed[meta.StringOr(KeyDocType, "")] {
			continue
		}
		results = append(results, Result{
			Content:  s.chunks[pos],
			Meta:     meta,
			Distance: distance,
		})
		if len(results) >= topK {
			break
		}
	}
	return results, rows.Err()
}

// Clear discards all state and removes both persisted artifacts.
// Subsequent operations start from an empty store.
func (s *Store) Clear() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.removeFiles()
	s.dim = 0
	s.chunks = nil
	s.metas = nil
	return nil
}

// Count returns the number of stored chunks.
func (s *Store) Count() int { return len(s.chunks) }

// Dimension returns the fixed embedding width, or 0 before first insertion.
func (s *Store) Dimension() int { return s.dim }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ensureIndex opens the database and creates the vector table sized to the
// fixed dimension. Idempotent after the first call.
func (s *Store) ensureIndex() error {
	if s.db != nil {
		return nil
	}
	db, err := openDB(s.dbPath)
	if err != nil {
		return fmt.Errorf("open index db: %w", err)
	}
	ddl := fmt.Sprintf(`
CREATE VIRTUAL TABLE IF NOT EXISTS vec_chunks USING vec0(
    embedding float[%d] distance_metric=cosine
);

CREATE TABLE IF NOT EXISTS index_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`, s.dim)
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return fmt.Errorf("init index schema: %w", err)
	}
	_, err = db.Exec(
		"INSERT INTO index_meta (key, value) VALUES ('dim', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.dim,
	)
	if err != nil {
		db.Close()
		return fmt.Errorf("record index dimension: %w", err)
	}
	s.db = db
	return nil
}

// saveMeta rewrites the JSON sidecar with the full chunk and metadata
// lists. Durability of an add is only guaranteed once AddChunks returns.
func (s *Store) saveMeta() error {
	rec := metaRecord{Chunks: s.chunks, Metadatas: s.metas}
	if rec.Chunks == nil {
		rec.Chunks = []string{}
	}
	if rec.Metadatas == nil {
		rec.Metadatas = []Metadata{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.metaPath, err)
	}
	return nil
}

func (s *Store) removeFiles() {
	os.Remove(s.dbPath)
	os.Remove(s.metaPath)
}

func openDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite3", path+"?_journal_mode=WAL")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
