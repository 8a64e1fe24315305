// Package ingest wires the loader, chunker, and vector store into the
// single-writer ingestion pass: scan a corpus directory, chunk every
// loaded document, and index the chunks in one add.
package ingest

import (
	"go.uber.org/zap"

	"tailor/internal/chunker"
	"tailor/internal/loader"
	"tailor/internal/store"
)

// Options configures one ingestion pass.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

// Stats reports the outcome of an ingestion pass.
type Stats struct {
	FilesLoaded  int
	FilesSkipped int
	Chunks       int
}

// Run scans root, chunks the loaded documents, and adds the chunks to the
// store. Per-file load failures are logged and skipped; embedding or
// storage failures abort the pass.
func Run(root string, st *store.Store, opts Options, logger *zap.Logger) (*Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := opts.ChunkSize
	if size <= 0 {
		size = chunker.DefaultSize
	}
	overlap := opts.ChunkOverlap
	if overlap < 0 {
		overlap = chunker.DefaultOverlap
	}

	docs, reports := loader.ScanDir(root, logger)
	chunks := chunker.ChunkDocuments(docs, size, overlap)

	var texts []string
	var metas []store.Metadata
	for c := range chunks {
		texts = append(texts, c.Text)
		metas = append(metas, c.Meta)
	}
	report := <-reports

	added, err := st.AddChunks(texts, metas, opts.BatchSize)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		FilesLoaded:  report.Loaded,
		FilesSkipped: len(report.Skipped),
		Chunks:       added,
	}
	logger.Info("ingestion complete",
		zap.Int("files_loaded", stats.FilesLoaded),
		zap.Int("files_skipped", stats.FilesSkipped),
		zap.Int("chunks", stats.Chunks),
	)
	return stats, nil
}
