package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailor/internal/store"
)

// countingEmbedder returns a constant small vector per text so ingestion
// exercises the real store without a running embedding service.
type countingEmbedder struct {
	embedded int
}

func (e *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	e.embedded += len(texts)
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, float32(len(texts[i])), 0.5}
	}
	return out, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun(t *testing.T) {
	corpus := t.TempDir()
	writeFile(t, filepath.Join(corpus, "resumes", "old.md"),
		"**Jane Doe**\n\nExperience:\n- Legislative work\n\nChanges Made:\n- tweaks\n")
	writeFile(t, filepath.Join(corpus, "experiences", "job.txt"),
		strings.Repeat("ran constituent services and casework. ", 30))
	writeFile(t, filepath.Join(corpus, "experiences", "broken.pdf"), "not a pdf")

	emb := &countingEmbedder{}
	st, err := store.Open(t.TempDir(), "test", emb)
	require.NoError(t, err)
	defer st.Close()

	stats, err := Run(corpus, st, Options{ChunkSize: 200, ChunkOverlap: 20}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesLoaded)
	assert.Equal(t, 1, stats.FilesSkipped)
	assert.Greater(t, stats.Chunks, 2)
	assert.Equal(t, stats.Chunks, st.Count())
	assert.Equal(t, stats.Chunks, emb.embedded)
}

func TestRunEmptyDirectory(t *testing.T) {
	emb := &countingEmbedder{}
	st, err := store.Open(t.TempDir(), "test", emb)
	require.NoError(t, err)
	defer st.Close()

	stats, err := Run(t.TempDir(), st, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FilesLoaded)
	assert.Equal(t, 0, stats.Chunks)
	assert.Equal(t, 0, emb.embedded)
	assert.Equal(t, 0, st.Count())
}
