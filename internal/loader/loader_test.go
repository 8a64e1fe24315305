package loader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailor/internal/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeDOCX(t *testing.T, path string, paragraphs ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	doc := `<?xml version="1.0"?><document><body>`
	for _, p := range paragraphs {
		doc += `<p><r><t>` + p + `</t></r></p>`
	}
	doc += `</body></document>`
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	writeFile(t, path, "  worked on the budget committee  \n")

	doc, err := Load(path, store.DocTypeExperience)
	require.NoError(t, err)
	assert.Equal(t, "worked on the budget committee", doc.Text)
	assert.Equal(t, "notes.txt", doc.Meta.StringOr(store.KeySource, ""))
	assert.Equal(t, store.DocTypeExperience, doc.Meta.StringOr(store.KeyDocType, ""))
	_, sanitized := doc.Meta[store.KeySanitized]
	assert.False(t, sanitized)
}

func TestLoadResumeSanitizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.md")
	writeFile(t, path, "**Jane Doe**\n\nExperience:\n- Drafted bills\n\nChanges Made:\n- reworded\n")

	doc, err := Load(path, store.DocTypeResume)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "Drafted bills")
	assert.NotContains(t, doc.Text, "Changes Made")

	sanitized, ok := doc.Meta[store.KeySanitized].AsBool()
	require.True(t, ok)
	assert.True(t, sanitized)
}

func TestLoadDOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letter.docx")
	writeDOCX(t, path, "Dear committee,", "I enclose my notes.")

	doc, err := Load(path, store.DocTypeExperience)
	require.NoError(t, err)
	assert.Equal(t, "Dear committee,\nI enclose my notes.", doc.Text)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xyz")
	writeFile(t, path, "whatever")

	_, err := Load(path, store.DocTypeExperience)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "resumes", "old.md"),
		"**Jane Doe**\n\nExperience:\n- Legislative work\n\nChanges Made:\n- tweaks\n")
	writeFile(t, filepath.Join(root, "experiences", "job.txt"), "ran constituent services")
	writeFile(t, filepath.Join(root, "books", "title.txt"), "a field guide to hearings")
	writeFile(t, filepath.Join(root, "experiences", "ignore.xyz"), "not a document")
	// A corrupt pdf is recorded as skipped, not fatal.
	writeFile(t, filepath.Join(root, "experiences", "broken.pdf"), "not really a pdf")

	docs, reports := ScanDir(root, nil)

	byType := map[string][]Document{}
	for doc := range docs {
		dt := doc.Meta.StringOr(store.KeyDocType, "")
		byType[dt] = append(byType[dt], doc)
	}
	rep := <-reports

	assert.Equal(t, 3, rep.Loaded)
	require.Len(t, rep.Skipped, 1)
	assert.Contains(t, rep.Skipped[0].Path, "broken.pdf")

	require.Len(t, byType[store.DocTypeResume], 1)
	assert.NotContains(t, byType[store.DocTypeResume][0].Text, "Changes Made")
	require.Len(t, byType[store.DocTypeExperience], 1)
	require.Len(t, byType[store.DocTypeBook], 1)
}

func TestScanDirEmptyFilesDropped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "blank.txt"), "   \n  ")
	writeFile(t, filepath.Join(root, "real.txt"), "content")

	docs, reports := ScanDir(root, nil)
	var loaded []Document
	for doc := range docs {
		loaded = append(loaded, doc)
	}
	rep := <-reports

	require.Len(t, loaded, 1)
	assert.Equal(t, "content", loaded[0].Text)
	assert.Equal(t, 1, rep.Loaded)
	assert.Empty(t, rep.Skipped)
}

func TestInferDocType(t *testing.T) {
	root := filepath.Join("home", "corpus")
	assert.Equal(t, store.DocTypeResume, inferDocType(root, filepath.Join(root, "resumes", "a.md")))
	assert.Equal(t, store.DocTypeExperience, inferDocType(root, filepath.Join(root, "experiences", "sub", "b.txt")))
	assert.Equal(t, store.DocTypeBook, inferDocType(root, filepath.Join(root, "books", "c.pdf")))
	assert.Equal(t, store.DocTypeExperience, inferDocType(root, filepath.Join(root, "misc", "d.txt")))
	// Files directly under the root default to experience.
	assert.Equal(t, store.DocTypeExperience, inferDocType(root, filepath.Join(root, "e.txt")))
}
