// Package loader extracts plain text and metadata from the heterogeneous
// document formats that make up a personal corpus: PDF, DOCX, and plain
// text or markdown. Directory scans infer the document type from the
// top-level subfolder (resumes/, experiences/, books/).
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"tailor/internal/sanitizer"
	"tailor/internal/store"
)

// ErrUnsupportedFormat is returned by Load for unrecognized extensions.
// It is fatal to the single file, not to a directory scan.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var supportedExts = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".doc":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// Document is a loaded unit of source material: extracted text plus its
// metadata record. Immutable once produced.
type Document struct {
	Text string
	Meta store.Metadata
}

// SkipEntry records a file that a scan could not load.
type SkipEntry struct {
	Path   string
	Reason string
}

// Report summarizes a directory scan.
type Report struct {
	Loaded  int
	Skipped []SkipEntry
}

// Load extracts text from a single file and builds its metadata.
// Resume-type documents are sanitized and flagged as such.
func Load(path, docType string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx", ".doc":
		text, err = extractDOCX(path)
	case ".txt", ".md", ".markdown":
		text, err = readText(path)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Document{}, err
	}

	meta := store.Metadata{
		store.KeySource:  store.String(filepath.Base(path)),
		store.KeyDocType: store.String(docType),
	}
	text = strings.TrimSpace(text)
	if docType == store.DocTypeResume {
		text = sanitizer.Sanitize(text)
		meta[store.KeySanitized] = store.Bool(true)
	}
	return Document{Text: text, Meta: meta}, nil
}

// ScanDir walks root recursively and sends loaded documents on the first
// channel. Unsupported extensions are skipped silently; per-file load
// failures are logged and recorded but do not abort the scan. The final
// Report arrives on the second channel after the document channel closes.
func ScanDir(root string, logger *zap.Logger) (<-chan Document, <-chan Report) {
	if logger == nil {
		logger = zap.NewNop()
	}
	docs := make(chan Document, 8)
	reports := make(chan Report, 1)

	go func() {
		defer close(reports)
		defer close(docs)

		var rep Report
		absRoot, err := filepath.Abs(root)
		if err != nil {
			reports <- rep
			return
		}

		filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // skip unreadable entries, keep walking
			}
			if d.IsDir() {
				return nil
			}
			if !supportedExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			doc, err := Load(path, inferDocType(absRoot, path))
			if err != nil {
				logger.Warn("could not load document",
					zap.String("path", path),
					zap.Error(err),
				)
				rep.Skipped = append(rep.Skipped, SkipEntry{Path: path, Reason: err.Error()})
				return nil
			}
			if doc.Text == "" {
				return nil
			}
			rep.Loaded++
			docs <- doc
			return nil
		})

		reports <- rep
	}()

	return docs, reports
}

// inferDocType maps the top-level subfolder under root to a document type.
// Files elsewhere default to experience.
func inferDocType(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return store.DocTypeExperience
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return store.DocTypeExperience
	}
	switch strings.ToLower(parts[0]) {
	case "resumes":
		return store.DocTypeResume
	case "experiences":
		return store.DocTypeExperience
	case "books":
		return store.DocTypeBook
	default:
		return store.DocTypeExperience
	}
}

// readText loads a plain text or markdown file, replacing invalid UTF-8.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
