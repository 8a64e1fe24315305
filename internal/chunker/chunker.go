// Package chunker splits extracted document text into overlapping
// bounded-size chunks along natural boundaries, highest-priority first:
// paragraph breaks, line breaks, sentence ends, spaces, and finally raw
// character windows.
package chunker

import (
	"strings"
	"unicode/utf8"

	"tailor/internal/loader"
	"tailor/internal/store"
)

// Default chunking parameters.
const (
	DefaultSize    = 800
	DefaultOverlap = 100
)

// separators in priority order. The empty string marks the character
// fallback.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunk is a slice of a document's text paired with the source metadata
// plus its position within the document.
type Chunk struct {
	Text string
	Meta store.Metadata
}

// Split divides text into overlapping chunks of at most size characters.
// The trailing overlap characters of each closed chunk seed the next one.
// Every returned chunk is non-empty after trimming; a chunk built from a
// single unsplittable unit may slightly exceed size.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return split(text, size, overlap)
}

func split(text string, size, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return []string{strings.TrimSpace(text)}
	}

	for _, sep := range separators {
		parts := strings.Split(text, sep)
		if len(parts) <= 1 {
			continue
		}
		// Separators that are pure whitespace are dropped on rejoin;
		// the others stay attached to their piece.
		keepSep := sep != "\n" && sep != " "

		var chunks []string
		var current string
		currentLen := 0
		for _, part := range parts {
			piece := part
			if keepSep {
				piece += sep
			}
			pieceLen := utf8.RuneCountInString(piece)
			if currentLen+pieceLen <= size {
				current += piece
				currentLen += pieceLen
				continue
			}
			if strings.TrimSpace(current) != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}
			tail := lastRunes(current, overlap)
			current = tail + piece
			currentLen = utf8.RuneCountInString(tail) + pieceLen
		}
		if strings.TrimSpace(current) != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		return chunks
	}

	// No separator splits the text: fixed-stride character windows.
	runes := []rune(text)
	stride := size - overlap
	var chunks []string
	for i := 0; i < len(runes); i += stride {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[i:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// lastRunes returns the trailing n runes of s without breaking UTF-8
// sequences.
func lastRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := len(s)
	for n > 0 && i > 0 {
		_, w := utf8.DecodeLastRuneInString(s[:i])
		i -= w
		n--
	}
	return s[i:]
}

// ChunkDocuments lazily splits each incoming document and emits its chunks
// in order, attaching a 0-based per-document chunk_index to the source
// metadata.
func ChunkDocuments(docs <-chan loader.Document, size, overlap int) <-chan Chunk {
	out := make(chan Chunk, 16)
	go func() {
		defer close(out)
		for doc := range docs {
			for i, text := range Split(doc.Text, size, overlap) {
				meta := doc.Meta.Clone()
				meta[store.KeyChunkIndex] = store.Int(i)
				out <- Chunk{Text: text, Meta: meta}
			}
		}
	}()
	return out
}
