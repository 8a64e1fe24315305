// Package retrieval turns a job description into an augmented vector-store
// query and assembles the retrieved chunks into a labeled context string
// for generation.
package retrieval

import (
	"fmt"
	"strings"

	"tailor/internal/store"
)

// DefaultMaxKeywords caps keyword extraction for query augmentation.
const DefaultMaxKeywords = 25

// blockSeparator joins labeled context blocks.
const blockSeparator = "\n\n---\n\n"

// Searcher is the slice of the vector store the orchestrator needs.
type Searcher interface {
	Search(query string, topK int, includeDocTypes []string) ([]store.Result, error)
}

// Preview is a retrieved chunk reduced to what a caller displays.
type Preview struct {
	Content string
	Source  string
	DocType string
}

// Context retrieves the chunks most relevant to the query, optionally
// augmenting it with extracted keywords first, and returns the assembled
// context string plus a parallel preview list. Store errors propagate
// unchanged.
func Context(s Searcher, query string, topK int, includeDocTypes []string, augment bool) (string, []Preview, error) {
	searchQuery := query
	if augment {
		searchQuery = AugmentQuery(query)
	}

	results, err := s.Search(searchQuery, topK, includeDocTypes)
	if err != nil {
		return "", nil, err
	}

	previews := make([]Preview, 0, len(results))
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		source := r.Meta.StringOr(store.KeySource, "unknown")
		docType := r.Meta.StringOr(store.KeyDocType, "unknown")
		previews = append(previews, Preview{Content: r.Content, Source: source, DocType: docType})
		blocks = append(blocks, fmt.Sprintf("[Source: %s (%s)]\n%s", source, docType, r.Content))
	}
	return strings.Join(blocks, blockSeparator), previews, nil
}

// AugmentQuery appends a labeled keyword block to the job description so
// the otherwise purely semantic search also sees the posting's salient
// terms verbatim.
func AugmentQuery(jobDescription string) string {
	keywords := ExtractKeywords(jobDescription, DefaultMaxKeywords)
	if len(keywords) == 0 {
		return jobDescription
	}
	return jobDescription + "\n\nKeywords for matching: " + strings.Join(keywords, " ")
}
