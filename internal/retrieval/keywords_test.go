package retrieval

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

const samplePosting = `Legislative Assistant

The Office seeks a motivated assistant.

- Draft correspondence for the Senator
- Track committee hearings and prepare briefings
`

func TestExtractKeywordsVocabularyFirst(t *testing.T) {
	keywords := ExtractKeywords(samplePosting, 25)

	assert.Contains(t, keywords, "legislative")
	assert.Contains(t, keywords, "committee")
	assert.Contains(t, keywords, "correspondence")
	assert.Contains(t, keywords, "hearing")

	// Vocabulary hits come before bullet-derived tokens.
	assert.Less(t, indexOf(keywords, "legislative"), indexOf(keywords, "draft"))
}

func TestExtractKeywordsBulletTokens(t *testing.T) {
	keywords := ExtractKeywords(samplePosting, 25)
	assert.Contains(t, keywords, "draft")
	assert.Contains(t, keywords, "senator")
}

func TestExtractKeywordsCapitalizedPhrases(t *testing.T) {
	keywords := ExtractKeywords(samplePosting, 25)
	assert.Contains(t, keywords, "legislative assistant")
}

func TestExtractKeywordsNoDuplicates(t *testing.T) {
	keywords := ExtractKeywords(samplePosting, 25)
	seen := map[string]bool{}
	for _, kw := range keywords {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
}

func TestExtractKeywordsHonorsMax(t *testing.T) {
	keywords := ExtractKeywords(samplePosting, 3)
	assert.Len(t, keywords, 3)
}

func TestExtractKeywordsEmpty(t *testing.T) {
	assert.Nil(t, ExtractKeywords("", 10))
	assert.Nil(t, ExtractKeywords("   ", 10))
	assert.Nil(t, ExtractKeywords(samplePosting, 0))
}

func TestExtractKeywordsStopwordsExcluded(t *testing.T) {
	keywords := ExtractKeywords("they will work with your team on policy", 25)
	assert.Contains(t, keywords, "policy")
	assert.NotContains(t, keywords, "they")
	assert.NotContains(t, keywords, "will")
	assert.NotContains(t, keywords, "with")
}

func TestExtractKeywordsMultibyteBullet(t *testing.T) {
	// A bullet longer than the 60-character window whose cut point falls
	// inside multibyte text must not yield mangled keywords.
	line := "- Compiled " + strings.Repeat("é", 55) + " summaries for the committee"
	keywords := ExtractKeywords(line, 25)
	assert.Contains(t, keywords, "compiled")
	for _, kw := range keywords {
		assert.True(t, utf8.ValidString(kw), "keyword %q is not valid UTF-8", kw)
	}
}

func TestAugmentQuery(t *testing.T) {
	got := AugmentQuery(samplePosting)
	assert.True(t, strings.HasPrefix(got, samplePosting))
	assert.Contains(t, got, "\n\nKeywords for matching: ")
	assert.Contains(t, got, "legislative")
}

func TestAugmentQueryNoKeywords(t *testing.T) {
	assert.Equal(t, "?!", AugmentQuery("?!"))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return len(list)
}
