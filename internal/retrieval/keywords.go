package retrieval

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// vocabulary holds legislature and government job terms that boost
// retrieval when they appear verbatim in a posting.
var vocabulary = []string{
	"legislative", "constituent", "policy", "committee", "hearing", "briefing",
	"assembly", "senate", "district", "campaign", "constituency", "bill",
	"amendment", "stakeholder", "appropriations", "budget", "analysis",
	"communications", "outreach", "scheduling", "correspondence",
}

// stopwords are common words excluded from generic keyword extraction.
var stopwords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "have": true,
	"will": true, "your": true, "they": true, "when": true, "what": true,
}

var (
	bulletLineRe        = regexp.MustCompile(`(?m)^[*\-]\s*(.+)$`)
	capitalizedPhraseRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)
	lowercaseWordRe     = regexp.MustCompile(`\b([a-z]{4,})\b`)
	nonWordRe           = regexp.MustCompile(`\W+`)
)

// ExtractKeywords pulls up to max salient keywords from a job description,
// in priority order: known vocabulary terms found in the text, tokens from
// bullet lines, capitalized multi-word phrases, and generic lowercase
// words. Duplicates are suppressed by first occurrence. This is a
// deliberately lightweight heuristic, not a keyphrase model.
func ExtractKeywords(text string, max int) []string {
	if strings.TrimSpace(text) == "" || max <= 0 {
		return nil
	}
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var keywords []string

	add := func(kw string) bool {
		if seen[kw] {
			return len(keywords) < max
		}
		seen[kw] = true
		keywords = append(keywords, kw)
		return len(keywords) < max
	}

	for _, term := range vocabulary {
		if strings.Contains(lower, term) && !add(term) {
			return keywords
		}
	}

	for _, m := range bulletLineRe.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if utf8.RuneCountInString(phrase) > 60 {
			phrase = string([]rune(phrase)[:60])
		}
		words := significantWords(phrase, 5)
		for _, w := range words {
			if !add(strings.ToLower(w)) {
				return keywords
			}
		}
	}

	for _, m := range capitalizedPhraseRe.FindAllStringSubmatch(text, -1) {
		phrase := strings.ToLower(m[1])
		if len(phrase) >= 3 && len(phrase) <= 40 && !add(phrase) {
			return keywords
		}
	}

	for _, m := range lowercaseWordRe.FindAllStringSubmatch(lower, -1) {
		w := m[1]
		if !stopwords[w] && !add(w) {
			return keywords
		}
	}

	return keywords
}

// significantWords returns up to limit words of length > 2 from phrase.
func significantWords(phrase string, limit int) []string {
	var out []string
	for _, w := range nonWordRe.Split(phrase, -1) {
		if len(w) > 2 {
			out = append(out, w)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
