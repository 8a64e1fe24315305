// Package sanitizer strips LLM meta-commentary and office-specific leakage
// from resume-type documents before they are chunked and indexed. Tailored
// resumes that came out of a model often carry "Changes Made" sections,
// framing lines, and target-office phrases that poison retrieval.
package sanitizer

import (
	"regexp"
	"strings"
)

// cutSectionHeaders mark the start of trailing meta sections; the matching
// line and everything after it is discarded.
var cutSectionHeaders = compile([]string{
	`^\s*\*\*?\s*Changes Made\s*:?\s*\*?\*?\s*$`,
	`^\s*\*\*?\s*Workspace Suggestions\s*:?\s*\*?\*?\s*$`,
	`^\s*Changes Made\s*:?\s*$`,
	`^\s*Workspace Suggestions\s*:?\s*$`,
})

// dropLinePatterns match model framing and application-specific targeting
// lines that should never reach the index.
var dropLinePatterns = compile([]string{
	`^\s*Based on the provided resume\b.*$`,
	`^\s*Here is (an?|the)\b.*(resume|cover letter)\b.*$`,
	`^\s*I've made the necessary changes\b.*$`,
	`^\s*Here's the optimized resume\b.*$`,
	`^\s*This (directory|file) contains\b.*$`,
	`^\s*I am excited to apply for\b.*$`,
	`^\s*I am applying for\b.*$`,
	`^\s*optimized it for\b.*\b(Office of|Assemblymember|Senator)\b.*$`,
	`^\s*optimized resume\b.*\b(Office of|Assemblymember|Senator)\b.*$`,
})

// sectionStartHints recognize the first real resume section so a long
// preamble can be skipped.
var sectionStartHints = compile([]string{
	`^\s*\*\*Summary\*\*\s*:\s*$`,
	`^\s*Summary\s*:\s*$`,
	`^\s*\*\*Experience\*\*\s*:\s*$`,
	`^\s*Experience\s*:\s*$`,
	`^\s*\*\*Education\*\*\s*:\s*$`,
	`^\s*Education\s*:\s*$`,
	`^\s*\*\*Skills\*\*\s*:\s*$`,
	`^\s*Skills\s*:\s*$`,
})

// boldNameLine matches a short bold-only line, typically the candidate name
// at the top of a resume.
var boldNameLine = regexp.MustCompile(`^\s*\*\*[^*]{3,}\*\*\s*$`)

// preambleScanLimit caps how far into the document the section scan looks.
const preambleScanLimit = 60

// sectionLeadIn is how many lines of context to keep before a matched
// section header.
const sectionLeadIn = 2

func compile(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Sanitize returns cleaned resume text suitable for chunking and retrieval.
// It never fails; malformed input just yields a possibly-empty result.
func Sanitize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	lines := strings.Split(text, "\n")

	// Cut off everything from the first meta-section header on.
	kept := lines[:0:0]
	for _, line := range lines {
		if matchesAny(line, cutSectionHeaders) {
			break
		}
		kept = append(kept, line)
	}

	// Drop known meta and application lines.
	filtered := kept[:0:0]
	for _, line := range kept {
		if matchesAny(line, dropLinePatterns) {
			continue
		}
		filtered = append(filtered, line)
	}

	// Skip a long preamble down to the first likely resume section.
	start := 0
	limit := len(filtered)
	if limit > preambleScanLimit {
		limit = preambleScanLimit
	}
	for i := 0; i < limit; i++ {
		if matchesAny(filtered[i], sectionStartHints) {
			start = i - sectionLeadIn
			if start < 0 {
				start = 0
			}
			break
		}
		if boldNameLine.MatchString(filtered[i]) {
			start = i
			break
		}
	}
	filtered = filtered[start:]

	// Collapse runs of blank lines to at most two and right-trim.
	var out []string
	blankRun := 0
	for _, line := range filtered {
		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun <= 2 {
				out = append(out, "")
			}
			continue
		}
		blankRun = 0
		out = append(out, strings.TrimRight(line, " \t\r"))
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
