package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmpty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
	assert.Equal(t, "", Sanitize("   \n\t\n  "))
}

func TestSanitizeCutsMetaSection(t *testing.T) {
	text := strings.Join([]string{
		"**Jane Doe**",
		"",
		"Experience:",
		"- Built things",
		"",
		"**Changes Made:**",
		"- Emphasized leadership",
		"- Reworded the summary",
	}, "\n")

	got := Sanitize(text)
	assert.Contains(t, got, "Built things")
	assert.NotContains(t, got, "Changes Made")
	assert.NotContains(t, got, "Emphasized leadership")
}

func TestSanitizeCutsWorkspaceSuggestions(t *testing.T) {
	text := "**Jane Doe**\n\nSkills:\n- Go\n\nWorkspace Suggestions:\n- Apply early"
	got := Sanitize(text)
	assert.Contains(t, got, "Go")
	assert.NotContains(t, got, "Apply early")
}

func TestSanitizeDropsFramingLines(t *testing.T) {
	text := strings.Join([]string{
		"Here is an updated resume tailored to the posting.",
		"**Jane Doe**",
		"",
		"I am excited to apply for the Legislative Aide position.",
		"Experience:",
		"- Drafted legislation summaries",
	}, "\n")

	got := Sanitize(text)
	assert.NotContains(t, got, "Here is an")
	assert.NotContains(t, got, "excited to apply")
	assert.Contains(t, got, "Drafted legislation summaries")
}

func TestSanitizeDropsOfficeTargeting(t *testing.T) {
	text := "**Jane Doe**\n\nI've made the necessary changes and optimized it for the Office of Senator Smith.\n\nExperience:\n- Managed constituent casework"
	got := Sanitize(text)
	assert.NotContains(t, got, "Senator Smith")
	assert.Contains(t, got, "constituent casework")
}

func TestSanitizeSkipsPreamble(t *testing.T) {
	lines := []string{
		"Some chatty preamble about what follows.",
		"More preamble.",
		"A note line.",
		"Contact info below",
		"Summary:",
		"Experienced legislative staffer.",
	}
	got := Sanitize(strings.Join(lines, "\n"))

	// Keeps two lines of lead-in before the section header, drops the rest.
	require.NotEmpty(t, got)
	assert.NotContains(t, got, "Some chatty preamble")
	assert.Contains(t, got, "Contact info below")
	assert.Contains(t, got, "Summary:")
	assert.Contains(t, got, "Experienced legislative staffer.")
}

func TestSanitizeBoldNameStartsDocument(t *testing.T) {
	text := "Preamble line one.\nPreamble line two.\n**Jane Doe**\nSummary:\nStaffer."
	got := Sanitize(text)
	assert.True(t, strings.HasPrefix(got, "**Jane Doe**"), "got: %q", got)
}

func TestSanitizeCollapsesBlankRuns(t *testing.T) {
	text := "**Jane Doe**\n\n\n\n\nExperience:\n- Worked.   \n"
	got := Sanitize(text)
	assert.NotContains(t, got, "\n\n\n")
	assert.NotContains(t, got, "Worked.   ")
	assert.Contains(t, got, "- Worked.")
}

func TestSanitizeIdempotent(t *testing.T) {
	text := strings.Join([]string{
		"Here is the resume you asked for.",
		"**Jane Doe**",
		"",
		"",
		"",
		"Experience:",
		"- Did work",
		"",
		"Changes Made:",
		"- tweaks",
	}, "\n")

	once := Sanitize(text)
	twice := Sanitize(once)
	assert.Equal(t, once, twice)
}
