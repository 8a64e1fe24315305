package generation

import (
	"fmt"

	"tailor/internal/ollama"
)

// OutputType selects what Tailor produces.
type OutputType string

const (
	OutputResume      OutputType = "resume"
	OutputCoverLetter OutputType = "cover-letter"
)

// Request carries everything one generation call needs besides the
// retrieved context.
type Request struct {
	Output         OutputType
	JobDescription string
	JobTitle       string
	Me             Contact
	To             Recipient
}

// Tailor builds the prompts for the requested output type and calls the
// chat model. Service failures are returned unmodified.
func Tailor(client *ollama.Client, model, context string, req Request) (string, error) {
	var system, user string
	switch req.Output {
	case OutputResume:
		system, user = ResumePrompt(req.JobDescription, context, req.JobTitle, req.Me)
	case OutputCoverLetter:
		to := req.To
		if to.JobTitle == "" {
			to.JobTitle = req.JobTitle
		}
		system, user = CoverLetterPrompt(req.JobDescription, context, to, req.Me)
	default:
		return "", fmt.Errorf("unknown output type %q", req.Output)
	}

	return client.Chat(model, []ollama.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}
