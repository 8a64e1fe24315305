package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tailor/internal/ollama"
	"tailor/internal/store"
)

type corpusStatus int

const (
	corpusEmpty corpusStatus = iota
	corpusReady
)

type welcomeModel struct {
	status       corpusStatus
	chunks       int
	modelWarning string
	ready        bool // true once the check has completed
}

// checkCorpusMsg is sent after checking the corpus and the Ollama models.
type checkCorpusMsg struct {
	status       corpusStatus
	chunks       int
	modelWarning string
	err          error
}

func checkCorpus(cfg Config) tea.Cmd {
	return func() tea.Msg {
		client := ollama.New(cfg.OllamaURL)
		st, err := store.Open(cfg.DataDir, cfg.Collection, ollama.NewEmbedder(client, cfg.EmbedModel))
		if err != nil {
			return checkCorpusMsg{status: corpusEmpty, err: err}
		}
		chunks := st.Count()
		st.Close()

		msg := checkCorpusMsg{chunks: chunks}
		if chunks > 0 {
			msg.status = corpusReady
		}

		if warning := checkModels(client, cfg); warning != "" {
			msg.modelWarning = warning
		}
		return msg
	}
}

// checkModels verifies the configured models are pulled on the Ollama host.
func checkModels(client *ollama.Client, cfg Config) string {
	models, err := client.ListModels()
	if err != nil {
		return fmt.Sprintf("cannot reach ollama at %s", cfg.OllamaURL)
	}
	available := make(map[string]bool, len(models))
	for _, model := range models {
		available[model.Name] = true
		available[trimTag(model.Name)] = true
	}
	for _, want := range []string{cfg.EmbedModel, cfg.ChatModel} {
		if !available[want] && !available[trimTag(want)] {
			return fmt.Sprintf("model %q not found, run 'ollama pull %s'", want, want)
		}
	}
	return ""
}

// trimTag strips the ":tag" suffix so "llama3.2" matches "llama3.2:latest".
func trimTag(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i]
		}
	}
	return name
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkCorpusMsg:
		m.status = msg.status
		m.chunks = msg.chunks
		m.modelWarning = msg.modelWarning
		m.ready = true
	}
	return m, nil
}

func (m welcomeModel) View(width, height int) string {
	s := "\n"
	s += titleStyle.Render("  ◆ Tailor") + "\n"
	s += subtitleStyle.Render("  Resume and cover letter tailoring powered by your own history") + "\n\n"

	if !m.ready {
		s += dimStyle.Render("  Checking corpus...") + "\n"
		return s
	}

	switch m.status {
	case corpusReady:
		s += successStyle.Render(fmt.Sprintf("  ✓ Corpus ready (%d chunks)", m.chunks)) + "\n"
	case corpusEmpty:
		s += warnStyle.Render("  ✗ Corpus is empty") + "\n"
		s += dimStyle.Render("    Run 'tailor ingest <dir>' to index your documents, then restart.") + "\n"
	}

	if m.modelWarning != "" {
		s += warnStyle.Render("  ⚠ "+m.modelWarning) + "\n"
	}

	s += "\n"
	if m.status == corpusReady {
		s += dimStyle.Render("  Press Enter to start chatting, q to quit") + "\n"
	} else {
		s += dimStyle.Render("  Press q to quit") + "\n"
	}
	return s
}
