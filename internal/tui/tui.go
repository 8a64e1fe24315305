package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tailor/internal/ollama"
	"tailor/internal/store"
)

// ViewState represents which screen is active.
type ViewState int

const (
	ViewWelcome ViewState = iota
	ViewChat
)

// Config holds configuration passed from the CLI layer.
type Config struct {
	DataDir    string
	Collection string
	OllamaURL  string
	EmbedModel string
	ChatModel  string
	TopK       int
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  ViewState
	config Config
	width  int
	height int

	welcome welcomeModel
	chat    chatModel

	// st is the store opened for the chat view; Run closes it when the
	// program exits.
	st  *store.Store
	err error
}

// New creates a new TUI model with the given config.
func New(cfg Config) Model {
	return Model{
		state:  ViewWelcome,
		config: cfg,
	}
}

func (m Model) Init() tea.Cmd {
	return checkCorpus(m.config)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.state == ViewChat {
			var c tea.Cmd
			m.chat, c = m.chat.Update(msg)
			return m, c
		}
		return m, nil

	case tea.KeyMsg:
		// Global quit.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != ViewChat {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd

	switch m.state {
	case ViewWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
		if cmd != nil {
			return m, cmd
		}
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter && m.welcome.ready {
			if m.welcome.status == corpusReady {
				return m, m.transitionToChat()
			}
			// Nothing indexed yet; stay on the welcome screen.
			return m, nil
		}

	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) transitionToChat() tea.Cmd {
	client := ollama.New(m.config.OllamaURL)
	st, err := store.Open(m.config.DataDir, m.config.Collection, ollama.NewEmbedder(client, m.config.EmbedModel))
	if err != nil {
		m.err = err
		return nil
	}

	m.st = st
	m.chat = newChatModel(st, client, m.config.ChatModel, m.config.TopK)
	m.chat.initViewport(m.width, m.height)
	m.state = ViewChat

	return nil
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case ViewWelcome:
		return m.welcome.View(m.width, m.height)
	case ViewChat:
		return m.chat.View(m.width, m.height)
	}
	return ""
}

// Run starts the TUI program.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(Model); ok && m.st != nil {
		m.st.Close()
	}
	return err
}
