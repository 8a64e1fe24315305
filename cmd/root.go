package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tailor/internal/config"
	"tailor/internal/ollama"
	"tailor/internal/store"
)

var (
	flagConfig     string
	flagData       string
	flagCollection string
	flagOllama     string
	flagModel      string
	flagChatModel  string
	flagVerbose    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor resumes and cover letters to job postings with local RAG",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "data directory for the index (default .tailor)")
	rootCmd.PersistentFlags().StringVar(&flagCollection, "collection", "", "collection name (default resume_rag)")
	rootCmd.PersistentFlags().StringVar(&flagOllama, "ollama", "", "ollama base URL (default http://localhost:11434)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "embedding model (default nomic-embed-text)")
	rootCmd.PersistentFlags().StringVar(&flagChatModel, "chat-model", "", "generative model (default llama3.2)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() error {
	path := flagConfig
	if path == "" {
		path = "config.yaml"
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if flagData != "" {
		c.DataDir = flagData
	}
	if flagCollection != "" {
		c.Collection = flagCollection
	}
	if flagOllama != "" {
		c.OllamaURL = flagOllama
	}
	if flagModel != "" {
		c.EmbeddingModel = flagModel
	}
	if flagChatModel != "" {
		c.ChatModel = flagChatModel
	}
	cfg = c
	return nil
}

// newLogger builds a console logger; warnings and up unless --verbose.
func newLogger() *zap.Logger {
	zc := zap.NewDevelopmentConfig()
	if flagVerbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newClient() *ollama.Client {
	return ollama.New(cfg.OllamaURL)
}

// openStore opens the configured collection with an embedder bound to the
// configured model.
func openStore(client *ollama.Client) (*store.Store, error) {
	return store.Open(cfg.DataDir, cfg.Collection, ollama.NewEmbedder(client, cfg.EmbeddingModel))
}
