// Package config holds the caller-supplied settings the pipeline consumes:
// service endpoint, model identifiers, chunking parameters, and store
// location. Values come from a YAML file with documented fallbacks; flags
// override on top.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultChatModel      = "llama3.2"
	DefaultCollection     = "resume_rag"
	DefaultDataDir        = ".tailor"
	DefaultChunkSize      = 800
	DefaultChunkOverlap   = 100
	DefaultTopK           = 12
)

// Config is the root configuration.
type Config struct {
	OllamaURL      string `yaml:"ollama_url"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	DataDir        string `yaml:"data_dir"`
	Collection     string `yaml:"collection"`
	ChunkSize      int    `yaml:"chunk_size"`
	ChunkOverlap   int    `yaml:"chunk_overlap"`
	TopK           int    `yaml:"top_k"`
}

// Default returns the built-in configuration. OLLAMA_BASE_URL in the
// environment overrides the endpoint.
func Default() *Config {
	cfg := &Config{
		OllamaURL:      "http://localhost:11434",
		EmbeddingModel: DefaultEmbeddingModel,
		ChatModel:      DefaultChatModel,
		DataDir:        DefaultDataDir,
		Collection:     DefaultCollection,
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		TopK:           DefaultTopK,
	}
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		cfg.OllamaURL = url
	}
	return cfg
}

// Load reads a config file, filling unset fields with defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = def.OllamaURL
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = def.EmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = def.ChatModel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = def.DataDir
	}
	if cfg.Collection == "" {
		cfg.Collection = def.Collection
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = def.ChunkOverlap
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
}
