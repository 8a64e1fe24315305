package cmd

import "tailor/internal/tui"

func runTUI() error {
	return tui.Run(tui.Config{
		DataDir:    cfg.DataDir,
		Collection: cfg.Collection,
		OllamaURL:  cfg.OllamaURL,
		EmbedModel: cfg.EmbeddingModel,
		ChatModel:  cfg.ChatModel,
		TopK:       cfg.TopK,
	})
}
