package main

import (
	"github.com/joho/godotenv"

	"tailor/cmd"
)

func main() {
	// Best-effort: local .env can hold OLLAMA_BASE_URL and friends.
	_ = godotenv.Load()
	cmd.Execute()
}
