// Package ollama is a thin client for the two external collaborators the
// pipeline depends on: the /api/embed embedding service and the /api/chat
// generation service. Failures are returned unmodified; retry and backoff
// are the caller's concern.
package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to one Ollama instance. Methods take the model name so the
// same client can serve both embedding and generation calls.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the given base URL, falling back to the local
// default when empty.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Embed sends a batch of texts to the embedding service and returns one
// vector per input, in input order.
func (c *Client) Embed(model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var result embedResponse
	if err := c.post("/api/embed", embedRequest{Model: model, Input: texts}, &result); err != nil {
		return nil, err
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}
	return result.Embeddings, nil
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// Chat sends a conversation to the generation service and returns the
// assistant's response text.
func (c *Client) Chat(model string, messages []Message) (string, error) {
	var result chatResponse
	if err := c.post("/api/chat", chatRequest{Model: model, Messages: messages, Stream: false}, &result); err != nil {
		return "", err
	}
	return result.Message.Content, nil
}

// Model represents a model returned by /api/tags.
type Model struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

// ListModels returns the models available on the instance.
func (c *Client) ListModels() ([]Model, error) {
	resp, err := c.client.Get(c.baseURL + "/api/tags")
	if err != nil {
		return nil, fmt.Errorf("connect to ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama /api/tags returned %d", resp.StatusCode)
	}
	var result tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}
	return result.Models, nil
}

func (c *Client) post(path string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ollama %s request: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama %s returned %d: %s", path, resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Embedder binds a client and model into the single-method interface the
// vector store consumes.
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates an Embedder for the given model.
func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// Model returns the configured embedding model name.
func (e *Embedder) Model() string { return e.model }

// Embed embeds a batch of texts with the bound model.
func (e *Embedder) Embed(texts []string) ([][]float32, error) {
	return e.client.Embed(e.model, texts)
}
