// Package llm provides Ollama LLM client implementation
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaClient implements Client using a local Ollama API
type OllamaClient struct {
	baseURL string
	model   string
	format  string
	client  *http.Client
}

// NewOllamaClient creates a new Ollama LLM client
// baseURL is typically "http://localhost:11434"
// model is the LLM model name, e.g. "mistral"
func NewOllamaClient(baseURL, model string) *OllamaClient {
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 300 * time.Second, // 5 minutes for slow local models
		},
	}
}

// ForceJSONFormat pins the response format of every subsequent completion to
// JSON. Implements JSONFormatCapable.
func (c *OllamaClient) ForceJSONFormat() {
	c.format = "json"
}

// Format returns the currently pinned response format; empty means free text.
func (c *OllamaClient) Format() string {
	return c.format
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete sends a prompt to the LLM and returns the raw completion text.
// Honors the pinned response format when one was forced.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, c.format)
}

// CompleteWithSchema sends a prompt in JSON mode and unmarshals the response into out
func (c *OllamaClient) CompleteWithSchema(ctx context.Context, prompt string, out any) error {
	response, err := c.generate(ctx, prompt, "json")
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(stripMarkdownCodeFence(response)), out); err != nil {
		return fmt.Errorf("unmarshal response: %w (response: %s)", err, response)
	}

	return nil
}

func (c *OllamaClient) generate(ctx context.Context, prompt, format string) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: format,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, string(body))
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return result.Response, nil
}
