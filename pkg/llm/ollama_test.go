package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaComplete_Success(t *testing.T) {
	var gotReq ollamaGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "plain analysis text", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral")

	result, err := client.Complete(context.Background(), "test prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result != "plain analysis text" {
		t.Errorf("unexpected completion: %q", result)
	}
	if gotReq.Format != "" {
		t.Errorf("expected free-text format by default, got %q", gotReq.Format)
	}
	if gotReq.Model != "mistral" {
		t.Errorf("expected model mistral, got %q", gotReq.Model)
	}
}

func TestOllamaComplete_ForcedJSONFormat(t *testing.T) {
	var gotReq ollamaGenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: `{"ok": true}`, Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral")
	client.ForceJSONFormat()

	if client.Format() != "json" {
		t.Fatalf("expected pinned format json, got %q", client.Format())
	}

	if _, err := client.Complete(context.Background(), "test prompt"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gotReq.Format != "json" {
		t.Errorf("expected request format json, got %q", gotReq.Format)
	}
}

func TestOllamaCompleteWithSchema_FencedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Format != "json" {
			t.Errorf("expected json format for schema completion, got %q", req.Format)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Response: "```json\n{\"name\": \"widget\"}\n```",
			Done:     true,
		})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral")

	var out struct {
		Name string `json:"name"`
	}
	if err := client.CompleteWithSchema(context.Background(), "test prompt", &out); err != nil {
		t.Fatalf("CompleteWithSchema failed: %v", err)
	}
	if out.Name != "widget" {
		t.Errorf("expected widget, got %q", out.Name)
	}
}

func TestOllamaComplete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model not loaded"))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "mistral")

	_, err := client.Complete(context.Background(), "test prompt")
	if err == nil {
		t.Fatal("expected error for 500 status, got nil")
	}
	if !strings.Contains(err.Error(), "ollama returned 500") {
		t.Errorf("expected status in error, got: %v", err)
	}
}
