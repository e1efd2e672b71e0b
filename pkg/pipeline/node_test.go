package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// captureHandler is a slog.Handler that captures log records for assertions.
type captureHandler struct {
	records []slog.Record
	mu      sync.Mutex
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(_ string) slog.Handler      { return h }

func TestBaseNodeLogStart_EmitsNodeName(t *testing.T) {
	h := &captureHandler{}
	base := NewBaseNode("PromptRefiner", "node", "user_prompt", []string{"refined_prompt"}, slog.New(h))

	execID := base.LogStart(context.Background())
	if execID == "" {
		t.Fatal("expected a non-empty execution id")
	}

	if len(h.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(h.records))
	}

	var gotNode string
	h.records[0].Attrs(func(a slog.Attr) bool {
		if a.Key == "node" {
			gotNode = a.Value.String()
		}
		return true
	})
	if gotNode != "PromptRefiner" {
		t.Errorf("expected node attr PromptRefiner, got %q", gotNode)
	}
}

func TestBaseNodeLogStart_NilLoggerSafe(t *testing.T) {
	base := NewBaseNode("PromptRefiner", "node", "user_prompt", []string{"refined_prompt"}, nil)

	// Must not panic and must still produce an execution id.
	if execID := base.LogStart(context.Background()); execID == "" {
		t.Fatal("expected a non-empty execution id with nil logger")
	}
}

func TestBaseNodeAccessors(t *testing.T) {
	base := NewBaseNode("PromptRefiner", "node", "user_prompt", []string{"refined_prompt", "aux"}, nil)

	if base.Name() != "PromptRefiner" {
		t.Errorf("Name: %q", base.Name())
	}
	if base.Kind() != "node" {
		t.Errorf("Kind: %q", base.Kind())
	}
	if base.Input() != "user_prompt" {
		t.Errorf("Input: %q", base.Input())
	}
	if got := base.Outputs(); len(got) != 2 || got[0] != "refined_prompt" {
		t.Errorf("Outputs: %v", got)
	}
}
