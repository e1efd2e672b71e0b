package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"missing state key", fmt.Errorf("%w: %q", ErrMissingStateKey, "user_prompt"), ErrTypeState},
		{"missing config", MissingConfig("llm_model"), ErrTypeConfig},
		{"no output keys", ErrNoOutputKeys, ErrTypeConfig},
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"timeout text", errors.New("request timeout after 30s"), ErrTypeTimeout},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), ErrTypeNetwork},
		{"rate limit", errors.New("HTTP 429: rate limit exceeded"), ErrTypeLLM},
		{"no choices", errors.New("no completion choices returned"), ErrTypeLLM},
		{"ollama", errors.New("ollama returned 500: internal"), ErrTypeLLM},
		{"schema ref", errors.New("unresolved $ref \"#/$defs/Item\""), ErrTypeSchema},
		{"unknown", errors.New("something odd"), ErrTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestClassifyError_WrappedSentinelWinsOverText(t *testing.T) {
	// A wrapped sentinel takes precedence over substring heuristics.
	err := fmt.Errorf("%w: %q while building ollama prompt", ErrMissingStateKey, "user_prompt")
	assert.Equal(t, ErrTypeState, ClassifyError(err))
}
