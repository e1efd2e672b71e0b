package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for node construction and execution.
var (
	// ErrMissingStateKey indicates a required key was absent from the state.
	ErrMissingStateKey = errors.New("missing state key")

	// ErrMissingConfig indicates a required configuration entry was absent
	// at node construction.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrNoOutputKeys indicates a node was constructed without output keys.
	ErrNoOutputKeys = errors.New("node requires at least one output key")
)

// MissingConfig wraps ErrMissingConfig with the name of the absent entry.
func MissingConfig(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingConfig, name)
}

// Error type constants for classification
const (
	ErrTypeState   = "state"
	ErrTypeConfig  = "config"
	ErrTypeTimeout = "timeout"
	ErrTypeNetwork = "network"
	ErrTypeLLM     = "llm"
	ErrTypeSchema  = "schema"
	ErrTypeUnknown = "unknown"
)

// ClassifyError inspects an error and returns its type classification.
// This enables grouping errors by category in metrics.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrMissingStateKey) {
		return ErrTypeState
	}
	if errors.Is(err, ErrMissingConfig) || errors.Is(err, ErrNoOutputKeys) {
		return ErrTypeConfig
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(errStrLower, "timeout") || strings.Contains(errStrLower, "deadline exceeded") {
		return ErrTypeTimeout
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrTypeNetwork
	}
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "connection reset") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "network is unreachable") ||
		strings.Contains(errStrLower, "dial tcp") {
		return ErrTypeNetwork
	}

	if strings.Contains(errStrLower, "api error") ||
		strings.Contains(errStrLower, "rate limit") ||
		strings.Contains(errStrLower, "completion") ||
		strings.Contains(errStrLower, "ollama") ||
		strings.Contains(errStrLower, "openai") {
		return ErrTypeLLM
	}

	if strings.Contains(errStrLower, "schema") ||
		strings.Contains(errStrLower, "$ref") ||
		strings.Contains(errStrLower, "properties") {
		return ErrTypeSchema
	}

	return ErrTypeUnknown
}
