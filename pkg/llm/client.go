// Package llm provides interfaces and implementations for LLM completion clients
package llm

import (
	"context"
	"regexp"
	"strings"
)

// Client defines the interface for interacting with large language models
type Client interface {
	// Complete sends a prompt to the LLM and returns the raw completion text
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSchema sends a prompt and unmarshals the JSON response into out,
	// which should be a pointer to the target struct
	CompleteWithSchema(ctx context.Context, prompt string, out any) error
}

// JSONFormatCapable is implemented by clients whose response format can be
// pinned to JSON for the lifetime of the client. Local-model clients need
// this; hosted APIs enforce structure per request instead.
type JSONFormatCapable interface {
	ForceJSONFormat()
}

// stripMarkdownCodeFence removes markdown code fences from LLM responses.
// Handles formats like: ```json\n...\n``` or ```\n...\n```
func stripMarkdownCodeFence(s string) string {
	s = strings.TrimSpace(s)

	re := regexp.MustCompile("(?s)^```(?:json)?\\s*\n?(.*?)\\s*```$")
	if matches := re.FindStringSubmatch(s); len(matches) == 2 {
		return strings.TrimSpace(matches[1])
	}

	return s
}
