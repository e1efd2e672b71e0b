// Package pipeline defines the shared state and node contract for the
// extraction pipeline. Each node reads a documented set of state keys and
// writes its output keys back into the same state before handing it on.
package pipeline

import "fmt"

// Well-known state keys shared across nodes.
const (
	// StateKeyUserPrompt holds the user's natural-language extraction request.
	StateKeyUserPrompt = "user_prompt"
)

// State is the mutable key-value context threaded through pipeline nodes.
// A node mutates the state in place and returns it; the pipeline runner owns
// sequencing, so no locking is applied here.
type State map[string]any

// Clone returns a shallow copy of the state.
func (s State) Clone() State {
	clone := make(State, len(s))
	for k, v := range s {
		clone[k] = v
	}
	return clone
}

// String returns the string value stored under key.
// Returns ErrMissingStateKey (wrapped) when the key is absent, and an error
// when the value is present but not a string.
func (s State) String(key string) (string, error) {
	v, ok := s[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingStateKey, key)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("state key %q holds %T, expected string", key, v)
	}
	return str, nil
}
