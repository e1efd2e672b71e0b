// Package schema describes target output schemas and reduces them to the
// compact form interpolated into prompts.
package schema

import (
	"encoding/json"
	"fmt"
)

// Descriptor exposes a JSON-schema-style description of a target output
// schema. Nodes call Schema() once per execution and never retain the result.
type Descriptor interface {
	Schema() map[string]any
}

// Definition is a minimal JSON-schema object sufficient to describe
// extraction targets. It implements Descriptor.
type Definition struct {
	Title       string                 `json:"title,omitempty"`
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*Definition `json:"properties,omitempty"`
	Items       *Definition            `json:"items,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Ref         string                 `json:"$ref,omitempty"`
	Defs        map[string]*Definition `json:"$defs,omitempty"`
}

// Schema returns the definition as a generic map, the form consumed by
// schema transforms. Definition holds only marshalable fields, so a
// round-trip failure indicates a programming error and panics.
func (d *Definition) Schema() map[string]any {
	raw, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("schema: marshal definition: %v", err))
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("schema: unmarshal definition: %v", err))
	}
	return out
}
