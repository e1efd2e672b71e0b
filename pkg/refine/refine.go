// Package refine implements the PromptRefiner pipeline node. It asks an LLM
// for a textual analysis mapping the user's extraction request onto the
// target output schema, and writes that analysis into the shared state for
// downstream nodes.
package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/scrapeline/scrapeline/pkg/llm"
	"github.com/scrapeline/scrapeline/pkg/metrics"
	"github.com/scrapeline/scrapeline/pkg/pipeline"
	"github.com/scrapeline/scrapeline/pkg/schema"
)

const (
	nodeName = "PromptRefiner"
	nodeKind = "node"
)

// Options configures a PromptRefiner node. LLM and Schema are required.
type Options struct {
	// LLM is the completion client used to generate the analysis.
	LLM llm.Client

	// Schema describes the target output schema.
	Schema schema.Descriptor

	// Transform reduces the schema description for prompt interpolation.
	// Defaults to schema.Simplify.
	Transform schema.TransformFunc

	// AdditionalInfo, when non-empty, selects the context-aware template and
	// is interpolated into the prompt.
	AdditionalInfo string

	// Verbose and Force are recognized for pipeline-level compatibility and
	// currently have no execution effect.
	Verbose bool
	Force   bool

	// Logger may be nil to disable logging.
	Logger *slog.Logger

	// Metrics may be nil to disable metrics collection.
	Metrics metrics.Collector
}

// renderFunc produces the final prompt from the user input and the
// simplified schema JSON. The template variant is fixed at construction.
type renderFunc func(userInput, schemaJSON string) string

// PromptRefiner is a stateless, single-pass node. It reads
// pipeline.StateKeyUserPrompt and writes the refined analysis under its
// first output key.
type PromptRefiner struct {
	pipeline.BaseNode

	llm       llm.Client
	schema    schema.Descriptor
	transform schema.TransformFunc
	render    renderFunc
	outputKey string
	verbose   bool
	force     bool
	metrics   metrics.Collector
}

// New constructs a PromptRefiner. input names the state keys the node
// consumes; outputs lists the state keys it produces, of which only the
// first is written. Missing required options fail here, not at execution.
//
// A client implementing llm.JSONFormatCapable has its response format forced
// to JSON as a side effect of construction.
func New(input string, outputs []string, opts Options) (*PromptRefiner, error) {
	if opts.LLM == nil {
		return nil, pipeline.MissingConfig("llm_model")
	}
	if opts.Schema == nil {
		return nil, pipeline.MissingConfig("schema")
	}
	if len(outputs) == 0 {
		return nil, pipeline.ErrNoOutputKeys
	}

	if fc, ok := opts.LLM.(llm.JSONFormatCapable); ok {
		fc.ForceJSONFormat()
	}

	transform := opts.Transform
	if transform == nil {
		transform = schema.Simplify
	}

	var render renderFunc
	if opts.AdditionalInfo != "" {
		info := opts.AdditionalInfo
		render = func(userInput, schemaJSON string) string {
			return fmt.Sprintf(reasoningTemplateWithContext, userInput, schemaJSON, info)
		}
	} else {
		render = func(userInput, schemaJSON string) string {
			return fmt.Sprintf(reasoningTemplate, userInput, schemaJSON)
		}
	}

	return &PromptRefiner{
		BaseNode:  pipeline.NewBaseNode(nodeName, nodeKind, input, outputs, opts.Logger),
		llm:       opts.LLM,
		schema:    opts.Schema,
		transform: transform,
		render:    render,
		outputKey: outputs[0],
		verbose:   opts.Verbose,
		force:     opts.Force,
		metrics:   opts.Metrics,
	}, nil
}

// Execute reads the user prompt from the state, derives the simplified
// schema, asks the LLM for the mapping analysis and writes the plain-text
// result under the node's output key. The state is mutated in place and
// returned. Collaborator failures propagate unchanged.
func (n *PromptRefiner) Execute(ctx context.Context, state pipeline.State) (pipeline.State, error) {
	n.LogStart(ctx)
	start := time.Now()

	userPrompt, err := state.String(pipeline.StateKeyUserPrompt)
	if err != nil {
		return nil, n.fail(ctx, start, err)
	}

	simplified, err := n.transform(n.schema.Schema())
	if err != nil {
		return nil, n.fail(ctx, start, err)
	}

	schemaJSON, err := json.MarshalIndent(simplified, "", "  ")
	if err != nil {
		return nil, n.fail(ctx, start, fmt.Errorf("marshal simplified schema: %w", err))
	}

	prompt := n.render(userPrompt, string(schemaJSON))

	raw, err := n.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, n.fail(ctx, start, err)
	}

	state[n.outputKey] = strings.TrimSpace(raw)

	if n.metrics != nil {
		n.metrics.RecordNodeExecution(ctx, nodeName, "success", time.Since(start).Milliseconds())
	}

	return state, nil
}

func (n *PromptRefiner) fail(ctx context.Context, start time.Time, err error) error {
	if n.metrics != nil {
		n.metrics.RecordNodeExecution(ctx, nodeName, "error", time.Since(start).Milliseconds())
		n.metrics.RecordError(ctx, nodeName, pipeline.ClassifyError(err))
	}
	return err
}
