package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Node is one step in the extraction pipeline. Execute receives the shared
// state, mutates it in place and returns it. Implementations document which
// state keys they read and which they write.
type Node interface {
	Name() string
	Execute(ctx context.Context, state State) (State, error)
}

// BaseNode carries the identity and wiring common to all nodes: a name, a
// kind label, the input-key expression, the list of output keys, and a
// logger. Concrete nodes embed it.
type BaseNode struct {
	name    string
	kind    string
	input   string
	outputs []string
	logger  *slog.Logger
}

// NewBaseNode constructs the embedded node core. input is the expression
// naming the state keys the node consumes; outputs lists the state keys it
// produces. A nil logger disables logging.
func NewBaseNode(name, kind, input string, outputs []string, logger *slog.Logger) BaseNode {
	return BaseNode{
		name:    name,
		kind:    kind,
		input:   input,
		outputs: outputs,
		logger:  logger,
	}
}

// Name returns the node's unique name.
func (b *BaseNode) Name() string { return b.name }

// Kind returns the node's kind label (e.g. "node", "conditional_node").
func (b *BaseNode) Kind() string { return b.kind }

// Input returns the input-key expression.
func (b *BaseNode) Input() string { return b.input }

// Outputs returns the output key list.
func (b *BaseNode) Outputs() []string { return b.outputs }

// LogStart emits the node's diagnostic start line and returns the execution
// id used to correlate subsequent log records. Safe on a nil logger.
func (b *BaseNode) LogStart(ctx context.Context) string {
	execID := uuid.NewString()
	if b.logger != nil {
		b.logger.InfoContext(ctx, "executing node",
			slog.String("node", b.name),
			slog.String("kind", b.kind),
			slog.String("execution_id", execID),
		)
	}
	return execID
}

// Logger returns the node's logger, which may be nil.
func (b *BaseNode) Logger() *slog.Logger { return b.logger }
