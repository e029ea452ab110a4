// Package pipeline composes the parse/analyze/IR-generation stages as a
// sequence of Processors over a shared Context, the way the teacher's
// internal/pipeline/pipeline.go composes lexer/parser/analyzer/backend
// stages.
package pipeline

// Processor is one pipeline stage. It receives the context produced by the
// previous stage and returns the context for the next one (usually the
// same *Context, mutated).
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New creates a Pipeline running processors in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. Unlike an early-exit pipeline, later
// stages still run even once Errors is non-empty, so the analyzer runs
// over whatever AST the parser did build. internal/cliapp checks
// ctx.Errors itself before deciding whether to dump or execute.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
