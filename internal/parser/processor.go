package parser

import (
	"github.com/raoul-lang/raoul/internal/lexer"
	"github.com/raoul-lang/raoul/internal/pipeline"
)

// Processor is the parser's pipeline stage: source text in, ctx.Program
// (or a single parse diagnostic) out.
type Processor struct{}

// NewProcessor creates the parser pipeline stage.
func NewProcessor() *Processor { return &Processor{} }

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	p := New(lexer.New(ctx.Source))
	ctx.Program = p.ParseProgram()
	if err := p.Err(); err != nil {
		ctx.AddError(err)
	}
	return ctx
}
