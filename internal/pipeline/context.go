package pipeline

import (
	"github.com/raoul-lang/raoul/internal/ast"
	"github.com/raoul-lang/raoul/internal/diagnostics"
	"github.com/raoul-lang/raoul/internal/ir"
	"github.com/raoul-lang/raoul/internal/symbols"
)

// Context is threaded through every pipeline stage; each stage reads the
// fields the previous stages filled in and fills in its own.
type Context struct {
	Source string

	Program *ast.Program
	Symbols *symbols.Table
	IR      *ir.Program

	Errors []*diagnostics.Error
}

// NewContext creates a Context ready for the parser stage.
func NewContext(source string) *Context {
	return &Context{Source: source}
}

// AddError appends a diagnostic. Every stage uses this rather than
// stopping on its own first error, so a single run surfaces every
// diagnostic it can (spec §7: "accumulated if reasonable").
func (c *Context) AddError(err *diagnostics.Error) {
	c.Errors = append(c.Errors, err)
}

// OK reports whether no diagnostics have been recorded yet.
func (c *Context) OK() bool {
	return len(c.Errors) == 0
}
