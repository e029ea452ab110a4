// Package diagnostics defines the compile-time error taxonomy shared by the
// parser and the semantic analyzer.
//
// The teacher repo calls out to an internal/diagnostics package from both
// its parser and analyzer (diagnostics.NewError(code, token, message)) but
// that package itself was not part of the retrieved reference material;
// this is a from-scratch package grounded on that call-site convention and
// on the short-code style visible there (ErrP006, ErrA003, ...).
package diagnostics

import "github.com/raoul-lang/raoul/internal/token"

// Code identifies the kind of a diagnostic, independent of its message text.
type Code string

const (
	ErrParse               Code = "P001"
	ErrUndeclaredIdentifier Code = "A001"
	ErrRedeclaredIdentifier Code = "A002"
	ErrTypeMismatch         Code = "A003"
	ErrArityMismatch        Code = "A004"
	ErrNotAnArray           Code = "A005"
	ErrDimMismatch          Code = "A006"
	ErrInvalidGlobalPrefix  Code = "A007"
	ErrMissingReturn        Code = "A008"
	ErrDuplicateFunction    Code = "A009"
	ErrMissingMain          Code = "A010"
	ErrMultipleDataframes   Code = "A011"
)

// Error is a single compile-time diagnostic with a source position.
type Error struct {
	Code    Code
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs a diagnostic Error at tok's position.
func New(code Code, tok token.Token, message string) *Error {
	return &Error{Code: code, Pos: tok.Pos, Message: message}
}

// NewAt constructs a diagnostic Error at an explicit position, for sites
// that only have a token.Position (e.g. AST nodes past the parser stage).
func NewAt(code Code, pos token.Position, message string) *Error {
	return &Error{Code: code, Pos: pos, Message: message}
}
