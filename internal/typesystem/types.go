// Package typesystem implements Raoul's small static type system: the
// atomic/array type representation, the implicit-cast rules of spec §3,
// and the result-type rules for each operator used by the analyzer and IR
// generator.
//
// This is deliberately much smaller than the teacher's own
// internal/typesystem (which implements full generics/trait unification
// for a language with user-defined types); Raoul's Non-goals explicitly
// exclude user-defined types and overloading, so there is nothing here to
// unify. The package name, and the convention of a value Type plus
// free functions for cast/operator legality, follow the teacher's
// typesystem/types.go and typesystem/kind_checker.go shape.
package typesystem

import "fmt"

// Kind is an atomic type.
type Kind uint8

const (
	Invalid Kind = iota
	Int
	Float
	Bool
	String
	Void
	Dataframe
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	case Dataframe:
		return "dataframe"
	}
	return "invalid"
}

// IsNumeric reports whether k is int or float.
func (k Kind) IsNumeric() bool { return k == Int || k == Float }

// Type is an atomic kind, or a 1-/2-D array of one, with a compile-time
// known shape (spec §3 "Composite types").
type Type struct {
	Elem Kind
	Dims int // 0 = scalar, 1, or 2
	Dim1 int
	Dim2 int
}

// Scalar builds a non-array Type.
func Scalar(k Kind) Type { return Type{Elem: k} }

// Array1 builds a 1-D array type of length d1.
func Array1(k Kind, d1 int) Type { return Type{Elem: k, Dims: 1, Dim1: d1} }

// Array2 builds a 2-D array type of shape (d1, d2).
func Array2(k Kind, d1, d2 int) Type { return Type{Elem: k, Dims: 2, Dim1: d1, Dim2: d2} }

func (t Type) IsArray() bool { return t.Dims > 0 }

func (t Type) String() string {
	switch t.Dims {
	case 1:
		return fmt.Sprintf("%s[%d]", t.Elem, t.Dim1)
	case 2:
		return fmt.Sprintf("%s[%d][%d]", t.Elem, t.Dim1, t.Dim2)
	default:
		return t.Elem.String()
	}
}

// Equal reports structural equality, including shape for arrays.
func (t Type) Equal(o Type) bool {
	return t.Elem == o.Elem && t.Dims == o.Dims && t.Dim1 == o.Dim1 && t.Dim2 == o.Dim2
}

// CanCast reports whether a value of type from may be implicitly used
// where a value of type to is expected (spec §3 "Implicit casts").
// Arrays never cast — an array's element kind and shape must match
// exactly at every use.
func CanCast(from, to Type) bool {
	if from.IsArray() || to.IsArray() {
		return from.Equal(to)
	}
	if from.Elem == to.Elem {
		return true
	}
	switch {
	case from.Elem == Int && to.Elem == Float:
		return true
	case from.Elem == Float && to.Elem == Int:
		return true
	case from.Elem == String && (to.Elem == Int || to.Elem == Float):
		return true
	}
	return false
}

// ArithmeticResultType resolves the result kind of +, -, *, / over two
// numeric operand kinds. Division yields float unless both operands are
// int, in which case it is integer division (spec §4.2).
func ArithmeticResultType(op string, lhs, rhs Kind) (Kind, bool) {
	if !lhs.IsNumeric() || !rhs.IsNumeric() {
		return Invalid, false
	}
	if op == "/" {
		if lhs == Int && rhs == Int {
			return Int, true
		}
		return Float, true
	}
	if lhs == Float || rhs == Float {
		return Float, true
	}
	return Int, true
}

// ComparisonResultType resolves equality/relational operators. Equality is
// defined for any pair of numeric kinds (promoted to a common type) and
// for string==string (byte-wise, spec §9 open question resolution).
// Relational operators are defined only for numeric kinds — comparing
// strings with </> is a semantic error by the same resolution.
func ComparisonResultType(op string, lhs, rhs Kind) (Kind, bool) {
	isEquality := op == "==" || op == "!="
	if lhs.IsNumeric() && rhs.IsNumeric() {
		return Bool, true
	}
	if isEquality && lhs == String && rhs == String {
		return Bool, true
	}
	return Invalid, false
}

// LogicalResultType resolves and/or: both operands must be bool.
func LogicalResultType(lhs, rhs Kind) (Kind, bool) {
	if lhs == Bool && rhs == Bool {
		return Bool, true
	}
	return Invalid, false
}

// NotResultType resolves unary "not": operand must be bool.
func NotResultType(operand Kind) (Kind, bool) {
	if operand == Bool {
		return Bool, true
	}
	return Invalid, false
}

// NegateResultType resolves unary "-": operand must be numeric.
func NegateResultType(operand Kind) (Kind, bool) {
	if operand.IsNumeric() {
		return operand, true
	}
	return Invalid, false
}
