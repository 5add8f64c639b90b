// Package pattern implements exhaustiveness checking and decision-tree
// compilation for match expressions, per spec.md §4.4. Grounded on the
// original Rust aria-patterns crate (Maranget's "Warnings for Pattern
// Matching" and "Compiling Pattern Matching to Good Decision Trees"),
// re-expressed with Go tagged unions in place of Rust enums.
package pattern

// TypeKind tags a Type the way mir.TypeKind tags mir.Type, but restricted
// to the shapes exhaustiveness checking and decision-tree compilation
// care about.
type TypeKind int

const (
	KindBool TypeKind = iota
	KindInt
	KindFloat
	KindString
	KindUnit
	KindTuple
	KindArray
	KindEnum
	KindStruct
	KindUnknown
)

// EnumVariant is one constructor of an Enum Type.
type EnumVariant struct {
	Name   string
	Fields []Type
}

// StructField is one field of a Struct Type.
type StructField struct {
	Name string
	Type Type
}

// Type is the restricted type view exhaustiveness checking and decision
// tree compilation operate over; built from mir.Type by FromMIRType.
type Type struct {
	Kind TypeKind

	Elems []Type // KindTuple

	Elem     *Type // KindArray
	ArrayLen int

	EnumName string
	Variants []EnumVariant // KindEnum

	StructName string
	Fields     []StructField // KindStruct
}
