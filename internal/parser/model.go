package parser

import "go/ast"

// Shape classifies what kind of declaration the generator is looking at.
type Shape int

const (
	// ShapeUnsupported marks declarations the generator cannot process.
	ShapeUnsupported Shape = iota
	// ShapeRecord is a struct type whose fields are all named.
	ShapeRecord
	// ShapeChoice is a defined type enumerated by package-level constants.
	ShapeChoice
)

func (s Shape) String() string {
	switch s {
	case ShapeRecord:
		return "record"
	case ShapeChoice:
		return "choice"
	default:
		return "unsupported"
	}
}

// AnnotationKind describes the syntactic form an annotation value took.
type AnnotationKind int

const (
	// KindString is a conventionally quoted value: `default:"640"`.
	KindString AnnotationKind = iota
	// KindBare is a name with no value: a marker.
	KindBare
	// KindRaw is an unquoted or otherwise non-string value.
	KindRaw
)

// Annotation is one tokenized key/value pair from a struct tag or a
// //specdefault: directive. Tokenization never fails; deciding whether an
// annotation is well-formed belongs to the synthesizer.
type Annotation struct {
	Name  string
	Kind  AnnotationKind
	Value string
}

// Import records one import of the declaring file, so selector types in field
// expressions can be re-qualified in generated code.
type Import struct {
	Name string // local name; empty when the package's own name applies
	Path string
}

// TypeParam is one declared type parameter, carried through verbatim.
type TypeParam struct {
	Name       string
	Constraint ast.Expr
}

// Field is one named struct field in source order.
type Field struct {
	Name        string
	Type        ast.Expr // opaque; re-rendered in generated code, never resolved
	TypeText    string   // source text of Type, for diagnostics
	Annotations []Annotation
}

// Record is the struct flavor of a declaration.
type Record struct {
	Fields []Field
}

// Variant is one constant enumerating a choice type.
type Variant struct {
	Name        string
	Annotations []Annotation
}

// Choice is the enumerated-constant flavor of a declaration.
type Choice struct {
	Variants []Variant
}

// Declaration is one parsed type declaration together with everything needed
// to generate its default constructor.
type Declaration struct {
	Name       string
	Package    string
	File       string
	TypeParams []TypeParam
	Imports    []Import
	Shape      Shape
	Record     *Record // set when Shape == ShapeRecord
	Choice     *Choice // set when Shape == ShapeChoice
	Reason     string  // set when Shape == ShapeUnsupported
}
