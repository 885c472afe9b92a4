// Package synthesizer turns parsed type declarations into generated default
// constructors. Synthesize is a pure function over the declaration model; the
// rendered output is textually deterministic for a given input.
package synthesizer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/kwyse/specified-default-derive/internal/parser"
)

// Header is the first line of every generated file, in the form the Go
// toolchain recognizes as a generated-code marker.
const Header = "Code generated by specified-default-derive. DO NOT EDIT."

// runtimePath is the support package generated code calls into.
const runtimePath = "github.com/kwyse/specified-default-derive/specdefault"

// overrideKey is the struct tag key and directive name carrying defaults.
const overrideKey = "default"

// Implementation is the synthesized default clause for one declaration. It
// renders standalone into its own file or merged with siblings via RenderFile.
type Implementation struct {
	TypeName string
	Package  string

	funcs []jen.Code
}

// Filename returns the per-type output name, <typename>_default.go.
func (im *Implementation) Filename() string {
	return strings.ToLower(im.TypeName) + "_default.go"
}

// Source renders the implementation as a standalone generated file.
func (im *Implementation) Source() (string, error) {
	f := newFile(im.Package)
	for _, fn := range im.funcs {
		f.Add(fn)
	}
	return render(f, im.TypeName)
}

// RenderFile merges implementations into one generated source file for pkg,
// in the order given.
func RenderFile(pkg string, impls ...*Implementation) (string, error) {
	f := newFile(pkg)
	for _, im := range impls {
		for _, fn := range im.funcs {
			f.Add(fn)
		}
	}
	return render(f, pkg)
}

func newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(Header)
	return f
}

func render(f *jen.File, subject string) (string, error) {
	var b strings.Builder
	if err := f.Render(&b); err != nil {
		return "", NewRenderError(subject, err)
	}
	return b.String(), nil
}

// Synthesize generates the default clause for one declaration. It fails the
// declaration as a whole; a failed sibling never taints other declarations.
func Synthesize(decl *parser.Declaration) (*Implementation, error) {
	switch decl.Shape {
	case parser.ShapeRecord:
		return synthesizeRecord(decl)
	case parser.ShapeChoice:
		return synthesizeChoice(decl)
	default:
		return nil, NewUnsupportedShapeError(decl.Name, decl.Reason)
	}
}

// synthesizeRecord builds one composite literal with a value clause per field,
// echoing declaration order. Overridden fields parse their literal when the
// generated constructor runs; the rest take the element type's own default.
func synthesizeRecord(decl *parser.Declaration) (*Implementation, error) {
	r := newTypeRenderer(decl.Imports)
	entries := make([]jen.Code, 0, len(decl.Record.Fields))
	for _, f := range decl.Record.Fields {
		value, err := fieldValue(decl, f, r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, jen.Id(f.Name).Op(":").Add(value))
	}
	lit := jen.Add(typeRef(decl)).CustomFunc(jen.Options{
		Open:      "{",
		Close:     "}",
		Separator: ",",
		Multi:     true,
	}, func(g *jen.Group) {
		for _, e := range entries {
			g.Add(e)
		}
	})
	return newImplementation(decl, r, lit), nil
}

func fieldValue(decl *parser.Declaration, f parser.Field, r *typeRenderer) (jen.Code, error) {
	ann, ok := findOverride(f.Annotations)
	if !ok {
		return jen.Qual(runtimePath, "Of").Index(r.render(f.Type)).Call(), nil
	}
	if ann.Kind != parser.KindString {
		return nil, NewMalformedAnnotationError(decl.Name, malformedFieldDetail(f, ann))
	}
	where := decl.Name + "." + f.Name
	return jen.Qual(runtimePath, "MustParse").Index(r.render(f.Type)).
		Call(jen.Lit(ann.Value), jen.Lit(where)), nil
}

func findOverride(anns []parser.Annotation) (parser.Annotation, bool) {
	for _, ann := range anns {
		if ann.Name == overrideKey {
			return ann, true
		}
	}
	return parser.Annotation{}, false
}

func malformedFieldDetail(f parser.Field, ann parser.Annotation) string {
	if ann.Kind == parser.KindBare {
		return fmt.Sprintf("field %s has a bare default tag; give it a quoted value like default:%q", f.Name, "0")
	}
	return fmt.Sprintf("field %s has a non-string default value %s; quote it", f.Name, ann.Value)
}

// synthesizeChoice picks the single marked variant as the constructed value.
func synthesizeChoice(decl *parser.Declaration) (*Implementation, error) {
	var marked []string
	for _, v := range decl.Choice.Variants {
		for _, ann := range v.Annotations {
			if ann.Name != overrideKey {
				return nil, NewMalformedAnnotationError(decl.Name,
					fmt.Sprintf("variant %s has an unknown directive //%s%s", v.Name, parser.DirectivePrefix, ann.Name))
			}
			if ann.Kind != parser.KindBare {
				return nil, NewMalformedAnnotationError(decl.Name,
					fmt.Sprintf("variant %s: the default marker takes no value", v.Name))
			}
			marked = append(marked, v.Name)
		}
	}
	switch len(marked) {
	case 1:
	case 0:
		return nil, NewMissingDefaultVariantError(decl.Name, parser.DirectivePrefix)
	default:
		return nil, NewAmbiguousDefaultVariantError(decl.Name, marked)
	}
	r := newTypeRenderer(decl.Imports)
	return newImplementation(decl, r, jen.Id(marked[0])), nil
}

// newImplementation wraps the constructed value into the public surface:
// the Default<Type> constructor and the SetDefaults recursion hook.
func newImplementation(decl *parser.Declaration, r *typeRenderer, value jen.Code) *Implementation {
	ctor := "Default" + decl.Name
	recv := receiverName(decl.Name)

	ctorFn := jen.Func().Id(ctor)
	if len(decl.TypeParams) > 0 {
		ctorFn.Types(renderTypeParams(decl.TypeParams, r)...)
	}
	ctorFn.Params().Add(typeRef(decl)).Block(jen.Return(value))

	method := jen.Func().
		Params(jen.Id(recv).Op("*").Add(typeRef(decl))).
		Id("SetDefaults").Params().
		Block(jen.Op("*").Id(recv).Op("=").Add(ctorCall(decl, ctor)))

	return &Implementation{
		TypeName: decl.Name,
		Package:  decl.Package,
		funcs: []jen.Code{
			jen.Commentf("%s returns a %s populated with its declared defaults.", ctor, decl.Name),
			ctorFn,
			jen.Commentf("SetDefaults resets %s to %s().", recv, ctor),
			method,
		},
	}
}

// typeRef names the declared type, instantiated with its own parameters when
// the declaration is generic.
func typeRef(decl *parser.Declaration) *jen.Statement {
	ref := jen.Id(decl.Name)
	if len(decl.TypeParams) == 0 {
		return ref
	}
	args := make([]jen.Code, 0, len(decl.TypeParams))
	for _, p := range decl.TypeParams {
		args = append(args, jen.Id(p.Name))
	}
	return ref.Index(args...)
}

func ctorCall(decl *parser.Declaration, ctor string) *jen.Statement {
	call := jen.Id(ctor)
	if len(decl.TypeParams) > 0 {
		args := make([]jen.Code, 0, len(decl.TypeParams))
		for _, p := range decl.TypeParams {
			args = append(args, jen.Id(p.Name))
		}
		call.Index(args...)
	}
	return call.Call()
}

func renderTypeParams(params []parser.TypeParam, r *typeRenderer) []jen.Code {
	out := make([]jen.Code, 0, len(params))
	for _, p := range params {
		out = append(out, jen.Id(p.Name).Add(r.render(p.Constraint)))
	}
	return out
}

func receiverName(typeName string) string {
	c, _ := utf8.DecodeRuneInString(typeName)
	return string(unicode.ToLower(c))
}
