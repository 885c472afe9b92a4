package synthesizer

import (
	"go/ast"
	"go/printer"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/kwyse/specified-default-derive/internal/parser"
)

// typeRenderer re-renders opaque type expressions into generated code.
// Selector types are qualified through the declaring file's imports so the
// generated file resolves them itself; nothing is ever type-checked.
type typeRenderer struct {
	imports map[string]string // local package name -> import path
}

func newTypeRenderer(imports []parser.Import) *typeRenderer {
	r := &typeRenderer{imports: make(map[string]string, len(imports))}
	for _, im := range imports {
		name := im.Name
		switch name {
		case ".", "_":
			continue
		case "":
			name = packageNameOf(im.Path)
		}
		r.imports[name] = im.Path
	}
	return r
}

// packageNameOf guesses the package name an unnamed import binds to: the last
// path segment, skipping a major-version suffix like /v2.
func packageNameOf(path string) string {
	segs := strings.Split(path, "/")
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if i > 0 && len(s) > 1 && s[0] == 'v' && isDigits(s[1:]) {
			continue
		}
		return s
	}
	return path
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (r *typeRenderer) render(e ast.Expr) jen.Code {
	switch e := e.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if path, ok := r.imports[x.Name]; ok {
				return jen.Qual(path, e.Sel.Name)
			}
			return jen.Id(x.Name).Dot(e.Sel.Name)
		}
		return jen.Add(r.render(e.X)).Dot(e.Sel.Name)
	case *ast.StarExpr:
		return jen.Op("*").Add(r.render(e.X))
	case *ast.ArrayType:
		if e.Len == nil {
			return jen.Index().Add(r.render(e.Elt))
		}
		return jen.Index(r.render(e.Len)).Add(r.render(e.Elt))
	case *ast.MapType:
		return jen.Map(r.render(e.Key)).Add(r.render(e.Value))
	case *ast.ChanType:
		switch {
		case e.Dir == ast.RECV:
			return jen.Op("<-").Chan().Add(r.render(e.Value))
		case e.Dir == ast.SEND:
			return jen.Chan().Op("<-").Add(r.render(e.Value))
		default:
			return jen.Chan().Add(r.render(e.Value))
		}
	case *ast.FuncType:
		return jen.Func().Params(r.renderFieldList(e.Params)...).Add(r.renderResults(e.Results)...)
	case *ast.StructType:
		return jen.Struct(r.renderStructFields(e)...)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return jen.Interface()
		}
		return r.renderOpaque(e)
	case *ast.IndexExpr:
		return jen.Add(r.render(e.X)).Index(r.render(e.Index))
	case *ast.IndexListExpr:
		args := make([]jen.Code, 0, len(e.Indices))
		for _, ix := range e.Indices {
			args = append(args, r.render(ix))
		}
		return jen.Add(r.render(e.X)).Index(args...)
	case *ast.ParenExpr:
		return jen.Parens(r.render(e.X))
	case *ast.BasicLit:
		return jen.Id(e.Value)
	case *ast.BinaryExpr:
		return jen.Add(r.render(e.X)).Op(e.Op.String()).Add(r.render(e.Y))
	case *ast.UnaryExpr:
		return jen.Op(e.Op.String()).Add(r.render(e.X))
	default:
		return r.renderOpaque(e)
	}
}

func (r *typeRenderer) renderFieldList(fl *ast.FieldList) []jen.Code {
	if fl == nil {
		return nil
	}
	var out []jen.Code
	for _, f := range fl.List {
		if len(f.Names) == 0 {
			out = append(out, r.render(f.Type))
			continue
		}
		for _, n := range f.Names {
			out = append(out, jen.Id(n.Name).Add(r.render(f.Type)))
		}
	}
	return out
}

func (r *typeRenderer) renderResults(fl *ast.FieldList) []jen.Code {
	if fl == nil || len(fl.List) == 0 {
		return nil
	}
	items := r.renderFieldList(fl)
	if len(items) == 1 && len(fl.List[0].Names) == 0 {
		return items
	}
	return []jen.Code{jen.Params(items...)}
}

func (r *typeRenderer) renderStructFields(st *ast.StructType) []jen.Code {
	if st.Fields == nil {
		return nil
	}
	var out []jen.Code
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			out = append(out, r.render(f.Type))
			continue
		}
		names := make([]jen.Code, 0, len(f.Names))
		for _, n := range f.Names {
			names = append(names, jen.Id(n.Name))
		}
		out = append(out, jen.List(names...).Add(r.render(f.Type)))
	}
	return out
}

// renderOpaque prints an expression verbatim, used for the exotic corners the
// structured cases do not cover. Selector qualification is lost, which only
// matters if such a type also names another package.
func (r *typeRenderer) renderOpaque(e ast.Expr) jen.Code {
	var b strings.Builder
	if err := printer.Fprint(&b, token.NewFileSet(), e); err != nil {
		return jen.Id("any")
	}
	return jen.Id(b.String())
}
