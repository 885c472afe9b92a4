// Package parser extracts type declarations from a single Go package
// directory into the structural model the synthesizer works on. It is
// deliberately syntax-only: field types are carried as opaque expressions and
// never resolved, so the generator works on packages that do not currently
// compile on their own.
package parser

import (
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Package holds the parsed declarations of one directory.
type Package struct {
	Name string
	Dir  string

	fset   *token.FileSet
	files  []*ast.File
	index  map[string]*typeDecl
	consts map[string][]constSpec
}

type typeDecl struct {
	spec *ast.TypeSpec
	file *ast.File
}

type constSpec struct {
	names []string
	doc   *ast.CommentGroup
}

// Load parses every non-test Go source file of dir, in stable file order.
// Previously generated *_default.go outputs are skipped so the generator can
// be re-run over its own output.
func Load(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewLoadError(dir, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, "_default.go") {
			continue
		}
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, NewEmptyPackageError(dir)
	}
	p := &Package{Dir: dir, fset: token.NewFileSet()}
	for _, name := range names {
		path := filepath.Join(dir, name)
		f, err := goparser.ParseFile(p.fset, path, nil, goparser.ParseComments)
		if err != nil {
			return nil, NewSyntaxError(path, err)
		}
		if p.Name == "" {
			p.Name = f.Name.Name
		} else if f.Name.Name != p.Name {
			return nil, NewSplitPackageError(dir, p.Name, f.Name.Name)
		}
		p.files = append(p.files, f)
	}
	p.collect()
	return p, nil
}

// collect indexes type declarations and groups package-level constant specs
// by the local named type they enumerate.
func (p *Package) collect() {
	p.index = make(map[string]*typeDecl)
	p.consts = make(map[string][]constSpec)
	for _, f := range p.files {
		for _, d := range f.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			switch gd.Tok {
			case token.TYPE:
				for _, s := range gd.Specs {
					ts, ok := s.(*ast.TypeSpec)
					if !ok {
						continue
					}
					if _, dup := p.index[ts.Name.Name]; !dup {
						p.index[ts.Name.Name] = &typeDecl{spec: ts, file: f}
					}
				}
			case token.CONST:
				p.collectConsts(gd)
			}
		}
	}
}

// collectConsts walks one const block tracking the type each spec takes on.
// A spec with an explicit local type names it; an empty spec repeats the
// previous one (the iota idiom); a typeless spec with values is untyped and
// enumerates nothing.
func (p *Package) collectConsts(gd *ast.GenDecl) {
	current := ""
	for _, s := range gd.Specs {
		vs, ok := s.(*ast.ValueSpec)
		if !ok {
			continue
		}
		switch {
		case vs.Type != nil:
			if id, ok := vs.Type.(*ast.Ident); ok {
				current = id.Name
			} else {
				current = ""
			}
		case len(vs.Values) > 0:
			current = ""
		}
		if current == "" {
			continue
		}
		names := make([]string, 0, len(vs.Names))
		for _, n := range vs.Names {
			names = append(names, n.Name)
		}
		doc := vs.Doc
		if doc == nil && !gd.Lparen.IsValid() {
			// unparenthesized consts hang their doc on the declaration
			doc = gd.Doc
		}
		p.consts[current] = append(p.consts[current], constSpec{names: names, doc: doc})
	}
}

// Extract locates the named type declaration, classifies its shape and
// collects its fields or variants together with their annotations.
func (p *Package) Extract(typeName string) (*Declaration, error) {
	td, ok := p.index[typeName]
	if !ok {
		return nil, NewUnknownTypeError(typeName, p.Name, p.Dir)
	}
	decl := &Declaration{
		Name:       typeName,
		Package:    p.Name,
		File:       p.fset.Position(td.spec.Pos()).Filename,
		TypeParams: typeParams(td.spec.TypeParams),
		Imports:    fileImports(td.file),
	}
	p.classify(td, decl)
	return decl, nil
}

func (p *Package) classify(td *typeDecl, decl *Declaration) {
	ts := td.spec
	if ts.Assign.IsValid() {
		decl.Shape = ShapeUnsupported
		decl.Reason = "alias declarations have no identity of their own"
		return
	}
	if st, ok := ts.Type.(*ast.StructType); ok {
		p.classifyStruct(st, decl)
		return
	}
	p.classifyDefined(decl)
}

func (p *Package) classifyStruct(st *ast.StructType, decl *Declaration) {
	if st.Fields == nil || len(st.Fields.List) == 0 {
		decl.Shape = ShapeUnsupported
		decl.Reason = "struct has no fields"
		return
	}
	rec := &Record{}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			decl.Shape = ShapeUnsupported
			decl.Reason = "embedded fields are not named"
			return
		}
		var anns []Annotation
		if f.Tag != nil {
			if raw, err := strconv.Unquote(f.Tag.Value); err == nil {
				anns = parseTag(raw)
			}
		}
		for _, name := range f.Names {
			if name.Name == "_" {
				decl.Shape = ShapeUnsupported
				decl.Reason = "blank fields cannot be constructed by name"
				return
			}
			rec.Fields = append(rec.Fields, Field{
				Name:        name.Name,
				Type:        f.Type,
				TypeText:    p.exprText(f.Type),
				Annotations: anns,
			})
		}
	}
	decl.Shape = ShapeRecord
	decl.Record = rec
}

func (p *Package) classifyDefined(decl *Declaration) {
	ch := &Choice{}
	for _, cs := range p.consts[decl.Name] {
		anns := parseDirectives(cs.doc)
		for _, n := range cs.names {
			if n == "_" {
				continue
			}
			ch.Variants = append(ch.Variants, Variant{Name: n, Annotations: anns})
		}
	}
	if len(ch.Variants) == 0 {
		decl.Shape = ShapeUnsupported
		decl.Reason = "type has no constants to enumerate it"
		return
	}
	decl.Shape = ShapeChoice
	decl.Choice = ch
}

func (p *Package) exprText(e ast.Expr) string {
	var b strings.Builder
	if err := printer.Fprint(&b, p.fset, e); err != nil {
		return ""
	}
	return b.String()
}

func typeParams(fl *ast.FieldList) []TypeParam {
	if fl == nil {
		return nil
	}
	var params []TypeParam
	for _, f := range fl.List {
		for _, n := range f.Names {
			params = append(params, TypeParam{Name: n.Name, Constraint: f.Type})
		}
	}
	return params
}

func fileImports(f *ast.File) []Import {
	imps := make([]Import, 0, len(f.Imports))
	for _, im := range f.Imports {
		path, err := strconv.Unquote(im.Path.Value)
		if err != nil {
			continue
		}
		name := ""
		if im.Name != nil {
			name = im.Name.Name
		}
		imps = append(imps, Import{Name: name, Path: path})
	}
	return imps
}
