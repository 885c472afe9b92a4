package parser

import (
	"go/ast"
	"strconv"
	"strings"
)

// DirectivePrefix introduces annotation comments on constant declarations,
// following the //go:generate convention: no space after the slashes.
const DirectivePrefix = "specdefault:"

// parseTag tokenizes a raw struct tag (backquotes already stripped) into its
// key/value pairs. It follows the reflect.StructTag grammar but keeps the
// pairs conventional lookup would drop: a bare key and an unquoted value are
// reported with their own kinds instead of being skipped.
func parseTag(tag string) []Annotation {
	var anns []Annotation
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}
		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 {
			break
		}
		name := tag[:i]
		tag = tag[i:]
		if tag == "" || tag[0] == ' ' {
			anns = append(anns, Annotation{Name: name, Kind: KindBare})
			continue
		}
		if tag[0] != ':' {
			// a quote glued to the key; keep it as an opaque value
			i = 0
			for i < len(tag) && tag[i] != ' ' {
				i++
			}
			anns = append(anns, Annotation{Name: name, Kind: KindRaw, Value: tag[:i]})
			tag = tag[i:]
			continue
		}
		tag = tag[1:]
		if tag == "" || tag[0] == ' ' {
			anns = append(anns, Annotation{Name: name, Kind: KindRaw})
			continue
		}
		if tag[0] != '"' {
			i = 0
			for i < len(tag) && tag[i] != ' ' {
				i++
			}
			anns = append(anns, Annotation{Name: name, Kind: KindRaw, Value: tag[:i]})
			tag = tag[i:]
			continue
		}
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			anns = append(anns, Annotation{Name: name, Kind: KindRaw, Value: tag})
			break
		}
		quoted := tag[:i+1]
		tag = tag[i+1:]
		value, err := strconv.Unquote(quoted)
		if err != nil {
			anns = append(anns, Annotation{Name: name, Kind: KindRaw, Value: quoted})
			continue
		}
		anns = append(anns, Annotation{Name: name, Kind: KindString, Value: value})
	}
	return anns
}

// parseDirectives extracts //specdefault: annotations from a doc comment
// group. Prose lines and foreign directives are ignored.
func parseDirectives(doc *ast.CommentGroup) []Annotation {
	if doc == nil {
		return nil
	}
	var anns []Annotation
	for _, c := range doc.List {
		line, ok := strings.CutPrefix(c.Text, "//")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(line, DirectivePrefix)
		if !ok {
			continue
		}
		anns = append(anns, parseDirective(rest))
	}
	return anns
}

func parseDirective(rest string) Annotation {
	rest = strings.TrimSpace(rest)
	name, value, found := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	if !found {
		if head, tail, spaced := strings.Cut(name, " "); spaced {
			return Annotation{Name: head, Kind: KindRaw, Value: strings.TrimSpace(tail)}
		}
		return Annotation{Name: name, Kind: KindBare}
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, `"`) {
		if unquoted, err := strconv.Unquote(value); err == nil {
			return Annotation{Name: name, Kind: KindString, Value: unquoted}
		}
	}
	return Annotation{Name: name, Kind: KindRaw, Value: value}
}
