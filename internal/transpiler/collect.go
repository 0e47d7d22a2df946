package transpiler

import (
	"strings"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/deduce"
	"github.com/cxx2rs/cxx2rs/internal/resolve"
)

// tables are the flat declaration lists harvested from one translation
// unit, in declaration order, feeding the resolver and the deducer.
type tables struct {
	funcs      []resolve.Path
	structs    []resolve.Path
	directives []resolve.UsingDirective
	usingDecls []resolve.UsingDecl
	templates  map[string]*deduce.Template
}

// collect walks the tree once and records every function, struct, template,
// and using edge together with the namespace scope it appeared in.
func collect(root *ast.Node) *tables {
	t := &tables{templates: map[string]*deduce.Template{}}
	t.walk(root, resolve.Path{})
	return t
}

func (t *tables) walk(n *ast.Node, scope resolve.Path) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindTranslationUnit:
		for _, c := range n.Children {
			t.walk(c, scope)
		}

	case ast.KindNamespace:
		inner := append(append(resolve.Path{}, scope...), n.Spelling)
		for _, c := range n.Children {
			t.walk(c, inner)
		}

	case ast.KindFunctionDecl:
		t.funcs = append(t.funcs, pathOf(scope, n.Spelling))

	case ast.KindStructDecl:
		t.structs = append(t.structs, pathOf(scope, n.Spelling))

	case ast.KindUsingDirective:
		t.directives = append(t.directives, resolve.UsingDirective{
			Scope:     append(resolve.Path{}, scope...),
			Namespace: splitPath(n.Spelling),
		})

	case ast.KindUsingDecl:
		t.usingDecls = append(t.usingDecls, resolve.UsingDecl{
			Scope:  append(resolve.Path{}, scope...),
			Target: splitPath(n.Spelling),
		})

	case ast.KindTemplateDecl:
		t.template(n, scope)
	}
}

// template builds a deduction descriptor from a template declaration node.
func (t *tables) template(n *ast.Node, scope resolve.Path) {
	var fn *ast.Node
	for _, c := range n.Children {
		if c.Kind == ast.KindFunctionDecl {
			fn = c
			break
		}
	}
	if fn == nil {
		return
	}

	typeParams := strings.Split(n.Spelling, ",")
	for i := range typeParams {
		typeParams[i] = strings.TrimSpace(typeParams[i])
	}

	tmpl := &deduce.Template{
		Name:          fn.Spelling,
		Namespace:     append([]string{}, scope...),
		TypeParams:    typeParams,
		Return:        fn.Type,
		HasDefinition: false,
	}
	for _, c := range fn.Children {
		switch c.Kind {
		case ast.KindParamDecl:
			tmpl.Params = append(tmpl.Params, deduce.Param{Name: c.Spelling, Type: c.Type})
		case ast.KindCompound:
			tmpl.HasDefinition = true
		}
	}

	// First declaration wins; redeclarations do not overwrite.
	if _, ok := t.templates[tmpl.Name]; !ok {
		t.templates[tmpl.Name] = tmpl
	}
	t.funcs = append(t.funcs, pathOf(scope, fn.Spelling))
}

func pathOf(scope resolve.Path, name string) resolve.Path {
	out := make(resolve.Path, 0, len(scope)+1)
	out = append(out, scope...)
	return append(out, splitPath(name)...)
}

func splitPath(name string) resolve.Path {
	parts := strings.Split(name, "::")
	out := make(resolve.Path, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
