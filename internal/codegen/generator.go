// Package codegen walks the parsed C++ tree and emits Rust source text.
// Both entry points are total: anything the walk does not understand
// degrades to a placeholder comment rather than an error.
package codegen

import (
	"strings"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/deduce"
	"github.com/cxx2rs/cxx2rs/internal/resolve"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

// Options configure a Generator. Resolver and Templates are optional; when
// present they qualify call targets and monomorphize template calls.
type Options struct {
	Resolver  *resolve.Resolver
	Templates map[string]*deduce.Template
}

// Generator holds the output buffer and the traversal state. Writes are
// append-only; there is no backtracking.
type Generator struct {
	opts   Options
	buf    strings.Builder
	indent int
	stubs  bool

	scope    resolve.Path               // current namespace path
	fields   map[string][]fieldInfo     // struct name -> declared fields, in order
	locals   map[string]types.CppType   // current function's params and locals
	retType  types.CppType              // current function's return type
	inMethod bool
}

type fieldInfo struct {
	name string
	typ  types.CppType
}

// Generate emits full function bodies for every declaration under root.
func Generate(root *ast.Node, opts Options) string {
	g := &Generator{opts: opts, fields: map[string][]fieldInfo{}}
	g.collectFields(root)
	g.emitTopLevel(root)
	return g.buf.String()
}

// GenerateStubs emits signatures only, each body replaced by an
// unconditional-failure placeholder tagged with the original linkage name.
func GenerateStubs(root *ast.Node, opts Options) string {
	g := &Generator{opts: opts, stubs: true, fields: map[string][]fieldInfo{}}
	g.collectFields(root)
	g.emitTopLevel(root)
	return g.buf.String()
}

// collectFields records struct field lists up front so aggregate
// initializer lists can be rendered as named-type literals.
func (g *Generator) collectFields(n *ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.KindStructDecl {
		var fields []fieldInfo
		for _, c := range n.Children {
			if c.Kind == ast.KindFieldDecl {
				fields = append(fields, fieldInfo{name: c.Spelling, typ: c.Type})
			}
		}
		g.fields[n.Spelling] = fields
	}
	for _, c := range n.Children {
		g.collectFields(c)
	}
}

// emitTopLevel walks top-level declarations depth-first. Namespace contents
// are hoisted flat into the output instead of becoming nested modules.
func (g *Generator) emitTopLevel(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindTranslationUnit:
		for _, c := range n.Children {
			g.emitTopLevel(c)
		}
	case ast.KindNamespace:
		g.scope = append(g.scope, n.Spelling)
		for _, c := range n.Children {
			g.emitTopLevel(c)
		}
		g.scope = g.scope[:len(g.scope)-1]
	case ast.KindFunctionDecl:
		g.emitFunction(n, nil)
	case ast.KindStructDecl:
		g.emitStruct(n)
	case ast.KindTemplateDecl:
		g.emitTemplate(n)
	default:
		// Unrecognized top-level kinds (and usings, which only feed the
		// resolver) are skipped silently.
	}
}

// mangle flattens the namespace path into the emitted symbol name.
func (g *Generator) mangle(name string) string {
	parts := make([]string, 0, len(g.scope)+1)
	for _, s := range g.scope {
		parts = append(parts, SanitizeIdent(s))
	}
	parts = append(parts, SanitizeIdent(name))
	return strings.Join(parts, "_")
}

func (g *Generator) qualified(name string) string {
	if len(g.scope) == 0 {
		return name
	}
	return strings.Join(g.scope, "::") + "::" + name
}

// emitFunction writes one function. receiver is the enclosing struct name
// for methods, nil spelling for free functions.
func (g *Generator) emitFunction(n *ast.Node, receiver *string) {
	name := n.Spelling
	mangled := g.mangle(name)
	if receiver != nil {
		mangled = SanitizeIdent(*receiver) + "_" + SanitizeIdent(name)
	}

	g.locals = map[string]types.CppType{}
	g.retType = n.Type
	g.inMethod = receiver != nil

	var params []*ast.Node
	var body *ast.Node
	for _, c := range n.Children {
		switch c.Kind {
		case ast.KindParamDecl:
			params = append(params, c)
		case ast.KindCompound:
			body = c
		}
	}

	g.line("/// C++: `" + g.qualified(name) + "` (mangled: " + mangled + ")")
	if g.stubs {
		g.line("#[export_name = \"" + mangled + "\"]")
	}

	sig := "pub fn "
	if receiver != nil {
		sig += SanitizeIdent(name)
	} else {
		sig += mangled
	}
	sig += "("
	var parts []string
	if receiver != nil {
		parts = append(parts, "&mut self")
	}
	for _, p := range params {
		pname := SanitizeIdent(p.Spelling)
		if pname == "unnamed" {
			pname = "_arg"
		}
		g.locals[p.Spelling] = p.Type
		parts = append(parts, "mut "+pname+": "+rustType(p.Type))
	}
	sig += strings.Join(parts, ", ") + ")"
	if !isVoid(n.Type) {
		sig += " -> " + rustType(n.Type)
	}
	sig += " {"
	g.line(sig)

	g.indent++
	if g.stubs {
		g.line("unimplemented!(\"" + mangled + "\");")
	} else if body != nil {
		g.emitBody(body)
	}
	g.indent--
	g.line("}")
	g.line("")
}

// emitStruct writes the struct definition followed by one impl block with
// its constructors and methods.
func (g *Generator) emitStruct(n *ast.Node) {
	name := SanitizeIdent(n.Spelling)

	g.line("/// C++: `" + g.qualified(n.Spelling) + "`")
	g.line("#[derive(Default, Clone)]")
	g.line("pub struct " + name + " {")
	g.indent++
	var members []*ast.Node
	for _, c := range n.Children {
		if c.Kind == ast.KindFieldDecl {
			g.line("pub " + SanitizeIdent(c.Spelling) + ": " + rustType(c.Type) + ",")
		} else if c.Kind == ast.KindFunctionDecl || c.Kind == ast.KindConstructor {
			members = append(members, c)
		}
	}
	g.indent--
	g.line("}")
	g.line("")

	if len(members) == 0 {
		return
	}
	g.line("impl " + name + " {")
	g.indent++
	for _, m := range members {
		if m.Kind == ast.KindConstructor {
			g.emitConstructor(n.Spelling, m)
		} else {
			recv := n.Spelling
			g.emitFunction(m, &recv)
		}
	}
	g.indent--
	g.line("}")
	g.line("")
}

// emitConstructor lowers a C++ constructor to an associated function. The
// default constructor becomes `new`; every other constructor kind collides
// onto the single fallback name `with` — only one non-default overload per
// type survives. Member initializers are recovered by scanning the
// constructor's children for member references and pairing each with its
// immediately following sibling.
func (g *Generator) emitConstructor(structName string, n *ast.Node) {
	g.locals = map[string]types.CppType{}
	g.retType = types.Named{Spelling: structName}
	g.inMethod = false

	var params []*ast.Node
	var body *ast.Node
	for _, c := range n.Children {
		switch c.Kind {
		case ast.KindParamDecl:
			params = append(params, c)
		case ast.KindCompound:
			body = c
		}
	}

	fnName := "new"
	if len(params) > 0 {
		fnName = "with"
	}
	mangled := SanitizeIdent(structName) + "_" + fnName

	g.line("/// C++: `" + g.qualified(structName) + "::" + structName + "` (mangled: " + mangled + ")")
	if g.stubs {
		g.line("#[export_name = \"" + mangled + "\"]")
	}

	var parts []string
	for _, p := range params {
		g.locals[p.Spelling] = p.Type
		parts = append(parts, "mut "+SanitizeIdent(p.Spelling)+": "+rustType(p.Type))
	}
	g.line("pub fn " + fnName + "(" + strings.Join(parts, ", ") + ") -> Self {")
	g.indent++

	if g.stubs {
		g.line("unimplemented!(\"" + mangled + "\");")
	} else {
		// Start from the default value, then overwrite the recovered
		// initializers; no recovered entries means "default, then
		// override nothing".
		g.line("let mut this: Self = Default::default();")
		for i := 0; i < len(n.Children); i++ {
			c := n.Children[i]
			if c.Kind != ast.KindMemberExpr || c.Child(0) != nil {
				continue
			}
			field := SanitizeIdent(c.Spelling)
			var init *ast.Node
			if i+1 < len(n.Children) {
				next := n.Children[i+1]
				if next.Kind != ast.KindMemberExpr && next.Kind != ast.KindParamDecl && next.Kind != ast.KindCompound {
					init = next
					i++
				}
			}
			if init == nil {
				// Member named with no initializer expression:
				// value-initialize it.
				g.line("this." + field + " = Default::default();")
				continue
			}
			g.line("this." + field + " = " + g.expr(init) + ";")
		}
		if body != nil {
			for _, s := range body.Children {
				g.stmt(s)
			}
		}
		g.line("this")
	}

	g.indent--
	g.line("}")
	g.line("")
}

// emitTemplate writes a function template as a generic Rust function.
func (g *Generator) emitTemplate(n *ast.Node) {
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
	// The generic parameter list rides on the template node's spelling,
	// comma-separated.
	generics := strings.Split(n.Spelling, ",")
	for i := range generics {
		generics[i] = strings.TrimSpace(generics[i])
	}

	g.locals = map[string]types.CppType{}
	g.retType = fn.Type
	g.inMethod = false
	mangled := g.mangle(fn.Spelling)

	var params []*ast.Node
	var body *ast.Node
	for _, c := range fn.Children {
		switch c.Kind {
		case ast.KindParamDecl:
			params = append(params, c)
		case ast.KindCompound:
			body = c
		}
	}

	g.line("/// C++: `template " + g.qualified(fn.Spelling) + "` (mangled: " + mangled + ")")
	if g.stubs {
		g.line("#[export_name = \"" + mangled + "\"]")
	}
	sig := "pub fn " + mangled + "<" + strings.Join(generics, ", ") + ">("
	var parts []string
	for _, p := range params {
		g.locals[p.Spelling] = p.Type
		parts = append(parts, "mut "+SanitizeIdent(p.Spelling)+": "+rustType(p.Type))
	}
	sig += strings.Join(parts, ", ") + ")"
	if !isVoid(fn.Type) {
		sig += " -> " + rustType(fn.Type)
	}
	g.line(sig + " {")
	g.indent++
	if g.stubs {
		g.line("unimplemented!(\"" + mangled + "\");")
	} else if body != nil {
		g.emitBody(body)
	}
	g.indent--
	g.line("}")
	g.line("")
}

// emitBody writes a function body, turning a trailing return of a non-void
// function into a trailing value expression.
func (g *Generator) emitBody(body *ast.Node) {
	for i, s := range body.Children {
		last := i == len(body.Children)-1
		if last && !isVoid(g.retType) && s.Kind == ast.KindReturnStmt && s.Child(0) != nil {
			g.line(g.expr(s.Child(0)))
			continue
		}
		g.stmt(s)
	}
}

func (g *Generator) line(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	g.buf.WriteString(strings.Repeat("    ", g.indent))
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func rustType(t types.CppType) string {
	if t == nil {
		return "()"
	}
	return types.RustTypeStr(t)
}

func isVoid(t types.CppType) bool {
	if t == nil {
		return true
	}
	_, ok := t.(types.Void)
	return ok
}
