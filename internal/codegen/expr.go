package codegen

import (
	"strings"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/deduce"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

// expr lowers one expression node to Rust text. Total: under-populated
// nodes reconstruct as a literal zero and unknown kinds become placeholder
// comments, assuming well-formed input everywhere else.
func (g *Generator) expr(n *ast.Node) string {
	if n == nil {
		return "0"
	}
	switch n.Kind {
	case ast.KindIntLiteral:
		return literalText(n.Spelling) + intSuffix(n.Type)

	case ast.KindFloatLiteral:
		text := literalText(n.Spelling)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		if _, ok := n.Type.(types.Float); ok {
			return text + "f32"
		}
		return text + "f64"

	case ast.KindBoolLiteral:
		return n.Spelling

	case ast.KindCharLiteral:
		return n.Spelling + " as i8"

	case ast.KindStringLiteral:
		return n.Spelling

	case ast.KindDeclRef:
		if n.Spelling == "this" {
			return "self"
		}
		return SanitizeIdent(n.Spelling)

	case ast.KindThisExpr:
		return "self"

	case ast.KindMemberExpr:
		return g.memberExpr(n)

	case ast.KindUnaryExpr:
		return g.unaryExpr(n)

	case ast.KindBinaryExpr:
		return g.binaryExpr(n)

	case ast.KindCallExpr:
		return g.callExpr(n)

	case ast.KindCastExpr:
		inner := g.expr(n.Child(0))
		if n.Type == nil {
			return inner
		}
		return "(" + inner + " as " + rustType(n.Type) + ")"

	case ast.KindParenExpr:
		return "(" + g.expr(n.Child(0)) + ")"

	case ast.KindInitList:
		return g.initList(n)
	}
	return "/* unsupported expression: " + string(n.Kind) + " */ 0"
}

// memberExpr unifies dot and arrow access: the arrow form gets an explicit
// dereference unless the base is the method receiver.
func (g *Generator) memberExpr(n *ast.Node) string {
	member := SanitizeIdent(n.Spelling)
	base := n.Child(0)
	if base == nil {
		return "self." + member
	}
	if base.Kind == ast.KindThisExpr || (base.Kind == ast.KindDeclRef && base.Spelling == "this") {
		return "self." + member
	}
	baseText := g.expr(base)
	if n.Arrow {
		return "(*" + baseText + ")." + member
	}
	return baseText + "." + member
}

// unaryExpr lowers unary operators. Rust has no increment/decrement, so
// ++/-- desugar into an inline snapshot-mutate-yield block.
func (g *Generator) unaryExpr(n *ast.Node) string {
	operand := n.Child(0)
	if operand == nil {
		return "0"
	}
	target := g.expr(operand)

	switch n.Spelling {
	case "++", "--":
		op := "+="
		if n.Spelling == "--" {
			op = "-="
		}
		if n.Postfix {
			return "{ let __prev = " + target + "; " + target + " " + op + " 1; __prev }"
		}
		return "{ " + target + " " + op + " 1; " + target + " }"
	case "-":
		return "-" + target
	case "+":
		return target
	case "!":
		return "!" + target
	case "~":
		return "!" + target
	case "*":
		return "(*" + target + ")"
	case "&":
		return "&mut " + target
	}
	return target
}

func (g *Generator) binaryExpr(n *ast.Node) string {
	lhs := n.Child(0)
	rhs := n.Child(1)
	if lhs == nil || rhs == nil {
		// Under-populated operator node; reconstruct as zero rather
		// than panic on malformed trees.
		return "0"
	}
	return g.expr(lhs) + " " + n.Spelling + " " + g.expr(rhs)
}

// callExpr lowers a call, qualifying free-function targets through the
// resolver and monomorphizing template calls when every argument type can
// be recovered locally.
func (g *Generator) callExpr(n *ast.Node) string {
	callee := n.Child(0)
	if callee == nil {
		return "0"
	}
	args := make([]string, 0, len(n.Children)-1)
	for _, a := range n.Children[1:] {
		args = append(args, g.expr(a))
	}
	argList := "(" + strings.Join(args, ", ") + ")"

	if callee.Kind == ast.KindMemberExpr {
		// Same arrow/receiver handling as field access: raw pointers do
		// not auto-deref method calls.
		return g.memberExpr(callee) + argList
	}

	if callee.Kind == ast.KindDeclRef {
		name := callee.Spelling
		if tmpl, ok := g.opts.Templates[name]; ok {
			return g.templateCall(tmpl, n) + argList
		}
		if g.opts.Resolver != nil {
			if path, ok := g.opts.Resolver.ResolveFunction(name, g.scope); ok {
				mangled := make([]string, len(path))
				for i, seg := range path {
					mangled[i] = SanitizeIdent(seg)
				}
				return strings.Join(mangled, "_") + argList
			}
		}
		return SanitizeIdent(name) + argList
	}

	return g.expr(callee) + argList
}

// templateCall deduces the template's bindings from the call's argument
// types and renders an explicit turbofish. Failed or partial deduction
// degrades to a plain call and lets Rust infer.
func (g *Generator) templateCall(tmpl *deduce.Template, call *ast.Node) string {
	name := g.mangle(tmpl.Name)

	argTypes := make([]types.CppType, 0, len(call.Children)-1)
	for _, a := range call.Children[1:] {
		t := g.inferType(a)
		if t == nil {
			return name
		}
		argTypes = append(argTypes, t)
	}

	bindings, err := deduce.Deduce(tmpl, argTypes)
	if err != nil {
		return name
	}
	rendered := make([]string, 0, len(tmpl.TypeParams))
	for _, p := range tmpl.TypeParams {
		rendered = append(rendered, types.RustTypeStr(bindings[p]))
	}
	return name + "::<" + strings.Join(rendered, ", ") + ">"
}

// inferType recovers an expression's C++ type from literal kinds and
// locally declared bindings. Nil when unknown; no real type checking
// happens here.
func (g *Generator) inferType(n *ast.Node) types.CppType {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindIntLiteral, ast.KindFloatLiteral, ast.KindCastExpr:
		if n.Type != nil {
			return n.Type
		}
		if n.Kind == ast.KindIntLiteral {
			return types.Int{Signed: true}
		}
		if n.Kind == ast.KindFloatLiteral {
			return types.Double{}
		}
	case ast.KindBoolLiteral:
		return types.Bool{}
	case ast.KindCharLiteral:
		return types.Char{Signed: true}
	case ast.KindStringLiteral:
		return types.Pointer{Pointee: types.Char{Signed: true}, Const: true}
	case ast.KindDeclRef:
		if t, ok := g.locals[n.Spelling]; ok {
			return t
		}
	case ast.KindParenExpr:
		return g.inferType(n.Child(0))
	}
	return nil
}

// initList renders an aggregate initializer as a named-type literal when
// the target is a known struct, and as a bracketed array literal otherwise.
func (g *Generator) initList(n *ast.Node) string {
	if named, ok := n.Type.(types.Named); ok {
		if fields, ok := g.fields[named.Spelling]; ok {
			parts := make([]string, 0, len(fields)+1)
			for i, f := range fields {
				if i >= len(n.Children) {
					parts = append(parts, "..Default::default()")
					break
				}
				parts = append(parts, SanitizeIdent(f.name)+": "+g.expr(n.Children[i]))
			}
			return SanitizeIdent(named.Spelling) + " { " + strings.Join(parts, ", ") + " }"
		}
	}
	elems := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		elems = append(elems, g.expr(c))
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// literalText strips C++ numeric suffixes so the Rust suffix can be
// appended cleanly. Hex literals only shed u/l suffixes: f is a digit there.
func literalText(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strings.TrimRight(s, "uUlL")
	}
	return strings.TrimRight(s, "uUlLfF")
}

// intSuffix derives the Rust literal suffix from the literal's original
// C++ type.
func intSuffix(t types.CppType) string {
	switch t.(type) {
	case types.Char, types.Short, types.Int, types.Long, types.LongLong:
		return types.RustTypeStr(t)
	}
	return "i32"
}
