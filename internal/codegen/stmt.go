package codegen

import (
	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

// stmt lowers one statement node. Malformed arity degrades to a no-op or a
// placeholder comment, never a panic.
func (g *Generator) stmt(n *ast.Node) {
	if n == nil || n.Kind == ast.KindEmpty {
		return
	}
	switch n.Kind {
	case ast.KindCompound:
		g.line("{")
		g.indent++
		for _, c := range n.Children {
			g.stmt(c)
		}
		g.indent--
		g.line("}")

	case ast.KindDeclStmt:
		g.declStmt(n)

	case ast.KindExprStmt:
		if e := n.Child(0); e != nil {
			g.line(g.expr(e) + ";")
		}

	case ast.KindReturnStmt:
		if e := n.Child(0); e != nil {
			g.line("return " + g.expr(e) + ";")
		} else {
			g.line("return;")
		}

	case ast.KindIfStmt:
		g.ifStmt(n, "if ")

	case ast.KindWhileStmt:
		cond := n.Child(0)
		body := n.Child(1)
		if cond == nil || body == nil {
			return
		}
		g.line("while " + g.expr(cond) + " {")
		g.indent++
		g.blockContents(body)
		g.indent--
		g.line("}")

	case ast.KindForStmt:
		g.forStmt(n)

	case ast.KindBreakStmt:
		g.line("break;")

	case ast.KindContinue:
		g.line("continue;")

	case ast.KindUnreachable:
		g.line("unreachable!();")

	default:
		g.line("// unsupported statement: " + string(n.Kind))
	}
}

// declStmt lowers a declaration to a mutable binding with an explicit type.
// A declaration without an initializer synthesizes a type-appropriate
// default value.
func (g *Generator) declStmt(n *ast.Node) {
	name := SanitizeIdent(n.Spelling)
	g.locals[n.Spelling] = n.Type

	init := ""
	if e := n.Child(0); e != nil {
		init = g.expr(e)
	} else {
		init = defaultValue(n.Type)
	}
	g.line("let mut " + name + ": " + rustType(n.Type) + " = " + init + ";")
}

// ifStmt flattens else-if chains instead of nesting them.
func (g *Generator) ifStmt(n *ast.Node, keyword string) {
	cond := n.Child(0)
	then := n.Child(1)
	if cond == nil || then == nil {
		return
	}
	g.line(keyword + g.expr(cond) + " {")
	g.indent++
	g.blockContents(then)
	g.indent--

	alt := n.Child(2)
	if alt == nil || alt.IsEmpty() {
		g.line("}")
		return
	}
	if alt.Kind == ast.KindIfStmt {
		g.ifStmt(alt, "} else if ")
		return
	}
	g.line("} else {")
	g.indent++
	g.blockContents(alt)
	g.indent--
	g.line("}")
}

// forStmt lowers a C-style for loop to its init statement followed by a
// while loop that replays the update expression at the end of the body.
// break/continue inside the synthesized loop still target it directly, so a
// continue skips the replayed update — a known gap in this lowering.
func (g *Generator) forStmt(n *ast.Node) {
	init := n.Child(0)
	cond := n.Child(1)
	update := n.Child(2)
	body := n.Child(3)
	if body == nil {
		return
	}

	if !init.IsEmpty() {
		g.stmt(init)
	}
	condText := "true"
	if !cond.IsEmpty() {
		condText = g.expr(cond)
	}
	g.line("while " + condText + " {")
	g.indent++
	g.blockContents(body)
	if !update.IsEmpty() {
		g.line(g.expr(update) + ";")
	}
	g.indent--
	g.line("}")
}

// blockContents emits the statements of a body without introducing another
// brace pair; a non-compound body is a single statement.
func (g *Generator) blockContents(n *ast.Node) {
	if n == nil {
		return
	}
	if n.Kind == ast.KindCompound {
		for _, c := range n.Children {
			g.stmt(c)
		}
		return
	}
	g.stmt(n)
}

// defaultValue synthesizes a zero/null default for declarations without an
// initializer.
func defaultValue(t types.CppType) string {
	switch x := t.(type) {
	case nil:
		return "Default::default()"
	case types.Bool:
		return "false"
	case types.Char, types.Short, types.Int, types.Long, types.LongLong:
		return "0" + types.RustTypeStr(t)
	case types.Float:
		return "0.0f32"
	case types.Double:
		return "0.0f64"
	case types.Pointer:
		if x.Const {
			return "std::ptr::null()"
		}
		return "std::ptr::null_mut()"
	case types.Array:
		if x.Size >= 0 {
			return "Default::default()"
		}
		return "Vec::new()"
	}
	return "Default::default()"
}
