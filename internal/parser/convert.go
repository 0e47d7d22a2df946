package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

// stmt converts one statement CST node. Unknown statement kinds keep their
// CST type as the spelling so the generator can leave a placeholder.
func (c *converter) stmt(n *sitter.Node) *ast.Node {
	if n == nil {
		return &ast.Node{Kind: ast.KindEmpty}
	}
	switch n.Type() {
	case "compound_statement":
		out := &ast.Node{Kind: ast.KindCompound, Loc: c.loc(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			out.Children = append(out.Children, c.stmt(child))
		}
		return out

	case "declaration":
		name, spelling := c.declaratorParts(n)
		out := &ast.Node{
			Kind:     ast.KindDeclStmt,
			Spelling: name,
			Type:     types.FromSpelling(spelling),
			Loc:      c.loc(n),
		}
		if init := findInitValue(n); init != nil {
			out.Children = append(out.Children, c.expr(init))
		}
		return out

	case "expression_statement":
		out := &ast.Node{Kind: ast.KindExprStmt, Loc: c.loc(n)}
		if e := n.NamedChild(0); e != nil {
			out.Children = append(out.Children, c.expr(e))
		}
		return out

	case "return_statement":
		out := &ast.Node{Kind: ast.KindReturnStmt, Loc: c.loc(n)}
		if e := n.NamedChild(0); e != nil {
			out.Children = append(out.Children, c.expr(e))
		}
		return out

	case "if_statement":
		out := &ast.Node{Kind: ast.KindIfStmt, Loc: c.loc(n)}
		out.Children = append(out.Children, c.condition(n.ChildByFieldName("condition")))
		out.Children = append(out.Children, c.stmt(n.ChildByFieldName("consequence")))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = alt.NamedChild(0)
			}
			out.Children = append(out.Children, c.stmt(alt))
		}
		return out

	case "while_statement":
		return &ast.Node{
			Kind: ast.KindWhileStmt,
			Loc:  c.loc(n),
			Children: []*ast.Node{
				c.condition(n.ChildByFieldName("condition")),
				c.stmt(n.ChildByFieldName("body")),
			},
		}

	case "for_statement":
		return c.forStmt(n)

	case "break_statement":
		return &ast.Node{Kind: ast.KindBreakStmt, Loc: c.loc(n)}

	case "continue_statement":
		return &ast.Node{Kind: ast.KindContinue, Loc: c.loc(n)}
	}
	return &ast.Node{Kind: ast.Kind(n.Type()), Loc: c.loc(n)}
}

// forStmt always yields exactly four children — init, condition, update,
// body — with empty placeholders for omitted clauses, so downstream arity
// checks stay trivial.
func (c *converter) forStmt(n *sitter.Node) *ast.Node {
	out := &ast.Node{Kind: ast.KindForStmt, Loc: c.loc(n)}

	init := &ast.Node{Kind: ast.KindEmpty}
	if in := n.ChildByFieldName("initializer"); in != nil {
		init = c.stmt(in)
	}
	cond := &ast.Node{Kind: ast.KindEmpty}
	if cn := n.ChildByFieldName("condition"); cn != nil {
		cond = c.expr(cn)
	}
	update := &ast.Node{Kind: ast.KindEmpty}
	if up := n.ChildByFieldName("update"); up != nil {
		update = c.expr(up)
	}

	var body *ast.Node
	if b := n.ChildByFieldName("body"); b != nil {
		body = c.stmt(b)
	} else if count := int(n.NamedChildCount()); count > 0 {
		body = c.stmt(n.NamedChild(count - 1))
	} else {
		body = &ast.Node{Kind: ast.KindCompound}
	}

	out.Children = []*ast.Node{init, cond, update, body}
	return out
}

// condition unwraps the parenthesized/condition-clause wrapping tree-sitter
// puts around control-flow conditions.
func (c *converter) condition(n *sitter.Node) *ast.Node {
	if n == nil {
		return &ast.Node{Kind: ast.KindEmpty}
	}
	switch n.Type() {
	case "parenthesized_expression", "condition_clause":
		if inner := n.NamedChild(0); inner != nil {
			return c.expr(inner)
		}
		return &ast.Node{Kind: ast.KindEmpty}
	}
	return c.expr(n)
}

// findInitValue locates the initializer expression of a declaration, if
// any.
func findInitValue(n *sitter.Node) *sitter.Node {
	d := n.ChildByFieldName("declarator")
	for d != nil {
		if d.Type() == "init_declarator" {
			return d.ChildByFieldName("value")
		}
		d = firstDeclaratorChild(d)
	}
	return nil
}

// expr converts one expression CST node. Total: unknown kinds carry their
// CST type through as an unknown node.
func (c *converter) expr(n *sitter.Node) *ast.Node {
	if n == nil {
		return &ast.Node{Kind: ast.KindEmpty}
	}
	switch n.Type() {
	case "number_literal":
		return c.numberLiteral(n)

	case "string_literal", "raw_string_literal", "concatenated_string":
		return &ast.Node{Kind: ast.KindStringLiteral, Spelling: c.text(n), Loc: c.loc(n)}

	case "char_literal":
		return &ast.Node{
			Kind:     ast.KindCharLiteral,
			Spelling: c.text(n),
			Type:     types.Char{Signed: true},
			Loc:      c.loc(n),
		}

	case "true", "false":
		return &ast.Node{Kind: ast.KindBoolLiteral, Spelling: n.Type(), Type: types.Bool{}, Loc: c.loc(n)}

	case "identifier", "qualified_identifier", "field_identifier":
		return &ast.Node{Kind: ast.KindDeclRef, Spelling: c.text(n), Loc: c.loc(n)}

	case "this":
		return &ast.Node{Kind: ast.KindThisExpr, Loc: c.loc(n)}

	case "binary_expression", "assignment_expression":
		return &ast.Node{
			Kind:     ast.KindBinaryExpr,
			Spelling: c.text(n.ChildByFieldName("operator")),
			Loc:      c.loc(n),
			Children: []*ast.Node{
				c.expr(n.ChildByFieldName("left")),
				c.expr(n.ChildByFieldName("right")),
			},
		}

	case "unary_expression", "pointer_expression":
		return &ast.Node{
			Kind:     ast.KindUnaryExpr,
			Spelling: c.text(n.ChildByFieldName("operator")),
			Loc:      c.loc(n),
			Children: []*ast.Node{c.expr(n.ChildByFieldName("argument"))},
		}

	case "update_expression":
		op := n.ChildByFieldName("operator")
		arg := n.ChildByFieldName("argument")
		postfix := op != nil && arg != nil && arg.StartByte() < op.StartByte()
		return &ast.Node{
			Kind:     ast.KindUnaryExpr,
			Spelling: c.text(op),
			Postfix:  postfix,
			Loc:      c.loc(n),
			Children: []*ast.Node{c.expr(arg)},
		}

	case "call_expression":
		out := &ast.Node{Kind: ast.KindCallExpr, Loc: c.loc(n)}
		out.Children = append(out.Children, c.expr(n.ChildByFieldName("function")))
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				out.Children = append(out.Children, c.expr(args.NamedChild(i)))
			}
		}
		return out

	case "field_expression":
		arrow := false
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "->" {
				arrow = true
				break
			}
		}
		return &ast.Node{
			Kind:     ast.KindMemberExpr,
			Spelling: c.text(n.ChildByFieldName("field")),
			Arrow:    arrow,
			Loc:      c.loc(n),
			Children: []*ast.Node{c.expr(n.ChildByFieldName("argument"))},
		}

	case "parenthesized_expression":
		return &ast.Node{
			Kind:     ast.KindParenExpr,
			Loc:      c.loc(n),
			Children: []*ast.Node{c.expr(n.NamedChild(0))},
		}

	case "cast_expression":
		return &ast.Node{
			Kind:     ast.KindCastExpr,
			Type:     types.FromSpelling(c.text(n.ChildByFieldName("type"))),
			Loc:      c.loc(n),
			Children: []*ast.Node{c.expr(n.ChildByFieldName("value"))},
		}

	case "initializer_list":
		out := &ast.Node{Kind: ast.KindInitList, Loc: c.loc(n)}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			out.Children = append(out.Children, c.expr(n.NamedChild(i)))
		}
		return out
	}
	return &ast.Node{Kind: ast.Kind(n.Type()), Spelling: c.text(n), Loc: c.loc(n)}
}

// numberLiteral classifies a numeric literal and records the C++ type its
// suffix implies.
func (c *converter) numberLiteral(n *sitter.Node) *ast.Node {
	text := c.text(n)
	lower := strings.ToLower(text)
	// A trailing f in a hex literal is a digit, not a float suffix.
	isHex := strings.HasPrefix(lower, "0x")
	isFloat := !isHex && (strings.ContainsAny(lower, ".e") || strings.HasSuffix(lower, "f"))

	if isFloat {
		t := types.CppType(types.Double{})
		if strings.HasSuffix(lower, "f") {
			t = types.Float{}
		}
		return &ast.Node{Kind: ast.KindFloatLiteral, Spelling: text, Type: t, Loc: c.loc(n)}
	}

	unsigned := strings.Contains(lower, "u")
	var t types.CppType
	switch {
	case strings.HasSuffix(strings.TrimRight(lower, "u"), "ll"):
		t = types.LongLong{Signed: !unsigned}
	case strings.HasSuffix(strings.TrimRight(lower, "u"), "l"):
		t = types.Long{Signed: !unsigned}
	default:
		t = types.Int{Signed: !unsigned}
	}
	return &ast.Node{Kind: ast.KindIntLiteral, Spelling: text, Type: t, Loc: c.loc(n)}
}
