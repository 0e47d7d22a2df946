// Package ast defines the parsed C++ node tree handed to the code
// generator. The tree is produced by the parser adapter and is read-only
// from then on: each node owns its children and there are no back edges.
package ast

import "github.com/cxx2rs/cxx2rs/internal/types"

// Kind is the closed set of node discriminants. Generators pattern-match on
// it and silently skip anything they do not recognize.
type Kind string

const (
	KindTranslationUnit Kind = "translation_unit"
	KindNamespace       Kind = "namespace"
	KindFunctionDecl    Kind = "function_decl"
	KindParamDecl       Kind = "param_decl"
	KindStructDecl      Kind = "struct_decl"
	KindFieldDecl       Kind = "field_decl"
	KindConstructor     Kind = "constructor"
	KindTemplateDecl    Kind = "template_decl"
	KindUsingDirective  Kind = "using_directive"
	KindUsingDecl       Kind = "using_decl"

	KindCompound    Kind = "compound"
	KindDeclStmt    Kind = "decl_stmt"
	KindExprStmt    Kind = "expr_stmt"
	KindIfStmt      Kind = "if_stmt"
	KindWhileStmt   Kind = "while_stmt"
	KindForStmt     Kind = "for_stmt"
	KindReturnStmt  Kind = "return_stmt"
	KindBreakStmt   Kind = "break_stmt"
	KindContinue    Kind = "continue_stmt"
	KindUnreachable Kind = "unreachable"
	KindEmpty       Kind = "empty"

	KindBinaryExpr    Kind = "binary_expr"
	KindUnaryExpr     Kind = "unary_expr"
	KindCallExpr      Kind = "call_expr"
	KindMemberExpr    Kind = "member_expr"
	KindDeclRef       Kind = "decl_ref"
	KindThisExpr      Kind = "this_expr"
	KindCastExpr      Kind = "cast_expr"
	KindParenExpr     Kind = "paren_expr"
	KindInitList      Kind = "init_list"
	KindIntLiteral    Kind = "int_literal"
	KindFloatLiteral  Kind = "float_literal"
	KindBoolLiteral   Kind = "bool_literal"
	KindCharLiteral   Kind = "char_literal"
	KindStringLiteral Kind = "string_literal"

	KindUnknown Kind = "unknown"
)

// Location is a best-effort source position.
type Location struct {
	File string
	Line int
	Col  int
}

// Node is one vertex of the parsed tree. Which fields are meaningful
// depends on Kind: Spelling holds names, operator text, or literal text;
// Type is set on declarations, parameters, literals, and casts.
type Node struct {
	Kind     Kind
	Spelling string
	Type     types.CppType
	Children []*Node
	Loc      Location

	// Arrow marks pointer member access (a->b rather than a.b).
	Arrow bool
	// Postfix distinguishes x++ from ++x on unary increment/decrement.
	Postfix bool
}

// Child returns the i-th child or nil when the node is under-populated.
// Generators use it so malformed arity degrades to a no-op.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IsEmpty reports a missing or placeholder node.
func (n *Node) IsEmpty() bool {
	return n == nil || n.Kind == KindEmpty
}
