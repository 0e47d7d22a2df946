// Package parser adapts the tree-sitter C++ grammar to the node tree the
// code generator consumes. It is the only place the external parser is
// touched; everything downstream sees ast.Node values and nothing else.
package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

// Parser parses C++ source using tree-sitter.
type Parser struct {
	cppParser *sitter.Parser
}

// NewParser creates a parser configured for C++.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{cppParser: p}
}

// ParseFile parses a single file into a translation-unit node.
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*ast.Node, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ParseSource(ctx, filePath, content)
}

// ParseSource parses source text into a translation-unit node. Constructs
// the grammar does not model for us are skipped silently; the result is
// always a well-formed tree.
func (p *Parser) ParseSource(ctx context.Context, filePath string, source []byte) (*ast.Node, error) {
	tree, err := p.cppParser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	c := &converter{source: source, file: filePath}
	root := &ast.Node{Kind: ast.KindTranslationUnit, Loc: c.loc(tree.RootNode())}
	for i := 0; i < int(tree.RootNode().NamedChildCount()); i++ {
		if decl := c.decl(tree.RootNode().NamedChild(i), ""); decl != nil {
			root.Children = append(root.Children, decl)
		}
	}
	return root, nil
}

// converter turns tree-sitter CST nodes into ast nodes.
type converter struct {
	source []byte
	file   string
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(c.source)
}

func (c *converter) loc(n *sitter.Node) ast.Location {
	if n == nil {
		return ast.Location{File: c.file}
	}
	return ast.Location{
		File: c.file,
		Line: int(n.StartPoint().Row) + 1,
		Col:  int(n.StartPoint().Column) + 1,
	}
}

// decl converts one top-level or namespace-level declaration. structName is
// the enclosing record's name when converting members, empty otherwise.
func (c *converter) decl(n *sitter.Node, structName string) *ast.Node {
	switch n.Type() {
	case "function_definition":
		return c.function(n, structName)

	case "namespace_definition":
		out := &ast.Node{Kind: ast.KindNamespace, Spelling: c.text(n.ChildByFieldName("name")), Loc: c.loc(n)}
		body := n.ChildByFieldName("body")
		if body == nil {
			return out
		}
		for i := 0; i < int(body.NamedChildCount()); i++ {
			if d := c.decl(body.NamedChild(i), ""); d != nil {
				out.Children = append(out.Children, d)
			}
		}
		return out

	case "using_declaration":
		// `using namespace x;` and `using x::y;` share the CST node
		// type; the namespace keyword child tells them apart.
		target := n.NamedChild(int(n.NamedChildCount()) - 1)
		kind := ast.KindUsingDecl
		for i := 0; i < int(n.ChildCount()); i++ {
			if n.Child(i).Type() == "namespace" {
				kind = ast.KindUsingDirective
				break
			}
		}
		return &ast.Node{Kind: kind, Spelling: c.text(target), Loc: c.loc(n)}

	case "template_declaration":
		return c.template(n)

	case "class_specifier", "struct_specifier":
		return c.record(n)
	}
	// Unrecognized declaration kinds are skipped.
	return nil
}

// template converts a function template. The comma-joined type parameter
// names ride on the node's spelling.
func (c *converter) template(n *sitter.Node) *ast.Node {
	var params []string
	if list := n.ChildByFieldName("parameters"); list != nil {
		for i := 0; i < int(list.NamedChildCount()); i++ {
			tp := list.NamedChild(i)
			switch tp.Type() {
			case "type_parameter_declaration", "variadic_type_parameter_declaration":
				if id := tp.NamedChild(0); id != nil {
					params = append(params, c.text(id))
				}
			}
		}
	}

	out := &ast.Node{Kind: ast.KindTemplateDecl, Spelling: strings.Join(params, ", "), Loc: c.loc(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "function_definition" {
			if fn := c.function(child, ""); fn != nil {
				markTemplateParams(fn, params)
				out.Children = append(out.Children, fn)
			}
		}
	}
	if len(out.Children) == 0 {
		return nil
	}
	return out
}

// markTemplateParams rewrites Named types whose spelling is a declared
// template parameter into TemplateParam values, recursing through
// composite shapes.
func markTemplateParams(fn *ast.Node, params []string) {
	declared := make(map[string]int, len(params))
	for i, p := range params {
		declared[p] = i
	}
	var rewrite func(t types.CppType) types.CppType
	rewrite = func(t types.CppType) types.CppType {
		switch x := t.(type) {
		case types.Named:
			if idx, ok := declared[x.Spelling]; ok {
				return types.TemplateParam{Name: x.Spelling, Index: idx}
			}
		case types.Pointer:
			return types.Pointer{Pointee: rewrite(x.Pointee), Const: x.Const}
		case types.Reference:
			return types.Reference{Referent: rewrite(x.Referent), Const: x.Const, RValue: x.RValue}
		case types.Array:
			return types.Array{Element: rewrite(x.Element), Size: x.Size}
		}
		return t
	}
	fn.Type = rewrite(fn.Type)
	for _, child := range fn.Children {
		if child.Kind == ast.KindParamDecl && child.Type != nil {
			child.Type = rewrite(child.Type)
		}
	}
}

// record converts a class or struct definition: fields, methods, and
// constructors.
func (c *converter) record(n *sitter.Node) *ast.Node {
	name := c.text(n.ChildByFieldName("name"))
	out := &ast.Node{Kind: ast.KindStructDecl, Spelling: name, Loc: c.loc(n)}
	body := n.ChildByFieldName("body")
	if body == nil {
		return out
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "field_declaration":
			fieldName, spelling := c.declaratorParts(member)
			if fieldName == "" {
				continue
			}
			out.Children = append(out.Children, &ast.Node{
				Kind:     ast.KindFieldDecl,
				Spelling: fieldName,
				Type:     types.FromSpelling(spelling),
				Loc:      c.loc(member),
			})
		case "function_definition":
			if fn := c.function(member, name); fn != nil {
				out.Children = append(out.Children, fn)
			}
		}
	}
	return out
}

// function converts a function definition, method, or constructor.
func (c *converter) function(n *sitter.Node, structName string) *ast.Node {
	declarator := n.ChildByFieldName("declarator")
	fnDecl := findFunctionDeclarator(declarator)
	if fnDecl == nil {
		return nil
	}
	name := declaratorName(c, fnDecl.ChildByFieldName("declarator"))
	if name == "" {
		name = c.text(fnDecl.ChildByFieldName("declarator"))
	}
	if strings.HasPrefix(name, "~") {
		// Destructors have no counterpart here; Drop synthesis is out
		// of scope.
		return nil
	}

	isCtor := structName != "" && name == structName
	kind := ast.KindFunctionDecl
	if isCtor {
		kind = ast.KindConstructor
	}

	out := &ast.Node{Kind: kind, Spelling: name, Loc: c.loc(n)}
	if !isCtor {
		retSpelling := c.text(n.ChildByFieldName("type")) + declaratorSuffix(declarator)
		out.Type = types.FromSpelling(retSpelling)
	}

	if params := fnDecl.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			pd := params.NamedChild(i)
			if pd.Type() != "parameter_declaration" {
				continue
			}
			pname, spelling := c.declaratorParts(pd)
			out.Children = append(out.Children, &ast.Node{
				Kind:     ast.KindParamDecl,
				Spelling: pname,
				Type:     types.FromSpelling(spelling),
				Loc:      c.loc(pd),
			})
		}
	}

	// Constructor member-initializer list: each entry becomes a member
	// reference followed by its initializer expression, or by nothing for
	// empty value-initialization.
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "field_initializer_list" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			fi := child.NamedChild(j)
			if fi.Type() != "field_initializer" {
				continue
			}
			out.Children = append(out.Children, &ast.Node{
				Kind:     ast.KindMemberExpr,
				Spelling: c.text(fi.NamedChild(0)),
				Loc:      c.loc(fi),
			})
			if args := fi.NamedChild(1); args != nil && int(args.NamedChildCount()) > 0 {
				out.Children = append(out.Children, c.expr(args.NamedChild(0)))
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		out.Children = append(out.Children, c.stmt(body))
	}
	return out
}

// declaratorParts extracts the declared name and the full type spelling
// (base type plus pointer/reference/array declarator structure) from a
// declaration-shaped node.
func (c *converter) declaratorParts(n *sitter.Node) (string, string) {
	spelling := c.text(n.ChildByFieldName("type"))
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "type_qualifier" {
			spelling = "const " + spelling
			break
		}
	}
	d := n.ChildByFieldName("declarator")
	spelling += declaratorSuffix(d)
	return declaratorName(c, d), spelling
}

// declaratorSuffix folds pointer/reference/array wrappers around the base
// type back into a single spelling FromSpelling can decompose.
func declaratorSuffix(d *sitter.Node) string {
	suffix := ""
	for d != nil {
		switch d.Type() {
		case "pointer_declarator", "abstract_pointer_declarator":
			suffix += "*"
			d = firstDeclaratorChild(d)
		case "reference_declarator", "abstract_reference_declarator":
			amp := "&"
			for i := 0; i < int(d.ChildCount()); i++ {
				if d.Child(i).Type() == "&&" {
					amp = "&&"
					break
				}
			}
			suffix += amp
			d = firstDeclaratorChild(d)
		case "array_declarator":
			d = d.ChildByFieldName("declarator")
			suffix += "[]"
		case "init_declarator":
			d = d.ChildByFieldName("declarator")
		default:
			return suffix
		}
	}
	return suffix
}

func firstDeclaratorChild(d *sitter.Node) *sitter.Node {
	if inner := d.ChildByFieldName("declarator"); inner != nil {
		return inner
	}
	for i := 0; i < int(d.NamedChildCount()); i++ {
		child := d.NamedChild(i)
		switch child.Type() {
		case "identifier", "field_identifier", "function_declarator",
			"pointer_declarator", "reference_declarator", "array_declarator",
			"init_declarator":
			return child
		}
	}
	return nil
}

// declaratorName digs through declarator wrappers for the declared
// identifier.
func declaratorName(c *converter, d *sitter.Node) string {
	for d != nil {
		switch d.Type() {
		case "identifier", "field_identifier", "qualified_identifier",
			"operator_name", "destructor_name":
			return c.text(d)
		case "pointer_declarator", "reference_declarator", "array_declarator",
			"init_declarator", "function_declarator", "parenthesized_declarator":
			d = firstDeclaratorChild(d)
		default:
			return ""
		}
	}
	return ""
}

// findFunctionDeclarator walks wrappers (pointer returns and the like) to
// the function_declarator node.
func findFunctionDeclarator(d *sitter.Node) *sitter.Node {
	for d != nil {
		if d.Type() == "function_declarator" {
			return d
		}
		d = firstDeclaratorChild(d)
	}
	return nil
}
