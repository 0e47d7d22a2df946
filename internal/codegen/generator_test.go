package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxx2rs/cxx2rs/internal/ast"
	"github.com/cxx2rs/cxx2rs/internal/deduce"
	"github.com/cxx2rs/cxx2rs/internal/resolve"
	"github.com/cxx2rs/cxx2rs/internal/types"
)

func intT() types.CppType { return types.Int{Signed: true} }

func node(kind ast.Kind, spelling string, children ...*ast.Node) *ast.Node {
	return &ast.Node{Kind: kind, Spelling: spelling, Children: children}
}

func typed(n *ast.Node, t types.CppType) *ast.Node {
	n.Type = t
	return n
}

// int add(int a, int b) { return a + b; }
func addFunction() *ast.Node {
	body := node(ast.KindCompound, "",
		node(ast.KindReturnStmt, "",
			node(ast.KindBinaryExpr, "+",
				node(ast.KindDeclRef, "a"),
				node(ast.KindDeclRef, "b"),
			),
		),
	)
	fn := node(ast.KindFunctionDecl, "add",
		typed(node(ast.KindParamDecl, "a"), intT()),
		typed(node(ast.KindParamDecl, "b"), intT()),
		body,
	)
	return typed(fn, intT())
}

func TestGenerate_AddFunction(t *testing.T) {
	out := Generate(node(ast.KindTranslationUnit, "", addFunction()), Options{})

	assert.Contains(t, out, "pub fn add(mut a: i32, mut b: i32) -> i32 {")
	// Trailing return becomes a value expression.
	assert.Contains(t, out, "    a + b\n")
	assert.NotContains(t, out, "return a + b")
	assert.Contains(t, out, "/// C++: `add` (mangled: add)")
}

func TestGenerate_IfElse(t *testing.T) {
	// if (a > b) return a; else return b;
	body := node(ast.KindCompound, "",
		node(ast.KindIfStmt, "",
			node(ast.KindBinaryExpr, ">", node(ast.KindDeclRef, "a"), node(ast.KindDeclRef, "b")),
			node(ast.KindReturnStmt, "", node(ast.KindDeclRef, "a")),
			node(ast.KindReturnStmt, "", node(ast.KindDeclRef, "b")),
		),
	)
	fn := typed(node(ast.KindFunctionDecl, "max2",
		typed(node(ast.KindParamDecl, "a"), intT()),
		typed(node(ast.KindParamDecl, "b"), intT()),
		body,
	), intT())

	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "if a > b {")
	assert.Contains(t, out, "return a;")
	assert.Contains(t, out, "} else {")
	assert.Contains(t, out, "return b;")
}

func TestGenerate_ElseIfChainFlattens(t *testing.T) {
	inner := node(ast.KindIfStmt, "",
		node(ast.KindBinaryExpr, "<", node(ast.KindDeclRef, "x"), node(ast.KindDeclRef, "y")),
		node(ast.KindReturnStmt, "", typed(node(ast.KindIntLiteral, "1"), intT())),
		node(ast.KindReturnStmt, "", typed(node(ast.KindIntLiteral, "2"), intT())),
	)
	outer := node(ast.KindIfStmt, "",
		node(ast.KindBinaryExpr, ">", node(ast.KindDeclRef, "x"), node(ast.KindDeclRef, "y")),
		node(ast.KindReturnStmt, "", typed(node(ast.KindIntLiteral, "0"), intT())),
		inner,
	)
	fn := typed(node(ast.KindFunctionDecl, "cmp",
		typed(node(ast.KindParamDecl, "x"), intT()),
		typed(node(ast.KindParamDecl, "y"), intT()),
		node(ast.KindCompound, "", outer, node(ast.KindReturnStmt, "", typed(node(ast.KindIntLiteral, "2"), intT()))),
	), intT())

	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "} else if x < y {")
	// No doubly-nested `else { if`.
	assert.NotContains(t, out, "else {\n        if")
}

func TestGenerate_DeclDefaults(t *testing.T) {
	tests := []struct {
		name string
		typ  types.CppType
		want string
	}{
		{"int zero", intT(), "let mut v: i32 = 0i32;"},
		{"double zero", types.Double{}, "let mut v: f64 = 0.0f64;"},
		{"bool false", types.Bool{}, "let mut v: bool = false;"},
		{"pointer null", types.Pointer{Pointee: intT()}, "let mut v: *mut i32 = std::ptr::null_mut();"},
		{"named default", types.Named{Spelling: "Widget"}, "let mut v: Widget = Default::default();"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := node(ast.KindFunctionDecl, "f",
				node(ast.KindCompound, "", typed(node(ast.KindDeclStmt, "v"), tt.typ)),
			)
			out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGenerate_ForLoopLowering(t *testing.T) {
	// for (int i = 0; i < n; i++) { total = total + i; }
	loop := node(ast.KindForStmt, "",
		typed(node(ast.KindDeclStmt, "i", typed(node(ast.KindIntLiteral, "0"), intT())), intT()),
		node(ast.KindBinaryExpr, "<", node(ast.KindDeclRef, "i"), node(ast.KindDeclRef, "n")),
		&ast.Node{Kind: ast.KindUnaryExpr, Spelling: "++", Postfix: true, Children: []*ast.Node{node(ast.KindDeclRef, "i")}},
		node(ast.KindCompound, "",
			node(ast.KindExprStmt, "",
				node(ast.KindBinaryExpr, "=",
					node(ast.KindDeclRef, "total"),
					node(ast.KindBinaryExpr, "+", node(ast.KindDeclRef, "total"), node(ast.KindDeclRef, "i")),
				),
			),
		),
	)
	fn := node(ast.KindFunctionDecl, "sum",
		typed(node(ast.KindParamDecl, "n"), intT()),
		node(ast.KindCompound, "", loop),
	)

	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "let mut i: i32 = 0i32;")
	assert.Contains(t, out, "while i < n {")
	// The update is replayed at the end of the body.
	assert.Contains(t, out, "{ let __prev = i; i += 1; __prev };")
	idxBody := strings.Index(out, "total = total + i")
	idxInc := strings.Index(out, "i += 1")
	require.Greater(t, idxInc, idxBody)
}

func TestGenerate_ForWithoutCondition(t *testing.T) {
	loop := node(ast.KindForStmt, "",
		node(ast.KindEmpty, ""),
		node(ast.KindEmpty, ""),
		node(ast.KindEmpty, ""),
		node(ast.KindCompound, "", node(ast.KindBreakStmt, "")),
	)
	fn := node(ast.KindFunctionDecl, "spin", node(ast.KindCompound, "", loop))
	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "while true {")
	assert.Contains(t, out, "break;")
}

func TestGenerate_IncrementDecrementDesugar(t *testing.T) {
	pre := &ast.Node{Kind: ast.KindUnaryExpr, Spelling: "--", Children: []*ast.Node{node(ast.KindDeclRef, "x")}}
	fn := node(ast.KindFunctionDecl, "f",
		typed(node(ast.KindParamDecl, "x"), intT()),
		node(ast.KindCompound, "", node(ast.KindExprStmt, "", pre)),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "{ x -= 1; x };")
}

func TestGenerate_MemberAccess(t *testing.T) {
	// p->len where p is not the receiver: explicit dereference.
	arrow := &ast.Node{Kind: ast.KindMemberExpr, Spelling: "len", Arrow: true,
		Children: []*ast.Node{node(ast.KindDeclRef, "p")}}
	// this->size: receiver access, no dereference.
	self := &ast.Node{Kind: ast.KindMemberExpr, Spelling: "size", Arrow: true,
		Children: []*ast.Node{node(ast.KindThisExpr, "")}}
	dot := &ast.Node{Kind: ast.KindMemberExpr, Spelling: "cap",
		Children: []*ast.Node{node(ast.KindDeclRef, "v")}}

	fn := node(ast.KindFunctionDecl, "f",
		node(ast.KindCompound, "",
			node(ast.KindExprStmt, "", arrow),
			node(ast.KindExprStmt, "", self),
			node(ast.KindExprStmt, "", dot),
		),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "(*p).len;")
	assert.Contains(t, out, "self.size;")
	assert.Contains(t, out, "v.cap;")
}

func TestGenerate_NamespaceHoisting(t *testing.T) {
	fn := typed(node(ast.KindFunctionDecl, "area",
		typed(node(ast.KindParamDecl, "r"), types.Double{}),
		node(ast.KindCompound, "", node(ast.KindReturnStmt, "", node(ast.KindDeclRef, "r"))),
	), types.Double{})
	ns := node(ast.KindNamespace, "geo", fn)

	out := Generate(node(ast.KindTranslationUnit, "", ns), Options{})
	// Flat output, not a nested module.
	assert.Contains(t, out, "pub fn geo_area(")
	assert.NotContains(t, out, "mod geo")
	assert.Contains(t, out, "/// C++: `geo::area` (mangled: geo_area)")
}

func TestGenerate_ResolverQualifiesCalls(t *testing.T) {
	r := resolve.NewResolver(
		[]resolve.Path{{"util", "helper"}},
		nil,
		[]resolve.UsingDirective{{Scope: resolve.Path{}, Namespace: resolve.Path{"util"}}},
		nil,
	)
	call := node(ast.KindCallExpr, "", node(ast.KindDeclRef, "helper"))
	fn := node(ast.KindFunctionDecl, "main",
		node(ast.KindCompound, "", node(ast.KindExprStmt, "", call)),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{Resolver: r})
	assert.Contains(t, out, "util_helper();")
}

func TestGenerate_TemplateCallTurbofish(t *testing.T) {
	tp := types.TemplateParam{Name: "T"}
	tmpl := &deduce.Template{
		Name:       "max",
		TypeParams: []string{"T"},
		Params:     []deduce.Param{{Name: "a", Type: tp}, {Name: "b", Type: tp}},
		Return:     tp,
	}
	call := node(ast.KindCallExpr, "",
		node(ast.KindDeclRef, "max"),
		typed(node(ast.KindIntLiteral, "1"), intT()),
		typed(node(ast.KindIntLiteral, "2"), intT()),
	)
	fn := node(ast.KindFunctionDecl, "main",
		node(ast.KindCompound, "", node(ast.KindExprStmt, "", call)),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn),
		Options{Templates: map[string]*deduce.Template{"max": tmpl}})
	assert.Contains(t, out, "max::<i32>(1i32, 2i32);")
}

func TestGenerate_TemplateCallDeductionFailureDegrades(t *testing.T) {
	tp := types.TemplateParam{Name: "T"}
	tmpl := &deduce.Template{
		Name:       "max",
		TypeParams: []string{"T"},
		Params:     []deduce.Param{{Name: "a", Type: tp}, {Name: "b", Type: tp}},
	}
	call := node(ast.KindCallExpr, "",
		node(ast.KindDeclRef, "max"),
		typed(node(ast.KindIntLiteral, "1"), intT()),
		typed(node(ast.KindFloatLiteral, "2.5"), types.Double{}),
	)
	fn := node(ast.KindFunctionDecl, "main",
		node(ast.KindCompound, "", node(ast.KindExprStmt, "", call)),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn),
		Options{Templates: map[string]*deduce.Template{"max": tmpl}})
	// Conflict: no turbofish, plain call.
	assert.Contains(t, out, "max(1i32, 2.5f64);")
	assert.NotContains(t, out, "::<")
}

func TestGenerate_Struct(t *testing.T) {
	method := typed(node(ast.KindFunctionDecl, "norm",
		node(ast.KindCompound, "",
			node(ast.KindReturnStmt, "",
				&ast.Node{Kind: ast.KindMemberExpr, Spelling: "x", Arrow: true,
					Children: []*ast.Node{node(ast.KindThisExpr, "")}},
			),
		),
	), intT())
	st := node(ast.KindStructDecl, "Point",
		typed(node(ast.KindFieldDecl, "x"), intT()),
		typed(node(ast.KindFieldDecl, "y"), intT()),
		method,
	)
	out := Generate(node(ast.KindTranslationUnit, "", st), Options{})
	assert.Contains(t, out, "pub struct Point {")
	assert.Contains(t, out, "pub x: i32,")
	assert.Contains(t, out, "impl Point {")
	assert.Contains(t, out, "pub fn norm(&mut self) -> i32 {")
	assert.Contains(t, out, "self.x")
}

func TestGenerate_ConstructorInitializers(t *testing.T) {
	// Point(int px) : x(px), y() {}
	ctor := node(ast.KindConstructor, "Point",
		typed(node(ast.KindParamDecl, "px"), intT()),
		&ast.Node{Kind: ast.KindMemberExpr, Spelling: "x"},
		node(ast.KindDeclRef, "px"),
		&ast.Node{Kind: ast.KindMemberExpr, Spelling: "y"},
		node(ast.KindCompound, ""),
	)
	st := node(ast.KindStructDecl, "Point",
		typed(node(ast.KindFieldDecl, "x"), intT()),
		typed(node(ast.KindFieldDecl, "y"), intT()),
		ctor,
	)
	out := Generate(node(ast.KindTranslationUnit, "", st), Options{})
	assert.Contains(t, out, "pub fn with(mut px: i32) -> Self {")
	assert.Contains(t, out, "let mut this: Self = Default::default();")
	assert.Contains(t, out, "this.x = px;")
	// y had a member reference but no initializer expression before the body.
	assert.Contains(t, out, "this.y = Default::default();")
	assert.Contains(t, out, "    this\n")
}

func TestGenerate_DefaultConstructorNamedNew(t *testing.T) {
	ctor := node(ast.KindConstructor, "Point", node(ast.KindCompound, ""))
	st := node(ast.KindStructDecl, "Point", typed(node(ast.KindFieldDecl, "x"), intT()), ctor)
	out := Generate(node(ast.KindTranslationUnit, "", st), Options{})
	assert.Contains(t, out, "pub fn new() -> Self {")
}

func TestGenerateStubs(t *testing.T) {
	root := node(ast.KindTranslationUnit, "", addFunction())
	out := GenerateStubs(root, Options{})

	assert.Contains(t, out, "#[export_name = \"add\"]")
	assert.Contains(t, out, "unimplemented!(\"add\");")
	assert.Contains(t, out, "pub fn add(mut a: i32, mut b: i32) -> i32 {")
	assert.NotContains(t, out, "a + b")
}

func TestGenerate_TotalOnMalformedInput(t *testing.T) {
	// Under-populated binary operator reconstructs as zero; unknown kinds
	// produce placeholders; nothing panics.
	broken := node(ast.KindBinaryExpr, "+", node(ast.KindDeclRef, "a"))
	weird := &ast.Node{Kind: ast.Kind("gnu_statement_expression")}
	fn := node(ast.KindFunctionDecl, "f",
		node(ast.KindCompound, "",
			node(ast.KindExprStmt, "", broken),
			weird,
			node(ast.KindIfStmt, ""), // too few children: no-op
		),
	)
	var out string
	assert.NotPanics(t, func() {
		out = Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	})
	assert.Contains(t, out, "0;")
	assert.Contains(t, out, "// unsupported statement: gnu_statement_expression")
}

func TestGenerate_Deterministic(t *testing.T) {
	root := node(ast.KindTranslationUnit, "", addFunction())
	first := Generate(root, Options{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(root, Options{}))
	}
}

func TestGenerate_HexLiteralsKeepDigits(t *testing.T) {
	tests := []struct {
		name     string
		spelling string
		typ      types.CppType
		want     string
	}{
		{"hex ff", "0xff", types.Int{Signed: true}, "0xffi32"},
		{"hex long suffix", "0xAL", types.Long{Signed: true}, "0xAi64"},
		{"hex unsigned suffix", "0x10u", types.Int{Signed: false}, "0x10u32"},
		{"decimal long suffix", "7L", types.Long{Signed: true}, "7i64"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := typed(node(ast.KindFunctionDecl, "mask",
				node(ast.KindCompound, "",
					node(ast.KindReturnStmt, "", typed(node(ast.KindIntLiteral, tt.spelling), tt.typ)),
				),
			), tt.typ)
			out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestGenerate_PointerMethodCall(t *testing.T) {
	// p->size() where p is not the receiver: explicit dereference.
	arrow := node(ast.KindCallExpr, "",
		&ast.Node{Kind: ast.KindMemberExpr, Spelling: "size", Arrow: true,
			Children: []*ast.Node{node(ast.KindDeclRef, "p")}},
	)
	// this->size(): receiver call, no dereference.
	recv := node(ast.KindCallExpr, "",
		&ast.Node{Kind: ast.KindMemberExpr, Spelling: "size", Arrow: true,
			Children: []*ast.Node{node(ast.KindThisExpr, "")}},
	)
	dot := node(ast.KindCallExpr, "",
		&ast.Node{Kind: ast.KindMemberExpr, Spelling: "size",
			Children: []*ast.Node{node(ast.KindDeclRef, "v")}},
	)

	fn := node(ast.KindFunctionDecl, "f",
		node(ast.KindCompound, "",
			node(ast.KindExprStmt, "", arrow),
			node(ast.KindExprStmt, "", recv),
			node(ast.KindExprStmt, "", dot),
		),
	)
	out := Generate(node(ast.KindTranslationUnit, "", fn), Options{})
	assert.Contains(t, out, "(*p).size();")
	assert.Contains(t, out, "self.size();")
	assert.Contains(t, out, "v.size();")
}
