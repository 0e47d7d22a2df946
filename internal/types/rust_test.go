package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRustTypeStr_Builtins(t *testing.T) {
	tests := []struct {
		name string
		typ  CppType
		want string
	}{
		{"void", Void{}, "()"},
		{"bool", Bool{}, "bool"},
		{"signed char", Char{Signed: true}, "i8"},
		{"unsigned char", Char{}, "u8"},
		{"short", Short{Signed: true}, "i16"},
		{"unsigned short", Short{}, "u16"},
		{"int", Int{Signed: true}, "i32"},
		{"unsigned int", Int{}, "u32"},
		{"long", Long{Signed: true}, "i64"},
		{"unsigned long long", LongLong{}, "u64"},
		{"float", Float{}, "f32"},
		{"double", Double{}, "f64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RustTypeStr(tt.typ))
		})
	}
}

func TestRustTypeStr_Composites(t *testing.T) {
	tests := []struct {
		name string
		typ  CppType
		want string
	}{
		{"mut pointer", Pointer{Pointee: Int{Signed: true}}, "*mut i32"},
		{"const pointer", Pointer{Pointee: Int{Signed: true}, Const: true}, "*const i32"},
		{"const reference", Reference{Referent: Double{}, Const: true}, "&f64"},
		{"mut reference", Reference{Referent: Double{}}, "&mut f64"},
		{"sized array", Array{Element: Char{Signed: true}, Size: 16}, "[i8; 16]"},
		{"unsized array", Array{Element: Float{}, Size: -1}, "Vec<f32>"},
		{
			"function type",
			Function{Return: Int{Signed: true}, Params: []CppType{Int{Signed: true}, Int{Signed: true}}},
			"fn(i32, i32) -> i32",
		},
		{
			"void function type",
			Function{Return: Void{}, Params: nil},
			"fn()",
		},
		{
			"pointer to function is nullable",
			Pointer{Pointee: Function{Return: Void{}, Params: []CppType{Bool{}}}},
			"Option<fn(bool)>",
		},
		{"template parameter passes through", TemplateParam{Name: "T"}, "T"},
		{"parameter pack passes through", ParameterPack{Name: "Args"}, "Args"},
		{"dependent sanitizes", DependentType{Spelling: "typename T::value_type"}, "T_value_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RustTypeStr(tt.typ))
		})
	}
}

func TestRustTypeStr_NamedSpellings(t *testing.T) {
	tests := []struct {
		spelling string
		want     string
	}{
		{"int32_t", "i32"},
		{"size_t", "usize"},
		{"std::string", "String"},
		{"std::vector<int>", "Vec<i32>"},
		{"std::vector<std::string>", "Vec<String>"},
		{"std::vector<std::vector<double>>", "Vec<Vec<f64>>"},
		{"std::array<float, 4>", "[f32; 4]"},
		{"std::optional<int>", "Option<i32>"},
		{"std::unique_ptr<Widget>", "Box<Widget>"},
		{"std::shared_ptr<Widget>", "Rc<Widget>"},
		{"std::weak_ptr<Widget>", "Weak<Widget>"},
		{"std::span<const char>", "&[i8]"},
		{"std::span<int>", "&mut [i32]"},
		{"std::map<int, std::string>", "BTreeMap<int, std::string>"},
		{"std::unordered_map<Key, Value>", "HashMap<Key, Value>"},
		{"std::istream", "Box<dyn std::io::Read>"},
		{"std::ostream", "Box<dyn std::io::Write>"},
		{"std::variant<int, float>", "Variant_int_float"},
		{"decltype(x + y)", "_"},
		{"auto", "_"},
		{"(lambda at foo.cpp:10:3)", "_"},
		{"struct Widget", "Widget"},
		{"const Widget", "Widget"},
		{"unsigned long", "u64"},
		{"ns::Widget", "ns_Widget"},
		{"", "Unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.spelling, func(t *testing.T) {
			assert.Equal(t, tt.want, RustTypeStr(Named{Spelling: tt.spelling}))
		})
	}
}

// Rendering the same value twice must give the same text; the classifier is
// pure and table-driven.
func TestRustTypeStr_Deterministic(t *testing.T) {
	samples := []CppType{
		Int{Signed: true},
		Named{Spelling: "std::variant<A, B, C>"},
		Named{Spelling: "std::map<K, V>"},
		Pointer{Pointee: Named{Spelling: "std::vector<int>"}},
	}
	for _, s := range samples {
		assert.Equal(t, RustTypeStr(s), RustTypeStr(s))
	}
}

func TestFromSpelling(t *testing.T) {
	tests := []struct {
		spelling string
		want     CppType
	}{
		{"int", Int{Signed: true}},
		{"unsigned int", Int{}},
		{"long long", LongLong{Signed: true}},
		{"bool", Bool{}},
		{"void", Void{}},
		{"double", Double{}},
		{"int*", Pointer{Pointee: Int{Signed: true}}},
		{"const char*", Pointer{Pointee: Char{Signed: true}, Const: true}},
		{"int&", Reference{Referent: Int{Signed: true}}},
		{"const std::string&", Reference{Referent: Named{Spelling: "std::string"}, Const: true}},
		{"std::string&&", Reference{Referent: Named{Spelling: "std::string"}, RValue: true}},
		{"int[4]", Array{Element: Int{Signed: true}, Size: 4}},
		{"int []", Array{Element: Int{Signed: true}, Size: -1}},
		{"Widget", Named{Spelling: "Widget"}},
		{"std::vector<int>", Named{Spelling: "std::vector<int>"}},
		{"auto", DependentType{Spelling: "auto"}},
		{"decltype(a+b)", DependentType{Spelling: "decltype(a+b)"}},
	}

	for _, tt := range tests {
		t.Run(tt.spelling, func(t *testing.T) {
			got := FromSpelling(tt.spelling)
			assert.True(t, Equal(tt.want, got), "got %#v", got)
		})
	}
}
