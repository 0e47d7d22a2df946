package types

import (
	"strconv"
	"strings"
)

// FromSpelling builds a CppType from a C++ type spelling as produced by the
// parser adapter: qualifiers, pointer/reference declarators and array
// extents wrapped around a primitive or named base. Total; anything it
// cannot decompose becomes a Named carrying the raw spelling.
func FromSpelling(spelling string) CppType {
	s := strings.TrimSpace(spelling)
	if s == "" {
		return Void{}
	}

	// Array extent binds after pointer/reference declarators.
	if strings.HasSuffix(s, "]") {
		if open := strings.LastIndexByte(s, '['); open > 0 {
			extent := strings.TrimSpace(s[open+1 : len(s)-1])
			elem := FromSpelling(s[:open])
			size := -1
			if n, err := strconv.Atoi(extent); err == nil {
				size = n
			}
			return Array{Element: elem, Size: size}
		}
	}

	if rest, ok := strings.CutSuffix(s, "&&"); ok {
		inner, isConst := cutConst(rest)
		return Reference{Referent: FromSpelling(inner), Const: isConst, RValue: true}
	}
	if rest, ok := strings.CutSuffix(s, "&"); ok {
		inner, isConst := cutConst(rest)
		return Reference{Referent: FromSpelling(inner), Const: isConst}
	}
	if rest, ok := strings.CutSuffix(s, "*"); ok {
		inner, isConst := cutConst(rest)
		return Pointer{Pointee: FromSpelling(inner), Const: isConst}
	}

	base, _ := cutConst(s)
	if t, ok := primitiveSpelling(base); ok {
		return t
	}
	return Named{Spelling: base}
}

// cutConst removes one top-level const qualifier (leading or trailing) and
// reports whether it was present.
func cutConst(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "const "); ok {
		return strings.TrimSpace(rest), true
	}
	if rest, ok := strings.CutSuffix(s, " const"); ok {
		return strings.TrimSpace(rest), true
	}
	return s, false
}

// primitiveSpelling maps builtin spellings onto the structured variants so
// signedness and width are carried in the model rather than as text.
func primitiveSpelling(s string) (CppType, bool) {
	switch s {
	case "void":
		return Void{}, true
	case "bool":
		return Bool{}, true
	case "char", "signed char":
		return Char{Signed: true}, true
	case "unsigned char":
		return Char{}, true
	case "short", "short int", "signed short":
		return Short{Signed: true}, true
	case "unsigned short", "unsigned short int":
		return Short{}, true
	case "int", "signed", "signed int":
		return Int{Signed: true}, true
	case "unsigned", "unsigned int":
		return Int{}, true
	case "long", "long int", "signed long":
		return Long{Signed: true}, true
	case "unsigned long", "unsigned long int":
		return Long{}, true
	case "long long", "long long int", "signed long long":
		return LongLong{Signed: true}, true
	case "unsigned long long", "unsigned long long int":
		return LongLong{}, true
	case "float":
		return Float{}, true
	case "double", "long double":
		return Double{}, true
	case "auto":
		return DependentType{Spelling: "auto"}, true
	}
	if strings.HasPrefix(s, "decltype(") || strings.HasPrefix(s, "typeof(") {
		return DependentType{Spelling: s}, true
	}
	return nil, false
}
