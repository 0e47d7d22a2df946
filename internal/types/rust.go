package types

import (
	"strconv"
	"strings"
)

// RustTypeStr renders t as a Rust type spelling. It is total: unsupported
// shapes degrade to best-effort identifiers, never errors.
func RustTypeStr(t CppType) string {
	switch x := t.(type) {
	case Void:
		return "()"
	case Bool:
		return "bool"
	case Char:
		return signedPick(x.Signed, "i8", "u8")
	case Short:
		return signedPick(x.Signed, "i16", "u16")
	case Int:
		return signedPick(x.Signed, "i32", "u32")
	case Long:
		return signedPick(x.Signed, "i64", "u64")
	case LongLong:
		return signedPick(x.Signed, "i64", "u64")
	case Float:
		return "f32"
	case Double:
		return "f64"
	case Pointer:
		// C++ function pointers are nullable; model that explicitly.
		if fn, ok := x.Pointee.(Function); ok {
			return "Option<" + fnPointerStr(fn) + ">"
		}
		if x.Const {
			return "*const " + RustTypeStr(x.Pointee)
		}
		return "*mut " + RustTypeStr(x.Pointee)
	case Reference:
		if x.Const {
			return "&" + RustTypeStr(x.Referent)
		}
		return "&mut " + RustTypeStr(x.Referent)
	case Array:
		if x.Size < 0 {
			return "Vec<" + RustTypeStr(x.Element) + ">"
		}
		return "[" + RustTypeStr(x.Element) + "; " + strconv.Itoa(x.Size) + "]"
	case Named:
		return classifyNamed(x.Spelling)
	case Function:
		return fnPointerStr(x)
	case TemplateParam:
		return x.Name
	case DependentType:
		return fallbackName(x.Spelling)
	case ParameterPack:
		return x.Name
	}
	return "()"
}

func fnPointerStr(fn Function) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = RustTypeStr(p)
	}
	sig := "fn(" + strings.Join(params, ", ") + ")"
	if _, isVoid := fn.Return.(Void); !isVoid {
		sig += " -> " + RustTypeStr(fn.Return)
	}
	return sig
}

func signedPick(signed bool, s, u string) string {
	if signed {
		return s
	}
	return u
}
