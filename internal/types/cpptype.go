// Package types models the C++ type algebra and its translation to Rust
// type spellings.
package types

// CppType is the closed set of C++ type shapes the transpiler understands.
// Values are immutable; Substitute returns new values.
type CppType interface {
	isCppType()
}

// Void is the C++ void type.
type Void struct{}

// Bool is the C++ bool type.
type Bool struct{}

// Char is a character type with an explicit signedness.
type Char struct {
	Signed bool
}

// Short is a short integer with an explicit signedness.
type Short struct {
	Signed bool
}

// Int is a plain int with an explicit signedness.
type Int struct {
	Signed bool
}

// Long is a long integer with an explicit signedness.
type Long struct {
	Signed bool
}

// LongLong is a long long integer with an explicit signedness.
type LongLong struct {
	Signed bool
}

// Float is the C++ float type.
type Float struct{}

// Double is the C++ double type.
type Double struct{}

// Pointer is a pointer type. Const applies to the pointee (const T*).
type Pointer struct {
	Pointee CppType
	Const   bool
}

// Reference is an lvalue or rvalue reference. Const applies to the referent.
type Reference struct {
	Referent CppType
	Const    bool
	RValue   bool
}

// Array is a C array. Size is -1 when the extent is unknown.
type Array struct {
	Element CppType
	Size    int
}

// Named is any type identified only by its textual spelling: records,
// enums, typedefs, standard library templates.
type Named struct {
	Spelling string
}

// Function is a function type.
type Function struct {
	Return   CppType
	Params   []CppType
	Variadic bool
}

// TemplateParam is an unsubstituted template type parameter.
type TemplateParam struct {
	Name  string
	Depth int
	Index int
}

// DependentType is a type expression that cannot be evaluated until
// template parameters are known, kept as its raw spelling.
type DependentType struct {
	Spelling string
}

// ParameterPack is a variadic template parameter pack.
type ParameterPack struct {
	Name  string
	Depth int
	Index int
}

func (Void) isCppType()          {}
func (Bool) isCppType()          {}
func (Char) isCppType()          {}
func (Short) isCppType()         {}
func (Int) isCppType()           {}
func (Long) isCppType()          {}
func (LongLong) isCppType()      {}
func (Float) isCppType()         {}
func (Double) isCppType()        {}
func (Pointer) isCppType()       {}
func (Reference) isCppType()     {}
func (Array) isCppType()         {}
func (Named) isCppType()         {}
func (Function) isCppType()      {}
func (TemplateParam) isCppType() {}
func (DependentType) isCppType() {}
func (ParameterPack) isCppType() {}

// Equal reports structural equality between two types.
func Equal(a, b CppType) bool {
	switch x := a.(type) {
	case Void:
		_, ok := b.(Void)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Char:
		y, ok := b.(Char)
		return ok && x.Signed == y.Signed
	case Short:
		y, ok := b.(Short)
		return ok && x.Signed == y.Signed
	case Int:
		y, ok := b.(Int)
		return ok && x.Signed == y.Signed
	case Long:
		y, ok := b.(Long)
		return ok && x.Signed == y.Signed
	case LongLong:
		y, ok := b.(LongLong)
		return ok && x.Signed == y.Signed
	case Float:
		_, ok := b.(Float)
		return ok
	case Double:
		_, ok := b.(Double)
		return ok
	case Pointer:
		y, ok := b.(Pointer)
		return ok && x.Const == y.Const && Equal(x.Pointee, y.Pointee)
	case Reference:
		y, ok := b.(Reference)
		return ok && x.Const == y.Const && x.RValue == y.RValue && Equal(x.Referent, y.Referent)
	case Array:
		y, ok := b.(Array)
		return ok && x.Size == y.Size && Equal(x.Element, y.Element)
	case Named:
		y, ok := b.(Named)
		return ok && x.Spelling == y.Spelling
	case Function:
		y, ok := b.(Function)
		if !ok || x.Variadic != y.Variadic || len(x.Params) != len(y.Params) {
			return false
		}
		if !Equal(x.Return, y.Return) {
			return false
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return true
	case TemplateParam:
		y, ok := b.(TemplateParam)
		return ok && x == y
	case DependentType:
		y, ok := b.(DependentType)
		return ok && x == y
	case ParameterPack:
		y, ok := b.(ParameterPack)
		return ok && x == y
	}
	return false
}

// IsDependent reports whether t is or transitively contains a template
// parameter, a dependent spelling, or a parameter pack.
func IsDependent(t CppType) bool {
	switch x := t.(type) {
	case TemplateParam, DependentType, ParameterPack:
		return true
	case Pointer:
		return IsDependent(x.Pointee)
	case Reference:
		return IsDependent(x.Referent)
	case Array:
		return IsDependent(x.Element)
	case Function:
		if IsDependent(x.Return) {
			return true
		}
		for _, p := range x.Params {
			if IsDependent(p) {
				return true
			}
		}
		return false
	}
	return false
}

// Substitute replaces every TemplateParam or ParameterPack whose name has a
// binding, recursing through composite shapes. Types without a binding are
// returned unchanged.
func Substitute(t CppType, bindings map[string]CppType) CppType {
	switch x := t.(type) {
	case TemplateParam:
		if b, ok := bindings[x.Name]; ok {
			return b
		}
		return x
	case ParameterPack:
		if b, ok := bindings[x.Name]; ok {
			return b
		}
		return x
	case Pointer:
		return Pointer{Pointee: Substitute(x.Pointee, bindings), Const: x.Const}
	case Reference:
		return Reference{Referent: Substitute(x.Referent, bindings), Const: x.Const, RValue: x.RValue}
	case Array:
		return Array{Element: Substitute(x.Element, bindings), Size: x.Size}
	case Function:
		params := make([]CppType, len(x.Params))
		for i, p := range x.Params {
			params[i] = Substitute(p, bindings)
		}
		return Function{Return: Substitute(x.Return, bindings), Params: params, Variadic: x.Variadic}
	}
	return t
}

// Fixed layout assumptions for the translation target. These are stated
// explicitly rather than computed: the emitted Rust targets LP64.
const (
	pointerBits  = 64
	longBits     = 64
	longLongBits = 64
	boolBits     = 8
)

// BitWidth returns the storage width of t in bits. The second result is
// false for dependent types, void, functions, and arrays of unknown extent.
func BitWidth(t CppType) (int, bool) {
	if IsDependent(t) {
		return 0, false
	}
	switch x := t.(type) {
	case Bool:
		return boolBits, true
	case Char:
		return 8, true
	case Short:
		return 16, true
	case Int:
		return 32, true
	case Long:
		return longBits, true
	case LongLong:
		return longLongBits, true
	case Float:
		return 32, true
	case Double:
		return 64, true
	case Pointer:
		return pointerBits, true
	case Reference:
		return pointerBits, true
	case Array:
		if x.Size < 0 {
			return 0, false
		}
		w, ok := BitWidth(x.Element)
		if !ok {
			return 0, false
		}
		return w * x.Size, true
	}
	return 0, false
}
