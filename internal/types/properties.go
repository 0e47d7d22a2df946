package types

// Properties are derived per-type facts mirroring the C++ type traits the
// transpiler consults during lowering.
type Properties struct {
	IsIntegral              bool
	IsSigned                bool
	IsFloatingPoint         bool
	IsScalar                bool
	IsPointer               bool
	IsReference             bool
	IsTriviallyCopyable     bool
	IsTriviallyDestructible bool
}

// PropertiesOf derives the trait set for t. The second result is false for
// dependent types, which have no fixed properties until substitution.
func PropertiesOf(t CppType) (Properties, bool) {
	if IsDependent(t) {
		return Properties{}, false
	}
	var p Properties
	switch x := t.(type) {
	case Bool:
		p.IsIntegral = true
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Char:
		p.IsIntegral = true
		p.IsSigned = x.Signed
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Short:
		p.IsIntegral = true
		p.IsSigned = x.Signed
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Int:
		p.IsIntegral = true
		p.IsSigned = x.Signed
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Long:
		p.IsIntegral = true
		p.IsSigned = x.Signed
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case LongLong:
		p.IsIntegral = true
		p.IsSigned = x.Signed
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Float:
		p.IsFloatingPoint = true
		p.IsSigned = true
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Double:
		p.IsFloatingPoint = true
		p.IsSigned = true
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Pointer:
		p.IsPointer = true
		p.IsScalar = true
		p.IsTriviallyCopyable = true
		p.IsTriviallyDestructible = true
	case Reference:
		p.IsReference = true
	case Array:
		elem, ok := PropertiesOf(x.Element)
		if !ok {
			return Properties{}, false
		}
		p.IsTriviallyCopyable = elem.IsTriviallyCopyable
		p.IsTriviallyDestructible = elem.IsTriviallyDestructible
	}
	return p, true
}
