// Package deduce implements template argument deduction: solving template
// type-parameter bindings from a template's declared parameter types and
// the argument types at a call site.
package deduce

import (
	"fmt"
	"strings"

	"github.com/cxx2rs/cxx2rs/internal/types"
)

// Param is one declared parameter of a template: its name and its possibly
// dependent type.
type Param struct {
	Name string
	Type types.CppType
}

// Template describes a function template as collected from the parsed tree.
type Template struct {
	Name          string
	Namespace     []string
	TypeParams    []string
	Params        []Param
	Return        types.CppType
	HasDefinition bool
}

// ConflictError reports two argument positions demanding different concrete
// types for the same template parameter. The first binding wins the record;
// the second triggers the error.
type ConflictError struct {
	Param    string
	Existing types.CppType
	Incoming types.CppType
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting deductions for %s: %s vs %s",
		e.Param, types.RustTypeStr(e.Existing), types.RustTypeStr(e.Incoming))
}

// TypeMismatchError reports a non-dependent parameter that the argument
// neither equals nor promotes to.
type TypeMismatchError struct {
	Position int
	Want     types.CppType
	Got      types.CppType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("argument %d: expected %s, got %s",
		e.Position, types.RustTypeStr(e.Want), types.RustTypeStr(e.Got))
}

// InsufficientArgumentsError reports template parameters left unbound after
// every argument position was scanned.
type InsufficientArgumentsError struct {
	Missing []string
}

func (e *InsufficientArgumentsError) Error() string {
	return "could not deduce: " + strings.Join(e.Missing, ", ")
}

// Deduce solves the template's type parameters from the call's argument
// types. Matching is positional, in declared parameter order, first
// conflict wins; there is no search for a best unifier. Argument positions
// past the parameter list (and parameters past the argument list) are
// ignored rather than rejected — overload resolution is not this layer's
// job. Every declared type parameter must end up bound.
func Deduce(tmpl *Template, args []types.CppType) (map[string]types.CppType, error) {
	declared := make(map[string]bool, len(tmpl.TypeParams))
	for _, name := range tmpl.TypeParams {
		declared[name] = true
	}

	bindings := make(map[string]types.CppType)
	for i, p := range tmpl.Params {
		if i >= len(args) {
			break
		}
		if err := match(p.Type, args[i], i, declared, bindings); err != nil {
			return nil, err
		}
	}

	var missing []string
	for _, name := range tmpl.TypeParams {
		if _, ok := bindings[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &InsufficientArgumentsError{Missing: missing}
	}
	return bindings, nil
}

func match(param, arg types.CppType, pos int, declared map[string]bool, bindings map[string]types.CppType) error {
	switch p := param.(type) {
	case types.TemplateParam:
		return bind(p.Name, arg, bindings)

	case types.ParameterPack:
		return bind(p.Name, arg, bindings)

	case types.Reference:
		// Deduce against the argument with reference wrappers stripped;
		// a const parameter additionally absorbs the argument's own
		// top-level const.
		stripped := stripReferences(arg)
		if p.Const {
			stripped = stripTopConst(stripped)
		}
		return match(p.Referent, stripped, pos, declared, bindings)

	case types.Pointer:
		ap, ok := arg.(types.Pointer)
		if !ok {
			// A non-pointer argument contributes nothing to this
			// parameter; it may still surface later as unbound.
			return nil
		}
		return match(p.Pointee, ap.Pointee, pos, declared, bindings)

	case types.Array:
		if aa, ok := arg.(types.Array); ok && types.IsDependent(p.Element) {
			return match(p.Element, aa.Element, pos, declared, bindings)
		}
	case types.DependentType:
		// A bare dependent spelling cannot be solved textually. Known
		// limitation; it stays unresolved.
		return nil
	}

	if !types.IsDependent(param) {
		if types.Equal(param, arg) || promotes(arg, param) {
			return nil
		}
		return &TypeMismatchError{Position: pos, Want: param, Got: arg}
	}
	return nil
}

func bind(name string, arg types.CppType, bindings map[string]types.CppType) error {
	if existing, ok := bindings[name]; ok {
		if !types.Equal(existing, arg) {
			return &ConflictError{Param: name, Existing: existing, Incoming: arg}
		}
		return nil
	}
	bindings[name] = arg
	return nil
}

func stripReferences(t types.CppType) types.CppType {
	for {
		r, ok := t.(types.Reference)
		if !ok {
			return t
		}
		t = r.Referent
	}
}

// stripTopConst removes one top-level const qualifier. Const lives on the
// wrapping Pointer/Reference variants in this model; scalar types carry no
// qualifier of their own.
func stripTopConst(t types.CppType) types.CppType {
	switch x := t.(type) {
	case types.Pointer:
		if x.Const {
			return types.Pointer{Pointee: x.Pointee}
		}
	case types.Reference:
		if x.Const {
			return types.Reference{Referent: x.Referent, RValue: x.RValue}
		}
	}
	return t
}

// promotes whitelists the implicit conversions deduction tolerates on
// non-dependent parameters.
func promotes(from, to types.CppType) bool {
	switch to.(type) {
	case types.Int:
		switch from.(type) {
		case types.Char, types.Short:
			return true
		}
	case types.Double:
		_, ok := from.(types.Float)
		return ok
	}
	return false
}
