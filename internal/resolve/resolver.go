// Package resolve implements C++ qualified-name lookup over namespace scope
// chains with using-directive and using-declaration visibility.
package resolve

import "strings"

// Path is a qualified name as an ordered list of namespace/name segments.
// Visibility comparisons are always segment-wise; joined strings are used
// only as exact map keys, never for prefix tests.
type Path []string

// Key returns the exact-lookup map key for p.
func (p Path) Key() string {
	return strings.Join(p, "\x1f")
}

// IsAncestorOf reports whether p is a segment-wise prefix of other. A scope
// is its own ancestor.
func (p Path) IsAncestorOf(other Path) bool {
	if len(p) > len(other) {
		return false
	}
	for i, seg := range p {
		if other[i] != seg {
			return false
		}
	}
	return true
}

func (p Path) child(name ...string) Path {
	out := make(Path, 0, len(p)+len(name))
	out = append(out, p...)
	return append(out, name...)
}

// UsingDirective imports an entire namespace into the scope it appears in.
type UsingDirective struct {
	Scope     Path // where the directive was written
	Namespace Path // the namespace it imports
}

// UsingDecl imports one specific qualified name into the scope it appears in.
type UsingDecl struct {
	Scope  Path
	Target Path
}

// Resolver answers unqualified and partially-qualified name lookups. It is
// built once from flat declaration lists and is read-only afterwards; the
// input slices must stay alive and unmodified for the resolver's lifetime.
type Resolver struct {
	funcs   map[string]Path
	structs map[string]Path

	// Declaration order is the tie-breaker everywhere, so both lists stay
	// ordered; the maps only answer existence.
	directives []UsingDirective
	decls      []UsingDecl
}

// NewResolver builds the lookup tables. Duplicate paths keep the first
// occurrence, matching one-definition behavior for lookup purposes.
func NewResolver(funcs, structs []Path, directives []UsingDirective, decls []UsingDecl) *Resolver {
	r := &Resolver{
		funcs:      make(map[string]Path, len(funcs)),
		structs:    make(map[string]Path, len(structs)),
		directives: directives,
		decls:      decls,
	}
	for _, p := range funcs {
		if _, ok := r.funcs[p.Key()]; !ok {
			r.funcs[p.Key()] = p
		}
	}
	for _, p := range structs {
		if _, ok := r.structs[p.Key()]; !ok {
			r.structs[p.Key()] = p
		}
	}
	return r
}

// ResolveFunction resolves name from the given scope to a unique qualified
// function path. The boolean is false when nothing matches; callers treat
// that as "unresolved", not an error.
func (r *Resolver) ResolveFunction(name string, scope Path) (Path, bool) {
	return r.lookup(r.funcs, name, scope)
}

// ResolveType resolves name from the given scope to a unique qualified
// struct path.
func (r *Resolver) ResolveType(name string, scope Path) (Path, bool) {
	return r.lookup(r.structs, name, scope)
}

// lookup applies the ordered search: qualified spellings first, then the
// scope chain from innermost to global, then using-directives visible from
// the scope, then using-declarations. First match wins.
func (r *Resolver) lookup(table map[string]Path, name string, scope Path) (Path, bool) {
	if strings.Contains(name, "::") {
		segs := splitQualified(name)
		if p, ok := table[segs.Key()]; ok {
			return p, true
		}
		if p, ok := table[scope.child(segs...).Key()]; ok {
			return p, true
		}
	}

	// Scope chain, innermost first: inner declarations shadow outer ones.
	for i := len(scope); i >= 0; i-- {
		candidate := Path(scope[:i]).child(name)
		if p, ok := table[candidate.Key()]; ok {
			return p, true
		}
	}

	// Using-directives visible from this scope: recorded in the scope
	// itself or in a segment-wise ancestor. A directive inside a nested
	// scope must not leak outward or sideways.
	for _, d := range r.directives {
		if !d.Scope.IsAncestorOf(scope) {
			continue
		}
		if p, ok := table[d.Namespace.child(name).Key()]; ok {
			return p, true
		}
	}

	for _, u := range r.decls {
		if !u.Scope.IsAncestorOf(scope) {
			continue
		}
		if len(u.Target) == 0 || u.Target[len(u.Target)-1] != name {
			continue
		}
		if p, ok := table[u.Target.Key()]; ok {
			return p, true
		}
	}

	return nil, false
}

func splitQualified(name string) Path {
	parts := strings.Split(name, "::")
	segs := make(Path, 0, len(parts))
	for _, part := range parts {
		if part != "" { // leading :: means global qualification
			segs = append(segs, part)
		}
	}
	return segs
}
