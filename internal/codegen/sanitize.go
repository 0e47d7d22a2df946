package codegen

import "strings"

// operatorNames maps recognized C++ operator spellings to fixed mnemonic
// Rust method names.
var operatorNames = map[string]string{
	"operator+":  "add",
	"operator-":  "sub",
	"operator*":  "mul",
	"operator/":  "div",
	"operator%":  "rem",
	"operator==": "eq",
	"operator!=": "ne",
	"operator<":  "lt",
	"operator<=": "le",
	"operator>":  "gt",
	"operator>=": "ge",
	"operator[]": "index",
	"operator()": "call",
	"operator=":  "assign",
	"operator<<": "shl",
	"operator>>": "shr",
	"operator!":  "not",
	"operator&":  "bitand",
	"operator|":  "bitor",
	"operator^":  "bitxor",
	"operator~":  "bitnot",
	"operator++": "inc",
	"operator--": "dec",
	"operator+=": "add_assign",
	"operator-=": "sub_assign",
	"operator*=": "mul_assign",
	"operator/=": "div_assign",
}

// symbolNames spells out individual operator characters for the op_
// fallback on operators outside the table.
var symbolNames = map[rune]string{
	'+': "plus", '-': "minus", '*': "star", '/': "slash", '%': "percent",
	'=': "equal", '<': "less", '>': "greater", '!': "bang", '&': "amp",
	'|': "pipe", '^': "caret", '~': "tilde", '[': "lbracket", ']': "rbracket",
	'(': "lparen", ')': "rparen", ',': "comma",
}

// rustKeywords are identifiers Rust reserves. Most escape with the r#
// prefix; the handful the raw form cannot express get a trailing
// underscore instead.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true,
	"else": true, "enum": true, "extern": true,
	"fn": true, "for": true, "if": true, "impl": true, "in": true,
	"let": true, "loop": true, "match": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "return": true,
	"static": true, "struct": true, "trait": true, "type": true,
	"unsafe": true, "use": true, "where": true, "while": true,
	"abstract": true, "async": true, "await": true, "become": true,
	"box": true, "do": true, "dyn": true, "final": true, "macro": true,
	"override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true,
}

var rawUnescapable = map[string]bool{
	"self": true, "Self": true, "super": true, "crate": true,
}

// SanitizeIdent turns any C++ identifier spelling into a legal Rust
// identifier. Total: there is no failure path, only degradation.
func SanitizeIdent(name string) string {
	if mnemonic, ok := operatorNames[name]; ok {
		return mnemonic
	}
	if sym, ok := strings.CutPrefix(name, "operator"); ok && sym != "" {
		parts := make([]string, 0, len(sym)+1)
		parts = append(parts, "op")
		for _, r := range sym {
			if n, ok := symbolNames[r]; ok {
				parts = append(parts, n)
			}
		}
		if len(parts) > 1 {
			return strings.Join(parts, "_")
		}
	}

	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		return "unnamed"
	}
	if rawUnescapable[out] {
		return out + "_"
	}
	if rustKeywords[out] {
		return "r#" + out
	}
	return out
}
