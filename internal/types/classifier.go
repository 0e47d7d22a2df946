package types

import "strings"

// This file is the heuristic type-name classifier: it turns the textual
// spelling of a named C++ type into a Rust spelling. Matching is purely
// textual, a stand-in for real template instantiation, and is kept separate
// from the structural recursion in rust.go so it can be replaced wholesale.

// primitiveNames maps exact C++ spellings to fixed-width Rust names.
var primitiveNames = map[string]string{
	"void":               "()",
	"bool":               "bool",
	"char":               "i8",
	"signed char":        "i8",
	"unsigned char":      "u8",
	"short":              "i16",
	"unsigned short":     "u16",
	"int":                "i32",
	"unsigned":           "u32",
	"unsigned int":       "u32",
	"long":               "i64",
	"unsigned long":      "u64",
	"long long":          "i64",
	"unsigned long long": "u64",
	"float":              "f32",
	"double":             "f64",
	"long double":        "f64",
	"int8_t":             "i8",
	"int16_t":            "i16",
	"int32_t":            "i32",
	"int64_t":            "i64",
	"uint8_t":            "u8",
	"uint16_t":           "u16",
	"uint32_t":           "u32",
	"uint64_t":           "u64",
	"intptr_t":           "isize",
	"uintptr_t":          "usize",
	"size_t":             "usize",
	"ssize_t":            "isize",
	"ptrdiff_t":          "isize",
	"wchar_t":            "u32",
	"char16_t":           "u16",
	"char32_t":           "u32",
	"std::string":        "String",
	"string":             "String",
	"std::size_t":        "usize",
	"std::nullptr_t":     "*const ()",
}

// classifyNamed resolves a named type spelling to a Rust spelling. Total:
// anything unrecognized falls through to a sanitized identifier.
func classifyNamed(spelling string) string {
	s := strings.TrimSpace(spelling)

	if r, ok := primitiveNames[s]; ok {
		return r
	}

	if r, ok := classifyTemplate(s); ok {
		return r
	}

	if r, ok := streamNames[s]; ok {
		return r
	}

	if isUnevaluable(s) {
		// Let Rust's own inference fill these in.
		return "_"
	}

	return fallbackName(s)
}

// classifyTemplate recognizes standard containers and smart pointers by
// prefix/suffix stripping and re-expresses them as Rust equivalents.
func classifyTemplate(s string) (string, bool) {
	head, args, ok := splitTemplate(s)
	if !ok {
		return "", false
	}

	switch head {
	case "std::vector", "vector":
		if len(args) >= 1 {
			return "Vec<" + classifyNamed(args[0]) + ">", true
		}
	case "std::array", "array":
		if len(args) == 2 {
			return "[" + classifyNamed(args[0]) + "; " + args[1] + "]", true
		}
	case "std::optional", "optional":
		if len(args) >= 1 {
			return "Option<" + classifyNamed(args[0]) + ">", true
		}
	case "std::unique_ptr", "unique_ptr":
		if len(args) >= 1 {
			return "Box<" + classifyNamed(args[0]) + ">", true
		}
	case "std::shared_ptr", "shared_ptr":
		if len(args) >= 1 {
			return "Rc<" + classifyNamed(args[0]) + ">", true
		}
	case "std::weak_ptr", "weak_ptr":
		if len(args) >= 1 {
			return "Weak<" + classifyNamed(args[0]) + ">", true
		}
	case "std::span", "span":
		if len(args) >= 1 {
			elem := strings.TrimSpace(args[0])
			if rest, isConst := strings.CutPrefix(elem, "const "); isConst {
				return "&[" + classifyNamed(rest) + "]", true
			}
			return "&mut [" + classifyNamed(elem) + "]", true
		}
	case "std::map", "map":
		// Key and value spellings are passed through unparsed.
		if len(args) >= 2 {
			return "BTreeMap<" + args[0] + ", " + args[1] + ">", true
		}
	case "std::unordered_map", "unordered_map":
		if len(args) >= 2 {
			return "HashMap<" + args[0] + ", " + args[1] + ">", true
		}
	case "std::variant", "variant":
		return variantPlaceholder(args), true
	}
	return "", false
}

// variantPlaceholder synthesizes a deterministic placeholder name for a
// variant instantiation by concatenating the sanitized argument spellings.
func variantPlaceholder(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "Variant")
	for _, a := range args {
		parts = append(parts, fallbackName(a))
	}
	return strings.Join(parts, "_")
}

// splitTemplate splits "head<a, b<c, d>, e>" into head and its top-level
// arguments, respecting nested angle-bracket depth. Returns false when the
// spelling is not a template instantiation.
func splitTemplate(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '<')
	if open < 0 || !strings.HasSuffix(s, ">") {
		return "", nil, false
	}
	head := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(inner[start:]); tail != "" {
		args = append(args, tail)
	}
	return head, args, true
}

// streamNames maps iostream spellings to boxed capability objects.
var streamNames = map[string]string{
	"std::istream":      "Box<dyn std::io::Read>",
	"istream":           "Box<dyn std::io::Read>",
	"std::ifstream":     "Box<dyn std::io::Read>",
	"ifstream":          "Box<dyn std::io::Read>",
	"std::ostream":      "Box<dyn std::io::Write>",
	"ostream":           "Box<dyn std::io::Write>",
	"std::ofstream":     "Box<dyn std::io::Write>",
	"ofstream":          "Box<dyn std::io::Write>",
	"std::stringstream": "String",
	"stringstream":      "String",
}

// isUnevaluable reports spellings that name no concrete type at all.
func isUnevaluable(s string) bool {
	return strings.HasPrefix(s, "decltype(") ||
		strings.HasPrefix(s, "typeof(") ||
		strings.Contains(s, "(lambda at") ||
		s == "auto"
}

// fallbackName is the last rung of the ladder: produce some legal
// identifier from whatever spelling we were handed.
func fallbackName(s string) string {
	for _, prefix := range []string{"const ", "volatile ", "struct ", "class ", "enum ", "union ", "typename "} {
		for strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
		}
	}

	if r, ok := primitiveNames[strings.TrimSpace(s)]; ok {
		return r
	}

	s = strings.ReplaceAll(s, "::", "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '*', '&', '[', ']':
			return -1
		case '<', '>', ',', '(', ')':
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "Unnamed"
	}
	return s
}
