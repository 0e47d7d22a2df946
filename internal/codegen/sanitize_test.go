package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeIdent_Operators(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"operator+", "add"},
		{"operator-", "sub"},
		{"operator==", "eq"},
		{"operator[]", "index"},
		{"operator()", "call"},
		{"operator<<", "shl"},
		{"operator+=", "add_assign"},
		// Not in the table: falls back to op_ + symbol names.
		{"operator%=", "op_percent_equal"},
		{"operator->", "op_minus_greater"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeIdent(tt.in))
		})
	}
}

func TestSanitizeIdent_Keywords(t *testing.T) {
	assert.Equal(t, "r#fn", SanitizeIdent("fn"))
	assert.Equal(t, "r#match", SanitizeIdent("match"))
	assert.Equal(t, "r#type", SanitizeIdent("type"))
	// Raw identifiers cannot spell these; they get a suffix instead.
	assert.Equal(t, "self_", SanitizeIdent("self"))
	assert.Equal(t, "crate_", SanitizeIdent("crate"))
}

func TestSanitizeIdent_Totality(t *testing.T) {
	// Every input yields a non-empty identifier.
	inputs := []string{"", "operator[]", "fn", "123abc", "a-b c::d", "~Widget", "$"}
	for _, in := range inputs {
		out := SanitizeIdent(in)
		assert.NotEmpty(t, out, "input %q", in)
		assert.NotContainsf(t, out, " ", "input %q", in)
	}
}

func TestSanitizeIdent_Cleanup(t *testing.T) {
	assert.Equal(t, "unnamed", SanitizeIdent(""))
	assert.Equal(t, "_123abc", SanitizeIdent("123abc"))
	assert.Equal(t, "a_b", SanitizeIdent("a-b"))
	assert.Equal(t, "ns__value", SanitizeIdent("ns::value"))
	assert.Equal(t, "plain", SanitizeIdent("plain"))
}
