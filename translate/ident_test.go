package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"price", "price"},
		{"unitPrice", "unit_price"},
		{"unit.price", "unit_price"},
		{"unit-price", "unit_price"},
		{"unit..price", "unit_price"},
		{"myVar2X", "my_var2_x"},
		{"HTTPCode", "httpcode"},
		{"already_snake", "already_snake"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SnakeCase(c.in), "SnakeCase(%q)", c.in)
	}
}

func TestSnakeCase_ReservedWords(t *testing.T) {
	assert.Equal(t, "lambda_", SnakeCase("lambda"))
	assert.Equal(t, "class_", SnakeCase("class"))
	assert.Equal(t, "global_", SnakeCase("GLOBAL"))
	// TRUE lowercases to "true", which is not reserved in Python.
	assert.Equal(t, "true", SnakeCase("TRUE"))
}

func TestSnakeCase_Idempotent(t *testing.T) {
	inputs := []string{
		"", "x", "unitPrice", "unit.price", "a-b-c", "lambda", "for",
		"HTTPCode", "__weird__", "x9Y", "a..b..c",
	}
	for _, in := range inputs {
		once := SnakeCase(in)
		assert.Equal(t, once, SnakeCase(once), "not idempotent for %q", in)
	}
}
