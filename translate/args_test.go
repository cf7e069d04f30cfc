package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"1, 2, 3", []string{"1", "2", "3"}},
		{"df", []string{"df"}},
		{"", []string{""}},
		{"f(a, b), c", []string{"f(a, b)", "c"}},
		{"c(1, c(2, 3)), 4", []string{"c(1, c(2, 3))", "4"}},
		{`"a,b", c`, []string{`"a,b"`, "c"}},
		{`'x, y', z`, []string{`'x, y'`, "z"}},
		{"x[1, 2], y", []string{"x[1, 2]", "y"}},
		{"by=\"id\", all.x=TRUE", []string{"by=\"id\"", "all.x=TRUE"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SplitArgs(c.in), "SplitArgs(%q)", c.in)
	}
}

func TestSplitArgs_Unbalanced(t *testing.T) {
	// Unbalanced input is recoverable: the whole text comes back as one
	// element and the caller leaves the construct alone.
	for _, in := range []string{"f(a, b", "a), b", `"unterminated, x`} {
		assert.Equal(t, []string{in}, SplitArgs(in), "SplitArgs(%q)", in)
	}
}

func TestSplitArgs_Recombines(t *testing.T) {
	// Joining the parts with commas reconstructs the input up to
	// whitespace.
	inputs := []string{
		"1, 2, 3",
		"f(a, b), g(c)",
		`x, "a,b", y[1, 2]`,
		"a",
	}
	for _, in := range inputs {
		got := strings.Join(SplitArgs(in), ",")
		assert.Equal(t,
			strings.ReplaceAll(in, " ", ""),
			strings.ReplaceAll(got, " ", ""),
			"recombination of %q", in)
	}
}

func TestMatchingDelim(t *testing.T) {
	s := `f(a, g(b), ")")`
	require.Equal(t, len(s)-1, matchingDelim(s, 1))
	assert.Equal(t, -1, matchingDelim("f(a", 1))
}

func TestFindCall(t *testing.T) {
	start, close := findCall(`x = merge(a, b)`, "merge", 0)
	assert.Equal(t, 4, start)
	assert.Equal(t, 14, close)

	// Not at an identifier boundary: pd.merge is already translated.
	start, _ = findCall(`pd.merge(a, b)`, "merge", 0)
	assert.Equal(t, -1, start)

	// Inside a string literal.
	start, _ = findCall(`msg = "merge(a, b)"`, "merge", 0)
	assert.Equal(t, -1, start)
}
