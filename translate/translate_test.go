package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// body strips the fixed import header from a translation result so tests
// can assert on the translated lines alone.
func body(t *testing.T, res *Result) string {
	t.Helper()
	require.True(t, strings.HasPrefix(res.Output, pyHeader+"\n"))
	return strings.TrimPrefix(res.Output, pyHeader+"\n")
}

func TestTranslate_VectorAssignment(t *testing.T) {
	res := New(Options{}).Translate("x <- c(1, 2, 3)")
	assert.Equal(t, "x = [1, 2, 3]\n", body(t, res))
	assert.Empty(t, res.Warnings)
}

func TestTranslate_InlineConditional(t *testing.T) {
	res := New(Options{}).Translate("if (a > 0) { y <- a$score }")
	assert.Equal(t, "if a > 0:\n    y = a[\"score\"]\n", body(t, res))
	assert.Empty(t, res.Warnings)
}

func TestTranslate_ForLoopWithStop(t *testing.T) {
	res := New(Options{}).Translate(`for (i in 1:3) { stop("bad") }`)
	assert.Equal(t, "for i in range(1, 4):\n    raise Exception(\"bad\")\n", body(t, res))
	assert.Empty(t, res.Warnings)
}

func TestTranslate_ChainedDeletion(t *testing.T) {
	res := New(Options{}).Translate("df$a <- df$b <- NULL")
	assert.Equal(t, "df = df.drop(columns=[\"a\", \"b\"])\n", body(t, res))
}

func TestTranslate_MultiLineBlocks(t *testing.T) {
	src := strings.Join([]string{
		"total <- 0",
		"for (i in 1:3) {",
		"  if (i > 1) {",
		"    total <- total + i",
		"  } else {",
		"    total <- 1",
		"  }",
		"}",
	}, "\n")
	want := strings.Join([]string{
		"total = 0",
		"for i in range(1, 4):",
		"    if i > 1:",
		"        total = total + i",
		"    else:",
		"        total = 1",
	}, "\n") + "\n"

	res := New(Options{}).Translate(src)
	assert.Equal(t, want, body(t, res))
	assert.Empty(t, res.Warnings)
}

func TestTranslate_FunctionDefinition(t *testing.T) {
	src := "calcTotal <- function(x, y) {\n  x + y\n}"
	res := New(Options{}).Translate(src)
	assert.Equal(t, "def calc_total(x, y):\n    x + y\n", body(t, res))
}

func TestTranslate_CommentsAndBlanks(t *testing.T) {
	src := "# setup\n\nx <- 1\nif (x > 0) {\n  # inside\n  y <- 2\n}"
	res := New(Options{}).Translate(src)
	want := "# setup\n\nx = 1\nif x > 0:\n    # inside\n    y = 2\n"
	assert.Equal(t, want, body(t, res))
}

func TestTranslate_EmptyDocument(t *testing.T) {
	// No translated lines means the output is the header alone, with no
	// stray blank lines after it.
	for _, src := range []string{"", "\n", "\n\n", "   \n\t\n"} {
		res := New(Options{}).Translate(src)
		assert.Equal(t, pyHeader, res.Output, "Translate(%q)", src)
		assert.Empty(t, res.Warnings)
	}

	// Trailing blanks in a non-empty document are dropped too.
	res := New(Options{}).Translate("x <- 1\n\n\n")
	assert.Equal(t, "x = 1\n", body(t, res))
}

func TestTranslate_HeaderIsStatic(t *testing.T) {
	res := New(Options{}).Translate("x <- 1")
	assert.True(t, strings.HasPrefix(res.Output, "import pandas as pd\n"))
	assert.Contains(t, res.Output, "from datetime import datetime, timedelta\n")
}

func TestTranslate_UnbalancedOpenWarns(t *testing.T) {
	res := New(Options{}).Translate("if (x > 0) {\n  y <- 1")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Msg, "unbalanced")
	// The partial translation is still produced.
	assert.Contains(t, res.Output, "if x > 0:")
	assert.Contains(t, res.Output, "    y = 1")
}

func TestTranslate_ExtraCloseWarnsAndContinues(t *testing.T) {
	res := New(Options{}).Translate("}\nx <- 1")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 1, res.Warnings[0].Line)
	assert.Contains(t, res.Output, "x = 1")
}

func TestTranslate_AnnotateUnhandled(t *testing.T) {
	src := "x$y$z <- 1"
	res := New(Options{AnnotateUnhandled: true}).Translate(src)
	assert.Contains(t, res.Output, "# r2py: manual review")

	// Without the option the line still passes through, unmarked.
	res = New(Options{}).Translate(src)
	assert.NotContains(t, res.Output, "manual review")
	assert.Contains(t, res.Output, `x["y"]$z = 1`)
}

func TestTranslate_IndentWidth(t *testing.T) {
	res := New(Options{IndentWidth: 2}).Translate("if (a) {\n  b <- 1\n}")
	assert.Equal(t, "if a:\n  b = 1\n", body(t, res))
}

func TestTranslate_NoSharedState(t *testing.T) {
	// Depth state never leaks between documents.
	tr := New(Options{})
	tr.Translate("if (a) {")
	res := tr.Translate("x <- 1")
	assert.Equal(t, "x = 1\n", body(t, res))
	assert.Empty(t, res.Warnings)
}

func TestSegmentBraces(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"x <- 1", []string{"x <- 1"}},
		{"if (a) {", []string{"if (a) {"}},
		{"if (a) { y <- 1 }", []string{"if (a) {", " y <- 1 ", "}"}},
		{"} else {", []string{"} else {"}},
		{"}", []string{"}"}},
		{"}}", []string{"}", "}"}},
		{`x <- "{}"`, []string{`x <- "{}"`}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, segmentBraces(c.in), "segmentBraces(%q)", c.in)
	}
}
