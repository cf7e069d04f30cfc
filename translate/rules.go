package translate

import (
	"regexp"
	"strconv"
	"strings"
)

// A Rule is one named rewrite pass over a single line. Apply returns the
// rewritten line and whether the rule's pattern matched. Rules are pure
// and must leave non-matching lines untouched; they never assume an
// earlier rule actually fired, only that its normal form is possible.
type Rule struct {
	Name  string
	Apply func(line string) (string, bool)
}

// defaultRules is the rewrite table in application order. The order is a
// first-class artifact: member access must be normalized before the mask
// rewrites can see indexed columns, ranges must be half-open before the
// loop header rule runs, and the chained-deletion collapse needs both
// the constant and member-access normal forms.
var defaultRules = []Rule{
	{"vector", rewriteVector},
	{"assign", rewriteAssign},
	{"constants", rewriteConstants},
	{"member-access", rewriteMemberAccess},
	{"drop-columns", rewriteDropColumns},
	{"range", rewriteRange},
	{"merge", rewriteMerge},
	{"subset", rewriteSubset},
	{"bracket-filter", rewriteBracketFilter},
	{"membership", rewriteMembership},
	{"bind", rewriteBind},
	{"unique", rewriteUnique},
	{"grep", rewriteGrep},
	{"list-files", rewriteListFiles},
	{"names", rewriteNames},
	{"stop", rewriteStop},
	{"function-def", rewriteFunctionDef},
	{"elif-header", rewriteElifHeader},
	{"else-header", rewriteElseHeader},
	{"if-header", rewriteIfHeader},
	{"for-header", rewriteForHeader},
	{"while-header", rewriteWhileHeader},
	{"datetime", rewriteDatetime},
}

// replaceOutside applies re across line, skipping matches that start
// inside string literals. repl receives the submatch texts (index 0 is
// the whole match). Reports whether anything was replaced.
func replaceOutside(line string, re *regexp.Regexp, repl func(groups []string) string) (string, bool) {
	idxs := re.FindAllStringSubmatchIndex(line, -1)
	if len(idxs) == 0 {
		return line, false
	}
	mask := stringMask(line)
	var sb strings.Builder
	last := 0
	changed := false
	for _, m := range idxs {
		if m[0] < len(mask) && mask[m[0]] {
			continue
		}
		groups := make([]string, 0, len(m)/2)
		for g := 0; g < len(m); g += 2 {
			if m[g] < 0 {
				groups = append(groups, "")
			} else {
				groups = append(groups, line[m[g]:m[g+1]])
			}
		}
		sb.WriteString(line[last:m[0]])
		sb.WriteString(repl(groups))
		last = m[1]
		changed = true
	}
	if !changed {
		return line, false
	}
	sb.WriteString(line[last:])
	return sb.String(), true
}

// rewriteCalls rewrites every name(...) call site outside strings. fn
// receives the split top-level arguments and returns the replacement
// text; returning ok=false leaves that call site alone.
func rewriteCalls(line, name string, fn func(args []string) (string, bool)) (string, bool) {
	changed := false
	from := 0
	for {
		start, close := findCall(line, name, from)
		if start < 0 {
			return line, changed
		}
		open := start + len(name)
		repl, ok := fn(SplitArgs(line[open+1 : close]))
		if !ok {
			from = close + 1
			continue
		}
		line = line[:start] + repl + line[close+1:]
		from = start + len(repl)
		changed = true
	}
}

// --- vector ---

// rewriteVector turns the c(...) vector constructor into an ordered
// sequence literal, recursively, so nested constructors survive:
// c(1, c(2, 3)) becomes [1, [2, 3]].
func rewriteVector(line string) (string, bool) {
	return rewriteCalls(line, "c", func(args []string) (string, bool) {
		if len(args) == 1 && args[0] == "" {
			return "[]", true
		}
		for i, a := range args {
			args[i], _ = rewriteVector(a)
		}
		return "[" + strings.Join(args, ", ") + "]", true
	})
}

// --- assignment ---

var (
	rightAssignRe = regexp.MustCompile(`^(\s*)(.+?)\s*->>?\s*([A-Za-z_][A-Za-z0-9._]*)\s*$`)
	plainAssignRe = regexp.MustCompile(`^(\s*)([A-Za-z_][A-Za-z0-9._]*)\s*=\s*([^=].*|)$`)
)

// rewriteAssign normalizes every R assignment operator to "=": left
// arrows (<- and the superassignment <<-), and right arrows, which also
// swap the operand order. Whitespace around the operator is canonicalized
// and a plain-identifier left-hand side goes through SnakeCase.
func rewriteAssign(line string) (string, bool) {
	orig := line
	if m := rightAssignRe.FindStringSubmatch(line); m != nil && indexOutside(line, "->", 0) >= 0 {
		line = m[1] + SnakeCase(m[3]) + " = " + m[2]
	}
	if indexOutside(line, "<-", 0) >= 0 {
		line = replaceTokenOutside(line, "<<-", "=")
		line = replaceTokenOutside(line, "<-", "=")
	}
	if m := plainAssignRe.FindStringSubmatch(line); m != nil {
		line = m[1] + SnakeCase(m[2]) + " = " + strings.TrimSpace(m[3])
	}
	return line, line != orig
}

// --- logical constants ---

var constantRe = regexp.MustCompile(`\b(TRUE|FALSE|NA|NULL)\b`)

var constantMap = map[string]string{
	"TRUE":  "True",
	"FALSE": "False",
	"NA":    "None",
	"NULL":  "None",
}

func rewriteConstants(line string) (string, bool) {
	return replaceOutside(line, constantRe, func(g []string) string {
		return constantMap[g[1]]
	})
}

// --- member access ---

var memberRe = regexp.MustCompile(`([A-Za-z_]\w*)\$([A-Za-z_][\w.]*)`)

// rewriteMemberAccess turns df$col into string-keyed indexed access,
// normalizing the field name: df$unitPrice becomes df["unit_price"].
func rewriteMemberAccess(line string) (string, bool) {
	return replaceOutside(line, memberRe, func(g []string) string {
		return g[1] + `["` + SnakeCase(g[2]) + `"]`
	})
}

// --- chained NULL deletion ---

var (
	dropChainRe = regexp.MustCompile(`^\s*(?:[A-Za-z_]\w*\["[^"]*"\]\s*=\s*)+None\s*$`)
	dropPairRe  = regexp.MustCompile(`([A-Za-z_]\w*)\["([^"]*)"\]`)
)

// rewriteDropColumns collapses a chain of field-to-None assignments on
// one object into a single bulk column drop. All chained fields are
// collected before emitting; a chain mixing two objects is left alone
// rather than dropping half of it.
func rewriteDropColumns(line string) (string, bool) {
	if !dropChainRe.MatchString(line) {
		return line, false
	}
	pairs := dropPairRe.FindAllStringSubmatch(line, -1)
	obj := pairs[0][1]
	cols := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] != obj {
			return line, false
		}
		cols = append(cols, `"`+p[2]+`"`)
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	return indent + obj + " = " + obj + ".drop(columns=[" + strings.Join(cols, ", ") + "])", true
}

// --- ranges ---

var (
	colonRangeRe = regexp.MustCompile(`(^|[^:"'\w])(\d+|[A-Za-z_][\w.]*):(\d+|[A-Za-z_][\w.]*)($|[^:\w])`)
	seqArgRe     = regexp.MustCompile(`^(?:from|to|by)\s*=\s*`)
)

// bumpBound applies the inclusive-to-exclusive upper bound adjustment:
// integer literals are folded, anything else gets a textual + 1.
func bumpBound(b string) string {
	b = strings.TrimSpace(b)
	if n, err := strconv.Atoi(b); err == nil {
		return strconv.Itoa(n + 1)
	}
	return b + " + 1"
}

// rewriteRange converts a:b notation and seq() calls into half-open
// range() constructs. The +1 upper bound policy applies uniformly,
// including inside loop headers (which are rewritten later and simply
// keep the already-converted range expression).
func rewriteRange(line string) (string, bool) {
	line, m1 := replaceOutside(line, colonRangeRe, func(g []string) string {
		return g[1] + "range(" + g[2] + ", " + bumpBound(g[3]) + ")" + g[4]
	})
	line, m2 := rewriteCalls(line, "seq", func(args []string) (string, bool) {
		if len(args) < 2 || len(args) > 3 {
			return "", false
		}
		from := seqArgRe.ReplaceAllString(args[0], "")
		to := seqArgRe.ReplaceAllString(args[1], "")
		out := "range(" + from + ", " + bumpBound(to)
		if len(args) == 3 {
			out += ", " + seqArgRe.ReplaceAllString(args[2], "")
		}
		return out + ")", true
	})
	return line, m1 || m2
}

// --- merge ---

// rewriteMerge converts merge(x, y, ...) into an explicit pd.merge call.
// Join type defaults to inner; the all.x/all.y/all flags map to
// left/right/outer with the documented precedence left > right > outer
// when several are set at once. by/by.x/by.y become on/left_on/right_on.
// Arguments it does not recognize ride through into the rebuilt call
// verbatim, never dropped.
func rewriteMerge(line string) (string, bool) {
	return rewriteCalls(line, "merge", func(args []string) (string, bool) {
		if len(args) < 2 {
			return "", false
		}
		var on, leftOn, rightOn string
		var extra []string
		var allX, allY, allBoth bool
		for _, a := range args[2:] {
			key, val, ok := strings.Cut(a, "=")
			if !ok {
				extra = append(extra, a)
				continue
			}
			key, val = strings.TrimSpace(key), strings.TrimSpace(val)
			truthy := val == "True" || val == "TRUE" || val == "T"
			switch key {
			case "by":
				on = val
			case "by.x":
				leftOn = val
			case "by.y":
				rightOn = val
			case "all.x":
				allX = allX || truthy
			case "all.y":
				allY = allY || truthy
			case "all":
				allBoth = allBoth || truthy
			default:
				extra = append(extra, a)
			}
		}
		how := "inner"
		switch {
		case allX:
			how = "left"
		case allY:
			how = "right"
		case allBoth:
			how = "outer"
		}
		out := "pd.merge(" + args[0] + ", " + args[1]
		if on != "" {
			out += ", on=" + on
		}
		if leftOn != "" {
			out += ", left_on=" + leftOn
		}
		if rightOn != "" {
			out += ", right_on=" + rightOn
		}
		for _, a := range extra {
			out += ", " + a
		}
		return out + `, how="` + how + `")`, true
	})
}

// --- row filters ---

// rewriteMask converts an R condition into a boolean mask expression:
// the not-missing idiom becomes .notna(), is.na becomes .isna(), and the
// logical operators become their element-wise forms. Scalar short-circuit
// semantics are deliberately not preserved; masks are vectorized.
func rewriteMask(cond string) string {
	for {
		i := indexOutside(cond, "!is.na(", 0)
		if i < 0 {
			break
		}
		close := matchingDelim(cond, i+6)
		if close < 0 {
			break
		}
		cond = cond[:i] + cond[i+7:close] + ".notna()" + cond[close+1:]
	}
	for from := 0; ; {
		i := indexOutside(cond, "is.na(", from)
		if i < 0 {
			break
		}
		if i > 0 && (isIdentByte(cond[i-1]) || cond[i-1] == '.') {
			from = i + 1
			continue
		}
		close := matchingDelim(cond, i+5)
		if close < 0 {
			break
		}
		cond = cond[:i] + cond[i+6:close] + ".isna()" + cond[close+1:]
		from = 0
	}
	cond = replaceTokenOutside(cond, "&&", "&")
	cond = replaceTokenOutside(cond, "||", "|")

	// Remaining scalar negations become element-wise complements.
	mask := stringMask(cond)
	var sb strings.Builder
	for i := 0; i < len(cond); i++ {
		if !mask[i] && cond[i] == '!' && (i+1 >= len(cond) || cond[i+1] != '=') {
			sb.WriteByte('~')
			continue
		}
		sb.WriteByte(cond[i])
	}
	return sb.String()
}

// replaceTokenOutside substitutes every occurrence of from outside
// string literals.
func replaceTokenOutside(s, from, to string) string {
	for pos := 0; ; {
		i := indexOutside(s, from, pos)
		if i < 0 {
			return s
		}
		s = s[:i] + to + s[i+len(from):]
		pos = i + len(to)
	}
}

// rewriteSubset converts a two-argument subset(df, cond) call into an
// indexed boolean mask selection. Calls with a select= argument (or any
// third argument) are left for manual review rather than half-translated.
func rewriteSubset(line string) (string, bool) {
	return rewriteCalls(line, "subset", func(args []string) (string, bool) {
		if len(args) != 2 {
			return "", false
		}
		return args[0] + "[" + rewriteMask(args[1]) + "]", true
	})
}

var bracketSelRe = regexp.MustCompile(`^(\s*)(?:([A-Za-z_][A-Za-z0-9._]*)\s*=\s*)?([A-Za-z_]\w*)\[(.*)\]\s*$`)

// rewriteBracketFilter handles the bracketed row/column selector:
// df[cond, ] becomes a mask selection and df[, ["a", "b"]] becomes a
// column projection. Selectors using both dimensions at once are left
// alone.
func rewriteBracketFilter(line string) (string, bool) {
	m := bracketSelRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	parts := SplitArgs(m[4])
	if len(parts) != 2 {
		return line, false
	}
	rows, cols := parts[0], parts[1]
	var sel string
	switch {
	case cols == "" && rows != "":
		sel = m[3] + "[" + rewriteMask(rows) + "]"
	case rows == "" && cols != "":
		sel = m[3] + "[" + cols + "]"
	default:
		return line, false
	}
	if m[2] != "" {
		sel = SnakeCase(m[2]) + " = " + sel
	}
	return m[1] + sel, true
}

// --- set membership ---

// rewriteMembership converts the infix %in% operator into a membership
// test method call: x %in% v becomes x.isin(v), and the negated form
// becomes ~x.isin(v).
func rewriteMembership(line string) (string, bool) {
	matched := false
	for {
		i := indexOutside(line, "%in%", 0)
		if i < 0 {
			return line, matched
		}
		lhsEnd := i
		for lhsEnd > 0 && line[lhsEnd-1] == ' ' {
			lhsEnd--
		}
		lhsStart := exprBefore(line, lhsEnd)
		neg := lhsStart > 0 && line[lhsStart-1] == '!'
		if neg {
			lhsStart--
		}
		lhs := strings.TrimPrefix(line[lhsStart:lhsEnd], "!")

		j := i + len("%in%")
		for j < len(line) && line[j] == ' ' {
			j++
		}
		rhsEnd := j
		if j < len(line) && (line[j] == '(' || line[j] == '[') {
			close := matchingDelim(line, j)
			if close < 0 {
				return line, matched
			}
			rhsEnd = close + 1
		} else {
			for rhsEnd < len(line) && !strings.ContainsRune(" ,)]", rune(line[rhsEnd])) {
				rhsEnd++
			}
		}
		repl := lhs + ".isin(" + line[j:rhsEnd] + ")"
		if neg {
			repl = "~" + repl
		}
		line = line[:lhsStart] + repl + line[rhsEnd:]
		matched = true
	}
}

// exprBefore walks left from end over one indexing expression, e.g. the
// df["type"] in `df["type"] %in% v`, returning its start index.
func exprBefore(line string, end int) int {
	i := end
	for i > 0 {
		c := line[i-1]
		switch {
		case c == ']' || c == ')':
			open := matchingDelimBackward(line, i-1)
			if open < 0 {
				return i
			}
			i = open
		case isIdentByte(c) || c == '.':
			i--
		default:
			return i
		}
	}
	return i
}

// --- data frame helpers ---

func rewriteBind(line string) (string, bool) {
	line, m1 := rewriteCalls(line, "rbind", func(args []string) (string, bool) {
		return "pd.concat([" + strings.Join(args, ", ") + "], axis=0)", true
	})
	line, m2 := rewriteCalls(line, "cbind", func(args []string) (string, bool) {
		return "pd.concat([" + strings.Join(args, ", ") + "], axis=1)", true
	})
	return line, m1 || m2
}

func rewriteUnique(line string) (string, bool) {
	return rewriteCalls(line, "unique", func(args []string) (string, bool) {
		if len(args) != 1 {
			return "", false
		}
		return "pd.Series(" + args[0] + ").unique()", true
	})
}

func rewriteGrep(line string) (string, bool) {
	return rewriteCalls(line, "grep", func(args []string) (string, bool) {
		if len(args) != 2 {
			return "", false
		}
		return "[i for i in " + args[1] + " if re.search(" + args[0] + ", i)]", true
	})
}

func rewriteListFiles(line string) (string, bool) {
	return rewriteCalls(line, "list.files", func(args []string) (string, bool) {
		if len(args) == 1 && args[0] == "" {
			return "os.listdir()", true
		}
		return "os.listdir(" + strings.Join(args, ", ") + ")", true
	})
}

func rewriteNames(line string) (string, bool) {
	return rewriteCalls(line, "names", func(args []string) (string, bool) {
		if len(args) != 1 {
			return "", false
		}
		return args[0] + ".columns", true
	})
}

// --- error signaling ---

// rewriteStop turns stop(msg) into a raise statement carrying the same
// message expression, unevaluated.
func rewriteStop(line string) (string, bool) {
	return rewriteCalls(line, "stop", func(args []string) (string, bool) {
		return "raise Exception(" + strings.Join(args, ", ") + ")", true
	})
}

// --- headers ---

var (
	funcDefRe = regexp.MustCompile(`^(\s*)([A-Za-z_][\w.]*)\s*=\s*function\s*\((.*)\)\s*(\{?)\s*$`)
	elifRe    = regexp.MustCompile(`^(\s*\}?\s*)else\s+if\s*\((.*)\)\s*(\{?)\s*$`)
	elseRe    = regexp.MustCompile(`^(\s*\}?\s*)else\s*(\{?)\s*$`)
	ifRe      = regexp.MustCompile(`^(\s*)if\s*\((.*)\)\s*(\{?)\s*$`)
	forRe     = regexp.MustCompile(`^(\s*)for\s*\(\s*([A-Za-z_][\w.]*)\s+in\s+(.*)\)\s*(\{?)\s*$`)
	whileRe   = regexp.MustCompile(`^(\s*)while\s*\((.*)\)\s*(\{?)\s*$`)
)

// header assembles a block header ending in the block-open colon,
// preserving any brace delimiters for the indent machine to consume.
func header(prefix, head, brace string) string {
	if brace != "" {
		return prefix + head + ": {"
	}
	return prefix + head + ":"
}

func rewriteFunctionDef(line string) (string, bool) {
	m := funcDefRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "def "+SnakeCase(m[2])+"("+m[3]+")", m[4]), true
}

func rewriteElifHeader(line string) (string, bool) {
	m := elifRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "elif "+m[2], m[3]), true
}

func rewriteElseHeader(line string) (string, bool) {
	m := elseRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "else", m[2]), true
}

func rewriteIfHeader(line string) (string, bool) {
	m := ifRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "if "+m[2], m[3]), true
}

func rewriteForHeader(line string) (string, bool) {
	m := forRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "for "+m[2]+" in "+strings.TrimSpace(m[3]), m[4]), true
}

func rewriteWhileHeader(line string) (string, bool) {
	m := whileRe.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}
	return header(m[1], "while "+m[2], m[3]), true
}

// --- date / time ---

var sysDateArithRe = regexp.MustCompile(`Sys\.Date\(\)\s*-\s*(\d+)`)

func rewriteDatetime(line string) (string, bool) {
	line, m1 := replaceOutside(line, sysDateArithRe, func(g []string) string {
		return "datetime.today().date() - timedelta(days=" + g[1] + ")"
	})
	matched := m1
	if indexOutside(line, "Sys.Date()", 0) >= 0 {
		line = replaceTokenOutside(line, "Sys.Date()", "datetime.today().date()")
		matched = true
	}
	if indexOutside(line, "Sys.time()", 0) >= 0 {
		line = replaceTokenOutside(line, "Sys.time()", "datetime.now()")
		matched = true
	}
	return line, matched
}
