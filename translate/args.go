package translate

import "strings"

// SplitArgs splits a comma-separated argument list on top-level commas
// only: commas nested inside parentheses, brackets, or string literals
// are not split points. Each part is returned with surrounding
// whitespace trimmed.
//
// Unbalanced input is recoverable, not fatal: the whole input comes back
// as a single element and callers leave the construct alone.
func SplitArgs(s string) []string {
	var parts []string
	depth := 0
	bad := false
	start := 0
	t := newStringTracker(s)
	for {
		ch, ok := t.Next()
		if !ok {
			break
		}
		if t.InString() {
			continue
		}
		switch ch {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				bad = true
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:t.Pos()]))
				start = t.Pos() + 1
			}
		}
	}
	if bad || depth != 0 || t.InString() {
		return []string{s}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// matchingDelim returns the index of the close delimiter matching the
// paren or bracket at open, or -1 when the line is unbalanced. Both
// delimiter kinds advance the same depth counter; the splitter and the
// rules only ever need paren-equivalence, not full bracket pairing.
func matchingDelim(s string, open int) int {
	mask := stringMask(s)
	depth := 0
	for i := open; i < len(s); i++ {
		if mask[i] {
			continue
		}
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchingDelimBackward walks left from a close paren or bracket to its
// matching opener. Returns -1 when unbalanced.
func matchingDelimBackward(s string, close int) int {
	mask := stringMask(s)
	depth := 0
	for i := close; i >= 0; i-- {
		if mask[i] {
			continue
		}
		switch s[i] {
		case ')', ']':
			depth++
		case '(', '[':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexOutside finds the first occurrence of sub at or after from that
// falls outside string literals. Returns -1 if there is none.
func indexOutside(s, sub string, from int) int {
	if from < 0 {
		from = 0
	}
	mask := stringMask(s)
	for i := from; i+len(sub) <= len(s); i++ {
		if mask[i] {
			continue
		}
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// findCall locates an occurrence of name immediately followed by "(" at
// an identifier boundary outside string literals, at or after from.
// Returns the index of the name and of the matching close paren, or
// (-1, -1) when absent or unbalanced.
func findCall(line, name string, from int) (int, int) {
	needle := name + "("
	for {
		i := indexOutside(line, needle, from)
		if i < 0 {
			return -1, -1
		}
		from = i + 1
		if i > 0 && (isIdentByte(line[i-1]) || line[i-1] == '.' || line[i-1] == '$') {
			continue
		}
		close := matchingDelim(line, i+len(name))
		if close < 0 {
			return -1, -1
		}
		return i, close
	}
}
