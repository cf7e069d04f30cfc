package translate

// stringTracker iterates byte-by-byte over a line of R source, tracking
// double- and single-quoted string literal boundaries and backslash
// escapes. Rules check InString() instead of each maintaining their own
// inDouble/inSingle/escaped flags.
type stringTracker struct {
	src     string
	pos     int
	inDbl   bool
	inSgl   bool
	escaped bool
}

func newStringTracker(src string) *stringTracker {
	return &stringTracker{src: src, pos: -1}
}

// Next advances to the next byte, updating quote and escape state.
// Returns the byte and true, or (0, false) at end of input.
func (t *stringTracker) Next() (byte, bool) {
	t.pos++
	if t.pos >= len(t.src) {
		return 0, false
	}
	ch := t.src[t.pos]
	if t.escaped {
		t.escaped = false
		return ch, true
	}
	if ch == '\\' && (t.inDbl || t.inSgl) {
		t.escaped = true
		return ch, true
	}
	if ch == '"' && !t.inSgl {
		t.inDbl = !t.inDbl
	} else if ch == '\'' && !t.inDbl {
		t.inSgl = !t.inSgl
	}
	return ch, true
}

// Pos returns the index of the current byte.
func (t *stringTracker) Pos() int { return t.pos }

// InString reports whether the current byte is inside a string literal.
// The opening delimiter counts as inside; the closing delimiter does not,
// which is fine for every caller here since none of them act on quote bytes.
func (t *stringTracker) InString() bool { return t.inDbl || t.inSgl }

// stringMask marks every byte of line that belongs to a string literal.
// Convenient for rules that need random access rather than iteration.
func stringMask(line string) []bool {
	mask := make([]bool, len(line))
	t := newStringTracker(line)
	for {
		_, ok := t.Next()
		if !ok {
			break
		}
		mask[t.pos] = t.InString()
	}
	return mask
}
