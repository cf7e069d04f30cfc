package translate

import "strings"

// indenter is the block/indent state machine. It owns the nesting depth
// for one document pass: block delimiters adjust the depth, the stripped
// content is emitted at the current depth, and a trailing block-open
// colon deepens the next line. Depth never goes negative; a close with
// nothing open is tolerated and recorded as a warning.
type indenter struct {
	depth int
	width int
}

// prefix returns the indentation for the current depth.
func (in *indenter) prefix() string {
	return strings.Repeat(" ", in.depth*in.width)
}

// process applies one segment's transitions: close markers first (so an
// else or elif header riding its closing brace is emitted at the depth
// of its matching opener), then delimiter stripping, emission, and the
// open transition. Returns the emitted line; ok is false when the
// segment had no content left after stripping.
func (in *indenter) process(seg string, lineNo int, warn func(line int, msg string)) (string, bool) {
	mask := stringMask(seg)
	closes := 0
	var sb strings.Builder
	for i := 0; i < len(seg); i++ {
		switch {
		case mask[i]:
			sb.WriteByte(seg[i])
		case seg[i] == '}':
			closes++
		case seg[i] == '{':
			// stripped
		default:
			sb.WriteByte(seg[i])
		}
	}
	if closes > in.depth {
		warn(lineNo, "more block closes than opens, clamping depth at 0")
		in.depth = 0
	} else {
		in.depth -= closes
	}
	content := strings.TrimSpace(sb.String())
	if content == "" {
		return "", false
	}
	line := in.prefix() + content
	if strings.HasSuffix(content, ":") {
		in.depth++
	}
	return line, true
}
