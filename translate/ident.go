package translate

import "strings"

// pythonKeywords are reserved words of the target language. Identifiers
// that normalize onto one of these get a trailing underscore so the
// generated code still parses.
var pythonKeywords = map[string]bool{
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// SnakeCase maps an R identifier to its Python form: dots and hyphens
// become underscores, a camelCase boundary gets an underscore inserted,
// runs of underscores collapse, and the result is lowercased.
//
// Total and idempotent: it never fails, and
// SnakeCase(SnakeCase(x)) == SnakeCase(x) for every input.
func SnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	var prevRaw, prevOut byte
	for i := 0; i < len(name); i++ {
		raw := name[i]
		ch := raw
		if ch == '.' || ch == '-' {
			ch = '_'
		}
		if ch >= 'A' && ch <= 'Z' {
			// Boundary detection uses the raw input byte: HTTPCode has
			// no lower-to-upper transition and stays httpcode.
			if prevRaw >= 'a' && prevRaw <= 'z' || prevRaw >= '0' && prevRaw <= '9' {
				if prevOut != '_' {
					b.WriteByte('_')
					prevOut = '_'
				}
			}
			ch += 'a' - 'A'
		}
		if ch != '_' || prevOut != '_' {
			b.WriteByte(ch)
			prevOut = ch
		}
		prevRaw = raw
	}
	out := b.String()
	if pythonKeywords[out] {
		out += "_"
	}
	return out
}

func isIdentByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' || ch == '_'
}
