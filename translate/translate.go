// Package translate rewrites R scripts into semantically equivalent
// Python, line by line. There is no parse tree: an ordered table of pure
// rewrite rules normalizes each line, and a single stateful indent
// machine converts brace nesting into significant whitespace. The engine
// is a best-effort textual transducer; anything it cannot rewrite passes
// through (optionally flagged for manual review) rather than failing.
package translate

import (
	"fmt"
	"strings"
)

// Options configures a Translator. The zero value gets sensible
// defaults; options are fixed at construction and immutable after.
type Options struct {
	// IndentWidth is the number of spaces per block level. Default 4.
	IndentWidth int
	// AnnotateUnhandled appends a manual-review comment to emitted lines
	// that still carry untranslated R constructs.
	AnnotateUnhandled bool
}

// Warning records a recoverable anomaly found during translation, tied
// to the 1-based input line it was observed on.
type Warning struct {
	Line int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Msg)
}

// Result is the outcome of translating one document. Anomalies are
// warnings, never errors: the output is always produced.
type Result struct {
	Output   string
	Warnings []Warning
}

func (r *Result) warn(line int, msg string) {
	r.Warnings = append(r.Warnings, Warning{Line: line, Msg: msg})
}

// Translator drives lines through the rewrite rule table and the indent
// machine. Safe for concurrent use: all per-document state lives in the
// Translate call.
type Translator struct {
	opts  Options
	rules []Rule
}

// New creates a Translator with the given options.
func New(opts Options) *Translator {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 4
	}
	return &Translator{opts: opts, rules: defaultRules}
}

// Translate converts one R document into Python. The output starts with
// the fixed import header. Unbalanced blocks and untranslatable
// constructs surface as warnings on the result.
func (t *Translator) Translate(src string) *Result {
	res := &Result{}
	ind := &indenter{width: t.opts.IndentWidth}
	var lines []string

	srcLines := strings.Split(src, "\n")
	for i, raw := range srcLines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			// A trailing newline yields one final empty element; don't
			// turn it into an extra blank line.
			if i < len(srcLines)-1 {
				lines = append(lines, "")
			}
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			lines = append(lines, ind.prefix()+trimmed)
			continue
		}
		for _, seg := range segmentBraces(trimmed) {
			out := t.applyRules(seg)
			emitted, ok := ind.process(out, lineNo, res.warn)
			if !ok {
				continue
			}
			if t.opts.AnnotateUnhandled && !strings.HasSuffix(emitted, ":") && needsReview(emitted) {
				emitted += " # r2py: manual review"
			}
			lines = append(lines, emitted)
		}
	}
	if ind.depth != 0 {
		res.warn(len(srcLines), fmt.Sprintf("unbalanced blocks: %d left open at end of input", ind.depth))
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		res.Output = pyHeader
		return res
	}
	res.Output = pyHeader + "\n" + strings.Join(lines, "\n") + "\n"
	return res
}

func (t *Translator) applyRules(seg string) string {
	for _, r := range t.rules {
		seg, _ = r.Apply(seg)
	}
	return seg
}

// segmentBraces splits a source line on top-level braces so inline block
// bodies become their own logical lines: an opening brace ends its
// segment (brace attached, so the indent machine sees the open), and a
// closing brace starts a new one (so "} else {" stays whole and an
// inline body is emitted before its close is processed).
func segmentBraces(line string) []string {
	mask := stringMask(line)
	var segs []string
	start := 0
	for i := 0; i < len(line); i++ {
		if mask[i] {
			continue
		}
		switch line[i] {
		case '{':
			segs = append(segs, line[start:i+1])
			start = i + 1
		case '}':
			if strings.TrimSpace(line[start:i]) != "" {
				segs = append(segs, line[start:i])
			}
			start = i
		}
	}
	if rest := line[start:]; strings.TrimSpace(rest) != "" || len(segs) == 0 {
		segs = append(segs, rest)
	}
	return segs
}

// reviewMarkers are R constructs that should not survive translation;
// their presence in an emitted line means no rule knew what to do.
var reviewMarkers = []string{"<-", "->", "%in%", "function(", "$"}

func needsReview(line string) bool {
	for _, m := range reviewMarkers {
		if indexOutside(line, m, 0) >= 0 {
			return true
		}
	}
	return false
}
