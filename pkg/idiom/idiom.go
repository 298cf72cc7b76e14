// Package idiom holds the pure, language-independent helpers that the
// front-ends lean on to recognize the idioms named in spec §2:
// counted-loop-to-range folding and printf/f-string placeholder
// decomposition. Keeping these as free functions over plain values (no
// lexer/parser/ir coupling beyond what is passed in) lets the parsers
// share one implementation instead of near-duplicates; the emitters do
// not use this package.
package idiom

import (
	"strings"
)

// RangeFold is the result of recognizing a classic counted loop as a
// bounded-range iteration.
type RangeFold struct {
	IteratorName string
	Start        string // literal text of the range start, e.g. "0"
	End          string // literal text of the end, plus-one-ified for <=
	Step         string // literal text of the step, default "1"
	Recognized   bool
}

// FoldCountedLoop implements spec §4.2.2's classic counted-loop
// recognition: for a for(init; cond; update) whose init assigns an
// iterator, whose cond compares that same iterator with < or <=, and
// whose update increments (++/++_post) or adds-assigns (+=) that same
// iterator, it returns the equivalent half-open range parameters.
//
// initVar/initValue describe the init statement's target and literal
// initializer text; condOp/condIterator/condBound describe the
// condition's operator, the operand naming the iterator, and the other
// operand's literal text; updateKind is one of "inc", "inc_post", or
// "add_assign" with updateStep set for "add_assign".
func FoldCountedLoop(initVar, initValue, condOp, condIterator, condBound, updateVar, updateKind, updateStep string) RangeFold {
	if initVar == "" || initVar != condIterator || initVar != updateVar {
		return RangeFold{}
	}
	if condOp != "<" && condOp != "<=" {
		return RangeFold{}
	}
	switch updateKind {
	case "inc", "inc_post":
	case "add_assign":
	default:
		return RangeFold{}
	}

	end := condBound
	if condOp == "<=" {
		end = plusOne(condBound)
	}

	step := "1"
	if updateKind == "add_assign" && updateStep != "" {
		step = updateStep
	}

	return RangeFold{
		IteratorName: initVar,
		Start:        initValue,
		End:          end,
		Step:         step,
		Recognized:   true,
	}
}

// plusOne renders "N+1" for a literal integer bound, falling back to a
// symbolic "(bound)+1" when bound is not a plain integer literal (e.g.
// an identifier or expression), since the fold must remain valid text
// either way.
func plusOne(bound string) string {
	n := 0
	ok := len(bound) > 0
	for _, ch := range bound {
		if ch < '0' || ch > '9' {
			ok = false
			break
		}
		n = n*10 + int(ch-'0')
	}
	if ok {
		return itoa(n + 1)
	}
	return "(" + bound + ")+1"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// FormatSegment is one piece of a decomposed Print argument list: a
// literal text run, or a placeholder standing in for the next argument
// value (optionally carrying the directive/name that produced it).
type FormatSegment struct {
	IsValue   bool
	Text      string // literal text, when !IsValue
	Directive string // e.g. "%d", or the {name} placeholder's name, when IsValue
}

// cDirectives is the set recognized by spec §4.2.2's printf scanning.
var cDirectives = []string{"%d", "%i", "%s", "%f", "%c", "%x", "%X", "%o", "%u", "%e", "%E", "%g", "%G", "%p"}

// DecomposePrintf scans a C-style format string left to right, splitting
// it into literal segments interleaved with value placeholders at each
// recognized directive. A trailing newline is stripped from the final
// literal segment and reported via newline=true, per spec §4.2.2; it is
// recognized both as a real newline character and as the raw two-byte
// escape backslash-n that the C-family lexers leave in string literals.
func DecomposePrintf(format string) (segments []FormatSegment, newline bool) {
	i := 0
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, FormatSegment{Text: lit.String()})
			lit.Reset()
		}
	}
	for i < len(format) {
		matched := ""
		if format[i] == '%' {
			for _, d := range cDirectives {
				if strings.HasPrefix(format[i:], d) {
					matched = d
					break
				}
			}
		}
		if matched != "" {
			flush()
			segments = append(segments, FormatSegment{IsValue: true, Directive: matched})
			i += len(matched)
			continue
		}
		lit.WriteByte(format[i])
		i++
	}
	flush()

	if len(segments) > 0 {
		last := &segments[len(segments)-1]
		if !last.IsValue {
			for _, nl := range []string{"\n", `\n`} {
				if strings.HasSuffix(last.Text, nl) {
					newline = true
					last.Text = strings.TrimSuffix(last.Text, nl)
					if last.Text == "" {
						segments = segments[:len(segments)-1]
					}
					break
				}
			}
		}
	}
	return segments, newline
}

// DecomposeInterpolated splits a scripting-language interpolated
// literal's {name} placeholders into literal/value segments (spec
// §4.1/§4.3).
func DecomposeInterpolated(literal string) []FormatSegment {
	var segments []FormatSegment
	i := 0
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, FormatSegment{Text: lit.String()})
			lit.Reset()
		}
	}
	for i < len(literal) {
		if literal[i] == '{' {
			if end := strings.IndexByte(literal[i:], '}'); end > 0 {
				name := literal[i+1 : i+end]
				if name != "" {
					flush()
					segments = append(segments, FormatSegment{IsValue: true, Directive: name})
					i += end + 1
					continue
				}
			}
		}
		lit.WriteByte(literal[i])
		i++
	}
	flush()
	return segments
}

// DirectiveType maps a printf-style directive to the IR data type an
// Input/format-value slot should carry, per spec §4.2.2.
func DirectiveType(directive string) string {
	switch directive {
	case "%d", "%i", "%x", "%X", "%o", "%u":
		return "int"
	case "%f", "%e", "%E", "%g", "%G":
		return "float"
	case "%c":
		return "char"
	default:
		return "string"
	}
}
