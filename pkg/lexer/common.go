// Package lexer implements one pure-function-shaped lexer per source
// language (spec §4.1). Each lexer type is a pointer cursor over the
// input string, following the teacher's readChar/peekChar scanning
// style; none of the four ever aborts — an unrecognized byte becomes a
// single-character PUNCTUATION token.
package lexer

import "github.com/rhino1998/polyglot/pkg/token"

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentTail(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

// sharedMultiCharOperators lists every multi-character operator shared across
// the four languages' tables (spec §4.1: "the operator table per
// language includes at minimum" this set). Individual lexers extend
// this with language-specific entries (e.g. "->", "::").
var sharedMultiCharOperators = []string{
	"==", "!=", "<=", ">=", "&&", "||", "<<", ">>", "++", "--",
	"+=", "-=", "*=", "/=",
}

// matchOperator returns the longest operator from candidates that is a
// prefix of s, or "" if none match. Candidates may be in any order:
// every candidate is tried and the longest match is kept.
func matchOperator(s string, candidates []string) string {
	best := ""
	for _, c := range candidates {
		if len(c) > len(best) && len(s) >= len(c) && s[:len(c)] == c {
			best = c
		}
	}
	return best
}

func newToken(kind token.Kind, literal string, line, column int) token.Token {
	return token.Token{Kind: kind, Literal: literal, Line: line, Column: column}
}
