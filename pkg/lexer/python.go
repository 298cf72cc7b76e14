package lexer

import "github.com/rhino1998/polyglot/pkg/token"

// pythonKeywords is the reserved set for the indentation-based
// scripting language: control-flow, type-conversion, literal, I/O, and
// class keywords used in the common subset (spec §4.1).
var pythonKeywords = map[string]bool{
	"def": true, "class": true, "if": true, "elif": true, "else": true,
	"for": true, "while": true, "return": true, "break": true, "continue": true,
	"pass": true, "import": true, "from": true, "as": true, "in": true,
	"and": true, "or": true, "not": true, "True": true, "False": true, "None": true,
	"print": true, "input": true, "range": true, "int": true, "float": true, "str": true,
	"self": true, "const": true,
}

var pythonOperators = []string{"==", "!=", "<=", ">=", "**", "//"}

// PythonLexer scans indentation-based scripting-language source. Each
// emitted token carries its line's leading-whitespace column count in
// Indent (NEWLINE tokens excepted). Blank and comment-only lines still
// end in a NEWLINE token like any other line.
type PythonLexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
	atLineStart  bool
	curIndent    int
}

func NewPythonLexer(input string) *PythonLexer {
	l := &PythonLexer{input: input, line: 1, atLineStart: true}
	l.readChar()
	return l
}

func (l *PythonLexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *PythonLexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// consumeIndent measures a fresh line's leading spaces/tabs (tabs count
// as one column each, matching common editor width-agnostic indent
// comparisons) and leaves l.ch positioned at the first non-blank byte.
func (l *PythonLexer) consumeIndent() {
	indent := 0
	for l.ch == ' ' || l.ch == '\t' {
		indent++
		l.readChar()
	}
	l.curIndent = indent
}

func (l *PythonLexer) skipInlineSpace() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

func (l *PythonLexer) readIdentifier() string {
	start := l.position
	for isIdentTail(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *PythonLexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString reads a quoted literal starting at the opening quote,
// returning its content (excluding the quotes) and whether a closing
// quote was found before the end of the line or input.
func (l *PythonLexer) readString(quote byte) (content string, terminated bool) {
	l.readChar() // consume opening quote
	start := l.position
	for {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position], false
		}
		if l.ch == quote {
			content = l.input[start:l.position]
			l.readChar() // consume closing quote
			return content, true
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
}

// NextToken returns the next token. Unrecognized bytes become
// single-character PUNCTUATION tokens; unterminated strings terminate
// at end-of-input, per spec §4.1/§4.2.
func (l *PythonLexer) NextToken() token.Token {
	if l.atLineStart {
		l.consumeIndent()
		l.atLineStart = false
		if l.ch == '\n' || l.ch == 0 || l.ch == '#' {
			// Blank or comment-only line: fall through to normal handling
			// without emitting an indent-bearing placeholder.
		} else {
			tok := l.nextTokenInline()
			tok.Indent = l.curIndent
			return tok
		}
	}
	tok := l.nextTokenInline()
	if tok.Kind != token.NEWLINE {
		tok.Indent = l.curIndent
	}
	return tok
}

func (l *PythonLexer) nextTokenInline() token.Token {
	l.skipInlineSpace()

	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return newToken(token.EOF, "", line, col)
	case '\n':
		l.readChar()
		l.line++
		l.column = 0
		l.atLineStart = true
		return newToken(token.NEWLINE, "\n", line, col)
	case '#':
		start := l.position
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return newToken(token.COMMENT, l.input[start:l.position], line, col)
	case '"', '\'':
		quote := l.ch
		prefixed := false
		content, _ := l.readString(quote)
		tok := newToken(token.STRING, content, line, col)
		if prefixed {
			tok.Literal = "f" + tok.Literal
		}
		return tok
	}

	if l.ch == 'f' && (l.peekChar() == '"' || l.peekChar() == '\'') {
		l.readChar()
		quote := l.ch
		content, _ := l.readString(quote)
		tok := newToken(token.STRING, content, line, col)
		tok.Literal = "f\x00" + tok.Literal // \x00 sentinel marks interpolated
		return tok
	}

	if isDigit(l.ch) {
		return newToken(token.NUMBER, l.readNumber(), line, col)
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		if pythonKeywords[ident] {
			return newToken(token.KEYWORD, ident, line, col)
		}
		return newToken(token.IDENTIFIER, ident, line, col)
	}

	if op := matchOperator(l.input[l.position:], pythonOperators); op != "" {
		for range op {
			l.readChar()
		}
		return newToken(token.OPERATOR, op, line, col)
	}
	if op := matchOperator(l.input[l.position:], sharedMultiCharOperators); op != "" {
		for range op {
			l.readChar()
		}
		return newToken(token.OPERATOR, op, line, col)
	}

	ch := l.ch
	l.readChar()
	return newToken(token.PUNCTUATION, string(ch), line, col)
}

// Tokenize scans the entire input and returns the flat token sequence,
// terminated by a single EOF token.
func (l *PythonLexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}
