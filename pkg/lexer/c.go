package lexer

import "github.com/rhino1998/polyglot/pkg/token"

// cKeywords is the reserved set for C, restricted to the common
// subset's control-flow, type, literal, and I/O keywords (spec §4.1,
// §4.2.2: "the type-keyword set for C is exactly {int, float, double,
// char, void, const, static}").
var cKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"const": true, "static": true,
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "return": true,
	"struct": true, "typedef": true,
}

var cMultiCharOperators = append([]string{"->"}, sharedMultiCharOperators...)

// CLexer scans C-family low-level source.
type CLexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

func NewCLexer(input string) *CLexer {
	l := &CLexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *CLexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *CLexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *CLexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *CLexer) readIdentifier() string {
	start := l.position
	for isIdentTail(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *CLexer) readNumber() string {
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

func (l *CLexer) readString() string {
	l.readChar()
	start := l.position
	for {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position]
		}
		if l.ch == '"' {
			content := l.input[start:l.position]
			l.readChar()
			return content
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
}

// NextToken returns the next token, never aborting on malformed input.
func (l *CLexer) NextToken() token.Token {
	l.skipWhitespace()
	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return newToken(token.EOF, "", line, col)
	case '#':
		start := l.position
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		return newToken(token.PREPROCESSOR, l.input[start:l.position], line, col)
	case '"':
		return newToken(token.STRING, l.readString(), line, col)
	case '\'':
		l.readChar()
		start := l.position
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			if l.ch == '\\' {
				l.readChar()
			}
			l.readChar()
		}
		content := l.input[start:l.position]
		if l.ch == '\'' {
			l.readChar()
		}
		return newToken(token.CHAR, content, line, col)
	case '/':
		if l.peekChar() == '/' {
			start := l.position
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			return newToken(token.COMMENT, l.input[start:l.position], line, col)
		}
		if l.peekChar() == '*' {
			start := l.position
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				if l.ch == '\n' {
					l.line++
					l.column = 0
				}
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
			return newToken(token.MULTILINE_COMMENT, l.input[start:l.position], line, col)
		}
	}

	if isDigit(l.ch) {
		return newToken(token.NUMBER, l.readNumber(), line, col)
	}
	if isLetter(l.ch) {
		ident := l.readIdentifier()
		if cKeywords[ident] {
			return newToken(token.KEYWORD, ident, line, col)
		}
		return newToken(token.IDENTIFIER, ident, line, col)
	}
	if op := matchOperator(l.input[l.position:], cMultiCharOperators); op != "" {
		for range op {
			l.readChar()
		}
		return newToken(token.OPERATOR, op, line, col)
	}

	ch := l.ch
	l.readChar()
	return newToken(token.PUNCTUATION, string(ch), line, col)
}

func (l *CLexer) Tokenize() []token.Token {
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
