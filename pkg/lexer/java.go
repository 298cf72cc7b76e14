package lexer

import "github.com/rhino1998/polyglot/pkg/token"

// javaKeywords is the reserved set for the class-based managed
// language.
var javaKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"boolean": true, "String": true, "final": true, "static": true,
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "return": true,
	"class": true, "public": true, "private": true, "protected": true,
	"new": true, "true": true, "false": true, "null": true, "this": true,
	"package": true, "import": true, "extends": true, "implements": true,
}

var javaMultiCharOperators = append([]string{}, sharedMultiCharOperators...)

// JavaLexer scans class-based managed-language source.
type JavaLexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
}

func NewJavaLexer(input string) *JavaLexer {
	l := &JavaLexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *JavaLexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *JavaLexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *JavaLexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

func (l *JavaLexer) readIdentifier() string {
	start := l.position
	for isIdentTail(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *JavaLexer) readNumber() string {
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

func (l *JavaLexer) readString() string {
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

func (l *JavaLexer) NextToken() token.Token {
	l.skipWhitespace()
	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return newToken(token.EOF, "", line, col)
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
		if javaKeywords[ident] {
			return newToken(token.KEYWORD, ident, line, col)
		}
		return newToken(token.IDENTIFIER, ident, line, col)
	}
	if op := matchOperator(l.input[l.position:], javaMultiCharOperators); op != "" {
		for range op {
			l.readChar()
		}
		return newToken(token.OPERATOR, op, line, col)
	}

	ch := l.ch
	l.readChar()
	return newToken(token.PUNCTUATION, string(ch), line, col)
}

func (l *JavaLexer) Tokenize() []token.Token {
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
