package lexer_test

import (
	"testing"

	"github.com/rhino1998/polyglot/pkg/lexer"
	"github.com/rhino1998/polyglot/pkg/token"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []token.Token) []token.Kind {
	var ks []token.Kind
	for _, t := range tokens {
		ks = append(ks, t.Kind)
	}
	return ks
}

func TestPythonLexer_IndentAndKeywords(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewPythonLexer("if x > 5:\n    print(x)\n").Tokenize()
	r.NotEmpty(toks)
	r.Equal(token.KEYWORD, toks[0].Kind)
	r.Equal("if", toks[0].Literal)

	var printTok token.Token
	for _, tok := range toks {
		if tok.Literal == "print" {
			printTok = tok
		}
	}
	r.Equal(4, printTok.Indent)
}

func TestPythonLexer_NeverAborts(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewPythonLexer("x = \"unterminated").Tokenize()
	r.Equal(token.EOF, toks[len(toks)-1].Kind)
}

func TestCLexer_PreprocessorAndOperators(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewCLexer("#include <stdio.h>\nint x = 5;\nx += 1;\n").Tokenize()
	r.Equal(token.PREPROCESSOR, toks[0].Kind)

	var sawCompound bool
	for _, tok := range toks {
		if tok.Kind == token.OPERATOR && tok.Literal == "+=" {
			sawCompound = true
		}
	}
	r.True(sawCompound)
}

func TestCLexer_UnrecognizedByteBecomesPunctuation(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewCLexer("int x = 1 @ 2;").Tokenize()
	var sawIllegalByte bool
	for _, tok := range toks {
		if tok.Kind == token.PUNCTUATION && tok.Literal == "@" {
			sawIllegalByte = true
		}
	}
	r.True(sawIllegalByte)
}

func TestCPPLexer_StreamOperatorsAndScopeResolution(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewCPPLexer(`cout << "x=" << x << endl;`).Tokenize()
	var streamOps int
	for _, tok := range toks {
		if tok.Kind == token.OPERATOR && tok.Literal == "<<" {
			streamOps++
		}
	}
	r.Equal(3, streamOps)

	scopeToks := lexer.NewCPPLexer("std::string s;").Tokenize()
	var sawScope bool
	for _, tok := range scopeToks {
		if tok.Literal == "::" {
			sawScope = true
		}
	}
	r.True(sawScope)
}

func TestJavaLexer_KeywordsAndStrings(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewJavaLexer(`public static void main(String[] args) {}`).Tokenize()
	r.Equal(token.KEYWORD, toks[0].Kind)
	r.Equal("public", toks[0].Literal)
}

func TestJavaLexer_Comments(t *testing.T) {
	r := require.New(t)
	toks := lexer.NewJavaLexer("// hello\nint x = 1;").Tokenize()
	r.Equal(token.COMMENT, toks[0].Kind)
}
