package parser

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/rhino1998/polyglot/pkg/idiom"
	"github.com/rhino1998/polyglot/pkg/ir"
	"github.com/rhino1998/polyglot/pkg/lexer"
	"github.com/rhino1998/polyglot/pkg/token"
)

var cppTypeKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"const": true, "static": true, "bool": true, "auto": true, "string": true,
}

// CPPParser recursive-descends over a flat CPP token buffer (spec
// §4.2.2). As in CParser, arbitrary identifiers are never promoted to
// types: class-name disambiguation for constructors uses the enclosing
// class's own name.
type CPPParser struct {
	logger      *slog.Logger
	toks        []token.Token
	pos         int
	currentClass string
}

func NewCPPParser(logger *slog.Logger, tokens []token.Token) *CPPParser {
	return &CPPParser{logger: logger, toks: tokens}
}

func ParseCPP(logger *slog.Logger, source string) *ir.Program {
	toks := lexer.NewCPPLexer(source).Tokenize()
	return NewCPPParser(logger, toks).Parse()
}

const maxCPPIterations = 200000

func (p *CPPParser) peek() token.Token {
	for p.pos < len(p.toks) && (p.toks[p.pos].Kind == token.COMMENT || p.toks[p.pos].Kind == token.MULTILINE_COMMENT || p.toks[p.pos].Kind == token.PREPROCESSOR) {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *CPPParser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *CPPParser) advance() token.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *CPPParser) expect(lit string) {
	if p.peek().Literal == lit {
		p.advance()
	}
}

func (p *CPPParser) atEOF() bool { return p.peek().Kind == token.EOF }

func (p *CPPParser) Parse() *ir.Program {
	prog := &ir.Program{}
	guard := 0
	for !p.atEOF() && guard < maxCPPIterations {
		guard++
		if p.peek().Literal == "using" || p.peek().Literal == "namespace" {
			var sb strings.Builder
			for p.peek().Literal != ";" && !p.atEOF() {
				sb.WriteString(p.advance().Literal)
				sb.WriteByte(' ')
			}
			p.expect(";")
			prog.Imports = append(prog.Imports, strings.TrimSpace(sb.String()))
			continue
		}
		before := p.pos
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			p.advance()
		}
	}
	return prog
}

func (p *CPPParser) parseTopLevel() ir.Stmt {
	if p.peek().Literal == "class" {
		return p.parseClass()
	}
	return p.parseStatement()
}

func (p *CPPParser) parseClass() ir.Stmt {
	p.advance() // class
	name := p.advance().Literal
	saved := p.currentClass
	p.currentClass = name
	defer func() { p.currentClass = saved }()

	p.expect("{")
	class := &ir.Class{Name: name}
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxCPPIterations {
		guard++
		if p.peek().Literal == "public" || p.peek().Literal == "private" || p.peek().Literal == "protected" {
			p.advance()
			p.expect(":")
			continue
		}
		if p.peek().Literal == name && p.peekAt(1).Literal == "(" {
			// Constructor: recognized by matching the class's own name.
			p.advance()
			params := p.parseParamList()
			body := p.parseBlock()
			class.Constructor = &ir.Function{Name: ir.InitName, Params: params, Body: body}
			continue
		}
		if isCPPTypeStart(p.peek()) {
			member := p.parseMemberDeclOrMethod()
			switch m := member.(type) {
			case *ir.Variable:
				class.Members = append(class.Members, m)
			case *ir.Function:
				class.Methods = append(class.Methods, m)
			}
			continue
		}
		p.advance()
	}
	p.expect("}")
	p.expect(";")
	return class
}

func (p *CPPParser) parseMemberDeclOrMethod() ir.Stmt {
	for p.peek().Literal == "const" || p.peek().Literal == "static" {
		p.advance()
	}
	typTok := p.advance()
	dt := cppDataType(typTok.Literal)
	name := p.advance().Literal
	if p.peek().Literal == "(" {
		params := p.parseParamList()
		body := p.parseBlock()
		return &ir.Function{Name: name, Params: params, ReturnType: dt, Body: body}
	}
	var init ir.Expr
	if p.peek().Literal == "=" {
		p.advance()
		init = p.parseExpr(0)
	}
	p.expect(";")
	return &ir.Variable{Name: name, Type: dt, Initializer: init}
}

func isCPPTypeStart(t token.Token) bool {
	return t.Kind == token.KEYWORD && cppTypeKeywords[t.Literal]
}

func cppDataType(lit string) ir.DataType {
	switch lit {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "double":
		return ir.Double
	case "char":
		return ir.Char
	case "bool":
		return ir.Bool
	case "string":
		return ir.String
	case "void":
		return ir.Void
	case "auto":
		return ir.Auto
	default:
		return ir.Auto
	}
}

func (p *CPPParser) parseBlock() []ir.Stmt {
	p.expect("{")
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxCPPIterations {
		guard++
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect("}")
	return body
}

func (p *CPPParser) parseStatement() ir.Stmt {
	t := p.peek()

	if t.Kind == token.COMMENT || t.Kind == token.MULTILINE_COMMENT {
		p.advance()
		return &ir.Comment{Text: t.Literal, MultiLine: t.Kind == token.MULTILINE_COMMENT}
	}

	switch t.Literal {
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor()
	case "while":
		return p.parseWhile()
	case "switch":
		return p.parseSwitch()
	case "break":
		p.advance()
		p.expect(";")
		return &ir.Break{}
	case "return":
		p.advance()
		if p.peek().Literal == ";" {
			p.advance()
			return &ir.Return{}
		}
		val := p.parseExpr(0)
		p.expect(";")
		return &ir.Return{Value: val}
	case "cout":
		return p.parseCout()
	case "cin":
		return p.parseCin()
	}

	if isCPPTypeStart(t) || (t.Kind == token.IDENTIFIER && t.Literal == "std" && p.peekAt(1).Literal == "::") {
		return p.parseDeclOrFunc()
	}

	expr := p.parseExpr(0)
	if p.peek().Literal == ";" {
		p.advance()
	}
	if a, ok := expr.(*ir.Assignment); ok {
		return a
	}
	if call, ok := expr.(*ir.Call); ok {
		return call
	}
	if p.logger != nil {
		p.logger.Debug("cpp parser: unsupported statement", "line", t.Line)
	}
	return &ir.Comment{Text: "unsupported statement"}
}

func (p *CPPParser) parseDeclOrFunc() ir.Stmt {
	for p.peek().Literal == "const" || p.peek().Literal == "static" {
		p.advance()
	}
	dt := ir.Auto
	if p.peek().Literal == "std" && p.peekAt(1).Literal == "::" {
		p.advance()
		p.advance()
		dt = cppDataType(p.advance().Literal)
	} else {
		dt = cppDataType(p.advance().Literal)
	}
	name := p.advance().Literal
	if p.peek().Literal == "(" {
		params := p.parseParamList()
		body := p.parseBlock()
		return &ir.Function{Name: name, Params: params, ReturnType: dt, Body: body}
	}
	var init ir.Expr
	if p.peek().Literal == "=" {
		p.advance()
		init = p.parseExpr(0)
	}
	p.expect(";")
	return &ir.Variable{Name: name, Type: dt, Initializer: init}
}

func (p *CPPParser) parseParamList() []*ir.Variable {
	p.expect("(")
	var params []*ir.Variable
	guard := 0
	for p.peek().Literal != ")" && !p.atEOF() && guard < maxCPPIterations {
		guard++
		if isCPPTypeStart(p.peek()) {
			typTok := p.advance()
			name := ""
			if p.peek().Kind == token.IDENTIFIER {
				name = p.advance().Literal
			}
			params = append(params, &ir.Variable{Name: name, Type: cppDataType(typTok.Literal)})
		} else {
			p.advance()
		}
		if p.peek().Literal == "," {
			p.advance()
		}
	}
	p.expect(")")
	return params
}

func (p *CPPParser) parseIf() ir.Stmt {
	p.advance()
	p.expect("(")
	cond := p.parseExpr(0)
	p.expect(")")
	then := p.parseSingleOrBlock()
	node := &ir.If{Condition: cond, Then: then}
	if p.peek().Literal == "else" {
		p.advance()
		if p.peek().Literal == "if" {
			node.ElseIf = p.parseIf().(*ir.If)
		} else {
			node.Else = p.parseSingleOrBlock()
		}
	}
	return node
}

func (p *CPPParser) parseSingleOrBlock() []ir.Stmt {
	if p.peek().Literal == "{" {
		return p.parseBlock()
	}
	s := p.parseStatement()
	if s == nil {
		return nil
	}
	return []ir.Stmt{s}
}

func (p *CPPParser) parseFor() ir.Stmt {
	p.advance()
	p.expect("(")

	var initVar, initValue string
	var initStmt ir.Stmt
	if p.peek().Literal != ";" {
		initStmt = p.parseForInit()
		if v, ok := initStmt.(*ir.Variable); ok {
			initVar = v.Name
			if lit, ok := v.Initializer.(*ir.Literal); ok {
				initValue = literalText(lit)
			}
		}
	}
	p.expect(";")

	var cond ir.Expr
	condOp, condIterator, condBound := "", "", ""
	if p.peek().Literal != ";" {
		cond = p.parseExpr(0)
		if b, ok := cond.(*ir.BinaryOp); ok {
			if id, ok := b.Left.(*ir.Identifier); ok {
				condIterator = id.Name
				condOp = b.Op
				if lit, ok := b.Right.(*ir.Literal); ok {
					condBound = literalText(lit)
				} else if id2, ok := b.Right.(*ir.Identifier); ok {
					condBound = id2.Name
				}
			}
		}
	}
	p.expect(";")

	var update ir.Stmt
	updateVar, updateKind, updateStep := "", "", ""
	if p.peek().Literal != ")" {
		update = p.parseForUpdate()
		switch u := update.(type) {
		case *ir.Assignment:
			updateVar = u.Target
			if u.Op == "+=" {
				updateKind = "add_assign"
				if lit, ok := u.Value.(*ir.Literal); ok {
					updateStep = literalText(lit)
				}
			}
		case *ir.ExprStmt:
			if unary, ok := u.Expr.(*ir.UnaryOp); ok {
				if id, ok := unary.Operand.(*ir.Identifier); ok {
					updateVar = id.Name
					updateKind = "inc"
					if strings.HasSuffix(unary.Op, "_post") {
						updateKind = "inc_post"
					}
				}
			}
		}
	}
	p.expect(")")
	body := p.parseSingleOrBlock()

	forNode := &ir.For{Init: initStmt, Condition: cond, Update: update, Body: body}
	fold := idiom.FoldCountedLoop(initVar, initValue, condOp, condIterator, condBound, updateVar, updateKind, updateStep)
	if fold.Recognized {
		forNode.HasRange = true
		forNode.RangeIter = fold.IteratorName
		forNode.RangeStart = literalOrIdent(fold.Start)
		forNode.RangeEnd = literalOrIdent(fold.End)
		forNode.RangeStep = literalOrIdent(fold.Step)
	}
	return forNode
}

func (p *CPPParser) parseForInit() ir.Stmt {
	if isCPPTypeStart(p.peek()) {
		typTok := p.advance()
		name := p.advance().Literal
		var init ir.Expr
		if p.peek().Literal == "=" {
			p.advance()
			init = p.parseExpr(0)
		}
		return &ir.Variable{Name: name, Type: cppDataType(typTok.Literal), Initializer: init}
	}
	return p.parseExprStatementNoSemi()
}

func (p *CPPParser) parseForUpdate() ir.Stmt {
	return p.parseExprStatementNoSemi()
}

func (p *CPPParser) parseExprStatementNoSemi() ir.Stmt {
	expr := p.parseExpr(0)
	if a, ok := expr.(*ir.Assignment); ok {
		return a
	}
	return &ir.ExprStmt{Expr: expr}
}

func (p *CPPParser) parseWhile() ir.Stmt {
	p.advance()
	p.expect("(")
	cond := p.parseExpr(0)
	p.expect(")")
	body := p.parseSingleOrBlock()
	return &ir.While{Condition: cond, Body: body}
}

func (p *CPPParser) parseSwitch() ir.Stmt {
	p.advance()
	p.expect("(")
	disc := p.parseExpr(0)
	p.expect(")")
	p.expect("{")
	sw := &ir.Switch{Discriminant: disc}
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxCPPIterations {
		guard++
		if p.peek().Literal == "case" {
			p.advance()
			val := p.parseExpr(0)
			p.expect(":")
			sw.Cases = append(sw.Cases, &ir.SwitchCase{Value: val, Body: p.parseCaseBody()})
		} else if p.peek().Literal == "default" {
			p.advance()
			p.expect(":")
			sw.Default = p.parseCaseBody()
		} else {
			p.advance()
		}
	}
	p.expect("}")
	return sw
}

func (p *CPPParser) parseCaseBody() []ir.Stmt {
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "case" && p.peek().Literal != "default" && p.peek().Literal != "}" && !p.atEOF() && guard < maxCPPIterations {
		guard++
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			body = append(body, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	return body
}

// parseCout implements "cout << e1 << e2 << endl" -> Print (spec
// §4.2.2). Any chained endl/std::endl operand sets Print.newline.
func (p *CPPParser) parseCout() ir.Stmt {
	p.advance() // cout
	var args []ir.Expr
	newline := false
	guard := 0
	for p.peek().Literal == "<<" && guard < maxCPPIterations {
		guard++
		p.advance()
		if p.peek().Literal == "endl" {
			p.advance()
			newline = true
			continue
		}
		if p.peek().Literal == "std" && p.peekAt(1).Literal == "::" && p.peekAt(2).Literal == "endl" {
			p.advance()
			p.advance()
			p.advance()
			newline = true
			continue
		}
		args = append(args, p.parseAdditive())
	}
	p.expect(";")
	return &ir.Print{Args: args, Newline: newline}
}

// parseAdditive parses at additive precedence and above, stopping
// before a top-level "<<" so cout's chain delimiter is never consumed
// as a left-shift operator inside the common subset.
func (p *CPPParser) parseAdditive() ir.Expr {
	left := p.parseUnary()
	for {
		op := p.peek().Literal
		prec, ok := cBinPrec[op]
		if !ok || prec < 4 || op == "<<" || op == ">>" {
			return left
		}
		p.advance()
		right := p.parseExpr(prec + 1)
		left = &ir.BinaryOp{Op: op, Left: left, Right: right, Type: inferBinaryType(op, left, right)}
	}
}

// parseCin implements "cin >> var" -> Input (spec §4.2.2).
func (p *CPPParser) parseCin() ir.Stmt {
	p.advance()
	p.expect(">>")
	target := p.advance().Literal
	p.expect(";")
	return &ir.Input{Target: target, TargetType: ir.Auto}
}

// --- expression parsing (shares precedence table with C) ---

func (p *CPPParser) parseExpr(minPrec int) ir.Expr {
	left := p.parseAssignOrUnary()
	for {
		op := p.peek().Literal
		prec, ok := cBinPrec[op]
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseExpr(prec + 1)
		left = &ir.BinaryOp{Op: op, Left: left, Right: right, Type: inferBinaryType(op, left, right)}
	}
}

func (p *CPPParser) parseAssignOrUnary() ir.Expr {
	left := p.parseUnary()
	op := p.peek().Literal
	if op == "=" || op == "+=" || op == "-=" || op == "*=" || op == "/=" {
		p.advance()
		right := p.parseExpr(0)
		target := exprToTarget(left)
		return &ir.Assignment{Target: target, Op: op, Value: right}
	}
	return left
}

func (p *CPPParser) parseUnary() ir.Expr {
	t := p.peek()
	if t.Literal == "!" || t.Literal == "-" || t.Literal == "++" || t.Literal == "--" {
		p.advance()
		operand := p.parseUnary()
		return &ir.UnaryOp{Op: t.Literal, Operand: operand}
	}
	if t.Literal == "new" {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePostfix()
}

func (p *CPPParser) parsePostfix() ir.Expr {
	expr := p.parsePrimary()
	for {
		t := p.peek()
		if t.Literal == "++" || t.Literal == "--" {
			p.advance()
			expr = &ir.UnaryOp{Op: t.Literal + "_post", Operand: expr}
			continue
		}
		if t.Literal == "." || t.Literal == "->" {
			p.advance()
			field := p.advance().Literal
			if id, ok := expr.(*ir.Identifier); ok {
				expr = &ir.Identifier{Name: id.Name + "." + field}
			}
			continue
		}
		if t.Literal == "(" {
			p.advance()
			var args []ir.Expr
			guard := 0
			for p.peek().Literal != ")" && !p.atEOF() && guard < maxCPPIterations {
				guard++
				args = append(args, p.parseExpr(0))
				if p.peek().Literal == "," {
					p.advance()
				}
			}
			p.expect(")")
			name := exprToTarget(expr)
			expr = &ir.Call{Callee: name, Args: args}
			continue
		}
		break
	}
	return expr
}

func (p *CPPParser) parsePrimary() ir.Expr {
	t := p.advance()
	switch {
	case t.Kind == token.NUMBER:
		if strings.Contains(t.Literal, ".") {
			f, _ := strconv.ParseFloat(t.Literal, 64)
			return &ir.Literal{Value: f, Type: ir.Float}
		}
		n, _ := strconv.ParseInt(t.Literal, 10, 64)
		return &ir.Literal{Value: n, Type: ir.Int}
	case t.Kind == token.STRING:
		return &ir.Literal{Value: t.Literal, Type: ir.String}
	case t.Kind == token.CHAR:
		return &ir.Literal{Value: t.Literal, Type: ir.Char}
	case t.Literal == "true":
		return &ir.Literal{Value: true, Type: ir.Bool}
	case t.Literal == "false":
		return &ir.Literal{Value: false, Type: ir.Bool}
	case t.Literal == "nullptr":
		return &ir.Literal{Value: nil, Type: ir.Auto}
	case t.Literal == "this":
		return &ir.Identifier{Name: "self"}
	case t.Literal == "(":
		inner := p.parseExpr(0)
		p.expect(")")
		return inner
	case t.Kind == token.IDENTIFIER || t.Kind == token.KEYWORD:
		return &ir.Identifier{Name: t.Literal}
	default:
		return &ir.Literal{Value: nil, Type: ir.Auto}
	}
}
