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

var javaTypeKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"boolean": true, "String": true, "final": true, "static": true,
}

var javaModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "final": true,
}

// JavaParser recursive-descends over a flat Java token buffer (spec
// §4.2.2). A class carrying a "static void main" method attaches that
// method to Class.MainMethod rather than Methods, letting emitters
// recognize and flatten the entry-point shell.
type JavaParser struct {
	logger *slog.Logger
	toks   []token.Token
	pos    int
}

func NewJavaParser(logger *slog.Logger, tokens []token.Token) *JavaParser {
	return &JavaParser{logger: logger, toks: tokens}
}

func ParseJava(logger *slog.Logger, source string) *ir.Program {
	toks := lexer.NewJavaLexer(source).Tokenize()
	return NewJavaParser(logger, toks).Parse()
}

const maxJavaIterations = 200000

func (p *JavaParser) peek() token.Token {
	for p.pos < len(p.toks) && (p.toks[p.pos].Kind == token.COMMENT || p.toks[p.pos].Kind == token.MULTILINE_COMMENT) {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *JavaParser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *JavaParser) advance() token.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *JavaParser) expect(lit string) {
	if p.peek().Literal == lit {
		p.advance()
	}
}

func (p *JavaParser) atEOF() bool { return p.peek().Kind == token.EOF }

func (p *JavaParser) Parse() *ir.Program {
	prog := &ir.Program{}
	guard := 0
	for !p.atEOF() && guard < maxJavaIterations {
		guard++
		if p.peek().Literal == "package" || p.peek().Literal == "import" {
			var sb strings.Builder
			sb.WriteString(p.advance().Literal)
			for p.peek().Literal != ";" && !p.atEOF() {
				sb.WriteByte(' ')
				sb.WriteString(p.advance().Literal)
			}
			p.expect(";")
			prog.Imports = append(prog.Imports, sb.String())
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

// skipModifiers consumes access modifiers and reports whether "static"
// was among them; final class-based-language convention wraps every
// top-level declaration in a class, so modifier noise is common.
func (p *JavaParser) skipModifiers() (isStatic bool) {
	guard := 0
	for guard < maxJavaIterations {
		guard++
		lit := p.peek().Literal
		if javaModifiers[lit] {
			p.advance()
			continue
		}
		if lit == "static" {
			isStatic = true
			p.advance()
			continue
		}
		break
	}
	return isStatic
}

func (p *JavaParser) parseTopLevel() ir.Stmt {
	if p.peek().Literal == "public" || p.peek().Literal == "private" || p.peek().Literal == "protected" || p.peek().Literal == "static" || p.peek().Literal == "final" {
		// Could be a modified class decl or a modified member; look ahead.
		save := p.pos
		p.skipModifiers()
		if p.peek().Literal == "class" {
			return p.parseClass()
		}
		p.pos = save
	}
	if p.peek().Literal == "class" {
		return p.parseClass()
	}
	return p.parseStatement()
}

func (p *JavaParser) parseClass() ir.Stmt {
	p.advance() // class
	name := p.advance().Literal
	p.expect("{")
	class := &ir.Class{Name: name}
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxJavaIterations {
		guard++
		before := p.pos
		isStatic := p.skipModifiers()

		if p.peek().Literal == name && p.peekAt(1).Literal == "(" {
			p.advance()
			params := p.parseParamList()
			body := p.parseBlock()
			class.Constructor = &ir.Function{Name: ir.InitName, Params: params, Body: body}
			continue
		}

		if isJavaTypeStart(p.peek()) {
			typTok := p.advance()
			dt := javaDataType(typTok.Literal)
			memberName := p.advance().Literal
			if memberName == "main" && isStatic && p.peek().Literal == "(" {
				params := p.parseParamList()
				body := p.parseBlock()
				class.MainMethod = &ir.Function{Name: "main", Params: params, ReturnType: ir.Void, Body: body}
				continue
			}
			if p.peek().Literal == "(" {
				params := p.parseParamList()
				body := p.parseBlock()
				fn := &ir.Function{Name: memberName, Params: params, ReturnType: dt, Body: body}
				if isStatic {
					class.StaticMethods = append(class.StaticMethods, fn)
				} else {
					class.Methods = append(class.Methods, fn)
				}
				continue
			}
			var init ir.Expr
			if p.peek().Literal == "=" {
				p.advance()
				init = p.parseExpr(0)
			}
			p.expect(";")
			class.Members = append(class.Members, &ir.Variable{Name: memberName, Type: dt, Initializer: init})
			continue
		}

		if p.pos == before {
			p.advance()
		}
	}
	p.expect("}")
	return class
}

func isJavaTypeStart(t token.Token) bool {
	if t.Kind != token.KEYWORD && t.Kind != token.IDENTIFIER {
		return false
	}
	if javaTypeKeywords[t.Literal] {
		return true
	}
	// Bare identifier used as a return/field type (e.g. a class name).
	return t.Kind == token.IDENTIFIER
}

func javaDataType(lit string) ir.DataType {
	switch lit {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "double":
		return ir.Double
	case "char":
		return ir.Char
	case "boolean":
		return ir.Bool
	case "String":
		return ir.String
	case "void":
		return ir.Void
	default:
		return ir.Auto
	}
}

func (p *JavaParser) parseParamList() []*ir.Variable {
	p.expect("(")
	var params []*ir.Variable
	guard := 0
	for p.peek().Literal != ")" && !p.atEOF() && guard < maxJavaIterations {
		guard++
		if isJavaTypeStart(p.peek()) {
			typTok := p.advance()
			for p.peek().Literal == "[" {
				p.advance()
				p.expect("]")
			}
			name := ""
			if p.peek().Kind == token.IDENTIFIER {
				name = p.advance().Literal
			}
			params = append(params, &ir.Variable{Name: name, Type: javaDataType(typTok.Literal)})
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

func (p *JavaParser) parseBlock() []ir.Stmt {
	p.expect("{")
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxJavaIterations {
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

var javaScannerReceivers = map[string]bool{"scanner": true, "sc": true, "input": true}
var javaScannerMethods = map[string]ir.DataType{
	"nextInt": ir.Int, "nextFloat": ir.Float, "nextDouble": ir.Float, "nextLine": ir.String,
}

func (p *JavaParser) parseStatement() ir.Stmt {
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
	}

	if t.Literal == "System" && p.peekAt(1).Literal == "." {
		if stmt, ok := p.tryParseSystemOut(); ok {
			return stmt
		}
	}

	if javaScannerReceivers[t.Literal] && p.peekAt(1).Literal == "." {
		if stmt, ok := p.tryParseScannerRead(); ok {
			return stmt
		}
	}

	if isJavaTypeStart(t) && p.peekAt(1).Kind == token.IDENTIFIER {
		return p.parseLocalDecl()
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
		p.logger.Debug("java parser: unsupported statement", "line", t.Line)
	}
	return &ir.Comment{Text: "unsupported statement"}
}

// tryParseSystemOut recognizes System.out.println(...) / .print(...)
// and splits its "+"-concatenated argument into one Print argument per
// operand. String-literal operands are kept whole; no printf-style
// directive scanning is applied to them.
func (p *JavaParser) tryParseSystemOut() (ir.Stmt, bool) {
	save := p.pos
	p.advance() // System
	p.expect(".")
	if p.peek().Literal != "out" {
		p.pos = save
		return nil, false
	}
	p.advance()
	p.expect(".")
	method := p.peek().Literal
	if method != "println" && method != "print" {
		p.pos = save
		return nil, false
	}
	p.advance()
	p.expect("(")
	var args []ir.Expr
	guard := 0
	for p.peek().Literal != ")" && !p.atEOF() && guard < maxJavaIterations {
		guard++
		args = append(args, p.parseConcatOperand())
		if p.peek().Literal == "+" {
			p.advance()
			continue
		}
	}
	p.expect(")")
	p.expect(";")
	return &ir.Print{Args: args, Newline: method == "println"}, true
}

// parseConcatOperand parses one "+"-joined operand of a println
// argument list without consuming the top-level "+" delimiter itself.
func (p *JavaParser) parseConcatOperand() ir.Expr {
	return p.parseAdditiveNoPlus()
}

func (p *JavaParser) parseAdditiveNoPlus() ir.Expr {
	left := p.parseUnary()
	for {
		op := p.peek().Literal
		if op == "+" {
			return left
		}
		prec, ok := cBinPrec[op]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseExpr(prec + 1)
		left = &ir.BinaryOp{Op: op, Left: left, Right: right, Type: inferBinaryType(op, left, right)}
	}
}

// tryParseScannerRead recognizes scanner.nextInt()/.nextFloat()/
// .nextDouble()/.nextLine() as Input (spec §4.2.2), where the caller
// already assigned or will assign the returned value; the common
// pattern "int x = scanner.nextInt();" is handled by parseLocalDecl
// delegating here for its initializer, so this path covers the bare
// expression-statement form.
func (p *JavaParser) tryParseScannerRead() (ir.Stmt, bool) {
	save := p.pos
	p.advance() // receiver
	p.expect(".")
	method := p.peek().Literal
	dt, ok := javaScannerMethods[method]
	if !ok {
		p.pos = save
		return nil, false
	}
	p.advance()
	p.expect("(")
	p.expect(")")
	p.expect(";")
	return &ir.Input{TargetType: dt}, true
}

func (p *JavaParser) parseLocalDecl() ir.Stmt {
	typTok := p.advance()
	dt := javaDataType(typTok.Literal)
	name := p.advance().Literal
	var init ir.Expr
	if p.peek().Literal == "=" {
		p.advance()
		if javaScannerReceivers[p.peek().Literal] && p.peekAt(1).Literal == "." {
			if inputStmt, ok := p.tryParseScannerRead(); ok {
				if in, ok := inputStmt.(*ir.Input); ok {
					in.Target = name
					return in
				}
			}
		}
		init = p.parseExpr(0)
	}
	p.expect(";")
	return &ir.Variable{Name: name, Type: dt, Initializer: init}
}

func (p *JavaParser) parseIf() ir.Stmt {
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

func (p *JavaParser) parseSingleOrBlock() []ir.Stmt {
	if p.peek().Literal == "{" {
		return p.parseBlock()
	}
	s := p.parseStatement()
	if s == nil {
		return nil
	}
	return []ir.Stmt{s}
}

func (p *JavaParser) parseFor() ir.Stmt {
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

func (p *JavaParser) parseForInit() ir.Stmt {
	if isJavaTypeStart(p.peek()) && p.peekAt(1).Kind == token.IDENTIFIER {
		typTok := p.advance()
		name := p.advance().Literal
		var init ir.Expr
		if p.peek().Literal == "=" {
			p.advance()
			init = p.parseExpr(0)
		}
		return &ir.Variable{Name: name, Type: javaDataType(typTok.Literal), Initializer: init}
	}
	return p.parseExprStatementNoSemi()
}

func (p *JavaParser) parseForUpdate() ir.Stmt {
	return p.parseExprStatementNoSemi()
}

func (p *JavaParser) parseExprStatementNoSemi() ir.Stmt {
	expr := p.parseExpr(0)
	if a, ok := expr.(*ir.Assignment); ok {
		return a
	}
	return &ir.ExprStmt{Expr: expr}
}

func (p *JavaParser) parseWhile() ir.Stmt {
	p.advance()
	p.expect("(")
	cond := p.parseExpr(0)
	p.expect(")")
	body := p.parseSingleOrBlock()
	return &ir.While{Condition: cond, Body: body}
}

func (p *JavaParser) parseSwitch() ir.Stmt {
	p.advance()
	p.expect("(")
	disc := p.parseExpr(0)
	p.expect(")")
	p.expect("{")
	sw := &ir.Switch{Discriminant: disc}
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxJavaIterations {
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

func (p *JavaParser) parseCaseBody() []ir.Stmt {
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "case" && p.peek().Literal != "default" && p.peek().Literal != "}" && !p.atEOF() && guard < maxJavaIterations {
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

// --- expression parsing (shares precedence table with C) ---

func (p *JavaParser) parseExpr(minPrec int) ir.Expr {
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

func (p *JavaParser) parseAssignOrUnary() ir.Expr {
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

func (p *JavaParser) parseUnary() ir.Expr {
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

func (p *JavaParser) parsePostfix() ir.Expr {
	expr := p.parsePrimary()
	for {
		t := p.peek()
		if t.Literal == "++" || t.Literal == "--" {
			p.advance()
			expr = &ir.UnaryOp{Op: t.Literal + "_post", Operand: expr}
			continue
		}
		if t.Literal == "." {
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
			for p.peek().Literal != ")" && !p.atEOF() && guard < maxJavaIterations {
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

func (p *JavaParser) parsePrimary() ir.Expr {
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
	case t.Literal == "null":
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
