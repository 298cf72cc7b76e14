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

var cTypeKeywords = map[string]bool{
	"int": true, "float": true, "double": true, "char": true, "void": true,
	"const": true, "static": true,
}

// CParser recursive-descends over a flat C token buffer (spec §4.2.2).
// Top-level forms begin with an optional modifier prefix, a type
// keyword, then an identifier; blocks are brace-delimited and
// statements terminate at ';'. It never returns an error.
type CParser struct {
	logger *slog.Logger
	toks   []token.Token
	pos    int
}

func NewCParser(logger *slog.Logger, tokens []token.Token) *CParser {
	return &CParser{logger: logger, toks: tokens}
}

func ParseC(logger *slog.Logger, source string) *ir.Program {
	toks := lexer.NewCLexer(source).Tokenize()
	return NewCParser(logger, toks).Parse()
}

const maxCIterations = 200000

func (p *CParser) peek() token.Token {
	for p.pos < len(p.toks) && (p.toks[p.pos].Kind == token.COMMENT || p.toks[p.pos].Kind == token.MULTILINE_COMMENT || p.toks[p.pos].Kind == token.PREPROCESSOR) {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *CParser) advance() token.Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *CParser) expect(lit string) {
	if p.peek().Literal == lit {
		p.advance()
	}
}

func (p *CParser) atEOF() bool { return p.peek().Kind == token.EOF }

func (p *CParser) Parse() *ir.Program {
	prog := &ir.Program{}
	guard := 0
	for !p.atEOF() && guard < maxCIterations {
		guard++
		before := p.pos
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
		if p.pos == before {
			// Parse structure error: advance one token and retry (spec §7).
			p.advance()
		}
	}
	return prog
}

func (p *CParser) parseTopLevel() ir.Stmt {
	return p.parseStatement()
}

func (p *CParser) parseBlock() []ir.Stmt {
	p.expect("{")
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxCIterations {
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

func (p *CParser) parseStatement() ir.Stmt {
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

	if isCTypeStart(t) {
		return p.parseDeclOrFunc()
	}

	// printf / scanf idioms, or a bare expression statement.
	if t.Literal == "printf" {
		return p.parsePrintf()
	}
	if t.Literal == "scanf" {
		return p.parseScanf()
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
		p.logger.Debug("c parser: unsupported statement", "line", t.Line)
	}
	return &ir.Comment{Text: "unsupported statement"}
}

func isCTypeStart(t token.Token) bool {
	return t.Kind == token.KEYWORD && cTypeKeywords[t.Literal]
}

// parseDeclOrFunc handles an optional modifier prefix, a type keyword,
// then an identifier; a following '(' opens a function definition,
// otherwise it is a declaration (spec §4.2.2).
func (p *CParser) parseDeclOrFunc() ir.Stmt {
	isConst := false
	for p.peek().Literal == "const" || p.peek().Literal == "static" {
		if p.peek().Literal == "const" {
			isConst = true
		}
		p.advance()
	}
	typeTok := p.advance()
	dt := cDataType(typeTok.Literal)
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
	return &ir.Variable{Name: name, Type: dt, Initializer: init, Const: isConst}
}

func cDataType(lit string) ir.DataType {
	switch lit {
	case "int":
		return ir.Int
	case "float":
		return ir.Float
	case "double":
		return ir.Double
	case "char":
		return ir.Char
	case "void":
		return ir.Void
	default:
		return ir.Auto
	}
}

func (p *CParser) parseParamList() []*ir.Variable {
	p.expect("(")
	var params []*ir.Variable
	guard := 0
	for p.peek().Literal != ")" && !p.atEOF() && guard < maxCIterations {
		guard++
		if isCTypeStart(p.peek()) {
			typTok := p.advance()
			name := ""
			if p.peek().Kind == token.IDENTIFIER {
				name = p.advance().Literal
			}
			params = append(params, &ir.Variable{Name: name, Type: cDataType(typTok.Literal)})
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

func (p *CParser) parseIf() ir.Stmt {
	p.advance() // if
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

func (p *CParser) parseSingleOrBlock() []ir.Stmt {
	if p.peek().Literal == "{" {
		return p.parseBlock()
	}
	s := p.parseStatement()
	if s == nil {
		return nil
	}
	return []ir.Stmt{s}
}

// parseFor implements the classic counted-loop recognition of spec
// §4.2.2: it keeps the structural init/condition/update triple and, if
// it matches the iterator/comparison/update shape, also populates the
// For node's range fields via the shared idiom helper.
func (p *CParser) parseFor() ir.Stmt {
	p.advance() // for
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
		}
		if es, ok := update.(*ir.ExprStmt); ok {
			if unary, ok := es.Expr.(*ir.UnaryOp); ok {
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

func (p *CParser) parseForInit() ir.Stmt {
	if isCTypeStart(p.peek()) {
		typTok := p.advance()
		name := p.advance().Literal
		var init ir.Expr
		if p.peek().Literal == "=" {
			p.advance()
			init = p.parseExpr(0)
		}
		return &ir.Variable{Name: name, Type: cDataType(typTok.Literal), Initializer: init}
	}
	return p.parseExprStatementNoSemi()
}

func (p *CParser) parseForUpdate() ir.Stmt {
	return p.parseExprStatementNoSemi()
}

func (p *CParser) parseExprStatementNoSemi() ir.Stmt {
	expr := p.parseExpr(0)
	if a, ok := expr.(*ir.Assignment); ok {
		return a
	}
	return &ir.ExprStmt{Expr: expr}
}

func literalText(l *ir.Literal) string {
	switch v := l.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func literalOrIdent(text string) ir.Expr {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &ir.Literal{Value: n, Type: ir.Int}
	}
	return &ir.Identifier{Name: strings.Trim(text, "()")}
}

func (p *CParser) parseWhile() ir.Stmt {
	p.advance()
	p.expect("(")
	cond := p.parseExpr(0)
	p.expect(")")
	body := p.parseSingleOrBlock()
	return &ir.While{Condition: cond, Body: body}
}

func (p *CParser) parseSwitch() ir.Stmt {
	p.advance()
	p.expect("(")
	disc := p.parseExpr(0)
	p.expect(")")
	p.expect("{")
	sw := &ir.Switch{Discriminant: disc}
	guard := 0
	for p.peek().Literal != "}" && !p.atEOF() && guard < maxCIterations {
		guard++
		if p.peek().Literal == "case" {
			p.advance()
			val := p.parseExpr(0)
			p.expect(":")
			body := p.parseCaseBody()
			sw.Cases = append(sw.Cases, &ir.SwitchCase{Value: val, Body: body})
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

func (p *CParser) parseCaseBody() []ir.Stmt {
	var body []ir.Stmt
	guard := 0
	for p.peek().Literal != "case" && p.peek().Literal != "default" && p.peek().Literal != "}" && !p.atEOF() && guard < maxCIterations {
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

// parsePrintf implements spec §4.2.2's format-string decomposition.
func (p *CParser) parsePrintf() ir.Stmt {
	p.advance() // printf
	p.expect("(")
	var format string
	if p.peek().Kind == token.STRING {
		format = p.advance().Literal
	}
	var extraArgs []ir.Expr
	for p.peek().Literal == "," {
		p.advance()
		extraArgs = append(extraArgs, p.parseExpr(0))
	}
	p.expect(")")
	p.expect(";")

	segs, newline := idiom.DecomposePrintf(format)
	var args []ir.Expr
	argIdx := 0
	for _, seg := range segs {
		if seg.IsValue {
			if argIdx < len(extraArgs) {
				args = append(args, extraArgs[argIdx])
				argIdx++
			}
		} else {
			args = append(args, &ir.Literal{Value: seg.Text, Type: ir.String})
		}
	}
	return &ir.Print{Args: args, Newline: newline}
}

// parseScanf implements spec §4.2.2's scanf idiom.
func (p *CParser) parseScanf() ir.Stmt {
	p.advance()
	p.expect("(")
	format := ""
	if p.peek().Kind == token.STRING {
		format = p.advance().Literal
	}
	target := ""
	for p.peek().Literal == "," {
		p.advance()
		if p.peek().Literal == "&" {
			p.advance()
		}
		if p.peek().Kind == token.IDENTIFIER {
			target = p.advance().Literal
		}
	}
	p.expect(")")
	p.expect(";")

	dt := ir.String
	if strings.Contains(format, "%d") || strings.Contains(format, "%i") {
		dt = ir.Int
	} else if strings.Contains(format, "%f") || strings.Contains(format, "%lf") {
		dt = ir.Float
	}
	return &ir.Input{Target: target, TargetType: dt}
}

// --- expression parsing ---

var cBinPrec = map[string]int{
	"||": 1, "&&": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

func (p *CParser) parseExpr(minPrec int) ir.Expr {
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

func (p *CParser) parseAssignOrUnary() ir.Expr {
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

func exprToTarget(e ir.Expr) string {
	if id, ok := e.(*ir.Identifier); ok {
		return id.Name
	}
	return ""
}

func (p *CParser) parseUnary() ir.Expr {
	t := p.peek()
	if t.Literal == "!" || t.Literal == "-" || t.Literal == "++" || t.Literal == "--" {
		p.advance()
		operand := p.parseUnary()
		return &ir.UnaryOp{Op: t.Literal, Operand: operand}
	}
	return p.parsePostfix()
}

func (p *CParser) parsePostfix() ir.Expr {
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
			for p.peek().Literal != ")" && !p.atEOF() && guard < maxCIterations {
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

func (p *CParser) parsePrimary() ir.Expr {
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
